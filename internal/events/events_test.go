package events

import (
	"context"
	"testing"
	"time"
)

func TestStatusChangedValues(t *testing.T) {
	at := time.Date(2025, 3, 14, 9, 30, 0, 0, time.FixedZone("GT", -6*3600))
	values := StatusChanged{
		SolicitudID: "sol-1",
		From:        "PENDING",
		To:          "APPROVED",
		ActorID:     "admin-1",
		HasNote:     true,
		At:          at,
	}.Values()

	want := map[string]string{
		"type":        TypeStatusChanged,
		"solicitudId": "sol-1",
		"from":        "PENDING",
		"to":          "APPROVED",
		"actorId":     "admin-1",
		"hasNote":     "true",
		"at":          "2025-03-14T15:30:00Z",
	}
	for key, expected := range want {
		if got, _ := values[key].(string); got != expected {
			t.Fatalf("values[%q]=%q, want %q", key, got, expected)
		}
	}
}

func TestNilPublisherIsNoop(t *testing.T) {
	var p *Publisher
	if err := p.StatusChanged(context.Background(), StatusChanged{SolicitudID: "sol-1"}); err != nil {
		t.Fatalf("nil publisher returned %v", err)
	}
	enqueued, err := NewPublisher(nil, "solicitudes:tasks").FileAudit(context.Background(), time.Now())
	if err != nil || enqueued {
		t.Fatalf("publisher without client returned (%v, %v)", enqueued, err)
	}
}

func TestFileAuditSlotKey(t *testing.T) {
	a := time.Date(2025, 3, 14, 3, 0, 0, 0, time.UTC)
	b := time.Date(2025, 3, 13, 21, 0, 42, 0, time.FixedZone("GT", -6*3600))

	if got := FileAuditSlotKey("solicitudes:tasks", a); got != "solicitudes:tasks:file_audit:202503140300" {
		t.Fatalf("key=%q", got)
	}
	if FileAuditSlotKey("solicitudes:tasks", a) != FileAuditSlotKey("solicitudes:tasks", b) {
		t.Fatalf("same minute in another zone must share a slot")
	}
	if FileAuditSlotKey("solicitudes:tasks", a) == FileAuditSlotKey("solicitudes:tasks", a.Add(24*time.Hour)) {
		t.Fatalf("next night must get a fresh slot")
	}
}
