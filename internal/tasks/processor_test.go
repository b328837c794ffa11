package tasks

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MakKeitor/registro-api-moodle-backend/internal/events"
	"github.com/MakKeitor/registro-api-moodle-backend/internal/service"
)

type stubAuditor struct {
	report service.AuditReport
	err    error
	runs   int
}

func (s *stubAuditor) Run(context.Context) (service.AuditReport, error) {
	s.runs++
	return s.report, s.err
}

func TestHandleStatusChanged(t *testing.T) {
	var buf bytes.Buffer
	p := NewProcessor(zerolog.New(&buf), nil)

	values := make(map[string]interface{})
	for k, v := range (events.StatusChanged{SolicitudID: "sol-1", From: "PENDING", To: "APPROVED", ActorID: "admin-1", HasNote: true}).Values() {
		values[k] = v
	}

	require.NoError(t, p.Handle(context.Background(), redis.XMessage{ID: "1-0", Values: values}))
	assert.Contains(t, buf.String(), `"solicitud_id":"sol-1"`)
	assert.Contains(t, buf.String(), `"to":"APPROVED"`)
	assert.Contains(t, buf.String(), `"has_note":true`)
}

func TestHandleStatusChangedRequiresID(t *testing.T) {
	p := NewProcessor(zerolog.Nop(), nil)
	err := p.Handle(context.Background(), redis.XMessage{ID: "1-0", Values: map[string]interface{}{"type": events.TypeStatusChanged}})
	assert.Error(t, err)
}

func TestHandleFileAudit(t *testing.T) {
	auditor := &stubAuditor{report: service.AuditReport{Checked: 4, Missing: 1}}
	p := NewProcessor(zerolog.Nop(), auditor)

	msg := redis.XMessage{ID: "2-0", Values: map[string]interface{}{"type": events.TypeFileAudit}}
	require.NoError(t, p.Handle(context.Background(), msg))
	assert.Equal(t, 1, auditor.runs)

	auditor.err = errors.New("pool closed")
	assert.Error(t, p.Handle(context.Background(), msg))
}

func TestHandleUnknownTypeIsAcked(t *testing.T) {
	p := NewProcessor(zerolog.Nop(), nil)
	assert.NoError(t, p.Handle(context.Background(), redis.XMessage{ID: "3-0", Values: map[string]interface{}{"type": "ingest"}}))
	assert.NoError(t, p.Handle(context.Background(), redis.XMessage{ID: "4-0", Values: map[string]interface{}{"type": events.TypeFileAudit}}))
}
