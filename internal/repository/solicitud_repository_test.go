package repository

import (
	"strings"
	"testing"
	"time"

	"github.com/MakKeitor/registro-api-moodle-backend/internal/models"
)

func TestUpdateStatusArgsLeavesOtherTimestampNull(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		name         string
		change       models.StatusChange
		wantApproved any
		wantRejected any
	}{
		{"approve", models.StatusChange{SolicitudID: "sol-1", Status: models.SolicitudApproved, ApprovedAt: &now}, now, nil},
		{"reject", models.StatusChange{SolicitudID: "sol-1", Status: models.SolicitudRejected, RejectedAt: &now}, nil, now},
		{"in review", models.StatusChange{SolicitudID: "sol-1", Status: models.SolicitudInReview}, nil, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			args := updateStatusArgs(tc.change)
			if len(args) != 4 {
				t.Fatalf("args=%v", args)
			}
			if args[0] != "sol-1" || args[1] != string(tc.change.Status) {
				t.Fatalf("args=%v", args)
			}
			if args[2] != tc.wantApproved {
				t.Fatalf("approved_at arg=%v, want %v", args[2], tc.wantApproved)
			}
			if args[3] != tc.wantRejected {
				t.Fatalf("rejected_at arg=%v, want %v", args[3], tc.wantRejected)
			}
		})
	}
}

func TestUpdateStatusQueryKeepsUnsetTimestamps(t *testing.T) {
	for _, clause := range []string{
		"approved_at = COALESCE($3, approved_at)",
		"rejected_at = COALESCE($4, rejected_at)",
	} {
		if !strings.Contains(updateStatusQuery, clause) {
			t.Fatalf("update query lost %q", clause)
		}
	}
	if !strings.Contains(lockSolicitudQuery, "FOR UPDATE") {
		t.Fatalf("lock query must take a row lock")
	}
}
