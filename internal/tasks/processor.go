package tasks

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/MakKeitor/registro-api-moodle-backend/internal/events"
	"github.com/MakKeitor/registro-api-moodle-backend/internal/service"
)

type Auditor interface {
	Run(ctx context.Context) (service.AuditReport, error)
}

// Processor dispatches stream messages by their type field.
type Processor struct {
	logger  zerolog.Logger
	auditor Auditor
}

func NewProcessor(logger zerolog.Logger, auditor Auditor) *Processor {
	return &Processor{
		logger:  logger,
		auditor: auditor,
	}
}

func (p *Processor) Handle(ctx context.Context, msg redis.XMessage) error {
	taskType := field(msg.Values, "type")

	switch taskType {
	case events.TypeStatusChanged:
		return p.handleStatusChanged(msg)
	case events.TypeFileAudit:
		return p.handleFileAudit(ctx, msg)
	default:
		p.logger.Warn().Str("type", taskType).Str("message_id", msg.ID).Msg("unknown task type")
		return nil
	}
}

func (p *Processor) handleStatusChanged(msg redis.XMessage) error {
	id := field(msg.Values, "solicitudId")
	if id == "" {
		return fmt.Errorf("status_changed %s: missing solicitudId", msg.ID)
	}
	hasNote, _ := strconv.ParseBool(field(msg.Values, "hasNote"))

	p.logger.Info().
		Str("solicitud_id", id).
		Str("from", field(msg.Values, "from")).
		Str("to", field(msg.Values, "to")).
		Str("actor_id", field(msg.Values, "actorId")).
		Bool("has_note", hasNote).
		Str("at", field(msg.Values, "at")).
		Msg("solicitud status changed")
	return nil
}

func (p *Processor) handleFileAudit(ctx context.Context, msg redis.XMessage) error {
	if p.auditor == nil {
		p.logger.Warn().Str("message_id", msg.ID).Msg("file audit requested but no auditor configured")
		return nil
	}

	report, err := p.auditor.Run(ctx)
	if err != nil {
		return fmt.Errorf("file audit: %w", err)
	}

	event := p.logger.Info()
	if report.Missing > 0 {
		event = p.logger.Warn()
	}
	event.
		Int("checked", report.Checked).
		Int("missing", report.Missing).
		Msg("file audit finished")
	return nil
}

func field(values map[string]interface{}, key string) string {
	v, ok := values[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
