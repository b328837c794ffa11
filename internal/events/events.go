package events

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	TypeStatusChanged = "status_changed"
	TypeFileAudit     = "file_audit"
)

// StatusChanged is emitted after a solicitud transition has been committed.
type StatusChanged struct {
	SolicitudID string
	From        string
	To          string
	ActorID     string
	HasNote     bool
	At          time.Time
}

// Values flattens the event into stream fields.
func (e StatusChanged) Values() map[string]any {
	return map[string]any{
		"type":        TypeStatusChanged,
		"solicitudId": e.SolicitudID,
		"from":        e.From,
		"to":          e.To,
		"actorId":     e.ActorID,
		"hasNote":     strconv.FormatBool(e.HasNote),
		"at":          e.At.UTC().Format(time.RFC3339Nano),
	}
}

// Publisher appends tasks to the worker stream.
type Publisher struct {
	client *redis.Client
	stream string
}

func NewPublisher(client *redis.Client, stream string) *Publisher {
	return &Publisher{client: client, stream: stream}
}

func (p *Publisher) StatusChanged(ctx context.Context, ev StatusChanged) error {
	return p.add(ctx, ev.Values())
}

// FileAudit enqueues one file audit for the scheduled slot. Every process
// firing for the same minute races on a redis key and only the winner
// enqueues; the others get false.
func (p *Publisher) FileAudit(ctx context.Context, slot time.Time) (bool, error) {
	if p == nil || p.client == nil {
		return false, nil
	}

	ok, err := p.client.SetNX(ctx, FileAuditSlotKey(p.stream, slot), "1", time.Hour).Result()
	if err != nil {
		return false, fmt.Errorf("claim file audit slot: %w", err)
	}
	if !ok {
		return false, nil
	}

	if err := p.add(ctx, map[string]any{
		"type": TypeFileAudit,
		"at":   slot.UTC().Format(time.RFC3339Nano),
	}); err != nil {
		return false, err
	}
	return true, nil
}

func FileAuditSlotKey(stream string, slot time.Time) string {
	return stream + ":file_audit:" + slot.UTC().Truncate(time.Minute).Format("200601021504")
}

func (p *Publisher) add(ctx context.Context, values map[string]any) error {
	if p == nil || p.client == nil {
		return nil
	}
	if _, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: values,
	}).Result(); err != nil {
		return fmt.Errorf("xadd %s: %w", p.stream, err)
	}
	return nil
}
