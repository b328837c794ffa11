package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/MakKeitor/registro-api-moodle-backend/internal/events"
	"github.com/MakKeitor/registro-api-moodle-backend/internal/ids"
	"github.com/MakKeitor/registro-api-moodle-backend/internal/models"
	"github.com/MakKeitor/registro-api-moodle-backend/internal/repository"
)

type SolicitudStore interface {
	List(ctx context.Context) ([]models.Solicitud, error)
	ApplyStatusChange(ctx context.Context, change models.StatusChange) (models.SolicitudStatus, error)
}

type Notifier interface {
	StatusChanged(ctx context.Context, ev events.StatusChanged) error
}

// ReviewService lists solicitudes and moves them through review.
type ReviewService struct {
	solicitudes SolicitudStore
	notifier    Notifier
	now         func() time.Time
	newID       func() string
	log         zerolog.Logger
}

func NewReviewService(solicitudes SolicitudStore, notifier Notifier, log zerolog.Logger) *ReviewService {
	return &ReviewService{
		solicitudes: solicitudes,
		notifier:    notifier,
		now:         time.Now,
		newID:       ids.New,
		log:         log,
	}
}

func (s *ReviewService) List(ctx context.Context) ([]SubmissionView, error) {
	items, err := s.solicitudes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list solicitudes: %w", err)
	}

	sortSolicitudes(items)

	views := make([]SubmissionView, 0, len(items))
	for _, item := range items {
		views = append(views, projectSolicitud(item))
	}
	return views, nil
}

type StatusResult struct {
	ID      string            `json:"id"`
	Status  ApplicationStatus `json:"status"`
	Message string            `json:"message"`
}

// UpdateStatus moves a solicitud to target ("approved", "rejected" or
// "in_review"). approved and rejected stamp their own timestamp with the
// current time; the other timestamp is left as is. A note that is blank
// after trimming is dropped.
func (s *ReviewService) UpdateStatus(ctx context.Context, actor models.Principal, id string, target string, note *string) (StatusResult, error) {
	status, err := ParseTarget(target)
	if err != nil {
		return StatusResult{}, err
	}

	now := s.now().UTC()
	change := models.StatusChange{
		SolicitudID: id,
		Status:      status,
	}
	switch status {
	case models.SolicitudApproved:
		change.ApprovedAt = &now
	case models.SolicitudRejected:
		change.RejectedAt = &now
	}

	if note != nil {
		if message := strings.TrimSpace(*note); message != "" {
			change.Note = &models.ReviewNote{
				ID:          s.newID(),
				SolicitudID: id,
				Message:     message,
				CreatedAt:   now,
			}
		}
	}

	previous, err := s.solicitudes.ApplyStatusChange(ctx, change)
	if err != nil {
		if errors.Is(err, repository.ErrSolicitudNotFound) {
			return StatusResult{}, ErrSolicitudNotFound
		}
		s.log.Error().Err(err).Str("solicitud_id", id).Str("target", target).Msg("update solicitud status failed")
		return StatusResult{}, fmt.Errorf("apply status change: %w", err)
	}

	s.notify(ctx, events.StatusChanged{
		SolicitudID: id,
		From:        string(previous),
		To:          string(status),
		ActorID:     actor.ID,
		HasNote:     change.Note != nil,
		At:          now,
	})

	return StatusResult{
		ID:      id,
		Status:  StatusFromStored(status),
		Message: statusMessage(status),
	}, nil
}

func (s *ReviewService) notify(ctx context.Context, ev events.StatusChanged) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.StatusChanged(ctx, ev); err != nil {
		s.log.Warn().Err(err).Str("solicitud_id", ev.SolicitudID).Msg("publish status change failed")
	}
}

func statusMessage(status models.SolicitudStatus) string {
	switch status {
	case models.SolicitudApproved:
		return "Solicitud aprobada exitosamente"
	case models.SolicitudRejected:
		return "Solicitud rechazada exitosamente"
	default:
		return "Solicitud actualizada exitosamente"
	}
}
