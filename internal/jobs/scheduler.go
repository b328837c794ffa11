package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

type Enqueuer interface {
	FileAudit(ctx context.Context, slot time.Time) (bool, error)
}

// Scheduler enqueues periodic maintenance tasks. Each worker replica runs
// one; the enqueuer makes sure a slot is queued only once.
type Scheduler struct {
	cron     *cron.Cron
	queue    Enqueuer
	schedule string
	now      func() time.Time
	log      zerolog.Logger
}

func NewScheduler(queue Enqueuer, fileAuditSchedule string, log zerolog.Logger) *Scheduler {
	c := cron.New(cron.WithSeconds())
	return &Scheduler{
		cron:     c,
		queue:    queue,
		schedule: fileAuditSchedule,
		now:      time.Now,
		log:      log,
	}
}

func (s *Scheduler) Start() error {
	if s.queue == nil || s.schedule == "" {
		return nil
	}

	if _, err := s.cron.AddFunc(s.schedule, s.enqueueFileAudit); err != nil {
		return fmt.Errorf("schedule file audit %q: %w", s.schedule, err)
	}

	s.cron.Start()
	s.log.Info().Str("schedule", s.schedule).Msg("file audit scheduled")
	return nil
}

// Stop halts the scheduler and waits for a running job to return.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) enqueueFileAudit() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	enqueued, err := s.queue.FileAudit(ctx, s.now())
	if err != nil {
		s.log.Error().Err(err).Msg("enqueue file audit failed")
		return
	}
	if !enqueued {
		s.log.Debug().Msg("file audit already enqueued by another worker")
		return
	}
	s.log.Info().Msg("file audit enqueued")
}
