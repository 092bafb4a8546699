package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

const sweepTimeout = time.Minute

// ExpiredDeleter is the part of the notification repository the sweeper needs.
type ExpiredDeleter interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// Sweeper periodically deletes notifications of all users whose expiry has
// passed. Reminder generation itself is never scheduled here.
type Sweeper struct {
	cronEngine *cron.Cron
	repo       ExpiredDeleter
	spec       string
	log        *slog.Logger
	now        func() time.Time
}

func NewSweeper(repo ExpiredDeleter, spec string, log *slog.Logger) *Sweeper {
	return &Sweeper{
		cronEngine: cron.New(cron.WithLocation(time.Local)),
		repo:       repo,
		spec:       spec,
		log:        log.With(slog.String("component", "scheduler")),
		now:        time.Now,
	}
}

// Start registers the sweep job and starts the cron engine. An empty spec
// leaves the sweeper disabled.
func (s *Sweeper) Start() error {
	const op = "scheduler.Sweeper.Start"

	if s.spec == "" {
		s.log.Info("notification sweeper disabled")
		return nil
	}

	_, err := s.cronEngine.AddFunc(s.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
		defer cancel()
		if _, err := s.Sweep(ctx); err != nil {
			s.log.Error("sweep failed", slog.String("error", err.Error()))
		}
	})
	if err != nil {
		return fmt.Errorf("%s: invalid cron spec %q: %w", op, s.spec, err)
	}

	s.cronEngine.Start()
	s.log.Info("notification sweeper started", slog.String("spec", s.spec))
	return nil
}

// Sweep runs one deletion pass immediately.
func (s *Sweeper) Sweep(ctx context.Context) (int64, error) {
	const op = "scheduler.Sweeper.Sweep"

	n, err := s.repo.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if n > 0 {
		s.log.Info("expired notifications removed", slog.Int64("count", n))
	}
	return n, nil
}

// Stop waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	ctx := s.cronEngine.Stop()
	<-ctx.Done()
	s.log.Info("notification sweeper stopped")
}
