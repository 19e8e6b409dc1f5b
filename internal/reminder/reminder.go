// Package reminder runs the opt-in daily due-words notification. It
// lives outside the request-driven core: nothing here is required for
// practice, import or export to work.
package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"github.com/miickii/HSKTrainer-sub000/internal/vocab"
)

// Notifier delivers a due-words reminder to the user.
type Notifier interface {
	SendReminder(dueCount int) error
}

// Reminder schedules a daily check of how many words are due.
type Reminder struct {
	scheduler *gocron.Scheduler
	repo      *vocab.Repository
	notifier  Notifier
	log       *zap.Logger
	hour      int
}

// New creates a reminder firing daily at the given local hour.
func New(repo *vocab.Repository, notifier Notifier, hour int, log *zap.Logger) *Reminder {
	return &Reminder{
		scheduler: gocron.NewScheduler(time.Local),
		repo:      repo,
		notifier:  notifier,
		log:       log,
		hour:      hour,
	}
}

// Start begins the daily job without blocking.
func (r *Reminder) Start() error {
	at := fmt.Sprintf("%02d:00", r.hour)
	if _, err := r.scheduler.Every(1).Day().At(at).Do(r.check); err != nil {
		return fmt.Errorf("failed to schedule reminder: %v", err)
	}
	r.scheduler.StartAsync()
	return nil
}

// Stop terminates the scheduled job.
func (r *Reminder) Stop() {
	r.scheduler.Stop()
}

// RunManualCheck forces a check outside the schedule.
func (r *Reminder) RunManualCheck(ctx context.Context) error {
	return r.checkContext(ctx)
}

func (r *Reminder) check() {
	if err := r.checkContext(context.Background()); err != nil {
		r.log.Error("reminder check failed", zap.Error(err))
	}
}

func (r *Reminder) checkContext(ctx context.Context) error {
	stats, err := r.repo.Stats(ctx)
	if err != nil {
		return err
	}
	if stats.DueToday == 0 {
		r.log.Debug("no words due, skipping reminder")
		return nil
	}
	return r.notifier.SendReminder(stats.DueToday)
}
