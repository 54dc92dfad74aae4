package lifecycle

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/robfig/cron/v3"
)

const (
	DefaultSchedule      = "0 0 * * *"
	DefaultRetentionDays = 3
)

type (
	LifecycleService interface {
		Sweep(ctx context.Context, now time.Time) (int64, error)
		Start() error
		Stop() context.Context
	}

	lifecycleService struct {
		lifecycleRepository LifecycleRepository
		retention           time.Duration
		schedule            string
		cron                *cron.Cron
	}
)

func NewLifecycleService(lifecycleRepository LifecycleRepository, schedule string, retentionDays int) LifecycleService {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	if retentionDays <= 0 {
		retentionDays = DefaultRetentionDays
	}
	return &lifecycleService{
		lifecycleRepository: lifecycleRepository,
		retention:           time.Duration(retentionDays) * 24 * time.Hour,
		schedule:            schedule,
		cron:                cron.New(),
	}
}

// Sweep composts every edible listing still available after the retention
// window. Running it again over the same data changes nothing.
func (s *lifecycleService) Sweep(ctx context.Context, now time.Time) (int64, error) {
	return s.lifecycleRepository.CompostStaleFoods(ctx, now.UTC().Add(-s.retention))
}

// Start schedules Sweep on the cron expression. A failed run is only logged;
// the next tick picks up whatever it missed.
func (s *lifecycleService) Start() error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		count, err := s.Sweep(context.Background(), time.Now().UTC())
		if err != nil {
			log.Errorf("food lifecycle sweep failed: %v", err)
			return
		}
		log.Infof("food lifecycle sweep composted %d listings", count)
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Infof("food lifecycle job scheduled at %q", s.schedule)
	return nil
}

// Stop halts the scheduler. The returned context is done once a running
// sweep has finished.
func (s *lifecycleService) Stop() context.Context {
	return s.cron.Stop()
}
