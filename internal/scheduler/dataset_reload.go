// Package scheduler runs the periodic dataset reload job.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/pkg/errors"

	"github.com/vitarsport/sales-analytics-api/infrastructure/dataset"
	"github.com/vitarsport/sales-analytics-api/internal/config"
	"github.com/vitarsport/sales-analytics-api/pkg/log"
)

// ErrReloadInProgress is returned when a reload is triggered while another
// one is still running.
var ErrReloadInProgress = errors.New("dataset reload already in progress")

// DatasetReloadService re-runs the loader on a cron schedule and swaps the
// fresh snapshot into the store. Reloads never run concurrently.
type DatasetReloadService struct {
	cfg       config.DatasetReload
	loader    dataset.Loader
	store     *dataset.Store
	scheduler *gocron.Scheduler

	mu        sync.Mutex
	isRunning bool
	lastRun   time.Time
	lastError error
}

// Status describes the reload job for the admin endpoint.
type Status struct {
	Enabled      bool      `json:"enabled"`
	CronSchedule string    `json:"cron_schedule"`
	IsRunning    bool      `json:"is_running"`
	LastRun      time.Time `json:"last_run,omitempty"`
	LastError    string    `json:"last_error,omitempty"`
}

func NewDatasetReloadService(cfg config.DatasetReload, loader dataset.Loader, store *dataset.Store) *DatasetReloadService {
	return &DatasetReloadService{
		cfg:    cfg,
		loader: loader,
		store:  store,
	}
}

// Start registers the cron job and launches the scheduler in the background.
// A disabled job is a no-op; the manual trigger keeps working either way.
func (s *DatasetReloadService) Start(ctx context.Context) error {
	if !s.cfg.Enabled {
		log.L.Info("dataset reload scheduler disabled")
		return nil
	}

	s.scheduler = gocron.NewScheduler(time.UTC)

	_, err := s.scheduler.Cron(s.cfg.CronSchedule).Do(func() {
		if err := s.reload(ctx); err != nil && !errors.Is(err, ErrReloadInProgress) {
			log.L.WithError(err).Error("scheduled dataset reload failed")
		}
	})
	if err != nil {
		return errors.Wrapf(err, "registering reload job with schedule %q", s.cfg.CronSchedule)
	}

	s.scheduler.StartAsync()
	log.L.WithField("cron", s.cfg.CronSchedule).Info("dataset reload scheduler started")
	return nil
}

// Stop halts the scheduler. A running reload finishes.
func (s *DatasetReloadService) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

// TriggerManualReload runs a reload immediately, refusing to overlap a
// running one.
func (s *DatasetReloadService) TriggerManualReload(ctx context.Context) error {
	return s.reload(ctx)
}

// GetStatus reports the job state for the admin endpoint.
func (s *DatasetReloadService) GetStatus() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := Status{
		Enabled:      s.cfg.Enabled,
		CronSchedule: s.cfg.CronSchedule,
		IsRunning:    s.isRunning,
		LastRun:      s.lastRun,
	}
	if s.lastError != nil {
		status.LastError = s.lastError.Error()
	}
	return status
}

func (s *DatasetReloadService) reload(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return ErrReloadInProgress
	}
	s.isRunning = true
	s.mu.Unlock()

	startTime := time.Now()
	log.L.Info("dataset reload started")

	snapshot, err := s.loader.Load(ctx)

	s.mu.Lock()
	s.isRunning = false
	s.lastRun = startTime
	s.lastError = err
	s.mu.Unlock()

	if err != nil {
		// The previous snapshot stays active, a failed reload never
		// degrades the served data.
		return errors.Wrap(err, "reloading dataset")
	}

	s.store.Swap(snapshot)
	log.L.WithField("duration_ms", time.Since(startTime).Milliseconds()).Info("dataset reload finished")
	return nil
}
