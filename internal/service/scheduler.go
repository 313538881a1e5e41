package service

import (
	"context"
	"fmt"
	"sync"

	"divtracker/config"
	"divtracker/internal/dto"
	"divtracker/pkg/logger"

	"github.com/robfig/cron/v3"
)

// AutoRefreshScheduler runs the periodic silent refresh. Each tick performs
// one refresh with the default list parameters and never surfaces errors;
// stale local data is acceptable until the next successful tick. Stop is
// idempotent and does not cancel a refresh already in flight.
type AutoRefreshScheduler interface {
	Start(ctx context.Context)
	Stop()
}

type autoRefreshScheduler struct {
	cfg  *config.Config
	log  *logger.Logger
	sync WatchlistSyncService

	mu   sync.Mutex
	cron *cron.Cron
}

func NewAutoRefreshScheduler(cfg *config.Config, log *logger.Logger, syncService WatchlistSyncService) AutoRefreshScheduler {
	return &autoRefreshScheduler{
		cfg:  cfg,
		log:  log,
		sync: syncService,
	}
}

func (s *autoRefreshScheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil {
		return
	}

	c := cron.New(cron.WithSeconds())
	spec := fmt.Sprintf("@every %s", s.cfg.Scheduler.AutoRefreshInterval)
	_, err := c.AddFunc(spec, func() {
		if err := s.sync.Refresh(ctx, dto.DefaultListParam()); err != nil {
			// Silent refresh: log at debug so a flaky network does not
			// spam the logs.
			s.log.DebugContext(ctx, "Silent refresh failed", logger.ErrorField(err))
		}
	})
	if err != nil {
		s.log.Error("Failed to schedule auto refresh", logger.ErrorField(err))
		return
	}

	c.Start()
	s.cron = c
	s.log.Info("Auto refresh started",
		logger.StringField("interval", s.cfg.Scheduler.AutoRefreshInterval.String()))
}

func (s *autoRefreshScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron == nil {
		return
	}

	// cron.Stop only prevents future ticks; a tick already running keeps
	// its own context and finishes on its own.
	s.cron.Stop()
	s.cron = nil
	s.log.Info("Auto refresh stopped")
}
