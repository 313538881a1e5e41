package service

import (
	"context"
	"testing"
	"time"

	"divtracker/config"
	"divtracker/pkg/logger"
)

func TestAutoRefreshScheduler_StartStopIdempotent(t *testing.T) {
	cfg := &config.Config{}
	cfg.Scheduler.AutoRefreshInterval = time.Hour

	syncService := NewWatchlistSyncService(logger.NewNop(), &fakeWatchlistAPI{}, newTestStore(t))
	s := NewAutoRefreshScheduler(cfg, logger.NewNop(), syncService)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s.Start(ctx)
	s.Start(ctx)

	s.Stop()
	s.Stop()
}
