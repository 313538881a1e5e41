package service

import (
	"divtracker/config"
	"divtracker/internal/repository"
	"divtracker/pkg/httpclient"
	"divtracker/pkg/logger"
	"divtracker/pkg/notify"
)

type Service struct {
	WatchlistSync WatchlistSyncService
	AuthService   AuthService
	DeviceService DeviceService
	PushHandler   PushHandler
	PushEventLog  repository.PushEventLogRepository
	Scheduler     AutoRefreshScheduler
}

func NewService(
	cfg *config.Config,
	log *logger.Logger,
	repo *repository.Repository,
	client httpclient.HTTPClient,
	notifier notify.Notifier,
) *Service {
	watchlistSync := NewWatchlistSyncService(log, repo.WatchlistAPIRepo, repo.WatchlistStore)
	deviceService := NewDeviceService(cfg, log, repo.DeviceAPIRepo, repo.PreferenceRepo)
	authService := NewAuthService(log, repo.AuthAPIRepo, repo.PreferenceRepo, deviceService, client)
	pushHandler := NewPushHandler(log, repo.WatchlistStore, repo.PushEventLogRepo, deviceService, notifier)
	scheduler := NewAutoRefreshScheduler(cfg, log, watchlistSync)

	return &Service{
		WatchlistSync: watchlistSync,
		AuthService:   authService,
		DeviceService: deviceService,
		PushHandler:   pushHandler,
		PushEventLog:  repo.PushEventLogRepo,
		Scheduler:     scheduler,
	}
}
