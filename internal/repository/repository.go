package repository

import (
	"divtracker/config"
	"divtracker/pkg/httpclient"
	"divtracker/pkg/logger"

	"gorm.io/gorm"
)

type Repository struct {
	WatchlistAPIRepo WatchlistAPIRepository
	AuthAPIRepo      AuthAPIRepository
	DeviceAPIRepo    DeviceAPIRepository
	WatchlistStore   WatchlistStoreRepository
	PreferenceRepo   PreferenceRepository
	PushEventLogRepo PushEventLogRepository
}

func NewRepository(cfg *config.Config, client httpclient.HTTPClient, db *gorm.DB, log *logger.Logger) (*Repository, error) {
	return &Repository{
		WatchlistAPIRepo: NewWatchlistAPIRepository(cfg, log, client),
		AuthAPIRepo:      NewAuthAPIRepository(log, client),
		DeviceAPIRepo:    NewDeviceAPIRepository(log, client),
		WatchlistStore:   NewWatchlistStoreRepository(db, log),
		PreferenceRepo:   NewPreferenceRepository(db),
		PushEventLogRepo: NewPushEventLogRepository(db),
	}, nil
}
