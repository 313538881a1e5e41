package repository

import (
	"context"

	"divtracker/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PushEventLogRepository interface {
	Record(ctx context.Context, eventType string, payload []byte) error
	Recent(ctx context.Context, limit int) ([]model.PushEventLog, error)
}

type pushEventLogRepository struct {
	db *gorm.DB
}

func NewPushEventLogRepository(db *gorm.DB) PushEventLogRepository {
	return &pushEventLogRepository{db: db}
}

func (r *pushEventLogRepository) Record(ctx context.Context, eventType string, payload []byte) error {
	entry := model.PushEventLog{
		EventType: eventType,
		Payload:   datatypes.JSON(payload),
	}
	return r.db.WithContext(ctx).Create(&entry).Error
}

func (r *pushEventLogRepository) Recent(ctx context.Context, limit int) ([]model.PushEventLog, error) {
	var entries []model.PushEventLog
	if err := r.db.WithContext(ctx).Order("id DESC").Limit(limit).Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
