package repository

import (
	"context"

	"divtracker/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PreferenceRepository is the small durable key-value store holding the
// push token, the generated device id and the auth token.
type PreferenceRepository interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

type preferenceRepository struct {
	db *gorm.DB
}

func NewPreferenceRepository(db *gorm.DB) PreferenceRepository {
	return &preferenceRepository{db: db}
}

func (r *preferenceRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var pref model.Preference
	err := r.db.WithContext(ctx).First(&pref, "key = ?", key).Error
	if err == gorm.ErrRecordNotFound {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return pref.Value, true, nil
}

func (r *preferenceRepository) Set(ctx context.Context, key, value string) error {
	pref := model.Preference{Key: key, Value: value}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&pref).Error
}

func (r *preferenceRepository) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Delete(&model.Preference{}, "key = ?", key).Error
}
