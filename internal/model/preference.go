package model

import "time"

// Preference keys persisted across restarts.
const (
	PrefKeyPushToken = "push_token"
	PrefKeyDeviceID  = "device_id"
	PrefKeyAuthToken = "auth_token"
)

// Preference is one row of the small key-value preference store.
type Preference struct {
	Key       string    `gorm:"primaryKey" json:"key"`
	Value     string    `gorm:"not null" json:"value"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Preference) TableName() string {
	return "preferences"
}
