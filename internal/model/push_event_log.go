package model

import (
	"time"

	"gorm.io/datatypes"
)

// PushEventLog journals every payload received on the push webhook. Kept for
// debugging dropped or malformed events; never read on the hot path.
type PushEventLog struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	EventType string         `gorm:"index" json:"event_type"`
	Payload   datatypes.JSON `json:"payload"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (PushEventLog) TableName() string {
	return "push_event_logs"
}
