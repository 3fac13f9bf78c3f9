package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Notification channels and delivery outcomes.
const (
	ChannelWhatsapp = "WHATSAPP"
	ChannelEmail    = "EMAIL"

	SendStatusSuccess = "SUCCESS"
	SendStatusFailed  = "FAILED"
)

// NotificationLog records one delivery attempt for a submission. Rows are
// insert-only; the core never updates or deletes them.
type NotificationLog struct {
	ID           string         `gorm:"primaryKey;column:id;type:varchar(36)" json:"id"`
	SubmissionID string         `gorm:"column:submission_id;type:varchar(36);not null;index" json:"submission_id"`
	Channel      string         `gorm:"column:channel;not null" json:"channel"`
	SendStatus   string         `gorm:"column:send_status;not null" json:"send_status"`
	Payload      datatypes.JSON `gorm:"column:payload;not null" json:"payload"`
	CreatedAt    time.Time      `gorm:"column:created_at" json:"created_at"`
}

func (NotificationLog) TableName() string {
	return "notification_logs"
}

func (l *NotificationLog) BeforeCreate(*gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
