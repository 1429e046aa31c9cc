package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// NotificationLog records one dispatcher run for a booking.
type NotificationLog struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	BookingID uuid.UUID `gorm:"type:uuid;not null;index:ix_notification_log_booking_id" json:"booking_id"`

	Delivered bool   `gorm:"not null" json:"delivered"`
	Channel   string `gorm:"type:text;not null" json:"channel"`

	Attempts datatypes.JSONType[[]DeliveryAttempt] `gorm:"type:jsonb;not null" swaggertype:"array,object" json:"attempts"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (NotificationLog) TableName() string { return "notification_logs" }

type DeliveryAttempt struct {
	Channel    string `json:"channel"`
	StatusCode int    `json:"status_code,omitempty"`
	Error      string `json:"error,omitempty"`
	DurationMS int64  `json:"duration_ms"`
}
