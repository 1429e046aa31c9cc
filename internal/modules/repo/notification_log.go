package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/tonelab-collective/booking/internal/modules/model"
	"gorm.io/gorm"
)

type NotificationLogRepo interface {
	Create(ctx context.Context, l *model.NotificationLog) error
	ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*model.NotificationLog, error)
}

type notificationLogRepo struct{ db *gorm.DB }

func NewNotificationLogRepo(db *gorm.DB) NotificationLogRepo {
	return &notificationLogRepo{db: db}
}

func (r *notificationLogRepo) Create(ctx context.Context, l *model.NotificationLog) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *notificationLogRepo) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*model.NotificationLog, error) {
	var out []*model.NotificationLog
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("created_at ASC").
		Find(&out).Error
	return out, err
}
