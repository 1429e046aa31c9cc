package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tonelab-collective/booking/internal/config"
	"github.com/tonelab-collective/booking/internal/modules/model"
	"github.com/tonelab-collective/booking/internal/modules/repo"
	"github.com/tonelab-collective/booking/internal/pkg/notify"
	"github.com/tonelab-collective/booking/internal/telemetry"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// Dispatcher delivers a booking alert. notify.Dispatcher satisfies it.
type Dispatcher interface {
	Dispatch(ctx context.Context, a notify.Alert) notify.Result
}

var _ Dispatcher = (*notify.Dispatcher)(nil)

// FollowUp runs the post-booking side effects. None of them can fail the booking.
type FollowUp interface {
	Run(ctx context.Context, b *model.Booking) notify.Result
}

type followUp struct {
	mirror     Mirror
	dispatcher Dispatcher
	logs       repo.NotificationLogRepo
	cfg        *config.Config
	log        *zap.Logger
}

// NewFollowUp builds the runner; mirror and logs may be nil.
func NewFollowUp(mirror Mirror, dispatcher Dispatcher, logs repo.NotificationLogRepo, cfg *config.Config, log *zap.Logger) FollowUp {
	return &followUp{mirror: mirror, dispatcher: dispatcher, logs: logs, cfg: cfg, log: log}
}

func (f *followUp) Run(ctx context.Context, b *model.Booking) notify.Result {
	log := f.log.With(zap.String("booking_id", b.ID.String()))

	if f.mirror != nil {
		if err := f.mirror.Append(ctx, b); err != nil {
			log.Warn("sheet sync failed", zap.Error(err))
		}
	}

	start := time.Now()
	alert := notify.NewAlert(b, f.cfg.Event.Name, f.cfg.CurrentPrice(b.CreatedAt))
	res := f.dispatcher.Dispatch(ctx, alert)
	telemetry.RecordNotification(ctx, res.Channel, res.Delivered, float64(time.Since(start).Milliseconds()))

	if f.logs != nil {
		entry := &model.NotificationLog{
			BookingID: b.ID,
			Delivered: res.Delivered,
			Channel:   res.Channel,
			Attempts:  datatypes.NewJSONType(res.Attempts),
		}
		if err := f.logs.Create(ctx, entry); err != nil {
			log.Warn("notification log not saved", zap.Error(err))
		}
	}
	return res
}

// NotificationHistory reads back the delivery log written by FollowUp.
type NotificationHistory interface {
	ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*model.NotificationLog, error)
}

type notificationHistory struct {
	logs repo.NotificationLogRepo
}

func NewNotificationHistory(logs repo.NotificationLogRepo) NotificationHistory {
	return &notificationHistory{logs: logs}
}

// ListByBooking returns the runs oldest first, never nil.
func (h *notificationHistory) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*model.NotificationLog, error) {
	items, err := h.logs.ListByBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*model.NotificationLog{}
	}
	return items, nil
}
