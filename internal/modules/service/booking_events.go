package service

import (
	"context"
	"fmt"
	"time"

	"github.com/tonelab-collective/booking/internal/modules/model"
	"go.uber.org/zap"
)

// RoutingKeyBookingCreated is the topic a new booking is published under.
const RoutingKeyBookingCreated = "booking.created"

type BookingCreatedEvent struct {
	Booking    model.Booking `json:"booking"`
	OccurredAt time.Time     `json:"occurredAt"`
}

// BookingEvents schedules the follow-up for a stored booking without blocking
// the request.
type BookingEvents interface {
	BookingCreated(ctx context.Context, b *model.Booking) error
}

// InlineEvents runs the follow-up on a detached goroutine.
type InlineEvents struct {
	FollowUp FollowUp
	Timeout  time.Duration
	Log      *zap.Logger
}

func (e *InlineEvents) BookingCreated(ctx context.Context, b *model.Booking) error {
	snapshot := *b
	timeout := e.Timeout
	if timeout <= 0 {
		timeout = time.Minute
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
		defer cancel()
		defer func() {
			if r := recover(); r != nil {
				e.Log.Error("booking follow-up panicked", zap.String("booking_id", snapshot.ID.String()), zap.Any("panic", r))
			}
		}()
		e.FollowUp.Run(ctx, &snapshot)
	}()
	return nil
}

// Publisher is the queue side of QueueEvents. mq.Publisher satisfies it.
type Publisher interface {
	PublishJSON(ctx context.Context, exchange, routingKey string, body any) error
}

// QueueEvents publishes booking.created and falls back to Fallback when the
// broker is unavailable.
type QueueEvents struct {
	Publisher Publisher
	Exchange  string
	Fallback  BookingEvents
	Log       *zap.Logger
}

func (e *QueueEvents) BookingCreated(ctx context.Context, b *model.Booking) error {
	evt := BookingCreatedEvent{Booking: *b, OccurredAt: time.Now().UTC()}
	err := e.Publisher.PublishJSON(ctx, e.Exchange, RoutingKeyBookingCreated, evt)
	if err == nil {
		return nil
	}
	e.Log.Warn("publish booking.created failed", zap.String("booking_id", b.ID.String()), zap.Error(err))
	if e.Fallback == nil {
		return fmt.Errorf("publish booking.created: %w", err)
	}
	return e.Fallback.BookingCreated(ctx, b)
}
