package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/tonelab-collective/booking/internal/modules/service"
	"go.uber.org/zap"
)

// MessageSource delivers raw message bodies to handler until ctx ends.
// mq.Consumer satisfies it.
type MessageSource interface {
	Handle(ctx context.Context, handler func(context.Context, []byte) error) error
}

const (
	minRetryDelay = time.Second
	maxRetryDelay = 30 * time.Second
)

type BookingConsumer struct {
	src      MessageSource
	followUp service.FollowUp
	timeout  time.Duration
	log      *zap.Logger

	retryDelay time.Duration
}

func NewBookingConsumer(src MessageSource, followUp service.FollowUp, timeout time.Duration, log *zap.Logger) *BookingConsumer {
	if timeout <= 0 {
		timeout = time.Minute
	}
	return &BookingConsumer{src: src, followUp: followUp, timeout: timeout, log: log, retryDelay: minRetryDelay}
}

// HandleMessage runs the follow-up for one booking.created body. Malformed
// bodies are reported so the broker drops them after one retry.
func (c *BookingConsumer) HandleMessage(ctx context.Context, body []byte) error {
	var evt service.BookingCreatedEvent
	if err := sonic.Unmarshal(body, &evt); err != nil {
		return fmt.Errorf("decode booking.created: %w", err)
	}
	if evt.Booking.ID == uuid.Nil {
		return errors.New("booking.created without booking id")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	res := c.followUp.Run(ctx, &evt.Booking)
	c.log.Info("booking follow-up done",
		zap.String("booking_id", evt.Booking.ID.String()),
		zap.String("channel", res.Channel),
		zap.Bool("delivered", res.Delivered),
	)
	return nil
}

// Run blocks until ctx is cancelled. When the source stops on its own, for
// example after a broker restart, it is resumed with exponential backoff.
func (c *BookingConsumer) Run(ctx context.Context) error {
	delay := c.retryDelay
	for {
		started := time.Now()
		err := c.src.Handle(ctx, c.HandleMessage)
		if ctx.Err() != nil {
			return nil
		}
		if time.Since(started) > maxRetryDelay {
			delay = c.retryDelay
		}
		c.log.Warn("booking.created consumer interrupted, retrying",
			zap.Error(err), zap.Duration("backoff", delay))

		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil
		case <-t.C:
		}
		delay *= 2
		if delay > maxRetryDelay {
			delay = maxRetryDelay
		}
	}
}
