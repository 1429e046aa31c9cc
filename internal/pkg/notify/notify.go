package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tonelab-collective/booking/internal/infra/httpclient"
	"github.com/tonelab-collective/booking/internal/modules/model"
	"go.uber.org/zap"
)

// FallbackChannel names the log fallback in a Result.
const FallbackChannel = "log"

// Alert is the human-readable summary of a new booking.
type Alert struct {
	BookingID     string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	EventName     string
	Amount        int
	HasReceipt    bool
}

// NewAlert builds an Alert from a stored booking.
func NewAlert(b *model.Booking, eventName string, amount int) Alert {
	return Alert{
		BookingID:     b.ID.String(),
		CustomerName:  b.FullName,
		CustomerEmail: b.Email,
		CustomerPhone: b.Telephone,
		EventName:     eventName,
		Amount:        amount,
		HasReceipt:    b.HasReceipt(),
	}
}

func (a Alert) ReceiptStatus() string {
	if a.HasReceipt {
		return "Uploaded"
	}
	return "Not uploaded"
}

func (a Alert) AmountText() string {
	return fmt.Sprintf("฿%d", a.Amount)
}

// Text renders the alert as plain multi-line text.
func (a Alert) Text() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Customer: %s\n", a.CustomerName)
	fmt.Fprintf(&sb, "Email: %s\n", a.CustomerEmail)
	fmt.Fprintf(&sb, "Phone: %s\n", a.CustomerPhone)
	if a.EventName != "" {
		fmt.Fprintf(&sb, "Event: %s\n", a.EventName)
	}
	fmt.Fprintf(&sb, "Amount: %s\n", a.AmountText())
	fmt.Fprintf(&sb, "Booking ID: %s\n", a.BookingID)
	fmt.Fprintf(&sb, "Receipt: %s", a.ReceiptStatus())
	return sb.String()
}

// Channel is one delivery strategy. Attempt returns the HTTP status it saw (0 if none)
// and a non-nil error when delivery did not succeed.
type Channel interface {
	Name() string
	Attempt(ctx context.Context, a Alert) (int, error)
}

type Result struct {
	Delivered bool
	Channel   string
	Attempts  []model.DeliveryAttempt
}

// Dispatcher tries its channels once each, in order, and stops at the first success.
// When every channel fails the alert is written to the log.
type Dispatcher struct {
	channels []Channel
	timeout  time.Duration
	log      *zap.Logger
}

func NewDispatcher(log *zap.Logger, timeout time.Duration, channels ...Channel) *Dispatcher {
	list := make([]Channel, 0, len(channels))
	for _, ch := range channels {
		if ch != nil {
			list = append(list, ch)
		}
	}
	return &Dispatcher{channels: list, timeout: timeout, log: log}
}

// Channels returns the configured channel names in priority order.
func (d *Dispatcher) Channels() []string {
	names := make([]string, 0, len(d.channels))
	for _, ch := range d.channels {
		names = append(names, ch.Name())
	}
	return names
}

// Dispatch never returns an error; Result.Delivered is false when only the log fallback ran.
func (d *Dispatcher) Dispatch(ctx context.Context, a Alert) Result {
	res := Result{Attempts: make([]model.DeliveryAttempt, 0, len(d.channels))}

	for _, ch := range d.channels {
		attempt, err := d.attempt(ctx, ch, a)
		res.Attempts = append(res.Attempts, attempt)
		if err == nil {
			d.log.Info("booking notification sent",
				zap.String("channel", ch.Name()),
				zap.String("booking_id", a.BookingID))
			res.Delivered = true
			res.Channel = ch.Name()
			return res
		}
		d.log.Warn("notification channel failed",
			zap.String("channel", ch.Name()),
			zap.String("booking_id", a.BookingID),
			zap.Error(err))
	}

	d.logFallback(a)
	res.Channel = FallbackChannel
	return res
}

func (d *Dispatcher) attempt(ctx context.Context, ch Channel, a Alert) (attempt model.DeliveryAttempt, err error) {
	attempt.Channel = ch.Name()
	start := time.Now()
	defer func() {
		attempt.DurationMS = time.Since(start).Milliseconds()
		if r := recover(); r != nil {
			err = fmt.Errorf("channel panicked: %v", r)
			attempt.Error = err.Error()
		}
	}()

	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	status, err := ch.Attempt(ctx, a)
	attempt.StatusCode = status
	if err != nil {
		attempt.Error = err.Error()
	}
	return attempt, err
}

func (d *Dispatcher) logFallback(a Alert) {
	d.log.Warn("NEW BOOKING ALERT (all notification channels failed)",
		zap.String("booking_id", a.BookingID),
		zap.String("customer", a.CustomerName),
		zap.String("email", a.CustomerEmail),
		zap.String("phone", a.CustomerPhone),
		zap.String("event", a.EventName),
		zap.String("amount", a.AmountText()),
		zap.String("receipt", a.ReceiptStatus()))
}

// statusOf extracts the HTTP status from a client error, if any.
func statusOf(status int, err error) int {
	var se *httpclient.StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return status
}
