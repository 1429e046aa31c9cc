package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	bookingCounter         metric.Int64Counter
	bookingRejectedCounter metric.Int64Counter

	notificationCounter  metric.Int64Counter
	notificationDuration metric.Float64Histogram
)

// InitBookingMetrics registers instruments on the global meter provider. Until it
// runs the Record helpers are no-ops.
func InitBookingMetrics() error {
	meter := otel.Meter("tonelab.booking")

	var err error

	bookingCounter, err = meter.Int64Counter(
		"booking.created",
		metric.WithDescription("Number of bookings accepted"),
		metric.WithUnit("{booking}"),
	)
	if err != nil {
		return err
	}

	bookingRejectedCounter, err = meter.Int64Counter(
		"booking.rejected",
		metric.WithDescription("Number of booking submissions rejected"),
		metric.WithUnit("{booking}"),
	)
	if err != nil {
		return err
	}

	notificationCounter, err = meter.Int64Counter(
		"booking.notification.count",
		metric.WithDescription("Notification dispatches by winning channel"),
		metric.WithUnit("{notification}"),
	)
	if err != nil {
		return err
	}

	notificationDuration, err = meter.Float64Histogram(
		"booking.notification.duration",
		metric.WithDescription("Time spent walking the notification chain"),
		metric.WithUnit("ms"),
	)
	return err
}

func RecordBookingCreated(ctx context.Context) {
	if bookingCounter != nil {
		bookingCounter.Add(ctx, 1)
	}
}

// RecordBookingRejected counts a rejection; reason is "validation" or "duplicate".
func RecordBookingRejected(ctx context.Context, reason string) {
	if bookingRejectedCounter != nil {
		bookingRejectedCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
	}
}

func RecordNotification(ctx context.Context, channel string, delivered bool, durationMs float64) {
	attrs := metric.WithAttributes(
		attribute.String("channel", channel),
		attribute.Bool("delivered", delivered),
	)
	if notificationCounter != nil {
		notificationCounter.Add(ctx, 1, attrs)
	}
	if notificationDuration != nil {
		notificationDuration.Record(ctx, durationMs, attrs)
	}
}
