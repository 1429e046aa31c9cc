package bootstrap

import (
	"context"
	"errors"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tonelab-collective/booking/internal/config"
	"github.com/tonelab-collective/booking/internal/infra/blob"
	"github.com/tonelab-collective/booking/internal/infra/cache"
	"github.com/tonelab-collective/booking/internal/infra/db"
	"github.com/tonelab-collective/booking/internal/infra/httpclient"
	"github.com/tonelab-collective/booking/internal/infra/logger"
	mq "github.com/tonelab-collective/booking/internal/infra/queue"
	"github.com/tonelab-collective/booking/internal/infra/sheets"
	"github.com/tonelab-collective/booking/internal/modules/handler"
	"github.com/tonelab-collective/booking/internal/modules/repo"
	"github.com/tonelab-collective/booking/internal/modules/service"
	"github.com/tonelab-collective/booking/internal/pkg/notify"
	"github.com/tonelab-collective/booking/internal/worker"
)

// ErrQueueDisabled is returned when a queue component is requested while
// rabbitmq.enabled is false.
var ErrQueueDisabled = errors.New("rabbitmq is disabled")

func BuildContainer() *do.Injector {
	inj := do.New()

	// config
	do.Provide(inj, func(i *do.Injector) (*config.Config, error) {
		return config.Load()
	})

	// logger
	do.Provide(inj, func(i *do.Injector) (*zap.Logger, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return logger.New(cfg.Log.Level)
	})

	// DB
	do.Provide(inj, func(i *do.Injector) (*gorm.DB, error) {
		cfg := do.MustInvoke[*config.Config](i)
		d, err := db.New(cfg)
		if err != nil {
			return nil, err
		}
		if cfg.Database.AutoMigrate {
			if err := db.Migrate(context.Background(), d); err != nil {
				return nil, err
			}
		}
		return d, nil
	})

	// Redis
	do.Provide(inj, func(i *do.Injector) (*redis.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return cache.New(context.Background(), cfg)
	})

	provideQueue(inj)

	// S3
	do.Provide(inj, func(i *do.Injector) (*blob.S3Deps, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return blob.NewS3(context.Background(), cfg)
	})
	// get presign expire duration
	do.Provide(inj, func(i *do.Injector) (func() time.Duration, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return func() time.Duration {
			if cfg.S3.PresignExpireSec <= 0 {
				return 15 * time.Minute
			}
			return time.Duration(cfg.S3.PresignExpireSec) * time.Second
		}, nil
	})

	// Google Sheets mirror; a nil Mirror disables sync and merge on read
	do.Provide(inj, func(i *do.Injector) (service.Mirror, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if !cfg.Sheets.Enabled {
			return nil, nil
		}
		m, err := sheets.New(context.Background(), cfg.Sheets)
		if err != nil {
			return nil, err
		}
		return m, nil
	})

	// outbound HTTP client shared by the notification channels
	do.Provide(inj, func(i *do.Injector) (*httpclient.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return httpclient.New(cfg.Notify.ChannelTimeout, do.MustInvoke[*zap.Logger](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*notify.Dispatcher, error) {
		cfg := do.MustInvoke[*config.Config](i)
		log := do.MustInvoke[*zap.Logger](i)
		channels := notify.ChannelsFromConfig(cfg.Notify, do.MustInvoke[*httpclient.Client](i))
		d := notify.NewDispatcher(log, cfg.Notify.ChannelTimeout, channels...)
		log.Sugar().Infow("notification chain", "channels", d.Channels())
		return d, nil
	})

	do.Provide(inj, func(i *do.Injector) (repo.BookingRepo, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return repo.NewBookingRepo(do.MustInvoke[*gorm.DB](i), cfg.Location()), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.SiteContentRepo, error) {
		return repo.NewSiteContentRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.NotificationLogRepo, error) {
		return repo.NewNotificationLogRepo(do.MustInvoke[*gorm.DB](i)), nil
	})

	do.Provide(inj, func(i *do.Injector) (service.FollowUp, error) {
		return service.NewFollowUp(
			do.MustInvoke[service.Mirror](i),
			do.MustInvoke[*notify.Dispatcher](i),
			do.MustInvoke[repo.NotificationLogRepo](i),
			do.MustInvoke[*config.Config](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	// booking.created goes through RabbitMQ when enabled, otherwise straight to
	// a detached goroutine
	do.Provide(inj, func(i *do.Injector) (service.BookingEvents, error) {
		cfg := do.MustInvoke[*config.Config](i)
		log := do.MustInvoke[*zap.Logger](i)
		inline := &service.InlineEvents{
			FollowUp: do.MustInvoke[service.FollowUp](i),
			Timeout:  cfg.Notify.FollowUpTimeout,
			Log:      log,
		}
		if !cfg.RabbitMQ.Enabled {
			return inline, nil
		}
		pub, err := do.Invoke[*mq.Publisher](i)
		if err != nil {
			log.Warn("rabbitmq unavailable, running follow-ups inline", zap.Error(err))
			return inline, nil
		}
		return &service.QueueEvents{Publisher: pub, Exchange: cfg.RabbitMQ.Exchange, Fallback: inline, Log: log}, nil
	})

	do.Provide(inj, func(i *do.Injector) (service.BookingService, error) {
		return service.NewBookingService(
			do.MustInvoke[repo.BookingRepo](i),
			do.MustInvoke[service.Mirror](i),
			do.MustInvoke[service.BookingEvents](i),
			do.MustInvoke[*config.Config](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.ContentService, error) {
		return service.NewContentService(
			do.MustInvoke[repo.SiteContentRepo](i),
			do.MustInvoke[*zap.Logger](i),
		)
	})
	do.Provide(inj, func(i *do.Injector) (service.AdminService, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return service.NewAdminService(do.MustInvoke[*redis.Client](i), cfg.Admin, do.MustInvoke[*zap.Logger](i))
	})
	do.Provide(inj, func(i *do.Injector) (service.ReceiptService, error) {
		return service.NewReceiptService(
			do.MustInvoke[*blob.S3Deps](i),
			do.MustInvoke[func() time.Duration](i),
		), nil
	})

	// booking.created worker
	do.Provide(inj, func(i *do.Injector) (*worker.BookingConsumer, error) {
		cfg := do.MustInvoke[*config.Config](i)
		c, err := do.Invoke[*mq.Consumer](i)
		if err != nil {
			return nil, err
		}
		return worker.NewBookingConsumer(c, do.MustInvoke[service.FollowUp](i), cfg.Notify.FollowUpTimeout, do.MustInvoke[*zap.Logger](i)), nil
	})

	do.Provide(inj, func(i *do.Injector) (service.NotificationHistory, error) {
		return service.NewNotificationHistory(do.MustInvoke[repo.NotificationLogRepo](i)), nil
	})

	// Handler
	do.Provide(inj, func(i *do.Injector) (*handler.BookingHandler, error) {
		return handler.NewBookingHandler(do.MustInvoke[service.BookingService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.ContentHandler, error) {
		return handler.NewContentHandler(
			do.MustInvoke[service.ContentService](i),
			do.MustInvoke[service.ReceiptService](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.AdminHandler, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return handler.NewAdminHandler(
			do.MustInvoke[service.AdminService](i),
			do.MustInvoke[service.BookingService](i),
			do.MustInvoke[service.NotificationHistory](i),
			cfg.Admin.CookieSecure,
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.ReceiptHandler, error) {
		return handler.NewReceiptHandler(do.MustInvoke[service.ReceiptService](i)), nil
	})

	return inj
}

// provideQueue registers the broker components. They are lazy, so nothing
// dials until a publisher or consumer is first invoked.
func provideQueue(inj *do.Injector) {
	// RabbitMQ DialFunc for connection and reconnection
	do.Provide(inj, func(i *do.Injector) (mq.DialFunc, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if !cfg.RabbitMQ.Enabled {
			return nil, ErrQueueDisabled
		}
		return mq.NewDialFunc(cfg.RabbitMQ), nil
	})

	// RabbitMQ Connection
	do.Provide(inj, func(i *do.Injector) (*amqp.Connection, error) {
		dialFn, err := do.Invoke[mq.DialFunc](i)
		if err != nil {
			return nil, err
		}
		return dialFn()
	})

	// RabbitMQ Publisher
	do.Provide(inj, func(i *do.Injector) (*mq.Publisher, error) {
		cfg := do.MustInvoke[*config.Config](i)
		conn, err := do.Invoke[*amqp.Connection](i)
		if err != nil {
			return nil, err
		}
		return mq.NewPublisher(conn, do.MustInvoke[*zap.Logger](i), cfg, do.MustInvoke[mq.DialFunc](i))
	})

	// RabbitMQ Consumer, declaring the booking exchange and queue on every channel it opens
	do.Provide(inj, func(i *do.Injector) (*mq.Consumer, error) {
		cfg := do.MustInvoke[*config.Config](i)
		conn, err := do.Invoke[*amqp.Connection](i)
		if err != nil {
			return nil, err
		}
		c, err := mq.NewConsumer(conn, cfg.RabbitMQ.Queue, cfg.RabbitMQ.Prefetch, do.MustInvoke[*zap.Logger](i), cfg, do.MustInvoke[mq.DialFunc](i))
		if err != nil {
			return nil, err
		}
		declare := func(ch *amqp.Channel) error {
			return mq.DeclareTopology(ch, cfg.RabbitMQ.Exchange, cfg.RabbitMQ.Queue, service.RoutingKeyBookingCreated)
		}
		if err := c.OnChannel(declare); err != nil {
			_ = c.Close()
			return nil, err
		}
		return c, nil
	})
}
