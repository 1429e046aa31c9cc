package mq

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/tonelab-collective/booking/internal/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// DialFunc opens a fresh broker connection; the publisher and consumer redial with it.
type DialFunc func() (*amqp.Connection, error)

// NewDialFunc upgrades to amqps when TLS is configured.
func NewDialFunc(cfg config.RabbitMQCfg) DialFunc {
	return func() (*amqp.Connection, error) {
		url := cfg.URL
		if cfg.EnableTLS || strings.HasPrefix(url, "amqps://") {
			if strings.HasPrefix(url, "amqp://") {
				url = strings.Replace(url, "amqp://", "amqps://", 1)
			}
			return amqp.DialTLS(url, &tls.Config{MinVersion: tls.VersionTLS12})
		}
		return amqp.Dial(url)
	}
}

// tableCarrier adapts amqp.Table to TextMapCarrier for OpenTelemetry propagation
type tableCarrier struct {
	table amqp.Table
}

func (c tableCarrier) Get(key string) string {
	if val, ok := c.table[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
		return fmt.Sprintf("%v", val)
	}
	return ""
}

func (c tableCarrier) Set(key, value string) {
	c.table[key] = value
}

func (c tableCarrier) Keys() []string {
	keys := make([]string, 0, len(c.table))
	for k := range c.table {
		keys = append(keys, k)
	}
	return keys
}

// DeclareTopology declares the durable topic exchange and binds the queue to routingKeys.
func DeclareTopology(ch *amqp.Channel, exchange, queue string, routingKeys ...string) error {
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %s: %w", exchange, err)
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue %s: %w", queue, err)
	}
	for _, key := range routingKeys {
		if err := ch.QueueBind(queue, key, exchange, false, nil); err != nil {
			return fmt.Errorf("bind %s to %s: %w", queue, key, err)
		}
	}
	return nil
}

type Publisher struct {
	mu   sync.Mutex
	dial DialFunc
	conn *amqp.Connection
	ch   *amqp.Channel
	log  *zap.Logger
	cfg  *config.Config
}

type Consumer struct {
	mu       sync.Mutex
	dial     DialFunc
	conn     *amqp.Connection
	ch       *amqp.Channel
	q        string
	prefetch int
	setup    func(*amqp.Channel) error
	log      *zap.Logger
	cfg      *config.Config
}

func NewPublisher(conn *amqp.Connection, log *zap.Logger, cfg *config.Config, dial DialFunc) (*Publisher, error) {
	p := &Publisher{dial: dial, conn: conn, log: log, cfg: cfg}
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	p.ch = ch
	return p, nil
}

// Shutdown is called by the injector for a publisher that was built.
func (p *Publisher) Shutdown() error {
	err := p.Close()
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.conn != nil && !p.conn.IsClosed() {
		if cerr := p.conn.Close(); cerr != nil && !errors.Is(cerr, amqp.ErrClosed) {
			return cerr
		}
	}
	return err
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch == nil || p.ch.IsClosed() {
		return nil
	}
	return p.ch.Close()
}

// channel returns a usable channel, redialing once if the previous one closed.
func (p *Publisher) channel() (*amqp.Channel, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	if p.conn == nil || p.conn.IsClosed() {
		if p.dial == nil {
			return nil, errors.New("rabbitmq connection closed")
		}
		conn, err := p.dial()
		if err != nil {
			return nil, fmt.Errorf("redial rabbitmq: %w", err)
		}
		p.conn = conn
		p.log.Info("rabbitmq reconnected")
	}
	ch, err := p.conn.Channel()
	if err != nil {
		return nil, err
	}
	p.ch = ch
	return ch, nil
}

func (p *Publisher) PublishJSON(ctx context.Context, exchangeName string, routingKey string, body any) error {
	b, err := sonic.Marshal(body)
	if err != nil {
		return err
	}

	tracer := otel.Tracer(p.cfg.App.Name)
	ctx, span := tracer.Start(ctx, "rabbitmq.publish",
		trace.WithAttributes(
			attribute.String("messaging.system", "rabbitmq"),
			attribute.String("messaging.destination", exchangeName),
			attribute.String("messaging.destination_kind", "exchange"),
			attribute.String("messaging.rabbitmq.routing_key", routingKey),
		))
	defer span.End()

	headers := make(amqp.Table)
	otel.GetTextMapPropagator().Inject(ctx, tableCarrier{table: headers})

	publishing := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         b,
		Headers:      headers,
	}

	ch, err := p.channel()
	if err != nil {
		span.RecordError(err)
		return err
	}
	if err := ch.PublishWithContext(ctx, exchangeName, routingKey, false, false, publishing); err != nil {
		span.RecordError(err)
		return err
	}

	span.SetAttributes(attribute.Int("messaging.message.body.size", len(b)))
	return nil
}

func NewConsumer(conn *amqp.Connection, queueName string, prefetch int, log *zap.Logger, cfg *config.Config, dial DialFunc) (*Consumer, error) {
	if prefetch <= 0 {
		prefetch = 10
	}
	c := &Consumer{dial: dial, conn: conn, q: queueName, prefetch: prefetch, log: log, cfg: cfg}
	if _, err := c.channel(); err != nil {
		return nil, err
	}
	return c, nil
}

// OnChannel runs setup on the current channel and again on every channel
// opened after a reconnect.
func (c *Consumer) OnChannel(setup func(*amqp.Channel) error) error {
	c.mu.Lock()
	c.setup = setup
	ch := c.ch
	c.mu.Unlock()
	return setup(ch)
}

func (c *Consumer) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ch == nil || c.ch.IsClosed() {
		return nil
	}
	return c.ch.Close()
}

// Shutdown is called by the injector for a consumer that was built.
func (c *Consumer) Shutdown() error {
	err := c.Close()
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil && !c.conn.IsClosed() {
		if cerr := c.conn.Close(); cerr != nil && !errors.Is(cerr, amqp.ErrClosed) {
			return cerr
		}
	}
	return err
}

// channel returns an open channel, redialing the connection when the broker
// dropped it.
func (c *Consumer) channel() (*amqp.Channel, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ch != nil && !c.ch.IsClosed() {
		return c.ch, nil
	}
	if c.conn == nil || c.conn.IsClosed() {
		if c.dial == nil {
			return nil, errors.New("rabbitmq connection closed")
		}
		conn, err := c.dial()
		if err != nil {
			return nil, fmt.Errorf("redial rabbitmq: %w", err)
		}
		c.conn = conn
		c.log.Info("rabbitmq consumer reconnected")
	}
	ch, err := c.conn.Channel()
	if err != nil {
		return nil, err
	}
	if err := ch.Qos(c.prefetch, 0, false); err != nil {
		_ = ch.Close()
		return nil, err
	}
	if c.setup != nil {
		if err := c.setup(ch); err != nil {
			_ = ch.Close()
			return nil, err
		}
	}
	c.ch = ch
	return ch, nil
}

// Handle consumes until ctx is done or the delivery channel closes. A failed
// message is requeued once and dropped on its second failure. Calling Handle
// again after a broker drop reopens the channel.
func (c *Consumer) Handle(ctx context.Context, handler func(context.Context, []byte) error) error {
	ch, err := c.channel()
	if err != nil {
		return err
	}
	msgs, err := ch.Consume(c.q, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	tracer := otel.Tracer(c.cfg.App.Name)
	propagator := otel.GetTextMapPropagator()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m, ok := <-msgs:
			if !ok {
				return errors.New("consumer channel closed")
			}

			msgCtx := ctx
			if m.Headers != nil {
				msgCtx = propagator.Extract(ctx, tableCarrier{table: m.Headers})
			}
			msgCtx, span := tracer.Start(msgCtx, "rabbitmq.consume",
				trace.WithAttributes(
					attribute.String("messaging.system", "rabbitmq"),
					attribute.String("messaging.destination", c.q),
					attribute.String("messaging.destination_kind", "queue"),
					attribute.String("messaging.operation", "receive"),
					attribute.String("messaging.rabbitmq.routing_key", m.RoutingKey),
					attribute.Int("messaging.message.body.size", len(m.Body)),
				))

			if err := handler(msgCtx, m.Body); err != nil {
				span.RecordError(err)
				_ = m.Nack(false, !m.Redelivered)
				c.log.Error("consume error",
					zap.String("routing_key", m.RoutingKey),
					zap.Bool("redelivered", m.Redelivered),
					zap.Error(err))
				span.End()
				continue
			}

			_ = m.Ack(false)
			span.End()
		}
	}
}
