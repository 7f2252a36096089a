package jetstream

import (
	"context"
	"fmt"

	natsjs "github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/pharmatrace/batchtrace/internal/adapter"
	"github.com/pharmatrace/batchtrace/internal/domain"
	"github.com/pharmatrace/batchtrace/internal/logger"
	"github.com/pharmatrace/batchtrace/internal/notify"
)

type consumer struct {
	nc     adapter.NatsConn
	js     adapter.JetStream
	json   adapter.JSON
	config Config
}

// NewConsumer connects to NATS and returns a subscriber that feeds custody
// notifications to a handler with explicit acks.
func NewConsumer(cfg Config, natsJS adapter.NatsJetStream, jsonAdapter adapter.JSON) (notify.Subscriber, error) {
	nc, js, err := connect(cfg, natsJS)
	if err != nil {
		return nil, err
	}

	return &consumer{
		nc:     nc,
		js:     js,
		json:   jsonAdapter,
		config: cfg,
	}, nil
}

// Run consumes custody notifications until the context is canceled.
func (c *consumer) Run(ctx context.Context, handler notify.Handler) error {
	logger.Info("Starting notification consumer",
		zap.String("stream", c.config.StreamName),
		zap.String("consumer", c.config.ConsumerName),
	)

	jsConsumer, err := c.js.CreateOrUpdateConsumer(ctx, c.config.StreamName, natsjs.ConsumerConfig{
		Durable:       c.config.ConsumerName,
		AckPolicy:     natsjs.AckExplicitPolicy,
		AckWait:       c.config.AckWait,
		MaxDeliver:    c.config.MaxDeliver,
		FilterSubject: "custody.>",
	})
	if err != nil {
		return fmt.Errorf("failed to create/update consumer: %w", err)
	}

	msgChan := make(chan adapter.Message, 100)
	sub, err := jsConsumer.Consume(func(msg adapter.Message) {
		msgChan <- msg
	})
	if err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	defer sub.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Shutting down notification consumer")
			return ctx.Err()
		case msg := <-msgChan:
			c.handleMessage(ctx, msg, handler)
		}
	}
}

// handleMessage processes a single NATS message. Unparseable payloads are
// terminated, handler failures are NAKed for redelivery.
func (c *consumer) handleMessage(ctx context.Context, msg adapter.Message, handler notify.Handler) {
	var n domain.Notification
	if err := c.json.Unmarshal(msg.Data(), &n); err != nil {
		logger.Error(err, zap.String("message", "Failed to unmarshal notification"))
		if err := msg.Term(); err != nil {
			logger.Error(err, zap.String("message", "Failed to terminate message"))
		}
		return
	}

	if !n.Valid() {
		logger.Warn("Dropping malformed notification", zap.String("subject", msg.Subject()))
		if err := msg.Term(); err != nil {
			logger.Error(err, zap.String("message", "Failed to terminate message"))
		}
		return
	}

	if err := handler(ctx, &n); err != nil {
		logger.Error(err, zap.String("message", "Failed to handle notification"))
		if err := msg.Nak(); err != nil {
			logger.Error(err, zap.String("message", "Failed to NAK message"))
		}
		return
	}

	if err := msg.Ack(); err != nil {
		logger.Error(err, zap.String("message", "Failed to ACK message"))
	}
}

// Close closes the NATS connection
func (c *consumer) Close() {
	if c.nc == nil {
		return
	}
	c.nc.Close()
}
