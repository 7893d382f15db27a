// Package redisbridge relays events between server instances over a Redis
// pub/sub channel so DocumentSync subscribers see edits made anywhere.
package redisbridge

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/eventstream"
)

const defaultPublishTimeout = 200 * time.Millisecond

type envelope[Topic any, Payload any] struct {
	Origin   string    `json:"origin"`
	Topic    Topic     `json:"topic"`
	Payloads []Payload `json:"payloads"`
}

// Bridge is a SyncStreamer that delivers locally and mirrors every publish
// to Redis. Run consumes the channel and republishes events from other
// instances to the local streamer.
type Bridge[Topic any, Payload any] struct {
	local   eventstream.SyncStreamer[Topic, Payload]
	client  redis.UniversalClient
	channel string
	origin  string
	logger  *slog.Logger

	PublishTimeout time.Duration
}

var _ eventstream.SyncStreamer[string, string] = (*Bridge[string, string])(nil)

func New[Topic any, Payload any](local eventstream.SyncStreamer[Topic, Payload], client redis.UniversalClient, channel string, logger *slog.Logger) *Bridge[Topic, Payload] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bridge[Topic, Payload]{
		local:          local,
		client:         client,
		channel:        channel,
		origin:         uuid.NewString(),
		logger:         logger,
		PublishTimeout: defaultPublishTimeout,
	}
}

func (b *Bridge[Topic, Payload]) Publish(topic Topic, payloads ...Payload) {
	if len(payloads) == 0 {
		return
	}
	b.local.Publish(topic, payloads...)

	message, err := json.Marshal(envelope[Topic, Payload]{Origin: b.origin, Topic: topic, Payloads: payloads})
	if err != nil {
		b.logger.Error("redis bridge: marshal event", "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), b.PublishTimeout)
	defer cancel()
	if err := b.client.Publish(ctx, b.channel, message).Err(); err != nil {
		b.logger.Warn("redis bridge: publish failed", "channel", b.channel, "error", err)
	}
}

func (b *Bridge[Topic, Payload]) Subscribe(ctx context.Context, filter eventstream.TopicFilter[Topic]) (<-chan eventstream.Event[Topic, Payload], error) {
	return b.local.Subscribe(ctx, filter)
}

func (b *Bridge[Topic, Payload]) Shutdown() {
	b.local.Shutdown()
}

// Run blocks until ctx is done, relaying remote events to local subscribers.
func (b *Bridge[Topic, Payload]) Run(ctx context.Context) error {
	pubsub := b.client.Subscribe(ctx, b.channel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("redis bridge: subscribe %s: %w", b.channel, err)
	}
	b.logger.Info("redis bridge subscribed", "channel", b.channel)

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			if err := b.deliver([]byte(msg.Payload)); err != nil {
				b.logger.Warn("redis bridge: dropping message", "error", err)
			}
		}
	}
}

func (b *Bridge[Topic, Payload]) deliver(data []byte) error {
	var env envelope[Topic, Payload]
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("decode envelope: %w", err)
	}
	if env.Origin == b.origin {
		return nil
	}
	b.local.Publish(env.Topic, env.Payloads...)
	return nil
}
