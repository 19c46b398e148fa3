package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/dwitter/internal/logging"
	"github.com/redis/go-redis/v9"
)

// RedisEmitter publishes events as JSON on the channel <prefix><topic>.
type RedisEmitter struct {
	client redis.UniversalClient
	prefix string
}

func NewRedisEmitter(client redis.UniversalClient, prefix string) *RedisEmitter {
	return &RedisEmitter{client: client, prefix: prefix}
}

func (e *RedisEmitter) Emit(ctx context.Context, topic string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", topic, err)
	}
	if err := e.client.Publish(ctx, e.prefix+topic, data).Err(); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}
	return nil
}

// RedisRelay forwards events published by any instance into a local Emitter,
// usually the Hub that serves this instance's subscribers.
type RedisRelay struct {
	client redis.UniversalClient
	prefix string
	topics []string
	target Emitter
	logger logging.Logger
}

func NewRedisRelay(client redis.UniversalClient, prefix string, target Emitter, logger logging.Logger, topics ...string) *RedisRelay {
	return &RedisRelay{
		client: client,
		prefix: prefix,
		topics: topics,
		target: target,
		logger: logger.With("module", "notify"),
	}
}

// Run subscribes to every relayed topic and forwards messages until ctx is
// done. Payloads reach the target as json.RawMessage.
func (r *RedisRelay) Run(ctx context.Context) error {
	channels := make([]string, 0, len(r.topics))
	for _, t := range r.topics {
		channels = append(channels, r.prefix+t)
	}

	sub := r.client.Subscribe(ctx, channels...)
	defer sub.Close()

	// Wait for the subscription to be confirmed so nothing published after
	// Run starts is missed.
	if _, err := sub.Receive(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("redis subscribe: %w", err)
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			topic := strings.TrimPrefix(msg.Channel, r.prefix)
			if !json.Valid([]byte(msg.Payload)) {
				r.logger.Warn(ctx, "dropping malformed event", "channel", msg.Channel)
				continue
			}
			if err := r.target.Emit(ctx, topic, json.RawMessage(msg.Payload)); err != nil {
				r.logger.Warn(ctx, "relay delivery failed", "topic", topic, "error", err)
			}
		}
	}
}
