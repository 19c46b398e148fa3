package notify

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/dmitrijs2005/dwitter/internal/logging"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisClient(t *testing.T) *redis.Client {
	t.Helper()
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	if err := client.Ping(context.Background()).Err(); err != nil {
		_ = client.Close()
		t.Skipf("Redis not available: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisEmitter_RelaysIntoHub(t *testing.T) {
	client := newRedisClient(t)
	prefix := "test:dwitter:" + time.Now().Format("150405.000000") + ":"

	hub := NewHub(4)
	sub := hub.Subscribe("tweets")
	defer sub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	relay := NewRedisRelay(client, prefix, hub, logging.Nop(), "tweets")
	done := make(chan error, 1)
	go func() { done <- relay.Run(ctx) }()

	emitter := NewRedisEmitter(client, prefix)
	// The relay subscribes asynchronously; retry until a message lands.
	deadline := time.Now().Add(3 * time.Second)
	var ev Event
	for ev.Topic == "" && time.Now().Before(deadline) {
		require.NoError(t, emitter.Emit(ctx, "tweets", map[string]string{"text": "hello world", "userId": "u-1"}))
		select {
		case ev = <-sub.C:
		case <-time.After(100 * time.Millisecond):
		}
	}
	require.Equal(t, "tweets", ev.Topic)

	raw, ok := ev.Payload.(json.RawMessage)
	require.True(t, ok)
	assert.JSONEq(t, `{"text":"hello world","userId":"u-1"}`, string(raw))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("relay did not stop")
	}
}

func TestRedisEmitter_EncodeError(t *testing.T) {
	e := NewRedisEmitter(redis.NewClient(&redis.Options{Addr: "localhost:0"}), "p:")
	err := e.Emit(context.Background(), "tweets", make(chan int))
	assert.ErrorContains(t, err, "encode tweets event")
}
