package notify

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/dwitter/internal/logging"
)

var (
	ErrQueueFull   = errors.New("notification queue is full")
	ErrQueueClosed = errors.New("notification queue is closed")
)

type queued struct {
	ctx     context.Context
	topic   string
	payload any
}

// Queue hands events to a downstream Emitter from a background worker. Emit
// never blocks: a full queue rejects the event with ErrQueueFull.
type Queue struct {
	next   Emitter
	logger logging.Logger
	items  chan queued

	mu     sync.RWMutex
	closed bool
}

func NewQueue(next Emitter, size int, logger logging.Logger) *Queue {
	if size <= 0 {
		size = 1
	}
	return &Queue{
		next:   next,
		logger: logger.With("module", "notify"),
		items:  make(chan queued, size),
	}
}

func (q *Queue) Emit(ctx context.Context, topic string, payload any) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.items <- queued{ctx: context.WithoutCancel(ctx), topic: topic, payload: payload}:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close stops accepting events. Run delivers what is already queued and
// returns.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.closed {
		q.closed = true
		close(q.items)
	}
}

// Run delivers queued events until ctx is done or the queue is closed and
// drained. Downstream failures are logged and skipped.
func (q *Queue) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case item, ok := <-q.items:
			if !ok {
				return nil
			}
			if err := q.next.Emit(item.ctx, item.topic, item.payload); err != nil {
				q.logger.Warn(item.ctx, "notification delivery failed", "topic", item.topic, "error", err)
			}
		}
	}
}

// Len returns the number of events waiting for delivery.
func (q *Queue) Len() int {
	return len(q.items)
}
