package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/dwitter/internal/common"
	"github.com/dmitrijs2005/dwitter/internal/server/notify"
)

// EventSource hands out subscriptions to a notification topic.
type EventSource interface {
	Subscribe(topic string) *notify.Subscription
}

const keepAliveInterval = 25 * time.Second

// tweetEvents streams the tweets topic as Server-Sent Events until the client
// goes away, the subscription is closed or the server shuts down.
func (h *handlers) tweetEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeMessage(w, http.StatusInternalServerError, common.ErrorInternal.Error())
		return
	}

	sub := h.events.Subscribe(common.TweetsTopic)
	defer sub.Close()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	stopping := shutdownSignal(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-stopping:
			return
		case <-keepAlive.C:
			if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
				return
			}
			flusher.Flush()
		case ev, ok := <-sub.C:
			if !ok {
				return
			}
			data, err := json.Marshal(ev.Payload)
			if err != nil {
				h.logger.Warn(ctx, "skipping unencodable event", "topic", ev.Topic, "error", err)
				continue
			}
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Topic, data); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
