package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/dwitter/internal/logging"
	"github.com/dmitrijs2005/dwitter/internal/server/models"
	"github.com/dmitrijs2005/dwitter/internal/server/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type panickingTweets struct{}

func (panickingTweets) List(context.Context, string) ([]*models.Tweet, error) { panic("boom") }
func (panickingTweets) GetByID(context.Context, string) (*models.Tweet, error) {
	return nil, errors.New("db down")
}
func (panickingTweets) Create(context.Context, string, models.Principal) (*models.Tweet, error) {
	return nil, errors.New("db down")
}
func (panickingTweets) Update(context.Context, string, string, models.Principal) (*models.Tweet, error) {
	return nil, errors.New("db down")
}
func (panickingTweets) Remove(context.Context, string, models.Principal) error {
	return errors.New("db down")
}

func TestHTTPServer_ServeAndShutdown(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
	s := NewHTTPServer(l.Addr().String(), handler, logging.Nop(), time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, l) }()

	resp, err := http.Get("http://" + l.Addr().String() + "/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestHTTPServer_ShutdownDrainsInFlightRequests(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	started := make(chan struct{})
	release := make(chan struct{})
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-release
		if r.Context().Err() != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
	s := NewHTTPServer(l.Addr().String(), handler, logging.Nop(), 3*time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, l) }()

	status := make(chan int, 1)
	go func() {
		resp, err := http.Get("http://" + l.Addr().String() + "/")
		if err != nil {
			status <- 0
			return
		}
		resp.Body.Close()
		status <- resp.StatusCode
	}()

	<-started
	cancel()
	time.Sleep(100 * time.Millisecond)
	close(release)

	assert.Equal(t, http.StatusNoContent, <-status)
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestHTTPServer_ShutdownEndsEventStreams(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	hub := notify.NewHub(4)
	h := &handlers{events: hub, logger: logging.Nop()}
	s := NewHTTPServer(l.Addr().String(), http.HandlerFunc(h.tweetEvents), logging.Nop(), 2*time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, l) }()

	resp, err := http.Get("http://" + l.Addr().String() + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Eventually(t, func() bool { return hub.Subscribers("tweets") == 1 }, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		// a stream left open would make Shutdown hit its deadline
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
	assert.Equal(t, 0, hub.Subscribers("tweets"))
}

func TestHTTPServer_RunBadAddress(t *testing.T) {
	s := NewHTTPServer("bad-address", http.NotFoundHandler(), logging.Nop(), time.Second)
	assert.Error(t, s.Run(context.Background()))
}

func TestInternalErrorsAreNotEchoed(t *testing.T) {
	r := NewRouter(Deps{Logger: logging.Nop(), Auth: newFakeAuthenticator(), Tweets: panickingTweets{}})

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		req := httptest.NewRequest(method, "/tweets/t-1", nil)
		req.Header.Set("Authorization", "Bearer good")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code, method)
		assert.JSONEq(t, `{"message":"internal error"}`, rec.Body.String())
	}
}
