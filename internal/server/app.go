// Package server assembles the dwitter server: storage, services, the
// notification pipeline and the HTTP API, and runs them until shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/dwitter/internal/common"
	"github.com/dmitrijs2005/dwitter/internal/cryptox"
	"github.com/dmitrijs2005/dwitter/internal/logging"
	"github.com/dmitrijs2005/dwitter/internal/server/config"
	"github.com/dmitrijs2005/dwitter/internal/server/httpapi"
	"github.com/dmitrijs2005/dwitter/internal/server/notify"
	"github.com/dmitrijs2005/dwitter/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/dwitter/internal/server/services"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

type App struct {
	config *config.Config
	logger logging.Logger
	store  repomanager.RepositoryManager
	hub    *notify.Hub
	queue  *notify.Queue
	redis  *redis.Client
	relay  *notify.RedisRelay
	server *httpapi.HTTPServer
}

// NewApp opens the store and builds every component. An empty DatabaseDSN
// selects the in-memory store; an empty RedisAddr keeps events in process.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, slog.LevelInfo)
	return newApp(ctx, c, logger)
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	app := &App{config: c, logger: logger}

	store, err := openStore(ctx, c.DatabaseDSN, logger)
	if err != nil {
		return nil, err
	}
	app.store = store

	app.hub = notify.NewHub(16)
	var downstream notify.Emitter = app.hub

	if c.RedisAddr != "" {
		app.redis = redis.NewClient(&redis.Options{Addr: c.RedisAddr})
		if err := app.redis.Ping(ctx).Err(); err != nil {
			app.close()
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		downstream = notify.NewRedisEmitter(app.redis, c.RedisChannelPrefix)
		app.relay = notify.NewRedisRelay(app.redis, c.RedisChannelPrefix, app.hub, logger, common.TweetsTopic)
	}
	eventLog := notify.EmitterFunc(func(ctx context.Context, topic string, _ any) error {
		logger.Debug(ctx, "Event delivered", "topic", topic)
		return nil
	})
	app.queue = notify.NewQueue(notify.Multi{downstream, eventLog}, c.NotifyQueueSize, logger)

	us, err := services.NewUserService(store, cryptox.NewBcryptHasher(c.BcryptCost), c)
	if err != nil {
		app.close()
		return nil, fmt.Errorf("user service: %w", err)
	}
	ts := services.NewTweetService(store, app.queue, logger)

	router := httpapi.NewRouter(httpapi.Deps{
		Accounts:       us,
		Auth:           us,
		Tweets:         ts,
		Events:         app.hub,
		Logger:         logger,
		AllowedOrigins: c.AllowedOrigins,
	})
	app.server = httpapi.NewHTTPServer(c.EndpointAddrHTTP, router, logger, c.ShutdownTimeout)

	return app, nil
}

func openStore(ctx context.Context, dsn string, logger logging.Logger) (repomanager.RepositoryManager, error) {
	if dsn == "" {
		logger.Info(ctx, "Using in-memory store")
		return repomanager.NewMemoryRepositoryManager(), nil
	}

	m, err := repomanager.NewPostgresRepositoryManager(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := m.RunMigrations(ctx); err != nil {
		_ = m.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}
	return m, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) (stop func()) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		select {
		case <-sigs:
			cancelFunc()
		case <-done:
		}
	}()

	return func() {
		signal.Stop(sigs)
		close(done)
	}
}

// Run serves until ctx is canceled or a signal arrives, then shuts every
// component down and releases the store.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	stop := app.initSignalHandler(cancelFunc)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		// Requests still in flight may emit; stop the queue only after the
		// server is done with them.
		defer app.queue.Close()
		return app.server.Run(gctx)
	})

	g.Go(func() error {
		return app.queue.Run(context.WithoutCancel(gctx))
	})

	if app.relay != nil {
		g.Go(func() error {
			return app.relay.Run(gctx)
		})
	}

	err := g.Wait()
	app.close()
	app.logger.Info(context.WithoutCancel(ctx), "App stopped")
	return err
}

func (app *App) close() {
	if app.redis != nil {
		_ = app.redis.Close()
	}
	if app.store != nil {
		_ = app.store.Close()
	}
}
