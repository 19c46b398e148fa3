// Package httpapi exposes the dwitter HTTP API: signup and login, bearer
// token authentication, tweet CRUD with ownership checks and a Server-Sent
// Events stream of new tweets.
package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/dwitter/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Deps are the collaborators the router dispatches to.
type Deps struct {
	Accounts       AccountService
	Auth           Authenticator
	Tweets         TweetService
	Events         EventSource
	Logger         logging.Logger
	AllowedOrigins []string
}

type handlers struct {
	accounts AccountService
	tweets   TweetService
	events   EventSource
	logger   logging.Logger
}

// NewRouter wires routes and middleware.
func NewRouter(d Deps) http.Handler {
	logger := d.Logger.With("module", "http")
	h := &handlers{
		accounts: d.Accounts,
		tweets:   d.Tweets,
		events:   d.Events,
		logger:   logger,
	}

	origins := d.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(AccessLog(logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", h.signup)
		r.Post("/login", h.login)
		r.With(RequireAuth(d.Auth, logger)).Get("/me", h.me)
	})

	r.Route("/tweets", func(r chi.Router) {
		r.Use(RequireAuth(d.Auth, logger))
		r.Get("/", h.listTweets)
		r.Post("/", h.createTweet)
		r.Get("/events", h.tweetEvents)
		r.Get("/{id}", h.getTweet)
		r.Put("/{id}", h.updateTweet)
		r.Delete("/{id}", h.deleteTweet)
	})

	return r
}
