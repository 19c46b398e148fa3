package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/dwitter/internal/server/models"
	"github.com/go-chi/chi/v5"
)

// TweetService is the tweet use-case layer.
type TweetService interface {
	List(ctx context.Context, username string) ([]*models.Tweet, error)
	GetByID(ctx context.Context, id string) (*models.Tweet, error)
	Create(ctx context.Context, text string, p models.Principal) (*models.Tweet, error)
	Update(ctx context.Context, id, text string, p models.Principal) (*models.Tweet, error)
	Remove(ctx context.Context, id string, p models.Principal) error
}

type tweetResponse struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	UserName  string    `json:"username"`
	URL       string    `json:"url,omitempty"`
}

func toTweetResponse(t *models.Tweet) tweetResponse {
	return tweetResponse{
		ID:        t.ID,
		Text:      t.Text,
		CreatedAt: t.CreatedAt,
		UserID:    t.UserID,
		Name:      t.Name,
		UserName:  t.UserName,
		URL:       t.URL,
	}
}

func (h *handlers) listTweets(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	list, err := h.tweets.List(ctx, r.URL.Query().Get("username"))
	if err != nil {
		writeServiceError(ctx, w, h.logger, err, "")
		return
	}

	out := make([]tweetResponse, 0, len(list))
	for _, t := range list {
		out = append(out, toTweetResponse(t))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handlers) getTweet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	t, err := h.tweets.GetByID(ctx, id)
	if err != nil {
		writeServiceError(ctx, w, h.logger, err, fmt.Sprintf("Tweet id(%s) not found", id))
		return
	}
	writeJSON(w, http.StatusOK, toTweetResponse(t))
}

func (h *handlers) createTweet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, _ := PrincipalFromContext(ctx)

	var req tweetRequest
	if err := decodeAndValidate(r, &req, req.trim); err != nil {
		if !writeRequestError(w, err) {
			writeServiceError(ctx, w, h.logger, err, "")
		}
		return
	}

	t, err := h.tweets.Create(ctx, req.Text, p)
	if err != nil {
		writeServiceError(ctx, w, h.logger, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, toTweetResponse(t))
}

func (h *handlers) updateTweet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, _ := PrincipalFromContext(ctx)
	id := chi.URLParam(r, "id")

	var req tweetRequest
	if err := decodeAndValidate(r, &req, req.trim); err != nil {
		if !writeRequestError(w, err) {
			writeServiceError(ctx, w, h.logger, err, "")
		}
		return
	}

	t, err := h.tweets.Update(ctx, id, req.Text, p)
	if err != nil {
		writeServiceError(ctx, w, h.logger, err, fmt.Sprintf("Tweet not found: %s", id))
		return
	}
	writeJSON(w, http.StatusOK, toTweetResponse(t))
}

func (h *handlers) deleteTweet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, _ := PrincipalFromContext(ctx)
	id := chi.URLParam(r, "id")

	if err := h.tweets.Remove(ctx, id, p); err != nil {
		writeServiceError(ctx, w, h.logger, err, fmt.Sprintf("Tweet not found: %s", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
