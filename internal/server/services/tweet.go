package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/dwitter/internal/common"
	"github.com/dmitrijs2005/dwitter/internal/logging"
	"github.com/dmitrijs2005/dwitter/internal/server/models"
	"github.com/dmitrijs2005/dwitter/internal/server/notify"
	"github.com/dmitrijs2005/dwitter/internal/server/repositories/repomanager"
)

// TweetService enforces the ownership rule on tweets: anyone authenticated
// may read and create, only the author may update or remove.
type TweetService struct {
	repomanager repomanager.RepositoryManager
	emitter     notify.Emitter
	logger      logging.Logger
}

func NewTweetService(m repomanager.RepositoryManager, emitter notify.Emitter, logger logging.Logger) *TweetService {
	return &TweetService{
		repomanager: m,
		emitter:     emitter,
		logger:      logger.With("module", "tweets"),
	}
}

// List returns every tweet, or only those by username when it is not empty.
func (s *TweetService) List(ctx context.Context, username string) ([]*models.Tweet, error) {
	repo := s.repomanager.Tweets()
	if username == "" {
		return repo.GetAll(ctx)
	}
	return repo.GetAllByUsername(ctx, username)
}

func (s *TweetService) GetByID(ctx context.Context, id string) (*models.Tweet, error) {
	return s.repomanager.Tweets().GetByID(ctx, id)
}

// Create stores a tweet owned by p and announces it on the tweets topic. A
// failed announcement is logged; the tweet stays created.
func (s *TweetService) Create(ctx context.Context, text string, p models.Principal) (*models.Tweet, error) {
	t, err := s.repomanager.Tweets().Create(ctx, text, p.ID)
	if err != nil {
		return nil, fmt.Errorf("error creating tweet: %w", err)
	}

	ev := models.TweetEvent{Text: t.Text, UserID: t.UserID}
	if err := s.emitter.Emit(ctx, common.TweetsTopic, ev); err != nil {
		s.logger.Warn(ctx, "tweet event not delivered", "tweet_id", t.ID, "error", err)
	}

	return t, nil
}

// Update replaces the text of tweet id. A missing tweet yields
// common.ErrorNotFound; a tweet owned by someone else yields
// common.ErrorForbidden and is left unchanged.
func (s *TweetService) Update(ctx context.Context, id, text string, p models.Principal) (*models.Tweet, error) {
	var updated *models.Tweet
	err := s.repomanager.WithTx(ctx, func(ctx context.Context, r repomanager.Repositories) error {
		if err := s.authorize(ctx, r, id, p); err != nil {
			return err
		}
		var err error
		updated, err = r.Tweets().Update(ctx, id, text)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Remove deletes tweet id under the same rules as Update.
func (s *TweetService) Remove(ctx context.Context, id string, p models.Principal) error {
	return s.repomanager.WithTx(ctx, func(ctx context.Context, r repomanager.Repositories) error {
		if err := s.authorize(ctx, r, id, p); err != nil {
			return err
		}
		return r.Tweets().Remove(ctx, id)
	})
}

// authorize locks tweet id and checks that p owns it. Existence is checked
// before ownership.
func (s *TweetService) authorize(ctx context.Context, r repomanager.Repositories, id string, p models.Principal) error {
	t, err := r.Tweets().GetByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return err
		}
		return fmt.Errorf("error loading tweet: %w", err)
	}
	if t.UserID != p.ID {
		s.logger.Info(ctx, "tweet mutation denied", "tweet_id", id, "user_id", p.ID)
		return common.ErrorForbidden
	}
	return nil
}
