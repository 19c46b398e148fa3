package tweets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/dwitter/internal/common"
	"github.com/dmitrijs2005/dwitter/internal/dbx"
	"github.com/dmitrijs2005/dwitter/internal/server/models"
)

const selectTweets = `SELECT t.id, t.text, t.created_at, t.user_id, u.name, u.username, u.url
	FROM tweets t JOIN users u ON u.id = t.user_id
	`

// PostgresRepository implements tweet storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetAll(ctx context.Context) ([]*models.Tweet, error) {
	return r.list(ctx, selectTweets+`ORDER BY t.created_at DESC`)
}

func (r *PostgresRepository) GetAllByUsername(ctx context.Context, username string) ([]*models.Tweet, error) {
	return r.list(ctx, selectTweets+`WHERE u.username = $1 ORDER BY t.created_at DESC`, username)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Tweet, error) {
	return r.one(ctx, selectTweets+`WHERE t.id = $1`, id)
}

func (r *PostgresRepository) GetByIDForUpdate(ctx context.Context, id string) (*models.Tweet, error) {
	return r.one(ctx, selectTweets+`WHERE t.id = $1 FOR UPDATE OF t`, id)
}

func (r *PostgresRepository) Create(ctx context.Context, text, userID string) (*models.Tweet, error) {
	query := `WITH t AS (
		INSERT INTO tweets (text, user_id) VALUES ($1, $2)
		RETURNING id, text, created_at, user_id
	)
	SELECT t.id, t.text, t.created_at, t.user_id, u.name, u.username, u.url
	FROM t JOIN users u ON u.id = t.user_id`

	return r.one(ctx, query, text, userID)
}

func (r *PostgresRepository) Update(ctx context.Context, id, text string) (*models.Tweet, error) {
	query := `WITH t AS (
		UPDATE tweets SET text = $2 WHERE id = $1
		RETURNING id, text, created_at, user_id
	)
	SELECT t.id, t.text, t.created_at, t.user_id, u.name, u.username, u.url
	FROM t JOIN users u ON u.id = t.user_id`

	return r.one(ctx, query, id, text)
}

func (r *PostgresRepository) Remove(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tweets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) one(ctx context.Context, query string, args ...any) (*models.Tweet, error) {
	var t models.Tweet
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&t.ID, &t.Text, &t.CreatedAt, &t.UserID, &t.Name, &t.UserName, &t.URL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &t, nil
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.Tweet, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select tweets: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Tweet, 0)
	for rows.Next() {
		var t models.Tweet
		if err := rows.Scan(&t.ID, &t.Text, &t.CreatedAt, &t.UserID, &t.Name, &t.UserName, &t.URL); err != nil {
			return nil, err
		}
		result = append(result, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
