// Package repomanager groups the user and tweet repositories behind one
// handle and runs multi-step operations against a single snapshot.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/dwitter/internal/server/repositories/tweets"
	"github.com/dmitrijs2005/dwitter/internal/server/repositories/users"
)

// Repositories is the set of repositories visible to one unit of work.
type Repositories interface {
	Users() users.Repository
	Tweets() tweets.Repository
}

// RepositoryManager vends repositories bound to the store and runs
// transactional units of work.
type RepositoryManager interface {
	Repositories
	// WithTx runs fn with repositories bound to one transaction. The work is
	// committed when fn returns nil and discarded otherwise.
	WithTx(ctx context.Context, fn func(ctx context.Context, r Repositories) error) error
	RunMigrations(ctx context.Context) error
	Close() error
}
