// Package store defines the storage interface and implementations.
package store

import (
	"context"

	"github.com/xiaot623/adgenie/internal/domain"
)

// Store defines the interface for data persistence.
type Store interface {
	// WithTx runs fn inside one transaction. The transaction commits only when fn
	// returns nil; any error or panic rolls back every write made through tx.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Interaction queries
	GetSessionInteractions(ctx context.Context, sessionID string, limit int) ([]domain.ChatInteraction, error)
	CountInteractions(ctx context.Context) (int64, error)
	CountInteractionsByContext(ctx context.Context) (map[string]int64, error)

	// User queries
	CountUsers(ctx context.Context) (int64, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}

// Tx is the set of writes available inside WithTx.
type Tx interface {
	// GetUserBySession returns nil, nil when no user owns the session token.
	GetUserBySession(ctx context.Context, sessionID string) (*domain.User, error)
	// CreateUser inserts user and sets its ID. It reports false, and leaves the
	// user untouched, when the session token already exists.
	CreateUser(ctx context.Context, user *domain.User) (bool, error)
	CreateInteraction(ctx context.Context, interaction *domain.ChatInteraction) error
}
