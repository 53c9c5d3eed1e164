package helpers

import (
	"context"
	"testing"

	"github.com/xiaot623/adgenie/internal/repository"
)

// NewTestSQLiteStore returns a migrated in-memory store closed at test cleanup.
func NewTestSQLiteStore(t *testing.T) *store.SQLStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create sqlite store: %v", err)
	}
	if err := s.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to migrate sqlite store: %v", err)
	}

	t.Cleanup(func() {
		_ = s.Close()
	})

	return s
}
