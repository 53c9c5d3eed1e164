package service

import (
	"context"
	"fmt"

	"github.com/xiaot623/adgenie/internal/domain"
)

const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 200
)

// GetHistory returns up to limit interactions of a session, oldest first.
// Non-positive limits use the default; larger ones are capped.
func (s *Service) GetHistory(ctx context.Context, sessionID string, limit int) (*domain.ChatHistoryResponse, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	interactions, err := s.store.GetSessionInteractions(ctx, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get interactions: %w", err)
	}
	return &domain.ChatHistoryResponse{
		SessionID:    sessionID,
		Interactions: interactions,
	}, nil
}
