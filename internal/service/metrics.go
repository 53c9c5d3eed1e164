package service

import (
	"context"
	"fmt"
	"time"

	"github.com/xiaot623/adgenie/internal/domain"
)

// Summary reports the live interaction total and its per-context distribution.
func (s *Service) Summary(ctx context.Context) (*domain.MetricsSummary, error) {
	total, err := s.store.CountInteractions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count interactions: %w", err)
	}
	dist, err := s.store.CountInteractionsByContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count interactions by context: %w", err)
	}
	if dist == nil {
		dist = map[string]int64{}
	}
	return &domain.MetricsSummary{
		TotalInteractions:   total,
		ContextDistribution: dist,
	}, nil
}

// Status reports process uptime and the number of known users.
func (s *Service) Status(ctx context.Context) (*domain.ServiceStatus, error) {
	users, err := s.store.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	return &domain.ServiceStatus{
		Status:     "OK",
		Uptime:     time.Since(s.startedAt).Round(time.Second).String(),
		TotalUsers: users,
	}, nil
}
