package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/xiaot623/adgenie/internal/domain"
	"github.com/xiaot623/adgenie/internal/metrics"
	"github.com/xiaot623/adgenie/internal/repository"
)

// resolveUser returns the user owning sessionID, creating an anonymous one on
// first contact. The new user is only durable if tx commits.
func (s *Service) resolveUser(ctx context.Context, tx store.Tx, sessionID string) (*domain.User, error) {
	user, err := tx.GetUserBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user != nil {
		return user, nil
	}

	user = &domain.User{
		SessionID: sessionID,
		Name:      domain.AnonymousName,
		CreatedAt: time.Now().UTC(),
	}
	created, err := tx.CreateUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	if created {
		metrics.UsersCreated.Inc()
		zerolog.Ctx(ctx).Info().Int64("user_id", user.ID).Msg("created anonymous user")
		return user, nil
	}

	// A concurrent request inserted the same session token first.
	user, err = tx.GetUserBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user for session vanished after insert conflict")
	}
	return user, nil
}
