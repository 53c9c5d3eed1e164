package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/xiaot623/adgenie/internal/classifier"
	"github.com/xiaot623/adgenie/internal/domain"
	"github.com/xiaot623/adgenie/internal/metrics"
	"github.com/xiaot623/adgenie/internal/repository"
)

// SendMessage handles one chat exchange: it classifies the message, then
// resolves the session's user and records the USER and BOT interactions in one
// transaction. Either the whole exchange is stored or nothing is.
func (s *Service) SendMessage(ctx context.Context, sessionID, message string) (*domain.ChatMessageResponse, error) {
	logger := zerolog.Ctx(ctx)

	// Classification may wait on the external service; keep it outside the write lock.
	result := s.classifier.Classify(ctx, message)

	err := s.store.WithTx(ctx, func(tx store.Tx) error {
		user, err := s.resolveUser(ctx, tx, sessionID)
		if err != nil {
			return err
		}
		return s.recordExchange(ctx, tx, user, message, result)
	})
	if err != nil {
		metrics.ChatFailures.Inc()
		return nil, fmt.Errorf("chat exchange failed: %w", err)
	}

	metrics.ChatExchanges.WithLabelValues(result.Context).Inc()
	logger.Info().
		Str("context", result.Context).
		Str("source", string(result.Source)).
		Msg("chat exchange recorded")

	return &domain.ChatMessageResponse{Reply: result.Reply}, nil
}

// recordExchange stores the user message and the bot reply under the same context.
func (s *Service) recordExchange(ctx context.Context, tx store.Tx, user *domain.User, message string, result classifier.Result) error {
	now := time.Now().UTC()

	userMsg := &domain.ChatInteraction{
		UserID:      user.ID,
		Context:     result.Context,
		MessageType: domain.MessageTypeUser,
		MessageText: message,
		CreatedAt:   now,
	}
	if err := tx.CreateInteraction(ctx, userMsg); err != nil {
		return fmt.Errorf("failed to record user message: %w", err)
	}

	botMsg := &domain.ChatInteraction{
		UserID:      user.ID,
		Context:     result.Context,
		MessageType: domain.MessageTypeBot,
		MessageText: result.Reply,
		CreatedAt:   now,
	}
	if err := tx.CreateInteraction(ctx, botMsg); err != nil {
		return fmt.Errorf("failed to record bot reply: %w", err)
	}
	return nil
}
