// Package service implements the chat exchange and the read-side queries over it.
package service

import (
	"context"
	"time"

	"github.com/xiaot623/adgenie/internal/classifier"
	"github.com/xiaot623/adgenie/internal/repository"
)

type Service struct {
	store      store.Store
	classifier *classifier.Classifier
	startedAt  time.Time
}

func New(store store.Store, classifier *classifier.Classifier) *Service {
	return &Service{
		store:      store,
		classifier: classifier,
		startedAt:  time.Now(),
	}
}

// Ping checks that storage is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}
