package service

import (
	"context"

	"tango/internal/domain"

	"go.uber.org/zap"
)

// StatsService reports learning progress over the stored list
type StatsService struct {
	store  *WordStore
	logger *zap.Logger
}

// NewStatsService creates a new stats service
func NewStatsService(store *WordStore, logger *zap.Logger) *StatsService {
	return &StatsService{
		store:  store,
		logger: logger,
	}
}

// Summary counts total, remembered, not remembered and unstudied words
func (s *StatsService) Summary(ctx context.Context) domain.WordStats {
	stats := domain.CountStats(s.store.Load(ctx))
	s.logger.Debug("Stats computed",
		zap.Int("total", stats.Total),
		zap.Int("remembered", stats.Remembered),
	)
	return stats
}
