package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/YusovID/bughunt-service/internal/domain"
	"github.com/YusovID/bughunt-service/internal/ranking"
	"github.com/YusovID/bughunt-service/internal/repository"
)

type LeaderboardService interface {
	// GetLeaderboard ranks every tester; a positive limit truncates the result.
	GetLeaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
}

type LeaderboardServiceImpl struct {
	log   *slog.Logger
	users repository.UserRepository
}

func NewLeaderboardService(log *slog.Logger, users repository.UserRepository) *LeaderboardServiceImpl {
	return &LeaderboardServiceImpl{
		log:   log,
		users: users,
	}
}

func (s *LeaderboardServiceImpl) GetLeaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	const op = "internal.service.leaderboard.GetLeaderboard"

	standings, err := s.users.ListTesterStandings(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	entries := ranking.Rank(standings)
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	return entries, nil
}
