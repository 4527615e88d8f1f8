package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/YusovID/bughunt-service/internal/domain"
	"github.com/YusovID/bughunt-service/internal/repository"
	"github.com/YusovID/bughunt-service/internal/scoring"
)

type ScoringService interface {
	// RecomputeTotalXP returns 0 for users without counted bugs, including unknown users.
	RecomputeTotalXP(ctx context.Context, userID string) (int, error)
	SuccessRate(ctx context.Context, userID string) (int, error)
}

type ScoringServiceImpl struct {
	BaseService
	bugQuery repository.BugQueryRepository
}

func NewScoringService(db DB, log *slog.Logger, bugQuery repository.BugQueryRepository) *ScoringServiceImpl {
	return &ScoringServiceImpl{
		BaseService: NewBaseService(db, log),
		bugQuery:    bugQuery,
	}
}

func (s *ScoringServiceImpl) RecomputeTotalXP(ctx context.Context, userID string) (int, error) {
	const op = "internal.service.scoring.RecomputeTotalXP"

	total, err := s.bugQuery.SumAwardedXP(ctx, s.db, userID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return total, nil
}

func (s *ScoringServiceImpl) SuccessRate(ctx context.Context, userID string) (int, error) {
	const op = "internal.service.scoring.SuccessRate"

	bugs, err := s.bugQuery.ListBugs(ctx, domain.BugFilter{TesterID: &userID})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return scoring.SuccessRate(scoring.CountedBugs(bugs), len(bugs)), nil
}
