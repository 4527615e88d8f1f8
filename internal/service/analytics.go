package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/YusovID/bughunt-service/internal/analytics"
	"github.com/YusovID/bughunt-service/internal/domain"
	"github.com/YusovID/bughunt-service/internal/repository"
)

type AnalyticsService interface {
	GetUserAnalytics(ctx context.Context, userID string) (*analytics.UserAnalytics, error)
}

type AnalyticsServiceImpl struct {
	BaseService
	users    repository.UserRepository
	projects repository.ProjectRepository
	bugQuery repository.BugQueryRepository
}

func NewAnalyticsService(
	db DB,
	log *slog.Logger,
	users repository.UserRepository,
	projects repository.ProjectRepository,
	bugQuery repository.BugQueryRepository,
) *AnalyticsServiceImpl {
	return &AnalyticsServiceImpl{
		BaseService: NewBaseService(db, log),
		users:       users,
		projects:    projects,
		bugQuery:    bugQuery,
	}
}

// GetUserAnalytics builds the tester view for testers, the owned-projects view for
// maintainers and the all-projects view for admins.
func (s *AnalyticsServiceImpl) GetUserAnalytics(ctx context.Context, userID string) (*analytics.UserAnalytics, error) {
	const op = "internal.service.analytics.GetUserAnalytics"

	user, err := s.users.GetUserByID(ctx, s.db, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := &analytics.UserAnalytics{UserID: user.ID, Role: user.Role}

	if user.Role == domain.RoleTester {
		bugs, err := s.bugQuery.ListBugs(ctx, domain.BugFilter{TesterID: &user.ID})
		if err != nil {
			return nil, fmt.Errorf("%s: failed to list bugs: %w", op, err)
		}

		summary := analytics.ForTester(bugs)
		result.Tester = &summary

		return result, nil
	}

	var filter domain.ProjectFilter
	if user.Role == domain.RoleMaintainer {
		filter.MaintainerID = &user.ID
	}

	projects, err := s.projects.ListProjects(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list projects: %w", op, err)
	}

	ids := make([]string, 0, len(projects))
	for _, p := range projects {
		ids = append(ids, p.ID)
	}

	bugs, err := s.bugQuery.ListBugsByProjects(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list bugs: %w", op, err)
	}

	summary := analytics.ForMaintainer(projects, bugs)
	result.Maintainer = &summary

	return result, nil
}
