package http

import (
	"context"

	"github.com/YusovID/bughunt-service/internal/analytics"
	"github.com/YusovID/bughunt-service/internal/domain"
	"github.com/YusovID/bughunt-service/internal/lifecycle"
	"github.com/YusovID/bughunt-service/internal/service"
	"github.com/stretchr/testify/mock"
)

var (
	_ service.BugService          = (*BugServiceMock)(nil)
	_ service.UserService         = (*UserServiceMock)(nil)
	_ service.ProjectService      = (*ProjectServiceMock)(nil)
	_ service.ScoringService      = (*ScoringServiceMock)(nil)
	_ service.LeaderboardService  = (*LeaderboardServiceMock)(nil)
	_ service.AnalyticsService    = (*AnalyticsServiceMock)(nil)
	_ service.NotificationService = (*NotificationServiceMock)(nil)
)

type BugServiceMock struct {
	mock.Mock
}

func (m *BugServiceMock) SubmitBug(ctx context.Context, actor domain.Actor, input lifecycle.SubmitInput) (*domain.BugReport, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.BugReport), args.Error(1)
}

func (m *BugServiceMock) ApproveBug(ctx context.Context, actor domain.Actor, bugID string, severity *domain.Severity) (*domain.BugReport, error) {
	args := m.Called(ctx, actor, bugID, severity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.BugReport), args.Error(1)
}

func (m *BugServiceMock) RejectBug(ctx context.Context, actor domain.Actor, bugID, reason string) (*domain.BugReport, error) {
	args := m.Called(ctx, actor, bugID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.BugReport), args.Error(1)
}

func (m *BugServiceMock) ResolveBug(ctx context.Context, actor domain.Actor, bugID string) (*domain.BugReport, error) {
	args := m.Called(ctx, actor, bugID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.BugReport), args.Error(1)
}

func (m *BugServiceMock) AddComment(ctx context.Context, actor domain.Actor, bugID, text string) (*domain.Comment, error) {
	args := m.Called(ctx, actor, bugID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *BugServiceMock) GetBug(ctx context.Context, bugID string) (*domain.BugReport, error) {
	args := m.Called(ctx, bugID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.BugReport), args.Error(1)
}

func (m *BugServiceMock) ListBugs(ctx context.Context, filter domain.BugFilter) ([]domain.BugReport, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.BugReport), args.Error(1)
}

type UserServiceMock struct {
	mock.Mock
}

func (m *UserServiceMock) CreateUser(ctx context.Context, input service.CreateUserInput) (*domain.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserServiceMock) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserServiceMock) ListAchievements(ctx context.Context) ([]domain.Achievement, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Achievement), args.Error(1)
}

type ProjectServiceMock struct {
	mock.Mock
}

func (m *ProjectServiceMock) CreateProject(ctx context.Context, actor domain.Actor, input service.CreateProjectInput) (*domain.Project, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *ProjectServiceMock) GetProject(ctx context.Context, projectID string) (*domain.Project, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *ProjectServiceMock) ListProjects(ctx context.Context, filter domain.ProjectFilter) ([]domain.Project, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Project), args.Error(1)
}

func (m *ProjectServiceMock) UpdateProjectStatus(ctx context.Context, actor domain.Actor, projectID string, status domain.ProjectStatus) (*domain.Project, error) {
	args := m.Called(ctx, actor, projectID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Project), args.Error(1)
}

type ScoringServiceMock struct {
	mock.Mock
}

func (m *ScoringServiceMock) RecomputeTotalXP(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *ScoringServiceMock) SuccessRate(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

type LeaderboardServiceMock struct {
	mock.Mock
}

func (m *LeaderboardServiceMock) GetLeaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.LeaderboardEntry), args.Error(1)
}

type AnalyticsServiceMock struct {
	mock.Mock
}

func (m *AnalyticsServiceMock) GetUserAnalytics(ctx context.Context, userID string) (*analytics.UserAnalytics, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*analytics.UserAnalytics), args.Error(1)
}

type NotificationServiceMock struct {
	mock.Mock
}

func (m *NotificationServiceMock) ListNotifications(ctx context.Context, actor domain.Actor, unreadOnly bool) ([]domain.Notification, error) {
	args := m.Called(ctx, actor, unreadOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *NotificationServiceMock) MarkNotificationRead(ctx context.Context, actor domain.Actor, notificationID string) (*domain.Notification, error) {
	args := m.Called(ctx, actor, notificationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Notification), args.Error(1)
}
