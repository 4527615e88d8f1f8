package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/YusovID/bughunt-service/internal/domain"
	"github.com/YusovID/bughunt-service/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"
)

type TransactorMock struct {
	mock.Mock
	sqlx.ExtContext
}

func (m *TransactorMock) BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*sqlx.Tx), args.Error(1)
}

type UserRepositoryMock struct {
	mock.Mock
}

var _ repository.UserRepository = (*UserRepositoryMock)(nil)

func (m *UserRepositoryMock) CreateUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepositoryMock) GetUserByID(ctx context.Context, ext sqlx.ExtContext, userID string) (*domain.User, error) {
	args := m.Called(ctx, ext, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepositoryMock) LockUser(ctx context.Context, tx *sqlx.Tx, userID string) error {
	args := m.Called(ctx, tx, userID)
	return args.Error(0)
}

func (m *UserRepositoryMock) ListTesterStandings(ctx context.Context) ([]domain.TesterStanding, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.TesterStanding), args.Error(1)
}

type AchievementRepositoryMock struct {
	mock.Mock
}

var _ repository.AchievementRepository = (*AchievementRepositoryMock)(nil)

func (m *AchievementRepositoryMock) ListAchievements(ctx context.Context, ext sqlx.ExtContext) ([]domain.Achievement, error) {
	args := m.Called(ctx, ext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Achievement), args.Error(1)
}

func (m *AchievementRepositoryMock) AwardBadges(ctx context.Context, tx *sqlx.Tx, userID string, achievementIDs []string, earnedAt time.Time) error {
	args := m.Called(ctx, tx, userID, achievementIDs, earnedAt)
	return args.Error(0)
}

type ProjectRepositoryMock struct {
	mock.Mock
}

var _ repository.ProjectRepository = (*ProjectRepositoryMock)(nil)

func (m *ProjectRepositoryMock) CreateProject(ctx context.Context, project *domain.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *ProjectRepositoryMock) GetProjectByID(ctx context.Context, ext sqlx.ExtContext, projectID string) (*domain.Project, error) {
	args := m.Called(ctx, ext, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *ProjectRepositoryMock) GetProjectByIDWithLock(ctx context.Context, tx *sqlx.Tx, projectID string) (*domain.Project, error) {
	args := m.Called(ctx, tx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *ProjectRepositoryMock) ListProjects(ctx context.Context, filter domain.ProjectFilter) ([]domain.Project, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Project), args.Error(1)
}

func (m *ProjectRepositoryMock) UpdateProjectStatus(ctx context.Context, projectID string, status domain.ProjectStatus, updatedAt time.Time) (*domain.Project, error) {
	args := m.Called(ctx, projectID, status, updatedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *ProjectRepositoryMock) IncrementBugsFound(ctx context.Context, tx *sqlx.Tx, projectID string, newParticipant bool) error {
	args := m.Called(ctx, tx, projectID, newParticipant)
	return args.Error(0)
}

func (m *ProjectRepositoryMock) IncrementBugsResolved(ctx context.Context, tx *sqlx.Tx, projectID string) error {
	args := m.Called(ctx, tx, projectID)
	return args.Error(0)
}

type BugQueryRepositoryMock struct {
	mock.Mock
}

var _ repository.BugQueryRepository = (*BugQueryRepositoryMock)(nil)

func (m *BugQueryRepositoryMock) GetBugByID(ctx context.Context, bugID string) (*domain.BugReport, error) {
	args := m.Called(ctx, bugID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.BugReport), args.Error(1)
}

func (m *BugQueryRepositoryMock) ListBugs(ctx context.Context, filter domain.BugFilter) ([]domain.BugReport, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.BugReport), args.Error(1)
}

func (m *BugQueryRepositoryMock) ListBugsByProjects(ctx context.Context, projectIDs []string) ([]domain.BugReport, error) {
	args := m.Called(ctx, projectIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.BugReport), args.Error(1)
}

func (m *BugQueryRepositoryMock) SumAwardedXP(ctx context.Context, ext sqlx.ExtContext, testerID string) (int, error) {
	args := m.Called(ctx, ext, testerID)
	return args.Int(0), args.Error(1)
}

func (m *BugQueryRepositoryMock) CountTesterBugsInProject(ctx context.Context, ext sqlx.ExtContext, projectID, testerID string) (int, error) {
	args := m.Called(ctx, ext, projectID, testerID)
	return args.Int(0), args.Error(1)
}

func (m *BugQueryRepositoryMock) GetComments(ctx context.Context, ext sqlx.ExtContext, bugID string) ([]domain.Comment, error) {
	args := m.Called(ctx, ext, bugID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Comment), args.Error(1)
}

type BugCommandRepositoryMock struct {
	mock.Mock
}

var _ repository.BugCommandRepository = (*BugCommandRepositoryMock)(nil)

func (m *BugCommandRepositoryMock) CreateBug(ctx context.Context, tx *sqlx.Tx, bug *domain.BugReport) error {
	args := m.Called(ctx, tx, bug)
	return args.Error(0)
}

func (m *BugCommandRepositoryMock) GetBugByIDWithLock(ctx context.Context, tx *sqlx.Tx, bugID string) (*domain.BugReport, error) {
	args := m.Called(ctx, tx, bugID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.BugReport), args.Error(1)
}

func (m *BugCommandRepositoryMock) UpdateBugState(ctx context.Context, tx *sqlx.Tx, bug *domain.BugReport) error {
	args := m.Called(ctx, tx, bug)
	return args.Error(0)
}

func (m *BugCommandRepositoryMock) AddComment(ctx context.Context, tx *sqlx.Tx, comment *domain.Comment) error {
	args := m.Called(ctx, tx, comment)
	return args.Error(0)
}

type NotificationRepositoryMock struct {
	mock.Mock
}

var _ repository.NotificationRepository = (*NotificationRepositoryMock)(nil)

func (m *NotificationRepositoryMock) CreateNotifications(ctx context.Context, tx *sqlx.Tx, notifications []domain.Notification) error {
	args := m.Called(ctx, tx, notifications)
	return args.Error(0)
}

func (m *NotificationRepositoryMock) ListNotifications(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error) {
	args := m.Called(ctx, userID, unreadOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *NotificationRepositoryMock) GetNotificationByID(ctx context.Context, notificationID string) (*domain.Notification, error) {
	args := m.Called(ctx, notificationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *NotificationRepositoryMock) MarkRead(ctx context.Context, notificationID string) (*domain.Notification, error) {
	args := m.Called(ctx, notificationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *NotificationRepositoryMock) ListUndispatched(ctx context.Context, limit int) ([]domain.Notification, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *NotificationRepositoryMock) MarkDispatched(ctx context.Context, notificationIDs []string, dispatchedAt time.Time) error {
	args := m.Called(ctx, notificationIDs, dispatchedAt)
	return args.Error(0)
}

type metricsRecorder struct {
	transitions []string
	xp          map[domain.Severity]int
	badges      []string
}

func (r *metricsRecorder) BugTransition(transition string) {
	r.transitions = append(r.transitions, transition)
}

func (r *metricsRecorder) XPAwarded(severity domain.Severity, xp int) {
	if r.xp == nil {
		r.xp = map[domain.Severity]int{}
	}

	r.xp[severity] += xp
}

func (r *metricsRecorder) BadgeAwarded(achievementID string) {
	r.badges = append(r.badges, achievementID)
}
