// package repository defines the interfaces for the data persistence layer.
// These interfaces abstract the underlying database implementation from the service layer.
package repository

import (
	"context"
	"time"

	"github.com/YusovID/bughunt-service/internal/domain"
	"github.com/jmoiron/sqlx"
)

// UserRepository defines the contract for user and badge data.
type UserRepository interface {
	// CreateUser inserts a new user.
	// It returns apperrors.ErrAlreadyExists if the id is taken.
	CreateUser(ctx context.Context, user *domain.User) error

	// GetUserByID returns the user with Badges populated and TotalXP derived from their
	// approved and resolved bug reports in the same statement that reads the user row.
	// The ext argument allows this method to be executed within a transaction (*sqlx.Tx)
	// or directly on a DB connection (*sqlx.DB).
	// It returns apperrors.ErrNotFound if the user does not exist.
	GetUserByID(ctx context.Context, ext sqlx.ExtContext, userID string) (*domain.User, error)

	// LockUser acquires a row-level lock ("FOR UPDATE") on the user, serializing XP-affecting
	// transitions for the same tester.
	LockUser(ctx context.Context, tx *sqlx.Tx, userID string) error

	// ListTesterStandings returns XP and approved/resolved counts for every tester.
	ListTesterStandings(ctx context.Context) ([]domain.TesterStanding, error)
}

// AchievementRepository defines the contract for badge definitions and awarded badges.
type AchievementRepository interface {
	ListAchievements(ctx context.Context, ext sqlx.ExtContext) ([]domain.Achievement, error)

	// AwardBadges records earned achievements. Already held badges are ignored.
	AwardBadges(ctx context.Context, tx *sqlx.Tx, userID string, achievementIDs []string, earnedAt time.Time) error
}

// ProjectRepository defines the contract for project data and its derived counters.
type ProjectRepository interface {
	CreateProject(ctx context.Context, project *domain.Project) error

	// GetProjectByID returns apperrors.ErrNotFound if the project does not exist.
	GetProjectByID(ctx context.Context, ext sqlx.ExtContext, projectID string) (*domain.Project, error)

	// GetProjectByIDWithLock acquires a row-level lock on the project within tx.
	GetProjectByIDWithLock(ctx context.Context, tx *sqlx.Tx, projectID string) (*domain.Project, error)

	ListProjects(ctx context.Context, filter domain.ProjectFilter) ([]domain.Project, error)

	UpdateProjectStatus(ctx context.Context, projectID string, status domain.ProjectStatus, updatedAt time.Time) (*domain.Project, error)

	// IncrementBugsFound bumps bugs_found_count and, for a tester's first report, participant_count.
	IncrementBugsFound(ctx context.Context, tx *sqlx.Tx, projectID string, newParticipant bool) error

	IncrementBugsResolved(ctx context.Context, tx *sqlx.Tx, projectID string) error
}

// BugQueryRepository defines the contract for read-only bug report operations, following the CQRS pattern.
type BugQueryRepository interface {
	// GetBugByID retrieves a bug report with its comments in insertion order.
	// Returns apperrors.ErrNotFound if the bug is not found.
	GetBugByID(ctx context.Context, bugID string) (*domain.BugReport, error)

	// ListBugs applies the optional filter fields, newest first.
	ListBugs(ctx context.Context, filter domain.BugFilter) ([]domain.BugReport, error)

	// ListBugsByProjects returns every bug filed against any of projectIDs.
	ListBugsByProjects(ctx context.Context, projectIDs []string) ([]domain.BugReport, error)

	// SumAwardedXP derives a tester's total XP from approved and resolved bugs.
	SumAwardedXP(ctx context.Context, ext sqlx.ExtContext, testerID string) (int, error)

	// CountTesterBugsInProject counts a tester's reports for one project.
	CountTesterBugsInProject(ctx context.Context, ext sqlx.ExtContext, projectID, testerID string) (int, error)

	// GetComments returns a bug's comments in insertion order.
	GetComments(ctx context.Context, ext sqlx.ExtContext, bugID string) ([]domain.Comment, error)
}

// BugCommandRepository defines the contract for write and locking operations on bug reports.
// All methods are expected to be executed within a transaction.
type BugCommandRepository interface {
	CreateBug(ctx context.Context, tx *sqlx.Tx, bug *domain.BugReport) error

	// GetBugByIDWithLock retrieves a bug report (without comments) and acquires a row-level lock ("FOR UPDATE").
	// It returns apperrors.ErrNotFound if the bug is not found.
	GetBugByIDWithLock(ctx context.Context, tx *sqlx.Tx, bugID string) (*domain.BugReport, error)

	// UpdateBugState writes status, severity, xp_awarded, rejection_reason and updated_at.
	UpdateBugState(ctx context.Context, tx *sqlx.Tx, bug *domain.BugReport) error

	// AddComment appends a comment and bumps the bug's updated_at.
	AddComment(ctx context.Context, tx *sqlx.Tx, comment *domain.Comment) error
}

// NotificationRepository defines the contract for the notification outbox and inbox.
type NotificationRepository interface {
	CreateNotifications(ctx context.Context, tx *sqlx.Tx, notifications []domain.Notification) error

	// ListNotifications returns a user's notifications, newest first.
	ListNotifications(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error)

	// GetNotificationByID returns apperrors.ErrNotFound if the notification does not exist.
	GetNotificationByID(ctx context.Context, notificationID string) (*domain.Notification, error)

	// MarkRead sets read=true and returns the updated notification.
	MarkRead(ctx context.Context, notificationID string) (*domain.Notification, error)

	// ListUndispatched returns up to limit notifications not yet relayed, oldest first.
	ListUndispatched(ctx context.Context, limit int) ([]domain.Notification, error)

	MarkDispatched(ctx context.Context, notificationIDs []string, dispatchedAt time.Time) error
}
