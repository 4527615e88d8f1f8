package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/YusovID/bughunt-service/internal/apperrors"
	"github.com/YusovID/bughunt-service/internal/domain"
	"github.com/YusovID/bughunt-service/internal/lifecycle"
	"github.com/YusovID/bughunt-service/internal/repository"
	"github.com/jmoiron/sqlx"
)

type BugService interface {
	SubmitBug(ctx context.Context, actor domain.Actor, input lifecycle.SubmitInput) (*domain.BugReport, error)
	ApproveBug(ctx context.Context, actor domain.Actor, bugID string, severity *domain.Severity) (*domain.BugReport, error)
	RejectBug(ctx context.Context, actor domain.Actor, bugID, reason string) (*domain.BugReport, error)
	ResolveBug(ctx context.Context, actor domain.Actor, bugID string) (*domain.BugReport, error)
	AddComment(ctx context.Context, actor domain.Actor, bugID, text string) (*domain.Comment, error)
	GetBug(ctx context.Context, bugID string) (*domain.BugReport, error)
	ListBugs(ctx context.Context, filter domain.BugFilter) ([]domain.BugReport, error)
}

type BugServiceImpl struct {
	BaseService
	users         repository.UserRepository
	achievements  repository.AchievementRepository
	projects      repository.ProjectRepository
	bugQuery      repository.BugQueryRepository
	bugCmd        repository.BugCommandRepository
	notifications repository.NotificationRepository
	metrics       Metrics
}

func NewBugService(
	db DB,
	log *slog.Logger,
	users repository.UserRepository,
	achievements repository.AchievementRepository,
	projects repository.ProjectRepository,
	bugQuery repository.BugQueryRepository,
	bugCmd repository.BugCommandRepository,
	notifications repository.NotificationRepository,
	metrics Metrics,
) *BugServiceImpl {
	if metrics == nil {
		metrics = noopMetrics{}
	}

	return &BugServiceImpl{
		BaseService:   NewBaseService(db, log),
		users:         users,
		achievements:  achievements,
		projects:      projects,
		bugQuery:      bugQuery,
		bugCmd:        bugCmd,
		notifications: notifications,
		metrics:       metrics,
	}
}

func (s *BugServiceImpl) SubmitBug(ctx context.Context, actor domain.Actor, input lifecycle.SubmitInput) (*domain.BugReport, error) {
	const op = "internal.service.bug.SubmitBug"
	log := s.log.With(slog.String("op", op), slog.String("project_id", input.ProjectID), slog.String("tester_id", actor.UserID))

	if err := lifecycle.RequireRole(actor, domain.RoleTester); err != nil {
		return nil, err
	}

	input.TesterID = actor.UserID
	now := s.now()

	var (
		bug    *domain.BugReport
		earned []domain.Achievement
	)

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		project, err := s.projects.GetProjectByIDWithLock(ctx, tx, input.ProjectID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%s: failed to lock project: %w", op, err)
		}

		tester, err := s.users.GetUserByID(ctx, tx, actor.UserID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%s: failed to get tester: %w", op, err)
		}

		var outcome lifecycle.Outcome

		bug, outcome, err = lifecycle.Submit(input, project, tester, now)
		if err != nil {
			return err
		}

		existing, err := s.bugQuery.CountTesterBugsInProject(ctx, tx, project.ID, tester.ID)
		if err != nil {
			return fmt.Errorf("%s: failed to count tester bugs: %w", op, err)
		}

		if err := s.bugCmd.CreateBug(ctx, tx, bug); err != nil {
			return fmt.Errorf("%s: failed to create bug: %w", op, err)
		}

		if err := s.projects.IncrementBugsFound(ctx, tx, project.ID, existing == 0); err != nil {
			return fmt.Errorf("%s: failed to update project counters: %w", op, err)
		}

		notifications := outcome.Notifications

		var badgeNotifications []domain.Notification

		earned, badgeNotifications, err = s.awardBadges(ctx, tx, tester.ID, outcome.BadgeEvents, now)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		notifications = append(notifications, badgeNotifications...)

		if err := s.notifications.CreateNotifications(ctx, tx, notifications); err != nil {
			return fmt.Errorf("%s: failed to store notifications: %w", op, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.BugTransition("submit")
	s.recordBadges(earned)

	log.Info("bug submitted", slog.String("bug_id", bug.ID), slog.String("severity", string(bug.Severity)))

	return bug, nil
}

func (s *BugServiceImpl) ApproveBug(ctx context.Context, actor domain.Actor, bugID string, severity *domain.Severity) (*domain.BugReport, error) {
	const op = "internal.service.bug.ApproveBug"
	log := s.log.With(slog.String("op", op), slog.String("bug_id", bugID), slog.String("actor_id", actor.UserID))

	now := s.now()

	var earned []domain.Achievement

	bug, err := s.triage(ctx, op, actor, bugID, func(tx *sqlx.Tx, bug *domain.BugReport) ([]domain.Notification, error) {
		outcome, err := lifecycle.Approve(bug, severity, now)
		if err != nil {
			return nil, err
		}

		if err := s.bugCmd.UpdateBugState(ctx, tx, bug); err != nil {
			return nil, fmt.Errorf("%s: failed to update bug: %w", op, err)
		}

		var badgeNotifications []domain.Notification

		earned, badgeNotifications, err = s.awardBadges(ctx, tx, bug.TesterID, outcome.BadgeEvents, now)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		return append(outcome.Notifications, badgeNotifications...), nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.BugTransition("approve")
	s.metrics.XPAwarded(bug.Severity, bug.XPAwarded)
	s.recordBadges(earned)

	log.Info("bug approved", slog.Int("xp_awarded", bug.XPAwarded), slog.Int("badges_earned", len(earned)))

	return bug, nil
}

func (s *BugServiceImpl) RejectBug(ctx context.Context, actor domain.Actor, bugID, reason string) (*domain.BugReport, error) {
	const op = "internal.service.bug.RejectBug"
	log := s.log.With(slog.String("op", op), slog.String("bug_id", bugID), slog.String("actor_id", actor.UserID))

	now := s.now()

	bug, err := s.triage(ctx, op, actor, bugID, func(tx *sqlx.Tx, bug *domain.BugReport) ([]domain.Notification, error) {
		outcome, err := lifecycle.Reject(bug, reason, now)
		if err != nil {
			return nil, err
		}

		if err := s.bugCmd.UpdateBugState(ctx, tx, bug); err != nil {
			return nil, fmt.Errorf("%s: failed to update bug: %w", op, err)
		}

		return outcome.Notifications, nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.BugTransition("reject")
	log.Info("bug rejected")

	return bug, nil
}

func (s *BugServiceImpl) ResolveBug(ctx context.Context, actor domain.Actor, bugID string) (*domain.BugReport, error) {
	const op = "internal.service.bug.ResolveBug"
	log := s.log.With(slog.String("op", op), slog.String("bug_id", bugID), slog.String("actor_id", actor.UserID))

	now := s.now()

	bug, err := s.triage(ctx, op, actor, bugID, func(tx *sqlx.Tx, bug *domain.BugReport) ([]domain.Notification, error) {
		outcome, err := lifecycle.Resolve(bug, now)
		if err != nil {
			return nil, err
		}

		if err := s.bugCmd.UpdateBugState(ctx, tx, bug); err != nil {
			return nil, fmt.Errorf("%s: failed to update bug: %w", op, err)
		}

		if err := s.projects.IncrementBugsResolved(ctx, tx, bug.ProjectID); err != nil {
			return nil, fmt.Errorf("%s: failed to update project counters: %w", op, err)
		}

		return outcome.Notifications, nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.BugTransition("resolve")
	log.Info("bug resolved")

	return bug, nil
}

// triage locks the bug, authorizes the actor against its project, applies fn and
// stores the notifications fn returns. The returned bug carries its comments.
func (s *BugServiceImpl) triage(
	ctx context.Context,
	op string,
	actor domain.Actor,
	bugID string,
	fn func(tx *sqlx.Tx, bug *domain.BugReport) ([]domain.Notification, error),
) (*domain.BugReport, error) {
	var bug *domain.BugReport

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		var err error

		bug, err = s.bugCmd.GetBugByIDWithLock(ctx, tx, bugID)
		if err != nil {
			return fmt.Errorf("%s: failed to get bug with lock: %w", op, err)
		}

		project, err := s.projects.GetProjectByID(ctx, tx, bug.ProjectID)
		if err != nil {
			return fmt.Errorf("%s: failed to get project: %w", op, err)
		}

		if err := lifecycle.AuthorizeTriage(actor, project); err != nil {
			return err
		}

		notifications, err := fn(tx, bug)
		if err != nil {
			return err
		}

		if err := s.notifications.CreateNotifications(ctx, tx, notifications); err != nil {
			return fmt.Errorf("%s: failed to store notifications: %w", op, err)
		}

		bug.Comments, err = s.bugQuery.GetComments(ctx, tx, bugID)
		if err != nil {
			return fmt.Errorf("%s: failed to get comments: %w", op, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return bug, nil
}

func (s *BugServiceImpl) AddComment(ctx context.Context, actor domain.Actor, bugID, text string) (*domain.Comment, error) {
	const op = "internal.service.bug.AddComment"
	log := s.log.With(slog.String("op", op), slog.String("bug_id", bugID), slog.String("actor_id", actor.UserID))

	now := s.now()

	var comment *domain.Comment

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		bug, err := s.bugCmd.GetBugByIDWithLock(ctx, tx, bugID)
		if err != nil {
			return fmt.Errorf("%s: failed to get bug with lock: %w", op, err)
		}

		project, err := s.projects.GetProjectByID(ctx, tx, bug.ProjectID)
		if err != nil {
			return fmt.Errorf("%s: failed to get project: %w", op, err)
		}

		if err := lifecycle.AuthorizeComment(actor, bug, project); err != nil {
			return err
		}

		author, err := s.users.GetUserByID(ctx, tx, actor.UserID)
		if errors.Is(err, apperrors.ErrNotFound) {
			// comments reference users(id), so token-only accounts cannot author them
			return &apperrors.RoleMismatchError{UserID: actor.UserID, Role: string(actor.Role), Required: "registered user"}
		}

		if err != nil {
			return fmt.Errorf("%s: failed to get author: %w", op, err)
		}

		var outcome lifecycle.Outcome

		comment, outcome, err = lifecycle.AddComment(bug, project, author, text, now)
		if err != nil {
			return err
		}

		if err := s.bugCmd.AddComment(ctx, tx, comment); err != nil {
			return fmt.Errorf("%s: failed to add comment: %w", op, err)
		}

		if err := s.notifications.CreateNotifications(ctx, tx, outcome.Notifications); err != nil {
			return fmt.Errorf("%s: failed to store notifications: %w", op, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.BugTransition("comment")
	log.Info("comment added", slog.String("comment_id", comment.ID))

	return comment, nil
}

func (s *BugServiceImpl) GetBug(ctx context.Context, bugID string) (*domain.BugReport, error) {
	const op = "internal.service.bug.GetBug"

	bug, err := s.bugQuery.GetBugByID(ctx, bugID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return bug, nil
}

func (s *BugServiceImpl) ListBugs(ctx context.Context, filter domain.BugFilter) ([]domain.BugReport, error) {
	const op = "internal.service.bug.ListBugs"

	bugs, err := s.bugQuery.ListBugs(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return bugs, nil
}

// awardBadges locks the user, re-derives total XP inside tx and records every
// achievement the user newly qualifies for.
func (s *BugServiceImpl) awardBadges(
	ctx context.Context,
	tx *sqlx.Tx,
	userID string,
	events []domain.BadgeEvent,
	now time.Time,
) ([]domain.Achievement, []domain.Notification, error) {
	if err := s.users.LockUser(ctx, tx, userID); err != nil {
		return nil, nil, fmt.Errorf("failed to lock user: %w", err)
	}

	user, err := s.users.GetUserByID(ctx, tx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get user: %w", err)
	}

	achievements, err := s.achievements.ListAchievements(ctx, tx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list achievements: %w", err)
	}

	earned, outcome := lifecycle.AwardBadges(user, user.TotalXP, achievements, events, now)
	if len(earned) == 0 {
		return nil, nil, nil
	}

	ids := make([]string, 0, len(earned))
	for _, a := range earned {
		ids = append(ids, a.ID)
	}

	if err := s.achievements.AwardBadges(ctx, tx, userID, ids, now); err != nil {
		return nil, nil, fmt.Errorf("failed to award badges: %w", err)
	}

	return earned, outcome.Notifications, nil
}

func (s *BugServiceImpl) recordBadges(earned []domain.Achievement) {
	for _, a := range earned {
		s.metrics.BadgeAwarded(a.ID)
	}
}
