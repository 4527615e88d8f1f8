// Package lifecycle implements the bug report state machine.
//
//	Pending  --approve--> Approved --resolve--> Resolved
//	Pending  --reject-->  Rejected
//
// Rejected and Resolved are terminal. Every operation mutates the bug in place and
// returns the notifications it implies as an Outcome; persisting and delivering them
// is left to the caller.
package lifecycle

import (
	"fmt"
	"strings"
	"time"

	"github.com/YusovID/bughunt-service/internal/apperrors"
	"github.com/YusovID/bughunt-service/internal/domain"
	"github.com/YusovID/bughunt-service/internal/scoring"
	"github.com/google/uuid"
)

var newID = uuid.NewString

// Outcome is the list of side effects produced by a transition.
type Outcome struct {
	Notifications []domain.Notification
	BadgeEvents   []domain.BadgeEvent
}

type SubmitInput struct {
	ProjectID        string
	TesterID         string
	Title            string
	Description      string
	Category         domain.Category
	Severity         domain.Severity
	StepsToReproduce string
	ExpectedBehavior string
	ActualBehavior   string
	Attachments      []string
}

// Submit creates a Pending bug report against an Active project and notifies the project's maintainer.
func Submit(in SubmitInput, project *domain.Project, tester *domain.User, now time.Time) (*domain.BugReport, Outcome, error) {
	if project == nil || project.Status != domain.ProjectStatusActive {
		return nil, Outcome{}, &apperrors.NotFoundError{Kind: "active project", ID: in.ProjectID}
	}

	if tester == nil {
		return nil, Outcome{}, &apperrors.NotFoundError{Kind: "user", ID: in.TesterID}
	}

	if tester.Role != domain.RoleTester {
		return nil, Outcome{}, &apperrors.RoleMismatchError{UserID: tester.ID, Role: string(tester.Role), Required: string(domain.RoleTester)}
	}

	if err := validateSubmit(in); err != nil {
		return nil, Outcome{}, err
	}

	attachments := in.Attachments
	if attachments == nil {
		attachments = []string{}
	}

	bug := &domain.BugReport{
		ID:               newID(),
		ProjectID:        project.ID,
		TesterID:         tester.ID,
		Title:            strings.TrimSpace(in.Title),
		Description:      strings.TrimSpace(in.Description),
		StepsToReproduce: in.StepsToReproduce,
		ExpectedBehavior: in.ExpectedBehavior,
		ActualBehavior:   in.ActualBehavior,
		Attachments:      attachments,
		Category:         in.Category,
		Severity:         in.Severity,
		Status:           domain.BugStatusPending,
		XPAwarded:        0,
		Comments:         []domain.Comment{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	outcome := Outcome{
		Notifications: []domain.Notification{
			notify(project.MaintainerID, domain.NotificationNewBug, "New bug report",
				fmt.Sprintf("%s reported %q on %s", tester.Name, bug.Title, project.Name),
				bug.ID, domain.RelatedBug, now),
		},
		BadgeEvents: []domain.BadgeEvent{domain.BadgeEventBugSubmitted},
	}

	return bug, outcome, nil
}

// Approve freezes the bug's XP award. A non-nil severity re-classifies the bug first.
func Approve(bug *domain.BugReport, severity *domain.Severity, now time.Time) (Outcome, error) {
	if bug.Status != domain.BugStatusPending {
		return Outcome{}, &apperrors.InvalidTransitionError{Op: "approve", From: string(bug.Status)}
	}

	if severity != nil {
		if !severity.Valid() {
			return Outcome{}, &apperrors.FieldError{Field: "severity", Message: fmt.Sprintf("has unknown value '%s'", *severity)}
		}

		bug.Severity = *severity
	}

	bug.Status = domain.BugStatusApproved
	bug.XPAwarded = scoring.XPFor(bug.Severity)
	bug.UpdatedAt = now

	outcome := Outcome{
		Notifications: []domain.Notification{
			notify(bug.TesterID, domain.NotificationBugApproved, "Bug approved",
				fmt.Sprintf("Your bug %q was approved: +%d XP", bug.Title, bug.XPAwarded),
				bug.ID, domain.RelatedBug, now),
		},
	}

	if bug.Severity == domain.SeverityCritical {
		outcome.BadgeEvents = append(outcome.BadgeEvents, domain.BadgeEventCriticalApproved)
	}

	return outcome, nil
}

func Reject(bug *domain.BugReport, reason string, now time.Time) (Outcome, error) {
	if bug.Status != domain.BugStatusPending {
		return Outcome{}, &apperrors.InvalidTransitionError{Op: "reject", From: string(bug.Status)}
	}

	if strings.TrimSpace(reason) == "" {
		return Outcome{}, &apperrors.FieldError{Field: "reason", Message: "must not be empty"}
	}

	bug.Status = domain.BugStatusRejected
	bug.RejectionReason = &reason
	bug.XPAwarded = 0
	bug.UpdatedAt = now

	return Outcome{
		Notifications: []domain.Notification{
			notify(bug.TesterID, domain.NotificationBugRejected, "Bug rejected",
				fmt.Sprintf("Your bug %q was rejected: %s", bug.Title, reason),
				bug.ID, domain.RelatedBug, now),
		},
	}, nil
}

func Resolve(bug *domain.BugReport, now time.Time) (Outcome, error) {
	if bug.Status != domain.BugStatusApproved {
		return Outcome{}, &apperrors.InvalidTransitionError{Op: "resolve", From: string(bug.Status)}
	}

	bug.Status = domain.BugStatusResolved
	bug.UpdatedAt = now

	return Outcome{}, nil
}

// AddComment appends a comment in any status and notifies the other party:
// the tester when staff comment, the maintainer when the tester comments.
func AddComment(bug *domain.BugReport, project *domain.Project, author *domain.User, text string, now time.Time) (*domain.Comment, Outcome, error) {
	if strings.TrimSpace(text) == "" {
		return nil, Outcome{}, &apperrors.FieldError{Field: "comment", Message: "must not be empty"}
	}

	role := domain.RoleMaintainer
	recipient := bug.TesterID

	if author.Role == domain.RoleTester {
		role = domain.RoleTester
		recipient = project.MaintainerID
	}

	comment := &domain.Comment{
		ID:        newID(),
		BugID:     bug.ID,
		UserID:    author.ID,
		UserName:  author.Name,
		UserRole:  role,
		Text:      text,
		CreatedAt: now,
	}

	bug.Comments = append(bug.Comments, *comment)
	bug.UpdatedAt = now

	var outcome Outcome
	if recipient != "" && recipient != author.ID {
		outcome.Notifications = append(outcome.Notifications,
			notify(recipient, domain.NotificationComment, "New comment",
				fmt.Sprintf("%s commented on %q", author.Name, bug.Title),
				bug.ID, domain.RelatedBug, now))
	}

	return comment, outcome, nil
}

// AwardBadges adds every newly earned achievement to the user's badge set and
// returns them together with one badge_earned notification each.
func AwardBadges(user *domain.User, totalXP int, achievements []domain.Achievement, events []domain.BadgeEvent, now time.Time) ([]domain.Achievement, Outcome) {
	earned := scoring.EarnedBadges(totalXP, user.Badges, achievements, events)

	var outcome Outcome
	for _, a := range earned {
		user.Badges = append(user.Badges, a.ID)
		outcome.Notifications = append(outcome.Notifications,
			notify(user.ID, domain.NotificationBadgeEarned, "Badge earned",
				fmt.Sprintf("You earned the %q badge", a.Name),
				a.ID, domain.RelatedBadge, now))
	}

	return earned, outcome
}

func notify(userID string, typ domain.NotificationType, title, message, relatedID string, relatedType domain.RelatedType, now time.Time) domain.Notification {
	return domain.Notification{
		ID:          newID(),
		UserID:      userID,
		Type:        typ,
		Title:       title,
		Message:     message,
		Read:        false,
		RelatedID:   relatedID,
		RelatedType: relatedType,
		CreatedAt:   now,
	}
}

func validateSubmit(in SubmitInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return &apperrors.FieldError{Field: "title", Message: "must not be empty"}
	}

	if strings.TrimSpace(in.Description) == "" {
		return &apperrors.FieldError{Field: "description", Message: "must not be empty"}
	}

	if !in.Category.Valid() {
		return &apperrors.FieldError{Field: "category", Message: fmt.Sprintf("has unknown value '%s'", in.Category)}
	}

	if !in.Severity.Valid() {
		return &apperrors.FieldError{Field: "severity", Message: fmt.Sprintf("has unknown value '%s'", in.Severity)}
	}

	return nil
}
