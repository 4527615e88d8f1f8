package domain

import (
	"fmt"

	"github.com/YusovID/bughunt-service/internal/apperrors"
)

type Role string

const (
	RoleTester     Role = "tester"
	RoleMaintainer Role = "maintainer"
	RoleAdmin      Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleTester, RoleMaintainer, RoleAdmin:
		return true
	}

	return false
}

type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "Active"
	ProjectStatusPaused    ProjectStatus = "Paused"
	ProjectStatusCompleted ProjectStatus = "Completed"
)

var ProjectStatuses = []ProjectStatus{ProjectStatusActive, ProjectStatusPaused, ProjectStatusCompleted}

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusActive, ProjectStatusPaused, ProjectStatusCompleted:
		return true
	}

	return false
}

type Category string

const (
	CategoryUI            Category = "UI"
	CategoryFunctionality Category = "Functionality"
	CategoryPerformance   Category = "Performance"
	CategorySecurity      Category = "Security"
)

var Categories = []Category{CategoryUI, CategoryFunctionality, CategoryPerformance, CategorySecurity}

func (c Category) Valid() bool {
	switch c {
	case CategoryUI, CategoryFunctionality, CategoryPerformance, CategorySecurity:
		return true
	}

	return false
}

type Severity string

const (
	SeverityLow      Severity = "Low"
	SeverityMedium   Severity = "Medium"
	SeverityHigh     Severity = "High"
	SeverityCritical Severity = "Critical"
)

var Severities = []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}

func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}

	return false
}

type BugStatus string

const (
	BugStatusPending  BugStatus = "Pending"
	BugStatusApproved BugStatus = "Approved"
	BugStatusRejected BugStatus = "Rejected"
	BugStatusResolved BugStatus = "Resolved"
)

var BugStatuses = []BugStatus{BugStatusPending, BugStatusApproved, BugStatusRejected, BugStatusResolved}

func (s BugStatus) Valid() bool {
	switch s {
	case BugStatusPending, BugStatusApproved, BugStatusRejected, BugStatusResolved:
		return true
	}

	return false
}

// Terminal reports whether no further status transition is accepted.
func (s BugStatus) Terminal() bool {
	return s == BugStatusRejected || s == BugStatusResolved
}

// Counted reports whether a bug in this status contributes XP.
func (s BugStatus) Counted() bool {
	return s == BugStatusApproved || s == BugStatusResolved
}

type NotificationType string

const (
	NotificationBugApproved NotificationType = "bug_approved"
	NotificationBugRejected NotificationType = "bug_rejected"
	NotificationComment     NotificationType = "comment"
	NotificationBadgeEarned NotificationType = "badge_earned"
	NotificationNewBug      NotificationType = "new_bug"
)

type RelatedType string

const (
	RelatedBug     RelatedType = "bug"
	RelatedProject RelatedType = "project"
	RelatedBadge   RelatedType = "badge"
)

// BadgeEvent triggers achievements that are not XP-threshold based.
type BadgeEvent string

const (
	BadgeEventNone             BadgeEvent = ""
	BadgeEventBugSubmitted     BadgeEvent = "bug_submitted"
	BadgeEventCriticalApproved BadgeEvent = "critical_approved"
)

func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", invalidEnum("role", s)
	}

	return r, nil
}

func ParseProjectStatus(s string) (ProjectStatus, error) {
	st := ProjectStatus(s)
	if !st.Valid() {
		return "", invalidEnum("status", s)
	}

	return st, nil
}

func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", invalidEnum("category", s)
	}

	return c, nil
}

func ParseSeverity(s string) (Severity, error) {
	sev := Severity(s)
	if !sev.Valid() {
		return "", invalidEnum("severity", s)
	}

	return sev, nil
}

func ParseBugStatus(s string) (BugStatus, error) {
	st := BugStatus(s)
	if !st.Valid() {
		return "", invalidEnum("status", s)
	}

	return st, nil
}

func invalidEnum(field, value string) error {
	return &apperrors.FieldError{Field: field, Message: fmt.Sprintf("has unknown value '%s'", value)}
}
