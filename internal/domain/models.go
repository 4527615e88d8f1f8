package domain

import (
	"time"
)

type User struct {
	ID       string    `db:"id"`
	Name     string    `db:"name"`
	Email    string    `db:"email"`
	Role     Role      `db:"role"`
	JoinedAt time.Time `db:"joined_at"`
	// TotalXP is derived from the user's approved and resolved bug reports on every read.
	TotalXP int `db:"total_xp"`
	Badges  []string
}

// Actor is the authenticated caller as supplied by the identity layer.
type Actor struct {
	UserID string
	Role   Role
}

type Project struct {
	ID                string        `db:"id"`
	MaintainerID      string        `db:"maintainer_id"`
	Name              string        `db:"name"`
	Description       string        `db:"description"`
	Status            ProjectStatus `db:"status"`
	ParticipantCount  int           `db:"participant_count"`
	BugsFoundCount    int           `db:"bugs_found_count"`
	BugsResolvedCount int           `db:"bugs_resolved_count"`
	CreatedAt         time.Time     `db:"created_at"`
	UpdatedAt         time.Time     `db:"updated_at"`
}

type BugReport struct {
	ID               string
	ProjectID        string
	TesterID         string
	Title            string
	Description      string
	StepsToReproduce string
	ExpectedBehavior string
	ActualBehavior   string
	Attachments      []string
	Category         Category
	Severity         Severity
	Status           BugStatus
	XPAwarded        int
	// RejectionReason is set iff Status is BugStatusRejected.
	RejectionReason *string
	Comments        []Comment
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Comment struct {
	ID        string    `db:"id"`
	BugID     string    `db:"bug_id"`
	UserID    string    `db:"user_id"`
	UserName  string    `db:"user_name"`
	UserRole  Role      `db:"user_role"`
	Text      string    `db:"comment"`
	CreatedAt time.Time `db:"created_at"`
}

type Notification struct {
	ID           string           `db:"id"`
	UserID       string           `db:"user_id"`
	Type         NotificationType `db:"type"`
	Title        string           `db:"title"`
	Message      string           `db:"message"`
	Read         bool             `db:"read"`
	RelatedID    string           `db:"related_id"`
	RelatedType  RelatedType      `db:"related_type"`
	CreatedAt    time.Time        `db:"created_at"`
	DispatchedAt *time.Time       `db:"dispatched_at"`
}

// Achievement is a badge definition. XPRequired == 0 means the badge is awarded
// on Trigger instead of an XP threshold.
type Achievement struct {
	ID          string     `db:"id"`
	Name        string     `db:"name"`
	Description string     `db:"description"`
	Category    string     `db:"category"`
	XPRequired  int        `db:"xp_required"`
	Level       int        `db:"level"`
	Trigger     BadgeEvent `db:"trigger_event"`
}

// TesterStanding is the raw input of the leaderboard ranking.
type TesterStanding struct {
	UserID        string `db:"user_id"`
	Name          string `db:"name"`
	TotalXP       int    `db:"total_xp"`
	ApprovedCount int    `db:"approved_count"`
}

type LeaderboardEntry struct {
	Rank      int
	UserID    string
	Name      string
	TotalXP   int
	BugsFound int
}

type BugFilter struct {
	ProjectID *string
	TesterID  *string
	Status    *BugStatus
	Severity  *Severity
}

type ProjectFilter struct {
	MaintainerID *string
	Status       *ProjectStatus
}
