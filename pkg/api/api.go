// Package api contains the JSON wire types of the bughunt HTTP API.
// They mirror swagger/swagger-ui/openapi.yaml.
package api

import "time"

type ErrorCode string

const (
	CodeInvalidRequest    ErrorCode = "INVALID_REQUEST"
	CodeValidation        ErrorCode = "VALIDATION_FAILED"
	CodeNotFound          ErrorCode = "NOT_FOUND"
	CodeForbidden         ErrorCode = "FORBIDDEN"
	CodeInvalidTransition ErrorCode = "INVALID_TRANSITION"
	CodeAlreadyExists     ErrorCode = "ALREADY_EXISTS"
	CodeUnauthenticated   ErrorCode = "UNAUTHENTICATED"
	CodeInternal          ErrorCode = "INTERNAL"
)

type ErrorBody struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

type User struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
	TotalXP  int       `json:"total_xp"`
	Badges   []string  `json:"badges"`
}

type UserStats struct {
	UserID      string `json:"user_id"`
	TotalXP     int    `json:"total_xp"`
	SuccessRate int    `json:"success_rate"`
}

type Project struct {
	ID                string    `json:"id"`
	MaintainerID      string    `json:"maintainer_id"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	Status            string    `json:"status"`
	ParticipantCount  int       `json:"participant_count"`
	BugsFoundCount    int       `json:"bugs_found_count"`
	BugsResolvedCount int       `json:"bugs_resolved_count"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type Comment struct {
	ID        string    `json:"id"`
	BugID     string    `json:"bug_id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	UserRole  string    `json:"user_role"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

type BugReport struct {
	ID               string    `json:"id"`
	ProjectID        string    `json:"project_id"`
	TesterID         string    `json:"tester_id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	StepsToReproduce string    `json:"steps_to_reproduce"`
	ExpectedBehavior string    `json:"expected_behavior"`
	ActualBehavior   string    `json:"actual_behavior"`
	Attachments      []string  `json:"attachments"`
	Category         string    `json:"category"`
	Severity         string    `json:"severity"`
	Status           string    `json:"status"`
	XPAwarded        int       `json:"xp_awarded"`
	RejectionReason  *string   `json:"rejection_reason,omitempty"`
	Comments         []Comment `json:"comments"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type Notification struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	Read        bool      `json:"read"`
	RelatedID   string    `json:"related_id"`
	RelatedType string    `json:"related_type"`
	CreatedAt   time.Time `json:"created_at"`
}

type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	XPRequired  int    `json:"xp_required"`
	Level       int    `json:"level"`
}

type LeaderboardEntry struct {
	Rank      int    `json:"rank"`
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	TotalXP   int    `json:"total_xp"`
	BugsFound int    `json:"bugs_found"`
}

type TesterAnalytics struct {
	TotalBugs      int            `json:"total_bugs"`
	TotalXP        int            `json:"total_xp"`
	SuccessRate    int            `json:"success_rate"`
	ByStatus       map[string]int `json:"by_status"`
	BySeverity     map[string]int `json:"by_severity"`
	ByCategory     map[string]int `json:"by_category"`
	RecentActivity []BugReport    `json:"recent_activity"`
}

type ProjectBreakdown struct {
	ProjectID    string `json:"project_id"`
	Name         string `json:"name"`
	Status       string `json:"status"`
	BugsFound    int    `json:"bugs_found"`
	BugsResolved int    `json:"bugs_resolved"`
}

type MaintainerAnalytics struct {
	TotalProjects    int                `json:"total_projects"`
	TotalBugs        int                `json:"total_bugs"`
	ProjectsByStatus map[string]int     `json:"projects_by_status"`
	BugsByStatus     map[string]int     `json:"bugs_by_status"`
	Projects         []ProjectBreakdown `json:"projects"`
}

type UserAnalytics struct {
	UserID     string               `json:"user_id"`
	Role       string               `json:"role"`
	Tester     *TesterAnalytics     `json:"tester,omitempty"`
	Maintainer *MaintainerAnalytics `json:"maintainer,omitempty"`
}
