package analytics

import (
	"fmt"
	"testing"
	"time"

	"github.com/YusovID/bughunt-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForTester_ZeroData(t *testing.T) {
	summary := ForTester(nil)

	assert.Zero(t, summary.TotalBugs)
	assert.Zero(t, summary.TotalXP)
	assert.Zero(t, summary.SuccessRate)
	assert.Empty(t, summary.RecentActivity)

	require.Len(t, summary.ByStatus, 4)
	for _, n := range summary.ByStatus {
		assert.Zero(t, n)
	}

	require.Len(t, summary.BySeverity, 4)
	require.Len(t, summary.ByCategory, 4)
	assert.Zero(t, summary.BySeverity[domain.SeverityCritical])
	assert.Zero(t, summary.ByCategory[domain.CategorySecurity])
}

func TestForTester_Counts(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	bugs := []domain.BugReport{
		{ID: "b1", Status: domain.BugStatusApproved, Severity: domain.SeverityHigh, Category: domain.CategoryUI, XPAwarded: 50, CreatedAt: base},
		{ID: "b2", Status: domain.BugStatusResolved, Severity: domain.SeverityCritical, Category: domain.CategorySecurity, XPAwarded: 100, CreatedAt: base.Add(time.Hour)},
		{ID: "b3", Status: domain.BugStatusRejected, Severity: domain.SeverityLow, Category: domain.CategoryUI, CreatedAt: base.Add(2 * time.Hour)},
		{ID: "b4", Status: domain.BugStatusPending, Severity: domain.SeverityHigh, Category: domain.CategoryPerformance, CreatedAt: base.Add(3 * time.Hour)},
	}

	summary := ForTester(bugs)

	assert.Equal(t, 4, summary.TotalBugs)
	assert.Equal(t, 150, summary.TotalXP)
	assert.Equal(t, 50, summary.SuccessRate)
	assert.Equal(t, 1, summary.ByStatus[domain.BugStatusPending])
	assert.Equal(t, 1, summary.ByStatus[domain.BugStatusApproved])
	assert.Equal(t, 1, summary.ByStatus[domain.BugStatusRejected])
	assert.Equal(t, 1, summary.ByStatus[domain.BugStatusResolved])
	assert.Equal(t, 2, summary.BySeverity[domain.SeverityHigh])
	assert.Equal(t, 0, summary.BySeverity[domain.SeverityMedium])
	assert.Equal(t, 2, summary.ByCategory[domain.CategoryUI])
	assert.Equal(t, 0, summary.ByCategory[domain.CategoryFunctionality])
	assert.Equal(t, "b4", summary.RecentActivity[0].ID)
}

func TestRecentActivity_SortsExplicitlyAndTruncates(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	// insertion order deliberately shuffled
	order := []int{3, 0, 6, 1, 5, 2, 4}
	bugs := make([]domain.BugReport, 0, len(order))
	for _, i := range order {
		bugs = append(bugs, domain.BugReport{
			ID:        fmt.Sprintf("b%d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}

	recent := RecentActivity(bugs, RecentActivityLimit)

	require.Len(t, recent, 5)
	assert.Equal(t, []string{"b6", "b5", "b4", "b3", "b2"}, []string{recent[0].ID, recent[1].ID, recent[2].ID, recent[3].ID, recent[4].ID})
	assert.Equal(t, "b3", bugs[0].ID, "input must not be reordered")
}

func TestForMaintainer(t *testing.T) {
	projects := []domain.Project{
		{ID: "p1", Name: "Web", Status: domain.ProjectStatusActive},
		{ID: "p2", Name: "Mobile", Status: domain.ProjectStatusPaused},
	}
	bugs := []domain.BugReport{
		{ProjectID: "p1", Status: domain.BugStatusResolved},
		{ProjectID: "p1", Status: domain.BugStatusApproved},
		{ProjectID: "p1", Status: domain.BugStatusPending},
		{ProjectID: "p2", Status: domain.BugStatusRejected},
		{ProjectID: "foreign", Status: domain.BugStatusPending},
	}

	summary := ForMaintainer(projects, bugs)

	assert.Equal(t, 2, summary.TotalProjects)
	assert.Equal(t, 4, summary.TotalBugs)
	assert.Equal(t, 1, summary.ProjectsByStatus[domain.ProjectStatusActive])
	assert.Equal(t, 1, summary.ProjectsByStatus[domain.ProjectStatusPaused])
	assert.Equal(t, 0, summary.ProjectsByStatus[domain.ProjectStatusCompleted])
	assert.Equal(t, 1, summary.BugsByStatus[domain.BugStatusPending])
	assert.Equal(t, 1, summary.BugsByStatus[domain.BugStatusRejected])

	require.Len(t, summary.Projects, 2)
	assert.Equal(t, ProjectBreakdown{ProjectID: "p1", Name: "Web", Status: domain.ProjectStatusActive, BugsFound: 3, BugsResolved: 1}, summary.Projects[0])
	assert.Equal(t, ProjectBreakdown{ProjectID: "p2", Name: "Mobile", Status: domain.ProjectStatusPaused, BugsFound: 1}, summary.Projects[1])
}

func TestForMaintainer_ZeroData(t *testing.T) {
	summary := ForMaintainer(nil, nil)

	assert.Zero(t, summary.TotalProjects)
	assert.Zero(t, summary.TotalBugs)
	assert.Len(t, summary.ProjectsByStatus, 3)
	assert.Len(t, summary.BugsByStatus, 4)
	assert.NotNil(t, summary.Projects)
	assert.Empty(t, summary.Projects)
}
