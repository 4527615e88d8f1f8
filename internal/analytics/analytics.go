// Package analytics summarizes bug reports and projects for the per-user dashboards.
// The aggregations are pure and tolerate empty input by returning zero-filled counters.
package analytics

import (
	"sort"

	"github.com/YusovID/bughunt-service/internal/domain"
	"github.com/YusovID/bughunt-service/internal/scoring"
)

// RecentActivityLimit is the number of bugs listed in a tester's recent activity.
const RecentActivityLimit = 5

type TesterSummary struct {
	TotalBugs      int
	TotalXP        int
	SuccessRate    int
	ByStatus       map[domain.BugStatus]int
	BySeverity     map[domain.Severity]int
	ByCategory     map[domain.Category]int
	RecentActivity []domain.BugReport
}

type ProjectBreakdown struct {
	ProjectID    string
	Name         string
	Status       domain.ProjectStatus
	BugsFound    int
	BugsResolved int
}

type MaintainerSummary struct {
	TotalProjects    int
	TotalBugs        int
	ProjectsByStatus map[domain.ProjectStatus]int
	BugsByStatus     map[domain.BugStatus]int
	Projects         []ProjectBreakdown
}

// UserAnalytics carries exactly one of Tester or Maintainer, chosen by Role.
type UserAnalytics struct {
	UserID     string
	Role       domain.Role
	Tester     *TesterSummary
	Maintainer *MaintainerSummary
}

func ForTester(bugs []domain.BugReport) TesterSummary {
	summary := TesterSummary{
		TotalBugs:  len(bugs),
		TotalXP:    scoring.TotalXP(bugs),
		ByStatus:   zeroStatuses(),
		BySeverity: make(map[domain.Severity]int, len(domain.Severities)),
		ByCategory: make(map[domain.Category]int, len(domain.Categories)),
	}

	for _, s := range domain.Severities {
		summary.BySeverity[s] = 0
	}

	for _, c := range domain.Categories {
		summary.ByCategory[c] = 0
	}

	for _, b := range bugs {
		summary.ByStatus[b.Status]++
		summary.BySeverity[b.Severity]++
		summary.ByCategory[b.Category]++
	}

	summary.SuccessRate = scoring.SuccessRate(scoring.CountedBugs(bugs), len(bugs))
	summary.RecentActivity = RecentActivity(bugs, RecentActivityLimit)

	return summary
}

// RecentActivity returns up to limit bugs, newest first. Ties on creation time fall back to id, descending.
func RecentActivity(bugs []domain.BugReport, limit int) []domain.BugReport {
	sorted := make([]domain.BugReport, len(bugs))
	copy(sorted, bugs)

	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		}

		return sorted[i].ID > sorted[j].ID
	})

	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	return sorted
}

// ForMaintainer aggregates over projects and the bugs filed against them.
// Bugs whose project is not in projects are ignored.
func ForMaintainer(projects []domain.Project, bugs []domain.BugReport) MaintainerSummary {
	summary := MaintainerSummary{
		TotalProjects:    len(projects),
		ProjectsByStatus: make(map[domain.ProjectStatus]int, len(domain.ProjectStatuses)),
		BugsByStatus:     zeroStatuses(),
		Projects:         make([]ProjectBreakdown, 0, len(projects)),
	}

	for _, s := range domain.ProjectStatuses {
		summary.ProjectsByStatus[s] = 0
	}

	index := make(map[string]int, len(projects))

	for _, p := range projects {
		summary.ProjectsByStatus[p.Status]++
		index[p.ID] = len(summary.Projects)
		summary.Projects = append(summary.Projects, ProjectBreakdown{
			ProjectID: p.ID,
			Name:      p.Name,
			Status:    p.Status,
		})
	}

	for _, b := range bugs {
		i, ok := index[b.ProjectID]
		if !ok {
			continue
		}

		summary.TotalBugs++
		summary.BugsByStatus[b.Status]++
		summary.Projects[i].BugsFound++

		if b.Status == domain.BugStatusResolved {
			summary.Projects[i].BugsResolved++
		}
	}

	return summary
}

func zeroStatuses() map[domain.BugStatus]int {
	m := make(map[domain.BugStatus]int, len(domain.BugStatuses))
	for _, s := range domain.BugStatuses {
		m[s] = 0
	}

	return m
}
