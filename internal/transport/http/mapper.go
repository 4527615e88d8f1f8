package http

import (
	"github.com/YusovID/bughunt-service/internal/analytics"
	"github.com/YusovID/bughunt-service/internal/domain"
	"github.com/YusovID/bughunt-service/pkg/api"
)

func toAPIUser(u *domain.User) api.User {
	badges := u.Badges
	if badges == nil {
		badges = []string{}
	}

	return api.User{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Role:     string(u.Role),
		JoinedAt: u.JoinedAt,
		TotalXP:  u.TotalXP,
		Badges:   badges,
	}
}

func toAPIProject(p *domain.Project) api.Project {
	return api.Project{
		ID:                p.ID,
		MaintainerID:      p.MaintainerID,
		Name:              p.Name,
		Description:       p.Description,
		Status:            string(p.Status),
		ParticipantCount:  p.ParticipantCount,
		BugsFoundCount:    p.BugsFoundCount,
		BugsResolvedCount: p.BugsResolvedCount,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func toAPIProjects(projects []domain.Project) []api.Project {
	out := make([]api.Project, len(projects))
	for i := range projects {
		out[i] = toAPIProject(&projects[i])
	}

	return out
}

func toAPIComment(c *domain.Comment) api.Comment {
	return api.Comment{
		ID:        c.ID,
		BugID:     c.BugID,
		UserID:    c.UserID,
		UserName:  c.UserName,
		UserRole:  string(c.UserRole),
		Comment:   c.Text,
		CreatedAt: c.CreatedAt,
	}
}

func toAPIBug(b *domain.BugReport) api.BugReport {
	comments := make([]api.Comment, len(b.Comments))
	for i := range b.Comments {
		comments[i] = toAPIComment(&b.Comments[i])
	}

	attachments := b.Attachments
	if attachments == nil {
		attachments = []string{}
	}

	return api.BugReport{
		ID:               b.ID,
		ProjectID:        b.ProjectID,
		TesterID:         b.TesterID,
		Title:            b.Title,
		Description:      b.Description,
		StepsToReproduce: b.StepsToReproduce,
		ExpectedBehavior: b.ExpectedBehavior,
		ActualBehavior:   b.ActualBehavior,
		Attachments:      attachments,
		Category:         string(b.Category),
		Severity:         string(b.Severity),
		Status:           string(b.Status),
		XPAwarded:        b.XPAwarded,
		RejectionReason:  b.RejectionReason,
		Comments:         comments,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}

func toAPIBugs(bugs []domain.BugReport) []api.BugReport {
	out := make([]api.BugReport, len(bugs))
	for i := range bugs {
		out[i] = toAPIBug(&bugs[i])
	}

	return out
}

func toAPINotification(n *domain.Notification) api.Notification {
	return api.Notification{
		ID:          n.ID,
		UserID:      n.UserID,
		Type:        string(n.Type),
		Title:       n.Title,
		Message:     n.Message,
		Read:        n.Read,
		RelatedID:   n.RelatedID,
		RelatedType: string(n.RelatedType),
		CreatedAt:   n.CreatedAt,
	}
}

func toAPINotifications(notifications []domain.Notification) []api.Notification {
	out := make([]api.Notification, len(notifications))
	for i := range notifications {
		out[i] = toAPINotification(&notifications[i])
	}

	return out
}

func toAPIAchievements(achievements []domain.Achievement) []api.Achievement {
	out := make([]api.Achievement, len(achievements))
	for i, a := range achievements {
		out[i] = api.Achievement{
			ID:          a.ID,
			Name:        a.Name,
			Description: a.Description,
			Category:    a.Category,
			XPRequired:  a.XPRequired,
			Level:       a.Level,
		}
	}

	return out
}

func toAPILeaderboard(entries []domain.LeaderboardEntry) []api.LeaderboardEntry {
	out := make([]api.LeaderboardEntry, len(entries))
	for i, e := range entries {
		out[i] = api.LeaderboardEntry{
			Rank:      e.Rank,
			UserID:    e.UserID,
			Name:      e.Name,
			TotalXP:   e.TotalXP,
			BugsFound: e.BugsFound,
		}
	}

	return out
}

func toAPIAnalytics(a *analytics.UserAnalytics) api.UserAnalytics {
	out := api.UserAnalytics{
		UserID: a.UserID,
		Role:   string(a.Role),
	}

	if t := a.Tester; t != nil {
		out.Tester = &api.TesterAnalytics{
			TotalBugs:      t.TotalBugs,
			TotalXP:        t.TotalXP,
			SuccessRate:    t.SuccessRate,
			ByStatus:       stringKeys(t.ByStatus),
			BySeverity:     stringKeys(t.BySeverity),
			ByCategory:     stringKeys(t.ByCategory),
			RecentActivity: toAPIBugs(t.RecentActivity),
		}
	}

	if m := a.Maintainer; m != nil {
		projects := make([]api.ProjectBreakdown, len(m.Projects))
		for i, p := range m.Projects {
			projects[i] = api.ProjectBreakdown{
				ProjectID:    p.ProjectID,
				Name:         p.Name,
				Status:       string(p.Status),
				BugsFound:    p.BugsFound,
				BugsResolved: p.BugsResolved,
			}
		}

		out.Maintainer = &api.MaintainerAnalytics{
			TotalProjects:    m.TotalProjects,
			TotalBugs:        m.TotalBugs,
			ProjectsByStatus: stringKeys(m.ProjectsByStatus),
			BugsByStatus:     stringKeys(m.BugsByStatus),
			Projects:         projects,
		}
	}

	return out
}

func stringKeys[K ~string](m map[K]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[string(k)] = v
	}

	return out
}
