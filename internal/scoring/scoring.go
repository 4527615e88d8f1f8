// Package scoring translates bug severity into experience points and
// aggregates a tester's XP, success rate and badge eligibility.
// Every function here is pure; callers supply the bug reports they read.
package scoring

import (
	"math"
	"sort"

	"github.com/YusovID/bughunt-service/internal/domain"
)

const defaultXP = 30

var xpTable = map[domain.Severity]int{
	domain.SeverityLow:      10,
	domain.SeverityMedium:   30,
	domain.SeverityHigh:     50,
	domain.SeverityCritical: 100,
}

// XPFor returns the XP awarded for an approved bug of the given severity.
// Unknown severities are scored at the Medium rate.
func XPFor(severity domain.Severity) int {
	if xp, ok := xpTable[severity]; ok {
		return xp
	}

	return defaultXP
}

// TotalXP sums xpAwarded over the approved and resolved reports.
func TotalXP(bugs []domain.BugReport) int {
	total := 0

	for _, b := range bugs {
		if b.Status.Counted() {
			total += b.XPAwarded
		}
	}

	return total
}

// CountedBugs returns the number of approved and resolved reports.
func CountedBugs(bugs []domain.BugReport) int {
	n := 0

	for _, b := range bugs {
		if b.Status.Counted() {
			n++
		}
	}

	return n
}

// SuccessRate is approvedOrResolved/submitted as a rounded percentage, 0 when nothing was submitted.
func SuccessRate(approvedOrResolved, submitted int) int {
	if submitted <= 0 {
		return 0
	}

	rate := int(math.Round(float64(approvedOrResolved) / float64(submitted) * 100))

	return min(max(rate, 0), 100)
}

// EarnedBadges returns the achievements newly unlocked by totalXP or by one of events,
// skipping those already held. The result is ordered by level, then id.
func EarnedBadges(totalXP int, held []string, achievements []domain.Achievement, events []domain.BadgeEvent) []domain.Achievement {
	heldSet := make(map[string]struct{}, len(held))
	for _, id := range held {
		heldSet[id] = struct{}{}
	}

	fired := make(map[domain.BadgeEvent]struct{}, len(events))
	for _, e := range events {
		fired[e] = struct{}{}
	}

	var earned []domain.Achievement

	for _, a := range achievements {
		if _, ok := heldSet[a.ID]; ok {
			continue
		}

		if a.XPRequired > 0 {
			if totalXP >= a.XPRequired {
				earned = append(earned, a)
			}

			continue
		}

		if a.Trigger == domain.BadgeEventNone {
			continue
		}

		if _, ok := fired[a.Trigger]; ok {
			earned = append(earned, a)
		}
	}

	sort.Slice(earned, func(i, j int) bool {
		if earned[i].Level != earned[j].Level {
			return earned[i].Level < earned[j].Level
		}

		return earned[i].ID < earned[j].ID
	})

	return earned
}
