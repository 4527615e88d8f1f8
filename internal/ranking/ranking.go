package ranking

import (
	"sort"

	"github.com/YusovID/bughunt-service/internal/domain"
)

// Rank orders testers by total XP, then by approved/resolved bug count, then by user id,
// and assigns contiguous 1-based ranks. Equal keys never share a rank.
func Rank(standings []domain.TesterStanding) []domain.LeaderboardEntry {
	sorted := make([]domain.TesterStanding, len(standings))
	copy(sorted, standings)

	sort.Slice(sorted, func(i, j int) bool {
		return less(sorted[i], sorted[j])
	})

	entries := make([]domain.LeaderboardEntry, len(sorted))
	for i, s := range sorted {
		entries[i] = domain.LeaderboardEntry{
			Rank:      i + 1,
			UserID:    s.UserID,
			Name:      s.Name,
			TotalXP:   s.TotalXP,
			BugsFound: s.ApprovedCount,
		}
	}

	return entries
}

func less(a, b domain.TesterStanding) bool {
	if a.TotalXP != b.TotalXP {
		return a.TotalXP > b.TotalXP
	}

	if a.ApprovedCount != b.ApprovedCount {
		return a.ApprovedCount > b.ApprovedCount
	}

	return a.UserID < b.UserID
}
