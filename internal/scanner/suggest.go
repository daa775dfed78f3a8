package scanner

import (
	"github.com/agnivade/levenshtein"
)

// ClosestCategory finds the known category nearest to a stray region tag.
// Candidates further than a third of their length (minimum 1) are not
// considered close enough to suggest.
func ClosestCategory(region string, categories []string) (string, bool) {
	best := ""
	bestDist := -1
	for _, cand := range categories {
		if cand == region {
			continue
		}
		dist := levenshtein.ComputeDistance(region, cand)
		if dist > distanceLimit(len(cand)) {
			continue
		}
		if bestDist == -1 || dist < bestDist || (dist == bestDist && cand < best) {
			best, bestDist = cand, dist
		}
	}
	return best, bestDist != -1
}

func distanceLimit(n int) int {
	if n < 3 {
		return 1
	}
	return n / 3
}
