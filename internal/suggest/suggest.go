// Package suggest proposes the closest known name for a mistyped identifier.
package suggest

import "github.com/agnivade/levenshtein"

// Closest returns the candidate nearest to name by edit distance, if it is
// within maxDistance. An exact match is not a suggestion. Ties go to the
// earliest candidate.
func Closest(name string, candidates []string, maxDistance int) (string, bool) {
	best, bestDist, found := "", maxDistance+1, false
	for _, c := range candidates {
		if c == name {
			return "", false
		}
		if d := levenshtein.ComputeDistance(name, c); d < bestDist {
			best, bestDist, found = c, d, true
		}
	}
	return best, found
}

// DefaultDistance is the threshold used by the CLI and HTTP API: roughly a
// third of the name, at least 1 and at most 3 edits.
func DefaultDistance(name string) int {
	d := len(name) / 3
	if d < 1 {
		d = 1
	}
	if d > 3 {
		d = 3
	}
	return d
}
