package pattern

import (
	"strings"

	"github.com/google/uuid"
)

// PathCluster represents a discovered access-path template.
type PathCluster struct {
	ID      uuid.UUID
	Pattern string
	Count   int
}

// extraDelimiters must match the delimiters used in NewPathMiner's WithExtraDelimiter.
var extraDelimiters = []string{"/", "_", "."}

// tokenize splits a path using the same logic as Drain:
// replace extra delimiters with spaces, then split on spaces.
func tokenize(s string) []string {
	for _, d := range extraDelimiters {
		s = strings.ReplaceAll(s, d, " ")
	}
	return strings.Split(strings.TrimSpace(s), " ")
}

// MatchTemplate finds the best matching cluster for a path by comparing
// tokens against cluster patterns (where "<*>" is a wildcard).
// Returns the matched cluster and true, or zero-value and false if no match.
func MatchTemplate(path string, clusters []PathCluster) (PathCluster, bool) {
	pathTokens := tokenize(path)
	for _, c := range clusters {
		patTokens := tokenize(c.Pattern)
		if matchTokens(pathTokens, patTokens) {
			return c, true
		}
	}
	return PathCluster{}, false
}

func matchTokens(pathTokens, patTokens []string) bool {
	if len(pathTokens) != len(patTokens) {
		return false
	}
	for i, pt := range patTokens {
		if pt == "<*>" {
			continue
		}
		if pt != pathTokens[i] {
			return false
		}
	}
	return true
}
