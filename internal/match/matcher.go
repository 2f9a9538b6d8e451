// Package match maps parsed note fields onto an arbitrary flashcard
// schema. Schemas are user-defined in Anki, so field names and counts
// are only known at export time; matching is by name similarity with a
// fixed scoring policy.
package match

import (
	"regexp"
	"strings"
)

// Match scores as assigned by the scoring policy.
const (
	scoreExact     = 100
	scoreAlias     = 90
	scoreSubstring = 50
)

// aliases maps well-known target field names to the source field they
// stand for. Only consulted when no exact match exists.
var aliases = map[string]string{
	"front": "word",
	"back":  "definition",
}

// Match assigns source field values to target schema fields. Targets
// without a plausible source are omitted from the result. Comparison is
// case-insensitive; ties go to the earlier source field in sourceOrder.
//
// sourceOrder fixes the iteration order over sources so results are
// deterministic; names absent from sources are skipped.
func Match(sources map[string]string, sourceOrder, targets []string) map[string]string {
	result := make(map[string]string)

	for _, target := range targets {
		if best, ok := bestSource(target, sources, sourceOrder); ok {
			result[target] = sources[best]
		}
	}

	return result
}

// bestSource finds the highest-scoring source field for one target.
func bestSource(target string, sources map[string]string, sourceOrder []string) (string, bool) {
	lowerTarget := strings.ToLower(target)

	var best string
	bestScore := 0

	for _, source := range sourceOrder {
		if sources[source] == "" {
			// Empty fields never map; targets stay absent rather than
			// padded with empty strings.
			continue
		}
		lowerSource := strings.ToLower(source)

		if lowerTarget == lowerSource {
			// Exact match beats everything; stop looking.
			return source, true
		}

		if aliases[lowerTarget] == lowerSource && bestScore < scoreAlias {
			best = source
			bestScore = scoreAlias
			continue
		}

		if bestScore < scoreSubstring && substringMatch(lowerTarget, lowerSource) {
			best = source
			bestScore = scoreSubstring
		}
	}

	return best, bestScore > 0
}

// substringMatch reports whether the shorter of the two names appears
// as a whole word inside the longer one. The whole-word requirement is
// what keeps a field named "word" from absorbing "wordfamily". Names of
// up to 3 characters never match; equal lengths never match (an exact
// match would already have fired).
func substringMatch(a, b string) bool {
	shorter, longer := a, b
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	if len(shorter) == len(longer) || len(shorter) <= 3 {
		return false
	}
	if !strings.Contains(longer, shorter) {
		return false
	}

	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(shorter) + `\b`)
	return re.MatchString(longer)
}
