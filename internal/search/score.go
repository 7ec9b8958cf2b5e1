package search

import (
	"sort"
	"strings"
)

// Scoring bonuses for direct substring containment.
const (
	substringIDBonus   = 85
	substringNameBonus = 80
)

// Weights applied to the three similarity components.
const (
	weightEntityID     = 0.7
	weightFriendlyName = 0.8
	weightDomain       = 0.6
)

// Ratio returns a whole-string similarity measure between 0 and 100.
//
// It is based on the length of the longest common subsequence relative to
// the combined length of both strings (an indel edit-distance similarity):
//
//	ratio = 200 * lcs(a, b) / (len(a) + len(b))
//
// Two empty strings are identical (100).
func Ratio(a, b string) int {
	if len(a) == 0 && len(b) == 0 {
		return 100
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	matched := lcsLength(a, b)
	return 200 * matched / (len(a) + len(b))
}

// lcsLength computes the longest common subsequence length of two strings
// using a rolling single-row dynamic programme (O(len(a)*len(b)) time,
// O(len(b)) space).
func lcsLength(a, b string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

// PartialRatio returns the best Ratio between the shorter string and any
// equally long substring of the longer string (0-100). This handles queries
// that are much shorter than the target.
func PartialRatio(a, b string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	shorter, longer := a, b
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}

	window := len(shorter)
	best := 0
	for start := 0; start+window <= len(longer); start++ {
		score := Ratio(shorter, longer[start:start+window])
		if score > best {
			best = score
		}
		if best == 100 {
			break
		}
	}
	return best
}

// TokenSortRatio returns the Ratio after sorting the whitespace-delimited
// tokens of both strings alphabetically (0-100). This makes the measure
// insensitive to word order ("room living" vs "living room").
func TokenSortRatio(a, b string) int {
	return Ratio(sortTokens(a), sortTokens(b))
}

// sortTokens splits on whitespace, sorts the tokens, and rejoins them.
func sortTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// Score computes the fuzzy match score for one entity against a query.
//
// The score is the sum of:
//   - 85 if the query is a substring of the entity ID
//   - 80 if the query is a substring of the friendly name
//   - the floored weighted similarity:
//     0.7*best(entity_id) + 0.8*best(friendly_name) + 0.6*ratio(domain)
//     where best() is the maximum of Ratio, PartialRatio and TokenSortRatio
//
// The floor is applied once to the summed weighted value. Flooring each term
// before summing under-counts by up to two points and regresses ranking for
// near-threshold entities, so the per-term form must not be used.
//
// All comparisons are case-insensitive. The function is pure.
func Score(query, entityID, friendlyName, domain string) int {
	query = strings.ToLower(strings.TrimSpace(query))
	entityID = strings.ToLower(entityID)
	friendlyName = strings.ToLower(friendlyName)
	domain = strings.ToLower(domain)

	score := 0
	if query != "" && strings.Contains(entityID, query) {
		score += substringIDBonus
	}
	if query != "" && strings.Contains(friendlyName, query) {
		score += substringNameBonus
	}

	idBest := max3(Ratio(query, entityID), PartialRatio(query, entityID), TokenSortRatio(query, entityID))
	nameBest := max3(Ratio(query, friendlyName), PartialRatio(query, friendlyName), TokenSortRatio(query, friendlyName))
	domainRatio := Ratio(query, domain)

	return score + combineWeighted(idBest, nameBest, domainRatio)
}

// combineWeighted sums the weighted similarity components and floors the
// result once. Kept separate from Score so the single-floor property is
// directly testable.
func combineWeighted(idBest, nameBest, domainRatio int) int {
	weighted := weightEntityID*float64(idBest) +
		weightFriendlyName*float64(nameBest) +
		weightDomain*float64(domainRatio)
	return int(weighted)
}

// MatchType classifies how an entity matched a query, from strongest
// (exact ID equality) to weakest (fuzzy only). Used for client feedback;
// it never affects the score.
func MatchType(query, entityID, friendlyName, domain string) string {
	query = strings.ToLower(strings.TrimSpace(query))
	entityID = strings.ToLower(entityID)
	friendlyName = strings.ToLower(friendlyName)
	domain = strings.ToLower(domain)

	switch {
	case query == entityID:
		return MatchExactID
	case query == friendlyName:
		return MatchExactName
	case query == domain:
		return MatchExactDomain
	case query != "" && strings.Contains(entityID, query):
		return MatchPartialID
	case query != "" && strings.Contains(friendlyName, query):
		return MatchPartialName
	default:
		return MatchFuzzy
	}
}

// max3 returns the largest of three ints.
func max3(a, b, c int) int {
	if b > a {
		a = b
	}
	if c > a {
		a = c
	}
	return a
}
