package intent

import (
	"math"
	"sort"
	"strings"
)

// DefaultCutoff is the minimum token-set similarity score (0..100) a playlist
// label must reach to be accepted as a match. The value is a product policy
// constant tuned against real push-to-talk transcripts; do not adjust it
// without evidence that it misbehaves.
const DefaultCutoff = 78

// Match is a successful fuzzy-match result: the original (un-normalized)
// label and its similarity score in [0, 100].
type Match struct {
	Label string
	Score int
}

// BestMatch finds the label most similar to query using token-set similarity
// over normalized forms. It returns false when labels is empty or the best
// score is strictly below cutoff.
//
// labels is an ordered sequence, not a set: when several labels share the
// maximum score, the first one encountered wins. Callers that need a
// deterministic tie-break must pass labels in a stable order (the config
// loader preserves file order for exactly this reason).
func BestMatch(query string, labels []string, cutoff int) (Match, bool) {
	if len(labels) == 0 {
		return Match{}, false
	}
	q := Normalize(query)

	best := Match{Score: -1}
	for _, label := range labels {
		if score := TokenSetRatio(q, Normalize(label)); score > best.Score {
			best = Match{Label: label, Score: score}
		}
	}
	if best.Score < cutoff {
		return Match{}, false
	}
	return best, true
}

// TokenSetRatio computes an order-insensitive similarity score in [0, 100]
// between two phrases. Both phrases are split into sorted, de-duplicated word
// sets; shared words are rewarded regardless of their position in the phrase
// and the score is penalized by length difference.
//
// The decomposition follows the classic token-set construction: with I the
// sorted intersection and Da/Db the sorted per-side differences, the score is
// the best pairwise edit ratio among (I, I+Da), (I, I+Db) and (I+Da, I+Db).
// Two phrases whose word sets are equal therefore score 100 even when word
// order and repetition differ.
func TokenSetRatio(a, b string) int {
	ta := tokenSet(a)
	tb := tokenSet(b)

	inter, diffA, diffB := partitionTokens(ta, tb)

	base := strings.Join(inter, " ")
	joinedA := joinTokens(inter, diffA)
	joinedB := joinTokens(inter, diffB)

	score := editRatio(joinedA, joinedB)
	if base != "" {
		if r := editRatio(base, joinedA); r > score {
			score = r
		}
		if r := editRatio(base, joinedB); r > score {
			score = r
		}
	}
	return score
}

// tokenSet returns the sorted, de-duplicated words of s.
func tokenSet(s string) []string {
	fields := strings.Fields(s)
	seen := make(map[string]struct{}, len(fields))
	tokens := fields[:0]
	for _, f := range fields {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		tokens = append(tokens, f)
	}
	sort.Strings(tokens)
	return tokens
}

// partitionTokens splits two sorted token sets into their intersection and
// the tokens unique to each side. All three results stay sorted.
func partitionTokens(a, b []string) (inter, onlyA, onlyB []string) {
	inB := make(map[string]struct{}, len(b))
	for _, t := range b {
		inB[t] = struct{}{}
	}
	inInter := make(map[string]struct{})
	for _, t := range a {
		if _, ok := inB[t]; ok {
			inter = append(inter, t)
			inInter[t] = struct{}{}
		} else {
			onlyA = append(onlyA, t)
		}
	}
	for _, t := range b {
		if _, ok := inInter[t]; !ok {
			onlyB = append(onlyB, t)
		}
	}
	return inter, onlyA, onlyB
}

// joinTokens concatenates the intersection and one difference side into a
// single comparable phrase, skipping empty parts.
func joinTokens(inter, diff []string) string {
	switch {
	case len(inter) == 0:
		return strings.Join(diff, " ")
	case len(diff) == 0:
		return strings.Join(inter, " ")
	default:
		return strings.Join(inter, " ") + " " + strings.Join(diff, " ")
	}
}

// editRatio converts indel edit distance into a similarity score in [0, 100],
// normalized by the combined length of both strings. Indel distance allows
// only insertions and deletions, so replacing a character costs 2; a
// substitution-cost-1 distance would inflate scores near the acceptance
// cutoff. Two empty strings are defined to be identical (score 100).
func editRatio(a, b string) int {
	total := len(a) + len(b)
	if total == 0 {
		return 100
	}
	dist := total - 2*lcsLength(a, b)
	return int(math.Round(100 * float64(total-dist) / float64(total)))
}

// lcsLength returns the length of the longest common subsequence of a and b.
// Inputs are normalized ASCII, so bytes are characters. Two-row dynamic
// programming, O(len(a)·len(b)) time, O(len(b)) space.
func lcsLength(a, b string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 0; i < len(a); i++ {
		for j := 0; j < len(b); j++ {
			switch {
			case a[i] == b[j]:
				cur[j+1] = prev[j] + 1
			case prev[j+1] >= cur[j]:
				cur[j+1] = prev[j+1]
			default:
				cur[j+1] = cur[j]
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}
