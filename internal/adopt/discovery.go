// Package adopt assigns parents to orphaned branches, either to a fixed
// target, the configured default root, or via a per-orphan heuristic.
package adopt

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/eddieland/twig/internal/gitwire"
)

// Suggestion is one (child, parent, confidence, reason) triple produced by
// the Dependency Discovery heuristic.
type Suggestion struct {
	Child      string
	Parent     string
	Confidence float64
	Reason     string
}

// Discover evaluates every candidate as a possible parent of orphan and
// returns suggestions sorted by descending confidence, then by parent
// name for determinism when scores tie.
//
// Signals, each contributing independently to the score:
//   - merge-base distance: the candidate whose merge-base with orphan is
//     closest to the candidate's own tip scores highest (orphan diverged
//     from it most recently).
//   - branch-name convention: candidate and orphan sharing a "prefix-"
//     token (e.g. both start with "proj-" or the same ticket key) adds a
//     fixed bonus.
//
// No other signal is scored: creation timestamps and commit messages are
// not consulted. A candidate whose ahead/behind count cannot be computed
// is left out of the result.
func Discover(ctx context.Context, g *gitwire.Git, orphan string, candidates []string) ([]Suggestion, error) {
	var suggestions []Suggestion
	for _, candidate := range candidates {
		if candidate == orphan {
			continue
		}
		_, behind, err := g.AheadBehind(ctx, orphan, candidate)
		if err != nil {
			continue
		}
		confidence, reason := scoreCandidate(orphan, candidate, behind)
		suggestions = append(suggestions, Suggestion{Child: orphan, Parent: candidate, Confidence: confidence, Reason: reason})
	}
	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].Confidence != suggestions[j].Confidence {
			return suggestions[i].Confidence > suggestions[j].Confidence
		}
		return suggestions[i].Parent < suggestions[j].Parent
	})
	return suggestions, nil
}

func scoreCandidate(orphan, candidate string, behind int) (float64, string) {
	// A smaller `behind` count means the merge-base is closer to the
	// candidate's tip, i.e. orphan diverged recently: strong signal.
	distanceScore := 1.0 / float64(1+behind)

	var namingBonus float64
	var reasons []string
	if sharePrefix(orphan, candidate) {
		namingBonus = 0.2
		reasons = append(reasons, "shares a name prefix with "+candidate)
	}

	confidence := 0.7*distanceScore + namingBonus
	if confidence > 1.0 {
		confidence = 1.0
	}

	reasons = append([]string{"merge-base is " + strconv.Itoa(behind) + " commits behind " + candidate}, reasons...)
	return confidence, strings.Join(reasons, "; ")
}

// sharePrefix reports whether a and b share a leading "token-" segment,
// the convention twig treats as evidence of a common origin (e.g. two
// branches both named "proj-123-...").
func sharePrefix(a, b string) bool {
	aPrefix, aOK := leadingToken(a)
	bPrefix, bOK := leadingToken(b)
	return aOK && bOK && strings.EqualFold(aPrefix, bPrefix)
}

func leadingToken(name string) (string, bool) {
	idx := strings.IndexByte(name, '-')
	if idx <= 0 {
		return "", false
	}
	return name[:idx], true
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := []byte{}
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}
