package search

import (
	"sort"
	"strings"

	"github.com/hbollon/go-edlib"
	"github.com/quickmenu/mcp-server/internal/textnorm"
)

// minSuggestSimilarity is the Jaro-Winkler similarity a label needs to be
// offered as a "did you mean".
const minSuggestSimilarity = 0.7

// Suggestion is a leaf label close to a query that found nothing.
type Suggestion struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Similarity float64 `json:"similarity"`
}

// Suggest returns up to n distinct labels most similar to query as whole
// strings, best first, ties in leaf order.
func (e *Engine) Suggest(query string, n int) []Suggestion {
	q := textnorm.Normalize(strings.TrimSpace(query))
	if q == "" || n <= 0 {
		return nil
	}

	var out []Suggestion
	seen := make(map[string]struct{})
	for _, leaf := range e.leaves {
		label := leaf.Variants.Label
		if _, dup := seen[label]; dup {
			continue
		}
		seen[label] = struct{}{}

		sim, err := edlib.StringsSimilarity(q, label, edlib.JaroWinkler)
		if err != nil || float64(sim) < minSuggestSimilarity {
			continue
		}
		out = append(out, Suggestion{ID: leaf.ID, Title: leaf.Label, Similarity: float64(sim)})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Similarity > out[j].Similarity
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
