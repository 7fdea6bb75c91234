package search

import (
	"fmt"
	"sort"
)

// hit is the best distance seen for one leaf across all query phrasings.
type hit struct {
	ref      int
	distance float64
}

// Search returns up to topK leaves ranked by fuzzy similarity to query.
// A blank query returns no results without touching the index.
func (e *Engine) Search(query string, topK int) ([]Result, error) {
	if topK <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidTopK, topK)
	}

	variants := e.dict.Expand(query)
	if len(variants) == 0 {
		return []Result{}, nil
	}

	hits := e.collect(variants, max(minOverFetch, overFetchFactor*topK))
	return e.rank(hits, topK), nil
}

// collect runs every phrasing and keeps, per leaf, the lowest distance.
// Leaves keep the position of their first appearance.
func (e *Engine) collect(variants []string, perVariant int) []hit {
	var hits []hit
	position := make(map[int]int)

	for _, v := range variants {
		for _, m := range e.index.Search(v, perVariant) {
			if i, seen := position[m.Ref]; seen {
				if m.Score < hits[i].distance {
					hits[i].distance = m.Score
				}
				continue
			}
			position[m.Ref] = len(hits)
			hits = append(hits, hit{ref: m.Ref, distance: m.Score})
		}
	}
	return hits
}

// rank sorts by distance, first appearance breaking ties, and converts the
// first topK into results.
func (e *Engine) rank(hits []hit, topK int) []Result {
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].distance < hits[j].distance
	})
	if len(hits) > topK {
		hits = hits[:topK]
	}

	results := make([]Result, 0, len(hits))
	for _, h := range hits {
		leaf := e.leaves[h.ref]
		results = append(results, Result{
			ID:        leaf.ID,
			Title:     leaf.Label,
			Path:      leaf.Path,
			Relevance: 1 - h.distance,
		})
	}
	return results
}
