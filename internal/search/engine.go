package search

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/quickmenu/mcp-server/internal/abbrev"
	"github.com/quickmenu/mcp-server/internal/fuzzy"
	"github.com/quickmenu/mcp-server/internal/indexing"
)

// Result is one ranked menu leaf.
type Result struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Path      string  `json:"path"`
	Relevance float64 `json:"relevance"` // 1 is a perfect match
}

// Stats summarizes a built engine.
type Stats struct {
	Nodes         int           `json:"nodes"`
	Leaves        int           `json:"leaves"`
	Truncated     int           `json:"truncated"`
	Dangling      int           `json:"dangling"`
	Abbreviations int           `json:"abbreviations"`
	MaxDepth      int           `json:"max_depth"`
	BuildTime     time.Duration `json:"build_time"`
}

// Engine is the immutable search index over the leaves of one taxonomy
// snapshot.
type Engine struct {
	leaves []indexing.Leaf
	byID   map[string]int
	dict   *abbrev.Dictionary
	index  *fuzzy.Index
	stats  Stats
}

// NewEngine flattens nodes, enriches the leaves with dict and builds the
// fuzzy index. dict may be nil.
func NewEngine(nodes map[string]indexing.MenuNode, dict *abbrev.Dictionary, opts ...Option) (*Engine, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	start := time.Now()
	leaves := indexing.Prepare(nodes, dict, cfg.maxDepth)

	records := make([]fuzzy.Record, len(leaves))
	byID := make(map[string]int, len(leaves))
	stats := Stats{
		Nodes:         len(nodes),
		Leaves:        len(leaves),
		Abbreviations: dict.Len(),
		MaxDepth:      cfg.maxDepth,
	}

	for i, leaf := range leaves {
		byID[leaf.ID] = i
		records[i] = fuzzy.Record{
			{leaf.Label},
			{leaf.LeafWithParent},
			{leaf.Path},
			leaf.Variants.All(),
		}
		if leaf.Truncated {
			stats.Truncated++
		}
		if leaf.Dangling {
			stats.Dangling++
		}
	}

	index, err := fuzzy.New(IndexKeys, records, IndexOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to build fuzzy index: %w", err)
	}
	stats.BuildTime = time.Since(start)

	if stats.Truncated > 0 {
		cfg.logger.Warn("breadcrumbs truncated at depth cap, taxonomy may contain parent cycles",
			slog.Int("leaves", stats.Truncated),
			slog.Int("max_depth", cfg.maxDepth))
	}
	if stats.Dangling > 0 {
		cfg.logger.Warn("leaves reference unknown parent ids",
			slog.Int("leaves", stats.Dangling))
	}
	cfg.logger.Debug("menu index built",
		slog.Int("nodes", stats.Nodes),
		slog.Int("leaves", stats.Leaves),
		slog.Duration("elapsed", stats.BuildTime))

	return &Engine{
		leaves: leaves,
		byID:   byID,
		dict:   dict,
		index:  index,
		stats:  stats,
	}, nil
}

// Stats returns build statistics.
func (e *Engine) Stats() Stats {
	return e.stats
}

// Dictionary returns the abbreviation dictionary the engine was built with.
func (e *Engine) Dictionary() *abbrev.Dictionary {
	return e.dict
}

// Leaves returns a copy of the indexed leaves in index order.
func (e *Engine) Leaves() []indexing.Leaf {
	out := make([]indexing.Leaf, len(e.leaves))
	copy(out, e.leaves)
	return out
}

// Leaf returns one indexed leaf by id.
func (e *Engine) Leaf(id string) (indexing.Leaf, error) {
	i, ok := e.byID[id]
	if !ok {
		return indexing.Leaf{}, fmt.Errorf("%w: %q", ErrUnknownLeaf, id)
	}
	return e.leaves[i], nil
}

// Variants returns the query phrasings Search would try for query.
func (e *Engine) Variants(query string) []string {
	return e.dict.Expand(query)
}
