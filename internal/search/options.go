package search

import (
	"log/slog"

	"github.com/quickmenu/mcp-server/internal/fuzzy"
	"github.com/quickmenu/mcp-server/internal/indexing"
)

const (
	// DefaultTopK is the result count used when callers do not pick one.
	DefaultTopK = 10

	// minOverFetch is the floor on hits requested per query phrasing, so
	// the merge has enough candidates before cutting to topK.
	minOverFetch = 50

	// overFetchFactor scales the per-phrasing request with topK.
	overFetchFactor = 5
)

// Field names of the fuzzy index.
const (
	FieldLabel          = "label"
	FieldLeafWithParent = "leafWithParent"
	FieldPath           = "path"
	FieldVariants       = "normalized"
)

// IndexKeys are the searched fields and their weights. A hit on the leaf's
// own name counts most, a hit somewhere in a long path least.
var IndexKeys = []fuzzy.Key{
	{Name: FieldLabel, Weight: 0.40},
	{Name: FieldLeafWithParent, Weight: 0.25},
	{Name: FieldPath, Weight: 0.15},
	{Name: FieldVariants, Weight: 0.25},
}

// IndexOptions are the matcher settings for menu search.
func IndexOptions() fuzzy.Options {
	return fuzzy.Options{
		Threshold:          0.32,
		Distance:           512, // breadcrumb paths get long
		IgnoreLocation:     true,
		MinMatchCharLength: 2,
	}
}

type config struct {
	logger   *slog.Logger
	maxDepth int
}

// Option configures an Engine.
type Option func(*config)

// WithLogger sets the logger used while building. A nil logger keeps the default.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMaxDepth overrides the breadcrumb depth cap. Values below 1 keep the default.
func WithMaxDepth(depth int) Option {
	return func(c *config) {
		if depth >= 1 {
			c.maxDepth = depth
		}
	}
}

func defaultConfig() config {
	return config{
		logger:   slog.Default(),
		maxDepth: indexing.DefaultMaxDepth,
	}
}
