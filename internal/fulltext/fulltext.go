// Package fulltext offers keyword search over menu leaf descriptions,
// complementing the fuzzy label search with word-level matching on the
// free text an admin wrote for each screen.
package fulltext

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/blevesearch/bleve/v2"
	"github.com/quickmenu/mcp-server/internal/indexing"
)

// ErrInvalidLimit is returned when a search asks for zero or fewer hits.
var ErrInvalidLimit = errors.New("limit must be a positive integer")

// Document is the indexed form of a leaf
type Document struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

// Hit is a keyword search result
type Hit struct {
	ID          string  `json:"id"`
	Label       string  `json:"label"`
	Path        string  `json:"path"`
	Description string  `json:"description"`
	Score       float64 `json:"score"`
}

// Searcher runs keyword queries against an in-memory bleve index
type Searcher struct {
	index  Index
	logger *slog.Logger
}

// Option configures a Searcher
type Option func(*Searcher)

// WithLogger sets the logger. A nil logger keeps the default.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSearcher wraps an existing index
func NewSearcher(index Index, opts ...Option) *Searcher {
	s := &Searcher{index: index, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Build indexes leaves into a fresh in-memory bleve index
func Build(leaves []indexing.Leaf, opts ...Option) (*Searcher, error) {
	startTime := time.Now()

	index, err := newMemIndex(leaves)
	if err != nil {
		return nil, err
	}

	s := NewSearcher(index, opts...)
	s.logger.Debug("description index built",
		slog.Int("documents", len(leaves)),
		slog.Duration("elapsed", time.Since(startTime)))
	return s, nil
}

// Search runs a keyword query. Words may be off by one edit.
func (s *Searcher) Search(query string, limit int) ([]Hit, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLimit, limit)
	}
	if strings.TrimSpace(query) == "" {
		return []Hit{}, nil
	}

	match := bleve.NewMatchQuery(query)
	match.SetFuzziness(1)
	req := bleve.NewSearchRequest(match)
	req.Size = limit
	req.Fields = []string{"*"}

	searchResults, err := s.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	hits := make([]Hit, 0, len(searchResults.Hits))
	for _, h := range searchResults.Hits {
		result := Hit{ID: h.ID, Score: h.Score}
		if label, ok := h.Fields["label"].(string); ok {
			result.Label = label
		}
		if path, ok := h.Fields["path"].(string); ok {
			result.Path = path
		}
		if description, ok := h.Fields["description"].(string); ok {
			result.Description = description
		}
		hits = append(hits, result)
	}
	return hits, nil
}

// DocCount returns the number of indexed leaves
func (s *Searcher) DocCount() (uint64, error) {
	return s.index.DocCount()
}

// Close releases the index
func (s *Searcher) Close() error {
	return s.index.Close()
}
