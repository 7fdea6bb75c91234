package tools

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/quickmenu/mcp-server/internal/abbrev"
	"github.com/quickmenu/mcp-server/internal/catalog"
	"github.com/quickmenu/mcp-server/internal/config"
	"github.com/quickmenu/mcp-server/internal/fulltext"
	"github.com/quickmenu/mcp-server/internal/search"
)

// Service owns the fuzzy engine and the description index built from one
// menu export. Both are read-only after NewService returns.
type Service struct {
	cfg    config.Config
	engine *search.Engine
	text   *fulltext.Searcher
}

// NewService loads the menu and abbreviations (from the configured files or
// the provider) and builds both indexes.
func NewService(cfg config.Config, provider DataProvider, logger *slog.Logger) (*Service, error) {
	if logger == nil {
		logger = slog.Default()
	}

	menuData, err := readData(cfg.MenuFile, MenuFile, provider)
	if err != nil {
		return nil, fmt.Errorf("failed to read menu: %w", err)
	}
	nodes, err := catalog.DecodeMenu(menuData)
	if err != nil {
		return nil, err
	}

	abbrevData, err := readData(cfg.AbbreviationsFile, AbbreviationsFile, provider)
	if err != nil {
		return nil, fmt.Errorf("failed to read abbreviations: %w", err)
	}
	dict, err := abbrev.Load(abbrevData)
	if err != nil {
		return nil, err
	}

	engine, err := search.NewEngine(nodes, dict,
		search.WithLogger(logger),
		search.WithMaxDepth(cfg.MaxBreadcrumbDepth),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build search engine: %w", err)
	}

	text, err := fulltext.Build(engine.Leaves(), fulltext.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to build description index: %w", err)
	}

	stats := engine.Stats()
	log.Printf("✓ Menu indexed: %d nodes, %d leaves, %d abbreviations (%v)",
		stats.Nodes, stats.Leaves, stats.Abbreviations, stats.BuildTime)

	return &Service{cfg: cfg, engine: engine, text: text}, nil
}

// readData prefers an explicit file path and falls back to the bundled copy.
func readData(path, bundled string, provider DataProvider) ([]byte, error) {
	if path != "" {
		return os.ReadFile(path)
	}
	if provider == nil {
		provider = NewEmbeddedDataProvider()
	}
	return provider.ReadFile(bundled)
}

// Engine returns the fuzzy search engine.
func (s *Service) Engine() *search.Engine {
	return s.engine
}

// Config returns the configuration the service was built with.
func (s *Service) Config() config.Config {
	return s.cfg
}

// Close releases the description index.
func (s *Service) Close() error {
	if s.text == nil {
		return nil
	}
	return s.text.Close()
}
