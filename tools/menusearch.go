package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/quickmenu/mcp-server/internal/abbrev"
	"github.com/quickmenu/mcp-server/internal/fulltext"
	"github.com/quickmenu/mcp-server/internal/indexing"
	"github.com/quickmenu/mcp-server/internal/search"
)

const maxSuggestions = 5

// SearchMenuInput defines input for search_menu tool
type SearchMenuInput struct {
	Query      string `json:"query" jsonschema:"Free-text menu search; typos, abbreviations and accents are tolerated"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"Maximum number of results (optional, defaults to 10)"`
}

// SearchMenuOutput defines output for search_menu tool
type SearchMenuOutput struct {
	Results     []search.Result     `json:"results"`
	Query       string              `json:"query"`
	Variants    []string            `json:"variants"`
	Suggestions []search.Suggestion `json:"suggestions"`
}

// SearchMenuDescriptionsInput defines input for search_menu_descriptions tool
type SearchMenuDescriptionsInput struct {
	Query      string `json:"query" jsonschema:"Keywords to look for in menu labels, paths and descriptions"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"Maximum number of results (optional, defaults to 10)"`
}

// SearchMenuDescriptionsOutput defines output for search_menu_descriptions tool
type SearchMenuDescriptionsOutput struct {
	Hits  []fulltext.Hit `json:"hits"`
	Query string         `json:"query"`
}

// LookupAbbreviationInput defines input for lookup_abbreviation tool
type LookupAbbreviationInput struct {
	Query      string `json:"query" jsonschema:"Abbreviation or partial phrase (empty lists every entry)"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"Maximum number of entries (optional, defaults to 10)"`
}

// LookupAbbreviationOutput defines output for lookup_abbreviation tool
type LookupAbbreviationOutput struct {
	Expansion string         `json:"expansion,omitempty"`
	Entries   []abbrev.Entry `json:"entries"`
	Count     int            `json:"count"`
}

// GetMenuItemInput defines input for get_menu_item tool
type GetMenuItemInput struct {
	ID string `json:"id" jsonschema:"Leaf identifier as returned by search_menu"`
}

// GetMenuItemOutput defines output for get_menu_item tool
type GetMenuItemOutput struct {
	Item indexing.Leaf `json:"item"`
}

// resultLimit applies the configured default and cap to a requested size.
func (s *Service) resultLimit(requested int) (int, error) {
	if requested < 0 {
		return 0, fmt.Errorf("%w: max_results must not be negative, got %d", search.ErrInvalidTopK, requested)
	}
	return s.cfg.ClampTopK(requested), nil
}

// SearchMenu ranks menu leaves against a free-text query
func (s *Service) SearchMenu(ctx context.Context, req *mcp.CallToolRequest, input SearchMenuInput) (*mcp.CallToolResult, SearchMenuOutput, error) {
	topK, err := s.resultLimit(input.MaxResults)
	if err != nil {
		return nil, SearchMenuOutput{}, err
	}

	results, err := s.engine.Search(input.Query, topK)
	if err != nil {
		return nil, SearchMenuOutput{}, fmt.Errorf("search failed: %w", err)
	}

	output := SearchMenuOutput{
		Results:     results,
		Query:       input.Query,
		Variants:    s.engine.Variants(input.Query),
		Suggestions: []search.Suggestion{},
	}
	if output.Variants == nil {
		output.Variants = []string{}
	}
	if len(results) == 0 {
		if suggestions := s.engine.Suggest(input.Query, maxSuggestions); suggestions != nil {
			output.Suggestions = suggestions
		}
	}

	return nil, output, nil
}

// SearchMenuDescriptions runs a keyword search over leaf descriptions
func (s *Service) SearchMenuDescriptions(ctx context.Context, req *mcp.CallToolRequest, input SearchMenuDescriptionsInput) (*mcp.CallToolResult, SearchMenuDescriptionsOutput, error) {
	limit, err := s.resultLimit(input.MaxResults)
	if err != nil {
		return nil, SearchMenuDescriptionsOutput{}, err
	}

	hits, err := s.text.Search(input.Query, limit)
	if err != nil {
		return nil, SearchMenuDescriptionsOutput{}, err
	}

	return nil, SearchMenuDescriptionsOutput{
		Hits:  hits,
		Query: input.Query,
	}, nil
}

// LookupAbbreviation resolves an abbreviation and lists close dictionary entries
func (s *Service) LookupAbbreviation(ctx context.Context, req *mcp.CallToolRequest, input LookupAbbreviationInput) (*mcp.CallToolResult, LookupAbbreviationOutput, error) {
	limit, err := s.resultLimit(input.MaxResults)
	if err != nil {
		return nil, LookupAbbreviationOutput{}, err
	}

	dict := s.engine.Dictionary()
	output := LookupAbbreviationOutput{
		Entries: dict.Complete(input.Query, limit),
	}
	if output.Entries == nil {
		output.Entries = []abbrev.Entry{}
	}
	output.Count = len(output.Entries)
	if expansion, ok := dict.Lookup(strings.TrimSpace(input.Query)); ok {
		output.Expansion = expansion
	}

	return nil, output, nil
}

// GetMenuItem returns one leaf with its ancestry and search variants
func (s *Service) GetMenuItem(ctx context.Context, req *mcp.CallToolRequest, input GetMenuItemInput) (*mcp.CallToolResult, GetMenuItemOutput, error) {
	leaf, err := s.engine.Leaf(input.ID)
	if err != nil {
		return nil, GetMenuItemOutput{}, err
	}
	return nil, GetMenuItemOutput{Item: leaf}, nil
}

// RegisterMenuSearchTools registers the menu search tools with the MCP server
func RegisterMenuSearchTools(server *mcp.Server, svc *Service) {
	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "search_menu",
			Description: "Fuzzy search over the application menu. Tolerates typos, accents and abbreviations (e.g. 'gl je'). Returns leaf items ranked by relevance with their full path.",
		},
		svc.SearchMenu,
	)

	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "search_menu_descriptions",
			Description: "Keyword search over menu item descriptions, labels and paths.",
		},
		svc.SearchMenuDescriptions,
	)

	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "lookup_abbreviation",
			Description: "Resolve a domain abbreviation (e.g. 'ar', 'hscc') and list similar dictionary entries.",
		},
		svc.LookupAbbreviation,
	)

	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "get_menu_item",
			Description: "Get a menu leaf by id, including breadcrumbs, description and the variants it is indexed under.",
		},
		svc.GetMenuItem,
	)
}
