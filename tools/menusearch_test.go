package tools

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/quickmenu/mcp-server/internal/catalog"
	"github.com/quickmenu/mcp-server/internal/config"
	"github.com/quickmenu/mcp-server/internal/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMenu = `[
	{"fKey": "fin", "fName": "Finance", "fParent": null},
	{"fKey": "gl", "fName": "General Ledger", "fParent": "fin", "fDescription": "GL module"},
	{"fKey": "gl-je", "fName": "Journal Entries", "fParent": "gl", "fDescription": "Create and post journal entries"},
	{"fKey": "gl-tb", "fName": "Trial Balance", "fParent": "gl", "fDescription": "Run the trial balance report"},
	{"fKey": "gl-coa", "fName": "Chart of Accounts", "fParent": "gl"},
	{"fKey": "ar", "fName": "Accounts Receivable", "fParent": "fin"},
	{"fKey": "ar-inv", "fName": "Customer Invoices", "fParent": "ar", "fDescription": "Create and print customer invoices"},
	{"fKey": "ar-rcpt", "fName": "Cash Receipts", "fParent": "ar"},
	{"fKey": "ap", "fName": "Accounts Payable", "fParent": "fin"},
	{"fKey": "ap-bills", "fName": "Vendor Bills", "fParent": "ap"},
	{"fKey": "ap-pay", "fName": "Payment Runs", "fParent": "ap"},
	{"fKey": "tr", "fName": "Treasury", "fParent": "fin"},
	{"fKey": "tr-fx", "fName": "Foreign Exchange Rates", "fParent": "tr", "fDescription": "Maintain currency rates"},
	{"fKey": "st", "fName": "Store"},
	{"fKey": "st-mo", "fName": "Money Order Sales", "fParent": "st"},
	{"fKey": "st-mt", "fName": "Money Transfer Send", "fParent": "st"},
	{"fKey": "st-hscc", "fName": "High Speed Check Cashing", "fParent": "st"},
	{"fKey": "cfg", "fName": "Configuración"},
	{"fKey": "cfg-cafe", "fName": "Café Settings", "fParent": "cfg"}
]`

const testAbbreviations = `abbreviations:
  ar: Accounts Receivable
  ap: Accounts Payable
  gl: General Ledger
  fx: Foreign Exchange
  jes: Journal Entries
  forex: Foreign Exchange
  mo: Money Order
  mt: Money Transfer
  hscc: High Speed Check Cashing
  je: Journal Entry
`

func newTestService(t *testing.T, cfg config.Config) *Service {
	t.Helper()

	mock := NewMockDataProvider()
	mock.AddFile(MenuFile, []byte(testMenu))
	mock.AddFile(AbbreviationsFile, []byte(testAbbreviations))

	svc, err := NewService(cfg, mock, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, svc.Close())
	})
	return svc
}

func TestNewService_MockData(t *testing.T) {
	svc := newTestService(t, config.Default())

	stats := svc.Engine().Stats()
	assert.Equal(t, 19, stats.Nodes)
	assert.Equal(t, 12, stats.Leaves)
	assert.Equal(t, 10, stats.Abbreviations)
	assert.Equal(t, config.Default(), svc.Config())
}

func TestNewService_EmbeddedData(t *testing.T) {
	svc, err := NewService(config.Default(), NewEmbeddedDataProvider(), nil)
	require.NoError(t, err)
	defer svc.Close()

	stats := svc.Engine().Stats()
	assert.Equal(t, 25, stats.Nodes)
	assert.Equal(t, 18, stats.Leaves)
	assert.Equal(t, 10, stats.Abbreviations)

	results, err := svc.Engine().Search("journal entries", 10)
	require.NoError(t, err)
	assert.Contains(t, resultIDs(results), "gl-je")
}

func TestNewService_ExternalFiles(t *testing.T) {
	dir := t.TempDir()
	menuPath := filepath.Join(dir, "menu.json")
	require.NoError(t, os.WriteFile(menuPath, []byte(`[{"fKey": "only", "fName": "Only Item"}]`), 0644))

	cfg := config.Default()
	cfg.MenuFile = menuPath

	// Abbreviations still come from the provider.
	mock := NewMockDataProvider()
	mock.AddFile(AbbreviationsFile, []byte(testAbbreviations))

	svc, err := NewService(cfg, mock, nil)
	require.NoError(t, err)
	defer svc.Close()

	assert.Equal(t, 1, svc.Engine().Stats().Leaves)
}

func TestNewService_Errors(t *testing.T) {
	t.Run("missing menu", func(t *testing.T) {
		mock := NewMockDataProvider()
		mock.AddFile(AbbreviationsFile, []byte(testAbbreviations))
		_, err := NewService(config.Default(), mock, nil)
		assert.Error(t, err)
	})

	t.Run("invalid menu", func(t *testing.T) {
		mock := NewMockDataProvider()
		mock.AddFile(MenuFile, []byte(`[{"fName": "no key"}]`))
		mock.AddFile(AbbreviationsFile, []byte(testAbbreviations))
		_, err := NewService(config.Default(), mock, nil)
		assert.ErrorIs(t, err, catalog.ErrSchema)
	})

	t.Run("conflicting abbreviations", func(t *testing.T) {
		mock := NewMockDataProvider()
		mock.AddFile(MenuFile, []byte(testMenu))
		mock.AddFile(AbbreviationsFile, []byte("abbreviations:\n  AR: Accounts Receivable\n  ar: Annual Report\n"))
		_, err := NewService(config.Default(), mock, nil)
		assert.Error(t, err)
	})
}

func TestSearchMenu(t *testing.T) {
	svc := newTestService(t, config.Default())
	ctx := context.Background()

	_, output, err := svc.SearchMenu(ctx, nil, SearchMenuInput{Query: "HSCC"})
	require.NoError(t, err)
	require.NotEmpty(t, output.Results)
	assert.Equal(t, "st-hscc", output.Results[0].ID)
	assert.Equal(t, "Store → High Speed Check Cashing", output.Results[0].Path)
	assert.Equal(t, "HSCC", output.Query)
	assert.Equal(t, []string{"hscc", "high speed check cashing"}, output.Variants)
	assert.Empty(t, output.Suggestions)

	_, output, err = svc.SearchMenu(ctx, nil, SearchMenuInput{Query: "Trial Balance", MaxResults: 1})
	require.NoError(t, err)
	require.Len(t, output.Results, 1)
	assert.Equal(t, "gl-tb", output.Results[0].ID)
}

func TestSearchMenu_ResultLimits(t *testing.T) {
	cfg := config.Default()
	cfg.DefaultTopK = 2
	cfg.MaxTopK = 3
	svc := newTestService(t, cfg)
	ctx := context.Background()

	_, output, err := svc.SearchMenu(ctx, nil, SearchMenuInput{Query: "accounts"})
	require.NoError(t, err)
	assert.LessOrEqual(t, len(output.Results), 2)

	_, output, err = svc.SearchMenu(ctx, nil, SearchMenuInput{Query: "accounts", MaxResults: 50})
	require.NoError(t, err)
	assert.LessOrEqual(t, len(output.Results), 3)

	_, _, err = svc.SearchMenu(ctx, nil, SearchMenuInput{Query: "accounts", MaxResults: -1})
	assert.ErrorIs(t, err, search.ErrInvalidTopK)
}

func TestSearchMenu_EmptyAndUnmatched(t *testing.T) {
	svc := newTestService(t, config.Default())
	ctx := context.Background()

	_, output, err := svc.SearchMenu(ctx, nil, SearchMenuInput{Query: "   "})
	require.NoError(t, err)
	assert.NotNil(t, output.Results)
	assert.Empty(t, output.Results)
	assert.NotNil(t, output.Variants)
	assert.NotNil(t, output.Suggestions)

	_, output, err = svc.SearchMenu(ctx, nil, SearchMenuInput{Query: "zzzz"})
	require.NoError(t, err)
	assert.Empty(t, output.Results)
	assert.NotNil(t, output.Suggestions)
}

func TestSearchMenuDescriptions(t *testing.T) {
	svc := newTestService(t, config.Default())
	ctx := context.Background()

	_, output, err := svc.SearchMenuDescriptions(ctx, nil, SearchMenuDescriptionsInput{Query: "currency"})
	require.NoError(t, err)
	require.NotEmpty(t, output.Hits)
	assert.Equal(t, "tr-fx", output.Hits[0].ID)
	assert.Equal(t, "currency", output.Query)

	_, _, err = svc.SearchMenuDescriptions(ctx, nil, SearchMenuDescriptionsInput{Query: "currency", MaxResults: -3})
	assert.ErrorIs(t, err, search.ErrInvalidTopK)
}

func TestLookupAbbreviation(t *testing.T) {
	svc := newTestService(t, config.Default())
	ctx := context.Background()

	_, output, err := svc.LookupAbbreviation(ctx, nil, LookupAbbreviationInput{Query: "AR"})
	require.NoError(t, err)
	assert.Equal(t, "Accounts Receivable", output.Expansion)
	require.NotEmpty(t, output.Entries)
	assert.Equal(t, "ar", output.Entries[0].Key)
	assert.Equal(t, len(output.Entries), output.Count)

	_, output, err = svc.LookupAbbreviation(ctx, nil, LookupAbbreviationInput{})
	require.NoError(t, err)
	assert.Empty(t, output.Expansion)
	assert.Equal(t, 10, output.Count)

	_, output, err = svc.LookupAbbreviation(ctx, nil, LookupAbbreviationInput{Query: "qqq"})
	require.NoError(t, err)
	assert.NotNil(t, output.Entries)
	assert.Zero(t, output.Count)
}

func TestGetMenuItem(t *testing.T) {
	svc := newTestService(t, config.Default())
	ctx := context.Background()

	_, output, err := svc.GetMenuItem(ctx, nil, GetMenuItemInput{ID: "gl-je"})
	require.NoError(t, err)
	assert.Equal(t, "Journal Entries", output.Item.Label)
	assert.Equal(t, []string{"Finance", "General Ledger", "Journal Entries"}, output.Item.Breadcrumbs)
	assert.Equal(t, "Finance → General Ledger → Journal Entries", output.Item.Path)
	assert.Equal(t, "General Ledger > Journal Entries", output.Item.LeafWithParent)

	_, _, err = svc.GetMenuItem(ctx, nil, GetMenuItemInput{ID: "gl"})
	assert.ErrorIs(t, err, search.ErrUnknownLeaf)
}

func TestRegisterMenuSearchTools(t *testing.T) {
	svc := newTestService(t, config.Default())
	server := mcp.NewServer(&mcp.Implementation{Name: "test", Version: "0.0.0"}, nil)

	assert.NotPanics(t, func() {
		RegisterMenuSearchTools(server, svc)
	})
}

func resultIDs(results []search.Result) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.ID)
	}
	return out
}
