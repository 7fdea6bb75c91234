package indexing

import (
	"strings"

	"github.com/quickmenu/mcp-server/internal/abbrev"
	"github.com/quickmenu/mcp-server/internal/textnorm"
)

// JoinPath joins breadcrumbs into a display path
// Example: ["General Ledger", "Journal Entries"] -> "General Ledger → Journal Entries"
func JoinPath(breadcrumbs []string) string {
	return strings.Join(breadcrumbs, PathSeparator)
}

// LeafWithParent joins the last two breadcrumbs
// Example: ["Finance", "General Ledger", "Journal Entries"] -> "General Ledger > Journal Entries"
func LeafWithParent(breadcrumbs []string) string {
	if len(breadcrumbs) > 2 {
		breadcrumbs = breadcrumbs[len(breadcrumbs)-2:]
	}
	return strings.Join(breadcrumbs, ParentSeparator)
}

// EnrichMetadata fills the derived path fields and the normalized variants
// of a flattened leaf. dict may be nil.
func EnrichMetadata(leaf *Leaf, dict *abbrev.Dictionary) {
	leaf.Path = JoinPath(leaf.Breadcrumbs)
	leaf.LeafWithParent = LeafWithParent(leaf.Breadcrumbs)

	leaf.Variants = Variants{
		Label:          textnorm.Normalize(leaf.Label),
		Path:           textnorm.Normalize(leaf.Path),
		LeafWithParent: textnorm.Normalize(leaf.LeafWithParent),
		Description:    textnorm.Normalize(leaf.Description),
	}

	// A leaf under "Accounts Receivable" also answers to "ar"
	for _, key := range dict.KeysWithin(leaf.Path) {
		leaf.Variants.Abbreviations = append(leaf.Variants.Abbreviations, textnorm.Normalize(key))
	}
}

// Prepare flattens the taxonomy and enriches every leaf.
func Prepare(nodes map[string]MenuNode, dict *abbrev.Dictionary, maxDepth int) []Leaf {
	leaves := Flatten(nodes, maxDepth)
	for i := range leaves {
		EnrichMetadata(&leaves[i], dict)
	}
	return leaves
}
