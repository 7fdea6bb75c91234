package abbrev

import (
	"strings"

	"github.com/quickmenu/mcp-server/internal/textnorm"
)

// Expand turns a raw query into the phrasings worth searching: the
// normalized query itself and, when at least one token is a known
// abbreviation, the query with those tokens replaced by their expansions.
// A blank query yields no variants.
//
// Only the all-substituted form is produced, not every combination, so the
// number of variants stays at two.
func (d *Dictionary) Expand(query string) []string {
	q := textnorm.Normalize(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	tokens := strings.Fields(q)
	for i, tok := range tokens {
		if expansion, ok := d.Lookup(tok); ok {
			tokens[i] = textnorm.Normalize(expansion)
		}
	}

	expanded := strings.Join(tokens, " ")
	if expanded == q {
		return []string{q}
	}
	return []string{q, expanded}
}
