package abbrev

import (
	"strings"

	"github.com/quickmenu/mcp-server/internal/textnorm"
	"github.com/sahilm/fuzzy"
)

// entrySource exposes entries as "key expansion" strings to sahilm/fuzzy.
type entrySource []Entry

func (s entrySource) String(i int) string {
	return s[i].Key + " " + textnorm.Normalize(s[i].Expansion)
}

func (s entrySource) Len() int {
	return len(s)
}

// Complete ranks entries whose key or expansion fuzzily matches query,
// best first. An empty query lists entries in key order. limit <= 0 means
// no limit.
func (d *Dictionary) Complete(query string, limit int) []Entry {
	if d == nil {
		return nil
	}

	pattern := textnorm.Normalize(strings.TrimSpace(query))
	if pattern == "" {
		return truncate(d.Entries(), limit)
	}

	matches := fuzzy.FindFrom(pattern, entrySource(d.entries))
	out := make([]Entry, 0, len(matches))
	for _, m := range matches {
		out = append(out, d.entries[m.Index])
	}
	return truncate(out, limit)
}

func truncate(entries []Entry, limit int) []Entry {
	if limit > 0 && len(entries) > limit {
		return entries[:limit]
	}
	return entries
}
