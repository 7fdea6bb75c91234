// Package abbrev holds the domain abbreviation dictionary ("ar" ->
// "Accounts Receivable") and expands user queries against it.
package abbrev

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/quickmenu/mcp-server/internal/textnorm"
	"gopkg.in/yaml.v3"
)

var (
	ErrEmptyKey       = errors.New("abbreviation key is empty")
	ErrEmptyExpansion = errors.New("abbreviation expansion is empty")
	ErrConflictingKey = errors.New("abbreviation key defined twice with different expansions")
)

// Entry is one short form and the canonical phrase it stands for.
type Entry struct {
	Key       string `json:"key" yaml:"key"`
	Expansion string `json:"expansion" yaml:"expansion"`
}

// Dictionary is an immutable abbreviation table. Keys are matched
// case-insensitively. A nil *Dictionary is valid and empty.
type Dictionary struct {
	entries []Entry           // sorted by Key
	byKey   map[string]string // normalized key -> expansion
}

// New builds a dictionary from short form -> canonical phrase pairs.
func New(pairs map[string]string) (*Dictionary, error) {
	d := &Dictionary{
		byKey: make(map[string]string, len(pairs)),
	}

	for rawKey, expansion := range pairs {
		key := textnorm.Normalize(strings.TrimSpace(rawKey))
		expansion = strings.TrimSpace(expansion)
		if key == "" {
			return nil, ErrEmptyKey
		}
		if expansion == "" {
			return nil, fmt.Errorf("%w: key %q", ErrEmptyExpansion, rawKey)
		}
		if existing, ok := d.byKey[key]; ok {
			if !strings.EqualFold(existing, expansion) {
				return nil, fmt.Errorf("%w: %q (%q vs %q)", ErrConflictingKey, key, existing, expansion)
			}
			continue
		}
		d.byKey[key] = expansion
	}

	d.entries = make([]Entry, 0, len(d.byKey))
	for key, expansion := range d.byKey {
		d.entries = append(d.entries, Entry{Key: key, Expansion: expansion})
	}
	sort.Slice(d.entries, func(i, j int) bool {
		return d.entries[i].Key < d.entries[j].Key
	})

	return d, nil
}

// Load parses a YAML document of the form:
//
//	abbreviations:
//	  ar: Accounts Receivable
//	  gl: General Ledger
func Load(data []byte) (*Dictionary, error) {
	var doc struct {
		Abbreviations map[string]string `yaml:"abbreviations"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse abbreviations: %w", err)
	}
	return New(doc.Abbreviations)
}

// LoadFile reads and parses a YAML abbreviation file.
func LoadFile(path string) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read abbreviations: %w", err)
	}
	return Load(data)
}

// Lookup returns the canonical phrase for token, ignoring case and diacritics.
func (d *Dictionary) Lookup(token string) (string, bool) {
	if d == nil {
		return "", false
	}
	expansion, ok := d.byKey[textnorm.Normalize(token)]
	return expansion, ok
}

// Entries returns all entries ordered by key.
func (d *Dictionary) Entries() []Entry {
	if d == nil {
		return nil
	}
	out := make([]Entry, len(d.entries))
	copy(out, d.entries)
	return out
}

// Len returns the number of entries.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}

// KeysWithin returns, in key order, every key whose expansion occurs in
// text (case-insensitive).
func (d *Dictionary) KeysWithin(text string) []string {
	if d == nil || text == "" {
		return nil
	}
	lower := strings.ToLower(text)

	var keys []string
	for _, e := range d.entries {
		if strings.Contains(lower, strings.ToLower(e.Expansion)) {
			keys = append(keys, e.Key)
		}
	}
	return keys
}
