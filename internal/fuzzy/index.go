package fuzzy

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// epsilon stands in for a zero score so a perfect match still weighs in
// through the exponent.
const epsilon = 0x1p-52

// Record holds the values of one searchable item, one slice per key, in
// the order the keys were given to New.
type Record [][]string

// FieldMatch is one value of a record that matched the query.
type FieldMatch struct {
	Key   string  `json:"key"`
	Value string  `json:"value"`
	Score float64 `json:"score"`
}

// Match is a matching record. Ref is the record's position in the slice
// passed to New.
type Match struct {
	Ref    int          `json:"ref"`
	Score  float64      `json:"score"`
	Fields []FieldMatch `json:"fields,omitempty"`
}

type value struct {
	text  string
	lower string
	runes []rune
	norm  float64
}

// Index is built once and only read afterwards; Search is safe for
// concurrent use.
type Index struct {
	keys    []Key
	weights []float64 // normalized to sum to 1
	opts    Options
	records [][][]value
}

// New indexes records under the given weighted keys.
func New(keys []Key, records []Record, opts Options) (*Index, error) {
	if len(keys) == 0 {
		return nil, ErrNoKeys
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	total := 0.0
	for _, k := range keys {
		if k.Weight <= 0 || math.IsNaN(k.Weight) || math.IsInf(k.Weight, 0) {
			return nil, fmt.Errorf("%w: key %q has weight %v", ErrInvalidWeight, k.Name, k.Weight)
		}
		total += k.Weight
	}

	ix := &Index{
		keys:    append([]Key(nil), keys...),
		weights: make([]float64, len(keys)),
		opts:    opts,
		records: make([][][]value, len(records)),
	}
	for i, k := range keys {
		ix.weights[i] = k.Weight / total
	}

	for ref, rec := range records {
		if len(rec) != len(keys) {
			return nil, fmt.Errorf("%w: record %d has %d fields, want %d", ErrFieldCount, ref, len(rec), len(keys))
		}
		fields := make([][]value, len(rec))
		for k, texts := range rec {
			for _, text := range texts {
				if strings.TrimSpace(text) == "" {
					continue
				}
				lower := strings.ToLower(text)
				fields[k] = append(fields[k], value{
					text:  text,
					lower: lower,
					runes: []rune(lower),
					norm:  fieldNorm(text),
				})
			}
		}
		ix.records[ref] = fields
	}

	return ix, nil
}

// Len returns the number of indexed records.
func (ix *Index) Len() int {
	return len(ix.records)
}

// Keys returns the configured keys.
func (ix *Index) Keys() []Key {
	return append([]Key(nil), ix.keys...)
}

// Search scores every record against query and returns the matching ones,
// best first, ties in record order. limit <= 0 returns all matches.
//
// A record's score is the product over its matching values of
// score^(weight*norm), so every additional matching field pulls it closer
// to 0.
func (ix *Index) Search(query string, limit int) []Match {
	q := strings.ToLower(query)
	if strings.TrimSpace(q) == "" {
		return nil
	}
	p := newPattern(q, ix.opts.MinMatchCharLength)

	var matches []Match
	for ref, fields := range ix.records {
		total := 1.0
		var hits []FieldMatch

		for k, values := range fields {
			for i := range values {
				v := &values[i]
				s, ok := p.score(v, ix.opts)
				if !ok {
					continue
				}
				hits = append(hits, FieldMatch{Key: ix.keys[k].Name, Value: v.text, Score: s})

				base := s
				if base == 0 {
					base = epsilon
				}
				exp := ix.weights[k]
				if !ix.opts.IgnoreFieldNorm {
					exp *= v.norm
				}
				total *= math.Pow(base, exp)
			}
		}

		if len(hits) > 0 {
			matches = append(matches, Match{Ref: ref, Score: total, Fields: hits})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score < matches[j].Score
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}
