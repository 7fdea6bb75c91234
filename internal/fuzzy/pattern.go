package fuzzy

import (
	"math"
	"strings"
)

// pattern is a lowercased query prepared for bit-parallel matching.
type pattern struct {
	text   string
	runes  []rune
	chunks []chunk
	grams  map[string]struct{}
	minLen int
}

// chunk is up to MaxPatternLength runes of the pattern with its per-rune
// position masks.
type chunk struct {
	length int
	peq    map[rune]uint64
}

func newPattern(query string, minMatchCharLength int) *pattern {
	p := &pattern{
		text:   query,
		runes:  []rune(query),
		minLen: minMatchCharLength,
	}

	for start := 0; start < len(p.runes); start += MaxPatternLength {
		end := min(start+MaxPatternLength, len(p.runes))
		p.chunks = append(p.chunks, newChunk(p.runes[start:end]))
	}

	if p.minLen > 1 && len(p.runes) >= p.minLen {
		p.grams = make(map[string]struct{}, len(p.runes))
		for i := 0; i+p.minLen <= len(p.runes); i++ {
			p.grams[string(p.runes[i:i+p.minLen])] = struct{}{}
		}
	}
	return p
}

func newChunk(runes []rune) chunk {
	c := chunk{
		length: len(runes),
		peq:    make(map[rune]uint64, len(runes)),
	}
	for i, r := range runes {
		c.peq[r] |= 1 << uint(i)
	}
	return c
}

// score matches the pattern against one value. It reports false when the
// value does not match.
func (p *pattern) score(v *value, opts Options) (float64, bool) {
	if p.text == v.lower {
		return 0, true
	}
	if !p.sharesFragment(v.runes) {
		return 1, false
	}

	total := 0.0
	matched := false
	for i := range p.chunks {
		s, ok := p.chunks[i].search(v.runes, opts)
		if ok {
			matched = true
			total += s
		} else {
			total += 1
		}
	}
	if !matched {
		return 1, false
	}
	return total / float64(len(p.chunks)), true
}

// sharesFragment reports whether some run of minLen pattern runes occurs
// verbatim in text. Single rune coincidences are not a match.
func (p *pattern) sharesFragment(text []rune) bool {
	if p.minLen <= 1 {
		return true
	}
	if p.grams == nil || len(text) < p.minLen {
		return false
	}
	for i := 0; i+p.minLen <= len(text); i++ {
		if _, ok := p.grams[string(text[i:i+p.minLen])]; ok {
			return true
		}
	}
	return false
}

// search finds the best approximate occurrence of the chunk in text using
// Myers' bit-vector edit distance (search variant: a match may start
// anywhere). The score is errors/length, plus the location penalty when
// location matters.
func (c *chunk) search(text []rune, opts Options) (float64, bool) {
	m := c.length
	high := uint64(1) << uint(m-1)

	pv := ^uint64(0)
	mv := uint64(0)
	errs := m
	best := math.Inf(1)

	for j, r := range text {
		eq := c.peq[r]
		xv := eq | mv
		xh := (((eq & pv) + pv) ^ pv) | eq
		ph := mv | ^(xh | pv)
		mh := pv & xh

		if ph&high != 0 {
			errs++
		} else if mh&high != 0 {
			errs--
		}

		ph <<= 1
		mh <<= 1
		pv = mh | ^(xv | ph)
		mv = ph & xv

		start := max(j-m+1, 0)
		if s := computeScore(errs, m, start, opts); s < best {
			best = s
		}
	}

	if best > opts.Threshold {
		return 1, false
	}
	// Only identical text scores a clean zero
	return math.Max(0.001, best), true
}

func computeScore(errs, length, start int, opts Options) float64 {
	accuracy := float64(errs) / float64(length)
	if opts.IgnoreLocation {
		return accuracy
	}

	proximity := start - opts.Location
	if proximity < 0 {
		proximity = -proximity
	}
	if opts.Distance <= 0 {
		if proximity > 0 {
			return 1
		}
		return accuracy
	}
	return accuracy + float64(proximity)/float64(opts.Distance)
}

// fieldNorm favors short values: 1/sqrt(word count), rounded to 3 decimals.
func fieldNorm(text string) float64 {
	n := len(strings.Fields(text))
	if n == 0 {
		return 1
	}
	return math.Round(1000/math.Sqrt(float64(n))) / 1000
}
