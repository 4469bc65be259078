package pathlink

import (
	"iter"
	"regexp"
)

// Navigation selects how far candidate generation escalates. Levels are
// ordered; each one includes the tiers below it.
type Navigation int

const (
	// NavigationDefault checks a small well-defined set of candidates:
	// cheap enough for the main thread.
	NavigationDefault Navigation = iota
	// NavigationAdvanced adds custom path regexes and an unbounded
	// line-ends-in-a-path sweep, on a background task.
	NavigationAdvanced
	// NavigationExhaustive adds the full word-start x word-end cross
	// product, time-bounded.
	NavigationExhaustive
)

func (n Navigation) String() string {
	switch n {
	case NavigationDefault:
		return "default"
	case NavigationAdvanced:
		return "advanced"
	case NavigationExhaustive:
		return "exhaustive"
	}
	return "unknown"
}

// At most this many leading words of the line feed the Default-tier
// line-ends-in-a-path sweep; Advanced picks up from there.
const maxMainThreadPrefixWords = 2

// DefaultVariants yields the Default-tier candidates: the hovered word, the
// stripped interior of the longest surrounding symbol pair (when distinct
// from the hovered word), the preapproved regex capture, and a short
// line-ends-in-a-path sweep emitted most-stripped first.
//
// Generation is pure: no I/O, deterministic for a given line and hover.
func (p *MaybePath) DefaultVariants() iter.Seq[MaybePathVariant] {
	return func(yield func(MaybePathVariant) bool) {
		if !yield(newMaybePathVariant(p.line, p.hoveredWordRange)) {
			return
		}

		if surrounding, ok := longestSurroundingSymbols(p.line, p.hoveredWordRange); ok && surrounding != p.hoveredWordRange {
			stripped := Range{surrounding.Start + 1, surrounding.End - 1}
			if !yield(newMaybePathVariant(p.line, stripped)) {
				return
			}
		}

		if capture, ok := pathRegexMatch(p.line, p.hoveredWordRange, preapprovedPathRegexes); ok {
			if !yield(newMaybePathVariant(p.line, capture)) {
				return
			}
		}

		// One prefix stripped is the most likely path, so sweep variants go
		// out in reverse.
		starts := p.lineEndsPathStarts(0, maxMainThreadPrefixWords)
		for i := len(starts) - 1; i >= 0; i-- {
			if !yield(newMaybePathVariant(p.line, Range{starts[i], len(p.line)})) {
				return
			}
		}
	}
}

// AdvancedVariants yields the Advanced-tier candidates: matches of the
// host-configured path regexes overlapping the hover, then the
// line-ends-in-a-path sweep continued past the Default tier's prefix words.
func (p *MaybePath) AdvancedVariants(pathRegexes []*regexp.Regexp) iter.Seq[MaybePathVariant] {
	return func(yield func(MaybePathVariant) bool) {
		if capture, ok := pathRegexMatch(p.line, p.hoveredWordRange, pathRegexes); ok {
			if !yield(newMaybePathVariant(p.line, capture)) {
				return
			}
		}

		for _, start := range p.lineEndsPathStarts(maxMainThreadPrefixWords, -1) {
			if !yield(newMaybePathVariant(p.line, Range{start, len(p.line)})) {
				return
			}
		}
	}
}

// ExhaustiveVariants yields every range starting at a word start at or
// before the hover and ending at a word end at or after it. Ends iterate in
// reverse so longer ranges are tried first. Consumers poll cancellation
// between yields; the cross product can be large.
func (p *MaybePath) ExhaustiveVariants() iter.Seq[MaybePathVariant] {
	return func(yield func(MaybePathVariant) bool) {
		starts := wordRe.FindAllStringIndex(p.line[:p.hoveredWordRange.End], -1)
		ends := wordRe.FindAllStringIndex(p.line[p.hoveredWordRange.Start:], -1)

		for _, start := range starts {
			for i := len(ends) - 1; i >= 0; i-- {
				end := p.hoveredWordRange.Start + ends[i][1]
				if !yield(newMaybePathVariant(p.line, Range{start[0], end})) {
					return
				}
			}
		}
	}
}

// lineEndsPathStarts returns the byte offsets of word starts feeding the
// line-ends-in-a-path sweep: words of the line up to the hovered word,
// skipping the first skip of them, at most max (max < 0 means all).
func (p *MaybePath) lineEndsPathStarts(skip, max int) []int {
	words := wordRe.FindAllStringIndex(p.line[:p.hoveredWordRange.End], -1)
	var starts []int
	for i, w := range words {
		if i < skip {
			continue
		}
		if max >= 0 && len(starts) >= max {
			break
		}
		starts = append(starts, w[0])
	}
	return starts
}
