// Package pathlink resolves path-like words hovered in a terminal to
// openable filesystem targets.
//
// Given a flat line captured from the terminal grid and the byte range of
// the hovered word within it, the package enumerates plausible path
// spellings (with and without surrounding symbols, git diff prefixes, and
// trailing row/column suffixes), ranks them, and probes them against
// worktrees and the filesystem in tiers of widening cost. Results map back
// to grid coordinates for highlighting.
package pathlink

import (
	"fmt"
	"path/filepath"
	"strings"
)

// MaybePath is the hovered or clicked word in the terminal together with the
// full line it sits on. All candidate ranges index into Line.
type MaybePath struct {
	line             string
	hoveredWordRange Range
	hoveredWordMatch Match
}

// New builds a MaybePath directly from a captured line. Hosts that already
// track flat lines (and tests) use this; terminal hosts use FromHoveredWordMatch.
func New(line string, hoveredWordRange Range, hoveredWordMatch Match) *MaybePath {
	return &MaybePath{
		line:             line,
		hoveredWordRange: hoveredWordRange,
		hoveredWordMatch: hoveredWordMatch,
	}
}

// FromFileURL treats an already-demarcated file:// IRI as the whole line.
func FromFileURL(fileIRI string, fileIRIMatch Match) *MaybePath {
	return &MaybePath{
		line:             fileIRI,
		hoveredWordRange: Range{0, len(fileIRI)},
		hoveredWordMatch: fileIRIMatch,
	}
}

// FromHoveredWordMatch reconstructs the flat line around a hovered word
// match: left context, the word itself, right context. The hovered word
// range records where the word landed within the reconstruction.
func FromHoveredWordMatch(term Term, wordMatch Match) *MaybePath {
	word := term.BoundsToString(wordMatch.Start, wordMatch.End)

	var line strings.Builder
	lineStart := term.LineSearchLeft(wordMatch.Start)
	if lineStart != wordMatch.Start {
		line.WriteString(term.BoundsToString(lineStart, term.Sub(wordMatch.Start, BoundaryGrid, 1)))
	}
	wordStart := line.Len()
	line.WriteString(word)
	wordEnd := line.Len()
	lineEnd := term.LineSearchRight(wordMatch.End)
	if lineEnd != wordMatch.End {
		line.WriteString(term.BoundsToString(term.Add(wordMatch.End, BoundaryGrid, 1), lineEnd))
	}

	return &MaybePath{
		line:             line.String(),
		hoveredWordRange: Range{wordStart, wordEnd},
		hoveredWordMatch: wordMatch,
	}
}

// Line is the flat reconstruction of the terminal line containing the hover.
func (p *MaybePath) Line() string { return p.line }

// HoveredWordRange is the byte range of the hovered word within Line.
func (p *MaybePath) HoveredWordRange() Range { return p.hoveredWordRange }

// HoveredWord is the hovered word's text.
func (p *MaybePath) HoveredWord() string {
	return p.line[p.hoveredWordRange.Start:p.hoveredWordRange.End]
}

func (p *MaybePath) textAt(r Range) string { return p.line[r.Start:r.End] }

func (p *MaybePath) String() string {
	if p.hoveredWordRange.Start != 0 || p.hoveredWordRange.End != len(p.line) {
		return fmt.Sprintf("%q «%s»", p.line, p.HoveredWord())
	}
	return fmt.Sprintf("%q", p.line)
}

// HoveredWord pairs the text chosen for immediate highlighting with its grid
// coordinates.
type HoveredWord struct {
	Word  string
	Match Match
}

// BestHeuristicHoveredWord computes the best guess for immediate link
// highlighting, before any resolution has run: the interior of the longest
// surrounding symbol pair, the hovered word itself when it looks like a
// path, or a preapproved regex capture. The host underlines this right away
// and replaces or clears it once resolution completes.
func (p *MaybePath) BestHeuristicHoveredWord(term Term) *HoveredWord {
	if surrounding, ok := longestSurroundingSymbols(p.line, p.hoveredWordRange); ok {
		stripped := Range{surrounding.Start + 1, surrounding.End - 1}
		return &HoveredWord{
			Word:  p.textAt(stripped),
			Match: p.MatchFromTextRange(term, stripped),
		}
	}

	if p.looksLikeAPath(p.hoveredWordRange) {
		return &HoveredWord{
			Word:  p.HoveredWord(),
			Match: p.hoveredWordMatch,
		}
	}

	if capture, ok := pathRegexMatch(p.line, p.hoveredWordRange, preapprovedPathRegexes); ok {
		return &HoveredWord{
			Word:  p.textAt(capture),
			Match: p.MatchFromTextRange(term, capture),
		}
	}

	return nil
}

func (p *MaybePath) looksLikeAPath(word Range) bool {
	text := p.textAt(word)
	return filepath.Ext(text) != "" ||
		strings.HasPrefix(text, ".") ||
		strings.ContainsAny(text, mainSeparators)
}
