package pathlink

import (
	"github.com/rivo/uniseg"
)

// Point is a cell coordinate in the terminal grid.
type Point struct {
	Line   int
	Column int
}

// Match is an inclusive range of grid cells, [Start, End].
type Match struct {
	Start Point
	End   Point
}

// Boundary selects the clamping behavior of grid point arithmetic.
type Boundary int

const (
	// BoundaryGrid clamps movement to the edges of the whole grid.
	BoundaryGrid Boundary = iota
	// BoundaryCursor clamps movement to the cursor position.
	BoundaryCursor
)

// Term is the capability set the terminal emulator supplies: flat-line
// reconstruction around a point and grapheme-cell point arithmetic. Wide and
// zero-width rules live behind Add/Sub.
type Term interface {
	LineSearchLeft(p Point) Point
	LineSearchRight(p Point) Point
	BoundsToString(start, end Point) string
	Add(p Point, b Boundary, n int) Point
	Sub(p Point, b Boundary, n int) Point
}

// graphemes counts extended grapheme clusters. Terminal cells correspond to
// clusters, not bytes or runes; counting anything else walks the grid off by
// one under combining marks and CJK.
func graphemes(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// MatchFromTextRange converts a byte range of the captured line into a grid
// Match, walking outward from the known grid position of the hovered word by
// grapheme count.
func (p *MaybePath) MatchFromTextRange(term Term, target Range) Match {
	start := p.hoveredWordMatch.Start
	switch {
	case target.Start > p.hoveredWordRange.Start:
		start = term.Add(start, BoundaryGrid, graphemes(p.line[p.hoveredWordRange.Start:target.Start]))
	case target.Start < p.hoveredWordRange.Start:
		start = term.Sub(start, BoundaryGrid, graphemes(p.line[target.Start:p.hoveredWordRange.Start]))
	}

	end := p.hoveredWordMatch.End
	switch {
	case target.End > p.hoveredWordRange.End:
		end = term.Add(end, BoundaryGrid, graphemes(p.line[p.hoveredWordRange.End:target.End]))
	case target.End < p.hoveredWordRange.End:
		end = term.Sub(end, BoundaryGrid, graphemes(p.line[target.End:p.hoveredWordRange.End]))
	}

	return Match{Start: start, End: end}
}
