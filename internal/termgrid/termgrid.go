// Package termgrid is a small in-memory terminal grid used by tests and the
// demo host. It stores one grapheme cluster per cell and implements the
// pathlink.Term capability set: flat-line search, bounds extraction, and
// grapheme-cell point arithmetic.
package termgrid

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"pathlink"
)

type Grid struct {
	cols    int
	rows    [][]string // grapheme clusters, one per cell
	wrapped []bool     // row continues the previous row's logical line
}

// New builds a grid cols cells wide from text. Logical lines are split on
// newlines and soft-wrapped by display width; a cluster is never split
// across rows.
func New(cols int, text string) *Grid {
	if cols < 1 {
		cols = 1
	}
	g := &Grid{cols: cols}

	for _, line := range strings.Split(text, "\n") {
		row := make([]string, 0, cols)
		width := 0
		wrapped := false

		state := -1
		for len(line) > 0 {
			var cluster string
			cluster, line, _, state = uniseg.StepString(line, state)
			w := runewidth.StringWidth(cluster)
			if w < 1 {
				w = 1
			}
			if width+w > g.cols && len(row) > 0 {
				g.rows = append(g.rows, row)
				g.wrapped = append(g.wrapped, wrapped)
				row = make([]string, 0, cols)
				width = 0
				wrapped = true
			}
			row = append(row, cluster)
			width += w
		}

		g.rows = append(g.rows, row)
		g.wrapped = append(g.wrapped, wrapped)
	}

	return g
}

func (g *Grid) Cols() int { return g.cols }

func (g *Grid) Rows() int { return len(g.rows) }

// Cell returns the cluster at p, or "" when p is off-grid.
func (g *Grid) Cell(p pathlink.Point) string {
	if p.Line < 0 || p.Line >= len(g.rows) {
		return ""
	}
	row := g.rows[p.Line]
	if p.Column < 0 || p.Column >= len(row) {
		return ""
	}
	return row[p.Column]
}

// LineSearchLeft returns the first cell of the logical line containing p.
func (g *Grid) LineSearchLeft(p pathlink.Point) pathlink.Point {
	line := g.clampLine(p.Line)
	for line > 0 && g.wrapped[line] {
		line--
	}
	return pathlink.Point{Line: line, Column: 0}
}

// LineSearchRight returns the last cell of the logical line containing p.
func (g *Grid) LineSearchRight(p pathlink.Point) pathlink.Point {
	line := g.clampLine(p.Line)
	for line+1 < len(g.rows) && g.wrapped[line+1] {
		line++
	}
	col := len(g.rows[line]) - 1
	if col < 0 {
		col = 0
	}
	return pathlink.Point{Line: line, Column: col}
}

// BoundsToString concatenates the clusters from start to end inclusive, in
// grid order.
func (g *Grid) BoundsToString(start, end pathlink.Point) string {
	from := g.index(start)
	to := g.index(end)
	if to < from {
		return ""
	}

	var b strings.Builder
	for i := from; i <= to; i++ {
		b.WriteString(g.Cell(g.point(i)))
	}
	return b.String()
}

// Add advances p by n cells, clamping at the end of the grid.
func (g *Grid) Add(p pathlink.Point, _ pathlink.Boundary, n int) pathlink.Point {
	return g.point(g.index(p) + n)
}

// Sub retreats p by n cells, clamping at the start of the grid.
func (g *Grid) Sub(p pathlink.Point, _ pathlink.Boundary, n int) pathlink.Point {
	return g.point(g.index(p) - n)
}

// MatchForByteRange converts a byte range of a logical line string into the
// inclusive cell match for that range, given the grid point of the line's
// first cell.
func (g *Grid) MatchForByteRange(lineStart pathlink.Point, line string, r pathlink.Range) pathlink.Match {
	before := uniseg.GraphemeClusterCount(line[:r.Start])
	within := uniseg.GraphemeClusterCount(line[r.Start:r.End])
	start := g.Add(lineStart, pathlink.BoundaryGrid, before)
	end := start
	if within > 1 {
		end = g.Add(start, pathlink.BoundaryGrid, within-1)
	}
	return pathlink.Match{Start: start, End: end}
}

// index linearizes p over the grid's cells, clamping to valid cells.
func (g *Grid) index(p pathlink.Point) int {
	line := g.clampLine(p.Line)
	idx := 0
	for i := 0; i < line; i++ {
		idx += len(g.rows[i])
	}
	col := p.Column
	if col < 0 {
		col = 0
	}
	if n := len(g.rows[line]); col >= n {
		if n == 0 {
			col = 0
		} else {
			col = n - 1
		}
	}
	return idx + col
}

// point is the inverse of index, clamping to the grid.
func (g *Grid) point(idx int) pathlink.Point {
	if idx < 0 {
		idx = 0
	}
	for line, row := range g.rows {
		if idx < len(row) {
			return pathlink.Point{Line: line, Column: idx}
		}
		idx -= len(row)
	}

	last := len(g.rows) - 1
	col := len(g.rows[last]) - 1
	if col < 0 {
		col = 0
	}
	return pathlink.Point{Line: last, Column: col}
}

func (g *Grid) clampLine(line int) int {
	if line < 0 {
		return 0
	}
	if line >= len(g.rows) {
		return len(g.rows) - 1
	}
	return line
}
