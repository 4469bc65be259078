package termgrid

import (
	"testing"

	"pathlink"
)

func TestNewWrapsByDisplayWidth(t *testing.T) {
	g := New(4, "abcdef")
	if g.Rows() != 2 {
		t.Fatalf("rows = %d, want 2", g.Rows())
	}
	if got := g.Cell(pathlink.Point{Line: 1, Column: 0}); got != "e" {
		t.Fatalf("cell(1,0) = %q, want %q", got, "e")
	}
}

func TestNewWideClustersNeverSplit(t *testing.T) {
	// Each Hangul syllable is two cells wide; three of them cannot share a
	// five-cell row.
	g := New(5, "협동조합")
	if g.Rows() != 2 {
		t.Fatalf("rows = %d, want 2", g.Rows())
	}
	if got := g.Cell(pathlink.Point{Line: 0, Column: 1}); got != "동" {
		t.Fatalf("cell(0,1) = %q", got)
	}
	if got := g.Cell(pathlink.Point{Line: 1, Column: 0}); got != "조" {
		t.Fatalf("cell(1,0) = %q", got)
	}
}

func TestLineSearchSpansSoftWraps(t *testing.T) {
	g := New(4, "abcdefgh\nij")

	start := g.LineSearchLeft(pathlink.Point{Line: 1, Column: 1})
	if start != (pathlink.Point{Line: 0, Column: 0}) {
		t.Fatalf("line start = %+v", start)
	}
	end := g.LineSearchRight(pathlink.Point{Line: 0, Column: 0})
	if end != (pathlink.Point{Line: 1, Column: 3}) {
		t.Fatalf("line end = %+v", end)
	}

	// The hard newline bounds the second logical line.
	start = g.LineSearchLeft(pathlink.Point{Line: 2, Column: 1})
	if start != (pathlink.Point{Line: 2, Column: 0}) {
		t.Fatalf("second line start = %+v", start)
	}
}

func TestBoundsToStringAcrossRows(t *testing.T) {
	g := New(4, "abcdefgh")
	got := g.BoundsToString(pathlink.Point{Line: 0, Column: 2}, pathlink.Point{Line: 1, Column: 1})
	if got != "cdef" {
		t.Fatalf("bounds = %q, want %q", got, "cdef")
	}
}

func TestAddSubClampToGrid(t *testing.T) {
	g := New(4, "abcdef")

	p := g.Add(pathlink.Point{Line: 0, Column: 3}, pathlink.BoundaryGrid, 1)
	if p != (pathlink.Point{Line: 1, Column: 0}) {
		t.Fatalf("add across wrap = %+v", p)
	}
	p = g.Add(pathlink.Point{Line: 1, Column: 1}, pathlink.BoundaryGrid, 99)
	if p != (pathlink.Point{Line: 1, Column: 1}) {
		t.Fatalf("add past end = %+v, want the last cell", p)
	}
	p = g.Sub(pathlink.Point{Line: 1, Column: 0}, pathlink.BoundaryGrid, 2)
	if p != (pathlink.Point{Line: 0, Column: 2}) {
		t.Fatalf("sub across wrap = %+v", p)
	}
	p = g.Sub(pathlink.Point{}, pathlink.BoundaryGrid, 5)
	if p != (pathlink.Point{}) {
		t.Fatalf("sub past start = %+v, want the origin", p)
	}
}

func TestMatchForByteRange(t *testing.T) {
	text := "ab 협동 cd"
	g := New(80, text)

	r := pathlink.Range{Start: 3, End: 9} // the two Hangul syllables
	m := g.MatchForByteRange(pathlink.Point{}, text, r)
	if m.Start != (pathlink.Point{Line: 0, Column: 3}) || m.End != (pathlink.Point{Line: 0, Column: 4}) {
		t.Fatalf("match = %+v", m)
	}
	if got := g.BoundsToString(m.Start, m.End); got != "협동" {
		t.Fatalf("match covers %q", got)
	}
}

func TestMatchForByteRangeSingleCluster(t *testing.T) {
	text := "x y"
	g := New(80, text)

	m := g.MatchForByteRange(pathlink.Point{}, text, pathlink.Range{Start: 2, End: 3})
	if m.Start != m.End || m.Start != (pathlink.Point{Line: 0, Column: 2}) {
		t.Fatalf("match = %+v", m)
	}
}
