package pathlink_test

import (
	"strings"
	"testing"

	"pathlink"
	"pathlink/internal/termgrid"
)

func wordMatchFor(t *testing.T, g *termgrid.Grid, text, word string) (pathlink.Match, pathlink.Range) {
	t.Helper()
	start := strings.Index(text, word)
	if start < 0 {
		t.Fatalf("%q not in %q", word, text)
	}
	r := pathlink.Range{Start: start, End: start + len(word)}
	return g.MatchForByteRange(pathlink.Point{}, text, r), r
}

func TestFromHoveredWordMatchReconstructsLine(t *testing.T) {
	text := "+++ a/~/협동조합 b/path.rs end"
	g := termgrid.New(12, text)

	match, _ := wordMatchFor(t, g, text, "b/path.rs")
	mp := pathlink.FromHoveredWordMatch(g, match)

	if mp.Line() != text {
		t.Fatalf("reconstructed line = %q, want %q", mp.Line(), text)
	}
	if mp.HoveredWord() != "b/path.rs" {
		t.Fatalf("hovered word = %q", mp.HoveredWord())
	}
}

func TestFromHoveredWordMatchAtLineEdges(t *testing.T) {
	text := "lead.rs middle trail.rs"
	g := termgrid.New(80, text)

	match, _ := wordMatchFor(t, g, text, "lead.rs")
	mp := pathlink.FromHoveredWordMatch(g, match)
	if mp.Line() != text || mp.HoveredWord() != "lead.rs" {
		t.Fatalf("line = %q, word = %q", mp.Line(), mp.HoveredWord())
	}

	match, _ = wordMatchFor(t, g, text, "trail.rs")
	mp = pathlink.FromHoveredWordMatch(g, match)
	if mp.Line() != text || mp.HoveredWord() != "trail.rs" {
		t.Fatalf("line = %q, word = %q", mp.Line(), mp.HoveredWord())
	}
}

func TestMatchFromTextRangeRoundTrip(t *testing.T) {
	// CJK doubles cell width, Hebrew is RTL in display but grid order here,
	// and the narrow grid forces soft wrapping mid-line.
	text := "see 디렉토리/שיתופית.rs:4 done"
	g := termgrid.New(8, text)

	match, _ := wordMatchFor(t, g, text, "디렉토리/שיתופית.rs:4")
	mp := pathlink.FromHoveredWordMatch(g, match)
	if mp.Line() != text {
		t.Fatalf("reconstructed line = %q, want %q", mp.Line(), text)
	}

	targets := []string{
		"디렉토리/שיתופית.rs:4",
		"디렉토리",
		"שיתופית.rs",
		"see 디렉토리",
		text,
	}
	for _, want := range targets {
		start := strings.Index(text, want)
		r := pathlink.Range{Start: start, End: start + len(want)}
		m := mp.MatchFromTextRange(g, r)
		if got := g.BoundsToString(m.Start, m.End); got != want {
			t.Fatalf("round trip of %q gave %q", want, got)
		}
	}
}

func TestMatchFromTextRangeCombiningMarks(t *testing.T) {
	// The accent is decomposed: "e" + U+0301 is one cluster and one cell,
	// as is the Devanagari consonant-vowel pair. The narrow grid wraps
	// mid-word.
	text := "see café.txt and नि.rs done"
	g := termgrid.New(6, text)

	match, _ := wordMatchFor(t, g, text, "café.txt")
	mp := pathlink.FromHoveredWordMatch(g, match)
	if mp.Line() != text {
		t.Fatalf("reconstructed line = %q, want %q", mp.Line(), text)
	}

	targets := []string{
		"café.txt",
		"café",
		"नि.rs",
		"see café.txt",
		text,
	}
	for _, want := range targets {
		start := strings.Index(text, want)
		r := pathlink.Range{Start: start, End: start + len(want)}
		m := mp.MatchFromTextRange(g, r)
		if got := g.BoundsToString(m.Start, m.End); got != want {
			t.Fatalf("round trip of %q gave %q", want, got)
		}
	}
}

func TestBestHeuristicHoveredWord(t *testing.T) {
	tests := []struct {
		name string
		text string
		word string
		want string // "" means no heuristic hit
	}{
		{"surrounding symbols", "(/root 2/שיתופית.rs)", "2/שיתופית.rs)", "/root 2/שיתופית.rs"},
		{"looks like a path", "open foo/bar.txt now", "foo/bar.txt", "foo/bar.txt"},
		{"extension only", "see main.go here", "main.go", "main.go"},
		{"extension keeps suffix", "Main.cs:20:5:Error desc", "Main.cs:20:5:Error", "Main.cs:20:5:Error"},
		{"preapproved capture", "makefile:12: error", "makefile:12:", "makefile:12"},
		{"plain word", "hello world", "hello", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := termgrid.New(80, tt.text)
			match, _ := wordMatchFor(t, g, tt.text, tt.word)
			mp := pathlink.FromHoveredWordMatch(g, match)

			hw := mp.BestHeuristicHoveredWord(g)
			if tt.want == "" {
				if hw != nil {
					t.Fatalf("heuristic = %+v, want none", hw)
				}
				return
			}
			if hw == nil {
				t.Fatalf("no heuristic hit, want %q", tt.want)
			}
			if hw.Word != tt.want {
				t.Fatalf("heuristic word = %q, want %q", hw.Word, tt.want)
			}
			if got := g.BoundsToString(hw.Match.Start, hw.Match.End); got != tt.want {
				t.Fatalf("heuristic match covers %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFromFileURL(t *testing.T) {
	iri := "file:///etc/hosts"
	mp := pathlink.FromFileURL(iri, pathlink.Match{})
	if mp.Line() != iri || mp.HoveredWord() != iri {
		t.Fatalf("line = %q, word = %q", mp.Line(), mp.HoveredWord())
	}
}
