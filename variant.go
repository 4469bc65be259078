package pathlink

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// RowColumn carries a parsed line/column suffix. Column 0 means no column;
// a column is never recorded without a row. SuffixLen is the byte length of
// the consumed suffix so the hyperlink can be re-extended to cover it.
type RowColumn struct {
	Row       int
	Column    int
	SuffixLen int
}

// Accepted trailing position suffixes: ":ROW", ":ROW:COL", "(ROW,COL)".
var rowColumnSuffixRe = regexp.MustCompile(`(?::(\d+)(?::(\d+))?|\((\d+),(\d+)\))$`)

// parseRowColumnSuffix parses a trailing position suffix of s.
func parseRowColumnSuffix(s string) (RowColumn, bool) {
	loc := rowColumnSuffixRe.FindStringSubmatchIndex(s)
	if loc == nil {
		return RowColumn{}, false
	}

	group := func(i int) int {
		if loc[2*i] < 0 {
			return 0
		}
		n, err := strconv.Atoi(s[loc[2*i]:loc[2*i+1]])
		if err != nil {
			return 0
		}
		return n
	}

	rc := RowColumn{SuffixLen: len(s) - loc[0]}
	if loc[2] >= 0 {
		rc.Row = group(1)
		rc.Column = group(2)
	} else {
		rc.Row = group(3)
		rc.Column = group(4)
	}

	return rc, true
}

// MaybePathWithPosition is one concrete path candidate: the spelled path
// (relative projection or absolutized), an optional position, and the byte
// range it came from in the originating line.
type MaybePathWithPosition struct {
	Path     string
	Position *RowColumn
	Range    Range
}

// HyperlinkRange is the range to underline: the path range extended over the
// position suffix when one was stripped.
func (m MaybePathWithPosition) HyperlinkRange() Range {
	if m.Position != nil {
		return Range{m.Range.Start, m.Range.End + m.Position.SuffixLen}
	}
	return m.Range
}

func (m MaybePathWithPosition) String() string {
	if m.Position == nil {
		return m.Path
	}
	if m.Position.Column != 0 {
		return fmt.Sprintf("%s:%d:%d", m.Path, m.Position.Row, m.Position.Column)
	}
	return fmt.Sprintf("%s:%d", m.Path, m.Position.Row)
}

// MaybePathVariant holds the well defined sub-range variations of one
// candidate range of a line:
//
//   - with and without stripped common surrounding symbols: " ' ( ) [ ]
//   - with and without a line/column suffix: ":4:2" or "(4,2)"
//   - with and without git diff prefixes: "a/" or "b/"
//
// Surrounding symbols are stripped before the other variations are
// considered, and the stripped interior ranks before the original since it
// is usually the real path. Git diff prefixes are only recognized when no
// symbols were stripped, and a position suffix is never parsed on the git
// diff variation (git never emits positions).
type MaybePathVariant struct {
	line       string
	variations []Range
	positioned *MaybePathWithPosition

	// "a/~/foo.rs" is a valid path on its own. After stripping a git diff
	// prefix, "~/foo.rs" must not be expanded against the home dir.
	absolutizeHomeDir bool
}

func newMaybePathVariant(line string, path Range) MaybePathVariant {
	v := MaybePathVariant{
		line:              line,
		variations:        []Range{path},
		absolutizeHomeDir: true,
	}

	maybePath := line[path.Start:path.End]
	if len(maybePath) <= 2 {
		return v
	}

	symbolsStripped := false
	for _, pair := range commonSurroundingSymbols {
		if maybePath[0] == pair.open && maybePath[len(maybePath)-1] == pair.close {
			symbolsStripped = true
			path = Range{path.Start + 1, path.End - 1}
			v.variations = append([]Range{path}, v.variations...)
			maybePath = line[path.Start:path.End]
			break
		}
	}

	if !symbolsStripped &&
		(maybePath[0] == 'a' || maybePath[0] == 'b') &&
		len(maybePath) > 1 && (maybePath[1] == '/' || maybePath[1] == '\\') {
		v.absolutizeHomeDir = false
		v.variations = append(v.variations, Range{path.Start + 2, path.End})
		// maybePath keeps the git diff prefix: "a/some/path:4:2" is never
		// read as "some/path" at 4:2, so the suffix below is parsed against
		// the unstripped text.
	}

	// A ":0" row, like a row too large to parse, reads as "no position":
	// the suffix stays part of the path.
	if rc, ok := parseRowColumnSuffix(maybePath); ok && rc.Row > 0 {
		v.positioned = &MaybePathWithPosition{
			Path:     line[path.Start : path.End-rc.SuffixLen],
			Position: &RowColumn{Row: rc.Row, Column: rc.Column, SuffixLen: rc.SuffixLen},
			Range:    Range{path.Start, path.End - rc.SuffixLen},
		}
	}

	return v
}

// BaseText is the text of the highest-priority variation.
func (v *MaybePathVariant) BaseText() string {
	r := v.variations[0]
	return v.line[r.Start:r.End]
}

// RelativeVariations projects the relative variations of this variant,
// positioned variation first (it is the most likely open target), each with
// prefixToStrip removed when present.
func (v *MaybePathVariant) RelativeVariations(prefixToStrip string) []MaybePathWithPosition {
	ordered := make([]MaybePathWithPosition, 0, len(v.variations)+1)
	if v.positioned != nil {
		ordered = append(ordered, *v.positioned)
	}
	for _, r := range v.variations {
		ordered = append(ordered, MaybePathWithPosition{Path: v.line[r.Start:r.End], Range: r})
	}

	out := ordered[:0]
	for _, mp := range ordered {
		if isAbsolutePath(mp.Path) {
			continue
		}
		mp.Path = stripPathPrefix(mp.Path, prefixToStrip)
		out = append(out, mp)
	}

	return out
}

// AbsolutizedVariations expands every variation (and the positioned
// variation) into absolute candidates: absolute paths pass through, relative
// ones are joined under each root in caller order, and "~/" is expanded when
// the variant permits it and a home dir is known.
func (v *MaybePathVariant) AbsolutizedVariations(roots []string, homeDir string) []MaybePathWithPosition {
	var out []MaybePathWithPosition
	for _, r := range v.variations {
		out = v.absolutize(out, r, nil, roots, homeDir)
	}
	if v.positioned != nil {
		out = v.absolutize(out, v.positioned.Range, v.positioned.Position, roots, homeDir)
	}
	return out
}

func (v *MaybePathVariant) absolutize(out []MaybePathWithPosition, r Range, pos *RowColumn, roots []string, homeDir string) []MaybePathWithPosition {
	text := v.line[r.Start:r.End]
	if isAbsolutePath(text) {
		return append(out, MaybePathWithPosition{Path: text, Position: pos, Range: r})
	}

	for _, root := range roots {
		out = append(out, MaybePathWithPosition{Path: joinRoot(root, text), Position: pos, Range: r})
	}

	if v.absolutizeHomeDir && homeDir != "" {
		if strings.HasPrefix(text, "~/") || strings.HasPrefix(text, `~\`) {
			out = append(out, MaybePathWithPosition{Path: joinRoot(homeDir, text[2:]), Position: pos, Range: r})
		}
	}

	return out
}
