package pathlink

import (
	"log/slog"
	"regexp"
	"strings"
)

// Path separators recognized on every host OS. Terminal output mixes both
// freely (git on Windows, WSL, cross-compiled tool output).
const mainSeparators = `/\`

// wordPattern matches a maximal run of path-friendly characters. Go's \w is
// ASCII-only, so letters and digits are spelled out as Unicode classes.
const wordPattern = `[$+\p{L}\p{N}_.\[\]:/\\@~(),-]+`

var wordRe = regexp.MustCompile(wordPattern)

// Some tools output "filename:line:col:message" (Ruby) or
// "filename(line,col):message" (MSVC). The word up to its last colon is
// treated as a maybe path; the position suffix is parsed later.
var preapprovedPathRegexes = []*regexp.Regexp{
	regexp.MustCompile(`(?P<path>` + wordPattern + `):`),
}

// commonSurroundingSymbols are pairs that often wrap a path on a line.
var commonSurroundingSymbols = []struct{ open, close byte }{
	{'"', '"'},
	{'\'', '\''},
	{'[', ']'},
	{'(', ')'},
}

// A Range is a half-open byte range [Start, End) within a captured line.
type Range struct {
	Start int
	End   int
}

func (r Range) Len() int { return r.End - r.Start }

func (r Range) Contains(i int) bool { return i >= r.Start && i < r.End }

// longestSurroundingSymbols returns the longest range of matching surrounding
// symbols on line which contains word. The first occurrence of the opener and
// the last occurrence of the closer bound the candidate interval.
func longestSurroundingSymbols(line string, word Range) (Range, bool) {
	var longest Range
	found := false

	for _, pair := range commonSurroundingSymbols {
		first := strings.IndexByte(line, pair.open)
		last := strings.LastIndexByte(line, pair.close)
		if first < 0 || last < 0 || first >= last {
			continue
		}
		current := Range{first, last + 1}
		if !current.Contains(word.Start) || !current.Contains(word.End-1) {
			continue
		}
		if !found || current.Len() > longest.Len() {
			longest = current
			found = true
		}
	}

	return longest, found
}

// pathRegexMatch returns the range of the first "path" capture whose start or
// end falls within the hovered word. Regexes lacking the capture are skipped;
// they should have been filtered out at load time.
func pathRegexMatch(line string, hovered Range, regexes []*regexp.Regexp) (Range, bool) {
	for _, re := range regexes {
		idx := re.SubexpIndex("path")
		if idx < 0 {
			slog.Debug("path regex lacks a 'path' capture group", "regex", re.String())
			continue
		}
		loc := re.FindStringSubmatchIndex(line)
		if loc == nil || loc[2*idx] < 0 {
			continue
		}
		capture := Range{loc[2*idx], loc[2*idx+1]}
		if hovered.Contains(capture.Start) || hovered.Contains(capture.End) {
			return capture, true
		}
	}

	return Range{}, false
}

// isAbsolutePath reports whether the text spells an absolute path on any
// supported OS: a leading separator or a drive letter prefix.
func isAbsolutePath(s string) bool {
	if s == "" {
		return false
	}
	if s[0] == '/' || s[0] == '\\' {
		return true
	}
	if len(s) >= 3 && s[1] == ':' && (s[2] == '/' || s[2] == '\\') {
		c := s[0]
		return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
	}
	return false
}

// joinRoot joins without cleaning: probed paths must stay byte-identical to
// what the terminal displayed.
func joinRoot(root, rel string) string {
	if root == "" {
		return rel
	}
	if c := root[len(root)-1]; c == '/' || c == '\\' {
		return root + rel
	}
	return root + "/" + rel
}

// stripPathPrefix removes prefix from p when p starts with it on a component
// boundary. Returns p unchanged otherwise.
func stripPathPrefix(p, prefix string) string {
	if prefix == "" || !strings.HasPrefix(p, prefix) {
		return p
	}
	rest := p[len(prefix):]
	if rest == "" {
		return ""
	}
	if rest[0] == '/' || rest[0] == '\\' {
		return rest[1:]
	}
	if c := prefix[len(prefix)-1]; c == '/' || c == '\\' {
		return rest
	}
	return p
}
