package main

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// highlightLines renders each preview line through chroma, keyed off the
// target's filename. Unknown file types come back unstyled.
func highlightLines(path string, lines []string, theme string) []string {
	lexer := lexers.Match(path)
	if lexer == nil {
		return lines
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(theme)
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		return lines
	}

	out := make([]string, len(lines))
	for i, line := range lines {
		it, err := lexer.Tokenise(nil, line)
		if err != nil {
			out[i] = line
			continue
		}
		var b strings.Builder
		if err := formatter.Format(&b, style, it); err != nil {
			out[i] = line
			continue
		}
		// Tokenising appends a newline; the pane joins lines itself.
		out[i] = strings.TrimRight(b.String(), "\n")
	}
	return out
}
