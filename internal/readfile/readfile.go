package readfile

import (
	"os"
	"strings"
)

func ReadLinesNormalized(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	normalized := strings.ReplaceAll(string(data), "\r\n", "\n")
	return strings.Split(normalized, "\n"), nil
}

// Window returns up to height lines centered-ish on the 1-based line, and the
// 1-based number of the first returned line. A quarter of the window sits
// above the target so the context after it dominates.
func Window(lines []string, line, height int) ([]string, int) {
	if height < 1 {
		height = 1
	}
	if line < 1 {
		line = 1
	}
	if line > len(lines) {
		line = len(lines)
	}

	start := line - height/4
	if start < 1 {
		start = 1
	}
	end := start + height - 1
	if end > len(lines) {
		end = len(lines)
		start = end - height + 1
		if start < 1 {
			start = 1
		}
	}

	return lines[start-1 : end], start
}
