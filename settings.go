package pathlink

import (
	"fmt"
	"log/slog"
	"regexp"
)

// ParseNavigation maps a settings string to a navigation level.
func ParseNavigation(s string) (Navigation, error) {
	switch s {
	case "", "default":
		return NavigationDefault, nil
	case "advanced":
		return NavigationAdvanced, nil
	case "exhaustive":
		return NavigationExhaustive, nil
	}
	return NavigationDefault, fmt.Errorf("unknown navigation level %q", s)
}

// CompilePathRegexes compiles the host-configured path hyperlink regexes,
// dropping entries that fail to compile or lack a named "path" capture
// group. Dropped entries are logged at debug level; a malformed setting
// never surfaces as an error.
func CompilePathRegexes(patterns []string) []*regexp.Regexp {
	regexes := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			slog.Debug("skipping malformed path regex", "regex", pattern, "err", err)
			continue
		}
		if re.SubexpIndex("path") < 0 {
			slog.Debug("skipping path regex without a 'path' capture group", "regex", pattern)
			continue
		}
		regexes = append(regexes, re)
	}
	return regexes
}
