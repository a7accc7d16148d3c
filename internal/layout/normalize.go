package layout

import (
	"regexp"
	"strings"
)

var (
	reCRLF       = regexp.MustCompile(`\r\n?`)
	reFormFeed   = regexp.MustCompile(`\f`)
	reTrailingWS = regexp.MustCompile(`(?m)[ \t]+$`)
)

// DefaultMaxBlankLines caps consecutive blank lines kept by Normalize.
const DefaultMaxBlankLines = 2

// Normalize is the whitespace pass applied to every page's text, whatever
// produced it. It unifies line endings, drops form feeds, trims the end of
// every line, caps runs of blank lines and removes leading and trailing
// blank lines. Indentation is preserved. Whitespace-only input yields "".
func Normalize(s string) string {
	return normalize(s, DefaultMaxBlankLines)
}

func normalize(s string, maxBlank int) string {
	if s == "" {
		return s
	}
	s = reCRLF.ReplaceAllString(s, "\n")
	s = reFormFeed.ReplaceAllString(s, "")
	s = reTrailingWS.ReplaceAllString(s, "")

	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank := 0
	for _, line := range lines {
		if line == "" {
			blank++
			if len(out) == 0 || blank > maxBlank {
				continue
			}
		} else {
			blank = 0
		}
		out = append(out, line)
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}
