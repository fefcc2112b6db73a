package intent

import (
	"regexp"
	"strings"
)

var (
	leadingFence  = regexp.MustCompile("(?i)^```(?:json)?\\s*")
	trailingFence = regexp.MustCompile("(?i)\\s*```$")
	edgeBackticks = regexp.MustCompile("^`+|`+$")
	firstObject   = regexp.MustCompile(`(?s)\{.*\}`)
)

// Clean strips markdown fences, stray backticks and surrounding chatter from a
// model reply so that what is left can be decoded as one JSON object.
//
// One pass trims, removes a leading ``` or ```json fence, removes a trailing
// ``` fence, removes backtick runs at either end and, when the text does not
// start with '{', keeps the greedy {...} block if there is one. Passes repeat
// until the text stops changing, which makes Clean idempotent; every pass that
// changes the text shortens it, so this terminates.
func Clean(raw string) string {
	s := raw
	for {
		next := cleanPass(s)
		if next == s {
			return s
		}
		s = next
	}
}

func cleanPass(s string) string {
	s = strings.TrimSpace(s)
	s = leadingFence.ReplaceAllString(s, "")
	s = trailingFence.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	s = edgeBackticks.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "{") {
		if m := firstObject.FindString(s); m != "" {
			s = m
		}
	}
	return s
}
