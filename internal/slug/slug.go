// Package slug turns industry names into lowercase dash-separated keys for
// object paths and routing keys.
package slug

import (
	"regexp"
	"strings"
)

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Make lowercases s and collapses everything else to single dashes. A name
// with no letters or digits becomes "unknown".
func Make(s string) string {
	out := nonSlug.ReplaceAllString(strings.ToLower(s), "-")
	out = strings.Trim(out, "-")
	if out == "" {
		return "unknown"
	}
	return out
}
