package internal

import (
	"regexp"
	"strings"
)

var tickerJunk = regexp.MustCompile(`[^A-Z0-9.\-]`)

// SanitizeTicker upcases a ticker and strips dollar signs, spaces, and other
// junk that tends to ride along in snapshot files and pick lists.
func SanitizeTicker(ticker string) string {
	return tickerJunk.ReplaceAllString(strings.ToUpper(ticker), "")
}
