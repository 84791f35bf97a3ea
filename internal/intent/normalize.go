package intent

import (
	"regexp"
	"strings"
)

// nonAlnum matches runs of characters outside the canonical [a-z0-9 ]
// alphabet. Applied after lowercasing, so uppercase letters never reach it.
var nonAlnum = regexp.MustCompile(`[^a-z0-9 ]+`)

// Normalize lowercases text, replaces every run of characters outside
// [a-z0-9 ] with a single space, and trims leading/trailing whitespace.
//
// The function is total and idempotent. Folding is ASCII-only: non-ASCII
// letters are dropped (they become spaces), which is a deliberate limitation
// of the command vocabulary rather than a defect — transcripts and playlist
// labels are compared in the same reduced alphabet on both sides.
func Normalize(text string) string {
	return strings.TrimSpace(nonAlnum.ReplaceAllString(strings.ToLower(text), " "))
}
