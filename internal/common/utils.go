package common

import "strings"

// FirstContained returns the first candidate that occurs in s, compared
// case-insensitively. The boolean is false when nothing matched.
func FirstContained(s string, candidates ...string) (string, bool) {
	lower := strings.ToLower(s)
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(c)) {
			return c, true
		}
	}
	return "", false
}
