// Package strings provides the list normalization used for data categories
// and operation names.
package strings

import (
	"strings"
)

// DedupeAndTrim removes duplicates and blanks, trimming each element.
// Order of first occurrence is preserved.
func DedupeAndTrim(values []string) []string {
	return dedupe(values, strings.TrimSpace)
}

// DedupeAndTrimLower is DedupeAndTrim with case folding, for category and
// operation names supplied by callers.
func DedupeAndTrimLower(values []string) []string {
	return dedupe(values, func(v string) string {
		return strings.ToLower(strings.TrimSpace(v))
	})
}

func dedupe(values []string, normalize func(string) string) []string {
	if len(values) == 0 {
		return values
	}
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		n := normalize(v)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		result = append(result, n)
	}
	return result
}

// Subtract returns the elements of universe not present in remove, in
// universe order. Used to derive retained categories from erased ones.
func Subtract(universe, remove []string) []string {
	drop := make(map[string]struct{}, len(remove))
	for _, r := range remove {
		drop[r] = struct{}{}
	}
	result := make([]string, 0, len(universe))
	for _, u := range universe {
		if _, ok := drop[u]; !ok {
			result = append(result, u)
		}
	}
	return result
}
