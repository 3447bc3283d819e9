// Package textsearch holds the case-insensitive matching shared by list searches.
package textsearch

import (
	"strings"

	"golang.org/x/text/cases"
)

// Fold returns the Unicode case-folded form of s, so "ÉCOLE" and "école" compare equal
func Fold(s string) string {
	// Casers may carry state, so one is built per call
	return cases.Fold().String(s)
}

// Normalize trims and folds a user-entered query
func Normalize(query string) string {
	return Fold(strings.TrimSpace(query))
}

// ContainsAny reports whether any field contains the already-normalized needle
func ContainsAny(needle string, fields ...string) bool {
	if needle == "" {
		return true
	}
	for _, f := range fields {
		if f != "" && strings.Contains(Fold(f), needle) {
			return true
		}
	}
	return false
}
