package utils

import (
	"strings"
	"unicode/utf8"
)

// OptionLetter returns the identifier of an option string, the text before the first ".".
// An option without a "." is its own identifier.
func OptionLetter(option string) string {
	letter, _, _ := strings.Cut(option, ".")
	return letter
}

// OptionLetters returns the identifiers of every option, in order.
func OptionLetters(options []string) []string {
	letters := make([]string, 0, len(options))
	for _, o := range options {
		letters = append(letters, OptionLetter(o))
	}
	return letters
}

// ContainsString checks if a string slice contains a specific string.
func ContainsString(slice []string, item string) bool {
	for _, a := range slice {
		if a == item {
			return true
		}
	}
	return false
}

// RemoveString returns a copy of slice without any occurrence of item.
func RemoveString(slice []string, item string) []string {
	out := make([]string, 0, len(slice))
	for _, a := range slice {
		if a != item {
			out = append(out, a)
		}
	}
	return out
}

// SameSet reports whether a and b hold the same members, ignoring order.
// Equal length plus every member of a found in b.
func SameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for _, x := range a {
		if !ContainsString(b, x) {
			return false
		}
	}
	return true
}

// Truncate cuts s to at most n runes and appends "..." when it had to cut.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "..."
}
