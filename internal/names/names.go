// Package names normalises identifiers into display labels and derives a
// stable, deterministic ID for decision points. Grounded on the
// teacher's small single-purpose internal packages: one focused
// transformation per file, table-driven tests, no hidden state.
package names

import (
	"strings"
	"unicode"
)

// Humanize turns a snake_case or camelCase identifier into a space-
// separated, title-cased label: fetchOrderData -> "Fetch Order Data",
// withdraw_funds -> "Withdraw Funds".
func Humanize(identifier string) string {
	words := splitWords(identifier)
	for i, w := range words {
		words[i] = titleCase(w)
	}
	return strings.Join(words, " ")
}

// Dehumanize is Humanize's documented inverse: it removes spaces and
// lower-cases every word after the first, reproducing the camelCase form
// for any label built from ASCII letters and digits only.
func Dehumanize(label string) string {
	words := strings.Fields(label)
	if len(words) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(strings.ToLower(words[0]))
	for _, w := range words[1:] {
		b.WriteString(titleCase(strings.ToLower(w)))
	}
	return b.String()
}

func splitWords(identifier string) []string {
	var words []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			words = append(words, cur.String())
			cur.Reset()
		}
	}
	runes := []rune(identifier)
	for i, r := range runes {
		switch {
		case r == '_' || r == '-':
			flush()
		case unicode.IsUpper(r) && i > 0 && !unicode.IsUpper(runes[i-1]) && runes[i-1] != '_' && runes[i-1] != '-':
			flush()
			cur.WriteRune(r)
		case unicode.IsUpper(r) && i > 0 && i+1 < len(runes) && unicode.IsUpper(runes[i-1]) && unicode.IsLower(runes[i+1]):
			flush()
			cur.WriteRune(r)
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return words
}

func titleCase(word string) string {
	if word == "" {
		return word
	}
	runes := []rune(strings.ToLower(word))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// fnv1aOffset and fnv1aPrime are the 32-bit FNV-1a constants. StableID uses
// this fixed, documented hash rather than Go's randomized map hash because
// the resulting ID appears in rendered output and must be reproducible
// across runs and processes.
const (
	fnv1aOffset uint32 = 2166136261
	fnv1aPrime  uint32 = 16777619
)

// StableID derives a deterministic numeric ID from a decision point's
// label via 32-bit FNV-1a.
func StableID(label string) uint32 {
	h := fnv1aOffset
	for i := 0; i < len(label); i++ {
		h ^= uint32(label[i])
		h *= fnv1aPrime
	}
	return h
}
