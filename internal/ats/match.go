package ats

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// A term matches only where the characters on both sides of it are not
// word characters (letters, digits, underscore). Terms that begin or end
// with symbols, such as "c++" or "asp.net", follow the same rule.

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func boundedAt(text string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		if isWordRune(r) {
			return false
		}
	}
	if end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		if isWordRune(r) {
			return false
		}
	}
	return true
}

// indexWord returns the byte offset of the first whole-word occurrence of
// term in text at or after from, or -1.
func indexWord(text, term string, from int) int {
	if term == "" {
		return -1
	}
	for from <= len(text)-len(term) {
		i := strings.Index(text[from:], term)
		if i < 0 {
			return -1
		}
		start := from + i
		if boundedAt(text, start, start+len(term)) {
			return start
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		from = start + size
	}
	return -1
}

// containsWord reports whether term occurs in text as a whole word.
// Both arguments are expected to be lower-cased already.
func containsWord(text, term string) bool {
	return indexWord(text, term, 0) >= 0
}

// replaceWord substitutes every non-overlapping whole-word occurrence of
// term, scanning left to right.
func replaceWord(text, term, repl string) string {
	idx := indexWord(text, term, 0)
	if idx < 0 {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for idx >= 0 {
		b.WriteString(text[last:idx])
		b.WriteString(repl)
		last = idx + len(term)
		idx = indexWord(text, term, last)
	}
	b.WriteString(text[last:])
	return b.String()
}
