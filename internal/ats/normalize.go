package ats

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Normalized is the cleaned form of a text blob.
type Normalized struct {
	Cleaned  string
	Tokens   []string
	Original string
}

// Tokenizer splits cleaned text into tokens.
type Tokenizer func(string) []string

// Normalizer lower-cases text, strips noise characters, tokenizes and drops
// stop-words. A nil Tokenize falls back to whitespace splitting and a nil
// StopWords set falls back to length-only filtering.
type Normalizer struct {
	Tokenize  Tokenizer
	StopWords map[string]struct{}
}

// DefaultNormalizer uses the built-in tokenizer and English stop-word list.
func DefaultNormalizer() Normalizer {
	return Normalizer{
		Tokenize:  wordTokenize,
		StopWords: englishStopWords,
	}
}

var tokenPattern = regexp.MustCompile(`[a-z0-9][a-z0-9+#]*`)

// wordTokenize keeps symbol suffixes such as "c++" and "c#" attached and
// drops stray punctuation-only fragments.
func wordTokenize(text string) []string {
	return tokenPattern.FindAllString(text, -1)
}

// Normalize never fails; degenerate input yields empty output.
func (n Normalizer) Normalize(text string) Normalized {
	cleaned := cleanText(text)

	var tokens []string
	if n.Tokenize != nil {
		tokens = n.Tokenize(cleaned)
	} else {
		tokens = strings.Fields(cleaned)
	}

	filtered := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if utf8.RuneCountInString(tok) <= 2 {
			continue
		}
		if n.StopWords != nil {
			if _, stop := n.StopWords[tok]; stop {
				continue
			}
		}
		filtered = append(filtered, tok)
	}

	return Normalized{
		Cleaned:  cleaned,
		Tokens:   filtered,
		Original: text,
	}
}

// cleanText lower-cases and replaces every character outside [a-z0-9+#]
// and whitespace with a space.
func cleanText(text string) string {
	lower := strings.ToLower(text)
	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '+', r == '#':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}
	return b.String()
}

// ExpandAbbreviations lower-cases text and rewrites known abbreviations to
// their canonical skill names, one table entry at a time.
func ExpandAbbreviations(text string) string {
	out := strings.ToLower(text)
	for _, a := range abbreviations {
		out = replaceWord(out, a.short, a.full)
	}
	return out
}
