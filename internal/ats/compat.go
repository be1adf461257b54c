package ats

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// CompatibilityThreshold is the lowest score still considered ATS-compatible.
const CompatibilityThreshold = 70

const (
	tableCharLimit      = 10
	shortLineChars      = 20
	shortLineRatio      = 0.3
	minWords            = 100
	maxWords            = 1500
	penaltyTable        = 20
	penaltyColumns      = 15
	penaltyCapitals     = 10
	penaltyTooShort     = 20
	penaltyTooLong      = 10
	compatibilityBase   = 100
	boxDrawingCharacter = "│┤├┼┬┴╪═║╔╗╚╝"
)

// Issue is one detected formatting problem.
type Issue struct {
	Description string `json:"description"`
	Penalty     int    `json:"penalty"`
}

// CompatibilityReport is the outcome of the formatting checks.
type CompatibilityReport struct {
	IsCompatible bool    `json:"is_compatible"`
	Score        int     `json:"score"`
	Issues       []Issue `json:"issues"`
}

// IssueDescriptions returns the issue texts in detection order.
func (r CompatibilityReport) IssueDescriptions() []string {
	out := make([]string, 0, len(r.Issues))
	for _, is := range r.Issues {
		out = append(out, is.Description)
	}
	return out
}

// IsCompatible reports whether a compatibility score passes.
func IsCompatible(score int) bool {
	return score >= CompatibilityThreshold
}

// CheckCompatibility runs the formatting checks against raw text in a
// fixed order and sums their penalties.
func CheckCompatibility(text string) CompatibilityReport {
	issues := []Issue{}

	if countTableChars(text) > tableCharLimit {
		issues = append(issues, Issue{"Contains table formatting that may not parse well", penaltyTable})
	}

	lines := strings.Split(text, "\n")
	short := 0
	for _, line := range lines {
		n := utf8.RuneCountInString(strings.TrimSpace(line))
		if n > 0 && n < shortLineChars {
			short++
		}
	}
	if float64(short) > float64(len(lines))*shortLineRatio {
		issues = append(issues, Issue{"Multiple short lines detected - avoid multi-column layouts", penaltyColumns})
	}

	if isAllUpper(text) {
		issues = append(issues, Issue{"Excessive capitalization - use mixed case", penaltyCapitals})
	}

	words := len(strings.Fields(text))
	switch {
	case words < minWords:
		issues = append(issues, Issue{"Resume appears too short", penaltyTooShort})
	case words > maxWords:
		issues = append(issues, Issue{"Resume may be too long - consider condensing", penaltyTooLong})
	}

	score := compatibilityBase
	for _, is := range issues {
		score -= is.Penalty
	}
	if score < 0 {
		score = 0
	}
	return CompatibilityReport{
		IsCompatible: IsCompatible(score),
		Score:        score,
		Issues:       issues,
	}
}

func countTableChars(text string) int {
	n := 0
	for _, r := range text {
		if strings.ContainsRune(boxDrawingCharacter, r) {
			n++
		}
	}
	return n
}

// isAllUpper is true when text has at least one cased letter and no
// lower-case ones.
func isAllUpper(text string) bool {
	cased := false
	for _, r := range text {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			cased = true
		}
	}
	return cased
}
