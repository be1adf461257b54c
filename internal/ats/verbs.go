package ats

import "strings"

// VerbReport lists the strong action verbs used in the résumé.
type VerbReport struct {
	Found    []string `json:"found_verbs"`
	Count    int      `json:"verb_count"`
	Score    int      `json:"score"`
	Feedback string   `json:"feedback"`
}

// FindActionVerbs scans raw text (not abbreviation-expanded) for vocabulary
// verbs and returns them in vocabulary order.
func FindActionVerbs(text string) []string {
	lower := strings.ToLower(text)
	var out []string
	for _, v := range actionVerbs {
		if containsWord(lower, v) {
			out = append(out, v)
		}
	}
	return out
}

// ActionVerbScore maps a verb count to its score bucket and feedback line.
func ActionVerbScore(count int) (int, string) {
	switch {
	case count >= 10:
		return 95, "Excellent use of action verbs"
	case count >= 6:
		return 80, "Good action verb usage"
	case count >= 3:
		return 60, "Moderate action verb usage"
	default:
		return 30, "Limited action verbs"
	}
}

func newVerbReport(found []string) VerbReport {
	score, feedback := ActionVerbScore(len(found))
	if found == nil {
		found = []string{}
	}
	return VerbReport{
		Found:    found,
		Count:    len(found),
		Score:    score,
		Feedback: feedback,
	}
}
