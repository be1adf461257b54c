package recommendations

import (
	"fmt"
	"strconv"
	"strings"
)

// Strengths lists what the résumé already does well: strong sections
// first, then skills, verbs and format.
func Strengths(in Input) []string {
	out := []string{}
	for _, sec := range in.Sections {
		if sec.Present && sec.Score >= 80 {
			out = append(out, fmt.Sprintf("Strong %s section", titleCase(sec.Name)))
		}
	}
	if in.SkillCount >= 10 {
		out = append(out, fmt.Sprintf("Comprehensive skills coverage (%d skills identified)", in.SkillCount))
	}
	if in.VerbCount >= 8 {
		out = append(out, fmt.Sprintf("Excellent use of action verbs (%d strong verbs)", in.VerbCount))
	}
	if in.CompatibilityScore >= 90 {
		out = append(out, "Highly ATS-compatible format")
	}
	return out
}

// Summary builds the narrative paragraph from the scores, the first
// strength and the first critical recommendation.
func Summary(in Input, strengths []string, recs []Recommendation) string {
	parts := make([]string, 0, 4)

	switch {
	case in.ATSScore >= 75:
		parts = append(parts, "Your resume is well-optimized for ATS systems.")
	case in.ATSScore >= 60:
		parts = append(parts, "Your resume is generally ATS-friendly with room for improvement.")
	default:
		parts = append(parts, "Your resume needs significant improvements for ATS compatibility.")
	}

	if in.JobMatch != nil {
		score := formatPercent(in.JobMatch.Score)
		switch {
		case in.JobMatch.Score >= 70:
			parts = append(parts, fmt.Sprintf("It shows a strong match (%s%%) with the job description.", score))
		case in.JobMatch.Score >= 50:
			parts = append(parts, fmt.Sprintf("It has a moderate match (%s%%) with the job description.", score))
		default:
			parts = append(parts, fmt.Sprintf("It has limited alignment (%s%%) with the job description.", score))
		}
	}

	if len(strengths) > 0 {
		parts = append(parts, "Key strength: "+strengths[0]+".")
	}

	for _, r := range recs {
		if r.Priority == PriorityCritical {
			parts = append(parts, "Priority action: "+r.Message+".")
			break
		}
	}

	return strings.Join(parts, " ")
}

// formatPercent prints a score the way it appears in reports: shortest
// form, always with a decimal part ("40.0", "33.33").
func formatPercent(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
