package ats

import "strings"

// SkillFinding is a vocabulary skill found in a text.
type SkillFinding struct {
	Skill    string        `json:"skill"`
	Category SkillCategory `json:"category"`
}

// SkillReport summarises the skills found in the résumé.
type SkillReport struct {
	Found      []string                   `json:"found_skills"`
	Count      int                        `json:"skill_count"`
	ByCategory map[SkillCategory][]string `json:"by_category"`
}

// MatchSkills returns the vocabulary skills present in text, in vocabulary
// order. Callers pass abbreviation-expanded text so "ml" and "machine
// learning" both land on the same skill.
func MatchSkills(text string) []SkillFinding {
	lower := strings.ToLower(text)
	var out []SkillFinding
	for _, s := range skillVocabulary {
		if containsWord(lower, s.term) {
			out = append(out, SkillFinding{Skill: s.term, Category: s.category})
		}
	}
	return out
}

// SkillDensityScore maps a skill count to its score bucket.
func SkillDensityScore(count int) int {
	switch {
	case count >= 15:
		return 95
	case count >= 10:
		return 80
	case count >= 5:
		return 60
	default:
		return 30
	}
}

func newSkillReport(findings []SkillFinding) SkillReport {
	report := SkillReport{
		Found:      skillNames(findings),
		Count:      len(findings),
		ByCategory: make(map[SkillCategory][]string),
	}
	for _, f := range findings {
		report.ByCategory[f.Category] = append(report.ByCategory[f.Category], f.Skill)
	}
	return report
}

func skillNames(findings []SkillFinding) []string {
	out := make([]string, 0, len(findings))
	for _, f := range findings {
		out = append(out, f.Skill)
	}
	return out
}
