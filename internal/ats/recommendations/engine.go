package recommendations

import (
	"sort"
	"strings"
)

// rule inspects the input and emits zero or more recommendations.
type rule struct {
	name  string
	apply func(Input) []Recommendation
}

// rules run in this order; the order is the tie-break within a priority tier.
var rules = []rule{
	{"critical_sections", missingSections("critical", PriorityCritical, "Add a %s section - this is essential for ATS parsing")},
	{"important_sections", missingSections("important", PriorityImportant, "Consider adding a %s section to strengthen your resume")},
	{"skill_count", fromSkillCount},
	{"action_verbs", fromVerbCount},
	{"ats_compatibility", fromCompatibility},
	{"section_quality", fromSectionQuality},
	{"jd_match", fromJobMatch},
	{"general", fromATSScore},
}

// Generate evaluates every rule and returns the recommendations ordered by
// priority. Order within a tier is rule order, then emission order.
func Generate(input Input) []Recommendation {
	candidates := make([]Recommendation, 0, 16)
	for _, r := range rules {
		candidates = append(candidates, r.apply(input)...)
	}
	out := dedupe(candidates)
	sort.SliceStable(out, func(i, j int) bool {
		return priorityRank(out[i].Priority) < priorityRank(out[j].Priority)
	})
	return out
}

func priorityRank(priority string) int {
	switch strings.ToLower(strings.TrimSpace(priority)) {
	case PriorityCritical:
		return 0
	case PriorityImportant:
		return 1
	case PrioritySuggested:
		return 2
	default:
		return 3
	}
}

// dedupe drops repeats of the same priority, category and message, keeping the first.
func dedupe(items []Recommendation) []Recommendation {
	seen := make(map[Recommendation]bool, len(items))
	out := make([]Recommendation, 0, len(items))
	for _, item := range items {
		if seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}

// titleCase upper-cases the first letter of each word.
func titleCase(s string) string {
	words := strings.Fields(strings.ReplaceAll(s, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
