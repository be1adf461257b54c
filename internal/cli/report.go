package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"resume-ats/internal/analyses"
	"resume-ats/internal/ats"
)

// writeReport prints a human readable report for one analysis.
func writeReport(out io.Writer, a analyses.Analysis) error {
	r := a.Result
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "File:\t%s\n", a.FileName)
	fmt.Fprintf(tw, "ATS score:\t%.2f\t%s\n", r.ATSScore, r.Interpretations.ATSScore.Label)
	if r.JDMatchScore != nil {
		label := ""
		if r.Interpretations.JDMatchScore != nil {
			label = r.Interpretations.JDMatchScore.Label
		}
		fmt.Fprintf(tw, "JD match:\t%.2f\t%s\n", *r.JDMatchScore, label)
	}
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "BREAKDOWN")
	fmt.Fprintf(tw, "  sections\t%.2f\n", r.ScoreBreakdown.SectionCompleteness)
	fmt.Fprintf(tw, "  skill density\t%.2f\n", r.ScoreBreakdown.SkillDensity)
	fmt.Fprintf(tw, "  action verbs\t%.2f\n", r.ScoreBreakdown.ActionVerbs)
	fmt.Fprintf(tw, "  compatibility\t%.2f\n", r.ScoreBreakdown.Compatibility)
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "SECTION\tPRESENT\tSCORE\tIMPORTANCE")
	for _, s := range r.Sections {
		present := "no"
		if s.Present {
			present = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", s.Name, present, s.Score, s.Importance)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nSkills (%d): %s\n", r.Skills.Count, joinOrDash(r.Skills.Found))
	for _, cat := range sortedCategories(r.Skills.ByCategory) {
		fmt.Fprintf(out, "  %s: %s\n", cat, strings.Join(r.Skills.ByCategory[cat], ", "))
	}
	fmt.Fprintf(out, "Action verbs (%d): %s\n", r.ActionVerbs.Count, joinOrDash(r.ActionVerbs.Found))
	if r.ActionVerbs.Feedback != "" {
		fmt.Fprintf(out, "  %s\n", r.ActionVerbs.Feedback)
	}

	fmt.Fprintf(out, "\nFormatting score: %d\n", r.Compatibility.Score)
	for _, issue := range r.Compatibility.Issues {
		fmt.Fprintf(out, "  - %s (-%d)\n", issue.Description, issue.Penalty)
	}

	if jd := r.JDAnalysis; jd != nil {
		fmt.Fprintf(out, "\nJob description overlap: %.2f%%\n", jd.OverlapPercentage)
		fmt.Fprintf(out, "  matching: %s\n", joinOrDash(jd.MatchingSkills))
		fmt.Fprintf(out, "  missing:  %s\n", joinOrDash(jd.MissingSkills))
	}

	if len(r.Recommendations) > 0 {
		fmt.Fprintln(out, "\nRecommendations:")
		for _, rec := range r.Recommendations {
			fmt.Fprintf(out, "  [%s] %s\n", rec.Priority, rec.Message)
		}
	}
	if len(r.Strengths) > 0 {
		fmt.Fprintln(out, "\nStrengths:")
		for _, s := range r.Strengths {
			fmt.Fprintf(out, "  + %s\n", s)
		}
	}
	if r.Summary != "" {
		fmt.Fprintf(out, "\n%s\n", r.Summary)
	}
	return nil
}

func sortedCategories(m map[ats.SkillCategory][]string) []ats.SkillCategory {
	out := make([]ats.SkillCategory, 0, len(m))
	for cat := range m {
		out = append(out, cat)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}
