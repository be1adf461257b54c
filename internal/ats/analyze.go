// Package ats scores a résumé for applicant-tracking-system friendliness
// and, optionally, for its match against a job description.
//
// Every function here is a pure computation over fixed vocabularies; the
// package keeps no state between calls and is safe for concurrent use.
package ats

import (
	"strings"

	"resume-ats/internal/ats/recommendations"
)

// Result is the full report for one résumé.
type Result struct {
	ATSScore        float64                          `json:"ats_score"`
	ScoreBreakdown  Breakdown                        `json:"score_breakdown"`
	Sections        Sections                         `json:"sections"`
	Skills          SkillReport                      `json:"skills"`
	ActionVerbs     VerbReport                       `json:"action_verbs"`
	Compatibility   CompatibilityReport              `json:"ats_compatibility"`
	JDMatchScore    *float64                         `json:"jd_match_score,omitempty"`
	JDAnalysis      *JDAnalysis                      `json:"jd_analysis,omitempty"`
	Recommendations []recommendations.Recommendation `json:"recommendations"`
	Strengths       []string                         `json:"strengths"`
	Summary         string                           `json:"summary"`
	Interpretations Interpretations                  `json:"interpretations"`
}

// Analyzer runs the scoring pipeline with a configurable normalizer.
type Analyzer struct {
	Normalizer Normalizer
}

// NewAnalyzer returns an Analyzer with the default normalizer.
func NewAnalyzer() Analyzer {
	return Analyzer{Normalizer: DefaultNormalizer()}
}

// Analyze is NewAnalyzer().Analyze.
func Analyze(resumeText, jobDescription string) Result {
	return NewAnalyzer().Analyze(resumeText, jobDescription)
}

// Analyze scores resumeText. A blank jobDescription skips the job-match
// part of the report.
func (a Analyzer) Analyze(resumeText, jobDescription string) Result {
	sections := AssessSections(Segment(resumeText))
	resumeSkills := MatchSkills(ExpandAbbreviations(resumeText))
	verbs := newVerbReport(FindActionVerbs(resumeText))
	compat := CheckCompatibility(resumeText)

	breakdown := Breakdown{
		SectionCompleteness: SectionCompleteness(sections),
		SkillDensity:        float64(SkillDensityScore(len(resumeSkills))),
		ActionVerbs:         float64(verbs.Score),
		Compatibility:       float64(compat.Score),
	}
	atsScore := breakdown.ATSScore()
	breakdown.SectionCompleteness = round2(breakdown.SectionCompleteness)
	res := Result{
		ATSScore:       atsScore,
		ScoreBreakdown: breakdown,
		Sections:       sections,
		Skills:         newSkillReport(resumeSkills),
		ActionVerbs:    verbs,
		Compatibility:  compat,
	}
	res.Interpretations.ATSScore = InterpretATS(res.ATSScore)

	input := recommendations.Input{
		Sections:            recommendationSections(sections),
		SkillCount:          res.Skills.Count,
		VerbCount:           verbs.Count,
		Compatible:          compat.IsCompatible,
		CompatibilityScore:  compat.Score,
		CompatibilityIssues: compat.IssueDescriptions(),
		ATSScore:            res.ATSScore,
	}

	if strings.TrimSpace(jobDescription) != "" {
		jdSkills := MatchSkills(ExpandAbbreviations(jobDescription))
		similarity := Similarity(a.Normalizer.Normalize(resumeText), a.Normalizer.Normalize(jobDescription))
		matching, missing, overlap := CompareSkills(resumeSkills, jdSkills)
		score := JDMatchScore(similarity, overlap)
		interp := InterpretJDMatch(score)

		res.JDMatchScore = &score
		res.JDAnalysis = &JDAnalysis{
			Similarity:        similarity,
			MatchingSkills:    matching,
			MissingSkills:     missing,
			OverlapPercentage: overlap,
		}
		res.Interpretations.JDMatchScore = &interp
		input.JobMatch = &recommendations.JobMatch{
			Score:             score,
			MissingSkills:     missing,
			OverlapPercentage: overlap,
		}
	}

	res.Recommendations = recommendations.Generate(input)
	res.Strengths = recommendations.Strengths(input)
	res.Summary = recommendations.Summary(input, res.Strengths, res.Recommendations)
	return res
}

func recommendationSections(sections Sections) []recommendations.Section {
	out := make([]recommendations.Section, 0, len(sections))
	for _, sec := range sections {
		out = append(out, recommendations.Section{
			Name:       string(sec.Name),
			Present:    sec.Present,
			Importance: string(sec.Importance),
			Score:      sec.Score,
		})
	}
	return out
}
