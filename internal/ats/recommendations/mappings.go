package recommendations

import (
	"fmt"
	"strings"
)

const maxListedMissingSkills = 5

func missingSections(importance, priority, format string) func(Input) []Recommendation {
	return func(in Input) []Recommendation {
		var out []Recommendation
		for _, sec := range in.Sections {
			if sec.Importance != importance || sec.Present {
				continue
			}
			out = append(out, Recommendation{
				Priority: priority,
				Category: CategoryMissingSection,
				Message:  fmt.Sprintf(format, titleCase(sec.Name)),
			})
		}
		return out
	}
}

func fromSkillCount(in Input) []Recommendation {
	switch {
	case in.SkillCount < 5:
		return []Recommendation{{
			Priority: PriorityCritical,
			Category: CategorySkills,
			Message:  "Add more technical skills - aim for at least 8-10 relevant skills",
		}}
	case in.SkillCount < 10:
		return []Recommendation{{
			Priority: PriorityImportant,
			Category: CategorySkills,
			Message:  "Expand your skills section with more relevant technologies",
		}}
	}
	return nil
}

func fromVerbCount(in Input) []Recommendation {
	switch {
	case in.VerbCount < 3:
		return []Recommendation{{
			Priority: PriorityImportant,
			Category: CategoryActionVerbs,
			Message:  "Use stronger action verbs like 'achieved', 'led', 'implemented', 'optimized'",
		}}
	case in.VerbCount < 6:
		return []Recommendation{{
			Priority: PrioritySuggested,
			Category: CategoryActionVerbs,
			Message:  "Increase use of action verbs to make your accomplishments more impactful",
		}}
	}
	return nil
}

func fromCompatibility(in Input) []Recommendation {
	if in.Compatible {
		return nil
	}
	out := make([]Recommendation, 0, len(in.CompatibilityIssues))
	for _, issue := range in.CompatibilityIssues {
		out = append(out, Recommendation{
			Priority: PriorityImportant,
			Category: CategoryATSCompatibility,
			Message:  issue,
		})
	}
	return out
}

// Only experience and skills have tailored advice; other weak sections are
// reported through their observation text instead.
var sectionQualityAdvice = map[string]string{
	"experience": "Expand your Experience section with more detailed accomplishments and metrics",
	"skills":     "List more specific skills and technologies in your Skills section",
}

func fromSectionQuality(in Input) []Recommendation {
	var out []Recommendation
	for _, sec := range in.Sections {
		if !sec.Present || sec.Score >= 60 {
			continue
		}
		msg, ok := sectionQualityAdvice[sec.Name]
		if !ok {
			continue
		}
		out = append(out, Recommendation{
			Priority: PriorityImportant,
			Category: CategorySectionQuality,
			Message:  msg,
		})
	}
	return out
}

func fromJobMatch(in Input) []Recommendation {
	if in.JobMatch == nil {
		return nil
	}
	var out []Recommendation
	if missing := in.JobMatch.MissingSkills; len(missing) > 0 {
		if len(missing) > maxListedMissingSkills {
			missing = missing[:maxListedMissingSkills]
		}
		out = append(out, Recommendation{
			Priority: PriorityCritical,
			Category: CategoryJDMatch,
			Message:  "Add these job-relevant skills if you have them: " + strings.Join(missing, ", "),
		})
	}
	if in.JobMatch.OverlapPercentage < 40 {
		out = append(out, Recommendation{
			Priority: PriorityImportant,
			Category: CategoryJDMatch,
			Message:  "Your resume has limited overlap with the job description - tailor it to match key requirements",
		})
	}
	return out
}

func fromATSScore(in Input) []Recommendation {
	if in.ATSScore >= 60 {
		return nil
	}
	return []Recommendation{
		{
			Priority: PriorityImportant,
			Category: CategoryGeneral,
			Message:  "Use a simple, clean format with clear section headings",
		},
		{
			Priority: PrioritySuggested,
			Category: CategoryGeneral,
			Message:  "Avoid tables, images, and complex formatting that ATS systems may not parse correctly",
		},
	}
}
