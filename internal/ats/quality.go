package ats

import (
	"fmt"
	"regexp"
)

var skillDelimiters = regexp.MustCompile(`[,\n•\-]`)

// AssessSections scores every present section with its section-specific
// heuristic. Absent sections keep score 0.
func AssessSections(sections Sections) Sections {
	out := make(Sections, len(sections))
	for i, sec := range sections {
		out[i] = assessSection(sec)
	}
	return out
}

func assessSection(sec Section) Section {
	if !sec.Present {
		sec.Score = 0
		sec.Observation = "Section missing"
		sec.WordCount = 0
		return sec
	}
	words := sec.WordCount
	switch sec.Name {
	case SectionSkills:
		items := len(skillDelimiters.FindAllStringIndex(sec.Content, -1)) + 1
		switch {
		case items >= 10:
			sec.Score, sec.Observation = 90, "Strong technical skills listed"
		case items >= 5:
			sec.Score, sec.Observation = 70, "Good skills coverage"
		default:
			sec.Score, sec.Observation = 50, "Limited skills listed"
		}
	case SectionExperience, SectionInternships:
		switch {
		case words >= 100:
			sec.Score, sec.Observation = 90, "Well-detailed experience"
		case words >= 50:
			sec.Score, sec.Observation = 70, "Adequate experience details"
		default:
			sec.Score, sec.Observation = 50, "Brief experience description"
		}
	case SectionEducation:
		if words >= 20 {
			sec.Score, sec.Observation = 85, "Complete education details"
		} else {
			sec.Score, sec.Observation = 60, "Basic education info"
		}
	case SectionProjects, SectionAchievements:
		if words >= 50 {
			sec.Score, sec.Observation = 85, fmt.Sprintf("Strong %s section", sec.Name)
		} else {
			sec.Score, sec.Observation = 60, fmt.Sprintf("Brief %s description", sec.Name)
		}
	default:
		if words >= 20 {
			sec.Score = 70
		} else {
			sec.Score = 50
		}
		sec.Observation = "Section present"
	}
	return sec
}
