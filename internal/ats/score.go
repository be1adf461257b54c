package ats

import "math"

const (
	weightSections      = 0.30
	weightSkillDensity  = 0.25
	weightActionVerbs   = 0.20
	weightCompatibility = 0.25

	weightSimilarity   = 0.60
	weightSkillOverlap = 0.40
)

var importanceWeight = map[Importance]float64{
	ImportanceCritical:  10,
	ImportanceImportant: 5,
	ImportanceOptional:  2,
}

// Breakdown holds the four weighted components of the ATS score.
type Breakdown struct {
	SectionCompleteness float64 `json:"section_completeness"`
	SkillDensity        float64 `json:"skill_density"`
	ActionVerbs         float64 `json:"action_verbs"`
	Compatibility       float64 `json:"compatibility"`
}

// ATSScore blends the components with fixed weights.
func (b Breakdown) ATSScore() float64 {
	score := weightSections*b.SectionCompleteness +
		weightSkillDensity*b.SkillDensity +
		weightActionVerbs*b.ActionVerbs +
		weightCompatibility*b.Compatibility
	return clampScore(round2(score))
}

// SectionCompleteness is the importance-weighted mean of section scores;
// absent sections contribute 0.
func SectionCompleteness(sections Sections) float64 {
	var total, weights float64
	for _, sec := range sections {
		w := importanceWeight[sec.Importance]
		weights += w
		total += w * float64(sec.Score)
	}
	if weights == 0 {
		return 0
	}
	return total / weights
}

// JDAnalysis compares the résumé against a job description.
type JDAnalysis struct {
	Similarity        float64  `json:"tfidf_similarity"`
	MatchingSkills    []string `json:"matching_skills"`
	MissingSkills     []string `json:"missing_skills"`
	OverlapPercentage float64  `json:"overlap_percentage"`
}

// CompareSkills splits job-description skills into those the résumé has
// and those it lacks, keeping the job description's vocabulary order.
func CompareSkills(resume, jd []SkillFinding) (matching, missing []string, overlap float64) {
	have := make(map[string]bool, len(resume))
	for _, f := range resume {
		have[f.Skill] = true
	}
	matching, missing = []string{}, []string{}
	for _, f := range jd {
		if have[f.Skill] {
			matching = append(matching, f.Skill)
		} else {
			missing = append(missing, f.Skill)
		}
	}
	if len(jd) == 0 {
		return matching, missing, 0
	}
	overlap = round2(float64(len(matching)) / float64(len(jd)) * 100)
	return matching, missing, clampScore(overlap)
}

// JDMatchScore blends similarity and skill overlap with fixed weights.
func JDMatchScore(similarity, overlap float64) float64 {
	return clampScore(round2(weightSimilarity*similarity + weightSkillOverlap*overlap))
}

// Interpretation is a banded, human-readable reading of a score.
type Interpretation struct {
	Level string `json:"level"`
	Label string `json:"label"`
}

// Interpretations holds the readings of the ATS and job-match scores.
type Interpretations struct {
	ATSScore     Interpretation  `json:"ats_score"`
	JDMatchScore *Interpretation `json:"jd_match_score,omitempty"`
}

// InterpretATS bands an ATS score.
func InterpretATS(score float64) Interpretation {
	switch {
	case score >= 80:
		return Interpretation{"excellent", "Excellent - Your resume is highly ATS-compatible"}
	case score >= 60:
		return Interpretation{"good", "Good - Your resume should pass most ATS systems"}
	case score >= 40:
		return Interpretation{"fair", "Fair - Consider improvements to increase ATS compatibility"}
	default:
		return Interpretation{"poor", "Needs Improvement - Significant changes recommended"}
	}
}

// InterpretJDMatch bands a job-match score. Its thresholds differ from the ATS bands.
func InterpretJDMatch(score float64) Interpretation {
	switch {
	case score >= 75:
		return Interpretation{"excellent", "Strong Match - Your resume aligns well with the job description"}
	case score >= 60:
		return Interpretation{"good", "Good Match - Your resume is relevant to the position"}
	case score >= 40:
		return Interpretation{"fair", "Moderate Match - Consider highlighting relevant skills"}
	default:
		return Interpretation{"poor", "Weak Match - Your resume may not align with this position"}
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clampScore(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}
