package recommendations

// Priority tiers, highest first.
const (
	PriorityCritical  = "critical"
	PriorityImportant = "important"
	PrioritySuggested = "suggested"
)

// Categories.
const (
	CategoryMissingSection   = "missing_section"
	CategorySkills           = "skills"
	CategoryActionVerbs      = "action_verbs"
	CategoryATSCompatibility = "ats_compatibility"
	CategorySectionQuality   = "section_quality"
	CategoryJDMatch          = "jd_match"
	CategoryGeneral          = "general"
)

// Recommendation is one actionable message.
type Recommendation struct {
	Priority string `json:"priority"`
	Category string `json:"category"`
	Message  string `json:"message"`
}

// Section is the per-section view the rules need.
type Section struct {
	Name       string
	Present    bool
	Importance string
	Score      int
}

// JobMatch carries the job-description comparison, when one was made.
type JobMatch struct {
	Score             float64
	MissingSkills     []string
	OverlapPercentage float64
}

// Input is the analysis data needed to generate feedback.
type Input struct {
	Sections            []Section
	SkillCount          int
	VerbCount           int
	Compatible          bool
	CompatibilityScore  int
	CompatibilityIssues []string
	ATSScore            float64
	JobMatch            *JobMatch
}
