package ats

// Fixed vocabularies. They are built once at init and only read afterwards.

// SectionName identifies one of the résumé sections the analyzer knows about.
type SectionName string

const (
	SectionSkills         SectionName = "skills"
	SectionEducation      SectionName = "education"
	SectionExperience     SectionName = "experience"
	SectionInternships    SectionName = "internships"
	SectionObjective      SectionName = "objective"
	SectionSummary        SectionName = "summary"
	SectionProjects       SectionName = "projects"
	SectionAchievements   SectionName = "achievements"
	SectionCertifications SectionName = "certifications"
	SectionContact        SectionName = "contact"
)

// SectionOrder is the enumeration order used for every per-section output.
var SectionOrder = []SectionName{
	SectionSkills,
	SectionEducation,
	SectionExperience,
	SectionInternships,
	SectionObjective,
	SectionSummary,
	SectionProjects,
	SectionAchievements,
	SectionCertifications,
	SectionContact,
}

// Importance controls how much a section weighs in the completeness score.
type Importance string

const (
	ImportanceCritical  Importance = "critical"
	ImportanceImportant Importance = "important"
	ImportanceOptional  Importance = "optional"
)

var sectionImportance = map[SectionName]Importance{
	SectionSkills:     ImportanceCritical,
	SectionEducation:  ImportanceCritical,
	SectionExperience: ImportanceCritical,
	SectionObjective:  ImportanceImportant,
	SectionSummary:    ImportanceImportant,
	SectionProjects:   ImportanceImportant,
}

// ImportanceOf returns the importance tier of a section.
func ImportanceOf(name SectionName) Importance {
	if imp, ok := sectionImportance[name]; ok {
		return imp
	}
	return ImportanceOptional
}

// Header alternatives per section, as regular expression fragments.
var sectionHeaders = map[SectionName][]string{
	SectionObjective:      {"objective", "career objective", "professional objective"},
	SectionSummary:        {"summary", "professional summary", "profile", "about me"},
	SectionSkills:         {"skills", "technical skills", "core competencies", "expertise", "technologies"},
	SectionEducation:      {"education", "academic background", "qualifications"},
	SectionExperience:     {"experience", "work experience", "professional experience", "employment history"},
	SectionInternships:    {"internships?", "internship experience"},
	SectionProjects:       {"projects?", "academic projects?", "personal projects?"},
	SectionAchievements:   {"achievements?", "accomplishments?", "awards?", "honors?"},
	SectionCertifications: {"certifications?", "certificates?", "licenses?"},
	SectionContact:        {"contact", "contact information", "personal details"},
}

type abbreviation struct {
	short string
	full  string
}

// Applied in this order; earlier entries win on overlap (js rewrites node.js first).
var abbreviations = []abbreviation{
	{"ml", "machine learning"},
	{"ai", "artificial intelligence"},
	{"dl", "deep learning"},
	{"nlp", "natural language processing"},
	{"js", "javascript"},
	{"ts", "typescript"},
	{"py", "python"},
	{"react.js", "react"},
	{"node.js", "nodejs"},
	{"vue.js", "vue"},
	{"angular.js", "angular"},
	{"c++", "cpp"},
	{"c#", "csharp"},
	{"db", "database"},
	{"rdbms", "relational database"},
	{"nosql", "non-relational database"},
	{"aws", "amazon web services"},
	{"gcp", "google cloud platform"},
	{"k8s", "kubernetes"},
	{"ci/cd", "continuous integration continuous deployment"},
	{"devops", "development operations"},
	{"ui/ux", "user interface user experience"},
}

// SkillCategory groups skill terms for reporting.
type SkillCategory string

const (
	CategoryProgramming SkillCategory = "programming"
	CategoryWeb         SkillCategory = "web"
	CategoryDatabase    SkillCategory = "database"
	CategoryCloud       SkillCategory = "cloud"
	CategoryDataScience SkillCategory = "data_science"
	CategoryMobile      SkillCategory = "mobile"
	CategorySoftSkills  SkillCategory = "soft_skills"
)

type skillGroup struct {
	category SkillCategory
	terms    []string
}

var skillGroups = []skillGroup{
	{CategoryProgramming, []string{
		"python", "java", "javascript", "typescript", "c", "cpp", "csharp", "ruby", "php",
		"swift", "kotlin", "go", "rust", "scala", "r", "matlab", "perl", "shell", "bash", "powershell",
	}},
	{CategoryWeb, []string{
		"html", "css", "react", "angular", "vue", "nodejs", "express", "django", "flask", "fastapi",
		"spring", "asp.net", "jquery", "bootstrap", "tailwind", "sass", "webpack", "nextjs", "gatsby",
	}},
	{CategoryDatabase, []string{
		"sql", "mysql", "postgresql", "mongodb", "redis", "cassandra", "oracle", "sqlite",
		"dynamodb", "elasticsearch", "neo4j", "firebase", "mariadb",
	}},
	{CategoryCloud, []string{
		"aws", "azure", "gcp", "google cloud platform", "amazon web services", "docker", "kubernetes",
		"terraform", "ansible", "jenkins", "gitlab", "github actions", "circleci", "heroku",
	}},
	{CategoryDataScience, []string{
		"machine learning", "deep learning", "artificial intelligence", "natural language processing",
		"computer vision", "tensorflow", "pytorch", "keras", "scikit-learn", "pandas", "numpy",
		"matplotlib", "seaborn", "tableau", "power bi", "spark", "hadoop", "data analysis",
	}},
	{CategoryMobile, []string{
		"android", "ios", "react native", "flutter", "xamarin", "swift", "kotlin", "mobile development",
	}},
	{CategorySoftSkills, []string{
		"leadership", "communication", "teamwork", "problem solving", "analytical", "critical thinking",
		"time management", "project management", "agile", "scrum", "collaboration", "presentation",
	}},
}

// skillVocabulary is the flattened, de-duplicated skill list; a term keeps
// the first category it appears under.
var skillVocabulary = flattenSkills(skillGroups)

type skillTerm struct {
	term     string
	category SkillCategory
}

func flattenSkills(groups []skillGroup) []skillTerm {
	seen := make(map[string]bool)
	var out []skillTerm
	for _, g := range groups {
		for _, t := range g.terms {
			if seen[t] {
				continue
			}
			seen[t] = true
			out = append(out, skillTerm{term: t, category: g.category})
		}
	}
	return out
}

var actionVerbs = []string{
	"achieved", "accomplished", "administered", "analyzed", "architected", "automated",
	"built", "collaborated", "created", "delivered", "designed", "developed", "directed",
	"drove", "enhanced", "established", "executed", "generated", "implemented", "improved",
	"increased", "initiated", "launched", "led", "managed", "optimized", "orchestrated",
	"organized", "pioneered", "planned", "produced", "reduced", "resolved", "spearheaded",
	"streamlined", "strengthened", "transformed", "upgraded",
}

// englishStopWords is the common English stop-word list used for token filtering.
var englishStopWords = toSet([]string{
	"i", "me", "my", "myself", "we", "our", "ours", "ourselves", "you", "you're", "you've",
	"you'll", "you'd", "your", "yours", "yourself", "yourselves", "he", "him", "his", "himself",
	"she", "she's", "her", "hers", "herself", "it", "it's", "its", "itself", "they", "them",
	"their", "theirs", "themselves", "what", "which", "who", "whom", "this", "that", "that'll",
	"these", "those", "am", "is", "are", "was", "were", "be", "been", "being", "have", "has",
	"had", "having", "do", "does", "did", "doing", "a", "an", "the", "and", "but", "if", "or",
	"because", "as", "until", "while", "of", "at", "by", "for", "with", "about", "against",
	"between", "into", "through", "during", "before", "after", "above", "below", "to", "from",
	"up", "down", "in", "out", "on", "off", "over", "under", "again", "further", "then", "once",
	"here", "there", "when", "where", "why", "how", "all", "any", "both", "each", "few", "more",
	"most", "other", "some", "such", "no", "nor", "not", "only", "own", "same", "so", "than",
	"too", "very", "s", "t", "can", "will", "just", "don", "don't", "should", "should've", "now",
	"d", "ll", "m", "o", "re", "ve", "y", "ain", "aren", "aren't", "couldn", "couldn't", "didn",
	"didn't", "doesn", "doesn't", "hadn", "hadn't", "hasn", "hasn't", "haven", "haven't", "isn",
	"isn't", "ma", "mightn", "mightn't", "mustn", "mustn't", "needn", "needn't", "shan", "shan't",
	"shouldn", "shouldn't", "wasn", "wasn't", "weren", "weren't", "won", "won't", "wouldn",
	"wouldn't",
})

// StopWords returns a copy of the built-in English stop-word set.
func StopWords() map[string]struct{} {
	out := make(map[string]struct{}, len(englishStopWords))
	for w := range englishStopWords {
		out[w] = struct{}{}
	}
	return out
}

func toSet(words []string) map[string]struct{} {
	out := make(map[string]struct{}, len(words))
	for _, w := range words {
		out[w] = struct{}{}
	}
	return out
}
