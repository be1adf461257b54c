package ats

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-ats/internal/ats/recommendations"
)

const skillsOnlyResume = "Skills\nPython, Java, SQL, AWS, Docker, React, Node.js, MongoDB, Git, Linux\n"

func TestAnalyzeSkillsOnlyResume(t *testing.T) {
	res := Analyze(skillsOnlyResume, "")

	require.Len(t, res.Sections, 10)
	for _, sec := range res.Sections {
		if sec.Name == SectionSkills {
			assert.True(t, sec.Present)
			assert.Equal(t, 90, sec.Score)
			assert.Equal(t, "Strong technical skills listed", sec.Observation)
			continue
		}
		assert.False(t, sec.Present, sec.Name)
		assert.Equal(t, 0, sec.Score, sec.Name)
		assert.Equal(t, "Section missing", sec.Observation, sec.Name)
	}

	assert.Equal(t, []string{"python", "java", "javascript", "react", "sql", "mongodb", "amazon web services", "docker"}, res.Skills.Found)
	assert.Equal(t, 65, res.Compatibility.Score)
	assert.False(t, res.Compatibility.IsCompatible)
	assert.Equal(t, 16.98, res.ScoreBreakdown.SectionCompleteness)
	assert.Equal(t, 42.34, res.ATSScore)
	assert.Equal(t, "fair", res.Interpretations.ATSScore.Level)
	assert.Nil(t, res.JDMatchScore)
	assert.Nil(t, res.JDAnalysis)
	assert.Nil(t, res.Interpretations.JDMatchScore)

	require.Len(t, res.Recommendations, 11)
	assert.Equal(t, recommendations.Recommendation{
		Priority: "critical",
		Category: "missing_section",
		Message:  "Add a Education section - this is essential for ATS parsing",
	}, res.Recommendations[0])
	assert.Equal(t, "Add a Experience section - this is essential for ATS parsing", res.Recommendations[1].Message)
	assert.Equal(t, "suggested", res.Recommendations[10].Priority)

	assert.Equal(t, []string{"Strong Skills section"}, res.Strengths)
	assert.Equal(t,
		"Your resume needs significant improvements for ATS compatibility. "+
			"Key strength: Strong Skills section. "+
			"Priority action: Add a Education section - this is essential for ATS parsing.",
		res.Summary)
}

func TestAnalyzeJobDescriptionOverlap(t *testing.T) {
	res := Analyze("Skills\nPython scripting for reports\n", "We need Python, SQL and AWS experience.")

	require.NotNil(t, res.JDAnalysis)
	assert.Equal(t, []string{"python"}, res.JDAnalysis.MatchingSkills)
	assert.Equal(t, []string{"sql", "amazon web services"}, res.JDAnalysis.MissingSkills)
	assert.Equal(t, 33.33, res.JDAnalysis.OverlapPercentage)

	require.NotNil(t, res.JDMatchScore)
	assert.GreaterOrEqual(t, *res.JDMatchScore, 0.0)
	assert.LessOrEqual(t, *res.JDMatchScore, 100.0)
	require.NotNil(t, res.Interpretations.JDMatchScore)

	var jdRecs []recommendations.Recommendation
	for _, r := range res.Recommendations {
		if r.Category == recommendations.CategoryJDMatch {
			jdRecs = append(jdRecs, r)
		}
	}
	require.Len(t, jdRecs, 2)
	assert.Equal(t, "critical", jdRecs[0].Priority)
	assert.Equal(t, "Add these job-relevant skills if you have them: sql, amazon web services", jdRecs[0].Message)
	assert.Equal(t, "important", jdRecs[1].Priority)
}

func TestAnalyzeJobDescriptionWithoutSkills(t *testing.T) {
	res := Analyze(skillsOnlyResume, "Friendly office looking for a great colleague.")
	require.NotNil(t, res.JDAnalysis)
	assert.Equal(t, 0.0, res.JDAnalysis.OverlapPercentage)
	assert.Empty(t, res.JDAnalysis.MissingSkills)
	assert.Empty(t, res.JDAnalysis.MatchingSkills)
}

func TestAnalyzeBlankJobDescriptionIsSkipped(t *testing.T) {
	res := Analyze(skillsOnlyResume, "   \n\t ")
	assert.Nil(t, res.JDMatchScore)
	assert.Nil(t, res.JDAnalysis)
}

func TestAnalyzeIsIdempotent(t *testing.T) {
	jd := "Looking for a Go engineer with Kubernetes, PostgreSQL and AWS experience. CI/CD a plus."
	first, err := json.Marshal(Analyze(fullResume, jd))
	require.NoError(t, err)
	second, err := json.Marshal(Analyze(fullResume, jd))
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestAnalyzeScoresStayInRange(t *testing.T) {
	inputs := []string{
		"",
		"x",
		strings.Repeat("│", 500),
		strings.Repeat("LED ", 2000),
		fullResume,
		skillsOnlyResume,
	}
	for _, in := range inputs {
		for _, jd := range []string{"", "x", fullResume} {
			res := Analyze(in, jd)
			assert.GreaterOrEqual(t, res.ATSScore, 0.0)
			assert.LessOrEqual(t, res.ATSScore, 100.0)
			assert.Len(t, res.Sections, 10)
			if res.JDMatchScore != nil {
				assert.GreaterOrEqual(t, *res.JDMatchScore, 0.0)
				assert.LessOrEqual(t, *res.JDMatchScore, 100.0)
			}
		}
	}
}

func TestAnalyzeFullResumeAgainstItself(t *testing.T) {
	res := Analyze(fullResume, fullResume)
	require.NotNil(t, res.JDAnalysis)
	assert.Equal(t, 100.0, res.JDAnalysis.Similarity)
	assert.Equal(t, 100.0, res.JDAnalysis.OverlapPercentage)
	assert.Equal(t, 100.0, *res.JDMatchScore)
	assert.Equal(t, "excellent", res.Interpretations.JDMatchScore.Level)
}

const fullResume = `Alex Morgan
alex@example.com

Professional Summary
Platform engineer who designed and delivered payment systems used by millions of customers across Europe.

Skills
Go, Python, PostgreSQL, Redis, Docker, Kubernetes, Terraform, AWS, Kafka, gRPC, Linux, Git

Experience
Senior Engineer, Northwind Payments, 2019 - 2024
- Led a team of six engineers and architected the settlement platform.
- Implemented idempotent ledger writes and reduced reconciliation time by 70 percent.
- Optimized PostgreSQL queries and improved p99 latency from 800ms to 120ms.
- Automated deployments with Terraform and launched blue-green releases on Kubernetes.
Engineer, Contoso Retail, 2016 - 2019
- Built inventory services in Go and Python, developed event pipelines with Kafka.
- Collaborated with product managers and streamlined the release process.

Education
BSc Computer Science, University of Leeds, 2012 - 2016, First Class Honours, modules in distributed systems and databases

Projects
Open source contributor to a Go rate limiting library and a PostgreSQL migration tool used by many teams.
`
