package ats

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentAlwaysReturnsEverySection(t *testing.T) {
	for _, text := range []string{"", "   \n\n", "no headers here at all", "SKILLS\nGo, Rust, SQL, Docker"} {
		sections := Segment(text)
		require.Len(t, sections, len(SectionOrder))
		for i, sec := range sections {
			assert.Equal(t, SectionOrder[i], sec.Name)
		}
	}
}

func TestSegmentSplitsOnHeaders(t *testing.T) {
	text := "Jane Doe\n" +
		"Professional Summary\nBackend engineer with eight years of platform work.\n" +
		"Technical Skills:\nGo, Python, PostgreSQL, Kafka\n" +
		"Work Experience\nAcme Corp 2019-2024 built billing services\n" +
		"Education\nBSc Computer Science, State University\n"

	sections := Segment(text)

	summary, _ := sections.Get(SectionSummary)
	assert.True(t, summary.Present)
	assert.Equal(t, "Backend engineer with eight years of platform work.", summary.Content)

	skills, _ := sections.Get(SectionSkills)
	assert.True(t, skills.Present)
	assert.Equal(t, "Go, Python, PostgreSQL, Kafka", skills.Content)

	exp, _ := sections.Get(SectionExperience)
	assert.Equal(t, "Acme Corp 2019-2024 built billing services", exp.Content)
	assert.Equal(t, 6, exp.WordCount)

	edu, _ := sections.Get(SectionEducation)
	assert.Equal(t, "BSc Computer Science, State University", edu.Content)

	contact, _ := sections.Get(SectionContact)
	assert.False(t, contact.Present)
	assert.Equal(t, "Section missing", contact.Observation)
}

func TestSegmentInlineHeaderTextIsDropped(t *testing.T) {
	sections := Segment("Skills: Go, Python, SQL\n")
	skills, _ := sections.Get(SectionSkills)
	assert.False(t, skills.Present)
	assert.Empty(t, skills.Content)
}

func TestSegmentHeaderOnLineAfterSameSectionHeader(t *testing.T) {
	sections := Segment("Skills\nTechnologies:\nPython, Java, SQL, AWS, Docker, React")

	skills, _ := sections.Get(SectionSkills)
	assert.True(t, skills.Present)
	assert.Equal(t, "Python, Java, SQL, AWS, Docker, React", skills.Content)
}

func TestSegmentRepeatedHeaderKeepsLastBlock(t *testing.T) {
	text := "Projects\nFirst project block with enough text\n" +
		"Education\nSome university degree in physics\n" +
		"Projects\nSecond project block wins here\n"

	sections := Segment(text)
	projects, _ := sections.Get(SectionProjects)
	assert.Equal(t, "Second project block wins here", projects.Content)
}

func TestSegmentPresenceNeedsMoreThanTenCharacters(t *testing.T) {
	short := Segment("Education\n0123456789\n")
	edu, _ := short.Get(SectionEducation)
	assert.False(t, edu.Present)

	long := Segment("Education\n0123456789A\n")
	edu, _ = long.Get(SectionEducation)
	assert.True(t, edu.Present)
}

func TestSectionsJSONKeepsEnumerationOrder(t *testing.T) {
	sections := AssessSections(Segment("Skills\nGo, Python, SQL, Docker, Redis\n"))
	data, err := json.Marshal(sections)
	require.NoError(t, err)

	body := string(data)
	last := -1
	for _, name := range SectionOrder {
		idx := strings.Index(body, `"`+string(name)+`":`)
		require.GreaterOrEqual(t, idx, 0, "missing key %s", name)
		assert.Greater(t, idx, last, "key %s out of order", name)
		last = idx
	}

	var decoded Sections
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, len(SectionOrder))
	skills, _ := decoded.Get(SectionSkills)
	assert.Equal(t, sections[0].Score, skills.Score)
	assert.Equal(t, ImportanceCritical, skills.Importance)
}
