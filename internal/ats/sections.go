package ats

import (
	"bytes"
	"encoding/json"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// minSectionChars is the trimmed length a section body must exceed to count as present.
const minSectionChars = 10

// Section is one named block of the résumé and its quality assessment.
type Section struct {
	Name        SectionName `json:"-"`
	Content     string      `json:"-"`
	Present     bool        `json:"present"`
	Importance  Importance  `json:"importance"`
	Score       int         `json:"score"`
	Observation string      `json:"observation"`
	WordCount   int         `json:"word_count"`
}

// Sections holds exactly one entry per SectionName, in SectionOrder.
// It encodes as a JSON object whose keys keep that order.
type Sections []Section

// Get returns the section with the given name.
func (s Sections) Get(name SectionName) (Section, bool) {
	for _, sec := range s {
		if sec.Name == name {
			return sec, true
		}
	}
	return Section{}, false
}

func (s Sections) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, sec := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(sec.Name))
		if err != nil {
			return nil, err
		}
		body, err := json.Marshal(sec)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(body)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (s *Sections) UnmarshalJSON(data []byte) error {
	var raw map[string]Section
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Sections, 0, len(SectionOrder))
	for _, name := range SectionOrder {
		sec, ok := raw[string(name)]
		if !ok {
			sec = absentSection(name)
		}
		sec.Name = name
		if sec.Importance == "" {
			sec.Importance = ImportanceOf(name)
		}
		out = append(out, sec)
	}
	*s = out
	return nil
}

var headerPatterns = compileHeaderPatterns()

func compileHeaderPatterns() map[SectionName]*regexp.Regexp {
	out := make(map[SectionName]*regexp.Regexp, len(sectionHeaders))
	for name, alts := range sectionHeaders {
		out[name] = regexp.MustCompile(`(?im)(?:^|\n)\s*(?:` + strings.Join(alts, "|") + `)\s*[:\n]`)
	}
	return out
}

type headerMatch struct {
	pos  int
	name SectionName
}

// Segment splits résumé text into the fixed set of sections. A section's
// body runs from the line after its header to the next header. When a
// header repeats, the later block replaces the earlier one.
func Segment(text string) Sections {
	var matches []headerMatch
	for _, name := range SectionOrder {
		for _, loc := range headerPatterns[name].FindAllStringIndex(text, -1) {
			matches = append(matches, headerMatch{pos: loc[0], name: name})
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].pos != matches[j].pos {
			return matches[i].pos < matches[j].pos
		}
		return matches[i].name < matches[j].name
	})

	contents := make(map[SectionName]string, len(matches))
	for i, m := range matches {
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1].pos
		}
		contents[m.name] = sectionBody(text[m.pos:end])
	}

	out := make(Sections, 0, len(SectionOrder))
	for _, name := range SectionOrder {
		content := contents[name]
		if utf8.RuneCountInString(strings.TrimSpace(content)) <= minSectionChars {
			sec := absentSection(name)
			sec.Content = content
			out = append(out, sec)
			continue
		}
		out = append(out, Section{
			Name:       name,
			Content:    content,
			Present:    true,
			Importance: ImportanceOf(name),
			WordCount:  len(strings.Fields(content)),
		})
	}
	return out
}

// sectionBody drops the header line of a block and trims what remains.
func sectionBody(block string) string {
	block = strings.TrimSpace(block)
	idx := strings.IndexByte(block, '\n')
	if idx < 0 {
		return ""
	}
	return strings.TrimSpace(block[idx+1:])
}

func absentSection(name SectionName) Section {
	return Section{
		Name:        name,
		Importance:  ImportanceOf(name),
		Observation: "Section missing",
	}
}
