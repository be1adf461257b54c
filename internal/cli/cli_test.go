package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testResume = `Jane Doe
jane.doe@example.com | (555) 123-4567

Summary
Backend engineer focused on data platforms and developer tooling.

Experience
Senior Engineer, Acme Corp 2019 - 2024
- Led migration of billing services to Go and PostgreSQL, cutting latency 40%
- Developed CI pipelines with Docker and Kubernetes

Education
B.S. Computer Science, State University 2015

Skills
Go, Python, SQL, Docker, Kubernetes, AWS
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "atscli version: dev\n", out)
}

func TestAnalyzeJSON(t *testing.T) {
	dir := t.TempDir()
	resume := writeFile(t, dir, "resume.txt", testResume)

	out, err := run(t, "--history-db", filepath.Join(dir, "h.db"), "analyze", "--resume", resume,
		"--jd-text", "Backend engineer with Python, SQL, Kafka and AWS.", "--json")
	require.NoError(t, err)

	var report map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.NotEmpty(t, report["analysisId"])
	assert.Contains(t, report, "ats_score")
	assert.Contains(t, report, "jd_match_score")
	assert.Contains(t, report, "recommendations")

	_, err = os.Stat(filepath.Join(dir, "h.db"))
	assert.True(t, os.IsNotExist(err), "history db should not be created without --save")
}

func TestAnalyzeTextReport(t *testing.T) {
	dir := t.TempDir()
	resume := writeFile(t, dir, "resume.txt", testResume)

	out, err := run(t, "analyze", "-r", resume)
	require.NoError(t, err)
	assert.Contains(t, out, "ATS score:")
	assert.Contains(t, out, "SECTION")
	assert.Contains(t, out, "experience")
	assert.NotContains(t, out, "JD match:")
}

func TestAnalyzeErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, "analyze")
	require.Error(t, err)

	short := writeFile(t, dir, "short.txt", "Skills\nGo")
	_, err = run(t, "analyze", "--resume", short)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shorter than 50")

	_, err = run(t, "--min-resume-chars", "5", "analyze", "--resume", short)
	require.NoError(t, err)

	image := writeFile(t, dir, "photo.png", "\x89PNG\r\n\x1a\nrest")
	_, err = run(t, "analyze", "--resume", image)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file format")

	_, err = run(t, "analyze", "--resume", filepath.Join(dir, "missing.txt"))
	require.Error(t, err)
}

func TestSaveAndHistory(t *testing.T) {
	dir := t.TempDir()
	resume := writeFile(t, dir, "resume.txt", testResume)
	historyDB := filepath.Join(dir, "nested", "history.db")

	out, err := run(t, "--history-db", historyDB, "analyze", "--resume", resume, "--save", "--json")
	require.NoError(t, err)
	var saved struct {
		AnalysisID string `json:"analysisId"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &saved))
	require.NotEmpty(t, saved.AnalysisID)

	out, err = run(t, "--history-db", historyDB, "history")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[1], saved.AnalysisID)
	assert.Contains(t, lines[1], "resume.txt")
}

func TestHistoryFromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ATSCLI_HISTORY_DB", filepath.Join(dir, "env.db"))

	out, err := run(t, "history")
	require.NoError(t, err)
	assert.Equal(t, "No saved reports.\n", out)

	_, err = os.Stat(filepath.Join(dir, "env.db"))
	assert.NoError(t, err)
}
