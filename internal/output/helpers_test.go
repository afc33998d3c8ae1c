package output

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/masmgr/jira-issues-go/internal/changeset"
	"github.com/masmgr/jira-issues-go/internal/issue"
)

var testGeneratedAt = time.Date(2025, 3, 4, 5, 6, 7, 890_000_000, time.UTC)

func sampleReport() *Report {
	issues := issue.Map{
		"PROJ-2":  {"bbbbbbbbbbbb"},
		"INFRA-7": {"aaaaaaaaaaaa", "cccccccccccc"},
		"PROJ-10": {"cccccccccccc"},
	}
	return BuildReport(issues, ReportInput{
		JiraBaseURL:  "https://acme.atlassian.net/",
		Repository:   "acme/widgets",
		Changeset:    changeset.Spec{TagsStart: "v1.0.0", TagsEnd: "v1.1.0"},
		TotalCommits: 5,
		GeneratedAt:  testGeneratedAt,
	})
}

// writeToTemp runs a writer against a temp file and returns its contents.
func writeToTemp(t *testing.T, w ReportWriter, report *Report, top int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "out")
	if err := w.Write(report, OutputOptions{OutputPath: path, Top: top}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	return string(data)
}
