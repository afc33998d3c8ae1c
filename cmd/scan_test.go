package cmd

import (
	"encoding/csv"
	"os"
	"strings"
	"testing"

	"github.com/masmgr/jira-issues-go/internal/output"
)

const scanLog = "a1\x00feat: PROJ-7 add search\x00b2\x00chore: tidy\x00c3\x00fix: proj-7 and PROJ-8\x00"

func TestScan_FromFile(t *testing.T) {
	isolateEnv(t)
	if err := os.WriteFile("log.bin", []byte(scanLog), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	_, _, err := runApp(t, "",
		"scan",
		"--input", "log.bin",
		"--project-keys", "PROJ",
		"--jira-base-url", "https://jira.example.com",
		"--format", "csv",
		"--summary-file", "out.csv",
	)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}

	f, err := os.Open("out.csv")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}

	want := [][]string{
		{"Key", "URL", "CommitCount", "Commits"},
		{"PROJ-7", "https://jira.example.com/browse/PROJ-7", "2", "a1 c3"},
		{"PROJ-8", "https://jira.example.com/browse/PROJ-8", "1", "c3"},
	}
	if len(rows) != len(want) {
		t.Fatalf("rows = %v, expected %v", rows, want)
	}
	for i := range want {
		if strings.Join(rows[i], "|") != strings.Join(want[i], "|") {
			t.Errorf("row %d = %v, expected %v", i, rows[i], want[i])
		}
	}
}

func TestScan_FromStdinWithArtifact(t *testing.T) {
	isolateEnv(t)

	_, _, err := runApp(t, scanLog,
		"scan",
		"--input", "-",
		"--project-keys", "PROJ",
		"--output-file", "report.json",
		"--repository", "acme/web",
		"--summary-file", "summary.txt",
	)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}

	report := readReport(t, "report.json")
	if report.Metadata.TotalCommits != 3 {
		t.Errorf("TotalCommits = %d, expected 3", report.Metadata.TotalCommits)
	}
	if report.Metadata.Changeset.Type != output.ChangesetUnknown {
		t.Errorf("Changeset.Type = %q, expected unknown", report.Metadata.Changeset.Type)
	}
	if got := strings.Join(issueKeys(report), ","); got != "PROJ-7,PROJ-8" {
		t.Errorf("issue keys = %s, expected PROJ-7,PROJ-8", got)
	}
	if report.Metadata.Repository != "acme/web" {
		t.Errorf("Repository = %q, expected acme/web", report.Metadata.Repository)
	}
}

func TestScan_Errors(t *testing.T) {
	t.Run("NoProjectKeys", func(t *testing.T) {
		isolateEnv(t)
		if _, _, err := runApp(t, scanLog, "scan"); err == nil {
			t.Fatal("expected error, got nil")
		}
	})

	t.Run("MissingInput", func(t *testing.T) {
		isolateEnv(t)
		_, _, err := runApp(t, "", "scan", "--input", "missing.bin", "--project-keys", "PROJ")
		if err == nil || !strings.Contains(err.Error(), "missing.bin") {
			t.Fatalf("error = %v, expected it to name the input", err)
		}
	})
}
