package output

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestBuildOutputs(t *testing.T) {
	o := BuildOutputs(sampleReport())

	if o.IssueKeys != "INFRA-7,PROJ-10,PROJ-2" {
		t.Errorf("IssueKeys = %q", o.IssueKeys)
	}
	want := "https://acme.atlassian.net/browse/INFRA-7,https://acme.atlassian.net/browse/PROJ-10,https://acme.atlassian.net/browse/PROJ-2"
	if o.IssueLinks != want {
		t.Errorf("IssueLinks = %q, expected %q", o.IssueLinks, want)
	}
	if o.IssueCount != 3 {
		t.Errorf("IssueCount = %d, expected 3", o.IssueCount)
	}
}

func TestBuildOutputs_Empty(t *testing.T) {
	o := BuildOutputs(BuildReport(nil, ReportInput{}))
	if o.IssueKeys != "" || o.IssueLinks != "" || o.IssueCount != 0 {
		t.Errorf("outputs = %+v, expected empty values", o)
	}
}

func TestWriteOutputs(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutputs(&buf, Outputs{IssueLinks: "u1,u2", IssueKeys: "A-1,B-2", IssueCount: 2}); err != nil {
		t.Fatalf("WriteOutputs: %v", err)
	}

	want := "issue-links=u1,u2\nissue-keys=A-1,B-2\nissue-count=2\n"
	if buf.String() != want {
		t.Errorf("WriteOutputs = %q, expected %q", buf.String(), want)
	}
}

func TestWriteOutputs_Multiline(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutputs(&buf, Outputs{IssueKeys: "A-1\nB-2"}); err != nil {
		t.Fatalf("WriteOutputs: %v", err)
	}

	want := "issue-links=\nissue-keys<<JIRA_ISSUES_EOF\nA-1\nB-2\nJIRA_ISSUES_EOF\nissue-count=0\n"
	if buf.String() != want {
		t.Errorf("WriteOutputs = %q, expected %q", buf.String(), want)
	}
}

func TestPublishOutputs(t *testing.T) {
	t.Run("appends to GITHUB_OUTPUT", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "github_output")
		if err := os.WriteFile(path, []byte("previous=1\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		t.Setenv("GITHUB_OUTPUT", path)

		var fallback bytes.Buffer
		if err := PublishOutputs(Outputs{IssueCount: 4}, &fallback); err != nil {
			t.Fatalf("PublishOutputs: %v", err)
		}

		data, _ := os.ReadFile(path)
		want := "previous=1\nissue-links=\nissue-keys=\nissue-count=4\n"
		if string(data) != want {
			t.Errorf("GITHUB_OUTPUT = %q, expected %q", data, want)
		}
		if fallback.Len() != 0 {
			t.Errorf("fallback received %q, expected nothing", fallback.String())
		}
	})

	t.Run("falls back without GITHUB_OUTPUT", func(t *testing.T) {
		t.Setenv("GITHUB_OUTPUT", "")

		var fallback bytes.Buffer
		if err := PublishOutputs(Outputs{IssueCount: 1}, &fallback); err != nil {
			t.Fatalf("PublishOutputs: %v", err)
		}
		if fallback.String() != "issue-links=\nissue-keys=\nissue-count=1\n" {
			t.Errorf("fallback = %q", fallback.String())
		}
	})
}

func TestErrorCommand(t *testing.T) {
	got := ErrorCommand("git command failed: 100% broken\nsecond line")
	want := "::error::git command failed: 100%25 broken%0Asecond line"
	if got != want {
		t.Errorf("ErrorCommand = %q, expected %q", got, want)
	}
}

func TestInActions(t *testing.T) {
	t.Setenv("GITHUB_ACTIONS", "true")
	if !InActions() {
		t.Error("InActions() = false with GITHUB_ACTIONS=true")
	}
	t.Setenv("GITHUB_ACTIONS", "")
	if InActions() {
		t.Error("InActions() = true without GITHUB_ACTIONS")
	}
}
