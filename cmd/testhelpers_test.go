package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// isolateEnv runs the test in an empty working and home directory with the
// CI and Jira variables cleared. It returns the GITHUB_OUTPUT file path.
func isolateEnv(t *testing.T) string {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	for _, name := range []string{
		"GITHUB_ACTIONS", "GITHUB_REPOSITORY", "GITHUB_WORKSPACE",
		"JIRA_BASE_URL", "JIRA_API_TOKEN", "JIRA_USER_EMAIL", "JIRA_ISSUES_QUIET",
	} {
		unsetEnv(t, name)
	}

	outputs := filepath.Join(t.TempDir(), "github_output")
	t.Setenv("GITHUB_OUTPUT", outputs)
	return outputs
}

func unsetEnv(t *testing.T, name string) {
	t.Helper()
	t.Setenv(name, "")
	os.Unsetenv(name)
}

// runApp runs the CLI with args and returns what it wrote to stdout and
// stderr.
func runApp(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer

	app := App()
	app.Writer = &stdout
	app.ErrWriter = &stderr
	app.Reader = strings.NewReader(stdin)

	err := app.Run(append([]string{"jira-issues"}, args...))
	return stdout.String(), stderr.String(), err
}

// newTestRepo creates a four-commit repository and returns its path and the
// commit shas, oldest first.
func newTestRepo(t *testing.T) (string, *gogit.Repository, []string) {
	t.Helper()
	dir := t.TempDir()

	repo, err := gogit.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("Failed to initialize git repo: %v", err)
	}

	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	messages := []string{
		"chore: PROJ-1 initial import",
		"feat: proj-2 add service",
		"docs: update readme",
		"fix: OPS-3 and PROJ-2 follow-up",
	}

	w, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Failed to get worktree: %v", err)
	}

	shas := make([]string, len(messages))
	for i, msg := range messages {
		name := filepath.Join(dir, "file.txt")
		if err := os.WriteFile(name, []byte(msg+"\n"), 0o644); err != nil {
			t.Fatalf("Failed to write file: %v", err)
		}
		if _, err := w.Add("file.txt"); err != nil {
			t.Fatalf("Failed to add file: %v", err)
		}
		sig := &object.Signature{Name: "Test Author", Email: "test@example.com", When: base.Add(time.Duration(i) * time.Hour)}
		hash, err := w.Commit(msg, &gogit.CommitOptions{Author: sig, Committer: sig})
		if err != nil {
			t.Fatalf("Failed to commit: %v", err)
		}
		shas[i] = hash.String()
	}

	return dir, repo, shas
}
