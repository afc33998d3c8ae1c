package git

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// createTestRepo creates a temporary git repository
func createTestRepo(t *testing.T) (string, *gogit.Repository) {
	t.Helper()
	tmpDir := t.TempDir()

	repo, err := gogit.PlainInit(tmpDir, false)
	if err != nil {
		t.Fatalf("Failed to initialize git repo: %v", err)
	}

	return tmpDir, repo
}

// addCommitToRepo writes the given files and commits them, returning the new sha.
func addCommitToRepo(t *testing.T, repo *gogit.Repository, message string, filenames []string, commitTime time.Time) string {
	t.Helper()
	w, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Failed to get worktree: %v", err)
	}

	for _, filename := range filenames {
		filePath := filepath.Join(w.Filesystem.Root(), filename)
		if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
			t.Fatalf("Failed to create directory: %v", err)
		}

		content := fmt.Sprintf("Content for %s at %s\n", filename, commitTime.String())
		if err := os.WriteFile(filePath, []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write file: %v", err)
		}
		if _, err := w.Add(filename); err != nil {
			t.Fatalf("Failed to add file: %v", err)
		}
	}

	sig := &object.Signature{Name: "Test Author", Email: "test@example.com", When: commitTime}
	hash, err := w.Commit(message, &gogit.CommitOptions{Author: sig, Committer: sig})
	if err != nil {
		t.Fatalf("Failed to commit: %v", err)
	}

	return hash.String()
}

func tagCommit(t *testing.T, repo *gogit.Repository, name, sha string) {
	t.Helper()
	if _, err := repo.CreateTag(name, plumbing.NewHash(sha), nil); err != nil {
		t.Fatalf("Failed to create tag %s: %v", name, err)
	}
}

// historyFixture is a linear four-commit history, one day apart.
type historyFixture struct {
	dir  string
	repo *gogit.Repository
	shas []string // oldest first
	base time.Time
}

func newHistoryFixture(t *testing.T) historyFixture {
	t.Helper()
	dir, repo := createTestRepo(t)
	base := time.Date(2025, 1, 10, 12, 0, 0, 0, time.Local)

	shas := []string{
		addCommitToRepo(t, repo, "chore: PROJ-1 initial import", []string{"a.go"}, base),
		addCommitToRepo(t, repo, "feat: proj-2 add service", []string{"src/b.go"}, base.AddDate(0, 0, 1)),
		addCommitToRepo(t, repo, "docs: update readme", []string{"docs/readme.md"}, base.AddDate(0, 0, 2)),
		addCommitToRepo(t, repo, "fix: OPS-3 and PROJ-2 follow-up", []string{"src/c.go"}, base.AddDate(0, 0, 3)),
	}

	return historyFixture{dir: dir, repo: repo, shas: shas, base: base}
}

func (f historyFixture) pick(idx ...int) []string {
	out := make([]string, len(idx))
	for i, n := range idx {
		out[i] = f.shas[n]
	}
	return out
}

func commitSHAs(commits []Commit) []string {
	out := make([]string, len(commits))
	for i, c := range commits {
		out[i] = c.SHA
	}
	return out
}
