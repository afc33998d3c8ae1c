package git

import (
	"fmt"
	"strings"

	"github.com/masmgr/jira-issues-go/internal/changeset"
)

// Commit is a commit identifier paired with its subject line.
type Commit struct {
	SHA     string
	Message string
}

// Backend selects how commit history is read.
type Backend string

const (
	// BackendCLI runs the git binary and parses its log output.
	BackendCLI Backend = "cli"
	// BackendGoGit walks the repository in-process with go-git.
	BackendGoGit Backend = "go-git"
)

// ParseBackend parses a backend name. An empty name selects the CLI backend.
func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "cli", "git":
		return BackendCLI, nil
	case "go-git", "gogit":
		return BackendGoGit, nil
	default:
		return "", fmt.Errorf("unknown git backend %q (expected cli or go-git)", s)
	}
}

// DefaultReleaseWindow is the number of commits fetched for releases-count
// changesets.
const DefaultReleaseWindow = 100

// ReadOptions configures a history reader.
type ReadOptions struct {
	RepoPath      string
	Changeset     changeset.Spec
	ReleaseWindow int      // Commits fetched for releases-count, default 100
	Include       []string // Glob patterns to include
	Exclude       []string // Glob patterns to exclude
}

func (o ReadOptions) resolveOptions() ResolveOptions {
	return ResolveOptions{ReleaseWindow: o.ReleaseWindow}
}

// subject returns the subject of a full commit message the way git's %s
// placeholder renders it: leading blank lines skipped, then the first
// paragraph with line breaks folded. Lines keep their leading whitespace.
func subject(message string) string {
	var parts []string
	for _, line := range strings.Split(message, "\n") {
		line = strings.TrimRight(line, " \t\r")
		if line == "" {
			if len(parts) == 0 {
				continue
			}
			break
		}
		parts = append(parts, line)
	}
	return strings.Join(parts, " ")
}
