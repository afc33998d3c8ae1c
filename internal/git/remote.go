package git

import (
	"fmt"
	"path"
	"strings"

	gogit "github.com/go-git/go-git/v5"
)

// RepositoryName returns "owner/repo" derived from the URL of the named
// remote (usually "origin") of the repository at repoPath.
func RepositoryName(repoPath, remoteName string) (string, error) {
	if repoPath == "" {
		repoPath = "."
	}
	repo, err := gogit.PlainOpenWithOptions(repoPath, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("open repository %s: %w", repoPath, err)
	}

	remote, err := repo.Remote(remoteName)
	if err != nil {
		return "", fmt.Errorf("remote %q: %w", remoteName, err)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("remote %q has no URL", remoteName)
	}

	name := RepositoryFromURL(urls[0])
	if name == "" {
		return "", fmt.Errorf("cannot derive owner/repo from remote URL %q", urls[0])
	}
	return name, nil
}

// RepositoryFromURL extracts "owner/repo" from an https, ssh or scp-style
// remote URL. It returns "" when the URL has fewer than two path segments.
func RepositoryFromURL(url string) string {
	u := strings.TrimSpace(url)
	u = strings.TrimSuffix(u, "/")
	u = strings.TrimSuffix(u, ".git")

	if i := strings.Index(u, "://"); i != -1 {
		u = u[i+3:]
		// Drop the host (and any user info).
		if j := strings.IndexByte(u, '/'); j != -1 {
			u = u[j+1:]
		} else {
			return ""
		}
	} else if i := strings.IndexByte(u, ':'); i != -1 {
		// scp-like syntax: git@host:owner/repo
		u = u[i+1:]
	}

	u = strings.Trim(u, "/")
	repo := path.Base(u)
	owner := path.Base(path.Dir(u))
	if repo == "" || repo == "." || owner == "" || owner == "." || owner == "/" {
		return ""
	}
	return owner + "/" + repo
}
