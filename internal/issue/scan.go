package issue

import (
	"sort"

	"github.com/masmgr/jira-issues-go/internal/git"
)

// Map associates each issue key with the SHAs of the commits referencing it,
// in scan order. A commit appears at most once per key.
type Map map[string][]string

// Scan extracts issue references from every commit message.
// With no prefixes it returns an empty map without inspecting commits.
func Scan(commits []git.Commit, prefixes []string) Map {
	return ScanPattern(commits, BuildPattern(prefixes))
}

// ScanPattern is Scan with a prebuilt pattern.
func ScanPattern(commits []git.Commit, pattern *Pattern) Map {
	issues := make(Map)
	if pattern.Empty() {
		return issues
	}

	for _, c := range commits {
		for _, key := range pattern.Extract(c.Message) {
			issues[key] = append(issues[key], c.SHA)
		}
	}

	return issues
}

// Keys returns the issue keys in ascending byte order.
func (m Map) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
