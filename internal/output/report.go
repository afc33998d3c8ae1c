package output

import (
	"sort"
	"time"

	"github.com/masmgr/jira-issues-go/internal/changeset"
	"github.com/masmgr/jira-issues-go/internal/issue"
	"github.com/masmgr/jira-issues-go/internal/jira"
)

// generatedAtLayout renders UTC timestamps with millisecond precision.
const generatedAtLayout = "2006-01-02T15:04:05.000Z07:00"

// Report is the artifact written for downstream steps.
type Report struct {
	Metadata Metadata `json:"metadata"`
	Issues   []Issue  `json:"issues"`
}

// Metadata describes the run that produced a report.
type Metadata struct {
	GeneratedAt  string            `json:"generatedAt"`
	JiraBaseURL  string            `json:"jiraBaseUrl"`
	Repository   string            `json:"repository"`
	Changeset    ChangesetMetadata `json:"changeset"`
	TotalIssues  int               `json:"totalIssues"`
	TotalCommits int               `json:"totalCommits"`
}

// ChangesetMetadata identifies the changeset mode and its parameters.
type ChangesetMetadata struct {
	Type  string   `json:"type"`
	Start string   `json:"start,omitempty"`
	End   string   `json:"end,omitempty"`
	Count *int     `json:"count,omitempty"`
	SHAs  []string `json:"shas,omitempty"`
}

// Issue is one referenced issue and the commits that mention it.
type Issue struct {
	Key     string   `json:"key"`
	URL     string   `json:"url"`
	Commits []string `json:"commits"`
}

// ReportInput carries the run context for BuildReport.
type ReportInput struct {
	JiraBaseURL  string
	Repository   string
	Changeset    changeset.Spec
	TotalCommits int
	GeneratedAt  time.Time // zero means now
}

// Changeset metadata type names.
const (
	ChangesetReleases        = "releases"
	ChangesetTimeRange       = "time-range"
	ChangesetCommitsCount    = "commits-count"
	ChangesetCommitsSince    = "commits-since"
	ChangesetCommitsSpecific = "commits-specific"
	ChangesetCommitsRange    = "commits-range"
	ChangesetTags            = "tags"
	ChangesetUnknown         = "unknown"
)

// BuildChangesetMetadata describes spec for the report. Its precedence differs
// from the range resolver's, so a spec that sets several modes is labelled by
// the first of releases, time-range, commits-count, commits-since,
// commits-specific, commits-range and tags.
func BuildChangesetMetadata(spec changeset.Spec) ChangesetMetadata {
	switch {
	case spec.ReleasesCount != nil:
		return ChangesetMetadata{Type: ChangesetReleases, Count: changeset.Int(*spec.ReleasesCount)}
	case spec.TimeRangeStart != "" && spec.TimeRangeEnd != "":
		return ChangesetMetadata{Type: ChangesetTimeRange, Start: spec.TimeRangeStart, End: spec.TimeRangeEnd}
	case spec.CommitsCount != nil:
		return ChangesetMetadata{Type: ChangesetCommitsCount, Count: changeset.Int(*spec.CommitsCount)}
	case spec.CommitsSinceSHA != "":
		return ChangesetMetadata{Type: ChangesetCommitsSince, Start: spec.CommitsSinceSHA}
	case len(spec.CommitsSHAs) > 0:
		return ChangesetMetadata{Type: ChangesetCommitsSpecific, SHAs: append([]string(nil), spec.CommitsSHAs...)}
	case spec.CommitsStartSHA != "" && spec.CommitsEndSHA != "":
		return ChangesetMetadata{Type: ChangesetCommitsRange, Start: spec.CommitsStartSHA, End: spec.CommitsEndSHA}
	case spec.TagsStart != "":
		return ChangesetMetadata{Type: ChangesetTags, Start: spec.TagsStart, End: spec.TagsEnd}
	}
	return ChangesetMetadata{Type: ChangesetUnknown}
}

// BuildReport assembles the artifact from an issue map. Issues are sorted by
// key in byte order, so the same input always produces the same issue order.
func BuildReport(issues issue.Map, in ReportInput) *Report {
	items := make([]Issue, 0, len(issues))
	for key, commits := range issues {
		items = append(items, Issue{
			Key:     key,
			URL:     jira.BrowseURL(in.JiraBaseURL, key),
			Commits: append([]string{}, commits...),
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Key < items[j].Key })

	generatedAt := in.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now()
	}

	return &Report{
		Metadata: Metadata{
			GeneratedAt:  generatedAt.UTC().Format(generatedAtLayout),
			JiraBaseURL:  in.JiraBaseURL,
			Repository:   in.Repository,
			Changeset:    BuildChangesetMetadata(in.Changeset),
			TotalIssues:  len(items),
			TotalCommits: in.TotalCommits,
		},
		Issues: items,
	}
}
