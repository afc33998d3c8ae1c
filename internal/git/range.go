package git

import (
	"strconv"
	"strings"
	"time"

	"github.com/masmgr/jira-issues-go/internal/changeset"
)

// logFormat renders each commit as "<sha>NUL<subject>NUL".
const logFormat = "%H%x00%s%x00"

// tip is the upper bound used when a range has no explicit end.
const tip = "HEAD"

// RangeQuery is the ordered list of revision arguments passed to git log.
type RangeQuery []string

// ResolveOptions tunes range resolution.
type ResolveOptions struct {
	// ReleaseWindow is the number of commits fetched for releases-count
	// changesets. Zero selects DefaultReleaseWindow.
	ReleaseWindow int
}

// ResolveRange maps a changeset onto git log range arguments.
//
// Modes are checked in a fixed precedence and the first one present wins;
// exclusivity is expected to have been checked by changeset.Spec.Validate.
// A spec with no mode yields an empty query.
//
// releases-count is approximate: it fetches the last ReleaseWindow commits
// instead of walking the last N release tags.
func ResolveRange(spec changeset.Spec, opts ResolveOptions) RangeQuery {
	switch {
	case spec.CommitsCount != nil:
		return RangeQuery{"-n", strconv.Itoa(*spec.CommitsCount)}

	case spec.TagsStart != "":
		end := spec.TagsEnd
		if end == "" {
			end = tip
		}
		return RangeQuery{spec.TagsStart + ".." + end}

	case spec.CommitsStartSHA != "" && spec.CommitsEndSHA != "":
		// A..B excludes A; to keep it, start from A's parent.
		start := spec.CommitsStartSHA
		if spec.IncludeStart() {
			start += "^"
		}
		return RangeQuery{start + ".." + spec.CommitsEndSHA}

	case spec.CommitsSinceSHA != "":
		return RangeQuery{spec.CommitsSinceSHA + ".." + tip}

	case len(spec.CommitsSHAs) > 0:
		// unsorted keeps the supplied order instead of commit date order.
		q := RangeQuery{"--no-walk=unsorted"}
		return append(q, spec.CommitsSHAs...)

	case spec.ReleasesCount != nil:
		window := opts.ReleaseWindow
		if window <= 0 {
			window = DefaultReleaseWindow
		}
		return RangeQuery{"-n", strconv.Itoa(window)}

	case spec.TimeRangeStart != "" && spec.TimeRangeEnd != "":
		return RangeQuery{
			"--since=" + timeBoundArg(spec.TimeRangeStart, false),
			"--until=" + timeBoundArg(spec.TimeRangeEnd, true),
		}
	}

	return RangeQuery{}
}

// dateOnly is the layout of a time-range bound without a time of day.
const dateOnly = "2006-01-02"

func isBareDate(s string) bool {
	_, err := time.Parse(dateOnly, s)
	return err == nil
}

// timeBoundArg renders a time-range bound for git. git reads a bare date as
// that day at the current wall-clock time, so bare dates are pinned to the
// start or the end of the day, matching parseTimeBound.
func timeBoundArg(s string, end bool) string {
	s = strings.TrimSpace(s)
	if !isBareDate(s) {
		return s
	}
	if end {
		return s + " 23:59:59"
	}
	return s + " 00:00:00"
}

// LogArgs builds the full git argument list for a range query.
// Path filters become glob pathspecs after a "--" separator.
func LogArgs(repoPath string, query RangeQuery, include, exclude []string) []string {
	args := []string{}
	if repoPath != "" {
		args = append(args, "-C", repoPath)
	}
	args = append(args,
		"log",
		"--no-color",
		"--format="+logFormat,
	)
	args = append(args, query...)

	specs := pathspecs(include, exclude)
	if len(specs) > 0 {
		args = append(args, "--")
		args = append(args, specs...)
	}
	return args
}

func pathspecs(include, exclude []string) []string {
	if len(include) == 0 && len(exclude) == 0 {
		return nil
	}

	specs := make([]string, 0, len(include)+len(exclude))
	for _, p := range include {
		specs = append(specs, ":(glob)"+p)
	}
	for _, p := range exclude {
		specs = append(specs, ":(exclude,glob)"+p)
	}
	return specs
}
