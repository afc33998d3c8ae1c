package changeset

import (
	"fmt"
	"strconv"
	"strings"
)

// Inputs holds the raw changeset inputs as read from flags or the
// environment. Empty strings mean "not provided".
type Inputs struct {
	ReleasesCount       string
	TimeRangeStart      string
	TimeRangeEnd        string
	CommitsCount        string
	CommitsSinceSHA     string
	CommitsSHAs         string
	CommitsStartSHA     string
	CommitsEndSHA       string
	CommitsIncludeStart string
	TagsStart           string
	TagsEnd             string
}

// Parse converts raw inputs into a Spec. It only fails on malformed numbers;
// mode selection is checked by Spec.Validate.
func Parse(in Inputs) (Spec, error) {
	var spec Spec

	releases, err := parseCount("releases-count", in.ReleasesCount)
	if err != nil {
		return Spec{}, err
	}
	commits, err := parseCount("commits-count", in.CommitsCount)
	if err != nil {
		return Spec{}, err
	}

	spec.ReleasesCount = releases
	spec.CommitsCount = commits
	spec.TimeRangeStart = strings.TrimSpace(in.TimeRangeStart)
	spec.TimeRangeEnd = strings.TrimSpace(in.TimeRangeEnd)
	spec.CommitsSinceSHA = strings.TrimSpace(in.CommitsSinceSHA)
	spec.CommitsSHAs = SplitList(in.CommitsSHAs)
	spec.CommitsStartSHA = strings.TrimSpace(in.CommitsStartSHA)
	spec.CommitsEndSHA = strings.TrimSpace(in.CommitsEndSHA)
	spec.TagsStart = strings.TrimSpace(in.TagsStart)
	spec.TagsEnd = strings.TrimSpace(in.TagsEnd)

	if v := strings.TrimSpace(in.CommitsIncludeStart); v != "" {
		spec.CommitsIncludeStart = Bool(v == "true")
	}

	return spec, nil
}

// SplitList splits a comma-separated list, trimming entries and dropping
// empty ones. It returns nil when nothing remains.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseCount(name, s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: expected an integer", name, s)
	}
	return &n, nil
}
