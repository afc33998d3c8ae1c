package changeset

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoChangeset is returned when no changeset mode is selected.
	ErrNoChangeset = errors.New("no changeset specified: provide one of releases-count, time-range-start, commits-count, commits-since-sha, commits-shas, commits-start-sha or tags-start")
	// ErrMultipleChangesets is returned when more than one changeset mode is selected.
	ErrMultipleChangesets = errors.New("multiple changeset types specified")
)

// Validate checks that exactly one changeset mode is selected and that the
// selected mode carries the fields it needs.
func (s Spec) Validate() error {
	modes := s.Modes()
	switch len(modes) {
	case 0:
		return ErrNoChangeset
	case 1:
	default:
		names := make([]string, len(modes))
		for i, m := range modes {
			names[i] = m.String()
		}
		return fmt.Errorf("%w: %s (only one type is allowed)", ErrMultipleChangesets, strings.Join(names, ", "))
	}

	switch modes[0] {
	case ModeReleases:
		if *s.ReleasesCount <= 0 {
			return fmt.Errorf("releases-count must be positive, got %d", *s.ReleasesCount)
		}
	case ModeCommitsCount:
		if *s.CommitsCount <= 0 {
			return fmt.Errorf("commits-count must be positive, got %d", *s.CommitsCount)
		}
	case ModeCommitsRange:
		if s.CommitsEndSHA == "" {
			return fmt.Errorf("commits-start-sha requires commits-end-sha")
		}
	case ModeTimeRange:
		if s.TimeRangeEnd == "" {
			return fmt.Errorf("time-range-start requires time-range-end")
		}
	}

	return nil
}
