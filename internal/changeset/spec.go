package changeset

// Spec describes which commits to examine. Exactly one mode's primary field
// must be set; absent fields hold their zero value.
type Spec struct {
	// count-based
	CommitsCount *int

	// tag-range
	TagsStart string
	TagsEnd   string // Optional, defaults to HEAD

	// explicit-range
	CommitsStartSHA     string
	CommitsEndSHA       string
	CommitsIncludeStart *bool

	// since-ref
	CommitsSinceSHA string

	// explicit-list
	CommitsSHAs []string

	// release-count
	ReleasesCount *int

	// time-window
	TimeRangeStart string
	TimeRangeEnd   string
}

// Mode identifies one of the seven changeset modes.
type Mode int

const (
	ModeNone Mode = iota
	ModeReleases
	ModeTimeRange
	ModeCommitsCount
	ModeCommitsSince
	ModeCommitsSpecific
	ModeCommitsRange
	ModeTags
)

// String returns the input name of the mode, as used in configuration errors.
func (m Mode) String() string {
	switch m {
	case ModeReleases:
		return "releases-count"
	case ModeTimeRange:
		return "time-range"
	case ModeCommitsCount:
		return "commits-count"
	case ModeCommitsSince:
		return "commits-since-sha"
	case ModeCommitsSpecific:
		return "commits-shas"
	case ModeCommitsRange:
		return "commits-range"
	case ModeTags:
		return "tags"
	default:
		return "none"
	}
}

// Modes returns every mode whose primary field is present, in input order.
func (s Spec) Modes() []Mode {
	var modes []Mode
	if s.ReleasesCount != nil {
		modes = append(modes, ModeReleases)
	}
	if s.TimeRangeStart != "" {
		modes = append(modes, ModeTimeRange)
	}
	if s.CommitsCount != nil {
		modes = append(modes, ModeCommitsCount)
	}
	if s.CommitsSinceSHA != "" {
		modes = append(modes, ModeCommitsSince)
	}
	if len(s.CommitsSHAs) > 0 {
		modes = append(modes, ModeCommitsSpecific)
	}
	if s.CommitsStartSHA != "" {
		modes = append(modes, ModeCommitsRange)
	}
	if s.TagsStart != "" {
		modes = append(modes, ModeTags)
	}
	return modes
}

// IncludeStart reports whether the start commit of an explicit range is
// part of the changeset.
func (s Spec) IncludeStart() bool {
	return s.CommitsIncludeStart != nil && *s.CommitsIncludeStart
}

// Int returns a pointer to n, for building specs in code.
func Int(n int) *int {
	return &n
}

// Bool returns a pointer to b.
func Bool(b bool) *bool {
	return &b
}
