package git

import (
	"context"
	"fmt"
	"strings"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"github.com/masmgr/jira-issues-go/internal/changeset"
)

// HistoryReader reads changeset commits from a repository in-process using
// go-git. It follows the same range semantics as the CLI backend.
type HistoryReader struct {
	repo   *gogit.Repository
	opts   ReadOptions
	filter *pathFilter
}

// NewHistoryReader opens the repository at opts.RepoPath.
func NewHistoryReader(opts ReadOptions) (*HistoryReader, error) {
	if err := validatePatterns(opts.Include, opts.Exclude); err != nil {
		return nil, err
	}

	path := opts.RepoPath
	if path == "" {
		path = "."
	}
	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open repository %s: %w", path, err)
	}

	return &HistoryReader{
		repo:   repo,
		opts:   opts,
		filter: newPathFilter(opts.Include, opts.Exclude),
	}, nil
}

// ReadCommits walks the history selected by the changeset, newest first.
func (r *HistoryReader) ReadCommits(ctx context.Context) ([]Commit, error) {
	spec := r.opts.Changeset

	switch {
	case spec.CommitsCount != nil:
		return r.walkFromTip(ctx, *spec.CommitsCount, nil, nil)

	case spec.TagsStart != "":
		end := spec.TagsEnd
		if end == "" {
			end = tip
		}
		return r.between(ctx, spec.TagsStart, end, false)

	case spec.CommitsStartSHA != "" && spec.CommitsEndSHA != "":
		return r.between(ctx, spec.CommitsStartSHA, spec.CommitsEndSHA, spec.IncludeStart())

	case spec.CommitsSinceSHA != "":
		return r.between(ctx, spec.CommitsSinceSHA, tip, false)

	case len(spec.CommitsSHAs) > 0:
		return r.list(ctx, spec.CommitsSHAs)

	case spec.ReleasesCount != nil:
		window := r.opts.ReleaseWindow
		if window <= 0 {
			window = DefaultReleaseWindow
		}
		return r.walkFromTip(ctx, window, nil, nil)

	case spec.TimeRangeStart != "" && spec.TimeRangeEnd != "":
		since, err := parseTimeBound(spec.TimeRangeStart, false)
		if err != nil {
			return nil, err
		}
		until, err := parseTimeBound(spec.TimeRangeEnd, true)
		if err != nil {
			return nil, err
		}
		return r.walkFromTip(ctx, 0, &since, &until)
	}

	return nil, changeset.ErrNoChangeset
}

func (r *HistoryReader) walkFromTip(ctx context.Context, limit int, since, until *time.Time) ([]Commit, error) {
	head, err := r.resolve(tip)
	if err != nil {
		return nil, err
	}
	return r.walk(ctx, head, nil, limit, since, until)
}

// between returns the commits reachable from upper but not from lower,
// i.e. git's lower..upper. With includeLower the lower commit itself is
// kept by excluding only the ancestors of its first parent.
func (r *HistoryReader) between(ctx context.Context, lower, upper string, includeLower bool) ([]Commit, error) {
	lowerHash, err := r.resolve(lower)
	if err != nil {
		return nil, err
	}
	upperHash, err := r.resolve(upper)
	if err != nil {
		return nil, err
	}

	exclude := map[plumbing.Hash]struct{}{}
	boundary := lowerHash
	if includeLower {
		c, err := r.repo.CommitObject(lowerHash)
		if err != nil {
			return nil, fmt.Errorf("load commit %s: %w", lower, err)
		}
		if c.NumParents() == 0 {
			// Root commit: nothing precedes it.
			return r.walk(ctx, upperHash, exclude, 0, nil, nil)
		}
		boundary = c.ParentHashes[0]
	}

	exclude, err = r.ancestors(ctx, boundary)
	if err != nil {
		return nil, err
	}
	return r.walk(ctx, upperHash, exclude, 0, nil, nil)
}

// list loads exactly the given commits, in the order supplied.
func (r *HistoryReader) list(ctx context.Context, revs []string) ([]Commit, error) {
	seen := make(map[plumbing.Hash]struct{}, len(revs))
	commits := make([]Commit, 0, len(revs))

	for _, rev := range revs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		h, err := r.resolve(rev)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[h]; dup {
			continue
		}
		seen[h] = struct{}{}

		c, err := r.repo.CommitObject(h)
		if err != nil {
			return nil, fmt.Errorf("load commit %s: %w", rev, err)
		}
		ok, err := r.touchesFilteredPath(c)
		if err != nil {
			return nil, err
		}
		if ok {
			commits = append(commits, toCommit(c))
		}
	}

	return commits, nil
}

func (r *HistoryReader) walk(ctx context.Context, from plumbing.Hash, exclude map[plumbing.Hash]struct{}, limit int, since, until *time.Time) ([]Commit, error) {
	iter, err := r.repo.Log(&gogit.LogOptions{
		From:  from,
		Order: gogit.LogOrderCommitterTime,
		Since: since,
		Until: until,
	})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	commits := []Commit{}
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, skip := exclude[c.Hash]; skip {
			return nil
		}

		ok, err := r.touchesFilteredPath(c)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		commits = append(commits, toCommit(c))
		if limit > 0 && len(commits) >= limit {
			return storer.ErrStop
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return commits, nil
}

func (r *HistoryReader) ancestors(ctx context.Context, from plumbing.Hash) (map[plumbing.Hash]struct{}, error) {
	iter, err := r.repo.Log(&gogit.LogOptions{From: from})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	set := make(map[plumbing.Hash]struct{})
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		set[c.Hash] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return set, nil
}

func (r *HistoryReader) resolve(rev string) (plumbing.Hash, error) {
	h, err := r.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("resolve revision %q: %w", rev, err)
	}
	return *h, nil
}

// touchesFilteredPath reports whether the commit changes at least one path
// accepted by the include/exclude filters.
func (r *HistoryReader) touchesFilteredPath(c *object.Commit) (bool, error) {
	if r.filter.empty() {
		return true, nil
	}

	tree, err := c.Tree()
	if err != nil {
		return false, err
	}

	var parentTree *object.Tree
	if c.NumParents() > 0 {
		parent, err := c.Parent(0)
		if err != nil {
			return false, err
		}
		parentTree, err = parent.Tree()
		if err != nil {
			return false, err
		}
	}

	changes, err := object.DiffTree(parentTree, tree)
	if err != nil {
		return false, err
	}

	for _, change := range changes {
		path := change.To.Name
		if path == "" {
			path = change.From.Name
		}
		ok, err := r.filter.matches(path)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}

	return false, nil
}

func toCommit(c *object.Commit) Commit {
	return Commit{SHA: c.Hash.String(), Message: subject(c.Message)}
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// parseTimeBound parses a time-range bound. A bare date covers the whole
// day, so an end bound of 2025-01-31 includes commits made on the 31st.
func parseTimeBound(s string, end bool) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}

	t, err := time.ParseInLocation(dateOnly, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time range bound %q (expected YYYY-MM-DD or RFC 3339)", s)
	}
	if end {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}
