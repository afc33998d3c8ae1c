package git

import (
	"context"
	"fmt"
)

// Reader defines the interface for reading the commits of a changeset.
// This abstraction allows for easier testing and alternative backends.
type Reader interface {
	// ReadCommits returns the commits selected by the reader's changeset,
	// in the order the backend walks them.
	ReadCommits(ctx context.Context) ([]Commit, error)
}

// Compile-time interface conformance checks.
var (
	_ Reader = (*CLIReader)(nil)
	_ Reader = (*HistoryReader)(nil)
)

// NewReader creates a reader for the given backend.
func NewReader(backend Backend, opts ReadOptions) (Reader, error) {
	switch backend {
	case BackendCLI, "":
		return NewCLIReader(opts, ExecRunner{}), nil
	case BackendGoGit:
		return NewHistoryReader(opts)
	default:
		return nil, fmt.Errorf("unknown git backend %q", backend)
	}
}
