package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/masmgr/jira-issues-go/internal/changeset"
)

// CommandError reports a git invocation that exited with a non-zero status.
type CommandError struct {
	Args     []string
	ExitCode int
	Stderr   string
}

func (e *CommandError) Error() string {
	return "git command failed: " + strings.TrimRight(e.Stderr, "\r\n")
}

// Executor runs git with the given arguments and returns its stdout.
// A non-zero exit status must be reported as a *CommandError.
type Executor interface {
	Run(ctx context.Context, args []string) ([]byte, error)
}

// ExecRunner runs the git binary found on PATH.
type ExecRunner struct {
	// Binary overrides the executable name, default "git".
	Binary string
}

// Run executes git and captures stdout and stderr separately.
func (e ExecRunner) Run(ctx context.Context, args []string) ([]byte, error) {
	bin := e.Binary
	if bin == "" {
		bin = "git"
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, &CommandError{Args: args, ExitCode: exitErr.ExitCode(), Stderr: stderr.String()}
		}
		return nil, fmt.Errorf("run %s: %w", bin, err)
	}

	return stdout.Bytes(), nil
}

// CLIReader reads changeset commits by running git log.
type CLIReader struct {
	opts ReadOptions
	exec Executor
}

// NewCLIReader creates a reader that resolves the changeset into git log
// arguments and runs them with exec.
func NewCLIReader(opts ReadOptions, exec Executor) *CLIReader {
	return &CLIReader{opts: opts, exec: exec}
}

// Args returns the full git argument list the reader will run.
func (r *CLIReader) Args() []string {
	query := ResolveRange(r.opts.Changeset, r.opts.resolveOptions())
	return LogArgs(r.opts.RepoPath, query, r.opts.Include, r.opts.Exclude)
}

// ReadCommits runs git log for the changeset and parses its output.
func (r *CLIReader) ReadCommits(ctx context.Context) ([]Commit, error) {
	if err := validatePatterns(r.opts.Include, r.opts.Exclude); err != nil {
		return nil, err
	}

	query := ResolveRange(r.opts.Changeset, r.opts.resolveOptions())
	if len(query) == 0 {
		return nil, changeset.ErrNoChangeset
	}

	out, err := r.exec.Run(ctx, LogArgs(r.opts.RepoPath, query, r.opts.Include, r.opts.Exclude))
	if err != nil {
		return nil, err
	}

	return ParseLog(string(out)), nil
}
