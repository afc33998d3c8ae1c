package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/jira-issues-go/config"
	"github.com/masmgr/jira-issues-go/internal/changeset"
	"github.com/masmgr/jira-issues-go/internal/git"
	"github.com/masmgr/jira-issues-go/internal/output"
)

// CommandContext holds common state for command execution.
// It encapsulates the configuration and changeset parsing shared by the
// extract and resolve commands.
type CommandContext struct {
	Config    *config.Config
	RepoPath  string
	Changeset changeset.Spec
	Backend   git.Backend
	Format    output.OutputFormat
	Progress  *progress
}

// NewCommandContext creates a context from CLI flags. Every configuration
// error is reported here, before git or Jira is contacted.
func NewCommandContext(c *cli.Context) (*CommandContext, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	spec, err := changeset.Parse(changesetInputs(c))
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	backend, err := git.ParseBackend(cfg.Git.Backend)
	if err != nil {
		return nil, err
	}
	format, err := output.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}

	repoPath := c.String("repo")
	if repoPath == "" {
		repoPath = "."
	}

	return &CommandContext{
		Config:    cfg,
		RepoPath:  repoPath,
		Changeset: spec,
		Backend:   backend,
		Format:    format,
		Progress:  newProgress(c),
	}, nil
}

// ReadOptions builds the history reader options.
func (ctx *CommandContext) ReadOptions() git.ReadOptions {
	return git.ReadOptions{
		RepoPath:      ctx.RepoPath,
		Changeset:     ctx.Changeset,
		ReleaseWindow: ctx.Config.Git.ReleaseWindow,
		Include:       ctx.Config.Filters.Include,
		Exclude:       ctx.Config.Filters.Exclude,
	}
}

// RepositoryName resolves the owner/repo label: the explicit flag or
// GITHUB_REPOSITORY, else the configured remote, else the directory name.
func (ctx *CommandContext) RepositoryName(c *cli.Context) string {
	if name := strings.TrimSpace(c.String("repository")); name != "" {
		return name
	}

	name, err := git.RepositoryName(ctx.RepoPath, ctx.Config.Git.Remote)
	if err == nil {
		return name
	}
	ctx.Progress.warn("Could not derive repository from remote %q: %v", ctx.Config.Git.Remote, err)

	abs, err := filepath.Abs(ctx.RepoPath)
	if err != nil {
		return ctx.RepoPath
	}
	return filepath.Base(abs)
}

// OutputOptions creates OutputOptions for the summary writer.
func (ctx *CommandContext) OutputOptions(c *cli.Context) output.OutputOptions {
	return output.OutputOptions{
		Format:     ctx.Format,
		Top:        ctx.Config.Output.Top,
		OutputPath: c.String("summary-file"),
	}
}

// artifactPath returns the report destination, falling back to the default
// when the configured value is blank.
func (ctx *CommandContext) artifactPath() string {
	if p := strings.TrimSpace(ctx.Config.Output.File); p != "" {
		return p
	}
	return config.DefaultConfig().Output.File
}

func (ctx *CommandContext) String() string {
	return fmt.Sprintf("%s (%s backend)", ctx.Changeset.Modes()[0], ctx.Backend)
}
