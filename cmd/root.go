package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/jira-issues-go/config"
	"github.com/masmgr/jira-issues-go/internal/changeset"
	"github.com/masmgr/jira-issues-go/internal/output"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "jira-issues",
		Usage:   "Extract Jira issue references from a Git changeset",
		Version: "1.0.0",
		Commands: []*cli.Command{
			ExtractCmd(),
			ResolveCmd(),
			ScanCmd(),
		},
		Flags:  append(globalFlags(), extractFlags()...),
		Action: extractAction,
	}
}

// inputEnv returns the environment variables a flag is read from: the
// GitHub Actions INPUT_ forms of name followed by extra.
func inputEnv(name string, extra ...string) []string {
	upper := strings.ToUpper(name)
	vars := []string{"INPUT_" + upper}
	if alt := strings.ReplaceAll(upper, "-", "_"); alt != upper {
		vars = append(vars, "INPUT_"+alt)
	}
	return append(vars, extra...)
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file (default: " + config.FileName + " in the working or home directory)",
		},
		&cli.BoolFlag{
			Name:    "quiet",
			Aliases: []string{"q"},
			Usage:   "Suppress progress messages",
			EnvVars: []string{"JIRA_ISSUES_QUIET"},
		},
	}
}

// changesetFlags are the seven mutually exclusive changeset modes.
func changesetFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "releases-count", Usage: "Number of recent releases (approximated by a commit window)", EnvVars: inputEnv("releases-count")},
		&cli.StringFlag{Name: "time-range-start", Usage: "Start of the time window (YYYY-MM-DD or RFC 3339)", EnvVars: inputEnv("time-range-start")},
		&cli.StringFlag{Name: "time-range-end", Usage: "End of the time window", EnvVars: inputEnv("time-range-end")},
		&cli.StringFlag{Name: "commits-count", Usage: "Number of most recent commits", EnvVars: inputEnv("commits-count")},
		&cli.StringFlag{Name: "commits-since-sha", Usage: "Commits after this revision up to HEAD", EnvVars: inputEnv("commits-since-sha")},
		&cli.StringFlag{Name: "commits-shas", Usage: "Comma-separated list of commits", EnvVars: inputEnv("commits-shas")},
		&cli.StringFlag{Name: "commits-start-sha", Usage: "Start of an explicit commit range", EnvVars: inputEnv("commits-start-sha")},
		&cli.StringFlag{Name: "commits-end-sha", Usage: "End of an explicit commit range", EnvVars: inputEnv("commits-end-sha")},
		&cli.StringFlag{Name: "commits-include-start", Usage: "Include the start commit of the range (\"true\")", EnvVars: inputEnv("commits-include-start")},
		&cli.StringFlag{Name: "tags-start", Usage: "Commits after this tag", EnvVars: inputEnv("tags-start")},
		&cli.StringFlag{Name: "tags-end", Usage: "Tag ending the range (default: HEAD)", EnvVars: inputEnv("tags-end")},
	}
}

// gitFlags select the repository and how its history is read.
func gitFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "repo",
			Aliases: []string{"r"},
			Usage:   "Path to Git repository",
			Value:   ".",
			EnvVars: inputEnv("repo", "GITHUB_WORKSPACE"),
		},
		&cli.StringFlag{
			Name:    "backend",
			Usage:   "History backend (cli, go-git)",
			EnvVars: inputEnv("backend"),
		},
		&cli.IntFlag{
			Name:    "release-window",
			Usage:   "Commits read for releases-count (default: 100)",
			EnvVars: inputEnv("release-window"),
		},
		&cli.StringSliceFlag{
			Name:  "include",
			Usage: "Glob patterns to include (can be specified multiple times)",
		},
		&cli.StringSliceFlag{
			Name:  "exclude",
			Usage: "Glob patterns to exclude (can be specified multiple times)",
		},
	}
}

// outputFlags control the summary printed after a run.
func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Summary format (console, json, csv, markdown, ci)",
			EnvVars: inputEnv("format"),
		},
		&cli.IntFlag{
			Name:    "top",
			Aliases: []string{"n"},
			Usage:   "Number of issues listed in the summary (0 for all)",
			EnvVars: inputEnv("top"),
		},
		&cli.StringFlag{
			Name:  "summary-file",
			Usage: "Summary file path (default: stdout)",
		},
	}
}

func jiraFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "jira-base-url",
			Usage:   "Jira base URL, e.g. https://acme.atlassian.net",
			EnvVars: inputEnv("jira-base-url", "JIRA_BASE_URL"),
		},
		&cli.StringFlag{
			Name:    "jira-api-token",
			Usage:   "Jira API token (Cloud) or personal access token (Data Center)",
			EnvVars: inputEnv("jira-api-token", "JIRA_API_TOKEN"),
		},
		&cli.StringFlag{
			Name:    "jira-user-email",
			Usage:   "Account email, required for Jira Cloud",
			EnvVars: inputEnv("jira-user-email", "JIRA_USER_EMAIL"),
		},
		&cli.StringFlag{
			Name:    "project-keys",
			Usage:   "Comma-separated project keys to keep (used as the prefixes with --offline)",
			EnvVars: inputEnv("project-keys"),
		},
		&cli.BoolFlag{
			Name:    "offline",
			Usage:   "Skip the Jira API and use --project-keys as prefixes",
			EnvVars: inputEnv("offline"),
		},
	}
}

// changesetInputs collects the raw changeset flags.
func changesetInputs(c *cli.Context) changeset.Inputs {
	return changeset.Inputs{
		ReleasesCount:       c.String("releases-count"),
		TimeRangeStart:      c.String("time-range-start"),
		TimeRangeEnd:        c.String("time-range-end"),
		CommitsCount:        c.String("commits-count"),
		CommitsSinceSHA:     c.String("commits-since-sha"),
		CommitsSHAs:         c.String("commits-shas"),
		CommitsStartSHA:     c.String("commits-start-sha"),
		CommitsEndSHA:       c.String("commits-end-sha"),
		CommitsIncludeStart: c.String("commits-include-start"),
		TagsStart:           c.String("tags-start"),
		TagsEnd:             c.String("tags-end"),
	}
}

// loadConfig loads configuration from file or defaults and applies the
// flags that were set explicitly or through the environment.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	overrideString(c, "jira-base-url", &cfg.Jira.BaseURL)
	overrideString(c, "jira-user-email", &cfg.Jira.UserEmail)
	if keys := changeset.SplitList(c.String("project-keys")); len(keys) > 0 {
		cfg.Jira.ProjectKeys = keys
	}
	overrideString(c, "backend", &cfg.Git.Backend)
	overrideString(c, "remote", &cfg.Git.Remote)
	if c.IsSet("release-window") {
		cfg.Git.ReleaseWindow = c.Int("release-window")
	}
	overrideString(c, "output-file", &cfg.Output.File)
	overrideString(c, "format", &cfg.Output.Format)
	if c.IsSet("top") {
		cfg.Output.Top = c.Int("top")
	}

	// Apply filter overrides from CLI
	if includes := c.StringSlice("include"); len(includes) > 0 {
		cfg.Filters.Include = includes
	}
	if excludes := c.StringSlice("exclude"); len(excludes) > 0 {
		cfg.Filters.Exclude = excludes
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// overrideString replaces dst with the flag value when it is non-empty.
// Actions passes every declared input, so empty means "not provided".
func overrideString(c *cli.Context, name string, dst *string) {
	if v := strings.TrimSpace(c.String(name)); v != "" {
		*dst = v
	}
}

// Run executes the CLI application.
func Run() {
	if err := App().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if output.InActions() {
			fmt.Println(output.ErrorCommand(err.Error()))
		}
		os.Exit(1)
	}
}
