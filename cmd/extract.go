package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/jira-issues-go/internal/git"
	"github.com/masmgr/jira-issues-go/internal/issue"
	"github.com/masmgr/jira-issues-go/internal/jira"
	"github.com/masmgr/jira-issues-go/internal/output"
)

// ExtractCmd returns the extract command.
func ExtractCmd() *cli.Command {
	return &cli.Command{
		Name:    "extract",
		Aliases: []string{"x"},
		Usage:   "Extract Jira issue keys referenced by the commits of a changeset",
		Flags:   extractFlags(),
		Action:  extractAction,
	}
}

func extractFlags() []cli.Flag {
	flags := changesetFlags()
	flags = append(flags, gitFlags()...)
	flags = append(flags, jiraFlags()...)
	flags = append(flags, outputFlags()...)
	return append(flags,
		&cli.StringFlag{
			Name:    "output-file",
			Aliases: []string{"o"},
			Usage:   "Report artifact path (default: jira-issues.json)",
			EnvVars: inputEnv("output-file"),
		},
		&cli.StringFlag{
			Name:    "repository",
			Usage:   "Repository identifier owner/repo (default: derived from the remote)",
			EnvVars: inputEnv("repository", "GITHUB_REPOSITORY"),
		},
		&cli.StringFlag{
			Name:    "remote",
			Usage:   "Remote used to derive the repository identifier (default: origin)",
			EnvVars: inputEnv("remote"),
		},
	)
}

func extractAction(c *cli.Context) error {
	cmdCtx, err := NewCommandContext(c)
	if err != nil {
		return err
	}
	log := cmdCtx.Progress
	jiraCfg := cmdCtx.Config.Jira

	if jiraCfg.BaseURL == "" {
		return errors.New("jira base URL is required (--jira-base-url or JIRA_BASE_URL)")
	}

	log.phase("Starting Jira issue extraction...")

	// Resolve issue prefixes
	prefixes, err := projectPrefixes(c, cmdCtx)
	if err != nil {
		return err
	}
	if len(prefixes) == 0 {
		log.warn("No project keys available; no issue can match.")
	} else {
		log.count("Found %d project keys: %s", len(prefixes), strings.Join(prefixes, ", "))
	}

	// Read the changeset
	log.phase("Reading commits for %s...", cmdCtx)
	reader, err := git.NewReader(cmdCtx.Backend, cmdCtx.ReadOptions())
	if err != nil {
		return fmt.Errorf("failed to open repository: %w", err)
	}
	commits, err := reader.ReadCommits(c.Context)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}
	log.count("Read %d commits", len(commits))

	pattern := issue.BuildPattern(prefixes)
	if !pattern.Empty() {
		log.info("Issue pattern: %s", pattern)
	}
	issues := issue.ScanPattern(commits, pattern)

	report := output.BuildReport(issues, output.ReportInput{
		JiraBaseURL:  jiraCfg.BaseURL,
		Repository:   cmdCtx.RepositoryName(c),
		Changeset:    cmdCtx.Changeset,
		TotalCommits: len(commits),
	})

	path := cmdCtx.artifactPath()
	if err := output.WriteArtifact(report, path); err != nil {
		return err
	}
	if err := deliverReport(c, cmdCtx, report); err != nil {
		// A failed run leaves no artifact behind.
		os.Remove(path)
		return err
	}
	log.info("Report written to %s", path)
	log.count("Found %d Jira issues across %d commits", report.Metadata.TotalIssues, report.Metadata.TotalCommits)
	return nil
}

// deliverReport prints the summary and publishes the step outputs.
func deliverReport(c *cli.Context, cmdCtx *CommandContext, report *output.Report) error {
	if err := writeSummary(report, cmdCtx.OutputOptions(c)); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return output.PublishOutputs(output.BuildOutputs(report), cmdCtx.Progress.writer())
}

// projectPrefixes returns the issue prefixes to scan for: the configured
// project keys when offline, otherwise the keys visible in Jira narrowed by
// the configured allow-list.
func projectPrefixes(c *cli.Context, cmdCtx *CommandContext) ([]string, error) {
	jiraCfg := cmdCtx.Config.Jira

	if c.Bool("offline") {
		if len(jiraCfg.ProjectKeys) == 0 {
			return nil, errors.New("--offline requires --project-keys")
		}
		return jiraCfg.ProjectKeys, nil
	}

	token := strings.TrimSpace(c.String("jira-api-token"))
	if token == "" {
		return nil, errors.New("jira API token is required (--jira-api-token or JIRA_API_TOKEN)")
	}
	if jira.IsCloud(jiraCfg.BaseURL) && jiraCfg.UserEmail == "" {
		return nil, jira.ErrEmailRequired
	}

	cmdCtx.Progress.phase("Fetching project keys from %s...", jiraCfg.BaseURL)
	return jira.FetchProjectKeys(c.Context, jira.Options{
		BaseURL: jiraCfg.BaseURL,
		Token:   token,
		Email:   jiraCfg.UserEmail,
	}, jiraCfg.ProjectKeys)
}
