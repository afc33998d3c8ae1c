package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/jira-issues-go/internal/git"
	"github.com/masmgr/jira-issues-go/internal/issue"
	"github.com/masmgr/jira-issues-go/internal/output"
)

// ScanCmd returns the scan command.
func ScanCmd() *cli.Command {
	flags := append(outputFlags(),
		&cli.StringFlag{
			Name:    "input",
			Aliases: []string{"i"},
			Usage:   "NUL-delimited log (git log --format=%H%x00%s%x00); \"-\" or empty reads stdin",
		},
		&cli.StringFlag{
			Name:    "project-keys",
			Usage:   "Comma-separated issue prefixes",
			EnvVars: inputEnv("project-keys"),
		},
		&cli.StringFlag{
			Name:    "jira-base-url",
			Usage:   "Jira base URL used for issue links",
			EnvVars: []string{"JIRA_BASE_URL"},
		},
		&cli.StringFlag{
			Name:  "output-file",
			Usage: "Also write the report artifact to this path",
		},
		&cli.StringFlag{
			Name:  "repository",
			Usage: "Repository identifier owner/repo recorded in the report",
		},
	)

	return &cli.Command{
		Name:    "scan",
		Aliases: []string{"s"},
		Usage:   "Scan a raw commit log for issue keys without git or Jira",
		Flags:   flags,
		Action:  scanAction,
	}
}

func scanAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	format, err := output.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}
	if len(cfg.Jira.ProjectKeys) == 0 {
		return errors.New("--project-keys must name at least one prefix")
	}

	raw, err := readInput(c)
	if err != nil {
		return err
	}
	commits := git.ParseLog(raw)

	report := output.BuildReport(issue.Scan(commits, cfg.Jira.ProjectKeys), output.ReportInput{
		JiraBaseURL:  cfg.Jira.BaseURL,
		Repository:   strings.TrimSpace(c.String("repository")),
		TotalCommits: len(commits),
	})

	if path := strings.TrimSpace(c.String("output-file")); path != "" {
		if err := output.WriteArtifact(report, path); err != nil {
			return err
		}
	}

	return writeSummary(report, output.OutputOptions{
		Format:     format,
		Top:        cfg.Output.Top,
		OutputPath: c.String("summary-file"),
	})
}

func readInput(c *cli.Context) (string, error) {
	path := c.String("input")
	if path == "" || path == "-" {
		in := c.App.Reader
		if in == nil {
			in = os.Stdin
		}
		data, err := io.ReadAll(in)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read log %s: %w", path, err)
	}
	return string(data), nil
}
