package output

import (
	"fmt"
	"strings"
)

// MarkdownReportWriter writes the report as a Markdown table with links.
type MarkdownReportWriter struct{}

// Write outputs the report as Markdown.
func (w *MarkdownReportWriter) Write(report *Report, options OutputOptions) error {
	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	meta := report.Metadata

	// Header
	fmt.Fprintln(out, "# Jira Issues")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "**Repository:** %s\n\n", escapeMarkdown(meta.Repository))
	fmt.Fprintf(out, "**Changeset:** %s\n\n", escapeMarkdown(changesetLabel(meta.Changeset)))
	fmt.Fprintf(out, "**Total Commits:** %d\n\n", meta.TotalCommits)
	fmt.Fprintf(out, "**Total Issues:** %d\n\n", meta.TotalIssues)

	if len(report.Issues) == 0 {
		fmt.Fprintln(out, "_No issue references found._")
		return nil
	}

	// Table
	fmt.Fprintln(out, "| # | Issue | Commits |")
	fmt.Fprintln(out, "|---|-------|---------|")
	for i, is := range limitTop(report.Issues, options.Top) {
		commits := make([]string, len(is.Commits))
		for j, sha := range is.Commits {
			commits[j] = "`" + shortSHA(sha) + "`"
		}
		fmt.Fprintf(out, "| %d | [%s](%s) | %s |\n", i+1, is.Key, is.URL, strings.Join(commits, " "))
	}

	return nil
}
