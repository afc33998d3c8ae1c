package output

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
)

// ConsoleReportWriter writes a coloured summary table.
type ConsoleReportWriter struct{}

// Write outputs the report summary to the console.
func (w *ConsoleReportWriter) Write(report *Report, options OutputOptions) error {
	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	meta := report.Metadata
	color.New(color.FgGreen).Fprintln(out, "Jira Issue Extraction Results")
	fmt.Fprintf(out, "Repository: %s\n", meta.Repository)
	fmt.Fprintf(out, "Changeset: %s\n", changesetLabel(meta.Changeset))
	fmt.Fprintf(out, "Total commits scanned: %d, Total issues: %d\n\n", meta.TotalCommits, meta.TotalIssues)

	if len(report.Issues) == 0 {
		fmt.Fprintln(out, "No issue references found.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "#\tKey\tCommits\tURL")
	for i, is := range limitTop(report.Issues, options.Top) {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n",
			i+1,
			color.YellowString(is.Key),
			truncateMessage(strings.Join(shortSHAs(is.Commits), " "), 40),
			is.URL,
		)
	}

	return tw.Flush()
}
