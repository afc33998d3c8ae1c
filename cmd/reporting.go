package cmd

import (
	"github.com/masmgr/jira-issues-go/internal/output"
)

// writeSummary prints the report in the requested summary format.
func writeSummary(report *output.Report, opts output.OutputOptions) error {
	writer := output.NewReportWriter(opts.Format)
	return writer.Write(report, opts)
}
