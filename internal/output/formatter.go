package output

import (
	"fmt"
	"strings"
)

// Compile-time interface conformance checks.
var (
	_ ReportWriter = (*ConsoleReportWriter)(nil)
	_ ReportWriter = (*JSONReportWriter)(nil)
	_ ReportWriter = (*CSVReportWriter)(nil)
	_ ReportWriter = (*MarkdownReportWriter)(nil)
	_ ReportWriter = (*CIReportWriter)(nil)
)

// OutputFormat represents the output format type.
type OutputFormat string

const (
	FormatConsole  OutputFormat = "console"
	FormatJSON     OutputFormat = "json"
	FormatCSV      OutputFormat = "csv"
	FormatMarkdown OutputFormat = "markdown"
	FormatCI       OutputFormat = "ci"
)

// ParseFormat validates a format name. An empty name selects console.
func ParseFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatConsole, nil
	case FormatConsole, FormatJSON, FormatCSV, FormatMarkdown, FormatCI:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (expected console, json, csv, markdown or ci)", s)
	}
}

// OutputOptions controls how the summary is rendered.
type OutputOptions struct {
	Format     OutputFormat
	Top        int    // Maximum issues listed, 0 for all
	OutputPath string // Summary destination, stdout when empty
}

// ReportWriter renders a report summary.
type ReportWriter interface {
	Write(report *Report, options OutputOptions) error
}

// NewReportWriter creates a report writer for the specified format.
func NewReportWriter(format OutputFormat) ReportWriter {
	switch format {
	case FormatJSON:
		return &JSONReportWriter{}
	case FormatCSV:
		return &CSVReportWriter{}
	case FormatMarkdown:
		return &MarkdownReportWriter{}
	case FormatCI:
		return &CIReportWriter{}
	default:
		return &ConsoleReportWriter{}
	}
}
