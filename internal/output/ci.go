package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// CIReportWriter writes the report as NDJSON (one JSON object per line) for CI pipelines.
type CIReportWriter struct{}

// CISummary is the first line of CI output, containing aggregate statistics.
type CISummary struct {
	Type         string `json:"type"`
	Repository   string `json:"repository"`
	Changeset    string `json:"changeset"`
	TotalIssues  int    `json:"totalIssues"`
	TotalCommits int    `json:"totalCommits"`
}

// CIIssueEntry represents a single issue in CI output.
type CIIssueEntry struct {
	Type    string   `json:"type"`
	Key     string   `json:"key"`
	URL     string   `json:"url"`
	Commits []string `json:"commits"`
}

// Write outputs the report as NDJSON.
func (w *CIReportWriter) Write(report *Report, options OutputOptions) error {
	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	summary := CISummary{
		Type:         "summary",
		Repository:   report.Metadata.Repository,
		Changeset:    report.Metadata.Changeset.Type,
		TotalIssues:  report.Metadata.TotalIssues,
		TotalCommits: report.Metadata.TotalCommits,
	}
	if err := writeNDJSONLine(out, summary); err != nil {
		return err
	}

	for _, is := range limitTop(report.Issues, options.Top) {
		entry := CIIssueEntry{
			Type:    "issue",
			Key:     is.Key,
			URL:     is.URL,
			Commits: is.Commits,
		}
		if err := writeNDJSONLine(out, entry); err != nil {
			return err
		}
	}

	return nil
}

func writeNDJSONLine(w io.Writer, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal NDJSON: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}
