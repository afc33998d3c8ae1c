package output

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVReportWriter writes one row per issue.
type CSVReportWriter struct{}

// Write outputs the report as CSV.
func (w *CSVReportWriter) Write(report *Report, options OutputOptions) error {
	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	writer := csv.NewWriter(out)

	if err := writer.Write([]string{"Key", "URL", "CommitCount", "Commits"}); err != nil {
		return err
	}

	for _, is := range limitTop(report.Issues, options.Top) {
		row := []string{
			is.Key,
			is.URL,
			strconv.Itoa(len(is.Commits)),
			strings.Join(is.Commits, " "),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
