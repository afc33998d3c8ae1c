package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Outputs are the step outputs published for later workflow steps.
type Outputs struct {
	IssueLinks string // comma-joined browse URLs
	IssueKeys  string // comma-joined keys
	IssueCount int
}

// BuildOutputs derives the step outputs from a report, preserving its
// issue order.
func BuildOutputs(report *Report) Outputs {
	links := make([]string, len(report.Issues))
	keys := make([]string, len(report.Issues))
	for i, is := range report.Issues {
		links[i] = is.URL
		keys[i] = is.Key
	}
	return Outputs{
		IssueLinks: strings.Join(links, ","),
		IssueKeys:  strings.Join(keys, ","),
		IssueCount: report.Metadata.TotalIssues,
	}
}

// Pairs returns the outputs as ordered name/value pairs.
func (o Outputs) Pairs() [][2]string {
	return [][2]string{
		{"issue-links", o.IssueLinks},
		{"issue-keys", o.IssueKeys},
		{"issue-count", strconv.Itoa(o.IssueCount)},
	}
}

const outputDelimiter = "JIRA_ISSUES_EOF"

// WriteOutputs writes outputs in the GITHUB_OUTPUT file format. Values
// containing newlines use the heredoc form.
func WriteOutputs(w io.Writer, o Outputs) error {
	for _, kv := range o.Pairs() {
		name, value := kv[0], kv[1]
		var err error
		if strings.ContainsAny(value, "\r\n") {
			_, err = fmt.Fprintf(w, "%s<<%s\n%s\n%s\n", name, outputDelimiter, value, outputDelimiter)
		} else {
			_, err = fmt.Fprintf(w, "%s=%s\n", name, value)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// PublishOutputs appends the outputs to the file named by GITHUB_OUTPUT, or
// writes them to fallback when the variable is unset.
func PublishOutputs(o Outputs, fallback io.Writer) error {
	path := os.Getenv("GITHUB_OUTPUT")
	if path == "" {
		return WriteOutputs(fallback, o)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open GITHUB_OUTPUT: %w", err)
	}
	if err := WriteOutputs(f, o); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// InActions reports whether the process runs as a GitHub Actions step.
func InActions() bool {
	return os.Getenv("GITHUB_ACTIONS") == "true"
}

// ErrorCommand formats msg as a workflow error annotation.
func ErrorCommand(msg string) string {
	r := strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A")
	return "::error::" + r.Replace(msg)
}
