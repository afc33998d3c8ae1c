package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// JSONReportWriter writes the full report as JSON.
type JSONReportWriter struct{}

// Write outputs the report as indented JSON. Top does not truncate the
// artifact form.
func (w *JSONReportWriter) Write(report *Report, options OutputOptions) error {
	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}
	return writeJSON(out, report)
}

// WriteArtifact encodes the report in memory and then writes it to path, so a
// failed encode leaves no partial file behind.
func WriteArtifact(report *Report, path string) error {
	var buf bytes.Buffer
	if err := writeJSON(&buf, report); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write artifact %s: %w", path, err)
	}
	return nil
}

func writeJSON(w io.Writer, data interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
