package output

import (
	"io"
	"os"
	"strconv"
	"strings"
)

func limitTop[T any](items []T, top int) []T {
	if top <= 0 || top >= len(items) {
		return items
	}
	return items[:top]
}

func openOutputWriter(outputPath string) (io.Writer, *os.File, error) {
	if outputPath == "" {
		return os.Stdout, nil, nil
	}
	file, err := os.Create(outputPath)
	if err != nil {
		return nil, nil, err
	}
	return file, file, nil
}

func shortSHA(sha string) string {
	if len(sha) <= 8 {
		return sha
	}
	return sha[:8]
}

func shortSHAs(shas []string) []string {
	out := make([]string, len(shas))
	for i, s := range shas {
		out[i] = shortSHA(s)
	}
	return out
}

func truncateMessage(msg string, maxLen int) string {
	if len(msg) <= maxLen {
		return msg
	}
	return msg[:maxLen-3] + "..."
}

func escapeMarkdown(s string) string {
	replacer := strings.NewReplacer(
		"|", "\\|",
		"*", "\\*",
		"_", "\\_",
		"`", "\\`",
	)
	return replacer.Replace(s)
}

func changesetLabel(m ChangesetMetadata) string {
	parts := []string{m.Type}
	switch {
	case m.Count != nil:
		parts = append(parts, strconv.Itoa(*m.Count))
	case len(m.SHAs) > 0:
		parts = append(parts, strings.Join(shortSHAs(m.SHAs), ", "))
	case m.Start != "" && m.End != "":
		parts = append(parts, m.Start+" to "+m.End)
	case m.Start != "":
		parts = append(parts, "from "+m.Start)
	}
	return strings.Join(parts, " ")
}
