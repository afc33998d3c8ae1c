package git

import "strings"

// fieldSep separates the sha and subject fields of each commit in the log.
const fieldSep = "\x00"

// ParseLog decodes git log output rendered with logFormat.
//
// Empty tokens left by trailing separators are dropped and the remaining
// tokens are paired as (sha, subject). A trailing sha without a subject is
// kept with an empty message rather than failing the whole log.
func ParseLog(raw string) []Commit {
	if strings.TrimSpace(raw) == "" {
		return []Commit{}
	}

	parts := strings.Split(raw, fieldSep)
	tokens := parts[:0]
	for _, p := range parts {
		if p != "" {
			tokens = append(tokens, p)
		}
	}

	commits := make([]Commit, 0, (len(tokens)+1)/2)
	for i := 0; i < len(tokens); i += 2 {
		c := Commit{SHA: tokens[i]}
		if i+1 < len(tokens) {
			c.Message = tokens[i+1]
		}
		commits = append(commits, c)
	}

	return commits
}

// FormatLog renders commits the way git log does with logFormat.
func FormatLog(commits []Commit) string {
	var b strings.Builder
	for _, c := range commits {
		b.WriteString(c.SHA)
		b.WriteString(fieldSep)
		b.WriteString(c.Message)
		b.WriteString(fieldSep)
	}
	return b.String()
}
