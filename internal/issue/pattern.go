package issue

import (
	"regexp"
	"strings"
)

// Pattern matches issue keys of the form PREFIX-NUMBER for a fixed set of
// project prefixes. A Pattern built from no prefixes matches nothing.
type Pattern struct {
	re *regexp.Regexp
}

// BuildPattern compiles the prefixes into a single matcher that ignores ASCII
// case. Blank prefixes are skipped. Other characters are matched literally.
func BuildPattern(prefixes []string) *Pattern {
	alts := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		alts = append(alts, asciiFold(p))
	}
	if len(alts) == 0 {
		return &Pattern{}
	}

	// No leading boundary: "XPROJ-1" yields "PROJ-1" for prefix PROJ.
	return &Pattern{re: regexp.MustCompile(`(` + strings.Join(alts, "|") + `)-[0-9]+`)}
}

// asciiFold quotes prefix, turning each ASCII letter into a two-case class.
// Matches stay ASCII, so strings.ToUpper maps them onto the prefix.
func asciiFold(prefix string) string {
	var b strings.Builder
	for _, r := range prefix {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteString("[" + string(r-'a'+'A') + string(r) + "]")
		case r >= 'A' && r <= 'Z':
			b.WriteString("[" + string(r) + string(r-'A'+'a') + "]")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	return b.String()
}

// Empty reports whether the pattern can never match.
func (p *Pattern) Empty() bool {
	return p == nil || p.re == nil
}

// Extract returns the distinct issue keys referenced by message, uppercased,
// in the order they first appear.
func (p *Pattern) Extract(message string) []string {
	if p.Empty() {
		return []string{}
	}

	matches := p.re.FindAllString(message, -1)
	keys := make([]string, 0, len(matches))
	seen := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		key := strings.ToUpper(m)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	return keys
}

// String returns the regular expression source, or "" for an empty pattern.
func (p *Pattern) String() string {
	if p.Empty() {
		return ""
	}
	return p.re.String()
}
