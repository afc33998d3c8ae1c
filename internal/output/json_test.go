package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteArtifact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jira-issues.json")

	if err := WriteArtifact(sampleReport(), path); err != nil {
		t.Fatalf("WriteArtifact: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	text := string(data)

	if !strings.HasPrefix(text, "{\n  \"metadata\": {\n    \"generatedAt\": ") {
		t.Errorf("artifact does not use 2-space indentation:\n%s", text)
	}
	if !strings.HasSuffix(text, "}\n") {
		t.Errorf("artifact does not end with a newline")
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("artifact is not valid JSON: %v", err)
	}
	meta := decoded["metadata"].(map[string]interface{})
	for _, field := range []string{"generatedAt", "jiraBaseUrl", "repository", "changeset", "totalIssues", "totalCommits"} {
		if _, ok := meta[field]; !ok {
			t.Errorf("metadata.%s missing", field)
		}
	}
	cs := meta["changeset"].(map[string]interface{})
	if cs["type"] != "tags" || cs["start"] != "v1.0.0" || cs["end"] != "v1.1.0" {
		t.Errorf("changeset = %v", cs)
	}
	for _, absent := range []string{"count", "shas"} {
		if _, ok := cs[absent]; ok {
			t.Errorf("changeset.%s present, expected it omitted", absent)
		}
	}

	issues := decoded["issues"].([]interface{})
	first := issues[0].(map[string]interface{})
	if first["key"] != "INFRA-7" || first["url"] != "https://acme.atlassian.net/browse/INFRA-7" {
		t.Errorf("issues[0] = %v", first)
	}
}

func TestWriteArtifact_EmptyIssuesIsArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	report := BuildReport(nil, ReportInput{GeneratedAt: testGeneratedAt})

	if err := WriteArtifact(report, path); err != nil {
		t.Fatalf("WriteArtifact: %v", err)
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), `"issues": []`) {
		t.Errorf("artifact = %s, expected an empty issues array", data)
	}
}

func TestWriteArtifact_BadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "dir", "out.json")
	if err := WriteArtifact(sampleReport(), path); err == nil {
		t.Fatal("expected error for unwritable path, got nil")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("artifact exists after failure")
	}
}

func TestJSONReportWriter_IgnoresTop(t *testing.T) {
	text := writeToTemp(t, &JSONReportWriter{}, sampleReport(), 1)

	var decoded Report
	if err := json.Unmarshal([]byte(text), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(decoded.Issues) != 3 {
		t.Errorf("issues = %d, expected all 3", len(decoded.Issues))
	}
}
