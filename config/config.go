package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileName is the configuration file looked up when no path is given.
const FileName = ".jira-issues.json"

// Config is the root configuration structure.
type Config struct {
	Jira    JiraConfig   `json:"jira"`
	Git     GitConfig    `json:"git"`
	Output  OutputConfig `json:"output"`
	Filters FilterConfig `json:"filters"`
}

// JiraConfig holds tracker connection settings. The API token is never read
// from the file.
type JiraConfig struct {
	BaseURL     string   `json:"baseUrl"`
	UserEmail   string   `json:"userEmail"`
	ProjectKeys []string `json:"projectKeys"` // Allow-list, or the prefixes themselves when offline
}

// GitConfig holds history reading options.
type GitConfig struct {
	Backend       string `json:"backend"`       // "cli" or "go-git", default "cli"
	ReleaseWindow int    `json:"releaseWindow"` // Commits read for releases-count, default 100
	Remote        string `json:"remote"`        // Remote used to derive owner/repo, default "origin"
}

// OutputConfig holds artifact and summary options.
type OutputConfig struct {
	File   string `json:"file"`   // Artifact path, default "jira-issues.json"
	Format string `json:"format"` // Summary format, default "console"
	Top    int    `json:"top"`    // Issues listed in the summary, 0 for all
}

// FilterConfig holds file path filtering options.
type FilterConfig struct {
	Include []string `json:"include"`
	Exclude []string `json:"exclude"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Jira: JiraConfig{
			ProjectKeys: []string{},
		},
		Git: GitConfig{
			Backend:       "cli",
			ReleaseWindow: 100,
			Remote:        "origin",
		},
		Output: OutputConfig{
			File:   "jira-issues.json",
			Format: "console",
		},
		Filters: FilterConfig{
			Include: []string{},
			Exclude: []string{},
		},
	}
}

// Validate checks values that have no sensible fallback.
func (c *Config) Validate() error {
	if c.Git.ReleaseWindow < 0 {
		return fmt.Errorf("git.releaseWindow must not be negative, got %d", c.Git.ReleaseWindow)
	}
	if c.Output.Top < 0 {
		return fmt.Errorf("output.top must not be negative, got %d", c.Output.Top)
	}
	return nil
}

// LoadConfig loads configuration from a file, merging with defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		// Try default locations
		candidates := []string{FileName}
		if home, err := os.UserHomeDir(); err == nil && home != "" {
			candidates = append(candidates, filepath.Join(home, FileName))
		} else if envHome := os.Getenv("HOME"); envHome != "" {
			candidates = append(candidates, filepath.Join(envHome, FileName))
		}
		for _, p := range candidates {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to a file.
func SaveConfig(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
