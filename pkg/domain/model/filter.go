package model

import "strings"

// FilterConfig is the operator configuration snapshot used for one run
type FilterConfig struct {
	BaseURL       string `toml:"base_url" yaml:"base_url" firestore:"base_url"`
	RepoPattern   string `toml:"include_repo_pattern" yaml:"include_repo_pattern" firestore:"include_repo_pattern"`
	JobPattern    string `toml:"include_job_pattern" yaml:"include_job_pattern" firestore:"include_job_pattern"`
	BranchPattern string `toml:"include_branch_pattern" yaml:"include_branch_pattern" firestore:"include_branch_pattern"`
}

// IsConfigured reports whether a non-blank base URL is set
func (c *FilterConfig) IsConfigured() bool {
	return c != nil && strings.TrimSpace(c.BaseURL) != ""
}

// SyncURL returns the full DX sync endpoint URL
func (c *FilterConfig) SyncURL(path string) string {
	return strings.TrimRight(c.BaseURL, "/") + path
}

// FindingSeverity is the severity of a configuration check finding
type FindingSeverity string

const (
	SeverityWarning FindingSeverity = "warning"
	SeverityError   FindingSeverity = "error"
)

// ConfigFinding is one problem found while checking a FilterConfig
type ConfigFinding struct {
	Field    string
	Severity FindingSeverity
	Message  string
}
