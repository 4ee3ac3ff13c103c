package usecase

import (
	"regexp"
	"strings"

	"github.com/koren-henrik/dxrelay/pkg/domain/model"
)

// CheckConfig reports problems an operator should fix in cfg. Invalid
// patterns are errors for the operator even though matching fails open.
func CheckConfig(cfg *model.FilterConfig) []model.ConfigFinding {
	var findings []model.ConfigFinding

	baseURL := strings.TrimSpace(cfg.BaseURL)
	switch {
	case baseURL == "":
		findings = append(findings, model.ConfigFinding{
			Field:    "base_url",
			Severity: model.SeverityWarning,
			Message:  "DX API base URL is empty, runs will not be sent",
		})
	case !strings.HasPrefix(baseURL, "https://"):
		findings = append(findings, model.ConfigFinding{
			Field:    "base_url",
			Severity: model.SeverityWarning,
			Message:  "DX base URL should start with https://",
		})
	}

	patterns := []struct {
		field string
		label string
		value string
	}{
		{"include_repo_pattern", "Repository pattern", cfg.RepoPattern},
		{"include_job_pattern", "Job name pattern", cfg.JobPattern},
		{"include_branch_pattern", "Branch pattern", cfg.BranchPattern},
	}
	for _, p := range patterns {
		if p.value == "" {
			continue
		}
		if _, err := regexp.Compile(p.value); err != nil {
			findings = append(findings, model.ConfigFinding{
				Field:    p.field,
				Severity: model.SeverityError,
				Message:  p.label + " has an invalid regex pattern: " + err.Error(),
			})
		}
	}

	return findings
}
