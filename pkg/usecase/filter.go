package usecase

import (
	"context"

	"github.com/koren-henrik/dxrelay/pkg/domain/model"
)

// ShouldForward decides whether ev is sent to DX under cfg. The base URL must
// be configured and the repository URL, job name and head branch must
// each match their include pattern. Fields left empty by the extractor are
// matched as empty strings, so a pattern such as "^$" selects them.
func ShouldForward(ctx context.Context, cfg *model.FilterConfig, ev *model.PipelineEvent) bool {
	if !cfg.IsConfigured() {
		return false
	}

	return Matches(ctx, cfg.RepoPattern, &ev.RepositoryURL) &&
		Matches(ctx, cfg.JobPattern, &ev.SourceID) &&
		Matches(ctx, cfg.BranchPattern, &ev.HeadBranch)
}
