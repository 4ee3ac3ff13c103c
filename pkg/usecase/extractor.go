package usecase

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/m-mizutani/ctxlog"

	"github.com/koren-henrik/dxrelay/pkg/domain/interfaces"
	"github.com/koren-henrik/dxrelay/pkg/domain/model"
)

// branchPrefixes are stripped from branch names, in this order
var branchPrefixes = []string{
	"refs/heads/",
	"refs/remotes/origin/",
	"origin/",
}

var repoNameSeparator = regexp.MustCompile(`[/:]`)

// Extractor builds the canonical PipelineEvent of a completed run
type Extractor struct {
	identity interfaces.IdentityResolver
}

// NewExtractor creates a new Extractor. identity may be nil, in which case
// contributor emails come from explicit contributor metadata only.
func NewExtractor(identity interfaces.IdentityResolver) *Extractor {
	return &Extractor{identity: identity}
}

// Extract reconciles the run metadata into a PipelineEvent. It never fails;
// missing metadata leaves the corresponding fields empty.
func (x *Extractor) Extract(ctx context.Context, run *model.Run) *model.PipelineEvent {
	var repoURL, commitSHA, headBranch, baseBranch, prNumber string

	// Source control build data
	if bd := run.BuildData; bd != nil {
		if len(bd.RemoteURLs) > 0 {
			repoURL = bd.RemoteURLs[0]
		}
		if rev := bd.LastBuiltRevision; rev != nil {
			commitSHA = rev.SHA1
			if len(rev.Branches) > 0 {
				headBranch = rev.Branches[0].Name
			}
		}
	}

	// Change request metadata overrides the checked out branch
	if rev := run.SCMRevision; rev != nil && rev.Head != nil {
		head := rev.Head
		if cr := head.ChangeRequest; cr != nil {
			headBranch = cr.SourceBranch
			if headBranch == "" {
				headBranch = head.Name
			}
			baseBranch = cr.TargetBranch
			prNumber = cr.ID
		} else if headBranch == "" {
			headBranch = head.Name
		}
	}

	jobName := run.Job.FullName
	pipelineName := jobName
	if pipelineName == "" {
		pipelineName = "jenkins-" + run.Job.Name
	}

	startedAt := run.StartedAt.Unix()
	finishedAt := startedAt
	if run.Duration > 0 {
		finishedAt = run.StartedAt.Add(run.Duration).Unix()
	}

	return &model.PipelineEvent{
		PipelineName:     pipelineName,
		SourceID:         jobName,
		ReferenceID:      jobName + " #" + strconv.Itoa(run.Number),
		StartedAt:        startedAt,
		FinishedAt:       finishedAt,
		Status:           run.Result.Status(),
		RepositoryURL:    repoURL,
		RepositoryName:   RepositoryName(repoURL),
		HeadBranch:       NormalizeBranch(headBranch),
		BaseBranch:       NormalizeBranch(baseBranch),
		CommitSHA:        commitSHA,
		PRNumber:         prNumber,
		ContributorEmail: x.contributorEmail(ctx, run),
	}
}

// contributorEmail resolves the email by priority: explicit contributor
// metadata, then change log authors in stored order, then the user who
// triggered the run.
func (x *Extractor) contributorEmail(ctx context.Context, run *model.Run) string {
	if c := run.Contributor; c != nil && c.Email != "" {
		return c.Email
	}

	if x.identity == nil {
		return ""
	}

	for _, cs := range run.ChangeSets {
		for _, entry := range cs.Entries {
			if entry.Author == nil {
				continue
			}
			if email := x.identity.ResolveEmail(ctx, *entry.Author); email != "" {
				return email
			}
		}
	}

	if userID := run.TriggeringUserID(); userID != "" {
		if email := x.identity.ResolveEmail(ctx, model.User{ID: userID}); email != "" {
			ctxlog.From(ctx).Info("Contributor email resolved from triggering user", "user_id", userID)
			return email
		}
	}

	return ""
}

// NormalizeBranch strips refs/heads/, refs/remotes/origin/ and origin/
// prefixes until none applies, so NormalizeBranch(NormalizeBranch(x)) equals
// NormalizeBranch(x).
func NormalizeBranch(name string) string {
	for {
		stripped := false
		for _, prefix := range branchPrefixes {
			if rest, ok := strings.CutPrefix(name, prefix); ok {
				name = rest
				stripped = true
				break
			}
		}
		if !stripped {
			return name
		}
	}
}

// RepositoryName returns the last path segment of a repository URL without
// the .git suffix. Both "/" and ":" delimit segments so scp-like git URLs work.
func RepositoryName(repoURL string) string {
	if repoURL == "" {
		return ""
	}
	parts := repoNameSeparator.Split(strings.TrimSuffix(repoURL, ".git"), -1)
	return parts[len(parts)-1]
}
