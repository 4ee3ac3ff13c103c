package model

import "time"

// Result is the raw result reported by the CI host for a completed run
type Result string

const (
	ResultSuccess  Result = "SUCCESS"
	ResultFailure  Result = "FAILURE"
	ResultAborted  Result = "ABORTED"
	ResultUnstable Result = "UNSTABLE"
	ResultNotBuilt Result = "NOT_BUILT"
)

// Status maps the host result to the status reported to DX. Unknown and
// absent results map to StatusUnknown.
func (r Result) Status() Status {
	switch r {
	case ResultSuccess:
		return StatusSuccess
	case ResultFailure, ResultUnstable:
		return StatusFailure
	case ResultAborted:
		return StatusCancelled
	default:
		return StatusUnknown
	}
}

// IsSuccess reports whether the run completed with a SUCCESS result
func (r Result) IsSuccess() bool {
	return r == ResultSuccess
}

// Run is the handle of one completed CI run together with the metadata the
// host attached to it. Every metadata field may be nil.
type Run struct {
	Job       Job
	Number    int
	Result    Result
	StartedAt time.Time
	Duration  time.Duration

	BuildData   *BuildData
	SCMRevision *SCMRevision
	Contributor *Contributor
	ChangeSets  []ChangeSet
	Causes      []Cause
}

// Job identifies the parent job of a run
type Job struct {
	Name     string // Short name (e.g. "app")
	FullName string // Folder qualified name (e.g. "acme/app")
}

// BuildData is the source control data recorded by the git checkout
type BuildData struct {
	RemoteURLs        []string
	LastBuiltRevision *Revision
}

// Revision is a built commit and the branches pointing at it
type Revision struct {
	SHA1     string
	Branches []Branch
}

// Branch is a named ref
type Branch struct {
	Name string
}

// SCMRevision is the revision the branch source resolved for this run
type SCMRevision struct {
	Head *SCMHead
}

// SCMHead is the branch source head. ChangeRequest is set when the head is a
// pull/merge request.
type SCMHead struct {
	Name          string
	ChangeRequest *ChangeRequest
}

// ChangeRequest describes a proposed merge
type ChangeRequest struct {
	ID           string
	SourceBranch string
	TargetBranch string
}

// Contributor is explicit contributor metadata attached to the run
type Contributor struct {
	Email string
}

// ChangeSet is one change log of the run, entries in stored order
type ChangeSet struct {
	Entries []ChangeLogEntry
}

// ChangeLogEntry is a single commit in a change log
type ChangeLogEntry struct {
	CommitID string
	Author   *User
}

// User is a host user identity
type User struct {
	ID       string
	FullName string
	Email    string
}

// Cause is a reason the run was triggered. UserID is set for user triggered runs.
type Cause struct {
	UserID string
}

// TriggeringUserID returns the id of the first user cause, or empty string
func (r *Run) TriggeringUserID() string {
	for _, c := range r.Causes {
		if c.UserID != "" {
			return c.UserID
		}
	}
	return ""
}
