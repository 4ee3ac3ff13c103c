package model

// Status is the run status reported to DX
type Status string

const (
	StatusSuccess   Status = "success"
	StatusFailure   Status = "failure"
	StatusCancelled Status = "cancelled"
	StatusUnknown   Status = "unknown"
)

// PipelineEvent is the canonical record of one completed run. Empty strings
// mean the value is absent.
type PipelineEvent struct {
	PipelineName string
	SourceID     string
	ReferenceID  string

	StartedAt  int64 // epoch seconds
	FinishedAt int64 // epoch seconds, never before StartedAt

	Status Status

	RepositoryURL  string
	RepositoryName string

	HeadBranch string
	BaseBranch string // only for change requests
	CommitSHA  string
	PRNumber   string // only for change requests

	ContributorEmail string
}

// Payload is the JSON body sent to the DX pipelineRuns.sync endpoint. Field
// order is the wire order. BaseBranch and PRNumber are dropped when empty,
// CommitSHA and Email are always sent.
type Payload struct {
	PipelineName   string `json:"pipeline_name"`
	PipelineSource string `json:"pipeline_source"`
	ReferenceID    string `json:"reference_id"`
	SourceID       string `json:"source_id"`
	StartedAt      int64  `json:"started_at"`
	FinishedAt     int64  `json:"finished_at"`
	Status         Status `json:"status"`
	Repository     string `json:"repository"`
	SourceURL      string `json:"source_url"`
	HeadBranch     string `json:"head_branch"`
	BaseBranch     string `json:"base_branch,omitempty"`
	CommitSHA      string `json:"commit_sha"`
	PRNumber       string `json:"pr_number,omitempty"`
	Email          string `json:"email"`
}
