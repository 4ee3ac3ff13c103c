package usecase

import (
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"

	"github.com/koren-henrik/dxrelay/pkg/domain/model"
	"github.com/koren-henrik/dxrelay/pkg/domain/types"
)

// Serialize maps a PipelineEvent to the DX wire payload
func Serialize(ev *model.PipelineEvent) *model.Payload {
	return &model.Payload{
		PipelineName:   ev.PipelineName,
		PipelineSource: types.PipelineSource,
		ReferenceID:    ev.ReferenceID,
		SourceID:       ev.SourceID,
		StartedAt:      ev.StartedAt,
		FinishedAt:     ev.FinishedAt,
		Status:         ev.Status,
		Repository:     ev.RepositoryName,
		SourceURL:      ev.RepositoryURL,
		HeadBranch:     ev.HeadBranch,
		BaseBranch:     ev.BaseBranch,
		CommitSHA:      ev.CommitSHA,
		PRNumber:       ev.PRNumber,
		Email:          ev.ContributorEmail,
	}
}

// MarshalPayload serializes ev into the JSON request body
func MarshalPayload(ev *model.PipelineEvent) ([]byte, error) {
	data, err := json.Marshal(Serialize(ev))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal pipeline run payload",
			goerr.V("reference_id", ev.ReferenceID))
	}
	return data, nil
}
