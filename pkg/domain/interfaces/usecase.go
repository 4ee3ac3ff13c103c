package interfaces

import (
	"context"

	"github.com/koren-henrik/dxrelay/pkg/domain/model"
)

// PipelineRunUseCase defines the entry point invoked once per completed run
type PipelineRunUseCase interface {
	// HandleRun extracts, filters and delivers the run. It never fails; the
	// outcome is returned for logging only.
	HandleRun(ctx context.Context, run *model.Run) model.DeliveryOutcome
}
