package jenkins

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"

	"github.com/koren-henrik/dxrelay/pkg/domain/interfaces"
	"github.com/koren-henrik/dxrelay/pkg/domain/model"
)

// Processor hands decoded run notifications to the pipeline run use case
type Processor struct {
	pipelineRunUC interfaces.PipelineRunUseCase
}

// NewProcessor creates a new Jenkins notification processor
func NewProcessor(pipelineRunUC interfaces.PipelineRunUseCase) *Processor {
	return &Processor{
		pipelineRunUC: pipelineRunUC,
	}
}

// NewNotification wraps a decoded run with a fresh notification id
func NewNotification(run *model.Run) *model.Notification {
	return &model.Notification{
		ID:         uuid.NewString(),
		ReceivedAt: time.Now(),
		Run:        run,
	}
}

// Process handles one notification synchronously and returns the outcome
func (p *Processor) Process(ctx context.Context, n *model.Notification) model.DeliveryOutcome {
	logger := ctxlog.From(ctx).With("notification_id", n.ID)
	ctx = ctxlog.With(ctx, logger)

	logger.Info("Processing run notification",
		"job", n.Run.Job.FullName,
		"number", n.Run.Number,
		"result", n.Run.Result,
	)

	outcome := p.pipelineRunUC.HandleRun(ctx, n.Run)

	logger.Info("Run notification processed",
		"outcome", outcome.Kind,
		"status_code", outcome.StatusCode,
		"reason", outcome.Reason,
		"elapsed_ms", time.Since(n.ReceivedAt).Milliseconds(),
	)

	return outcome
}
