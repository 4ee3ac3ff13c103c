package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/ctxlog"

	"github.com/koren-henrik/dxrelay/pkg/domain/interfaces"
	"github.com/koren-henrik/dxrelay/pkg/domain/model"
	"github.com/koren-henrik/dxrelay/pkg/utils/errutil"
)

type pipelineRunUseCase struct {
	config    interfaces.ConfigSource
	extractor *Extractor
	deliverer interfaces.Deliverer
	recorder  interfaces.OutcomeRecorder
}

// PipelineRunOption configures the pipeline run use case
type PipelineRunOption func(*pipelineRunUseCase)

// WithIdentityResolver sets the resolver used for contributor emails
func WithIdentityResolver(identity interfaces.IdentityResolver) PipelineRunOption {
	return func(uc *pipelineRunUseCase) {
		uc.extractor = NewExtractor(identity)
	}
}

// WithOutcomeRecorder sets a recorder notified of every outcome
func WithOutcomeRecorder(recorder interfaces.OutcomeRecorder) PipelineRunOption {
	return func(uc *pipelineRunUseCase) {
		uc.recorder = recorder
	}
}

// NewPipelineRun creates a new PipelineRunUseCase
func NewPipelineRun(config interfaces.ConfigSource, deliverer interfaces.Deliverer, opts ...PipelineRunOption) interfaces.PipelineRunUseCase {
	uc := &pipelineRunUseCase{
		config:    config,
		extractor: NewExtractor(nil),
		deliverer: deliverer,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// HandleRun processes one completed run: gate on result, extract, filter,
// serialize and deliver. Every path ends in an outcome, never an error.
func (uc *pipelineRunUseCase) HandleRun(ctx context.Context, run *model.Run) model.DeliveryOutcome {
	start := time.Now()
	outcome := uc.handle(ctx, run)
	if uc.recorder != nil {
		uc.recorder.RecordOutcome(outcome, time.Since(start))
	}
	return outcome
}

func (uc *pipelineRunUseCase) handle(ctx context.Context, run *model.Run) model.DeliveryOutcome {
	logger := ctxlog.From(ctx).With(
		"job", run.Job.FullName,
		"number", run.Number,
	)

	// Only successful runs are reported
	if !run.Result.IsSuccess() {
		logger.Debug("Ignoring run with non-success result", "result", run.Result)
		return model.Skipped(model.ReasonNotSuccess)
	}

	cfg, err := uc.config.Snapshot(ctx)
	if err != nil {
		errutil.Handle(ctx, err, "Failed to load DX configuration")
		return model.Skipped(model.ReasonNotConfigured)
	}
	if !cfg.IsConfigured() {
		logger.Info("DX plugin not configured, skipping")
		return model.Skipped(model.ReasonNotConfigured)
	}

	ev := uc.extractor.Extract(ctx, run)

	if !ShouldForward(ctx, cfg, ev) {
		logger.Info("Run filtered out",
			"repository", ev.RepositoryURL,
			"branch", ev.HeadBranch,
		)
		return model.Skipped(model.ReasonFiltered)
	}

	payload, err := MarshalPayload(ev)
	if err != nil {
		errutil.Handle(ctx, err, "Failed to serialize payload")
		return model.Failed(err.Error())
	}

	logger.Info("DX payload", "payload", string(payload))

	outcome := uc.deliverer.Deliver(ctx, cfg, payload, run)

	switch outcome.Kind {
	case model.OutcomeDelivered:
		logger.Info("Payload sent successfully", "status_code", outcome.StatusCode)
	case model.OutcomeSkipped:
		logger.Info("Payload not sent", "reason", outcome.Reason)
	default:
		logger.Warn("Failed to send payload", "cause", outcome.Reason)
	}

	return outcome
}
