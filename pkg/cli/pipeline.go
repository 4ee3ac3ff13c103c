package cli

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/urfave/cli/v3"

	"github.com/koren-henrik/dxrelay/pkg/cli/config"
	"github.com/koren-henrik/dxrelay/pkg/domain/interfaces"
	"github.com/koren-henrik/dxrelay/pkg/domain/model"
	"github.com/koren-henrik/dxrelay/pkg/infra/dx"
	"github.com/koren-henrik/dxrelay/pkg/usecase"
)

// pipelineConfig groups the flag sets needed to build the pipeline run use case
type pipelineConfig struct {
	dx         config.DX
	credential config.Credential
	identity   config.Identity
}

func (c *pipelineConfig) Flags() []cli.Flag {
	flags := c.dx.Flags()
	flags = append(flags, c.credential.Flags()...)
	flags = append(flags, c.identity.Flags()...)
	return flags
}

// build creates the config source and the pipeline run use case. The
// returned close function is never nil.
func (c *pipelineConfig) build(ctx context.Context, opts ...usecase.PipelineRunOption) (interfaces.ConfigSource, interfaces.PipelineRunUseCase, func() error, error) {
	src, closer, err := c.dx.Configure(ctx)
	if err != nil {
		return nil, nil, closer, err
	}

	store, err := c.credential.Configure()
	if err != nil {
		return nil, nil, closer, err
	}

	resolver, err := c.identity.Configure()
	if err != nil {
		return nil, nil, closer, err
	}

	client := dx.NewClient(store)
	opts = append([]usecase.PipelineRunOption{usecase.WithIdentityResolver(resolver)}, opts...)
	return src, usecase.NewPipelineRun(src, client, opts...), closer, nil
}

// logFindings logs configuration check findings of the current snapshot
func logFindings(ctx context.Context, src interfaces.ConfigSource) {
	logger := ctxlog.From(ctx)

	cfg, err := src.Snapshot(ctx)
	if err != nil {
		logger.Warn("Failed to read filter config", "error", err)
		return
	}

	for _, f := range usecase.CheckConfig(cfg) {
		attrs := []any{"field", f.Field, "message", f.Message}
		if f.Severity == model.SeverityError {
			logger.Error("Invalid filter config", attrs...)
		} else {
			logger.Warn("Filter config warning", attrs...)
		}
	}
}
