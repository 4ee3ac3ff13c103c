package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/koren-henrik/dxrelay/pkg/controller/jenkins"
	"github.com/koren-henrik/dxrelay/pkg/domain/model"
)

func cmdSend() *cli.Command {
	var (
		pipelineCfg pipelineConfig
		failOnError bool
	)

	flags := append(pipelineCfg.Flags(), &cli.BoolFlag{
		Name:        "fail-on-error",
		Usage:       "Exit non-zero when delivery fails",
		Destination: &failOnError,
		Sources:     cli.EnvVars("DXRELAY_FAIL_ON_ERROR"),
	})

	return &cli.Command{
		Name:      "send",
		Usage:     "Process one run notification synchronously",
		ArgsUsage: "[file|-]",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			body, err := readNotification(c)
			if err != nil {
				return err
			}

			run, err := jenkins.Decode(body)
			if err != nil {
				return err
			}

			_, pipelineRunUC, closeSrc, err := pipelineCfg.build(ctx)
			defer func() { _ = closeSrc() }()
			if err != nil {
				return err
			}

			n := jenkins.NewNotification(run)
			outcome := jenkins.NewProcessor(pipelineRunUC).Process(ctx, n)

			fmt.Fprintf(c.Root().Writer, "%s %s\n", n.ID, outcome)

			if failOnError && outcome.Kind == model.OutcomeFailed {
				return goerr.New("delivery failed", goerr.V("outcome", outcome.String()))
			}
			return nil
		},
	}
}

// readNotification reads the notification from the file argument, or from
// stdin when the argument is "-" or absent
func readNotification(c *cli.Command) ([]byte, error) {
	path := c.Args().First()
	if path == "" || path == "-" {
		body, err := io.ReadAll(c.Root().Reader)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read notification from stdin")
		}
		return body, nil
	}

	body, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read notification file", goerr.V("path", path))
	}
	return body, nil
}
