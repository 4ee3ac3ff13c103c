package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/koren-henrik/dxrelay/pkg/cli/config"
	"github.com/koren-henrik/dxrelay/pkg/domain/model"
	"github.com/koren-henrik/dxrelay/pkg/usecase"
)

func cmdValidate() *cli.Command {
	var (
		dxCfg config.DX
		write string
	)

	flags := append(dxCfg.Flags(), &cli.StringFlag{
		Name:        "write",
		Usage:       "Store the validated config in firestore://collection/document",
		Destination: &write,
		Sources:     cli.EnvVars("DXRELAY_WRITE"),
	})

	return &cli.Command{
		Name:  "validate",
		Usage: "Check the filter configuration, optionally publishing it to Firestore",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			src, closeSrc, err := dxCfg.Configure(ctx)
			defer func() { _ = closeSrc() }()
			if err != nil {
				return err
			}

			cfg, err := src.Snapshot(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to read filter config")
			}

			findings := usecase.CheckConfig(cfg)
			if printFindings(c, findings) > 0 {
				return goerr.New("filter config has errors")
			}

			if write != "" {
				if err := dxCfg.Publish(ctx, write, cfg); err != nil {
					return err
				}
				fmt.Fprintf(c.Root().Writer, "Published to %s\n", write)
			}
			return nil
		},
	}
}

// printFindings prints findings and returns the number of errors
func printFindings(c *cli.Command, findings []model.ConfigFinding) int {
	w := c.Root().Writer
	if len(findings) == 0 {
		color.New(color.FgGreen).Fprintln(w, "OK: filter config is valid")
		return 0
	}

	errors := 0
	for _, f := range findings {
		label := color.New(color.FgYellow).Sprint("WARN ")
		if f.Severity == model.SeverityError {
			label = color.New(color.FgRed, color.Bold).Sprint("ERROR")
			errors++
		}
		fmt.Fprintf(w, "%s %s: %s\n", label, f.Field, f.Message)
	}
	return errors
}
