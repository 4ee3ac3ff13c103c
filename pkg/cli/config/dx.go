package config

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/koren-henrik/dxrelay/pkg/domain/interfaces"
	"github.com/koren-henrik/dxrelay/pkg/domain/model"
	"github.com/koren-henrik/dxrelay/pkg/infra/configstore"
)

// DX holds the filter configuration source. Without --config the filter is
// built from the individual flags.
type DX struct {
	Location           string
	BaseURL            string
	RepoPattern        string
	JobPattern         string
	BranchPattern      string
	GCPProjectID       string
	GCPCredentialsFile string
}

// Flags returns CLI flags for DX configuration
func (c *DX) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "Filter config location: local .toml/.yaml file, gs://bucket/object or firestore://collection/document",
			Destination: &c.Location,
			Sources:     cli.EnvVars("DXRELAY_CONFIG"),
		},
		&cli.StringFlag{
			Name:        "dx-base-url",
			Usage:       "DX instance base URL, e.g. https://example.getdx.net",
			Destination: &c.BaseURL,
			Sources:     cli.EnvVars("DXRELAY_DX_BASE_URL"),
		},
		&cli.StringFlag{
			Name:        "include-repo-pattern",
			Usage:       "Only forward runs whose repository URL matches this regex",
			Destination: &c.RepoPattern,
			Sources:     cli.EnvVars("DXRELAY_INCLUDE_REPO_PATTERN"),
		},
		&cli.StringFlag{
			Name:        "include-job-pattern",
			Usage:       "Only forward runs whose job full name matches this regex",
			Destination: &c.JobPattern,
			Sources:     cli.EnvVars("DXRELAY_INCLUDE_JOB_PATTERN"),
		},
		&cli.StringFlag{
			Name:        "include-branch-pattern",
			Usage:       "Only forward runs whose head branch matches this regex",
			Destination: &c.BranchPattern,
			Sources:     cli.EnvVars("DXRELAY_INCLUDE_BRANCH_PATTERN"),
		},
		&cli.StringFlag{
			Name:        "gcp-project",
			Usage:       "Google Cloud project ID for firestore:// config",
			Destination: &c.GCPProjectID,
			Sources:     cli.EnvVars("DXRELAY_GCP_PROJECT", "GOOGLE_CLOUD_PROJECT"),
		},
		&cli.StringFlag{
			Name:        "gcp-credentials-file",
			Usage:       "Service account key file for gs:// and firestore:// config",
			Destination: &c.GCPCredentialsFile,
			Sources:     cli.EnvVars("DXRELAY_GCP_CREDENTIALS_FILE"),
		},
	}
}

// FilterConfig returns the filter built from flags
func (c *DX) FilterConfig() model.FilterConfig {
	return model.FilterConfig{
		BaseURL:       c.BaseURL,
		RepoPattern:   c.RepoPattern,
		JobPattern:    c.JobPattern,
		BranchPattern: c.BranchPattern,
	}
}

// Configure opens the configuration source. The returned close function is
// never nil.
func (c *DX) Configure(ctx context.Context) (interfaces.ConfigSource, func() error, error) {
	if c.Location == "" {
		return configstore.NewStatic(c.FilterConfig()), func() error { return nil }, nil
	}

	src, closer, err := configstore.Open(ctx, c.Location, c.gcpOptions())
	if err != nil {
		return nil, closer, goerr.Wrap(err, "failed to open config source", goerr.V("location", c.Location))
	}
	return src, closer, nil
}

// Publish writes cfg to the Firestore location using the configured GCP options
func (c *DX) Publish(ctx context.Context, location string, cfg *model.FilterConfig) error {
	if err := configstore.Publish(ctx, location, c.gcpOptions(), cfg); err != nil {
		return goerr.Wrap(err, "failed to publish config", goerr.V("location", location))
	}
	return nil
}

func (c *DX) gcpOptions() configstore.GCPOptions {
	return configstore.GCPOptions{
		ProjectID:       c.GCPProjectID,
		CredentialsFile: c.GCPCredentialsFile,
	}
}
