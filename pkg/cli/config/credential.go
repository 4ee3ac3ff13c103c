package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/koren-henrik/dxrelay/pkg/domain/types"
	"github.com/koren-henrik/dxrelay/pkg/infra/credential"
)

// Credential holds DX API credential configuration
type Credential struct {
	APIToken string
	File     string
}

// Flags returns CLI flags for credential configuration
func (c *Credential) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "dx-api-token",
			Usage:       "Global DX API token",
			Destination: &c.APIToken,
			Sources:     cli.EnvVars("DXRELAY_DX_API_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "credentials-file",
			Usage:       "TOML or YAML file with [[credentials]] entries (id, scope, secret)",
			Destination: &c.File,
			Sources:     cli.EnvVars("DXRELAY_CREDENTIALS_FILE"),
		},
	}
}

// Configure builds the credential store. The token flag is stored as a
// global dx-api-token entry.
func (c *Credential) Configure() (*credential.Store, error) {
	var entries []credential.Entry
	if c.APIToken != "" {
		entries = append(entries, credential.Entry{ID: types.CredentialID, Secret: c.APIToken})
	}

	if c.File != "" {
		loaded, err := credential.LoadFile(c.File)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to configure credentials", goerr.V("path", c.File))
		}
		entries = append(entries, loaded...)
	}

	return credential.New(entries...), nil
}
