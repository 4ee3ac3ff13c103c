package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/koren-henrik/dxrelay/pkg/infra/identity"
)

// Identity holds user email resolution configuration
type Identity struct {
	UserDirectory string
	MailDomain    string
}

// Flags returns CLI flags for identity configuration
func (c *Identity) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "user-directory",
			Usage:       "TOML or YAML file mapping CI user ids to email addresses",
			Destination: &c.UserDirectory,
			Sources:     cli.EnvVars("DXRELAY_USER_DIRECTORY"),
		},
		&cli.StringFlag{
			Name:        "mail-domain",
			Usage:       "Default mail domain appended to user ids without an address",
			Destination: &c.MailDomain,
			Sources:     cli.EnvVars("DXRELAY_MAIL_DOMAIN"),
		},
	}
}

// Configure builds the identity resolver
func (c *Identity) Configure() (*identity.Resolver, error) {
	opts := []identity.Option{identity.WithMailDomain(c.MailDomain)}

	if c.UserDirectory != "" {
		users, err := identity.LoadUsers(c.UserDirectory)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to configure user directory", goerr.V("path", c.UserDirectory))
		}
		opts = append(opts, identity.WithUsers(users))
	}

	return identity.New(opts...), nil
}
