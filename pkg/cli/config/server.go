package config

import "github.com/urfave/cli/v3"

// Server holds server configuration
type Server struct {
	Addr          string
	SigningSecret string
	Metrics       bool
}

// Flags returns CLI flags for server configuration
func (c *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Server address",
			Value:       "localhost:8080",
			Destination: &c.Addr,
			Sources:     cli.EnvVars("DXRELAY_ADDR"),
		},
		&cli.StringFlag{
			Name:        "signing-secret",
			Usage:       "Shared secret used to verify run notification signatures",
			Required:    true,
			Destination: &c.SigningSecret,
			Sources:     cli.EnvVars("DXRELAY_SIGNING_SECRET"),
		},
		&cli.BoolFlag{
			Name:        "metrics",
			Usage:       "Serve Prometheus metrics on /metrics",
			Value:       true,
			Destination: &c.Metrics,
			Sources:     cli.EnvVars("DXRELAY_METRICS"),
		},
	}
}
