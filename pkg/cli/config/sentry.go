package config

import (
	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/ravere/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// Sentry holds error reporting configuration
type Sentry struct {
	DSN string `masq:"secret"`
	Env string
}

// Flags returns CLI flags for Sentry configuration
func (c *Sentry) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sentry-dsn",
			Usage:       "Sentry DSN to report failures to",
			Destination: &c.DSN,
			Sources:     cli.EnvVars("RAVERE_SENTRY_DSN"),
		},
		&cli.StringFlag{
			Name:        "sentry-env",
			Usage:       "Sentry environment",
			Value:       "ci",
			Destination: &c.Env,
			Sources:     cli.EnvVars("RAVERE_SENTRY_ENV"),
		},
	}
}

// Configure initializes the Sentry client. It returns false when no DSN is given.
func (c *Sentry) Configure() (bool, error) {
	if c.DSN == "" {
		return false, nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         c.DSN,
		Environment: c.Env,
		Release:     "ravere@" + types.Version,
	}); err != nil {
		return false, goerr.Wrap(err, "failed to initialize sentry", goerr.T(types.ErrTagConfig))
	}

	return true, nil
}
