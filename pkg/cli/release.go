package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/ravere/pkg/cli/config"
	"github.com/m-mizutani/ravere/pkg/infra/actions"
	"github.com/m-mizutani/ravere/pkg/infra/fs"
	"github.com/m-mizutani/ravere/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdRelease() *cli.Command {
	var (
		githubCfg  config.GitHub
		releaseCfg config.Release
	)

	flags := append(githubCfg.Flags(), releaseCfg.Flags()...)

	return &cli.Command{
		Name:    "release",
		Aliases: []string{"r"},
		Usage:   "Create a GitHub release and upload assets",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			if releaseCfg.ConfigFile != "" {
				f, err := config.LoadFile(releaseCfg.ConfigFile)
				if err != nil {
					return err
				}
				releaseCfg.ApplyFile(&f.Release, c.IsSet)
			}

			// All inputs are validated before the first API call
			owner, repo, err := githubCfg.OwnerRepo()
			if err != nil {
				return err
			}
			req, err := releaseCfg.Request(owner, repo)
			if err != nil {
				return err
			}

			logger.Debug("Loaded configuration",
				"github", githubCfg,
				"request", req,
				"files", releaseCfg.Files,
			)

			client, err := githubCfg.NewClient()
			if err != nil {
				return goerr.Wrap(err, "failed to create GitHub client")
			}

			releaseUC := usecase.NewRelease(client, fs.New())
			result, err := releaseUC.Publish(ctx, req, releaseCfg.Files, releaseCfg.ContentType)
			if err != nil {
				return goerr.Wrap(err, "failed to publish release", goerr.V("base_tag", req.BaseTag))
			}

			if err := actions.NewReporter().Report(ctx, result); err != nil {
				return goerr.Wrap(err, "failed to report release")
			}

			fmt.Fprintln(c.Root().Writer, result.Release.TagName)
			return nil
		},
	}
}
