package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/ravere/pkg/cli/config"
	"github.com/m-mizutani/ravere/pkg/domain/types"
	"github.com/m-mizutani/ravere/pkg/infra/fs"
	"github.com/m-mizutani/ravere/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// cmdResolve prints the prerelease tag the release command would try first
func cmdResolve() *cli.Command {
	var (
		githubCfg config.GitHub
		tagName   string
	)

	flags := append(githubCfg.Flags(), &cli.StringFlag{
		Name:        "tag-name",
		Usage:       "Base tag name, without prerelease suffix",
		Destination: &tagName,
		Sources:     cli.EnvVars("RAVERE_TAG_NAME", "INPUT_TAG_NAME", "tag_name"),
	})

	return &cli.Command{
		Name:  "resolve",
		Usage: "Print the next prerelease tag without creating anything",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if tagName == "" {
				return goerr.New("tag_name is required", goerr.T(types.ErrTagConfig))
			}

			owner, repo, err := githubCfg.OwnerRepo()
			if err != nil {
				return err
			}

			client, err := githubCfg.NewClient()
			if err != nil {
				return goerr.Wrap(err, "failed to create GitHub client")
			}

			suffix, err := usecase.NewRelease(client, fs.New()).ResolveSuffix(ctx, owner, repo, tagName)
			if err != nil {
				return err
			}

			fmt.Fprintf(c.Root().Writer, "%s-%d\n", tagName, suffix+1)
			return nil
		},
	}
}
