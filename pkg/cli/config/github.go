package config

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/ravere/pkg/domain/interfaces"
	"github.com/m-mizutani/ravere/pkg/domain/types"
	githubinfra "github.com/m-mizutani/ravere/pkg/infra/github"
	"github.com/urfave/cli/v3"
)

// GitHub holds GitHub configuration
type GitHub struct {
	Token          string `masq:"secret"`
	AppID          int64
	InstallationID int64
	PrivateKey     string `masq:"secret"`
	Repository     string // owner/repo
	APIURL         string
}

// Flags returns CLI flags for GitHub configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub token used for API calls",
			Destination: &c.Token,
			Sources:     cli.EnvVars("RAVERE_GITHUB_TOKEN", "INPUT_TOKEN", "GITHUB_TOKEN"),
		},
		&cli.Int64Flag{
			Name:        "github-app-id",
			Usage:       "GitHub App ID, used instead of a token when set",
			Destination: &c.AppID,
			Sources:     cli.EnvVars("RAVERE_GITHUB_APP_ID"),
		},
		&cli.Int64Flag{
			Name:        "github-installation-id",
			Usage:       "GitHub App installation ID",
			Destination: &c.InstallationID,
			Sources:     cli.EnvVars("RAVERE_GITHUB_INSTALLATION_ID"),
		},
		&cli.StringFlag{
			Name:        "github-private-key",
			Usage:       "GitHub App private key (PEM content)",
			Destination: &c.PrivateKey,
			Sources:     cli.EnvVars("RAVERE_GITHUB_PRIVATE_KEY"),
		},
		&cli.StringFlag{
			Name:        "repository",
			Usage:       "Target repository in owner/repo form",
			Destination: &c.Repository,
			Sources:     cli.EnvVars("RAVERE_REPOSITORY", "GITHUB_REPOSITORY"),
		},
		&cli.StringFlag{
			Name:        "github-api-url",
			Usage:       "GitHub REST API base URL",
			Value:       githubinfra.DefaultAPIURL,
			Destination: &c.APIURL,
			Sources:     cli.EnvVars("RAVERE_GITHUB_API_URL", "GITHUB_API_URL"),
		},
	}
}

// OwnerRepo splits Repository into owner and repository name
func (c *GitHub) OwnerRepo() (string, string, error) {
	owner, repo, ok := strings.Cut(c.Repository, "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return "", "", goerr.New("repository must be in owner/repo form",
			goerr.V("repository", c.Repository),
			goerr.T(types.ErrTagConfig),
		)
	}
	return owner, repo, nil
}

// NewClient builds a GitHub client, preferring GitHub App credentials over a token
func (c *GitHub) NewClient() (interfaces.GitHubClient, error) {
	opts := []githubinfra.Option{githubinfra.WithAPIURL(c.APIURL)}

	switch {
	case c.AppID != 0:
		if c.InstallationID == 0 || c.PrivateKey == "" {
			return nil, goerr.New("GitHub App requires installation ID and private key",
				goerr.V("app_id", c.AppID),
				goerr.T(types.ErrTagConfig),
			)
		}
		return githubinfra.NewClientFromConfig(c.AppID, c.InstallationID, c.PrivateKey, opts...)

	case c.Token != "":
		return githubinfra.NewTokenClient(c.Token, opts...)

	default:
		return nil, goerr.New("either GitHub token or GitHub App credentials are required",
			goerr.T(types.ErrTagConfig),
		)
	}
}
