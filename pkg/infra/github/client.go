package github

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/ravere/pkg/domain/interfaces"
	"github.com/m-mizutani/ravere/pkg/domain/model"
)

// DefaultAPIURL is the public GitHub REST endpoint
const DefaultAPIURL = "https://api.github.com"

const tagsPerPage = 100

type client struct {
	githubClient *github.Client
}

type config struct {
	apiURL string
}

// Option is a functional option for client configuration
type Option func(*config)

// WithAPIURL points the client at a GitHub Enterprise Server, e.g. https://ghe.example.com/api/v3
func WithAPIURL(apiURL string) Option {
	return func(c *config) {
		c.apiURL = apiURL
	}
}

// NewClient creates a new GitHub client with App authentication
func NewClient(appID, installationID int64, privateKey []byte, opts ...Option) (interfaces.GitHubClient, error) {
	cfg := newConfig(opts)

	// Create GitHub App transport
	itr, err := ghinstallation.New(http.DefaultTransport, appID, installationID, privateKey)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create GitHub App transport",
			goerr.V("app_id", appID),
			goerr.V("installation_id", installationID),
		)
	}
	if cfg.enterprise() {
		itr.BaseURL = strings.TrimSuffix(cfg.apiURL, "/")
	}

	return newClient(github.NewClient(&http.Client{Transport: itr}), cfg)
}

// NewClientFromConfig creates a GitHub App client from a PEM private key given as a string
func NewClientFromConfig(appID, installationID int64, privateKey string, opts ...Option) (interfaces.GitHubClient, error) {
	return NewClient(appID, installationID, []byte(privateKey), opts...)
}

// NewTokenClient creates a new GitHub client authenticated by a token, such as GITHUB_TOKEN of Actions
func NewTokenClient(token string, opts ...Option) (interfaces.GitHubClient, error) {
	if token == "" {
		return nil, goerr.New("GitHub token is empty")
	}
	return newClient(github.NewClient(nil).WithAuthToken(token), newConfig(opts))
}

func newConfig(opts []Option) *config {
	cfg := &config{
		apiURL: DefaultAPIURL,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func (c *config) enterprise() bool {
	return c.apiURL != "" && strings.TrimSuffix(c.apiURL, "/") != DefaultAPIURL
}

func newClient(githubClient *github.Client, cfg *config) (interfaces.GitHubClient, error) {
	if cfg.enterprise() {
		// go-github appends /api/v3/ and /api/uploads/ to the host root
		root := strings.TrimSuffix(strings.TrimSuffix(cfg.apiURL, "/"), "/api/v3")
		enterprise, err := githubClient.WithEnterpriseURLs(root, root)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to set GitHub Enterprise URLs", goerr.V("api_url", cfg.apiURL))
		}
		githubClient = enterprise
	}

	return &client{
		githubClient: githubClient,
	}, nil
}

// ListTags returns tag names of one page in the order GitHub returns them
func (c *client) ListTags(ctx context.Context, owner, repo string, page int) ([]string, int, error) {
	tags, resp, err := c.githubClient.Repositories.ListTags(ctx, owner, repo, &github.ListOptions{
		Page:    page,
		PerPage: tagsPerPage,
	})
	if err != nil {
		return nil, 0, goerr.Wrap(toAPIError(err), "failed to list tags",
			goerr.V("owner", owner),
			goerr.V("repo", repo),
			goerr.V("page", page),
		)
	}

	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.GetName())
	}

	return names, resp.NextPage, nil
}

// CreateRelease creates a release. Empty optional strings are left out of the request
func (c *client) CreateRelease(ctx context.Context, owner, repo string, release *model.NewRelease) (*model.Release, error) {
	created, _, err := c.githubClient.Repositories.CreateRelease(ctx, owner, repo, &github.RepositoryRelease{
		TagName:                github.Ptr(release.TagName),
		TargetCommitish:        optional(release.TargetCommitish),
		Name:                   optional(release.Name),
		Body:                   optional(release.Body),
		Draft:                  github.Ptr(release.Draft),
		Prerelease:             github.Ptr(release.Prerelease),
		DiscussionCategoryName: optional(release.DiscussionCategoryName),
		GenerateReleaseNotes:   github.Ptr(release.GenerateReleaseNotes),
	})
	if err != nil {
		return nil, goerr.Wrap(toAPIError(err), "failed to create release",
			goerr.V("owner", owner),
			goerr.V("repo", repo),
			goerr.V("tag_name", release.TagName),
		)
	}

	return &model.Release{
		ID:         created.GetID(),
		TagName:    created.GetTagName(),
		Name:       created.GetName(),
		HTMLURL:    created.GetHTMLURL(),
		UploadURL:  created.GetUploadURL(),
		Draft:      created.GetDraft(),
		Prerelease: created.GetPrerelease(),
	}, nil
}

// UploadReleaseAsset uploads asset data from memory. go-github's own
// UploadReleaseAsset only accepts an *os.File.
func (c *client) UploadReleaseAsset(ctx context.Context, owner, repo string, releaseID int64, asset *model.Asset) error {
	u := fmt.Sprintf("repos/%s/%s/releases/%d/assets?name=%s", owner, repo, releaseID, url.QueryEscape(asset.Name))

	req, err := c.githubClient.NewUploadRequest(u, bytes.NewReader(asset.Data), int64(len(asset.Data)), asset.ContentType)
	if err != nil {
		return goerr.Wrap(err, "failed to create upload request", goerr.V("name", asset.Name))
	}

	var uploaded github.ReleaseAsset
	if _, err := c.githubClient.Do(ctx, req, &uploaded); err != nil {
		return goerr.Wrap(toAPIError(err), "failed to upload release asset",
			goerr.V("owner", owner),
			goerr.V("repo", repo),
			goerr.V("release_id", releaseID),
			goerr.V("name", asset.Name),
		)
	}

	return nil
}

// toAPIError converts go-github's ErrorResponse into model.APIError. Other errors pass through.
func toAPIError(err error) error {
	var ghErr *github.ErrorResponse
	if !errors.As(err, &ghErr) {
		return err
	}

	apiErr := &model.APIError{
		Message: ghErr.Message,
	}
	if ghErr.Response != nil {
		apiErr.StatusCode = ghErr.Response.StatusCode
	}
	for _, e := range ghErr.Errors {
		apiErr.Errors = append(apiErr.Errors, model.FieldError{
			Resource: e.Resource,
			Code:     e.Code,
			Field:    e.Field,
			Message:  e.Message,
		})
	}

	return apiErr
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return github.Ptr(s)
}
