package interfaces

import (
	"context"

	"github.com/m-mizutani/ravere/pkg/domain/model"
)

// GitHubClient defines operations for interacting with GitHub API
type GitHubClient interface {
	// ListTags returns tag names of one page and the next page number (0 when it is the last page)
	ListTags(ctx context.Context, owner, repo string, page int) ([]string, int, error)

	// CreateRelease creates a release. Structured API failures are returned as *model.APIError
	CreateRelease(ctx context.Context, owner, repo string, release *model.NewRelease) (*model.Release, error)

	// UploadReleaseAsset attaches a file to an existing release
	UploadReleaseAsset(ctx context.Context, owner, repo string, releaseID int64, asset *model.Asset) error
}

// AssetSource finds and reads files to be uploaded
type AssetSource interface {
	// Glob expands a file pattern into paths
	Glob(pattern string) ([]string, error)

	// Read loads a file as an asset named after its base filename
	Read(path, contentType string) (*model.Asset, error)
}

// Reporter publishes the result of a run to the CI platform
type Reporter interface {
	Report(ctx context.Context, result *model.PublishResult) error
}
