package interfaces

import (
	"context"

	"github.com/m-mizutani/ravere/pkg/domain/model"
)

// ReleaseUseCase defines operations for publishing a release
type ReleaseUseCase interface {
	// ResolveSuffix returns the suffix of the first "<base>-<n>" tag found, or 0
	ResolveSuffix(ctx context.Context, owner, repo, baseTag string) (int, error)

	// CreateRelease creates the release record, retrying prerelease tags on collision
	CreateRelease(ctx context.Context, req *model.ReleaseRequest, suffix int) (*model.CreateResult, error)

	// UploadAssets uploads every file matched by pattern to the release
	UploadAssets(ctx context.Context, owner, repo string, releaseID int64, pattern, contentType string) ([]string, error)

	// Publish runs suffix resolution, release creation and asset upload in order
	Publish(ctx context.Context, req *model.ReleaseRequest, pattern, contentType string) (*model.PublishResult, error)
}
