package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/ravere/pkg/domain/model"
	"github.com/m-mizutani/ravere/pkg/domain/types"
	"github.com/m-mizutani/ravere/pkg/usecase"
)

func testAssets() *MockAssetSource {
	return &MockAssetSource{
		files: map[string]string{
			"dist/app-linux-amd64":  "linux binary",
			"dist/app-darwin-arm64": "darwin binary",
			"dist/checksums.txt":    "sums",
		},
	}
}

func TestReleaseUseCase_Publish_NewPrerelease(t *testing.T) {
	client := &MockGitHubClient{
		listTagsFunc:      pagedTags([]string{"v1.1.0", "v1.1.0-2"}),
		createReleaseFunc: createOK,
	}
	uc := usecase.NewRelease(client, testAssets())

	result, err := uc.Publish(context.Background(), newRequest(true, 3), "dist/app-*", "")
	gt.NoError(t, err)
	gt.Equal(t, result.Release.TagName, "v1.2.0-1")
	gt.Equal(t, result.Suffix, 1)
	gt.Equal(t, result.Attempts, 1)
	gt.Equal(t, result.Assets, []string{"app-darwin-arm64", "app-linux-amd64"})

	gt.A(t, client.uploadCalls).Length(2)
	for _, asset := range client.uploadCalls {
		gt.Equal(t, asset.ContentType, model.DefaultAssetContentType)
	}
}

func TestReleaseUseCase_Publish_CollisionAfterResolve(t *testing.T) {
	client := &MockGitHubClient{
		listTagsFunc:      pagedTags([]string{"v1.2.0-3", "v1.1.0"}),
		createReleaseFunc: collideFirst(1),
	}
	uc := usecase.NewRelease(client, testAssets())

	result, err := uc.Publish(context.Background(), newRequest(true, 3), "dist/*.txt", "text/plain")
	gt.NoError(t, err)
	gt.Equal(t, client.createdTags(), []string{"v1.2.0-4", "v1.2.0-5"})
	gt.Equal(t, result.Release.TagName, "v1.2.0-5")
	gt.Equal(t, result.Attempts, 2)
	gt.Equal(t, result.Assets, []string{"checksums.txt"})
	gt.Equal(t, client.uploadCalls[0].ContentType, "text/plain")
}

func TestReleaseUseCase_Publish_ExistingRelease(t *testing.T) {
	client := &MockGitHubClient{createReleaseFunc: collideFirst(100)}
	uc := usecase.NewRelease(client, testAssets())

	req := newRequest(false, 3)
	req.BaseTag = "v2.0.0"

	result, err := uc.Publish(context.Background(), req, "dist/*", "")
	gt.Error(t, err)
	gt.Value(t, result).Nil()
	gt.True(t, errors.Is(err, usecase.ErrReleaseAlreadyExists))

	gt.A(t, client.listTagsCalls).Length(0)
	gt.A(t, client.createCalls).Length(1)
	gt.A(t, client.uploadCalls).Length(0)
}

func TestReleaseUseCase_Publish_SingleRetryBudget(t *testing.T) {
	client := &MockGitHubClient{
		createReleaseFunc: func(ctx context.Context, owner, repo string, release *model.NewRelease) (*model.Release, error) {
			return nil, collisionError()
		},
	}
	uc := usecase.NewRelease(client, testAssets())

	_, err := uc.Publish(context.Background(), newRequest(true, 1), "dist/*", "")
	gt.True(t, errors.Is(err, usecase.ErrTooManySuffixIncreases))
	gt.A(t, client.createCalls).Length(1)
	gt.A(t, client.uploadCalls).Length(0)
}

func TestReleaseUseCase_Publish_ResolveError(t *testing.T) {
	client := &MockGitHubClient{
		listTagsFunc: func(ctx context.Context, owner, repo string, page int) ([]string, int, error) {
			return nil, 0, errors.New("not found")
		},
	}
	uc := usecase.NewRelease(client, testAssets())

	_, err := uc.Publish(context.Background(), newRequest(true, 3), "", "")
	gt.Error(t, err)
	gt.A(t, client.createCalls).Length(0)
}

func TestReleaseUseCase_Publish_UploadFailureKeepsRelease(t *testing.T) {
	uploadErr := errors.New("upload failed")
	client := &MockGitHubClient{
		createReleaseFunc: createOK,
		uploadAssetFunc: func(ctx context.Context, owner, repo string, releaseID int64, asset *model.Asset) error {
			if asset.Name == "app-linux-amd64" {
				return uploadErr
			}
			return nil
		},
	}
	uc := usecase.NewRelease(client, testAssets())

	_, err := uc.Publish(context.Background(), newRequest(false, 3), "dist/*", "")
	gt.Error(t, err)
	gt.True(t, errors.Is(err, uploadErr))
	gt.String(t, err.Error()).Contains("asset upload failed")

	// app-darwin-arm64 uploaded, app-linux-amd64 failed, checksums.txt never tried
	gt.A(t, client.uploadCalls).Length(2)
	gt.A(t, client.createCalls).Length(1)
}

func TestReleaseUseCase_UploadAssets(t *testing.T) {
	t.Run("Empty pattern skips upload", func(t *testing.T) {
		client := &MockGitHubClient{}
		uc := usecase.NewRelease(client, testAssets())

		names, err := uc.UploadAssets(context.Background(), "owner", "repo", 42, "", "")
		gt.NoError(t, err)
		gt.A(t, names).Length(0)
		gt.A(t, client.uploadCalls).Length(0)
	})

	t.Run("No match is not an error", func(t *testing.T) {
		client := &MockGitHubClient{}
		uc := usecase.NewRelease(client, testAssets())

		names, err := uc.UploadAssets(context.Background(), "owner", "repo", 42, "build/*.zip", "")
		gt.NoError(t, err)
		gt.A(t, names).Length(0)
	})

	t.Run("Glob error", func(t *testing.T) {
		client := &MockGitHubClient{}
		uc := usecase.NewRelease(client, &MockAssetSource{globErr: errors.New("bad pattern")})

		_, err := uc.UploadAssets(context.Background(), "owner", "repo", 42, "[", "")
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, types.ErrTagAsset))
	})

	t.Run("Read error aborts before upload", func(t *testing.T) {
		client := &MockGitHubClient{}
		assets := testAssets()
		assets.readErr = errors.New("permission denied")
		uc := usecase.NewRelease(client, assets)

		_, err := uc.UploadAssets(context.Background(), "owner", "repo", 42, "dist/*", "")
		gt.Error(t, err)
		gt.A(t, client.uploadCalls).Length(0)
	})

	t.Run("Uploads to the given release", func(t *testing.T) {
		var releaseIDs []int64
		client := &MockGitHubClient{
			uploadAssetFunc: func(ctx context.Context, owner, repo string, releaseID int64, asset *model.Asset) error {
				releaseIDs = append(releaseIDs, releaseID)
				return nil
			},
		}
		uc := usecase.NewRelease(client, testAssets())

		names, err := uc.UploadAssets(context.Background(), "owner", "repo", 99, "dist/*", "")
		gt.NoError(t, err)
		gt.Equal(t, names, []string{"app-darwin-arm64", "app-linux-amd64", "checksums.txt"})
		gt.Equal(t, releaseIDs, []int64{99, 99, 99})
		gt.Equal(t, string(client.uploadCalls[2].Data), "sums")
	})
}
