package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/ravere/pkg/domain/interfaces"
	"github.com/m-mizutani/ravere/pkg/domain/model"
)

type releaseUseCase struct {
	githubClient interfaces.GitHubClient
	assets       interfaces.AssetSource
}

// NewRelease creates a new instance of ReleaseUseCase
func NewRelease(githubClient interfaces.GitHubClient, assets interfaces.AssetSource) interfaces.ReleaseUseCase {
	return &releaseUseCase{
		githubClient: githubClient,
		assets:       assets,
	}
}

// Publish resolves the prerelease suffix, creates the release and uploads assets.
// A failed upload leaves the created release in place.
func (uc *releaseUseCase) Publish(ctx context.Context, req *model.ReleaseRequest, pattern, contentType string) (*model.PublishResult, error) {
	logger := ctxlog.From(ctx)

	logger.Info("Publishing release",
		"owner", req.Owner,
		"repo", req.Repo,
		"base_tag", req.BaseTag,
		"kind", releaseKind(req.Prerelease),
		"draft", req.Draft,
		"generate_release_notes", req.GenerateReleaseNotes,
		"max_retries", req.MaxRetries,
	)

	var lastSuffix int
	if req.Prerelease {
		suffix, err := uc.ResolveSuffix(ctx, req.Owner, req.Repo, req.BaseTag)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to resolve prerelease suffix")
		}
		lastSuffix = suffix
	}

	created, err := uc.CreateRelease(ctx, req, lastSuffix)
	if err != nil {
		return nil, err
	}

	logger.Debug("Created release", "release", created.Release)

	uploaded, err := uc.UploadAssets(ctx, req.Owner, req.Repo, created.Release.ID, pattern, contentType)
	if err != nil {
		return nil, goerr.Wrap(err, "release was created but asset upload failed",
			goerr.V("release_id", created.Release.ID),
			goerr.V("tag_name", created.Release.TagName),
			goerr.V("uploaded", uploaded),
		)
	}

	logger.Info("Published release",
		"tag_name", created.Release.TagName,
		"release_id", created.Release.ID,
		"attempts", created.Attempts,
		"asset_count", len(uploaded),
	)

	return &model.PublishResult{
		Release:  created.Release,
		Suffix:   created.Suffix,
		Attempts: created.Attempts,
		Assets:   uploaded,
	}, nil
}

func releaseKind(prerelease bool) string {
	if prerelease {
		return "prerelease"
	}
	return "release"
}
