package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/ravere/pkg/domain/model"
	"github.com/m-mizutani/ravere/pkg/domain/types"
)

// UploadAssets uploads every file matched by pattern, in glob order. The
// first failure stops the remaining uploads; names uploaded so far are
// returned along with the error.
func (uc *releaseUseCase) UploadAssets(ctx context.Context, owner, repo string, releaseID int64, pattern, contentType string) ([]string, error) {
	logger := ctxlog.From(ctx)

	if pattern == "" {
		logger.Info("No file pattern given, skipping asset upload")
		return nil, nil
	}
	if contentType == "" {
		contentType = model.DefaultAssetContentType
	}

	paths, err := uc.assets.Glob(pattern)
	if err != nil {
		logger.Error("Failed to expand file pattern", "error", err, "pattern", pattern)
		return nil, goerr.Wrap(err, "failed to expand file pattern",
			goerr.V("pattern", pattern),
			goerr.T(types.ErrTagAsset),
		)
	}

	if len(paths) == 0 {
		logger.Info("No files matched the pattern", "pattern", pattern)
		return nil, nil
	}

	uploaded := make([]string, 0, len(paths))
	for _, path := range paths {
		asset, err := uc.assets.Read(path, contentType)
		if err != nil {
			logger.Error("Failed to read asset", "error", err, "path", path)
			return uploaded, goerr.Wrap(err, "failed to read asset",
				goerr.V("path", path),
				goerr.T(types.ErrTagAsset),
			)
		}

		if err := uc.githubClient.UploadReleaseAsset(ctx, owner, repo, releaseID, asset); err != nil {
			logger.Error("There has been an issue uploading the matched files",
				"error", err,
				"name", asset.Name,
				"release_id", releaseID,
			)
			return uploaded, goerr.Wrap(err, "failed to upload release asset",
				goerr.V("name", asset.Name),
				goerr.V("release_id", releaseID),
				goerr.T(types.ErrTagAsset),
			)
		}

		logger.Info("Uploaded release asset",
			"name", asset.Name,
			"size_bytes", len(asset.Data),
			"release_id", releaseID,
		)
		uploaded = append(uploaded, asset.Name)
	}

	return uploaded, nil
}
