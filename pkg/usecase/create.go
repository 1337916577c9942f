package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/ravere/pkg/domain/model"
	"github.com/m-mizutani/ravere/pkg/domain/types"
)

var (
	// ErrReleaseAlreadyExists is returned when a regular (non-prerelease) tag is taken
	ErrReleaseAlreadyExists = goerr.New("the generated release already exists", goerr.T(types.ErrTagCollision))

	// ErrTooManySuffixIncreases is returned when the retry budget runs out
	ErrTooManySuffixIncreases = goerr.New("too many suffix increases", goerr.T(types.ErrTagCollision))
)

// CreateRelease creates the release under "<base>-<suffix+1>" for a
// prerelease, or "<base>" otherwise. A tag collision on a prerelease bumps
// the suffix and spends one unit of req.MaxRetries; any other failure is
// returned as is.
func (uc *releaseUseCase) CreateRelease(ctx context.Context, req *model.ReleaseRequest, suffix int) (*model.CreateResult, error) {
	logger := ctxlog.From(ctx)

	budget := req.MaxRetries
	attempts := 0

	for {
		if budget <= 0 {
			logger.Error("Too many suffix increase retries, aborting",
				"base_tag", req.BaseTag,
				"last_suffix", suffix,
				"attempts", attempts,
			)
			return nil, goerr.Wrap(ErrTooManySuffixIncreases, "gave up creating release",
				goerr.V("base_tag", req.BaseTag),
				goerr.V("max_retries", req.MaxRetries),
				goerr.V("attempts", attempts),
				goerr.T(types.ErrTagCollision),
			)
		}

		tagName := req.BaseTag
		used := 0
		if req.Prerelease {
			used = suffix + 1
			tagName = fmt.Sprintf("%s-%d", req.BaseTag, used)
		}

		attempts++
		logger.Debug("Creating release", "tag_name", tagName, "attempt", attempts, "remaining_retries", budget)

		release, err := uc.githubClient.CreateRelease(ctx, req.Owner, req.Repo, newRelease(req, tagName))
		if err == nil {
			return &model.CreateResult{
				Release:  release,
				Suffix:   used,
				Attempts: attempts,
			}, nil
		}

		var apiErr *model.APIError
		if !errors.As(err, &apiErr) || !apiErr.IsTagCollision() {
			logger.Error("There has been an issue tagging and publishing the release",
				"error", err,
				"tag_name", tagName,
			)
			return nil, goerr.Wrap(err, "failed to create release",
				goerr.V("owner", req.Owner),
				goerr.V("repo", req.Repo),
				goerr.V("tag_name", tagName),
				goerr.T(types.ErrTagTransport),
			)
		}

		if !req.Prerelease {
			logger.Error("The release already exists", "tag_name", tagName)
			return nil, goerr.Wrap(ErrReleaseAlreadyExists, "failed to create release",
				goerr.V("tag_name", tagName),
				goerr.T(types.ErrTagCollision),
			)
		}

		logger.Warn("The generated prerelease suffix already exists, retrying with a higher suffix",
			"tag_name", tagName,
			"remaining_retries", budget-1,
		)
		suffix++
		budget--
	}
}

func newRelease(req *model.ReleaseRequest, tagName string) *model.NewRelease {
	return &model.NewRelease{
		TagName:                tagName,
		TargetCommitish:        req.TargetCommitish,
		Prerelease:             req.Prerelease,
		Draft:                  req.Draft,
		Name:                   req.Name,
		Body:                   req.Body,
		DiscussionCategoryName: req.DiscussionCategoryName,
		GenerateReleaseNotes:   req.GenerateReleaseNotes,
	}
}
