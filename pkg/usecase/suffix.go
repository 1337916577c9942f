package usecase

import (
	"context"
	"regexp"
	"strconv"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/ravere/pkg/domain/types"
)

// ResolveSuffix scans tag pages in the order GitHub returns them and stops at
// the first tag shaped like "<base>-<n>". This is not a maximum over all tags.
func (uc *releaseUseCase) ResolveSuffix(ctx context.Context, owner, repo, baseTag string) (int, error) {
	logger := ctxlog.From(ctx)

	pattern, err := regexp.Compile("^" + regexp.QuoteMeta(baseTag) + "-([0-9]+)$")
	if err != nil {
		return 0, goerr.Wrap(err, "failed to compile prerelease tag pattern", goerr.V("base_tag", baseTag))
	}

	page := 1
	for {
		names, next, err := uc.githubClient.ListTags(ctx, owner, repo, page)
		if err != nil {
			logger.Error("Unexpected error fetching existing tags",
				"error", err,
				"owner", owner,
				"repo", repo,
				"page", page,
			)
			return 0, goerr.Wrap(err, "failed to list tags",
				goerr.V("owner", owner),
				goerr.V("repo", repo),
				goerr.V("page", page),
				goerr.T(types.ErrTagTransport),
			)
		}

		for _, name := range names {
			m := pattern.FindStringSubmatch(name)
			if m == nil {
				continue
			}

			suffix, err := strconv.Atoi(m[1])
			if err != nil {
				return 0, goerr.Wrap(err, "prerelease suffix is not a valid integer", goerr.V("tag", name))
			}

			logger.Info("Found existing prerelease tag",
				"tag", name,
				"suffix", suffix,
				"page", page,
			)
			return suffix, nil
		}

		if next <= page {
			break
		}
		page = next
	}

	logger.Info("No existing prerelease tag found", "base_tag", baseTag)
	return 0, nil
}
