package usecase_test

import (
	"context"
	"errors"
	"path/filepath"
	"sort"
	"strings"

	"github.com/m-mizutani/ravere/pkg/domain/model"
)

// MockGitHubClient is a mock implementation of GitHubClient
type MockGitHubClient struct {
	listTagsFunc      func(ctx context.Context, owner, repo string, page int) ([]string, int, error)
	createReleaseFunc func(ctx context.Context, owner, repo string, release *model.NewRelease) (*model.Release, error)
	uploadAssetFunc   func(ctx context.Context, owner, repo string, releaseID int64, asset *model.Asset) error

	listTagsCalls []int
	createCalls   []*model.NewRelease
	uploadCalls   []*model.Asset
}

func (m *MockGitHubClient) ListTags(ctx context.Context, owner, repo string, page int) ([]string, int, error) {
	m.listTagsCalls = append(m.listTagsCalls, page)
	if m.listTagsFunc != nil {
		return m.listTagsFunc(ctx, owner, repo, page)
	}
	return nil, 0, nil
}

func (m *MockGitHubClient) CreateRelease(ctx context.Context, owner, repo string, release *model.NewRelease) (*model.Release, error) {
	m.createCalls = append(m.createCalls, release)
	if m.createReleaseFunc != nil {
		return m.createReleaseFunc(ctx, owner, repo, release)
	}
	return nil, errors.New("mock not configured")
}

func (m *MockGitHubClient) UploadReleaseAsset(ctx context.Context, owner, repo string, releaseID int64, asset *model.Asset) error {
	m.uploadCalls = append(m.uploadCalls, asset)
	if m.uploadAssetFunc != nil {
		return m.uploadAssetFunc(ctx, owner, repo, releaseID, asset)
	}
	return nil
}

func (m *MockGitHubClient) createdTags() []string {
	tags := make([]string, 0, len(m.createCalls))
	for _, c := range m.createCalls {
		tags = append(tags, c.TagName)
	}
	return tags
}

// pagedTags serves tags in fixed pages, like the GitHub API does
func pagedTags(pages ...[]string) func(ctx context.Context, owner, repo string, page int) ([]string, int, error) {
	return func(ctx context.Context, owner, repo string, page int) ([]string, int, error) {
		if page < 1 || page > len(pages) {
			return nil, 0, nil
		}
		next := page + 1
		if page == len(pages) {
			next = 0
		}
		return pages[page-1], next, nil
	}
}

// createOK returns a release for whatever tag is requested
func createOK(ctx context.Context, owner, repo string, release *model.NewRelease) (*model.Release, error) {
	return &model.Release{
		ID:         42,
		TagName:    release.TagName,
		Prerelease: release.Prerelease,
		Draft:      release.Draft,
	}, nil
}

func collisionError() error {
	return &model.APIError{
		StatusCode: 422,
		Message:    "Validation Failed",
		Errors: []model.FieldError{
			{Resource: "Release", Code: "already_exists", Field: "tag_name"},
		},
	}
}

// MockAssetSource serves files from memory
type MockAssetSource struct {
	files   map[string]string
	globErr error
	readErr error
}

func (m *MockAssetSource) Glob(pattern string) ([]string, error) {
	if m.globErr != nil {
		return nil, m.globErr
	}

	var matched []string
	for path := range m.files {
		if ok, _ := filepath.Match(pattern, path); ok {
			matched = append(matched, path)
		}
	}
	sort.Strings(matched)
	return matched, nil
}

func (m *MockAssetSource) Read(path, contentType string) (*model.Asset, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}

	data, ok := m.files[path]
	if !ok {
		return nil, errors.New("no such file: " + path)
	}
	return &model.Asset{
		Name:        path[strings.LastIndex(path, "/")+1:],
		Path:        path,
		Data:        []byte(data),
		ContentType: contentType,
	}, nil
}
