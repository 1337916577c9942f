package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/ravere/pkg/domain/types"
	"github.com/m-mizutani/ravere/pkg/usecase"
)

func TestReleaseUseCase_ResolveSuffix(t *testing.T) {
	tests := []struct {
		name     string
		baseTag  string
		pages    [][]string
		expected int
		calls    int
	}{
		{
			name:     "No tags at all",
			baseTag:  "v1.2.0",
			pages:    [][]string{{}},
			expected: 0,
			calls:    1,
		},
		{
			name:     "No matching tags across pages",
			baseTag:  "v1.2.0",
			pages:    [][]string{{"v1.1.0", "v1.1.0-4"}, {"v1.2.0", "v1.2.0-rc1"}},
			expected: 0,
			calls:    2,
		},
		{
			name:     "Single matching tag",
			baseTag:  "v1.2.0",
			pages:    [][]string{{"v1.2.0-3", "v1.1.0"}},
			expected: 3,
			calls:    1,
		},
		{
			name:     "First match wins over a higher suffix later on the same page",
			baseTag:  "v1.2.0",
			pages:    [][]string{{"v1.2.0-2", "v1.2.0-9"}},
			expected: 2,
			calls:    1,
		},
		{
			name:     "Stops at the first page with a match",
			baseTag:  "v1.2.0",
			pages:    [][]string{{"main"}, {"v1.2.0-7"}, {"v1.2.0-11"}},
			expected: 7,
			calls:    2,
		},
		{
			name:     "Base tag is matched literally",
			baseTag:  "v1.2.0",
			pages:    [][]string{{"v1x2x0-5", "v1.2.0-1"}},
			expected: 1,
			calls:    1,
		},
		{
			name:     "Nested suffix does not match",
			baseTag:  "v1.2.0",
			pages:    [][]string{{"v1.2.0-1-2", "v1.2.0-"}},
			expected: 0,
			calls:    1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &MockGitHubClient{listTagsFunc: pagedTags(tt.pages...)}
			uc := usecase.NewRelease(client, &MockAssetSource{})

			suffix, err := uc.ResolveSuffix(context.Background(), "owner", "repo", tt.baseTag)
			gt.NoError(t, err)
			gt.Equal(t, suffix, tt.expected)
			gt.A(t, client.listTagsCalls).Length(tt.calls)
			gt.Equal(t, client.listTagsCalls[0], 1)
		})
	}
}

func TestReleaseUseCase_ResolveSuffix_ListError(t *testing.T) {
	listErr := errors.New("rate limited")
	client := &MockGitHubClient{
		listTagsFunc: func(ctx context.Context, owner, repo string, page int) ([]string, int, error) {
			if page == 2 {
				return nil, 0, listErr
			}
			return []string{"main"}, 2, nil
		},
	}
	uc := usecase.NewRelease(client, &MockAssetSource{})

	_, err := uc.ResolveSuffix(context.Background(), "owner", "repo", "v1.0.0")
	gt.Error(t, err)
	gt.True(t, errors.Is(err, listErr))
	gt.True(t, goerr.HasTag(err, types.ErrTagTransport))
	gt.A(t, client.listTagsCalls).Length(2)
}
