package fs

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/ravere/pkg/domain/interfaces"
	"github.com/m-mizutani/ravere/pkg/domain/model"
)

type source struct{}

// New creates an AssetSource backed by the local file system
func New() interfaces.AssetSource {
	return &source{}
}

// Glob expands a pattern list into regular files. The list has one pattern
// per line; "**" crosses directories, lines starting with "!" exclude
// matches and lines starting with "#" are ignored.
func (s *source) Glob(pattern string) ([]string, error) {
	var includes, excludes []string
	for _, line := range strings.Split(pattern, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "", strings.HasPrefix(line, "#"):
			continue
		case strings.HasPrefix(line, "!"):
			excludes = append(excludes, filepath.Clean(strings.TrimSpace(line[1:])))
		default:
			includes = append(includes, filepath.Clean(line))
		}
	}

	for _, p := range append(includes, excludes...) {
		if !doublestar.ValidatePathPattern(p) {
			return nil, goerr.New("invalid file pattern", goerr.V("pattern", p))
		}
	}

	seen := make(map[string]struct{})
	var matched []string
	for _, p := range includes {
		paths, err := doublestar.FilepathGlob(p, doublestar.WithFilesOnly())
		if err != nil {
			return nil, goerr.Wrap(err, "failed to expand file pattern", goerr.V("pattern", p))
		}

		for _, path := range paths {
			if _, ok := seen[path]; ok || excluded(path, excludes) {
				continue
			}
			seen[path] = struct{}{}
			matched = append(matched, path)
		}
	}

	sort.Strings(matched)
	return matched, nil
}

func excluded(path string, excludes []string) bool {
	for _, ex := range excludes {
		if ok, _ := doublestar.PathMatch(ex, path); ok {
			return true
		}
	}
	return false
}

// Read loads a file into memory
func (s *source) Read(path, contentType string) (*model.Asset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read asset file", goerr.V("path", path))
	}

	if contentType == "" {
		contentType = model.DefaultAssetContentType
	}

	return &model.Asset{
		Name:        filepath.Base(path),
		Path:        path,
		Data:        data,
		ContentType: contentType,
	}, nil
}
