package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/ravere/pkg/domain/types"
	"github.com/pelletier/go-toml/v2"
)

// File is the layout of the TOML config file
//
//	[release]
//	prerelease = true
//	retries = 5
//	files = "dist/*"
type File struct {
	Release ReleaseFile `toml:"release"`
}

// ReleaseFile holds release defaults. Nil fields are left untouched.
type ReleaseFile struct {
	TagName                *string `toml:"tag_name"`
	Prerelease             *bool   `toml:"prerelease"`
	Draft                  *bool   `toml:"draft"`
	GenerateReleaseNotes   *bool   `toml:"generate_release_notes"`
	TargetCommitish        *string `toml:"target_commitish"`
	Name                   *string `toml:"name"`
	Body                   *string `toml:"body"`
	DiscussionCategoryName *string `toml:"discussion_category_name"`
	Files                  *string `toml:"files"`
	Retries                *int    `toml:"retries"`
	ContentType            *string `toml:"asset_content_type"`
}

// LoadFile reads and decodes a TOML config file. Unknown keys are rejected.
func LoadFile(path string) (*File, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open config file",
			goerr.V("path", path),
			goerr.T(types.ErrTagConfig),
		)
	}
	defer fd.Close()

	var f File
	dec := toml.NewDecoder(fd)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, goerr.Wrap(err, "failed to decode config file",
			goerr.V("path", path),
			goerr.T(types.ErrTagConfig),
		)
	}

	return &f, nil
}
