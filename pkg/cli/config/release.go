package config

import (
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/ravere/pkg/domain/model"
	"github.com/m-mizutani/ravere/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// DefaultRetries is the collision retry budget when none is configured
const DefaultRetries = 3

// Release holds inputs of a release run. Boolean-like inputs are kept as
// strings because only TRUE and FALSE (any case) are accepted.
type Release struct {
	TagName                string
	Prerelease             string
	Draft                  string
	GenerateReleaseNotes   string
	TargetCommitish        string
	Name                   string
	Body                   string
	DiscussionCategoryName string
	Files                  string
	Retries                int
	ContentType            string
	ConfigFile             string
}

// Flag names shared by Flags and ApplyFile
const (
	flagTagName                = "tag-name"
	flagPrerelease             = "prerelease"
	flagDraft                  = "draft"
	flagGenerateReleaseNotes   = "generate-release-notes"
	flagTargetCommitish        = "target-commitish"
	flagName                   = "name"
	flagBody                   = "body"
	flagDiscussionCategoryName = "discussion-category-name"
	flagFiles                  = "files"
	flagRetries                = "retries"
	flagContentType            = "asset-content-type"
)

// inputEnv returns env var names for an input: ravere's own, the GitHub Actions
// INPUT_ form and the bare lower-case name used by composite actions.
func inputEnv(input string) cli.ValueSourceChain {
	upper := strings.ToUpper(input)
	return cli.EnvVars("RAVERE_"+upper, "INPUT_"+upper, input)
}

// Flags returns CLI flags for release configuration
func (c *Release) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        flagTagName,
			Usage:       "Base tag name, without prerelease suffix",
			Destination: &c.TagName,
			Sources:     inputEnv("tag_name"),
		},
		&cli.StringFlag{
			Name:        flagPrerelease,
			Usage:       "Publish a prerelease with a numeric suffix (true or false)",
			Value:       "false",
			Destination: &c.Prerelease,
			Sources:     inputEnv("prerelease"),
		},
		&cli.StringFlag{
			Name:        flagDraft,
			Usage:       "Create an unpublished draft (true or false)",
			Value:       "false",
			Destination: &c.Draft,
			Sources:     inputEnv("draft"),
		},
		&cli.StringFlag{
			Name:        flagGenerateReleaseNotes,
			Usage:       "Let GitHub generate release notes (true or false)",
			Value:       "false",
			Destination: &c.GenerateReleaseNotes,
			Sources:     inputEnv("generate_release_notes"),
		},
		&cli.StringFlag{
			Name:        flagTargetCommitish,
			Usage:       "Branch or commit SHA the tag is created from",
			Destination: &c.TargetCommitish,
			Sources:     inputEnv("target_commitish"),
		},
		&cli.StringFlag{
			Name:        flagName,
			Usage:       "Release title",
			Destination: &c.Name,
			Sources:     inputEnv("name"),
		},
		&cli.StringFlag{
			Name:        flagBody,
			Usage:       "Release description",
			Destination: &c.Body,
			Sources:     inputEnv("body"),
		},
		&cli.StringFlag{
			Name:        flagDiscussionCategoryName,
			Usage:       "Discussion category to create a linked discussion in",
			Destination: &c.DiscussionCategoryName,
			Sources:     inputEnv("discussion_category_name"),
		},
		&cli.StringFlag{
			Name:        flagFiles,
			Usage:       "Glob pattern(s) of files to upload, one per line",
			Destination: &c.Files,
			Sources:     inputEnv("files"),
		},
		&cli.IntFlag{
			Name:        flagRetries,
			Usage:       "Maximum number of prerelease suffix increases on tag collision",
			Value:       DefaultRetries,
			Destination: &c.Retries,
			Sources:     inputEnv("retries"),
		},
		&cli.StringFlag{
			Name:        flagContentType,
			Usage:       "Content type sent for uploaded assets",
			Value:       model.DefaultAssetContentType,
			Destination: &c.ContentType,
			Sources:     inputEnv("asset_content_type"),
		},
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "TOML file with release defaults",
			Destination: &c.ConfigFile,
			Sources:     cli.EnvVars("RAVERE_CONFIG"),
		},
	}
}

// ParseFlag parses a boolean-like input. Only "true" and "false" in any case are accepted.
func ParseFlag(name, value string) (bool, error) {
	switch strings.ToUpper(value) {
	case "TRUE":
		return true, nil
	case "FALSE":
		return false, nil
	default:
		return false, goerr.New("invalid "+name+" input (valid options: 'true', 'false', 'TRUE', 'FALSE')",
			goerr.V("input", name),
			goerr.V("value", value),
			goerr.T(types.ErrTagConfig),
		)
	}
}

// Request validates inputs and builds a release request for owner/repo
func (c *Release) Request(owner, repo string) (*model.ReleaseRequest, error) {
	prerelease, err := ParseFlag("prerelease", c.Prerelease)
	if err != nil {
		return nil, err
	}
	draft, err := ParseFlag("draft", c.Draft)
	if err != nil {
		return nil, err
	}
	notes, err := ParseFlag("generate_release_notes", c.GenerateReleaseNotes)
	if err != nil {
		return nil, err
	}

	if c.TagName == "" {
		return nil, goerr.New("tag_name is required", goerr.T(types.ErrTagConfig))
	}

	return &model.ReleaseRequest{
		Owner:                  owner,
		Repo:                   repo,
		BaseTag:                c.TagName,
		TargetCommitish:        c.TargetCommitish,
		Prerelease:             prerelease,
		Draft:                  draft,
		Name:                   c.Name,
		Body:                   c.Body,
		DiscussionCategoryName: c.DiscussionCategoryName,
		GenerateReleaseNotes:   notes,
		MaxRetries:             c.Retries,
	}, nil
}

// ApplyFile fills values from a config file for flags that were not set on
// the command line or through the environment.
func (c *Release) ApplyFile(f *ReleaseFile, isSet func(name string) bool) {
	setString := func(flag string, dst *string, v *string) {
		if v != nil && !isSet(flag) {
			*dst = *v
		}
	}
	setBool := func(flag string, dst *string, v *bool) {
		if v != nil && !isSet(flag) {
			*dst = strconv.FormatBool(*v)
		}
	}

	setString(flagTagName, &c.TagName, f.TagName)
	setBool(flagPrerelease, &c.Prerelease, f.Prerelease)
	setBool(flagDraft, &c.Draft, f.Draft)
	setBool(flagGenerateReleaseNotes, &c.GenerateReleaseNotes, f.GenerateReleaseNotes)
	setString(flagTargetCommitish, &c.TargetCommitish, f.TargetCommitish)
	setString(flagName, &c.Name, f.Name)
	setString(flagBody, &c.Body, f.Body)
	setString(flagDiscussionCategoryName, &c.DiscussionCategoryName, f.DiscussionCategoryName)
	setString(flagFiles, &c.Files, f.Files)
	setString(flagContentType, &c.ContentType, f.ContentType)

	if f.Retries != nil && !isSet(flagRetries) {
		c.Retries = *f.Retries
	}
}
