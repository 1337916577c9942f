package actions

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/ravere/pkg/domain/interfaces"
	"github.com/m-mizutani/ravere/pkg/domain/model"
	"github.com/sethvargo/go-githubactions"
)

type reporter struct {
	action *githubactions.Action
	getenv func(string) string
}

type config struct {
	getenv func(string) string
	writer io.Writer
}

// Option is a functional option for the reporter
type Option func(*config)

// WithGetenv replaces os.Getenv, mainly for testing
func WithGetenv(getenv func(string) string) Option {
	return func(c *config) {
		c.getenv = getenv
	}
}

// WithWriter sets where workflow commands are written
func WithWriter(w io.Writer) Option {
	return func(c *config) {
		c.writer = w
	}
}

// NewReporter creates a Reporter that writes step outputs and a job summary
func NewReporter(opts ...Option) interfaces.Reporter {
	cfg := &config{
		getenv: os.Getenv,
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return &reporter{
		action: githubactions.New(
			githubactions.WithGetenv(cfg.getenv),
			githubactions.WithWriter(cfg.writer),
		),
		getenv: cfg.getenv,
	}
}

// Report sets tag_name, release_id, html_url and upload_url outputs. Outside of
// GitHub Actions it only logs.
func (r *reporter) Report(ctx context.Context, result *model.PublishResult) error {
	logger := ctxlog.From(ctx)

	if r.getenv("GITHUB_OUTPUT") == "" {
		logger.Debug("GITHUB_OUTPUT is not set, skipping step outputs")
		return nil
	}

	r.action.SetOutput("tag_name", result.Release.TagName)
	r.action.SetOutput("release_id", strconv.FormatInt(result.Release.ID, 10))
	r.action.SetOutput("html_url", result.Release.HTMLURL)
	r.action.SetOutput("upload_url", result.Release.UploadURL)

	if r.getenv("GITHUB_STEP_SUMMARY") != "" {
		r.action.AddStepSummary(summary(result))
	}

	logger.Info("Wrote step outputs", "tag_name", result.Release.TagName)
	return nil
}

func summary(result *model.PublishResult) string {
	var sb strings.Builder

	kind := "Release"
	if result.Release.Prerelease {
		kind = "Prerelease"
	}
	if result.Release.Draft {
		kind = "Draft " + strings.ToLower(kind)
	}

	if result.Release.HTMLURL != "" {
		sb.WriteString(fmt.Sprintf("### %s [%s](%s)\n\n", kind, result.Release.TagName, result.Release.HTMLURL))
	} else {
		sb.WriteString(fmt.Sprintf("### %s %s\n\n", kind, result.Release.TagName))
	}

	if result.Attempts > 1 {
		sb.WriteString(fmt.Sprintf("Created after %d attempts due to tag collisions.\n\n", result.Attempts))
	}

	if len(result.Assets) > 0 {
		sb.WriteString("| Asset |\n|---|\n")
		for _, name := range result.Assets {
			sb.WriteString(fmt.Sprintf("| `%s` |\n", name))
		}
	}

	return sb.String()
}
