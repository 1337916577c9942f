package model

// ReleaseRequest holds everything needed to publish one release
type ReleaseRequest struct {
	Owner                  string // Repository owner
	Repo                   string // Repository name
	BaseTag                string // Tag name without prerelease suffix
	TargetCommitish        string // Branch or commit SHA the tag points to
	Prerelease             bool
	Draft                  bool
	Name                   string // Release title, omitted when empty
	Body                   string // Release notes, omitted when empty
	DiscussionCategoryName string // Omitted when empty
	GenerateReleaseNotes   bool
	MaxRetries             int // Collision retry budget
}

// NewRelease is a single create call sent to the hosting platform
type NewRelease struct {
	TagName                string
	TargetCommitish        string
	Prerelease             bool
	Draft                  bool
	Name                   string
	Body                   string
	DiscussionCategoryName string
	GenerateReleaseNotes   bool
}

// Release is a release record created on the hosting platform
type Release struct {
	ID         int64  `json:"id"`
	TagName    string `json:"tag_name"`
	Name       string `json:"name,omitempty"`
	HTMLURL    string `json:"html_url,omitempty"`
	UploadURL  string `json:"upload_url,omitempty"`
	Draft      bool   `json:"draft"`
	Prerelease bool   `json:"prerelease"`
}

// CreateResult is the outcome of the collision-retry loop
type CreateResult struct {
	Release  *Release
	Suffix   int // Suffix used in the tag, 0 for a regular release
	Attempts int // Number of create calls made
}

// PublishResult summarizes a whole run
type PublishResult struct {
	Release  *Release
	Suffix   int
	Attempts int
	Assets   []string // Names of uploaded assets in upload order
}
