package model

// DefaultAssetContentType is sent when no content type is configured
const DefaultAssetContentType = "application/octet-stream"

// Asset is a file to be attached to a release
type Asset struct {
	Name        string // Base filename shown on the release page
	Path        string // Local path the data was read from
	Data        []byte
	ContentType string
}
