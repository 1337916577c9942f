package model

import (
	"fmt"
	"net/http"
)

// FieldError is one entry of the "errors" list in a GitHub API error body
type FieldError struct {
	Resource string `json:"resource"`
	Code     string `json:"code"`
	Field    string `json:"field"`
	Message  string `json:"message,omitempty"`
}

// APIError is a structured failure returned by the hosting platform
type APIError struct {
	StatusCode int
	Message    string
	Errors     []FieldError
}

func (x *APIError) Error() string {
	if x.Message == "" {
		return fmt.Sprintf("API error: status=%d", x.StatusCode)
	}
	return fmt.Sprintf("API error: status=%d message=%s", x.StatusCode, x.Message)
}

// IsTagCollision reports whether the platform rejected a release because
// its tag name is already taken.
func (x *APIError) IsTagCollision() bool {
	if x == nil || x.StatusCode != http.StatusUnprocessableEntity {
		return false
	}

	for _, e := range x.Errors {
		if e.Resource == "Release" && e.Code == "already_exists" && e.Field == "tag_name" {
			return true
		}
	}
	return false
}
