package workspaces

import (
	"errors"
	"regexp"
	"time"
)

var (
	// ErrWorkspaceNotFound is returned when a workspace does not exist.
	ErrWorkspaceNotFound = errors.New("workspaces: workspace not found")
	// ErrSlugTaken is returned when a slug is already in use by another workspace.
	ErrSlugTaken = errors.New("workspaces: slug already in use")
	// ErrMissingName is returned when a workspace name is empty.
	ErrMissingName = errors.New("workspaces: name is required")
	// ErrInvalidSlug is returned when a slug contains characters other than
	// lowercase letters, digits, and hyphens.
	ErrInvalidSlug = errors.New("workspaces: slug must be lowercase letters, digits, and hyphens")
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Workspace is a tenant of the scheduling platform. All domain data is
// scoped to exactly one workspace.
type Workspace struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Timezone  string    `json:"timezone"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// UpsertRequest is the request body for creating or updating a workspace.
type UpsertRequest struct {
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Timezone string `json:"timezone"`
	Active   *bool  `json:"active,omitempty"`
}

// Validate checks the request for required fields and slug shape.
func (r *UpsertRequest) Validate() error {
	if r.Name == "" {
		return ErrMissingName
	}
	if r.Slug != "" && !slugPattern.MatchString(r.Slug) {
		return ErrInvalidSlug
	}
	return nil
}
