// Package members manages a workspace's departments and the team members
// who provide bookable services. Members are the "providers" of the slot
// engine; their availability overrides live in the workspace settings blob
// keyed by member id.
package members

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrMemberNotFound     = errors.New("members: not found")
	ErrDepartmentNotFound = errors.New("members: department not found")
	ErrMissingName        = errors.New("members: name is required")
)

// Department groups members for provider routing in the booking widget.
type Department struct {
	ID          string    `json:"id"`
	WorkspaceID string    `json:"workspace_id"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"created_at"`
}

// Member is one staff member of a workspace.
type Member struct {
	ID           string    `json:"id"`
	WorkspaceID  string    `json:"workspace_id"`
	DepartmentID string    `json:"department_id,omitempty"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// UpsertMemberRequest is the request body for creating or updating a member.
type UpsertMemberRequest struct {
	WorkspaceID  string `json:"-"`
	DepartmentID string `json:"department_id,omitempty"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
}

// Validate validates the upsert request.
func (r *UpsertMemberRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrMissingName
	}
	return nil
}
