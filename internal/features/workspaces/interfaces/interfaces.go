package workspaces_interfaces

import "github.com/google/uuid"

// WorkspaceDeletionListener is notified before a workspace row is
// removed, so dependent features can clean up their own data.
type WorkspaceDeletionListener interface {
	OnWorkspaceDeleted(workspaceID uuid.UUID) error
}
