package workspaces_dto

import (
	"time"

	"etude-backend/internal/features/shares"

	"github.com/google/uuid"
)

type CreateWorkspaceRequestDTO struct {
	Name string `json:"name" binding:"required,min=1,max=200"`
}

type RenameWorkspaceRequestDTO struct {
	Name string `json:"name" binding:"required,min=1,max=200"`
}

type WorkspaceResponseDTO struct {
	ID            uuid.UUID          `json:"id"`
	Name          string             `json:"name"`
	OwnerID       uuid.UUID          `json:"ownerId"`
	IsDefault     bool               `json:"isDefault"`
	AccessLevel   shares.AccessLevel `json:"accessLevel"`
	SharedPageIDs []uuid.UUID        `json:"sharedPageIds,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
}

type WorkspacesResponseDTO struct {
	Workspaces []WorkspaceResponseDTO `json:"workspaces"`
}
