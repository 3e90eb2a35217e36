package workspaces_repositories

import (
	"errors"

	workspaces_models "etude-backend/internal/features/workspaces/models"
	"etude-backend/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WorkspaceRepository struct{}

func (r *WorkspaceRepository) Create(workspace *workspaces_models.Workspace) error {
	return storage.GetDb().Create(workspace).Error
}

func (r *WorkspaceRepository) GetByID(id uuid.UUID) (*workspaces_models.Workspace, error) {
	var workspace workspaces_models.Workspace

	err := storage.GetDb().Where("id = ?", id).First(&workspace).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &workspace, nil
}

func (r *WorkspaceRepository) ListByOwnerID(ownerID uuid.UUID) ([]workspaces_models.Workspace, error) {
	var workspaces []workspaces_models.Workspace

	err := storage.GetDb().
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&workspaces).Error
	if err != nil {
		return nil, err
	}

	return workspaces, nil
}

func (r *WorkspaceRepository) CountByOwnerID(ownerID uuid.UUID) (int64, error) {
	var count int64

	err := storage.GetDb().
		Model(&workspaces_models.Workspace{}).
		Where("owner_id = ?", ownerID).
		Count(&count).Error

	return count, err
}

func (r *WorkspaceRepository) UpdateName(id uuid.UUID, name string) error {
	return storage.GetDb().
		Model(&workspaces_models.Workspace{}).
		Where("id = ?", id).
		Update("name", name).Error
}

func (r *WorkspaceRepository) Delete(id uuid.UUID) error {
	return storage.GetDb().Where("id = ?", id).Delete(&workspaces_models.Workspace{}).Error
}
