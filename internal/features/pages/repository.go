package pages

import (
	"errors"
	"time"

	"etude-backend/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PageRepository struct{}

func (r *PageRepository) Create(page *Page) error {
	return storage.GetDb().Create(page).Error
}

func (r *PageRepository) GetByID(id uuid.UUID) (*Page, error) {
	var page Page

	err := storage.GetDb().Where("id = ?", id).First(&page).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &page, nil
}

func (r *PageRepository) ListByOwnerID(ownerID uuid.UUID) ([]Page, error) {
	var result []Page

	err := storage.GetDb().
		Where("owner_id = ?", ownerID).
		Order("updated_at DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PageRepository) ListByWorkspaceID(workspaceID uuid.UUID) ([]Page, error) {
	var result []Page

	err := storage.GetDb().
		Where("workspace_id = ?", workspaceID).
		Order("updated_at DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PageRepository) ListByIDs(ids []uuid.UUID) ([]Page, error) {
	if len(ids) == 0 {
		return []Page{}, nil
	}

	var result []Page

	err := storage.GetDb().
		Where("id IN ?", ids).
		Order("updated_at DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PageRepository) Update(page *Page) error {
	page.UpdatedAt = time.Now().UTC()

	return storage.GetDb().
		Model(&Page{}).
		Where("id = ?", page.ID).
		Updates(map[string]any{
			"title":      page.Title,
			"content":    page.Content,
			"tags":       page.Tags,
			"updated_at": page.UpdatedAt,
		}).Error
}

func (r *PageRepository) SetFavorite(id uuid.UUID, isFavorite bool) error {
	return storage.GetDb().
		Model(&Page{}).
		Where("id = ?", id).
		Update("is_favorite", isFavorite).Error
}

func (r *PageRepository) Delete(id uuid.UUID) error {
	return storage.GetDb().Where("id = ?", id).Delete(&Page{}).Error
}

func (r *PageRepository) DeleteByWorkspaceID(workspaceID uuid.UUID) error {
	return storage.GetDb().Where("workspace_id = ?", workspaceID).Delete(&Page{}).Error
}
