package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"taskdeck/internal/model"
)

// CategoryRepository manages task categories.
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, category *model.Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

func (r *CategoryRepository) ListByUser(ctx context.Context, userID string) ([]model.Category, error) {
	var categories []model.Category
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, userID, id string) (*model.Category, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) Update(ctx context.Context, category *model.Category) error {
	if err := r.db.WithContext(ctx).Save(category).Error; err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// Delete removes the category only. Tasks referencing it keep their
// category_id; the reference is soft on purpose.
func (r *CategoryRepository) Delete(ctx context.Context, userID, id string) error {
	if err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).
		Delete(&model.Category{}).Error; err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
