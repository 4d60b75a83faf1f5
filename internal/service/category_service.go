package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"taskdeck/internal/model"
	"taskdeck/internal/repository"
)

// CategoryInput represents data required to create a category. ID may be
// supplied by the client when it generated one locally.
type CategoryInput struct {
	ID    string
	Name  string
	Color string
}

// CategoryPatch carries a partial category update.
type CategoryPatch struct {
	Name  *string
	Color *string
}

// CategoryService wraps category-related business logic.
type CategoryService struct {
	repo *repository.CategoryRepository
}

func NewCategoryService(repo *repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) Create(ctx context.Context, userID string, input CategoryInput) (*model.Category, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if input.Color == "" {
		return nil, fmt.Errorf("color is required")
	}

	id := input.ID
	if id == "" {
		id = uuid.NewString()
	}

	category := model.Category{
		ID:     id,
		UserID: userID,
		Name:   input.Name,
		Color:  input.Color,
	}
	if err := s.repo.Create(ctx, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CategoryService) List(ctx context.Context, userID string) ([]model.Category, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *CategoryService) Get(ctx context.Context, userID, id string) (*model.Category, error) {
	return s.repo.FindByID(ctx, userID, id)
}

func (s *CategoryService) Update(ctx context.Context, userID, id string, patch CategoryPatch) (*model.Category, error) {
	category, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		category.Name = *patch.Name
	}
	if patch.Color != nil {
		category.Color = *patch.Color
	}

	if err := s.repo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete removes the category. Tasks referencing it are left as they are.
func (s *CategoryService) Delete(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, userID, id)
}
