package service

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"taskdeck/internal/repository"
)

func TestCategoryServiceCRUD(t *testing.T) {
	db := newTestDB(t)
	categories := NewCategoryService(repository.NewCategoryRepository(db))
	tasks := NewTaskService(repository.NewTaskRepository(db), repository.NewCategoryRepository(db))
	ctx := context.Background()

	category, err := categories.Create(ctx, "u1", CategoryInput{Name: "Work", Color: "#f00"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	color := "#0f0"
	updated, err := categories.Update(ctx, "u1", category.ID, CategoryPatch{Color: &color})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Color != "#0f0" || updated.Name != "Work" {
		t.Errorf("updated = %+v", updated)
	}

	// Deleting the category must not touch tasks that reference it.
	task, err := tasks.Create(ctx, "u1", TaskInput{Title: "A", CategoryID: category.ID})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if err := categories.Delete(ctx, "u1", category.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := categories.Get(ctx, "u1", category.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("category still readable: %v", err)
	}
	kept, err := tasks.Get(ctx, "u1", task.ID)
	if err != nil {
		t.Fatalf("task gone after category delete: %v", err)
	}
	if kept.CategoryID != category.ID {
		t.Errorf("task categoryId rewritten to %q", kept.CategoryID)
	}
}

func TestCategoryServiceValidation(t *testing.T) {
	db := newTestDB(t)
	categories := NewCategoryService(repository.NewCategoryRepository(db))
	ctx := context.Background()

	if _, err := categories.Create(ctx, "u1", CategoryInput{Color: "#f00"}); err == nil {
		t.Error("empty name accepted")
	}
	if _, err := categories.Create(ctx, "u1", CategoryInput{Name: "Work"}); err == nil {
		t.Error("empty color accepted")
	}
}

func TestCategoryServiceUserScoping(t *testing.T) {
	db := newTestDB(t)
	categories := NewCategoryService(repository.NewCategoryRepository(db))
	ctx := context.Background()

	category, err := categories.Create(ctx, "u1", CategoryInput{Name: "Work", Color: "#f00"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := categories.Get(ctx, "u2", category.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("cross-user Get err = %v", err)
	}
}
