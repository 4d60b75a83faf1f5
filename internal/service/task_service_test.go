package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"taskdeck/internal/model"
	"taskdeck/internal/repository"
)

func newTaskFixture(t *testing.T) (*TaskService, *CategoryService) {
	t.Helper()
	db := newTestDB(t)
	categoryRepo := repository.NewCategoryRepository(db)
	return NewTaskService(repository.NewTaskRepository(db), categoryRepo), NewCategoryService(categoryRepo)
}

func TestTaskServiceCreateDefaults(t *testing.T) {
	tasks, _ := newTaskFixture(t)
	ctx := context.Background()

	task, err := tasks.Create(ctx, "u1", TaskInput{Title: "Buy milk", CategoryID: "c1"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if task.Priority != model.PriorityMedium {
		t.Errorf("priority = %q, want MEDIUM", task.Priority)
	}
	if task.Completed {
		t.Error("new task is completed")
	}
	if task.ID == "" {
		t.Error("no id generated")
	}
}

func TestTaskServiceCreateValidation(t *testing.T) {
	tasks, _ := newTaskFixture(t)
	ctx := context.Background()

	if _, err := tasks.Create(ctx, "u1", TaskInput{CategoryID: "c1"}); err == nil {
		t.Error("empty title accepted")
	}
	if _, err := tasks.Create(ctx, "u1", TaskInput{Title: "A", Priority: "URGENT"}); err == nil {
		t.Error("unknown priority accepted")
	}
}

func TestTaskServiceCreateKeepsClientID(t *testing.T) {
	tasks, _ := newTaskFixture(t)
	ctx := context.Background()

	task, err := tasks.Create(ctx, "u1", TaskInput{ID: "client-id-1", Title: "A"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if task.ID != "client-id-1" {
		t.Errorf("id = %q, want client-supplied id kept", task.ID)
	}
}

func TestTaskServiceUserScoping(t *testing.T) {
	tasks, _ := newTaskFixture(t)
	ctx := context.Background()

	task, err := tasks.Create(ctx, "u1", TaskInput{Title: "private"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := tasks.Get(ctx, "u2", task.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("cross-user Get err = %v, want record not found", err)
	}

	views, err := tasks.List(ctx, "u2")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(views) != 0 {
		t.Errorf("u2 sees %d of u1's tasks", len(views))
	}
}

func TestTaskServiceListEmbedsCategory(t *testing.T) {
	tasks, categories := newTaskFixture(t)
	ctx := context.Background()

	category, err := categories.Create(ctx, "u1", CategoryInput{Name: "Work", Color: "#f00"})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	if _, err := tasks.Create(ctx, "u1", TaskInput{Title: "with category", CategoryID: category.ID}); err != nil {
		t.Fatalf("create task: %v", err)
	}
	if _, err := tasks.Create(ctx, "u1", TaskInput{Title: "orphaned", CategoryID: "gone"}); err != nil {
		t.Fatalf("create task: %v", err)
	}

	views, err := tasks.List(ctx, "u1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("got %d views", len(views))
	}

	byTitle := map[string]TaskView{}
	for _, v := range views {
		byTitle[v.Title] = v
	}
	with := byTitle["with category"]
	if with.Category == nil || with.Category.Name != "Work" {
		t.Errorf("category summary not embedded: %+v", with.Category)
	}
	// A dangling reference stays on the task but embeds nothing.
	orphan := byTitle["orphaned"]
	if orphan.Category != nil {
		t.Errorf("orphaned task embedded %+v", orphan.Category)
	}
	if orphan.CategoryID != "gone" {
		t.Errorf("orphaned reference rewritten to %q", orphan.CategoryID)
	}
}

func TestTaskServiceUpdate(t *testing.T) {
	tasks, _ := newTaskFixture(t)
	ctx := context.Background()

	task, err := tasks.Create(ctx, "u1", TaskInput{Title: "A"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	time.Sleep(10 * time.Millisecond)
	completed := true
	updated, err := tasks.Update(ctx, "u1", task.ID, TaskPatch{Completed: &completed})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !updated.Completed {
		t.Error("completed not applied")
	}
	if !updated.UpdatedAt.After(task.UpdatedAt) {
		t.Error("updatedAt not refreshed")
	}

	if _, err := tasks.Update(ctx, "u1", "missing", TaskPatch{Completed: &completed}); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("update of missing task err = %v", err)
	}
}

func TestTaskServiceClearDueDate(t *testing.T) {
	tasks, _ := newTaskFixture(t)
	ctx := context.Background()

	due := time.Now().Add(24 * time.Hour)
	task, err := tasks.Create(ctx, "u1", TaskInput{Title: "A", DueDate: &due})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// An empty patch leaves the date alone.
	updated, err := tasks.Update(ctx, "u1", task.ID, TaskPatch{})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.DueDate == nil {
		t.Fatal("due date dropped by empty patch")
	}

	updated, err = tasks.Update(ctx, "u1", task.ID, TaskPatch{ClearDueDate: true})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.DueDate != nil {
		t.Errorf("due date not cleared: %v", *updated.DueDate)
	}

	got, err := tasks.Get(ctx, "u1", task.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.DueDate != nil {
		t.Errorf("cleared due date persisted as %v", *got.DueDate)
	}
}

func TestTaskServiceDelete(t *testing.T) {
	tasks, _ := newTaskFixture(t)
	ctx := context.Background()

	task, err := tasks.Create(ctx, "u1", TaskInput{Title: "A"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := tasks.Delete(ctx, "u1", task.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := tasks.Get(ctx, "u1", task.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("task still readable after delete: %v", err)
	}
}
