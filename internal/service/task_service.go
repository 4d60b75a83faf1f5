package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"taskdeck/internal/model"
	"taskdeck/internal/repository"
)

// TaskInput represents data required to create a task. ID may be supplied by
// the client when it generated one locally; left empty, a new one is issued.
type TaskInput struct {
	ID          string
	Title       string
	Description string
	DueDate     *time.Time
	Priority    model.Priority
	Notes       string
	CategoryID  string
}

// TaskPatch carries a partial task update; nil fields are left untouched.
// ClearDueDate removes the due date, which an absent DueDate cannot express.
type TaskPatch struct {
	Title        *string
	Description  *string
	DueDate      *time.Time
	ClearDueDate bool
	Priority     *model.Priority
	Completed    *bool
	Notes        *string
	CategoryID   *string
}

// TaskView is a task with its category summary embedded, as the listing
// endpoints return it. Category is nil when the reference does not resolve.
type TaskView struct {
	model.Task
	Category *model.CategorySummary `json:"category,omitempty"`
}

// TaskService wraps task-related business logic.
type TaskService struct {
	taskRepo     *repository.TaskRepository
	categoryRepo *repository.CategoryRepository
}

func NewTaskService(taskRepo *repository.TaskRepository, categoryRepo *repository.CategoryRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo, categoryRepo: categoryRepo}
}

// Create stores a new task for the user. Priority defaults to MEDIUM.
func (s *TaskService) Create(ctx context.Context, userID string, input TaskInput) (*model.Task, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("title is required")
	}

	priority := input.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !priority.Valid() {
		return nil, fmt.Errorf("unknown priority %q", priority)
	}

	id := input.ID
	if id == "" {
		id = uuid.NewString()
	}

	task := model.Task{
		ID:          id,
		UserID:      userID,
		CategoryID:  input.CategoryID,
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate,
		Priority:    priority,
		Notes:       input.Notes,
	}
	if err := s.taskRepo.Create(ctx, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// List returns the user's tasks, newest first, with category summaries.
func (s *TaskService) List(ctx context.Context, userID string) ([]TaskView, error) {
	tasks, err := s.taskRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries, err := s.categorySummaries(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]TaskView, len(tasks))
	for i, task := range tasks {
		views[i] = TaskView{Task: task}
		if summary, ok := summaries[task.CategoryID]; ok {
			views[i].Category = &summary
		}
	}
	return views, nil
}

// Get returns one task with its category summary.
func (s *TaskService) Get(ctx context.Context, userID, taskID string) (*TaskView, error) {
	task, err := s.taskRepo.FindByID(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	view := TaskView{Task: *task}
	if task.CategoryID != "" {
		if category, err := s.categoryRepo.FindByID(ctx, userID, task.CategoryID); err == nil {
			summary := category.Summary()
			view.Category = &summary
		}
	}
	return &view, nil
}

// Update merges the patch into the task and stores it.
func (s *TaskService) Update(ctx context.Context, userID, taskID string, patch TaskPatch) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.ClearDueDate {
		task.DueDate = nil
	} else if patch.DueDate != nil {
		task.DueDate = patch.DueDate
	}
	if patch.Priority != nil {
		if !patch.Priority.Valid() {
			return nil, fmt.Errorf("unknown priority %q", *patch.Priority)
		}
		task.Priority = *patch.Priority
	}
	if patch.Completed != nil {
		task.Completed = *patch.Completed
	}
	if patch.Notes != nil {
		task.Notes = *patch.Notes
	}
	if patch.CategoryID != nil {
		task.CategoryID = *patch.CategoryID
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Delete removes a task.
func (s *TaskService) Delete(ctx context.Context, userID, taskID string) error {
	return s.taskRepo.Delete(ctx, userID, taskID)
}

func (s *TaskService) categorySummaries(ctx context.Context, userID string) (map[string]model.CategorySummary, error) {
	categories, err := s.categoryRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	summaries := make(map[string]model.CategorySummary, len(categories))
	for _, category := range categories {
		summaries[category.ID] = category.Summary()
	}
	return summaries, nil
}
