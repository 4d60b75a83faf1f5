package store

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"taskdeck/internal/model"
)

// TaskForm carries the fields a user fills in when creating a task.
type TaskForm struct {
	Title       string
	Description string
	DueDate     *time.Time
	Priority    model.Priority
	Notes       string
	CategoryID  string
}

// TaskPatch carries a partial update; nil fields are left untouched.
// ClearDueDate removes the due date regardless of the DueDate field.
type TaskPatch struct {
	Title        *string
	Description  *string
	DueDate      *time.Time
	ClearDueDate bool
	Priority     *model.Priority
	Notes        *string
	CategoryID   *string
}

// TaskStore owns the in-memory task collection. Mutators are synchronous and
// never fail: operations on an unknown id are silent no-ops.
type TaskStore struct {
	notifier

	mu    sync.RWMutex
	tasks []model.Task
	clock func() time.Time
}

func NewTaskStore() *TaskStore {
	return &TaskStore{clock: time.Now}
}

// List returns a copy of all tasks, newest first.
func (s *TaskStore) List() []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Get returns the task with the given id, or false if absent.
func (s *TaskStore) Get(id string) (model.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}

// ByCategory returns tasks whose CategoryID matches, in collection order.
func (s *TaskStore) ByCategory(categoryID string) []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Task
	for _, t := range s.tasks {
		if t.CategoryID == categoryID {
			out = append(out, t)
		}
	}
	return out
}

// Sorted returns the listing view: filtered by categoryID when non-empty,
// incomplete tasks before completed ones, newest first within each group.
func (s *TaskStore) Sorted(categoryID string) []model.Task {
	s.mu.RLock()
	var out []model.Task
	for _, t := range s.tasks {
		if categoryID == "" || t.CategoryID == categoryID {
			out = append(out, t)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Completed != out[j].Completed {
			return !out[i].Completed
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Add creates a task from the form and prepends it to the collection.
func (s *TaskStore) Add(form TaskForm) model.Task {
	now := s.clock()
	task := model.Task{
		ID:          uuid.NewString(),
		Title:       form.Title,
		Description: form.Description,
		DueDate:     form.DueDate,
		Priority:    form.Priority,
		Notes:       form.Notes,
		CategoryID:  form.CategoryID,
		Completed:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if task.Priority == "" {
		task.Priority = model.PriorityMedium
	}

	s.mu.Lock()
	s.tasks = append([]model.Task{task}, s.tasks...)
	s.mu.Unlock()

	s.publish(Event{Op: OpAdd, ID: task.ID})
	return task
}

// Update merges the patch into the matching task and refreshes UpdatedAt.
func (s *TaskStore) Update(id string, patch TaskPatch) {
	s.mu.Lock()
	i := s.index(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	t := &s.tasks[i]
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.ClearDueDate {
		t.DueDate = nil
	} else if patch.DueDate != nil {
		t.DueDate = patch.DueDate
	}
	if patch.Priority != nil {
		t.Priority = *patch.Priority
	}
	if patch.Notes != nil {
		t.Notes = *patch.Notes
	}
	if patch.CategoryID != nil {
		t.CategoryID = *patch.CategoryID
	}
	t.UpdatedAt = s.clock()
	s.mu.Unlock()

	s.publish(Event{Op: OpUpdate, ID: id})
}

// Toggle flips the completed flag and refreshes UpdatedAt.
func (s *TaskStore) Toggle(id string) {
	s.mu.Lock()
	i := s.index(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	s.tasks[i].UpdatedAt = s.clock()
	s.mu.Unlock()

	s.publish(Event{Op: OpUpdate, ID: id})
}

// Delete removes the matching task.
func (s *TaskStore) Delete(id string) {
	s.mu.Lock()
	i := s.index(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	s.mu.Unlock()

	s.publish(Event{Op: OpDelete, ID: id})
}

// Replace swaps the whole collection, used when hydrating from the backend.
func (s *TaskStore) Replace(tasks []model.Task) {
	s.mu.Lock()
	s.tasks = make([]model.Task, len(tasks))
	copy(s.tasks, tasks)
	s.mu.Unlock()
}

func (s *TaskStore) index(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
