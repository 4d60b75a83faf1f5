package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"taskdeck/internal/model"
)

// CategoryForm carries the fields for creating a category.
type CategoryForm struct {
	Name  string
	Color string
}

// CategoryPatch carries a partial update; nil fields are left untouched.
type CategoryPatch struct {
	Name  *string
	Color *string
}

// CategoryStore owns the in-memory category collection, kept in insertion
// order. Mutators never fail; unknown ids are silent no-ops. Deleting a
// category does not touch tasks that reference it.
type CategoryStore struct {
	notifier

	mu         sync.RWMutex
	categories []model.Category
	clock      func() time.Time
}

func NewCategoryStore() *CategoryStore {
	return &CategoryStore{clock: time.Now}
}

// List returns a copy of all categories in insertion order.
func (s *CategoryStore) List() []model.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// Get returns the category with the given id, or false if absent.
func (s *CategoryStore) Get(id string) (model.Category, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.categories {
		if c.ID == id {
			return c, true
		}
	}
	return model.Category{}, false
}

// Add creates a category and appends it to the collection.
func (s *CategoryStore) Add(form CategoryForm) model.Category {
	category := model.Category{
		ID:        uuid.NewString(),
		Name:      form.Name,
		Color:     form.Color,
		CreatedAt: s.clock(),
	}

	s.mu.Lock()
	s.categories = append(s.categories, category)
	s.mu.Unlock()

	s.publish(Event{Op: OpAdd, ID: category.ID})
	return category
}

// Update merges the patch into the matching category.
func (s *CategoryStore) Update(id string, patch CategoryPatch) {
	s.mu.Lock()
	i := s.index(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	if patch.Name != nil {
		s.categories[i].Name = *patch.Name
	}
	if patch.Color != nil {
		s.categories[i].Color = *patch.Color
	}
	s.mu.Unlock()

	s.publish(Event{Op: OpUpdate, ID: id})
}

// Delete removes the matching category.
func (s *CategoryStore) Delete(id string) {
	s.mu.Lock()
	i := s.index(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.categories = append(s.categories[:i], s.categories[i+1:]...)
	s.mu.Unlock()

	s.publish(Event{Op: OpDelete, ID: id})
}

// Replace swaps the whole collection, used when hydrating from the backend.
func (s *CategoryStore) Replace(categories []model.Category) {
	s.mu.Lock()
	s.categories = make([]model.Category, len(categories))
	copy(s.categories, categories)
	s.mu.Unlock()
}

func (s *CategoryStore) index(id string) int {
	for i, c := range s.categories {
		if c.ID == id {
			return i
		}
	}
	return -1
}
