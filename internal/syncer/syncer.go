// Package syncer bridges the local state containers and the remote API.
// Reads stay local: the containers are the authoritative snapshot for the
// UI. Writes flow through here: every container mutation is pushed to the
// API as it happens. Push failures are logged and dropped; there is no
// retry and local state is never rolled back.
package syncer

import (
	"context"

	"github.com/sirupsen/logrus"

	"taskdeck/internal/client"
	"taskdeck/internal/store"
)

// Syncer hydrates the containers from the API and mirrors their mutations
// back to it.
type Syncer struct {
	api        *client.Client
	tasks      *store.TaskStore
	categories *store.CategoryStore
	logger     *logrus.Logger

	cancels []func()
}

func New(api *client.Client, tasks *store.TaskStore, categories *store.CategoryStore, logger *logrus.Logger) *Syncer {
	return &Syncer{api: api, tasks: tasks, categories: categories, logger: logger}
}

// Hydrate replaces both collections with the server's records.
func (s *Syncer) Hydrate(ctx context.Context) error {
	categories, err := s.api.ListCategories(ctx)
	if err != nil {
		return err
	}
	tasks, err := s.api.ListTasks(ctx)
	if err != nil {
		return err
	}
	s.categories.Replace(categories)
	s.tasks.Replace(tasks)
	return nil
}

// Start subscribes to both containers. Mutations made while started are
// pushed to the API on the mutating goroutine.
func (s *Syncer) Start(ctx context.Context) {
	s.cancels = append(s.cancels,
		s.tasks.Subscribe(func(e store.Event) { s.pushTask(ctx, e) }),
		s.categories.Subscribe(func(e store.Event) { s.pushCategory(ctx, e) }),
	)
}

// Stop detaches from the containers.
func (s *Syncer) Stop() {
	for _, cancel := range s.cancels {
		cancel()
	}
	s.cancels = nil
}

func (s *Syncer) pushTask(ctx context.Context, e store.Event) {
	var err error
	switch e.Op {
	case store.OpAdd, store.OpUpdate:
		task, ok := s.tasks.Get(e.ID)
		if !ok {
			return
		}
		if e.Op == store.OpAdd {
			err = s.api.CreateTask(ctx, task)
		} else {
			err = s.api.UpdateTask(ctx, task)
		}
	case store.OpDelete:
		err = s.api.DeleteTask(ctx, e.ID)
	}
	if err != nil {
		s.logger.WithError(err).WithField("task_id", e.ID).Warn("task push failed")
	}
}

func (s *Syncer) pushCategory(ctx context.Context, e store.Event) {
	var err error
	switch e.Op {
	case store.OpAdd, store.OpUpdate:
		category, ok := s.categories.Get(e.ID)
		if !ok {
			return
		}
		if e.Op == store.OpAdd {
			err = s.api.CreateCategory(ctx, category)
		} else {
			err = s.api.UpdateCategory(ctx, category)
		}
	case store.OpDelete:
		err = s.api.DeleteCategory(ctx, e.ID)
	}
	if err != nil {
		s.logger.WithError(err).WithField("category_id", e.ID).Warn("category push failed")
	}
}
