package store

import (
	"testing"
	"time"

	"taskdeck/internal/model"
)

// fakeClock hands out strictly increasing timestamps.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func TestTaskStoreAdd(t *testing.T) {
	s := NewTaskStore()
	task := s.Add(TaskForm{Title: "A", CategoryID: "c1"})

	got, ok := s.Get(task.ID)
	if !ok {
		t.Fatal("task not found after Add")
	}
	if got.Completed {
		t.Error("new task is completed")
	}
	if !got.CreatedAt.Equal(got.UpdatedAt) {
		t.Errorf("createdAt %v != updatedAt %v", got.CreatedAt, got.UpdatedAt)
	}
	if got.Priority != model.PriorityMedium {
		t.Errorf("default priority = %q, want MEDIUM", got.Priority)
	}
}

func TestTaskStorePrependsNewest(t *testing.T) {
	s := NewTaskStore()
	s.clock = newFakeClock().now
	first := s.Add(TaskForm{Title: "first", CategoryID: "c1"})
	second := s.Add(TaskForm{Title: "second", CategoryID: "c1"})

	list := s.List()
	if len(list) != 2 || list[0].ID != second.ID || list[1].ID != first.ID {
		t.Errorf("list order = %v, want newest first", []string{list[0].Title, list[1].Title})
	}
}

func TestTaskStoreSorted(t *testing.T) {
	s := NewTaskStore()
	s.clock = newFakeClock().now

	t1 := s.Add(TaskForm{Title: "T1", CategoryID: "c1"})
	t2 := s.Add(TaskForm{Title: "T2", CategoryID: "c1"}) // created later
	s.Toggle(t2.ID)                                      // completed

	// Incomplete before completed, regardless of creation order.
	got := s.Sorted("")
	if got[0].ID != t1.ID || got[1].ID != t2.ID {
		t.Errorf("sorted order = [%s %s], want [T1 T2]", got[0].Title, got[1].Title)
	}

	// Within the incomplete group, newest first.
	t3 := s.Add(TaskForm{Title: "T3", CategoryID: "c2"})
	got = s.Sorted("")
	if got[0].ID != t3.ID || got[1].ID != t1.ID || got[2].ID != t2.ID {
		t.Errorf("sorted order = [%s %s %s], want [T3 T1 T2]", got[0].Title, got[1].Title, got[2].Title)
	}

	// Category filter applies before ordering.
	got = s.Sorted("c1")
	if len(got) != 2 || got[0].ID != t1.ID || got[1].ID != t2.ID {
		t.Errorf("filtered order wrong: %v", got)
	}
}

func TestTaskStoreToggleTwice(t *testing.T) {
	s := NewTaskStore()
	s.clock = newFakeClock().now
	task := s.Add(TaskForm{Title: "A", CategoryID: "c1"})

	s.Toggle(task.ID)
	mid, _ := s.Get(task.ID)
	if !mid.Completed {
		t.Fatal("first toggle did not complete the task")
	}
	if !mid.UpdatedAt.After(task.UpdatedAt) {
		t.Error("first toggle did not refresh updatedAt")
	}

	s.Toggle(task.ID)
	final, _ := s.Get(task.ID)
	if final.Completed {
		t.Error("second toggle did not restore the flag")
	}
	if !final.UpdatedAt.After(mid.UpdatedAt) {
		t.Error("second toggle did not refresh updatedAt")
	}
}

func TestTaskStoreUpdate(t *testing.T) {
	s := NewTaskStore()
	s.clock = newFakeClock().now
	task := s.Add(TaskForm{Title: "A", Description: "old", CategoryID: "c1"})

	title := "B"
	high := model.PriorityHigh
	s.Update(task.ID, TaskPatch{Title: &title, Priority: &high})

	got, _ := s.Get(task.ID)
	if got.Title != "B" || got.Priority != model.PriorityHigh {
		t.Errorf("patch not applied: %+v", got)
	}
	if got.Description != "old" {
		t.Error("untouched field changed")
	}
	if !got.UpdatedAt.After(task.UpdatedAt) {
		t.Error("update did not refresh updatedAt")
	}
	if !got.CreatedAt.Equal(task.CreatedAt) {
		t.Error("update changed createdAt")
	}
}

func TestTaskStoreUnknownIDNoOps(t *testing.T) {
	s := NewTaskStore()
	s.Add(TaskForm{Title: "A", CategoryID: "c1"})

	title := "B"
	s.Update("missing", TaskPatch{Title: &title})
	s.Toggle("missing")
	s.Delete("missing")

	if len(s.List()) != 1 {
		t.Error("no-op mutators changed the collection")
	}
}

func TestTaskStoreDelete(t *testing.T) {
	s := NewTaskStore()
	task := s.Add(TaskForm{Title: "A", CategoryID: "c1"})
	s.Delete(task.ID)

	if _, ok := s.Get(task.ID); ok {
		t.Error("task still present after Delete")
	}
}

func TestTaskStoreByCategory(t *testing.T) {
	s := NewTaskStore()
	s.Add(TaskForm{Title: "A", CategoryID: "c1"})
	s.Add(TaskForm{Title: "B", CategoryID: "c2"})
	s.Add(TaskForm{Title: "C", CategoryID: "c1"})

	got := s.ByCategory("c1")
	if len(got) != 2 {
		t.Fatalf("ByCategory returned %d tasks, want 2", len(got))
	}
	for _, task := range got {
		if task.CategoryID != "c1" {
			t.Errorf("task %s has category %s", task.Title, task.CategoryID)
		}
	}
}

func TestTaskStoreEvents(t *testing.T) {
	s := NewTaskStore()

	var events []Event
	cancel := s.Subscribe(func(e Event) { events = append(events, e) })

	task := s.Add(TaskForm{Title: "A", CategoryID: "c1"})
	s.Toggle(task.ID)
	s.Delete(task.ID)

	want := []Op{OpAdd, OpUpdate, OpDelete}
	if len(events) != len(want) {
		t.Fatalf("got %d events, want %d", len(events), len(want))
	}
	for i, e := range events {
		if e.Op != want[i] || e.ID != task.ID {
			t.Errorf("event %d = %+v", i, e)
		}
	}

	cancel()
	s.Add(TaskForm{Title: "B", CategoryID: "c1"})
	if len(events) != len(want) {
		t.Error("event delivered after cancel")
	}
}

func TestTaskStoreNoEventForNoOp(t *testing.T) {
	s := NewTaskStore()
	fired := false
	s.Subscribe(func(Event) { fired = true })

	s.Toggle("missing")
	s.Delete("missing")
	if fired {
		t.Error("no-op mutation published an event")
	}
}
