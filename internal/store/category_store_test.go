package store

import "testing"

func TestCategoryStoreAddAndOrder(t *testing.T) {
	s := NewCategoryStore()
	work := s.Add(CategoryForm{Name: "Work", Color: "#ff0000"})
	home := s.Add(CategoryForm{Name: "Home", Color: "#00ff00"})

	list := s.List()
	if len(list) != 2 || list[0].ID != work.ID || list[1].ID != home.ID {
		t.Errorf("list not in insertion order: %v", list)
	}
	if work.CreatedAt.IsZero() {
		t.Error("createdAt not set")
	}
}

func TestCategoryStoreUpdate(t *testing.T) {
	s := NewCategoryStore()
	category := s.Add(CategoryForm{Name: "Work", Color: "#ff0000"})

	name := "Office"
	s.Update(category.ID, CategoryPatch{Name: &name})

	got, _ := s.Get(category.ID)
	if got.Name != "Office" {
		t.Errorf("name = %q", got.Name)
	}
	if got.Color != "#ff0000" {
		t.Error("untouched color changed")
	}

	// Unknown id is a silent no-op.
	s.Update("missing", CategoryPatch{Name: &name})
	if len(s.List()) != 1 {
		t.Error("no-op update changed the collection")
	}
}

func TestCategoryDeleteOrphansTasks(t *testing.T) {
	categories := NewCategoryStore()
	tasks := NewTaskStore()

	category := categories.Add(CategoryForm{Name: "Work", Color: "#ff0000"})
	task := tasks.Add(TaskForm{Title: "A", CategoryID: category.ID})

	categories.Delete(category.ID)

	if _, ok := categories.Get(category.ID); ok {
		t.Error("category still present after Delete")
	}
	got, ok := tasks.Get(task.ID)
	if !ok {
		t.Fatal("task vanished with its category")
	}
	if got.CategoryID != category.ID {
		t.Errorf("task categoryId = %q, want the orphaned reference kept", got.CategoryID)
	}
}

func TestCategoryStoreEvents(t *testing.T) {
	s := NewCategoryStore()

	var ops []Op
	s.Subscribe(func(e Event) { ops = append(ops, e.Op) })

	category := s.Add(CategoryForm{Name: "Work", Color: "#f00"})
	color := "#0f0"
	s.Update(category.ID, CategoryPatch{Color: &color})
	s.Delete(category.ID)

	want := []Op{OpAdd, OpUpdate, OpDelete}
	if len(ops) != len(want) {
		t.Fatalf("got %d events, want %d", len(ops), len(want))
	}
	for i := range want {
		if ops[i] != want[i] {
			t.Errorf("event %d op = %v, want %v", i, ops[i], want[i])
		}
	}
}
