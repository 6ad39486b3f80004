package task

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "tasks.json")

	store, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(store.Tasks) != 0 {
		t.Errorf("Tasks count: got %d, want 0", len(store.Tasks))
	}
	// Load must not create the file
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected file to stay absent, stat err: %v", err)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "tasks.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed JSON, got nil")
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "tasks.json")

	original := &Store{}
	titles := []string{"Buy groceries", "Write report", "Call dentist"}
	for _, title := range titles {
		if _, err := original.Add(Task{Title: title}); err != nil {
			t.Fatalf("Add(%q) failed: %v", title, err)
		}
	}
	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded.Tasks) != len(original.Tasks) {
		t.Fatalf("Tasks count: got %d, want %d", len(loaded.Tasks), len(original.Tasks))
	}
	for i, want := range original.Tasks {
		got := loaded.Tasks[i]
		if got != want {
			t.Errorf("task %d: got %+v, want %+v", i, got, want)
		}
	}

	// The file format is a pretty-printed array with a trailing newline
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	if !strings.HasPrefix(text, "[\n") {
		t.Errorf("expected file to start with a JSON array, got %q", text[:1])
	}
	if !strings.HasSuffix(text, "]\n") {
		t.Errorf("expected trailing newline after array")
	}
}

func TestSaveEmptyStoreWritesArray(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "tasks.json")

	store := &Store{}
	if err := store.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(string(data)); got != "[]" {
		t.Errorf("empty store file: got %q, want %q", got, "[]")
	}
}

func TestAddAssignsSequentialIDs(t *testing.T) {
	store := &Store{}

	first, err := store.Add(Task{Title: "First task"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if first.ID != 1 {
		t.Errorf("first id: got %d, want 1", first.ID)
	}

	second, err := store.Add(Task{Title: "Second task"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if second.ID != 2 {
		t.Errorf("second id: got %d, want 2", second.ID)
	}

	// The next id is one past the highest id remaining in the store
	if err := store.Delete(2); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	third, err := store.Add(Task{Title: "Third task"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if third.ID != 2 {
		t.Errorf("id after delete: got %d, want 2", third.ID)
	}
}

func TestAddRejectsShortTitle(t *testing.T) {
	store := &Store{}

	tests := []string{"", "a", "ab", "  ab  ", " \t "}
	for _, title := range tests {
		if _, err := store.Add(Task{Title: title}); !errors.Is(err, ErrInvalidTitle) {
			t.Errorf("Add(%q): got %v, want ErrInvalidTitle", title, err)
		}
	}
	if len(store.Tasks) != 0 {
		t.Errorf("store should stay empty, got %d tasks", len(store.Tasks))
	}
}

func TestAddRejectsDuplicateTitle(t *testing.T) {
	store := &Store{}
	if _, err := store.Add(Task{Title: "Water the plants"}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	// Duplicates are detected case-insensitively and after trimming
	for _, title := range []string{"Water the plants", "water the plants", "  Water the plants  "} {
		if _, err := store.Add(Task{Title: title}); !errors.Is(err, ErrDuplicateTitle) {
			t.Errorf("Add(%q): got %v, want ErrDuplicateTitle", title, err)
		}
	}
}

func TestUpdate(t *testing.T) {
	store := &Store{}
	added, err := store.Add(Task{Title: "Draft email"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if err := store.Update(added.ID, func(t *Task) { t.Completed = true }); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if !store.Get(added.ID).Completed {
		t.Error("task should be completed")
	}

	if err := store.Update(999, func(t *Task) {}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update(999): got %v, want ErrNotFound", err)
	}
}

func TestUpdateRollsBackInvalidMutation(t *testing.T) {
	store := &Store{}
	a, _ := store.Add(Task{Title: "Task one"})
	store.Add(Task{Title: "Task two"})

	if err := store.Update(a.ID, func(t *Task) { t.Title = "x" }); !errors.Is(err, ErrInvalidTitle) {
		t.Fatalf("got %v, want ErrInvalidTitle", err)
	}
	if got := store.Get(a.ID).Title; got != "Task one" {
		t.Errorf("title after rollback: got %q, want %q", got, "Task one")
	}

	if err := store.Update(a.ID, func(t *Task) { t.Title = "Task two" }); !errors.Is(err, ErrDuplicateTitle) {
		t.Fatalf("got %v, want ErrDuplicateTitle", err)
	}
	if got := store.Get(a.ID).Title; got != "Task one" {
		t.Errorf("title after rollback: got %q, want %q", got, "Task one")
	}
}

func TestDeleteNonexistentLeavesFileUntouched(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "tasks.json")

	store := &Store{}
	store.Add(Task{Title: "Keep me around"})
	if err := store.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if err := store.Delete(42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Delete(42): got %v, want ErrNotFound", err)
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Error("file content changed after failed delete")
	}
}

func TestDeleteAll(t *testing.T) {
	store := &Store{}
	store.Add(Task{Title: "Task one"})
	store.Add(Task{Title: "Task two"})

	store.DeleteAll()
	if len(store.Tasks) != 0 {
		t.Errorf("Tasks count: got %d, want 0", len(store.Tasks))
	}
}

func TestReplace(t *testing.T) {
	store := &Store{}
	store.Add(Task{Title: "Old task"})

	incoming := []Task{
		{Title: "New task one", Completed: true},
		{Title: "New task two"},
	}
	if err := store.Replace(incoming); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	if len(store.Tasks) != 2 {
		t.Fatalf("Tasks count: got %d, want 2", len(store.Tasks))
	}
	if store.Tasks[0].ID != 1 || store.Tasks[1].ID != 2 {
		t.Errorf("ids: got %d,%d, want 1,2", store.Tasks[0].ID, store.Tasks[1].ID)
	}

	// A bad incoming set leaves the store unchanged
	bad := []Task{{Title: "ok title"}, {Title: "x"}}
	if err := store.Replace(bad); err == nil {
		t.Fatal("expected error for invalid incoming set")
	}
	if len(store.Tasks) != 2 {
		t.Errorf("Tasks count after failed replace: got %d, want 2", len(store.Tasks))
	}
}

func TestMerge(t *testing.T) {
	store := &Store{}
	store.Add(Task{Title: "Existing task"})

	added, skipped, err := store.Merge([]Task{
		{ID: 99, Title: "Existing task"}, // duplicate, skipped
		{ID: 42, Title: "Fresh task"},    // added with a fresh id
	})
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if added != 1 || skipped != 1 {
		t.Errorf("added/skipped: got %d/%d, want 1/1", added, skipped)
	}
	fresh := store.Get(2)
	if fresh == nil || fresh.Title != "Fresh task" {
		t.Errorf("merged task should have id 2, got %+v", fresh)
	}
}

func TestParseTasks(t *testing.T) {
	tasks, err := ParseTasks([]byte(`[{"id":1,"title":"From file","completed":false}]`))
	if err != nil {
		t.Fatalf("ParseTasks failed: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Title != "From file" {
		t.Errorf("unexpected tasks: %+v", tasks)
	}

	if _, err := ParseTasks([]byte(`{"not":"an array"}`)); err == nil {
		t.Fatal("expected error for non-array input")
	}
}
