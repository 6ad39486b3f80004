package task

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Store is the in-memory image of the task file. The on-disk format is a
// JSON array of tasks, 2-space indented, with a trailing newline.
type Store struct {
	Tasks []Task
}

// Load reads and parses the task file at path. A missing file yields an
// empty store; the file itself is only created on the first Save.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Store{Tasks: []Task{}}, nil
		}
		return nil, fmt.Errorf("read task file: %w", err)
	}

	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("parse task file: %w", err)
	}
	if tasks == nil {
		tasks = []Task{}
	}

	return &Store{Tasks: tasks}, nil
}

// Save writes the store to path as a pretty-printed JSON array.
func (s *Store) Save(path string) error {
	tasks := s.Tasks
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal task file: %w", err)
	}

	// Add trailing newline
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write task file: %w", err)
	}

	return nil
}

// Get returns a task by id, or nil if not found.
func (s *Store) Get(id int) *Task {
	for i := range s.Tasks {
		if s.Tasks[i].ID == id {
			return &s.Tasks[i]
		}
	}
	return nil
}

// NextID returns the id the next saved task will receive: one past the
// highest existing id, or 1 for an empty store.
func (s *Store) NextID() int {
	max := 0
	for i := range s.Tasks {
		if s.Tasks[i].ID > max {
			max = s.Tasks[i].ID
		}
	}
	return max + 1
}

// hasTitle reports whether any task other than excludeID carries the
// same normalized title.
func (s *Store) hasTitle(title string, excludeID int) bool {
	key := titleKey(title)
	for i := range s.Tasks {
		if s.Tasks[i].ID == excludeID {
			continue
		}
		if titleKey(s.Tasks[i].Title) == key {
			return true
		}
	}
	return false
}

// Add validates t and appends it to the store. A zero id is replaced by
// NextID. Returns a pointer to the stored task.
func (s *Store) Add(t Task) (*Task, error) {
	t.Title = NormalizeTitle(t.Title)
	if err := t.Check(); err != nil {
		return nil, err
	}
	if s.hasTitle(t.Title, -1) {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateTitle, t.Title)
	}
	if t.ID == 0 {
		t.ID = s.NextID()
	} else if s.Get(t.ID) != nil {
		return nil, fmt.Errorf("%w: id %d already exists", ErrInvalidID, t.ID)
	}
	s.Tasks = append(s.Tasks, t)
	return &s.Tasks[len(s.Tasks)-1], nil
}

// Update applies fn to the task with the given id and re-validates it.
// Returns ErrNotFound if the id does not resolve, and rolls the task
// back unchanged when the mutation fails validation.
func (s *Store) Update(id int, fn func(*Task)) error {
	for i := range s.Tasks {
		if s.Tasks[i].ID != id {
			continue
		}
		prev := s.Tasks[i]
		fn(&s.Tasks[i])
		s.Tasks[i].ID = id
		s.Tasks[i].Title = NormalizeTitle(s.Tasks[i].Title)
		if err := s.Tasks[i].Check(); err != nil {
			s.Tasks[i] = prev
			return err
		}
		if s.hasTitle(s.Tasks[i].Title, id) {
			title := s.Tasks[i].Title
			s.Tasks[i] = prev
			return fmt.Errorf("%w: %q", ErrDuplicateTitle, title)
		}
		return nil
	}
	return fmt.Errorf("%w: id %d", ErrNotFound, id)
}

// Delete removes the task with the given id. Returns ErrNotFound if the
// id does not resolve; the store is left untouched in that case.
func (s *Store) Delete(id int) error {
	for i := range s.Tasks {
		if s.Tasks[i].ID == id {
			s.Tasks = append(s.Tasks[:i], s.Tasks[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: id %d", ErrNotFound, id)
}

// DeleteAll truncates the store to an empty collection.
func (s *Store) DeleteAll() {
	s.Tasks = []Task{}
}

// Replace swaps the whole collection for tasks after validating the set.
// Incoming zero ids are assigned sequentially.
func (s *Store) Replace(tasks []Task) error {
	next := &Store{Tasks: []Task{}}
	for _, t := range tasks {
		if _, err := next.Add(t); err != nil {
			return err
		}
	}
	s.Tasks = next.Tasks
	return nil
}

// Merge appends tasks to the store with fresh ids, skipping entries
// whose title already exists. Returns the counts of added and skipped
// tasks; invalid entries abort the merge with an error.
func (s *Store) Merge(tasks []Task) (added, skipped int, err error) {
	for _, t := range tasks {
		if s.hasTitle(t.Title, -1) {
			skipped++
			continue
		}
		t.ID = 0
		if _, err := s.Add(t); err != nil {
			return added, skipped, err
		}
		added++
	}
	return added, skipped, nil
}

// Filter returns the tasks matching the predicate, in store order.
func (s *Store) Filter(pred func(*Task) bool) []Task {
	var out []Task
	for i := range s.Tasks {
		if pred(&s.Tasks[i]) {
			out = append(out, s.Tasks[i])
		}
	}
	return out
}

// SortByID sorts tasks in place by ascending id.
func SortByID(tasks []Task) {
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].ID < tasks[j].ID
	})
}

// ParseTasks decodes a JSON array of tasks from raw bytes, as read from
// an import file or a download response.
func ParseTasks(data []byte) ([]Task, error) {
	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("parse task list: %w", err)
	}
	return tasks, nil
}
