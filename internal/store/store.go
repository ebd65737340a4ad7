// Package store holds the in-memory task collection.
//
// Every mutation replaces the whole collection with a new snapshot and
// leaves earlier snapshots intact, so a snapshot returned by Tasks can be
// kept and rendered while later mutations happen. Callers must treat
// snapshots as read-only.
//
// A Store is driven from a single event loop and is not safe for
// concurrent use.
package store

import (
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/tgienger/tasktree/internal/models"
	"github.com/tgienger/tasktree/internal/tree"
)

// Store owns the authoritative task snapshot
type Store struct {
	tasks   []models.Task
	catalog []models.Tag
	filter  Filter

	newID func() string
	now   func() time.Time
	log   zerolog.Logger

	subscribers map[int]func([]models.Task)
	nextSub     int
	closed      bool
}

// Option configures a Store
type Option func(*Store)

// WithTasks seeds the initial snapshot. The slice is copied.
func WithTasks(tasks []models.Task) Option {
	return func(s *Store) {
		s.tasks = append([]models.Task(nil), tasks...)
	}
}

// WithCatalog sets the read-only tag catalog
func WithCatalog(tags []models.Tag) Option {
	return func(s *Store) {
		s.catalog = append([]models.Tag(nil), tags...)
	}
}

// WithLogger sets the logger for applied and ignored mutations
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithIDFunc replaces the ulid generator used for new tasks and subtasks
func WithIDFunc(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// WithClock replaces time.Now for task creation times
func WithClock(fn func() time.Time) Option {
	return func(s *Store) { s.now = fn }
}

// New creates a store. Call Close when the owning program exits.
func New(opts ...Option) *Store {
	s := &Store{
		filter:      Filter{Tag: All, Status: All},
		newID:       func() string { return ulid.Make().String() },
		now:         time.Now,
		log:         zerolog.Nop(),
		subscribers: make(map[int]func([]models.Task)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close detaches all subscribers. Mutations and subscriptions after Close
// are ignored.
func (s *Store) Close() {
	s.closed = true
	s.subscribers = make(map[int]func([]models.Task))
}

// Subscribe registers fn to receive every new snapshot. The returned
// function cancels the subscription.
func (s *Store) Subscribe(fn func([]models.Task)) func() {
	if s.closed {
		return func() {}
	}
	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn
	return func() { delete(s.subscribers, id) }
}

// Tasks returns the current snapshot
func (s *Store) Tasks() []models.Task {
	return s.tasks
}

// Task returns the task with the given id
func (s *Store) Task(id string) (models.Task, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.tasks[i], true
	}
	return models.Task{}, false
}

// Catalog returns the tag catalog supplied at construction
func (s *Store) Catalog() []models.Tag {
	return s.catalog
}

// AddTask appends a pending task. Blank titles are ignored.
func (s *Store) AddTask(title string) []models.Task {
	title = strings.TrimSpace(title)
	if title == "" {
		return s.ignore("add task", "", "empty title")
	}
	if s.closed {
		return s.ignore("add task", "", "store closed")
	}

	task := models.Task{
		ID:        s.newID(),
		Title:     title,
		Status:    models.StatusPending,
		CreatedAt: s.now(),
	}

	next := make([]models.Task, len(s.tasks), len(s.tasks)+1)
	copy(next, s.tasks)
	next = append(next, task)

	s.log.Debug().Str("task", task.ID).Msg("task added")
	return s.publish(next)
}

// SetStatus sets the status of the task itself when path is empty, or of
// the nested subtask addressed by path
func (s *Store) SetStatus(taskID string, path tree.Path, status models.Status) []models.Task {
	if !status.Valid() {
		return s.ignore("set status", taskID, "unknown status "+string(status))
	}
	return s.updateTask("set status", taskID, func(t models.Task) (models.Task, bool) {
		if len(path) == 0 {
			t.Status = status
			return t, true
		}
		if _, ok := tree.Get(t.Subtasks, path); !ok {
			return t, false
		}
		t.Subtasks = tree.Update(t.Subtasks, path, func(n models.Subtask) models.Subtask {
			n.Status = status
			return n
		})
		return t, true
	})
}

// AdvanceStatus moves the addressed node one step along
// pending -> in-progress -> completed -> pending
func (s *Store) AdvanceStatus(taskID string, path tree.Path) []models.Task {
	return s.updateTask("advance status", taskID, func(t models.Task) (models.Task, bool) {
		if len(path) == 0 {
			t.Status = t.Status.Next()
			return t, true
		}
		if _, ok := tree.Get(t.Subtasks, path); !ok {
			return t, false
		}
		t.Subtasks = tree.Update(t.Subtasks, path, func(n models.Subtask) models.Subtask {
			n.Status = n.Status.Next()
			return n
		})
		return t, true
	})
}

// ToggleSubtask flips the done/not-done state of a direct subtask
func (s *Store) ToggleSubtask(taskID, subtaskID string) []models.Task {
	return s.updateTask("toggle subtask", taskID, func(t models.Task) (models.Task, bool) {
		i := tree.IndexOf(t.Subtasks, subtaskID)
		if i < 0 {
			return t, false
		}
		t.Subtasks = tree.Update(t.Subtasks, tree.Path{i}, models.Subtask.Toggled)
		return t, true
	})
}

// AddSubtask appends a pending subtask under the node addressed by path.
// An empty path appends directly under the task. Blank titles are ignored.
func (s *Store) AddSubtask(taskID string, path tree.Path, title string) []models.Task {
	title = strings.TrimSpace(title)
	if title == "" {
		return s.ignore("add subtask", taskID, "empty title")
	}

	return s.updateTask("add subtask", taskID, func(t models.Task) (models.Task, bool) {
		if len(path) > 0 {
			if _, ok := tree.Get(t.Subtasks, path); !ok {
				return t, false
			}
		}
		node := models.Subtask{
			ID:     taskID + "-" + s.newID(),
			Title:  title,
			Status: models.StatusPending,
		}
		t.Subtasks = tree.Insert(t.Subtasks, path, node)
		return t, true
	})
}

// DeleteTask removes the task with the given id
func (s *Store) DeleteTask(taskID string) []models.Task {
	i := s.indexOf(taskID)
	if i < 0 {
		return s.ignore("delete task", taskID, "unknown task")
	}
	if s.closed {
		return s.ignore("delete task", taskID, "store closed")
	}

	next := make([]models.Task, 0, len(s.tasks)-1)
	next = append(next, s.tasks[:i]...)
	next = append(next, s.tasks[i+1:]...)

	s.log.Debug().Str("task", taskID).Msg("task deleted")
	return s.publish(next)
}

// DeleteSubtask removes a direct subtask by id
func (s *Store) DeleteSubtask(taskID, subtaskID string) []models.Task {
	return s.updateTask("delete subtask", taskID, func(t models.Task) (models.Task, bool) {
		i := tree.IndexOf(t.Subtasks, subtaskID)
		if i < 0 {
			return t, false
		}
		t.Subtasks = tree.Remove(t.Subtasks, tree.Path{i})
		return t, true
	})
}

// DeleteNode removes the subtask addressed by path, subtree included
func (s *Store) DeleteNode(taskID string, path tree.Path) []models.Task {
	return s.updateTask("delete node", taskID, func(t models.Task) (models.Task, bool) {
		if _, ok := tree.Get(t.Subtasks, path); !ok {
			return t, false
		}
		t.Subtasks = tree.Remove(t.Subtasks, path)
		return t, true
	})
}

// ToggleTag adds the tag when absent and removes it when present
func (s *Store) ToggleTag(taskID, tagName string) []models.Task {
	if strings.TrimSpace(tagName) == "" {
		return s.ignore("toggle tag", taskID, "empty tag")
	}
	return s.updateTask("toggle tag", taskID, func(t models.Task) (models.Task, bool) {
		tags := make([]string, 0, len(t.Tags)+1)
		found := false
		for _, tag := range t.Tags {
			if tag == tagName {
				found = true
				continue
			}
			tags = append(tags, tag)
		}
		if !found {
			tags = append(tags, tagName)
		}
		t.Tags = tags
		return t, true
	})
}

// updateTask rebuilds the collection with fn applied to the matching task.
// fn reports false when the target inside the task does not exist, which
// leaves the snapshot in place.
func (s *Store) updateTask(op, taskID string, fn func(models.Task) (models.Task, bool)) []models.Task {
	i := s.indexOf(taskID)
	if i < 0 {
		return s.ignore(op, taskID, "unknown task")
	}
	if s.closed {
		return s.ignore(op, taskID, "store closed")
	}

	task, changed := fn(s.tasks[i])
	if !changed {
		return s.ignore(op, taskID, "unknown target")
	}

	next := make([]models.Task, len(s.tasks))
	copy(next, s.tasks)
	next[i] = task

	s.log.Debug().Str("task", taskID).Str("op", op).Msg("task updated")
	return s.publish(next)
}

// ignore logs a rejected mutation and returns the unchanged snapshot
func (s *Store) ignore(op, taskID, reason string) []models.Task {
	s.log.Debug().Str("op", op).Str("task", taskID).Str("reason", reason).Msg("mutation ignored")
	return s.tasks
}

func (s *Store) publish(next []models.Task) []models.Task {
	s.tasks = next
	for _, fn := range s.subscribers {
		fn(next)
	}
	return next
}

func (s *Store) indexOf(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
