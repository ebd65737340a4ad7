package models

import "time"

// Status is the lifecycle state shared by tasks and subtasks
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// Statuses lists every status in cycle order
var Statuses = []Status{StatusPending, StatusInProgress, StatusCompleted}

// Next returns the status that follows s in the advance cycle.
// completed wraps back to pending; unknown values restart at pending.
func (s Status) Next() Status {
	for i, st := range Statuses {
		if st == s {
			return Statuses[(i+1)%len(Statuses)]
		}
	}
	return StatusPending
}

// Valid reports whether s is one of Statuses
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Label returns the display text for a status
func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusInProgress:
		return "In progress"
	case StatusCompleted:
		return "Completed"
	}
	return string(s)
}

// ParseStatus accepts the wire form of a status ("in-progress") as well as
// the underscore spelling some configs use ("in_progress")
func ParseStatus(v string) (Status, bool) {
	switch v {
	case "pending":
		return StatusPending, true
	case "in-progress", "in_progress":
		return StatusInProgress, true
	case "completed":
		return StatusCompleted, true
	}
	return "", false
}

// Tag represents a catalog entry that can be applied to tasks by name
type Tag struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

// Subtask is a nested unit of work owned by a task or another subtask
type Subtask struct {
	ID       string    `yaml:"id"`
	Title    string    `yaml:"title"`
	Status   Status    `yaml:"status"`
	Subtasks []Subtask `yaml:"subtasks,omitempty"`
}

// Completed is the two-state projection of the subtask status
func (s Subtask) Completed() bool {
	return s.Status == StatusCompleted
}

// Toggled flips the two-state projection: completed becomes pending,
// anything else becomes completed
func (s Subtask) Toggled() Subtask {
	if s.Completed() {
		s.Status = StatusPending
	} else {
		s.Status = StatusCompleted
	}
	return s
}

// Task represents a top-level work item
type Task struct {
	ID        string    `yaml:"id"`
	Title     string    `yaml:"title"`
	Status    Status    `yaml:"status"`
	Tags      []string  `yaml:"tags,omitempty"`
	Subtasks  []Subtask `yaml:"subtasks,omitempty"`
	CreatedAt time.Time `yaml:"-"`
}

// HasTag reports whether the task carries the named tag
func (t Task) HasTag(name string) bool {
	for _, tag := range t.Tags {
		if tag == name {
			return true
		}
	}
	return false
}
