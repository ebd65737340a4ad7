package store

import (
	"github.com/tgienger/tasktree/internal/models"
	"github.com/tgienger/tasktree/internal/tree"
)

// All is the filter value that disables a filter condition
const All = "all"

// Filter selects tasks by tag and status. Either field set to All (or left
// empty) skips that condition.
type Filter struct {
	Tag    string
	Status string
}

// Match reports whether t passes both conditions
func (f Filter) Match(t models.Task) bool {
	if f.Tag != "" && f.Tag != All && !t.HasTag(f.Tag) {
		return false
	}
	if f.Status != "" && f.Status != All && string(t.Status) != f.Status {
		return false
	}
	return true
}

// Apply returns the tasks that match f, in snapshot order
func (f Filter) Apply(tasks []models.Task) []models.Task {
	if f.isAll() {
		return tasks
	}
	var out []models.Task
	for _, t := range tasks {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

func (f Filter) isAll() bool {
	return (f.Tag == "" || f.Tag == All) && (f.Status == "" || f.Status == All)
}

// SetFilter replaces the active filter. Empty values mean All.
func (s *Store) SetFilter(tag, status string) {
	if tag == "" {
		tag = All
	}
	if status == "" {
		status = All
	}
	s.filter = Filter{Tag: tag, Status: status}
	s.log.Debug().Str("tag", tag).Str("status", status).Msg("filter changed")
}

// Filter returns the active filter
func (s *Store) Filter() Filter {
	return s.filter
}

// Visible returns the tasks matching the active filter
func (s *Store) Visible() []models.Task {
	return s.filter.Apply(s.tasks)
}

// Stats are aggregate counts over a task collection
type Stats struct {
	Total    int
	ByStatus map[models.Status]int
}

// Summarize counts tasks in total and per status
func Summarize(tasks []models.Task) Stats {
	st := Stats{Total: len(tasks), ByStatus: make(map[models.Status]int, len(models.Statuses))}
	for _, s := range models.Statuses {
		st.ByStatus[s] = 0
	}
	for _, t := range tasks {
		st.ByStatus[t.Status]++
	}
	return st
}

// Progress counts completed nodes and all nodes in the task's subtask tree
func Progress(t models.Task) (done, total int) {
	tree.Walk(t.Subtasks, func(_ tree.Path, n models.Subtask) bool {
		total++
		if n.Completed() {
			done++
		}
		return true
	})
	return done, total
}
