package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusNextCycles(t *testing.T) {
	assert.Equal(t, StatusInProgress, StatusPending.Next())
	assert.Equal(t, StatusCompleted, StatusInProgress.Next())
	assert.Equal(t, StatusPending, StatusCompleted.Next())

	for _, s := range Statuses {
		assert.Equal(t, s, s.Next().Next().Next(), "three advances from %s", s)
	}
}

func TestStatusNextUnknown(t *testing.T) {
	assert.Equal(t, StatusPending, Status("archived").Next())
	assert.Equal(t, StatusPending, Status("").Next())
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in   string
		want Status
		ok   bool
	}{
		{"pending", StatusPending, true},
		{"in-progress", StatusInProgress, true},
		{"in_progress", StatusInProgress, true},
		{"completed", StatusCompleted, true},
		{"done", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseStatus(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestSubtaskToggled(t *testing.T) {
	s := Subtask{ID: "1-1", Title: "a", Status: StatusPending}

	done := s.Toggled()
	assert.True(t, done.Completed())
	assert.False(t, s.Completed(), "receiver must not change")

	assert.Equal(t, StatusPending, done.Toggled().Status)

	// in-progress is not done, so toggling completes it
	assert.True(t, Subtask{Status: StatusInProgress}.Toggled().Completed())
}

func TestTaskHasTag(t *testing.T) {
	task := Task{Tags: []string{"design", "urgent"}}
	assert.True(t, task.HasTag("urgent"))
	assert.False(t, task.HasTag("development"))
}
