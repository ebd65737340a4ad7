package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tgienger/tasktree/internal/models"
)

func filterFixture() []models.Task {
	return []models.Task{
		{ID: "1", Title: "a", Status: models.StatusPending, Tags: []string{"design"}},
		{ID: "2", Title: "b", Status: models.StatusCompleted, Tags: []string{"design", "urgent"}},
		{ID: "3", Title: "c", Status: models.StatusInProgress},
		{ID: "4", Title: "d", Status: models.StatusPending, Tags: []string{"urgent"}},
	}
}

func ids(tasks []models.Task) []string {
	var out []string
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestFilterAllReturnsEverything(t *testing.T) {
	tasks := filterFixture()
	assert.Equal(t, tasks, Filter{Tag: All, Status: All}.Apply(tasks))
	assert.Equal(t, tasks, Filter{}.Apply(tasks))
}

func TestFilterByTag(t *testing.T) {
	got := Filter{Tag: "design", Status: All}.Apply(filterFixture())
	assert.Equal(t, []string{"1", "2"}, ids(got))
}

func TestFilterByStatus(t *testing.T) {
	got := Filter{Tag: All, Status: string(models.StatusPending)}.Apply(filterFixture())
	assert.Equal(t, []string{"1", "4"}, ids(got))
}

func TestFilterByBoth(t *testing.T) {
	got := Filter{Tag: "urgent", Status: string(models.StatusPending)}.Apply(filterFixture())
	assert.Equal(t, []string{"4"}, ids(got))

	got = Filter{Tag: "development", Status: All}.Apply(filterFixture())
	assert.Empty(t, got)
}

func TestStoreVisible(t *testing.T) {
	s := New(WithTasks(filterFixture()))
	assert.Equal(t, Filter{Tag: All, Status: All}, s.Filter())
	assert.Len(t, s.Visible(), 4)

	s.SetFilter("urgent", "")
	assert.Equal(t, Filter{Tag: "urgent", Status: All}, s.Filter())
	assert.Equal(t, []string{"2", "4"}, ids(s.Visible()))

	// the filter is re-evaluated against later snapshots
	s.ToggleTag("3", "urgent")
	assert.Equal(t, []string{"2", "3", "4"}, ids(s.Visible()))
}

func TestSummarize(t *testing.T) {
	st := Summarize(filterFixture())
	assert.Equal(t, 4, st.Total)
	assert.Equal(t, 2, st.ByStatus[models.StatusPending])
	assert.Equal(t, 1, st.ByStatus[models.StatusInProgress])
	assert.Equal(t, 1, st.ByStatus[models.StatusCompleted])

	empty := Summarize(nil)
	assert.Zero(t, empty.Total)
	assert.Contains(t, empty.ByStatus, models.StatusCompleted)
}

func TestProgress(t *testing.T) {
	task := deepTask()
	task.Subtasks[0].Subtasks[0].Status = models.StatusCompleted
	task.Subtasks[1].Status = models.StatusCompleted

	done, total := Progress(task)
	assert.Equal(t, 2, done)
	assert.Equal(t, 5, total)
}
