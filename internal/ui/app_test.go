package ui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tgienger/tasktree/internal/db"
	"github.com/tgienger/tasktree/internal/models"
	"github.com/tgienger/tasktree/internal/store"
	"github.com/tgienger/tasktree/internal/ui/views"
)

type memPrefs struct {
	saved   []db.Preferences
	initial db.Preferences
	loadErr error
}

func (m *memPrefs) LoadPreferences() (db.Preferences, error) {
	return m.initial, m.loadErr
}

func (m *memPrefs) SavePreferences(p db.Preferences) error {
	m.saved = append(m.saved, p)
	return nil
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send delivers msg and feeds any resulting command message back in
func send(a *App, msg tea.Msg) {
	_, cmd := a.Update(msg)
	if cmd == nil {
		return
	}
	if next := cmd(); next != nil {
		a.Update(next)
	}
}

func newTestApp(prefs Preferences) (*App, *store.Store) {
	st := store.New(
		store.WithTasks([]models.Task{{ID: "1", Title: "Plan", Status: models.StatusPending, Tags: []string{"urgent"}}}),
		store.WithCatalog([]models.Tag{{ID: "1", Name: "urgent"}}),
	)
	a := NewApp(st, WithPreferences(prefs))
	a.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return a, st
}

func TestParseView(t *testing.T) {
	assert.Equal(t, ViewTree, ParseView("tree"))
	assert.Equal(t, ViewCards, ParseView("cards"))
	assert.Equal(t, ViewCards, ParseView(""))
	assert.Equal(t, "tree", ViewTree.String())
}

func TestSwitchViewSavesPreference(t *testing.T) {
	prefs := &memPrefs{}
	a, _ := newTestApp(prefs)
	require.Equal(t, ViewCards, a.CurrentView())

	send(a, runes("v"))
	assert.Equal(t, ViewTree, a.CurrentView())
	assert.Contains(t, a.View(), "Task Tree")

	send(a, runes("v"))
	assert.Equal(t, ViewCards, a.CurrentView())

	require.Len(t, prefs.saved, 2)
	assert.Equal(t, db.Preferences{View: "tree", TagFilter: store.All, StatusFilter: store.All}, prefs.saved[0])
	assert.Equal(t, "cards", prefs.saved[1].View)
}

func TestFilterChangeSavesPreference(t *testing.T) {
	prefs := &memPrefs{}
	a, st := newTestApp(prefs)

	send(a, runes("f"))
	assert.Equal(t, "urgent", st.Filter().Tag)
	require.Len(t, prefs.saved, 1)
	assert.Equal(t, "urgent", prefs.saved[0].TagFilter)
}

func TestRestorePreferences(t *testing.T) {
	prefs := &memPrefs{initial: db.Preferences{View: "tree", StatusFilter: "completed"}}
	a, st := newTestApp(prefs)

	assert.Equal(t, ViewTree, a.CurrentView())
	assert.Equal(t, store.Filter{Tag: store.All, Status: "completed"}, st.Filter())
	assert.NotContains(t, a.View(), "Plan")
}

func TestRestoreErrorKeepsDefaults(t *testing.T) {
	prefs := &memPrefs{loadErr: errors.New("locked")}
	st := store.New()
	a := NewApp(st, WithPreferences(prefs), WithView(ViewTree))

	assert.Equal(t, ViewTree, a.CurrentView())
	assert.Equal(t, store.All, st.Filter().Tag)
}

func TestKeysRouteToActiveView(t *testing.T) {
	a, st := newTestApp(nil)

	send(a, runes("v"))
	send(a, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})

	task, _ := st.Task("1")
	assert.Equal(t, models.StatusInProgress, task.Status)

	_, cmd := a.Update(runes("v"))
	require.NotNil(t, cmd)
	assert.IsType(t, views.SwitchView{}, cmd())
}

func space() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
}

func down() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyDown}
}

func pendingTrio() *store.Store {
	sub := func(id string) models.Subtask {
		return models.Subtask{ID: id, Title: id, Status: models.StatusPending}
	}
	return store.New(store.WithTasks([]models.Task{
		{ID: "a", Title: "A", Status: models.StatusPending},
		{ID: "b", Title: "B", Status: models.StatusPending, Subtasks: []models.Subtask{sub("b-1"), sub("b-2"), sub("b-3")}},
		{ID: "c", Title: "C", Status: models.StatusPending},
	}))
}

func TestCardCursorSurvivesTreeEdits(t *testing.T) {
	st := pendingTrio()
	st.SetFilter(store.All, string(models.StatusPending))
	a := NewApp(st)
	a.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	// Cursor on B's last subtask
	for i := 0; i < 4; i++ {
		send(a, down())
	}

	// Advancing A in the tree hides it from the pending filter
	send(a, runes("v"))
	send(a, space())
	send(a, runes("v"))
	require.Equal(t, ViewCards, a.CurrentView())

	require.NotPanics(t, func() { send(a, space()) })
	c, _ := st.Task("c")
	assert.Equal(t, models.StatusInProgress, c.Status)

	require.NotPanics(t, func() {
		send(a, runes("d"))
		send(a, runes("y"))
	})
	_, ok := st.Task("b")
	assert.False(t, ok)
	assert.Len(t, st.Tasks(), 2)
}

func TestSubtaskAddedInCardsIsEditableInTree(t *testing.T) {
	st := pendingTrio()
	a := NewApp(st)
	a.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	send(a, runes("a"))
	for _, r := range "Call" {
		send(a, runes(string(r)))
	}
	send(a, tea.KeyMsg{Type: tea.KeyEnter})

	send(a, runes("v"))
	assert.Contains(t, a.View(), "Call")

	// rows: A, └─ Call
	send(a, down())
	send(a, runes("3"))

	task, _ := st.Task("a")
	require.Len(t, task.Subtasks, 1)
	assert.Equal(t, models.StatusCompleted, task.Subtasks[0].Status)
}

func TestTreeCursorAfterCardFilterHidesTask(t *testing.T) {
	st := pendingTrio()
	a := NewApp(st)
	a.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	// Complete C from the cards, then filter to pending
	for i := 0; i < 5; i++ {
		send(a, down())
	}
	send(a, runes("3"))
	c, _ := st.Task("c")
	require.Equal(t, models.StatusCompleted, c.Status)

	// Tree cursor on C, the last row
	send(a, runes("v"))
	for i := 0; i < 6; i++ {
		send(a, down())
	}
	send(a, runes("v"))
	send(a, runes("F"))
	require.Equal(t, string(models.StatusPending), st.Filter().Status)

	send(a, runes("v"))
	require.NotPanics(t, func() { send(a, space()) })

	c, _ = st.Task("c")
	assert.Equal(t, models.StatusCompleted, c.Status)
	// The cursor falls back to the last visible row, B's last subtask
	b, _ := st.Task("b")
	assert.Equal(t, models.StatusInProgress, b.Subtasks[2].Status)
}
