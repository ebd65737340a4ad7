package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/tasktree/internal/models"
	"github.com/tgienger/tasktree/internal/store"
	"github.com/tgienger/tasktree/internal/tree"
	"github.com/tgienger/tasktree/internal/ui/keys"
	"github.com/tgienger/tasktree/internal/ui/styles"
)

// TreeView draws every task as the root of its subtask tree. Nodes cycle
// status in place and accept children at any depth; there is no delete.
type TreeView struct {
	store  *store.Store
	styles *styles.Styles
	keys   keys.KeyMap

	width  int
	height int

	rows    []treeRow
	cursor  int
	scrollY int
	cancel  func()

	// Title prompt; promptPath addresses the parent of the new node
	prompting    promptKind
	promptTaskID string
	promptPath   tree.Path
	titleInput   textinput.Model

	// Task detail dialog
	viewingTask  bool
	detailTaskID string
	statusCursor int

	showHelpPopup bool
}

// NewTreeView creates the tree view and subscribes it to st
func NewTreeView(st *store.Store) *TreeView {
	v := &TreeView{
		store:      st,
		styles:     styles.NewStyles(),
		keys:       keys.DefaultKeyMap(),
		titleInput: newTitleInput("Title..."),
	}
	v.cancel = st.Subscribe(func([]models.Task) { v.Refresh() })
	v.Refresh()
	return v
}

// Refresh rebuilds the rows from the store, keeping the cursor on the
// same node when it still exists
func (v *TreeView) Refresh() {
	var taskID string
	var path tree.Path
	if v.cursor < len(v.rows) {
		taskID, path = v.rows[v.cursor].TaskID, v.rows[v.cursor].Path
	}

	v.rows = flattenTasks(v.store.Visible())

	if i := indexOfRow(v.rows, taskID, path); i >= 0 {
		v.cursor = i
	} else {
		v.cursor = clamp(v.cursor, 0, max(len(v.rows)-1, 0))
	}
}

// Close detaches the view from the store
func (v *TreeView) Close() {
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
}

func (v *TreeView) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (v *TreeView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.titleInput.Width = clamp(styles.ContentWidth(v.width)-14, 16, 46)
		return v, nil

	case tea.KeyMsg:
		if v.showHelpPopup {
			v.showHelpPopup = false
			return v, nil
		}
		if v.prompting != promptNone {
			return v.updatePrompt(msg)
		}
		if v.viewingTask {
			return v.updateViewingTask(msg)
		}
		return v.updateNormal(msg)
	}
	return v, nil
}

func (v *TreeView) selected() (treeRow, bool) {
	if v.cursor < 0 || v.cursor >= len(v.rows) {
		return treeRow{}, false
	}
	return v.rows[v.cursor], true
}

func (v *TreeView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	row, ok := v.selected()

	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keys.Help):
		v.showHelpPopup = true
		return v, nil

	case key.Matches(msg, v.keys.SwitchView):
		return v, switchView

	case key.Matches(msg, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
			v.ensureVisible()
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.cursor < len(v.rows)-1 {
			v.cursor++
			v.ensureVisible()
		}
		return v, nil

	case key.Matches(msg, v.keys.Toggle), key.Matches(msg, v.keys.Advance):
		if ok {
			v.store.AdvanceStatus(row.TaskID, row.Path)
		}
		return v, nil

	case key.Matches(msg, v.keys.New):
		v.startPrompt(promptTask, "", nil)
		return v, textinput.Blink

	case key.Matches(msg, v.keys.AddSubtask):
		if ok {
			v.startPrompt(promptSubtask, row.TaskID, row.Path)
			return v, textinput.Blink
		}
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		if ok {
			task, _ := v.store.Task(row.TaskID)
			v.viewingTask = true
			v.detailTaskID = row.TaskID
			v.statusCursor = statusIndex(task.Status)
		}
		return v, nil
	}

	if st, isStatus := statusFromKey(msg, v.keys.Pending, v.keys.InProgress, v.keys.Completed); isStatus && ok {
		v.store.SetStatus(row.TaskID, row.Path, st)
	}
	return v, nil
}

func statusIndex(s models.Status) int {
	for i, st := range models.Statuses {
		if st == s {
			return i
		}
	}
	return 0
}

func (v *TreeView) startPrompt(kind promptKind, taskID string, path tree.Path) {
	v.prompting = kind
	v.promptTaskID = taskID
	v.promptPath = path
	v.titleInput.Reset()
	v.titleInput.Focus()
}

func (v *TreeView) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.closePrompt()
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		title := v.titleInput.Value()
		switch v.prompting {
		case promptTask:
			v.store.AddTask(title)
		case promptSubtask:
			v.store.AddSubtask(v.promptTaskID, v.promptPath, title)
		}
		v.closePrompt()
		return v, nil
	}

	var cmd tea.Cmd
	v.titleInput, cmd = v.titleInput.Update(msg)
	return v, cmd
}

func (v *TreeView) closePrompt() {
	v.prompting = promptNone
	v.promptTaskID = ""
	v.promptPath = nil
	v.titleInput.Blur()
}

func (v *TreeView) updateViewingTask(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.viewingTask = false
		return v, nil

	case key.Matches(msg, v.keys.Up):
		if v.statusCursor > 0 {
			v.statusCursor--
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.statusCursor < len(models.Statuses)-1 {
			v.statusCursor++
		}
		return v, nil

	case key.Matches(msg, v.keys.Enter), key.Matches(msg, v.keys.Toggle):
		v.store.SetStatus(v.detailTaskID, nil, models.Statuses[v.statusCursor])
		return v, nil

	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit
	}
	return v, nil
}

func (v *TreeView) visibleRows() int {
	return max(v.height-9, 3)
}

func (v *TreeView) ensureVisible() {
	visible := v.visibleRows()
	if v.cursor < v.scrollY {
		v.scrollY = v.cursor
	} else if v.cursor >= v.scrollY+visible {
		v.scrollY = v.cursor - visible + 1
	}
}

// View renders the view
func (v *TreeView) View() string {
	if v.showHelpPopup {
		return renderHelpPopup(v.styles, v.width, v.height, v.helpBindings()...)
	}
	switch v.prompting {
	case promptTask:
		return renderPrompt(v.styles, v.width, v.height, "New Task", v.titleInput)
	case promptSubtask:
		return renderPrompt(v.styles, v.width, v.height, "New Subtask", v.titleInput)
	}
	if v.viewingTask {
		return v.renderTaskView()
	}

	s := v.styles
	var b strings.Builder
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("Task Tree"),
		renderStats(s, v.store.Tasks()),
		renderFilter(s, v.store.Filter()),
	))
	b.WriteString("\n\n")
	b.WriteString(v.renderRows())
	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	return styles.CenterView(b.String(), v.width, v.height)
}

func (v *TreeView) renderRows() string {
	s := v.styles
	if len(v.rows) == 0 {
		return s.TitleMuted.Render("No tasks. Press 'n' to create one.")
	}

	v.ensureVisible()
	end := min(v.scrollY+v.visibleRows(), len(v.rows))

	var lines []string
	for i := v.scrollY; i < end; i++ {
		lines = append(lines, v.renderRow(v.rows[i], i == v.cursor))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (v *TreeView) renderRow(r treeRow, focused bool) string {
	s := v.styles
	glyph := lipgloss.NewStyle().Foreground(styles.StatusColor(r.Status)).Render(styles.StatusGlyph(r.Status))

	title := s.Node.Render(r.Title)
	if r.Path == nil {
		title = s.Node.Bold(true).Render(r.Title)
	}
	if focused {
		title = s.NodeFocus.Render(r.Title)
	}
	return s.Connector.Render(r.Prefix) + glyph + " " + title
}

func (v *TreeView) helpBindings() []key.Binding {
	k := v.keys
	return []key.Binding{
		k.Advance, k.Pending, k.InProgress, k.Completed, k.AddSubtask, k.New,
		k.Enter, k.SwitchView, k.Quit,
	}
}

func (v *TreeView) renderHelp() string {
	contentWidth := styles.ContentWidth(v.width)
	if contentWidth > 0 && contentWidth < 60 {
		return renderHelpLine(v.styles, v.keys.Help)
	}
	k := v.keys
	return renderHelpLine(v.styles, k.Toggle, k.AddSubtask, k.New, k.Enter, k.SwitchView, k.Help, k.Quit)
}

func (v *TreeView) renderTaskView() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	task, ok := v.store.Task(v.detailTaskID)
	if !ok {
		return ""
	}

	var statuses []string
	for i, st := range models.Statuses {
		itemStyle := s.ListItem
		if i == v.statusCursor {
			itemStyle = s.ListSelected
		}
		marker := "  "
		if st == task.Status {
			marker = "• "
		}
		statuses = append(statuses, itemStyle.Render(marker+s.StatusBadge(st)))
	}

	labelStyle := s.TitleMuted
	content := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("Task Details"),
		"",
		labelStyle.Render("Title"),
		task.Title,
		"",
		labelStyle.Render("Status"),
		lipgloss.JoinVertical(lipgloss.Left, statuses...),
		"",
		labelStyle.Render("Tags"),
		renderTags(s, v.store.Catalog(), task.Tags),
		"",
		s.TitleMuted.Render("↑↓: select • ↵: set status • Esc: close"),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		s.Dialog.Render(content),
	)
	return styles.CenterView(centered, v.width, v.height)
}
