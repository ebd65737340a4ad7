package views

import (
	"fmt"
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

type promptKind int

const (
	promptNone promptKind = iota
	promptTask
	promptSubtask
)

// CardListView shows visible tasks as cards with their direct subtasks as
// checkboxes
type CardListView struct {
	store  *store.Store
	styles *styles.Styles
	keys   keys.KeyMap

	width  int
	height int

	// Cursor: index into the visible tasks, and the direct subtask under
	// the cursor (-1 = the task header)
	taskIdx int
	subIdx  int
	offset  int

	// Title prompt for new tasks and subtasks
	prompting    promptKind
	promptTaskID string
	titleInput   textinput.Model

	// Tag assignment mode
	assigningTags   bool
	assignTagCursor int
	assigningTaskID string

	// Delete confirmation
	confirmingDelete bool
	deleteTaskID     string
	deleteSubtaskID  string // empty when deleting the whole task
	deleteTargetName string

	showHelpPopup bool
}

// NewCardListView creates the card view over st
func NewCardListView(st *store.Store) *CardListView {
	return &CardListView{
		store:      st,
		styles:     styles.NewStyles(),
		keys:       keys.DefaultKeyMap(),
		subIdx:     -1,
		titleInput: newTitleInput("Title"),
	}
}

// Refresh re-clamps the cursor after the snapshot or filter changed
// elsewhere, such as in the tree view
func (v *CardListView) Refresh() {
	v.clampCursor()
}

func (v *CardListView) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (v *CardListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}
		if v.prompting != promptNone {
			return v.updatePrompt(msg)
		}
		if v.assigningTags {
			return v.updateAssigningTags(msg)
		}
		return v.updateNormal(msg)
	}
	return v, nil
}

// current returns the task under the cursor
func (v *CardListView) current() (models.Task, bool) {
	visible := v.store.Visible()
	if v.taskIdx < 0 || v.taskIdx >= len(visible) {
		return models.Task{}, false
	}
	return visible[v.taskIdx], true
}

// cursorPath addresses the subtask under the cursor; nil means the task
func (v *CardListView) cursorPath() tree.Path {
	if v.subIdx < 0 {
		return nil
	}
	return tree.Path{v.subIdx}
}

// currentSubtask returns the direct subtask under the cursor
func (v *CardListView) currentSubtask(task models.Task) (models.Subtask, bool) {
	if v.subIdx < 0 || v.subIdx >= len(task.Subtasks) {
		return models.Subtask{}, false
	}
	return task.Subtasks[v.subIdx], true
}

func (v *CardListView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v.clampCursor()
	task, ok := v.current()

	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keys.Help):
		v.showHelpPopup = true
		return v, nil

	case key.Matches(msg, v.keys.SwitchView):
		return v, switchView

	case key.Matches(msg, v.keys.Up):
		v.moveUp()
		return v, nil

	case key.Matches(msg, v.keys.Down):
		v.moveDown()
		return v, nil

	case key.Matches(msg, v.keys.New):
		v.startPrompt(promptTask, "")
		return v, textinput.Blink

	case key.Matches(msg, v.keys.AddSubtask):
		if ok {
			v.startPrompt(promptSubtask, task.ID)
			return v, textinput.Blink
		}

	case key.Matches(msg, v.keys.Toggle):
		if !ok {
			return v, nil
		}
		if sub, onSub := v.currentSubtask(task); onSub {
			v.store.ToggleSubtask(task.ID, sub.ID)
		} else {
			v.store.AdvanceStatus(task.ID, nil)
		}
		v.clampCursor()
		return v, nil

	case key.Matches(msg, v.keys.Advance):
		if ok {
			v.store.AdvanceStatus(task.ID, v.cursorPath())
			v.clampCursor()
		}
		return v, nil

	case key.Matches(msg, v.keys.Tags):
		if ok {
			v.assigningTags = true
			v.assignTagCursor = 0
			v.assigningTaskID = task.ID
		}
		return v, nil

	case key.Matches(msg, v.keys.TagFilter):
		f := v.store.Filter()
		v.store.SetFilter(nextTagFilter(f.Tag, v.store.Catalog()), f.Status)
		v.resetCursor()
		return v, filterChanged(v.store.Filter())

	case key.Matches(msg, v.keys.StatusFilter):
		f := v.store.Filter()
		v.store.SetFilter(f.Tag, nextStatusFilter(f.Status))
		v.resetCursor()
		return v, filterChanged(v.store.Filter())

	case key.Matches(msg, v.keys.Delete):
		if !ok {
			return v, nil
		}
		v.confirmingDelete = true
		v.deleteTaskID = task.ID
		v.deleteSubtaskID = ""
		v.deleteTargetName = task.Title
		if sub, onSub := v.currentSubtask(task); onSub {
			v.deleteSubtaskID = sub.ID
			v.deleteTargetName = sub.Title
		}
		return v, nil
	}

	if st, isStatus := statusFromKey(msg, v.keys.Pending, v.keys.InProgress, v.keys.Completed); isStatus && ok {
		v.store.SetStatus(task.ID, v.cursorPath(), st)
		v.clampCursor()
	}
	return v, nil
}

func (v *CardListView) moveUp() {
	if v.subIdx >= 0 {
		v.subIdx--
		return
	}
	if v.taskIdx > 0 {
		v.taskIdx--
		if task, ok := v.current(); ok {
			v.subIdx = len(task.Subtasks) - 1
		}
	}
}

func (v *CardListView) moveDown() {
	task, ok := v.current()
	if !ok {
		return
	}
	if v.subIdx < len(task.Subtasks)-1 {
		v.subIdx++
		return
	}
	if v.taskIdx < len(v.store.Visible())-1 {
		v.taskIdx++
		v.subIdx = -1
	}
}

func (v *CardListView) resetCursor() {
	v.taskIdx = 0
	v.subIdx = -1
	v.offset = 0
}

// clampCursor keeps the cursor on an existing row after the snapshot or
// filter changed
func (v *CardListView) clampCursor() {
	visible := v.store.Visible()
	if len(visible) == 0 {
		v.resetCursor()
		return
	}
	v.taskIdx = clamp(v.taskIdx, 0, len(visible)-1)
	v.subIdx = clamp(v.subIdx, -1, len(visible[v.taskIdx].Subtasks)-1)
	if v.offset > v.taskIdx {
		v.offset = v.taskIdx
	}
}

func (v *CardListView) startPrompt(kind promptKind, taskID string) {
	v.prompting = kind
	v.promptTaskID = taskID
	v.titleInput.Reset()
	v.titleInput.Focus()
}

func (v *CardListView) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.closePrompt()
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		title := v.titleInput.Value()
		switch v.prompting {
		case promptTask:
			before := len(v.store.Tasks())
			v.store.AddTask(title)
			if len(v.store.Tasks()) > before {
				v.focusTask(v.store.Tasks()[before].ID)
			}
		case promptSubtask:
			v.store.AddSubtask(v.promptTaskID, nil, title)
		}
		v.closePrompt()
		v.clampCursor()
		return v, nil
	}

	var cmd tea.Cmd
	v.titleInput, cmd = v.titleInput.Update(msg)
	return v, cmd
}

func (v *CardListView) closePrompt() {
	v.prompting = promptNone
	v.promptTaskID = ""
	v.titleInput.Blur()
}

// focusTask moves the cursor to the task header if it is visible
func (v *CardListView) focusTask(id string) {
	for i, t := range v.store.Visible() {
		if t.ID == id {
			v.taskIdx = i
			v.subIdx = -1
			return
		}
	}
}

func (v *CardListView) updateAssigningTags(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	catalog := v.store.Catalog()

	switch {
	case key.Matches(msg, v.keys.Back):
		v.assigningTags = false
		return v, nil

	case key.Matches(msg, v.keys.Up):
		if v.assignTagCursor > 0 {
			v.assignTagCursor--
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.assignTagCursor < len(catalog)-1 {
			v.assignTagCursor++
		}
		return v, nil

	case key.Matches(msg, v.keys.Enter), key.Matches(msg, v.keys.Toggle):
		if v.assignTagCursor < len(catalog) {
			v.store.ToggleTag(v.assigningTaskID, catalog[v.assignTagCursor].Name)
		}
		// The task may no longer match the tag filter
		if !v.isVisible(v.assigningTaskID) {
			v.assigningTags = false
			v.assigningTaskID = ""
		}
		v.clampCursor()
		return v, nil
	}
	return v, nil
}

func (v *CardListView) isVisible(taskID string) bool {
	for _, t := range v.store.Visible() {
		if t.ID == taskID {
			return true
		}
	}
	return false
}

func (v *CardListView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		if v.deleteSubtaskID != "" {
			v.store.DeleteSubtask(v.deleteTaskID, v.deleteSubtaskID)
		} else {
			v.store.DeleteTask(v.deleteTaskID)
		}
		v.confirmingDelete = false
		v.clampCursor()
		return v, nil
	case "n", "N", "esc":
		v.confirmingDelete = false
		return v, nil
	}
	return v, nil
}

// View renders the view
func (v *CardListView) View() string {
	if v.showHelpPopup {
		return renderHelpPopup(v.styles, v.width, v.height, v.helpBindings()...)
	}
	if v.confirmingDelete {
		return v.renderDeleteConfirm()
	}
	switch v.prompting {
	case promptTask:
		return renderPrompt(v.styles, v.width, v.height, "New Task", v.titleInput)
	case promptSubtask:
		return renderPrompt(v.styles, v.width, v.height, "New Subtask", v.titleInput)
	}
	if v.assigningTags {
		return v.renderTagAssignment()
	}

	var b strings.Builder
	b.WriteString(v.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(v.renderCards())
	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	return styles.CenterView(b.String(), v.width, v.height)
}

func (v *CardListView) renderHeader() string {
	s := v.styles
	return lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("Tasks"),
		renderStats(s, v.store.Tasks()),
		renderFilter(s, v.store.Filter()),
	)
}

func (v *CardListView) renderCards() string {
	s := v.styles
	visible := v.store.Visible()

	if len(visible) == 0 {
		if len(v.store.Tasks()) > 0 {
			return s.TitleMuted.Render("No tasks match the filter. Press 'f' or 'F' to change it.")
		}
		return s.TitleMuted.Render("No tasks. Press 'n' to create one.")
	}

	availableHeight := max(v.height-9, 5)
	if v.taskIdx < v.offset {
		v.offset = v.taskIdx
	}

	// Advance the offset until the card under the cursor fits
	for {
		var cards []string
		used := 0
		fits := false
		for i := v.offset; i < len(visible); i++ {
			card := v.renderCard(visible[i], i == v.taskIdx)
			h := lipgloss.Height(card)
			if used+h > availableHeight && len(cards) > 0 {
				break
			}
			cards = append(cards, card)
			used += h
			if i == v.taskIdx {
				fits = true
			}
		}
		if fits || v.offset >= v.taskIdx {
			return lipgloss.JoinVertical(lipgloss.Left, cards...)
		}
		v.offset++
	}
}

func (v *CardListView) renderCard(task models.Task, selected bool) string {
	s := v.styles
	width := max(styles.ContentWidth(v.width)-4, 24)

	titleStyle := s.Node.Bold(true)
	if selected && v.subIdx == -1 {
		titleStyle = s.NodeFocus
	}
	lines := []string{
		s.StatusBadge(task.Status) + "  " + titleStyle.Render(task.Title),
		renderTags(s, v.store.Catalog(), task.Tags),
	}

	for j, sub := range task.Subtasks {
		box := "[ ]"
		if sub.Completed() {
			box = "[x]"
		}
		text := box + " " + sub.Title
		if n := len(sub.Subtasks); n > 0 {
			text += s.TitleMuted.Render(fmt.Sprintf(" (+%d)", n))
		}
		itemStyle := s.ListItem
		if selected && j == v.subIdx {
			itemStyle = s.ListSelected
		}
		lines = append(lines, itemStyle.Render(text))
	}

	if done, total := store.Progress(task); total > 0 {
		lines = append(lines, renderProgress(s, done, total, clamp(width-20, 10, 30)))
	}

	cardStyle := s.Card
	if selected {
		cardStyle = s.CardSelected
	}
	return cardStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// renderProgress draws a bar of barWidth cells followed by "done/total"
func renderProgress(s *styles.Styles, done, total, barWidth int) string {
	filled := 0
	if total > 0 {
		filled = done * barWidth / total
	}
	bar := s.Progress.Render(strings.Repeat("█", filled)) +
		s.TitleMuted.Render(strings.Repeat("░", barWidth-filled))
	return bar + " " + s.TitleMuted.Render(fmt.Sprintf("%d/%d done", done, total))
}

func (v *CardListView) helpBindings() []key.Binding {
	k := v.keys
	return []key.Binding{
		k.New, k.AddSubtask, k.Toggle, k.Advance, k.Pending, k.InProgress, k.Completed,
		k.Tags, k.TagFilter, k.StatusFilter, k.Delete, k.SwitchView, k.Quit,
	}
}

func (v *CardListView) renderHelp() string {
	contentWidth := styles.ContentWidth(v.width)
	if contentWidth > 0 && contentWidth < 60 {
		return renderHelpLine(v.styles, v.keys.Help)
	}
	k := v.keys
	return renderHelpLine(v.styles, k.New, k.AddSubtask, k.Toggle, k.Advance, k.Tags, k.TagFilter, k.Delete, k.SwitchView, k.Help)
}

func (v *CardListView) renderTagAssignment() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	task, ok := v.store.Task(v.assigningTaskID)
	if !ok {
		return ""
	}

	var items []string
	for i, tag := range v.store.Catalog() {
		itemStyle := s.ListItem
		if i == v.assignTagCursor {
			itemStyle = s.ListSelected
		}
		checkbox := "[ ]"
		if task.HasTag(tag.Name) {
			checkbox = "[x]"
		}
		items = append(items, itemStyle.Render(checkbox+" "+s.TagLabel(tag.Name, tag.Color)))
	}
	if len(items) == 0 {
		items = append(items, s.TitleMuted.Render("No tags configured"))
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("Tags for: "+task.Title),
		"",
		lipgloss.JoinVertical(lipgloss.Left, items...),
		"",
		s.TitleMuted.Render("Enter/Space: toggle • Esc: done"),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		s.Dialog.Render(content),
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *CardListView) renderDeleteConfirm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	heading := "Delete Task?"
	if v.deleteSubtaskID != "" {
		heading = "Delete Subtask?"
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render(heading),
		"",
		s.TitleMuted.Render(fmt.Sprintf("%q", v.deleteTargetName)),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.ButtonPrimary.Render(" Y - Yes "),
			"  ",
			s.Button.Render(" N - No "),
		),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, v.width, v.height)
}
