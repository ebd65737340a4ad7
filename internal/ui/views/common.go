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
	"github.com/tgienger/tasktree/internal/ui/styles"
)

// clamp returns val clamped between minVal and maxVal
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// SwitchView asks the app to swap between the card and tree views
type SwitchView struct{}

// FilterChanged reports a new tag/status filter so it can be saved
type FilterChanged struct {
	Tag    string
	Status string
}

func switchView() tea.Msg { return SwitchView{} }

func filterChanged(f store.Filter) tea.Cmd {
	return func() tea.Msg {
		return FilterChanged{Tag: f.Tag, Status: f.Status}
	}
}

// newTitleInput builds the single-line input used for task and subtask titles
func newTitleInput(placeholder string) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 200
	in.Width = 40
	return in
}

// nextTagFilter cycles all -> each catalog tag -> all
func nextTagFilter(current string, catalog []models.Tag) string {
	if current == store.All || current == "" {
		if len(catalog) == 0 {
			return store.All
		}
		return catalog[0].Name
	}
	for i, tag := range catalog {
		if tag.Name == current && i+1 < len(catalog) {
			return catalog[i+1].Name
		}
	}
	return store.All
}

// nextStatusFilter cycles all -> pending -> in-progress -> completed -> all
func nextStatusFilter(current string) string {
	if current == store.All || current == "" {
		return string(models.Statuses[0])
	}
	st := models.Status(current)
	if st == models.Statuses[len(models.Statuses)-1] || !st.Valid() {
		return store.All
	}
	return string(st.Next())
}

// statusFromKey maps the 1/2/3 bindings to a status
func statusFromKey(msg tea.KeyMsg, pending, inProgress, completed key.Binding) (models.Status, bool) {
	switch {
	case key.Matches(msg, pending):
		return models.StatusPending, true
	case key.Matches(msg, inProgress):
		return models.StatusInProgress, true
	case key.Matches(msg, completed):
		return models.StatusCompleted, true
	}
	return "", false
}

func tagColor(catalog []models.Tag, name string) string {
	for _, t := range catalog {
		if t.Name == name {
			return t.Color
		}
	}
	return ""
}

func renderTags(s *styles.Styles, catalog []models.Tag, tags []string) string {
	if len(tags) == 0 {
		return s.TitleMuted.Render("no tags")
	}
	var parts []string
	for _, name := range tags {
		parts = append(parts, s.TagLabel(name, tagColor(catalog, name)))
	}
	return strings.Join(parts, " ")
}

// renderStats renders the total and per-status counts of tasks
func renderStats(s *styles.Styles, tasks []models.Task) string {
	st := store.Summarize(tasks)
	parts := []string{s.StatusBar.Render(fmt.Sprintf("%d tasks", st.Total))}
	for _, status := range models.Statuses {
		c := lipgloss.NewStyle().Foreground(styles.StatusColor(status))
		parts = append(parts, c.Render(fmt.Sprintf("%s %d", styles.StatusGlyph(status), st.ByStatus[status])))
	}
	return strings.Join(parts, "  ")
}

func renderFilter(s *styles.Styles, f store.Filter) string {
	return s.TitleMuted.Render("tag: ") + s.Title.Render(f.Tag) +
		s.TitleMuted.Render("  status: ") + s.Title.Render(f.Status)
}

// renderHelpLine renders bindings as "key desc • key desc"
func renderHelpLine(s *styles.Styles, bindings ...key.Binding) string {
	var parts []string
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, s.HelpKey.Render(h.Key)+" "+s.HelpDesc.Render(h.Desc))
	}
	return s.Help.Render(strings.Join(parts, " • "))
}

// renderHelpPopup renders a boxed list of bindings centered in the terminal
func renderHelpPopup(s *styles.Styles, width, height int, bindings ...key.Binding) string {
	contentWidth := styles.ContentWidth(width)

	items := []string{s.Title.Render("Keyboard Shortcuts"), ""}
	for _, b := range bindings {
		h := b.Help()
		items = append(items, s.HelpKey.Render(fmt.Sprintf("%-7s", h.Key))+h.Desc)
	}
	items = append(items, "", s.TitleMuted.Render("Press any key to close"))

	centered := lipgloss.Place(contentWidth, height,
		lipgloss.Center, lipgloss.Center,
		s.Dialog.Render(lipgloss.JoinVertical(lipgloss.Left, items...)),
	)
	return styles.CenterView(centered, width, height)
}

// renderPrompt renders a boxed title input
func renderPrompt(s *styles.Styles, width, height int, label string, in textinput.Model) string {
	contentWidth := styles.ContentWidth(width)
	inputWidth := clamp(contentWidth-10, 20, 50)

	form := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render(label),
		"",
		s.InputFocused.Width(inputWidth).Render(in.View()),
		"",
		s.TitleMuted.Render("↵: save • Esc: cancel"),
	)
	centered := lipgloss.Place(contentWidth, height,
		lipgloss.Center, lipgloss.Center,
		s.Dialog.Render(form),
	)
	return styles.CenterView(centered, width, height)
}
