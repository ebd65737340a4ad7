package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/tasktree/internal/models"
)

// Theme represents a color scheme for the application
type Theme struct {
	Name string

	// Base colors
	Background    lipgloss.Color
	Foreground    lipgloss.Color
	ForegroundDim lipgloss.Color

	// Accent colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color

	// Status colors
	Pending    lipgloss.Color
	InProgress lipgloss.Color
	Completed  lipgloss.Color

	Error lipgloss.Color

	// UI element colors
	Border      lipgloss.Color
	BorderFocus lipgloss.Color
	Selection   lipgloss.Color
	Connector   lipgloss.Color
}

// Midnight is the default color theme: slate background, purple accents,
// emerald for completed work
var Midnight = Theme{
	Name: "Midnight",

	Background:    lipgloss.Color("#020617"),
	Foreground:    lipgloss.Color("#f1f5f9"),
	ForegroundDim: lipgloss.Color("#64748b"),

	Primary:   lipgloss.Color("#a78bfa"),
	Secondary: lipgloss.Color("#8b5cf6"),

	Pending:    lipgloss.Color("#c084fc"),
	InProgress: lipgloss.Color("#9333ea"),
	Completed:  lipgloss.Color("#059669"),

	Error: lipgloss.Color("#f7768e"),

	Border:      lipgloss.Color("#334155"),
	BorderFocus: lipgloss.Color("#8b5cf6"),
	Selection:   lipgloss.Color("#1e293b"),
	Connector:   lipgloss.Color("#7c3aed"),
}

// Current holds the active theme
var Current = Midnight

// MaxWidth is the maximum content width for the app
const MaxWidth = 96

// ContentWidth returns the actual content width to use (min of terminal width and MaxWidth)
func ContentWidth(terminalWidth int) int {
	if terminalWidth > MaxWidth {
		return MaxWidth
	}
	return terminalWidth
}

// CenterView wraps content and centers it horizontally if terminal is wider than MaxWidth
func CenterView(content string, terminalWidth, terminalHeight int) string {
	if terminalWidth <= MaxWidth {
		return content
	}
	return lipgloss.Place(terminalWidth, terminalHeight,
		lipgloss.Center, lipgloss.Top,
		content,
	)
}

// StatusColor returns the theme color for a status
func StatusColor(s models.Status) lipgloss.Color {
	switch s {
	case models.StatusInProgress:
		return Current.InProgress
	case models.StatusCompleted:
		return Current.Completed
	}
	return Current.Pending
}

// StatusGlyph is the marker drawn in front of a node: an open circle for
// pending, a filled dot while in progress, a check when completed
func StatusGlyph(s models.Status) string {
	switch s {
	case models.StatusInProgress:
		return "◉"
	case models.StatusCompleted:
		return "✔"
	}
	return "○"
}

// Styles holds all the pre-computed styles for the UI
type Styles struct {
	Title      lipgloss.Style
	TitleMuted lipgloss.Style

	ListItem     lipgloss.Style
	ListSelected lipgloss.Style

	// Cards
	Card         lipgloss.Style
	CardSelected lipgloss.Style
	Progress     lipgloss.Style

	// Tree
	Connector lipgloss.Style
	Node      lipgloss.Style
	NodeFocus lipgloss.Style

	Button        lipgloss.Style
	ButtonPrimary lipgloss.Style

	Tag    lipgloss.Style
	Dialog lipgloss.Style

	InputFocused lipgloss.Style

	Help     lipgloss.Style
	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style

	StatusBar lipgloss.Style
}

// NewStyles creates styles based on the current theme
func NewStyles() *Styles {
	t := Current

	return &Styles{
		Title: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		TitleMuted: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		ListItem: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Padding(0, 1),

		ListSelected: lipgloss.NewStyle().
			Foreground(t.Primary).
			Background(t.Selection).
			Padding(0, 1).
			Bold(true),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),

		CardSelected: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderFocus).
			Padding(0, 1),

		Progress: lipgloss.NewStyle().
			Foreground(t.Completed),

		Connector: lipgloss.NewStyle().
			Foreground(t.Connector),

		Node: lipgloss.NewStyle().
			Foreground(t.Foreground),

		NodeFocus: lipgloss.NewStyle().
			Foreground(t.Primary).
			Background(t.Selection).
			Bold(true),

		Button: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 2),

		ButtonPrimary: lipgloss.NewStyle().
			Foreground(t.Background).
			Background(t.Secondary).
			Padding(0, 2).
			Bold(true),

		Tag: lipgloss.NewStyle().
			Foreground(t.Secondary).
			MarginRight(1),

		Dialog: lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderFocus),

		InputFocused: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderFocus).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Padding(1, 1),

		HelpKey: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		HelpDesc: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		StatusBar: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Padding(0, 1),
	}
}

// StatusBadge renders a status label in the status color
func (s *Styles) StatusBadge(st models.Status) string {
	return lipgloss.NewStyle().
		Foreground(StatusColor(st)).
		Bold(true).
		Render(StatusGlyph(st) + " " + st.Label())
}

// TagLabel renders a tag name in its catalog color, falling back to the
// theme's tag color
func (s *Styles) TagLabel(name, color string) string {
	if color == "" {
		return s.Tag.Render("#" + name)
	}
	return s.Tag.Foreground(lipgloss.Color(color)).Render("#" + name)
}
