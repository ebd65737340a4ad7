package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/tgienger/tasktree/internal/config"
	"github.com/tgienger/tasktree/internal/db"
	"github.com/tgienger/tasktree/internal/store"
	"github.com/tgienger/tasktree/internal/ui/views"
)

// Currently active view
type View int

const (
	ViewCards View = iota
	ViewTree
)

// ParseView maps a config view name to a View, defaulting to cards
func ParseView(name string) View {
	if name == config.ViewTree {
		return ViewTree
	}
	return ViewCards
}

func (v View) String() string {
	if v == ViewTree {
		return config.ViewTree
	}
	return config.ViewCards
}

// Preferences persists UI state between runs. *db.DB implements it.
type Preferences interface {
	LoadPreferences() (db.Preferences, error)
	SavePreferences(db.Preferences) error
}

type App struct {
	store       *store.Store
	prefs       Preferences
	log         zerolog.Logger
	currentView View
	cards       *views.CardListView
	tree        *views.TreeView
	width       int
	height      int
}

// Option configures an App
type Option func(*App)

// WithPreferences restores and saves view and filter state through p
func WithPreferences(p Preferences) Option {
	return func(a *App) { a.prefs = p }
}

func WithLogger(l zerolog.Logger) Option {
	return func(a *App) { a.log = l }
}

// WithView selects the view shown first; saved preferences override it
func WithView(v View) Option {
	return func(a *App) { a.currentView = v }
}

// Creates a new application over st
func NewApp(st *store.Store, opts ...Option) *App {
	a := &App{
		store: st,
		log:   zerolog.Nop(),
		cards: views.NewCardListView(st),
		tree:  views.NewTreeView(st),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.restore()
	return a
}

// restore applies the saved view and filter, if any
func (a *App) restore() {
	if a.prefs == nil {
		return
	}
	p, err := a.prefs.LoadPreferences()
	if err != nil {
		a.log.Warn().Err(err).Msg("load preferences")
		return
	}
	if p.View != "" {
		a.currentView = ParseView(p.View)
	}
	if p.TagFilter != "" || p.StatusFilter != "" {
		a.store.SetFilter(p.TagFilter, p.StatusFilter)
		a.tree.Refresh()
		a.cards.Refresh()
	}
}

func (a *App) save() {
	if a.prefs == nil {
		return
	}
	f := a.store.Filter()
	err := a.prefs.SavePreferences(db.Preferences{
		View:         a.currentView.String(),
		TagFilter:    f.Tag,
		StatusFilter: f.Status,
	})
	if err != nil {
		a.log.Warn().Err(err).Msg("save preferences")
	}
}

// CurrentView reports which view is active
func (a *App) CurrentView() View {
	return a.currentView
}

// Close detaches the views from the store
func (a *App) Close() {
	a.tree.Close()
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.cards.Init(), a.tree.Init())
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Both views keep their size so switching does not need a resize
		a.cards.Update(msg)
		a.tree.Update(msg)
		return a, nil

	case views.SwitchView:
		if a.currentView == ViewCards {
			a.currentView = ViewTree
			a.tree.Refresh()
		} else {
			a.currentView = ViewCards
			a.cards.Refresh()
		}
		a.log.Debug().Str("view", a.currentView.String()).Msg("view switched")
		a.save()
		return a, nil

	case views.FilterChanged:
		a.log.Debug().Str("tag", msg.Tag).Str("status", msg.Status).Msg("filter changed")
		a.save()
		return a, nil
	}

	var cmd tea.Cmd
	switch a.currentView {
	case ViewTree:
		_, cmd = a.tree.Update(msg)
	default:
		_, cmd = a.cards.Update(msg)
	}
	return a, cmd
}

func (a *App) View() string {
	if a.currentView == ViewTree {
		return a.tree.View()
	}
	return a.cards.View()
}
