package tui

import (
	"swipedeck/internal/deck"
	"swipedeck/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-logr/logr"
)

// Options configures the interactive deck.
type Options struct {
	Deck  *store.Deck
	Stack deck.Config
	UI    store.TUIConfig
	Log   logr.Logger
	// Subscriber receives stack events alongside the status line, e.g. a
	// decision log recorder.
	Subscriber deck.Subscriber
}

// Run shows the deck full-screen until the user quits.
func Run(opts Options) error {
	applyThemePreference()
	applyColorProfilePreference()
	applyGlyphPreference(opts.UI.Glyphs)

	m, err := newModel(opts)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
