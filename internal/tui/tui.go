package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bonntanname/figure-checker/internal/schema"
	"github.com/bonntanname/figure-checker/internal/session"
	"github.com/bonntanname/figure-checker/internal/store"
)

// Run starts the interactive labeling UI and blocks until the user quits.
func Run(sess *session.Session, sch schema.Schema, st store.Store) error {
	applyColorProfilePreference()

	theme := ""
	if cfg, err := st.LoadConfig(); err == nil && cfg.TUI != nil {
		theme = cfg.TUI.Theme
	}
	applyThemePreference(theme)

	p := tea.NewProgram(newAppModel(sess, sch, st), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
