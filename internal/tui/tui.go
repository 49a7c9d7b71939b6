// Package tui is the interactive terminal client: a page router over the
// dashboard, the editable inventory table, autosave settings and help.
package tui

import (
	"context"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
)

func Run(ctx context.Context, opts Options) error {
	applyColorProfilePreference()
	applyThemePreference(opts.Theme)
	applyGlyphPreference(opts.Glyphs)

	m := newAppModel(ctx, opts)

	var prog atomic.Pointer[tea.Program]
	// Program.Send blocks until Update receives the message, so a redraw
	// requested from inside Update must not wait on it.
	redraw := func() {
		if p := prog.Load(); p != nil {
			go p.Send(redrawMsg{})
		}
	}
	m.scr.onChange = redraw
	m.center.OnChange = redraw

	m.autosave.Start(m.autosave.LoadSettings())
	defer m.autosave.Stop()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	prog.Store(p)
	_, err := p.Run()
	return err
}
