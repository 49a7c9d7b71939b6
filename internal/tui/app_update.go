package tui

import (
	"fishinv/internal/autosave"
	"fishinv/internal/inventory"

	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) Init() tea.Cmd {
	if m.router.active == pageInventory {
		return m.loadCmd()
	}
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case redrawMsg:
		m.syncScreen()
		return m, nil

	case opDoneMsg:
		m.debugLogf("op done op=%s ok=%v", msg.op, msg.ok)
		m.busy = ""
		m.syncScreen()
		return m, nil

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		m.debugLogf("key page=%s str=%q editing=%v adding=%v", m.router.active, msg.String(), m.editing, m.adding)
		return m.updateKey(msg)
	}
	return m, nil
}

func (m appModel) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	md, ok := m.center.Modal()
	if !ok {
		return m, nil
	}
	box := renderNotifyModal(m.width, md)
	if !centeredRect(m.width, m.height, box).contains(msg.X, msg.Y) {
		m.center.CloseModal()
	}
	return m, nil
}

func (m appModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The result popup blocks everything else until dismissed.
	if _, ok := m.center.Modal(); ok {
		switch msg.String() {
		case "esc", "enter", "x":
			m.center.CloseModal()
		case "ctrl+c":
			return m.quit()
		}
		return m, nil
	}

	if m.confirm.kind != confirmNone {
		return m.updateConfirm(msg)
	}
	if m.editing {
		return m.updateEditing(msg)
	}
	if m.adding {
		return m.updateAdding(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		if m.ctrl.HasUnsaved() {
			m.confirm = confirmState{kind: confirmQuit, focus: confirmFocusCancel}
			return m, nil
		}
		return m.quit()
	case "1", "2", "3", "4":
		return m.selectPage(page(int(msg.String()[0] - '1')))
	case "tab":
		return m.selectPage(m.router.next())
	case "shift+tab":
		return m.selectPage(m.router.prev())
	case "x":
		if ts := m.center.Toasts(); len(ts) > 0 {
			m.center.DismissToast(ts[len(ts)-1].ID)
		}
		return m, nil
	}

	switch m.router.active {
	case pageInventory:
		return m.updateInventory(msg)
	case pageSettings:
		return m.updateSettings(msg)
	case pageHelp:
		return m.updateHelp(msg)
	}
	return m, nil
}

func (m appModel) selectPage(p page) (tea.Model, tea.Cmd) {
	var load bool
	m.router, load = m.router.selectPage(p)
	if load {
		return m, m.loadCmd()
	}
	return m, nil
}

func (m appModel) quit() (tea.Model, tea.Cmd) {
	m.saveTUIState()
	return m, tea.Quit
}

func (m appModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab", "left", "right", "h", "l":
		m.confirm.focus = m.confirm.focus.toggle()
		return m, nil
	case "esc", "n", "ctrl+g":
		m.confirm = confirmState{}
		return m, nil
	case "y":
		return m.acceptConfirm()
	case "enter":
		if m.confirm.focus == confirmFocusConfirm {
			return m.acceptConfirm()
		}
		m.confirm = confirmState{}
		return m, nil
	case "ctrl+c":
		if m.confirm.kind == confirmQuit {
			return m.quit()
		}
	}
	return m, nil
}

func (m appModel) acceptConfirm() (tea.Model, tea.Cmd) {
	c := m.confirm
	m.confirm = confirmState{}
	switch c.kind {
	case confirmDelete:
		m.busy = "삭제 중…"
		return m, m.deleteCmd(c.rowID)
	case confirmQuit:
		return m.quit()
	}
	return m, nil
}

func (m appModel) updateInventory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.scr.snapshot().rows
	switch msg.String() {
	case "up", "k":
		m.cursorRow--
	case "down", "j":
		m.cursorRow++
	case "left", "h":
		m.cursorCol--
	case "right", "l":
		m.cursorCol++
	case "enter", "e":
		r, ok := m.selectedRow()
		if !ok {
			return m, nil
		}
		m.editing = true
		m.editRowID = r.ID
		m.editField = inventory.Fields[m.cursorCol]
		m.cell = newInput(r.Value(m.editField))
		m.cell.Focus()
		return m, nil
	case "s":
		r, ok := m.selectedRow()
		if !ok {
			return m, nil
		}
		m.busy = "저장 중…"
		return m, m.saveRowCmd(r.ID)
	case "S", "ctrl+s":
		m.busy = "일괄 저장 중…"
		return m, m.saveAllCmd()
	case "d":
		r, ok := m.selectedRow()
		if !ok {
			return m, nil
		}
		m.confirm = confirmState{kind: confirmDelete, rowID: r.ID, focus: confirmFocusCancel}
		return m, nil
	case "a":
		m.adding = true
		m.focusAddInput(0)
		return m, nil
	case "r":
		return m, m.loadCmd()
	}
	m.clampCursor(len(rows))
	return m, nil
}

func (m appModel) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter", "tab":
		m.editing = false
		m.cell.Blur()
		return m, nil
	case "ctrl+c":
		m.editing = false
		return m, nil
	}
	before := m.cell.Value()
	var cmd tea.Cmd
	m.cell, cmd = m.cell.Update(msg)
	if v := m.cell.Value(); v != before {
		m.scr.setCell(m.editRowID, m.editField, v)
		m.ctrl.Edit(m.editRowID, m.editField, v)
	}
	return m, cmd
}

func (m appModel) updateAdding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.adding = false
		for i := range m.addInputs {
			m.addInputs[i].Blur()
		}
		return m, nil
	case "tab", "down":
		m.focusAddInput(m.addFocus + 1)
		return m, nil
	case "shift+tab", "up":
		m.focusAddInput(m.addFocus - 1)
		return m, nil
	case "enter":
		m.busy = "추가 중…"
		return m, m.addCmd(m.addInput())
	}
	var cmd tea.Cmd
	m.addInputs[m.addFocus], cmd = m.addInputs[m.addFocus].Update(msg)
	return m, cmd
}

func (m appModel) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cfg := m.autosave.Config()
	switch msg.String() {
	case "up", "k":
		m.settingsFocus = settingsFocusEnabled
	case "down", "j":
		m.settingsFocus = settingsFocusInterval
	case " ", "enter":
		if m.settingsFocus == settingsFocusEnabled {
			cfg.Enabled = !cfg.Enabled
			m.applyAutosave(cfg)
		}
	case "left", "h":
		cfg.IntervalMinutes = stepInterval(cfg.IntervalMinutes, -1)
		m.applyAutosave(cfg)
	case "right", "l":
		cfg.IntervalMinutes = stepInterval(cfg.IntervalMinutes, 1)
		m.applyAutosave(cfg)
	}
	return m, nil
}

func (m appModel) applyAutosave(cfg autosave.Config) {
	if err := m.autosave.Apply(cfg); err != nil {
		m.center.NotifyResult(false, "자동저장 설정", err.Error())
	}
}

func stepInterval(cur int, delta int) int {
	n := len(autosave.Intervals)
	idx := 0
	for i, v := range autosave.Intervals {
		if v == cur {
			idx = i
		}
	}
	return autosave.Intervals[((idx+delta)%n+n)%n]
}

func (m appModel) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.helpScroll > 0 {
			m.helpScroll--
		}
	case "down", "j":
		m.helpScroll++
	case "g":
		m.helpScroll = 0
	}
	return m, nil
}

func (m appModel) loadCmd() tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		err := ctrl.Load(ctx)
		return opDoneMsg{op: "load", ok: err == nil}
	}
}

func (m appModel) saveRowCmd(id int64) tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		return opDoneMsg{op: "save", ok: ctrl.SaveRow(ctx, id, false)}
	}
}

func (m appModel) saveAllCmd() tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		return opDoneMsg{op: "save-all", ok: ctrl.SaveAllDirty(ctx, false)}
	}
}

func (m appModel) deleteCmd(id int64) tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		return opDoneMsg{op: "delete", ok: ctrl.DeleteRow(ctx, id)}
	}
}

func (m appModel) addCmd(in inventory.AddInput) tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		return opDoneMsg{op: "add", ok: ctrl.AddRow(ctx, in)}
	}
}
