package tui

import (
	"context"
	"os"
	"strings"

	"fishinv/internal/autosave"
	"fishinv/internal/inventory"
	"fishinv/internal/model"
	"fishinv/internal/notify"
	"fishinv/internal/store"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
)

type Options struct {
	Backend inventory.Backend
	Policy  model.NumberPolicy
	// Prefs persists autosave settings; nil keeps them in memory only.
	Prefs autosave.PrefStore
	// Store holds the remembered TUI state (last page, selected row).
	Store store.Store

	StartPage  string
	BaseOrigin string
	OriginRule string
	Theme      string
	Glyphs     string

	// NewTicker overrides the autosave timer (tests).
	NewTicker autosave.TickerFunc
}

type redrawMsg struct{}

type opDoneMsg struct {
	op string
	ok bool
}

type settingsFocus int

const (
	settingsFocusEnabled settingsFocus = iota
	settingsFocusInterval
)

type appModel struct {
	ctx      context.Context
	opts     Options
	ctrl     *inventory.Controller
	scr      *screen
	center   *notify.Center
	autosave *autosave.Scheduler
	store    store.Store

	width  int
	height int

	router pageRouter

	cursorRow int
	cursorCol int

	editing   bool
	editRowID int64
	editField inventory.Field
	cell      textinput.Model

	adding    bool
	addInputs []textinput.Model
	addFocus  int
	clearSeq  int

	confirm confirmState

	settingsFocus settingsFocus
	helpScroll    int

	// busy names the in-flight operation started from the keyboard.
	busy string

	restoreRowID int64

	debugLogPath string
}

var addFieldLabels = []string{"어종", "크기", "수량", "단가"}

func newAppModel(ctx context.Context, opts Options) appModel {
	if ctx == nil {
		ctx = context.Background()
	}
	scr := newScreen()
	center := notify.NewCenter()
	ctrl := inventory.NewController(inventory.Options{
		Backend:  opts.Backend,
		View:     scr,
		Notifier: center,
		Policy:   opts.Policy,
	})
	sched := autosave.New(autosave.Options{
		Prefs:     opts.Prefs,
		NewTicker: opts.NewTicker,
		OnTick:    func() { ctrl.AutosaveTick(ctx) },
	})

	m := appModel{
		ctx:          ctx,
		opts:         opts,
		ctrl:         ctrl,
		scr:          scr,
		center:       center,
		autosave:     sched,
		store:        opts.Store,
		width:        100,
		height:       30,
		debugLogPath: strings.TrimSpace(os.Getenv("FISHINV_TUI_DEBUG_LOG")),
	}

	last := ""
	if st, err := opts.Store.LoadTUIState(); err == nil && st != nil {
		last = st.Page
		m.restoreRowID = st.SelectedRowID
	}
	m.router.active = initialPage(opts.StartPage, last)

	m.addInputs = make([]textinput.Model, len(addFieldLabels))
	for i := range m.addInputs {
		m.addInputs[i] = newInput("")
	}
	return m
}

func newInput(value string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 200
	// A static cursor keeps keystrokes from scheduling blink ticks.
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.SetValue(value)
	ti.CursorEnd()
	return ti
}

func (m *appModel) resetAddForm() {
	for i := range m.addInputs {
		m.addInputs[i].SetValue("")
		m.addInputs[i].Blur()
	}
	m.addFocus = 0
	m.adding = false
}

func (m *appModel) focusAddInput(i int) {
	n := len(m.addInputs)
	m.addFocus = ((i % n) + n) % n
	for j := range m.addInputs {
		if j == m.addFocus {
			m.addInputs[j].Focus()
		} else {
			m.addInputs[j].Blur()
		}
	}
}

func (m appModel) addInput() inventory.AddInput {
	return inventory.AddInput{
		Fish:      m.addInputs[0].Value(),
		Size:      m.addInputs[1].Value(),
		Qty:       m.addInputs[2].Value(),
		UnitPrice: m.addInputs[3].Value(),
	}
}

// syncScreen applies controller-side changes that affect local UI state.
func (m *appModel) syncScreen() {
	st := m.scr.snapshot()
	if st.clearSeq != m.clearSeq {
		m.clearSeq = st.clearSeq
		m.resetAddForm()
	}
	if m.restoreRowID != 0 && len(st.rows) > 0 {
		for i, r := range st.rows {
			if r.ID == m.restoreRowID {
				m.cursorRow = i
			}
		}
		m.restoreRowID = 0
	}
	m.clampCursor(len(st.rows))
}

func (m *appModel) clampCursor(n int) {
	if m.cursorRow >= n {
		m.cursorRow = n - 1
	}
	if m.cursorRow < 0 {
		m.cursorRow = 0
	}
	if m.cursorCol < 0 {
		m.cursorCol = 0
	}
	if m.cursorCol >= len(inventory.Fields) {
		m.cursorCol = len(inventory.Fields) - 1
	}
}

func (m appModel) selectedRow() (inventory.RowView, bool) {
	rows := m.scr.snapshot().rows
	if m.cursorRow < 0 || m.cursorRow >= len(rows) {
		return inventory.RowView{}, false
	}
	return rows[m.cursorRow], true
}

func (m appModel) saveTUIState() {
	st := &store.TUIState{Version: 1, Page: m.router.active.String()}
	if r, ok := m.selectedRow(); ok {
		st.SelectedRowID = r.ID
	}
	if err := m.store.SaveTUIState(st); err != nil {
		m.debugLogf("save tui state: %v", err)
	}
}
