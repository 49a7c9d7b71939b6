package tui

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"fishinv/internal/api"
	"fishinv/internal/autosave"
	"fishinv/internal/model"
	"fishinv/internal/notify"
	"fishinv/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

type testBackend struct {
	mu   sync.Mutex
	rows []model.InventoryRow
	puts int
}

func (b *testBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodGet:
		_ = json.NewEncoder(w).Encode(b.rows)
	case r.Method == http.MethodPost && r.URL.Path == "/api/inventory":
		var nr model.NewRow
		_ = json.NewDecoder(r.Body).Decode(&nr)
		if nr.Fish == "" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"fish is required"}`))
			return
		}
		row := model.InventoryRow{ID: int64(100 + len(b.rows)), Fish: nr.Fish, Size: nr.Size, Qty: nr.Qty, UnitPrice: nr.UnitPrice, Amount: nr.Qty * nr.UnitPrice}
		b.rows = append(b.rows, row)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(row)
	case r.Method == http.MethodPut:
		b.puts++
		var p model.RowPayload
		_ = json.NewDecoder(r.Body).Decode(&p)
		for i := range b.rows {
			if b.rows[i].ID == p.ID {
				b.rows[i] = model.InventoryRow{ID: p.ID, Fish: p.Fish, Size: p.Size, Qty: p.Qty, UnitPrice: p.UnitPrice, Amount: p.Qty * p.UnitPrice}
			}
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	case r.Method == http.MethodDelete:
		id := strings.TrimPrefix(r.URL.Path, "/api/inventory/")
		for i := range b.rows {
			if itoa64(b.rows[i].ID) == id {
				b.rows = append(b.rows[:i], b.rows[i+1:]...)
				break
			}
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

type stubTicker struct {
	period  time.Duration
	stopped bool
}

func (s *stubTicker) Stop() { s.stopped = true }

type tickerLog struct{ tickers []*stubTicker }

func (l *tickerLog) new(d time.Duration, _ func()) autosave.Ticker {
	t := &stubTicker{period: d}
	l.tickers = append(l.tickers, t)
	return t
}

func (l *tickerLog) live() []*stubTicker {
	var out []*stubTicker
	for _, t := range l.tickers {
		if !t.stopped {
			out = append(out, t)
		}
	}
	return out
}

func newTestModel(t *testing.T, rows ...model.InventoryRow) (appModel, *testBackend, *tickerLog, *store.Prefs) {
	t.Helper()
	b := &testBackend{rows: rows}
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	prefs, err := store.Store{Dir: dir}.OpenPrefs()
	if err != nil {
		t.Fatalf("open prefs: %v", err)
	}
	tl := &tickerLog{}
	m := newAppModel(context.Background(), Options{
		Backend:    api.New(api.Options{BaseURL: srv.URL}),
		Prefs:      prefs,
		Store:      store.Store{Dir: dir},
		BaseOrigin: srv.URL,
		OriginRule: "override",
		NewTicker:  tl.new,
	})
	return m, b, tl, prefs
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends keys one by one, running any returned command to completion and
// feeding its message back (like the tea runtime would).
func press(t *testing.T, m appModel, keys ...string) appModel {
	t.Helper()
	for _, k := range keys {
		mAny, cmd := m.Update(keyMsg(k))
		m = mAny.(appModel)
		m = drain(m, cmd)
	}
	return m
}

func drain(m appModel, cmd tea.Cmd) appModel {
	if cmd == nil {
		return m
	}
	msg := cmd()
	switch msg.(type) {
	case opDoneMsg, redrawMsg:
		mAny, next := m.Update(msg)
		return drain(mAny.(appModel), next)
	}
	return m
}

var mackerel = model.InventoryRow{ID: 1, Fish: "고등어", Size: "중", Qty: 2, UnitPrice: 3000, Amount: 6000}

func TestSelectInventoryPage_LoadsRows(t *testing.T) {
	m, _, _, _ := newTestModel(t, mackerel)
	if m.router.active != pageDashboard {
		t.Fatalf("expected dashboard start page, got %v", m.router.active)
	}

	m = press(t, m, "2")
	if m.router.active != pageInventory {
		t.Fatalf("expected inventory page, got %v", m.router.active)
	}
	out := m.View()
	if !strings.Contains(out, "고등어") || !strings.Contains(out, "6,000") {
		t.Fatalf("expected loaded row in view:\n%s", out)
	}
	if strings.Contains(out, glyphDirty()) {
		t.Fatalf("expected no dirty marker:\n%s", out)
	}
	if !strings.Contains(out, "총 1건") {
		t.Fatalf("expected count status:\n%s", out)
	}
}

func TestEditCells_LivePreviewAndDirtyCounter(t *testing.T) {
	m, _, _, _ := newTestModel(t, mackerel)
	m = press(t, m, "2", "l", "l", "enter", "backspace", "3", "enter")
	m = press(t, m, "l", "enter", "backspace", "backspace", "backspace", "backspace", "1", "5", "0", "0", "enter")

	st := m.scr.snapshot()
	if len(st.rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(st.rows))
	}
	if st.rows[0].Qty != "3" || st.rows[0].UnitPrice != "1500" {
		t.Fatalf("unexpected inputs: %+v", st.rows[0])
	}
	if st.rows[0].Amount != "4,500" {
		t.Fatalf("expected preview 4,500, got %q", st.rows[0].Amount)
	}
	if st.dirtyLabel != "● 변경된 행: 1개" {
		t.Fatalf("unexpected dirty label %q", st.dirtyLabel)
	}
	if !m.ctrl.IsDirty(1) {
		t.Fatalf("expected row 1 dirty")
	}
}

func TestSaveRow_ClearsDirtyAndShowsModal(t *testing.T) {
	m, b, _, _ := newTestModel(t, mackerel)
	m = press(t, m, "2", "l", "l", "enter", "backspace", "5", "esc", "s")

	if b.puts != 1 {
		t.Fatalf("expected one PUT, got %d", b.puts)
	}
	if m.ctrl.HasUnsaved() {
		t.Fatalf("expected clean state after save")
	}
	md, ok := m.center.Modal()
	if !ok || md.Title != "성공" || md.Message != "개별 저장(ID:1) 완료" {
		t.Fatalf("unexpected modal %+v (open=%v)", md, ok)
	}
	if !strings.Contains(m.View(), "개별 저장(ID:1) 완료") {
		t.Fatalf("expected modal in view")
	}

	// Keys are swallowed while the modal is open.
	m = press(t, m, "3")
	if m.router.active != pageInventory {
		t.Fatalf("expected page unchanged under modal")
	}
	m = press(t, m, "esc")
	if _, ok := m.center.Modal(); ok {
		t.Fatalf("expected modal closed by esc")
	}
	if !strings.Contains(m.View(), "15,000") {
		t.Fatalf("expected reloaded amount in view:\n%s", m.View())
	}
}

func TestNotifyModal_MouseClickOutsideCloses(t *testing.T) {
	m, _, _, _ := newTestModel(t)
	m.center.ShowModal("실패", "행 추가 실패\n\nHTTP 500")

	box := renderNotifyModal(m.width, mustModal(t, m))
	r := centeredRect(m.width, m.height, box)

	mAny, _ := m.Update(tea.MouseMsg{X: r.x + 1, Y: r.y + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = mAny.(appModel)
	if _, ok := m.center.Modal(); !ok {
		t.Fatalf("click inside the box must not close the modal")
	}

	mAny, _ = m.Update(tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = mAny.(appModel)
	if _, ok := m.center.Modal(); ok {
		t.Fatalf("click outside the box must close the modal")
	}
}

func TestNotifyModal_EnterAndXClose(t *testing.T) {
	m, _, _, _ := newTestModel(t)
	for _, k := range []string{"enter", "x"} {
		m.center.ShowModal("성공", "ok")
		m = press(t, m, k)
		if _, ok := m.center.Modal(); ok {
			t.Fatalf("expected %q to close the modal", k)
		}
	}
}

func mustModal(t *testing.T, m appModel) notify.Modal {
	t.Helper()
	got, ok := m.center.Modal()
	if !ok {
		t.Fatalf("expected open modal")
	}
	return got
}

func TestDeleteRow_RequiresConfirmation(t *testing.T) {
	m, b, _, _ := newTestModel(t, mackerel)
	m = press(t, m, "2", "d")
	if m.confirm.kind != confirmDelete || m.confirm.rowID != 1 {
		t.Fatalf("expected delete confirm, got %+v", m.confirm)
	}

	// Default focus is cancel: enter backs out.
	m = press(t, m, "enter")
	if m.confirm.kind != confirmNone || len(b.rows) != 1 {
		t.Fatalf("expected cancelled delete; confirm=%+v rows=%d", m.confirm, len(b.rows))
	}

	m = press(t, m, "d", "y")
	if len(b.rows) != 0 {
		t.Fatalf("expected row deleted on server")
	}
	md, ok := m.center.Modal()
	if !ok || md.Message != "행 삭제(ID:1) 완료" {
		t.Fatalf("unexpected modal %+v", md)
	}
	m = press(t, m, "esc")
	if !strings.Contains(m.View(), "총 0건") {
		t.Fatalf("expected empty table after delete:\n%s", m.View())
	}
}

func TestQuit_WarnsWhenUnsaved(t *testing.T) {
	m, _, _, _ := newTestModel(t, mackerel)
	m = press(t, m, "2", "enter", "X", "esc")
	if !m.ctrl.HasUnsaved() {
		t.Fatalf("expected unsaved row")
	}

	mAny, cmd := m.Update(keyMsg("q"))
	m = mAny.(appModel)
	if cmd != nil || m.confirm.kind != confirmQuit {
		t.Fatalf("expected quit confirmation, got confirm=%+v", m.confirm)
	}
	m = press(t, m, "n")
	if m.confirm.kind != confirmNone {
		t.Fatalf("expected confirmation dismissed")
	}

	m = press(t, m, "q")
	mAny, cmd = m.Update(keyMsg("y"))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
	_ = mAny

	st, err := m.store.LoadTUIState()
	if err != nil {
		t.Fatalf("LoadTUIState: %v", err)
	}
	if st.Page != "inventory" || st.SelectedRowID != 1 {
		t.Fatalf("expected remembered page/row, got %+v", st)
	}
}

func TestQuit_ImmediateWhenClean(t *testing.T) {
	m, _, _, _ := newTestModel(t)
	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestSettings_AutosaveToggleAndInterval(t *testing.T) {
	m, _, tl, prefs := newTestModel(t)
	m = press(t, m, "3", "space")

	live := tl.live()
	if len(live) != 1 || live[0].period != 30*time.Minute {
		t.Fatalf("expected one 30m timer, got %d", len(live))
	}
	if v, _ := prefs.Get(autosave.KeyEnabled); v != "true" {
		t.Fatalf("expected enabled persisted, got %q", v)
	}

	m = press(t, m, "right")
	live = tl.live()
	if len(live) != 1 || live[0].period != 60*time.Minute {
		t.Fatalf("expected one 60m timer after change")
	}
	if v, _ := prefs.Get(autosave.KeyMinutes); v != "60" {
		t.Fatalf("expected 60 persisted, got %q", v)
	}
	if !strings.Contains(m.View(), "60분마다") {
		t.Fatalf("expected footer to show interval:\n%s", m.View())
	}

	m = press(t, m, "space")
	if len(tl.live()) != 0 {
		t.Fatalf("expected timer stopped when disabled")
	}
}

func TestTabCyclesPages(t *testing.T) {
	m, _, _, _ := newTestModel(t)
	m = press(t, m, "tab", "tab", "tab")
	if m.router.active != pageHelp {
		t.Fatalf("expected help, got %v", m.router.active)
	}
	m = press(t, m, "tab")
	if m.router.active != pageDashboard {
		t.Fatalf("expected wrap to dashboard, got %v", m.router.active)
	}
}

func TestToastDismissKey(t *testing.T) {
	m, _, _, _ := newTestModel(t)
	m.center.Toast("info", "a", "first", time.Hour)
	m.center.Toast("info", "b", "second", time.Hour)
	if !strings.Contains(m.View(), "second") {
		t.Fatalf("expected toast in view")
	}
	m = press(t, m, "x")
	ts := m.center.Toasts()
	if len(ts) != 1 || ts[0].Message != "first" {
		t.Fatalf("expected newest toast dismissed, got %+v", ts)
	}
}

func TestAddRowForm_ClearsOnSuccess(t *testing.T) {
	m, b, _, _ := newTestModel(t)
	m = press(t, m, "2", "a", "광", "tab", "대", "tab", "2", "tab", "9", "0", "0", "0")
	if !m.adding || m.addInputs[0].Value() != "광" || m.addInputs[3].Value() != "9000" {
		t.Fatalf("unexpected add form state: adding=%v", m.adding)
	}

	m = press(t, m, "enter")
	if len(b.rows) != 1 {
		t.Fatalf("expected row created on server")
	}
	if m.adding || m.addInputs[0].Value() != "" {
		t.Fatalf("expected add form cleared and closed")
	}
	md, ok := m.center.Modal()
	if !ok || md.Message != "행 추가 완료" {
		t.Fatalf("unexpected modal %+v", md)
	}
	m = press(t, m, "esc")
	if !strings.Contains(m.View(), "18,000") {
		t.Fatalf("expected new row amount in view:\n%s", m.View())
	}
}

func TestAddRowForm_KeepsValuesOnFailure(t *testing.T) {
	m, b, _, _ := newTestModel(t)
	m = press(t, m, "2", "a", "tab", "대", "enter")
	if len(b.rows) != 0 {
		t.Fatalf("unexpected rows on server")
	}
	md, ok := m.center.Modal()
	if !ok || md.Title != "실패" || !strings.Contains(md.Message, "fish is required") {
		t.Fatalf("expected failure modal, got %+v", md)
	}
	if !m.adding || m.addInputs[1].Value() != "대" {
		t.Fatalf("form must not be cleared on failure")
	}
}
