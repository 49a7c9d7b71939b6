package tui

import (
	"fmt"
	"strconv"
	"strings"

	"fishinv/internal/autosave"
	"fishinv/internal/docs"
	"fishinv/internal/inventory"
	"fishinv/internal/model"
	"fishinv/internal/notify"

	"github.com/charmbracelet/lipgloss"
)

const (
	colMarkW   = 2
	colFishW   = 14
	colSizeW   = 8
	colQtyW    = 10
	colUnitW   = 12
	colAmountW = 14
)

var fieldWidths = map[inventory.Field]int{
	inventory.FieldFish:      colFishW,
	inventory.FieldSize:      colSizeW,
	inventory.FieldQty:       colQtyW,
	inventory.FieldUnitPrice: colUnitW,
}

func itoa64(n int64) string { return strconv.FormatInt(n, 10) }

func (m appModel) View() string {
	if md, ok := m.center.Modal(); ok {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, renderNotifyModal(m.width, md))
	}
	if m.confirm.kind != confirmNone {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.renderConfirm())
	}

	header := m.renderNav()
	footer := m.renderFooter()
	toasts := m.renderToasts()

	bodyH := m.height - lipgloss.Height(header) - lipgloss.Height(footer) - 1
	if toasts != "" {
		bodyH -= lipgloss.Height(toasts)
	}
	if bodyH < 1 {
		bodyH = 1
	}

	var body string
	switch m.router.active {
	case pageInventory:
		body = m.renderInventory()
	case pageSettings:
		body = m.renderSettings()
	case pageHelp:
		body = m.renderHelp(bodyH)
	default:
		body = m.renderDashboard()
	}

	parts := []string{header, normalizePane(body, m.width, bodyH)}
	if toasts != "" {
		parts = append(parts, toasts)
	}
	parts = append(parts, styleMuted().Render(strings.Repeat(glyphHRule(), max(m.width, 1))), footer)
	return strings.Join(parts, "\n")
}

func (m appModel) renderNav() string {
	active := lipgloss.NewStyle().
		Padding(0, 1).
		Bold(true).
		Foreground(colorAccentFg).
		Background(colorAccent)
	inactive := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorChromeMutedFg)

	tabs := make([]string, 0, len(pageDefs)+1)
	tabs = append(tabs, lipgloss.NewStyle().Bold(true).Padding(0, 1).Render("수산 재고"))
	for i, d := range pageDefs {
		label := fmt.Sprintf("%d %s", i+1, d.label)
		if d.page == m.router.active {
			tabs = append(tabs, active.Render(label))
		} else {
			tabs = append(tabs, inactive.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m appModel) renderFooter() string {
	st := m.scr.snapshot()
	parts := []string{}
	if st.status != "" {
		parts = append(parts, st.status)
	}
	if st.dirtyLabel != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(colorDirty).Render(st.dirtyLabel))
	}
	parts = append(parts, "자동저장: "+autosaveLabel(m.autosave.Config()))
	if m.busy != "" {
		parts = append(parts, m.busy)
	}
	return normalizePane(strings.Join(parts, "  │  "), m.width, 1)
}

func autosaveLabel(cfg autosave.Config) string {
	if !cfg.Enabled {
		return "끔"
	}
	return fmt.Sprintf("%d분마다", cfg.IntervalMinutes)
}

func (m appModel) renderToasts() string {
	ts := m.center.Toasts()
	if len(ts) == 0 {
		return ""
	}
	lines := make([]string, 0, len(ts))
	for _, t := range ts {
		c := colorAccent
		if t.Kind == notify.KindSuccess {
			c = colorSuccess
		} else if t.Kind == notify.KindError {
			c = colorError
		}
		title := lipgloss.NewStyle().Bold(true).Foreground(c).Render(t.Title)
		lines = append(lines, fitCell(title+" "+t.Message, m.width))
	}
	return strings.Join(lines, "\n")
}

func (m appModel) renderDashboard() string {
	s := m.ctrl.Summary()
	lines := []string{
		lipgloss.NewStyle().Bold(true).Render("대시보드"),
		"",
	}
	if !s.Loaded {
		lines = append(lines, styleMuted().Render("재고 페이지(2)를 열면 목록을 불러옵니다."))
	} else {
		lines = append(lines,
			fmt.Sprintf("품목 수     %d건", s.Rows),
			fmt.Sprintf("총 수량     %s", model.FormatMoney(s.TotalQty)),
			fmt.Sprintf("총 금액     %s", model.FormatMoney(s.TotalAmount)),
			fmt.Sprintf("변경된 행   %d개", s.Dirty),
		)
	}
	origin := m.opts.BaseOrigin
	if origin == "" {
		origin = "(same origin)"
	}
	lines = append(lines,
		"",
		fmt.Sprintf("API         %s (%s)", origin, m.opts.OriginRule),
		fmt.Sprintf("숫자 입력   %s", m.ctrl.Policy().Name()),
		fmt.Sprintf("자동저장    %s", autosaveLabel(m.autosave.Config())),
	)
	return strings.Join(lines, "\n")
}

func (m appModel) renderInventory() string {
	st := m.scr.snapshot()
	head := lipgloss.NewStyle().Bold(true).Foreground(colorChromeMutedFg)
	var b strings.Builder
	b.WriteString(head.Render(
		fitCell("", colMarkW) + " " +
			fitCell("어종", colFishW) + " " +
			fitCell("크기", colSizeW) + " " +
			fitCellRight("수량", colQtyW) + " " +
			fitCellRight("단가", colUnitW) + " " +
			fitCellRight("금액", colAmountW)))
	b.WriteString("\n")

	if len(st.rows) == 0 {
		b.WriteString(styleMuted().Render("행이 없습니다. a: 행 추가   r: 새로고침"))
		b.WriteString("\n")
	}

	selRow := lipgloss.NewStyle().Background(colorSelectedBg).Foreground(colorSelectedFg)
	selCell := lipgloss.NewStyle().Reverse(true)
	editCell := lipgloss.NewStyle().Background(colorInputBg).Underline(true)
	dirty := lipgloss.NewStyle().Foreground(colorDirty)

	for i, r := range st.rows {
		mark := fitCell("", colMarkW)
		if r.Dirty {
			mark = dirty.Render(fitCell(glyphDirty(), colMarkW))
		}
		cells := make([]string, 0, len(inventory.Fields))
		for ci, f := range inventory.Fields {
			w := fieldWidths[f]
			v := r.Value(f)
			if m.editing && r.ID == m.editRowID && f == m.editField {
				cells = append(cells, editCell.Render(fitCell(m.cell.Value()+"▏", w)))
				continue
			}
			var txt string
			if f == inventory.FieldQty || f == inventory.FieldUnitPrice {
				txt = fitCellRight(v, w)
			} else {
				txt = fitCell(v, w)
			}
			if i == m.cursorRow && ci == m.cursorCol {
				txt = selCell.Render(txt)
			}
			cells = append(cells, txt)
		}
		line := mark + " " + strings.Join(cells, " ") + " " + fitCellRight(r.Amount, colAmountW)
		if i == m.cursorRow {
			line = selRow.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.adding {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Bold(true).Render("행 추가"))
		b.WriteString("\n")
		for i, in := range m.addInputs {
			prefix := "  "
			if i == m.addFocus {
				prefix = glyphCursor() + " "
			}
			b.WriteString(prefix + fitCell(addFieldLabels[i], 6) + " " + in.View())
			b.WriteString("\n")
		}
		b.WriteString(styleMuted().Render("tab: 다음 칸   enter: 추가   esc: 닫기"))
		b.WriteString("\n")
	} else {
		b.WriteString("\n")
		b.WriteString(styleMuted().Render("enter: 편집  s: 저장  S: 일괄 저장  a: 추가  d: 삭제  r: 새로고침"))
	}
	return b.String()
}

func (m appModel) renderSettings() string {
	cfg := m.autosave.Config()
	focus := func(f settingsFocus) string {
		if m.settingsFocus == f {
			return glyphCursor() + " "
		}
		return "  "
	}
	opts := make([]string, 0, len(autosave.Intervals))
	for _, v := range autosave.Intervals {
		label := fmt.Sprintf("%d분", v)
		if v == cfg.IntervalMinutes {
			label = lipgloss.NewStyle().Bold(true).Reverse(true).Render(label)
		}
		opts = append(opts, label)
	}
	lines := []string{
		lipgloss.NewStyle().Bold(true).Render("설정"),
		"",
		focus(settingsFocusEnabled) + glyphCheck(cfg.Enabled) + " 자동저장 사용",
		focus(settingsFocusInterval) + "저장 주기  " + strings.Join(opts, " "),
		"",
		styleMuted().Render("space: 켜기/끄기   ←/→: 주기 변경"),
		"",
		fmt.Sprintf("글꼴 기호    %s", glyphsName(glyphs())),
		fmt.Sprintf("설정 폴더    %s", m.store.Dir),
	}
	return strings.Join(lines, "\n")
}

func (m appModel) renderHelp(h int) string {
	out := renderMarkdown(docs.Join(docs.HelpPageTopics...), max(m.width-2, 20))
	lines := strings.Split(out, "\n")
	off := m.helpScroll
	if off > len(lines)-1 {
		off = max(len(lines)-1, 0)
	}
	lines = lines[off:]
	if h > 0 && len(lines) > h {
		lines = lines[:h]
	}
	return strings.Join(lines, "\n")
}
