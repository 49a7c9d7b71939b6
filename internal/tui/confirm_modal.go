package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type confirmModalFocus int

const (
	confirmFocusConfirm confirmModalFocus = iota
	confirmFocusCancel
)

func (f confirmModalFocus) toggle() confirmModalFocus {
	if f == confirmFocusConfirm {
		return confirmFocusCancel
	}
	return confirmFocusConfirm
}

// confirmKind is what a confirm modal will do when accepted.
type confirmKind int

const (
	confirmNone confirmKind = iota
	confirmDelete
	confirmQuit
)

type confirmState struct {
	kind  confirmKind
	rowID int64
	focus confirmModalFocus
}

func renderConfirmModal(width int, title string, body string, confirmLabel string, cancelLabel string, focus confirmModalFocus) string {
	// No nested borders: some terminals show background artifacts inside a
	// modal with a background color.
	btnBase := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorSurfaceFg).
		Background(colorControlBg)
	btnActive := btnBase.
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(true)

	confirm := btnBase.Render(confirmLabel)
	cancel := btnBase.Render(cancelLabel)
	if focus == confirmFocusConfirm {
		confirm = btnActive.Render(confirmLabel)
	}
	if focus == confirmFocusCancel {
		cancel = btnActive.Render(cancelLabel)
	}

	sep := lipgloss.NewStyle().Background(colorControlBg).Render(" ")
	controls := lipgloss.JoinHorizontal(lipgloss.Top, confirm, sep, cancel)

	bodyW := modalBodyWidth(width)
	help := styleMuted().Width(bodyW).Render("tab: focus   enter: select   y/n   esc: cancel")

	content := strings.Join([]string{
		body,
		"",
		controls,
		"",
		help,
	}, "\n")
	return renderModalBox(width, title, content)
}

func (m appModel) renderConfirm() string {
	switch m.confirm.kind {
	case confirmDelete:
		return renderConfirmModal(m.width, "행 삭제", "정말 삭제할까요? (ID:"+itoa64(m.confirm.rowID)+")", "삭제", "취소", m.confirm.focus)
	case confirmQuit:
		return renderConfirmModal(m.width, "종료", "저장되지 않은 변경이 있습니다. 종료할까요?", "종료", "취소", m.confirm.focus)
	}
	return ""
}
