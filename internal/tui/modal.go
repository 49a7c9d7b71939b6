package tui

import (
	"math"
	"strings"

	"fishinv/internal/notify"

	"github.com/charmbracelet/lipgloss"
)

const (
	modalMaxW = 64
	modalMinW = 24
)

func modalWidth(termW int) int {
	w := termW - 4
	if w > modalMaxW {
		w = modalMaxW
	}
	if w < modalMinW {
		w = modalMinW
	}
	return w
}

// modalBodyWidth is the usable text width inside a modal box.
func modalBodyWidth(termW int) int {
	return modalWidth(termW) - 4
}

func renderModalBox(termW int, title string, content string) string {
	w := modalWidth(termW)
	header := lipgloss.NewStyle().
		Width(w-2).
		Padding(0, 1).
		Bold(true).
		Foreground(colorModalHeaderFg).
		Background(colorModalHeaderBg).
		Render(title)
	body := lipgloss.NewStyle().
		Width(w-2).
		Padding(1, 1).
		Foreground(colorModalSurfaceFg).
		Background(colorModalSurfaceBg).
		Render(content)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Render(lipgloss.JoinVertical(lipgloss.Left, header, body))
}

func renderNotifyModal(termW int, md notify.Modal) string {
	bodyW := modalBodyWidth(termW)
	msg := lipgloss.NewStyle().Width(bodyW).Render(md.Message)
	ok := lipgloss.NewStyle().
		Padding(0, 1).
		Bold(true).
		Foreground(colorAccentFg).
		Background(colorAccent).
		Render("확인")
	help := styleMuted().Width(bodyW).Render("enter: 확인   esc/x: 닫기")
	return renderModalBox(termW, md.Title, strings.Join([]string{msg, "", ok, "", help}, "\n"))
}

type rect struct{ x, y, w, h int }

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// centeredRect is where lipgloss.Place(termW, termH, Center, Center, box) puts box.
func centeredRect(termW, termH int, box string) rect {
	bw := lipgloss.Width(box)
	bh := lipgloss.Height(box)
	x := int(math.Round(float64(termW-bw) * 0.5))
	y := int(math.Round(float64(termH-bh) * 0.5))
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return rect{x: x, y: y, w: bw, h: bh}
}
