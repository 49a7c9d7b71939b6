package tui

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

// normalizePane forces s to be exactly width columns wide (ANSI-aware) and height
// lines tall.
func normalizePane(s string, width, height int) string {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	lines := strings.Split(s, "\n")
	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}
	for i := range lines {
		lines[i] = fitCell(lines[i], width)
	}
	return strings.Join(lines, "\n")
}

// fitCell truncates (with an ellipsis) or pads one line to exactly width columns.
// Hangul and other wide runes count as two columns.
func fitCell(s string, width int) string {
	if width <= 0 {
		return ""
	}
	// Bound the width computation on huge strings.
	if len(s) > 8192 {
		s = xansi.Cut(s, 0, width+1)
	}
	w := xansi.StringWidth(s)
	if w > width {
		if width == 1 {
			s = xansi.Cut(s, 0, 1)
		} else {
			s = xansi.Cut(s, 0, width-1) + "…"
		}
		w = xansi.StringWidth(s)
	}
	if w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}

// fitCellRight is fitCell with right alignment (numbers).
func fitCellRight(s string, width int) string {
	if width <= 0 {
		return ""
	}
	w := xansi.StringWidth(s)
	if w >= width {
		return fitCell(s, width)
	}
	return strings.Repeat(" ", width-w) + s
}
