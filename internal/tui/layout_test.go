package tui

import (
	"strings"
	"testing"

	xansi "github.com/charmbracelet/x/ansi"
)

func TestFitCell_WideRunes(t *testing.T) {
	got := fitCell("고등어", 10)
	if w := xansi.StringWidth(got); w != 10 {
		t.Fatalf("expected width 10, got %d (%q)", w, got)
	}
	if !strings.HasPrefix(got, "고등어") {
		t.Fatalf("unexpected cell %q", got)
	}

	got = fitCell("고등어고등어", 7)
	if w := xansi.StringWidth(got); w != 7 {
		t.Fatalf("expected truncated width 7, got %d (%q)", w, got)
	}
	if !strings.HasSuffix(got, "…") {
		t.Fatalf("expected ellipsis, got %q", got)
	}

	if fitCell("abc", 0) != "" {
		t.Fatalf("expected empty cell for zero width")
	}
}

func TestFitCellRight(t *testing.T) {
	if got := fitCellRight("6,000", 8); got != "   6,000" {
		t.Fatalf("unexpected right-aligned cell %q", got)
	}
}

func TestNormalizePane(t *testing.T) {
	got := normalizePane("a\nbb\nccc", 2, 4)
	lines := strings.Split(got, "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	for i, ln := range lines {
		if xansi.StringWidth(ln) != 2 {
			t.Fatalf("line %d width %d (%q)", i, xansi.StringWidth(ln), ln)
		}
	}
}
