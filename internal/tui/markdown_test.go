package tui

import (
	"strings"
	"testing"
)

func TestMarkdownStyle_RespectsTUITheme(t *testing.T) {
	t.Setenv("FISHINV_TUI_MD_STYLE", "")
	t.Setenv("COLORFGBG", "")

	t.Setenv("FISHINV_TUI_THEME", "light")
	if got := markdownStyle(); got != "light" {
		t.Fatalf("expected light; got %q", got)
	}

	t.Setenv("FISHINV_TUI_THEME", "dark")
	if got := markdownStyle(); got != "dark" {
		t.Fatalf("expected dark; got %q", got)
	}
}

func TestMarkdownStyle_MDStyleOverridesTheme(t *testing.T) {
	t.Setenv("COLORFGBG", "")
	t.Setenv("FISHINV_TUI_THEME", "light")
	t.Setenv("FISHINV_TUI_MD_STYLE", "dark")
	if got := markdownStyle(); got != "dark" {
		t.Fatalf("expected dark; got %q", got)
	}
}

func TestMarkdownStyle_COLORFGBG(t *testing.T) {
	t.Setenv("FISHINV_TUI_MD_STYLE", "")
	t.Setenv("FISHINV_TUI_THEME", "")
	t.Setenv("COLORFGBG", "0;15")
	if got := markdownStyle(); got != "light" {
		t.Fatalf("expected light; got %q", got)
	}
	t.Setenv("COLORFGBG", "15;0")
	if got := markdownStyle(); got != "dark" {
		t.Fatalf("expected dark; got %q", got)
	}
}

func TestRenderMarkdown_ContainsText(t *testing.T) {
	t.Setenv("FISHINV_TUI_MD_STYLE", "dark")
	out := renderMarkdown("# 재고\n\nhello **world**", 40)
	if !strings.Contains(out, "hello") || !strings.Contains(out, "world") {
		t.Fatalf("unexpected render: %q", out)
	}
	if renderMarkdown("   ", 40) != "" {
		t.Fatalf("expected empty output for blank markdown")
	}
}
