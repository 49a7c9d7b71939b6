package tui

import (
	"os"
	"strings"
	"sync"
)

// Some terminal fonts render box/marker glyphs poorly; an ASCII set is available
// via FISHINV_TUI_GLYPHS=ascii or tui.glyphs: ascii.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

func parseGlyphSet(v string) (glyphSet, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "unicode", "utf8":
		return glyphSetUnicode, true
	case "ascii":
		return glyphSetASCII, true
	}
	return glyphSetUnicode, false
}

// applyGlyphPreference: the env var wins over the configured value; unknown values are ignored.
func applyGlyphPreference(configured string) {
	for _, v := range []string{os.Getenv("FISHINV_TUI_GLYPHS"), configured} {
		if gs, ok := parseGlyphSet(v); ok {
			setGlyphs(gs)
			return
		}
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	gs := currentGlyphs
	glyphsMu.RUnlock()
	return gs
}

func glyphsName(gs glyphSet) string {
	switch gs {
	case glyphSetASCII:
		return "ASCII"
	default:
		return "Unicode"
	}
}

func glyphDirty() string {
	if glyphs() == glyphSetASCII {
		return "*"
	}
	return "●"
}

func glyphCursor() string {
	if glyphs() == glyphSetASCII {
		return ">"
	}
	return "▸"
}

func glyphCheck(on bool) string {
	if glyphs() == glyphSetASCII {
		if on {
			return "[x]"
		}
		return "[ ]"
	}
	if on {
		return "☑"
	}
	return "☐"
}

func glyphHRule() string {
	if glyphs() == glyphSetASCII {
		return "-"
	}
	return "─"
}
