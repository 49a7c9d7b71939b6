package tui

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// debugLogf appends one line to $FISHINV_TUI_DEBUG_LOG when set. Errors are
// dropped; the log must never disturb the UI.
func (m appModel) debugLogf(format string, args ...any) {
	path := strings.TrimSpace(m.debugLogPath)
	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = fmt.Fprintf(f, "%s %s\n", time.Now().Format(time.RFC3339Nano), fmt.Sprintf(format, args...))
}
