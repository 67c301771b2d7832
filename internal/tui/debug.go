package tui

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// debugLogf appends a line to CREWDECK_TUI_DEBUG_LOG. Best-effort: the TUI
// owns the terminal, so debug output can never go to stdout/stderr.
func (m appModel) debugLogf(format string, args ...any) {
	if !m.debugEnabled || m.debugLogPath == "" {
		return
	}
	f, err := os.OpenFile(m.debugLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()
	fmt.Fprintf(f, "%s "+format+"\n",
		append([]any{time.Now().UTC().Format("15:04:05.000")}, args...)...)
}

// debugKeyMsg traces raw key input, mainly for diagnosing modifier keys
// across terminals.
func (m appModel) debugKeyMsg(k tea.KeyMsg) {
	if !m.debugEnabled {
		return
	}
	m.debugLogf("key view=%d modal=%d palette=%v str=%q type=%v alt=%v runes=%q",
		int(m.view), int(m.modal), m.pal.Visible(), k.String(), k.Type, k.Alt, string(k.Runes))
}
