package stats

import (
	"os"

	"golang.org/x/term"
)

const terminalWidthBackup = 80

// TerminalWidth returns the width of f when it is a terminal, or a fallback
// of 80 columns.
func TerminalWidth(f *os.File) int {
	if f == nil || !term.IsTerminal(int(f.Fd())) {
		return terminalWidthBackup
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

// TrendWidth is the sparkline width that fits next to the summary columns.
func TrendWidth(totalWidth int) int {
	const summaryColumns = 60
	width := totalWidth - summaryColumns
	if width < 10 {
		return 10
	}
	return width
}
