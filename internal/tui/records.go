package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuidrill/internal/model"
	"github.com/verte-zerg/tuidrill/internal/stats"
)

type recordsPanel struct {
	table   table.Model
	count   int
	confirm bool
}

func newRecordsPanel(recs []model.Record, nameOf func(string) string, st styles, height int) recordsPanel {
	columns := []table.Column{
		{Title: "#", Width: 5},
		{Title: "Time", Width: 7},
		{Title: "Mistakes", Width: 9},
		{Title: "Set", Width: 24},
		{Title: "Date", Width: 16},
	}
	rows := make([]table.Row, 0, len(recs))
	for i, rec := range recs {
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			fmt.Sprintf("%ds", rec.ElapsedSeconds),
			strconv.Itoa(rec.Mistakes),
			nameOf(rec.CharSetID),
			stats.FormatDate(rec),
		})
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(recordsTableHeight(height)),
	)
	t.SetStyles(recordsTableStyles(st))
	return recordsPanel{table: t, count: len(recs)}
}

func recordsTableHeight(height int) int {
	if height <= 0 {
		return 10
	}
	return maxInt(3, height-8)
}

func recordsTableStyles(st styles) table.Styles {
	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(st.footer.GetForeground()).
		Bold(true)
	ts.Selected = st.selected
	return ts
}

func (p recordsPanel) view(st styles) string {
	title := st.title.Render(fmt.Sprintf("Records (%d saved)", p.count))
	if p.count == 0 {
		return strings.Join([]string{title, "", st.footer.Render("no records yet; finish a text to set one")}, "\n")
	}
	lines := []string{title, "", p.table.View()}
	if p.confirm {
		lines = append(lines, "", st.errorText.Render("Clear all records? (y/n)"))
	}
	return strings.Join(lines, "\n")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
