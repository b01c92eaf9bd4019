// Package tui provides the Bubble Tea practice interface.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuidrill/internal/charset"
	"github.com/verte-zerg/tuidrill/internal/model"
	"github.com/verte-zerg/tuidrill/internal/session"
	"github.com/verte-zerg/tuidrill/internal/settings"
	"github.com/verte-zerg/tuidrill/internal/stats"
)

type view int

const (
	viewPractice view = iota
	viewPicker
	viewRecords
)

type tickMsg struct {
	generation uint64
}

func tick(generation uint64) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{generation: generation}
	})
}

// Model implements the Bubble Tea practice UI on top of a session engine.
type Model struct {
	engine  *session.Engine
	catalog *charset.Catalog
	prefs   *settings.Prefs

	theme  model.Theme
	styles styles
	keys   keyMap
	help   help.Model

	view    view
	picker  picker
	records recordsPanel

	width  int
	height int
	errMsg string
}

// NewModel constructs the practice TUI.
func NewModel(engine *session.Engine, catalog *charset.Catalog, prefs *settings.Prefs, theme model.Theme) *Model {
	if !theme.Valid() {
		theme = model.ThemeDark
	}
	return &Model{
		engine:  engine,
		catalog: catalog,
		prefs:   prefs,
		theme:   theme,
		styles:  newStyles(theme),
		keys:    newKeyMap(),
		help:    help.New(),
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.view == viewRecords {
			m.records.table.SetHeight(recordsTableHeight(msg.Height))
		}
		return m, nil
	case tickMsg:
		if m.engine.Tick(msg.generation) {
			return m, tick(msg.generation)
		}
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		switch m.view {
		case viewPicker:
			return m.updatePicker(msg)
		case viewRecords:
			return m.updateRecords(msg)
		default:
			return m.updatePractice(msg)
		}
	default:
		return m, nil
	}
}

func (m *Model) updatePractice(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()
	running := m.engine.State() == session.StateRunning
	switch {
	case key.Matches(msg, m.keys.Reset):
		m.setErr(m.engine.Reset())
		return m, nil
	case key.Matches(msg, m.keys.Theme):
		m.theme = toggleTheme(m.theme)
		m.styles = newStyles(m.theme)
		m.prefs.SaveTheme(ctx, m.theme)
		return m, nil
	case key.Matches(msg, m.keys.Settings):
		if running {
			return m, nil
		}
		m.picker = newPicker(m.catalog.All(), m.engine.Snapshot().CharSet.ID)
		m.view = viewPicker
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Records):
		if running {
			return m, nil
		}
		m.openRecords()
		return m, nil
	}

	events := keyEvents(msg)
	if len(events) == 0 {
		return m, nil
	}
	before := m.engine.State()
	var snap session.Snapshot
	for _, ev := range events {
		snap = m.engine.HandleKey(ctx, ev)
	}
	if before != session.StateRunning && snap.State == session.StateRunning {
		return m, tick(snap.Generation)
	}
	return m, nil
}

func (m *Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.view = viewPractice
		return m, nil
	case key.Matches(msg, m.keys.Up):
		m.picker.move(-1)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.picker.move(1)
		return m, nil
	case key.Matches(msg, m.keys.Select):
		cs, ok := m.picker.selected()
		if !ok {
			return m, nil
		}
		if err := m.engine.ChangeTarget(cs); err != nil {
			m.setErr(err)
			return m, nil
		}
		m.prefs.SaveCharSet(context.Background(), cs.ID)
		m.errMsg = ""
		m.view = viewPractice
		return m, nil
	}
	var cmd tea.Cmd
	m.picker.input, cmd = m.picker.input.Update(msg)
	m.picker.filter()
	return m, cmd
}

func (m *Model) updateRecords(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.records.confirm {
		switch {
		case key.Matches(msg, m.keys.Confirm):
			m.setErr(m.engine.ClearRecords(context.Background()))
			m.openRecords()
		case key.Matches(msg, m.keys.Cancel):
			m.records.confirm = false
		}
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Records):
		m.view = viewPractice
		return m, nil
	case key.Matches(msg, m.keys.Clear):
		if m.records.count > 0 {
			m.records.confirm = true
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.records.table, cmd = m.records.table.Update(msg)
	return m, cmd
}

func (m *Model) openRecords() {
	m.records = newRecordsPanel(m.engine.Snapshot().Records, m.catalog.Name, m.styles, m.height)
	m.view = viewRecords
}

func (m *Model) setErr(err error) {
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.errMsg = ""
}

// keyEvents maps a terminal key to engine key names. Pasted text and
// modified keys are ignored.
func keyEvents(msg tea.KeyMsg) []string {
	if msg.Paste || msg.Alt {
		return nil
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyDelete:
		return []string{session.KeyBackspace}
	case tea.KeySpace:
		return []string{" "}
	case tea.KeyRunes:
		out := make([]string, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			out = append(out, string(r))
		}
		return out
	default:
		return nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	switch m.view {
	case viewPicker:
		body := m.styles.panel.Render(m.picker.view(m.styles, m.engine.Snapshot().CharSet.ID))
		return m.place(body, m.errLine(), m.help.View(pickerHelp{k: m.keys}))
	case viewRecords:
		body := m.styles.panel.Render(m.records.view(m.styles))
		return m.place(body, m.errLine(), m.help.View(recordsHelp{k: m.keys, confirm: m.records.confirm}))
	default:
		return m.practiceView()
	}
}

func (m *Model) practiceView() string {
	snap := m.engine.Snapshot()
	targetRunes := []rune(snap.Target)
	inputRunes := []rune(snap.Input)
	cursorIndex := -1
	if snap.State != session.StateComplete && len(inputRunes) < len(targetRunes) {
		cursorIndex = len(inputRunes)
	}
	styledRunes := buildStyledRunes(targetRunes, inputRunes, cursorIndex, m.styles)
	if m.width == 0 || m.height == 0 {
		return renderStyledRunes(styledRunes)
	}
	contentWidth := int(float64(m.width) * 0.70)
	if contentWidth < 2 {
		contentWidth = 2
	}
	// One column is kept free for the trailing space of a wrapped line.
	parts := []string{
		m.styles.header.Render(snap.CharSet.Name),
		"",
		wrapStyledRunes(styledRunes, contentWidth-1),
	}
	if snap.State == session.StateComplete {
		parts = append(parts, "", m.styles.complete.Render(completionLine(snap)))
	}
	if line := m.errLine(); line != "" {
		parts = append(parts, "", line)
	}
	content := lipgloss.NewStyle().Width(contentWidth).Render(strings.Join(parts, "\n"))
	return m.place(content, m.renderFooter(snap), m.help.View(practiceHelp{k: m.keys}))
}

func (m *Model) errLine() string {
	if m.errMsg == "" {
		return ""
	}
	return m.styles.errorText.Render(m.errMsg)
}

// place centers body and pins the non-empty footer lines to the bottom.
func (m *Model) place(body string, footers ...string) string {
	if m.width == 0 || m.height == 0 {
		return strings.Join(append([]string{body}, footers...), "\n")
	}
	lines := make([]string, 0, len(footers))
	for _, f := range footers {
		if f != "" {
			lines = append(lines, lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, f))
		}
	}
	if m.height < len(lines)+3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
	}
	out := lipgloss.Place(m.width, m.height-len(lines), lipgloss.Center, lipgloss.Center, body)
	for _, line := range lines {
		out += "\n" + line
	}
	return out
}

func (m *Model) renderFooter(snap session.Snapshot) string {
	total := utf8.RuneCountInString(snap.Target)
	if total == 0 {
		return ""
	}
	progress := utf8.RuneCountInString(snap.Input) * 100 / total
	if progress > 100 {
		progress = 100
	}
	segments := []string{
		fmt.Sprintf("Progress %d%%", progress),
		fmt.Sprintf("Time %ds", snap.ElapsedSeconds),
		fmt.Sprintf("Mistakes %d", snap.Mistakes),
	}
	if best, ok := bestFor(snap.Records, snap.CharSet.ID); ok {
		segments = append(segments, fmt.Sprintf("Best %ds · %d mistakes", best.ElapsedSeconds, best.Mistakes))
	} else {
		segments = append(segments, "Best -")
	}
	return m.styles.footer.Render(strings.Join(segments, "  "))
}

func completionLine(snap session.Snapshot) string {
	chars := utf8.RuneCountInString(snap.Target)
	acc := stats.Accuracy(chars, snap.Mistakes)
	cpm := stats.CharsPerMinute(chars, snap.ElapsedSeconds)
	return fmt.Sprintf("Done in %ds · %d mistakes · %.1f%% accuracy · %.0f chars/min · ctrl+r for a new text",
		snap.ElapsedSeconds, snap.Mistakes, acc*100, cpm)
}

// bestFor returns the first record for charSetID in an already ranked list.
func bestFor(recs []model.Record, charSetID string) (model.Record, bool) {
	for _, rec := range recs {
		if rec.CharSetID == charSetID {
			return rec, true
		}
	}
	return model.Record{}, false
}
