package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/sahilm/fuzzy"

	"github.com/verte-zerg/tuidrill/internal/model"
)

// picker lists the character sets, filtered by a fuzzy query over their id
// and name.
type picker struct {
	input   textinput.Model
	sets    []model.CharacterSet
	source  []string
	matches []int
	cursor  int
}

func newPicker(sets []model.CharacterSet, currentID string) picker {
	input := textinput.New()
	input.Prompt = "Filter: "
	input.Placeholder = "type to search"
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	input.Focus()

	source := make([]string, len(sets))
	for i, cs := range sets {
		source[i] = cs.ID + " " + cs.Name
	}
	p := picker{input: input, sets: sets, source: source}
	p.filter()
	for i, idx := range p.matches {
		if sets[idx].ID == currentID {
			p.cursor = i
			break
		}
	}
	return p
}

func (p *picker) filter() {
	query := strings.TrimSpace(p.input.Value())
	p.matches = p.matches[:0]
	if query == "" {
		for i := range p.sets {
			p.matches = append(p.matches, i)
		}
	} else {
		for _, match := range fuzzy.Find(query, p.source) {
			p.matches = append(p.matches, match.Index)
		}
	}
	if p.cursor >= len(p.matches) {
		p.cursor = len(p.matches) - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

func (p *picker) move(delta int) {
	if len(p.matches) == 0 {
		return
	}
	p.cursor = (p.cursor + delta + len(p.matches)) % len(p.matches)
}

func (p *picker) selected() (model.CharacterSet, bool) {
	if p.cursor < 0 || p.cursor >= len(p.matches) {
		return model.CharacterSet{}, false
	}
	return p.sets[p.matches[p.cursor]], true
}

func (p *picker) view(st styles, activeID string) string {
	lines := []string{st.title.Render("Character set"), p.input.View(), ""}
	if len(p.matches) == 0 {
		lines = append(lines, st.footer.Render("no matching character sets"))
	}
	for i, idx := range p.matches {
		cs := p.sets[idx]
		marker := "  "
		if cs.ID == activeID {
			marker = "* "
		}
		line := fmt.Sprintf("%s%-24s %s", marker, cs.Name, st.footer.Render(describe(cs)))
		if i == p.cursor {
			line = st.selected.Render(fmt.Sprintf("%s%-24s", marker, cs.Name)) + " " + st.footer.Render(describe(cs))
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func describe(cs model.CharacterSet) string {
	desc := cs.Description
	if desc == "" {
		desc = cs.Chars
	}
	if cs.Mode == model.ModeGroupedNumeric {
		return fmt.Sprintf("%s (%d groups of %d-%d)", desc, cs.Groups.GroupCount, cs.Groups.MinDigits, cs.Groups.MaxDigits)
	}
	return desc
}
