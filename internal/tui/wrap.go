package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const wrongSpace = '•'

type styledRune struct {
	s       string
	width   int
	isSpace bool
	// lineBreak ends the visual line after this rune.
	lineBreak bool
}

func isGap(r rune) bool {
	return r == ' ' || r == '\n'
}

// buildStyledRunes styles the target against the input. A line break in
// the target is typed as a space and rendered as one before the break.
// Input past the end of the target is shown in the incorrect style.
func buildStyledRunes(targetRunes, inputRunes []rune, cursorIndex int, st styles) []styledRune {
	words := findWords(targetRunes)
	currentWord := wordForCursor(words, cursorIndex)

	out := make([]styledRune, 0, len(targetRunes)+len(inputRunes))
	for i, target := range targetRunes {
		expected := target
		if expected == '\n' {
			expected = ' '
		}
		displayed := expected
		style := st.pending
		if i < len(inputRunes) {
			switch {
			case expected == ' ' && inputRunes[i] != ' ':
				displayed = wrongSpace
				style = st.incorrect
			case inputRunes[i] == expected:
				style = st.correct
			default:
				style = st.incorrect
			}
		} else if currentWord != nil && i >= currentWord.start && i < currentWord.end {
			style = st.currentWord
		}
		if i == cursorIndex && i >= len(inputRunes) {
			style = style.Underline(true)
		}
		out = append(out, styledRune{
			s:         style.Render(string(displayed)),
			width:     runewidth.RuneWidth(displayed),
			isSpace:   expected == ' ',
			lineBreak: target == '\n',
		})
	}
	for i := len(targetRunes); i < len(inputRunes); i++ {
		displayed := inputRunes[i]
		if displayed == ' ' {
			displayed = wrongSpace
		}
		out = append(out, styledRune{
			s:     st.incorrect.Render(string(displayed)),
			width: runewidth.RuneWidth(displayed),
		})
	}
	return out
}

type wordRange struct {
	start int
	end   int
}

func findWords(targetRunes []rune) []wordRange {
	words := []wordRange{}
	start := -1
	for i, r := range targetRunes {
		if isGap(r) {
			if start != -1 {
				words = append(words, wordRange{start: start, end: i})
				start = -1
			}
			continue
		}
		if start == -1 {
			start = i
		}
	}
	if start != -1 {
		words = append(words, wordRange{start: start, end: len(targetRunes)})
	}
	return words
}

func wordForCursor(words []wordRange, cursorIndex int) *wordRange {
	if len(words) == 0 || cursorIndex < 0 {
		return nil
	}
	for i, w := range words {
		if cursorIndex < w.end {
			return &words[i]
		}
	}
	return nil
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
		if item.lineBreak {
			b.WriteRune('\n')
		}
	}
	return b.String()
}

// wrapStyledRunes breaks lines at spaces so that no line exceeds width,
// honoring forced breaks. Words longer than width are split.
func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var out strings.Builder
	line := make([]styledRune, 0, len(runes))
	lineWidth := 0
	lastSpaceIdx := -1

	flush := func(items []styledRune) {
		for _, item := range items {
			out.WriteString(item.s)
		}
		out.WriteRune('\n')
	}

	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && len(line) > 0 && !item.isSpace {
			if lastSpaceIdx >= 0 {
				flush(line[:lastSpaceIdx+1])
				line = append([]styledRune{}, line[lastSpaceIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastSpaceIdx = lastSpaceIndex(line)
			} else {
				flush(line)
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
		if item.lineBreak {
			flush(line)
			line = line[:0]
			lineWidth = 0
			lastSpaceIdx = -1
		}
	}
	for _, item := range line {
		out.WriteString(item.s)
	}
	return strings.TrimSuffix(out.String(), "\n")
}

func lineWidthOf(line []styledRune) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []styledRune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
