package tui

import (
	"strings"
	"testing"

	"github.com/verte-zerg/tuidrill/internal/model"
)

var testStyles = newStyles(model.ThemeDark)

func TestBuildStyledRunesCursor(t *testing.T) {
	target := []rune("ab")
	input := []rune("a")

	runes := buildStyledRunes(target, input, len(input), testStyles)
	if len(runes) != 2 {
		t.Fatalf("expected 2 runes, got %d", len(runes))
	}
	if runes[0].s != testStyles.correct.Render("a") {
		t.Fatalf("expected correct style for first rune")
	}
	if runes[1].s != testStyles.currentWord.Underline(true).Render("b") {
		t.Fatalf("expected cursor style for second rune")
	}
}

func TestBuildStyledRunesNoCursorWhenComplete(t *testing.T) {
	runes := buildStyledRunes([]rune("a"), []rune("a"), -1, testStyles)
	if len(runes) != 1 {
		t.Fatalf("expected 1 rune, got %d", len(runes))
	}
	if runes[0].s != testStyles.correct.Render("a") {
		t.Fatalf("expected correct style for completed rune")
	}
}

func TestBuildStyledRunesKeepsTargetOnMistype(t *testing.T) {
	runes := buildStyledRunes([]rune("ab"), []rune("ax"), 2, testStyles)
	if runes[1].s != testStyles.incorrect.Render("b") {
		t.Fatalf("expected incorrect style showing the target rune")
	}
}

func TestBuildStyledRunesWordHighlighting(t *testing.T) {
	runes := buildStyledRunes([]rune("one two"), []rune("o"), 1, testStyles)
	if runes[2].s != testStyles.currentWord.Render("e") {
		t.Fatalf("expected current word style for untyped in current word")
	}
	if runes[4].s != testStyles.pending.Render("t") {
		t.Fatalf("expected pending style for next word")
	}
}

func TestBuildStyledRunesWrongSpaceDot(t *testing.T) {
	runes := buildStyledRunes([]rune("a b"), []rune("ax"), 2, testStyles)
	if runes[1].s != testStyles.incorrect.Render("•") {
		t.Fatalf("expected dot for wrong space")
	}
}

func TestBuildStyledRunesLineBreakTypedAsSpace(t *testing.T) {
	runes := buildStyledRunes([]rune("12\n34"), []rune("12 "), 3, testStyles)
	if len(runes) != 5 {
		t.Fatalf("expected 5 runes, got %d", len(runes))
	}
	if !runes[2].lineBreak || !runes[2].isSpace {
		t.Fatalf("expected line break rendered as space, got %+v", runes[2])
	}
	if runes[2].s != testStyles.correct.Render(" ") {
		t.Fatalf("expected space to satisfy line break")
	}
}

func TestBuildStyledRunesOverrun(t *testing.T) {
	runes := buildStyledRunes([]rune("ab"), []rune("aXyz"), -1, testStyles)
	if len(runes) != 4 {
		t.Fatalf("expected overrun runes appended, got %d", len(runes))
	}
	if runes[2].s != testStyles.incorrect.Render("y") || runes[3].s != testStyles.incorrect.Render("z") {
		t.Fatalf("expected overrun input in incorrect style")
	}
}

func plainRunes(text string) []styledRune {
	out := make([]styledRune, 0, len(text))
	for _, r := range text {
		shown := r
		if r == '\n' {
			shown = ' '
		}
		out = append(out, styledRune{
			s:         string(shown),
			width:     1,
			isSpace:   shown == ' ',
			lineBreak: r == '\n',
		})
	}
	return out
}

func TestWrapStyledRunesBreaksAtSpaces(t *testing.T) {
	got := wrapStyledRunes(plainRunes("abc def ghi"), 8)
	if got != "abc def \nghi" {
		t.Fatalf("unexpected wrap %q", got)
	}
}

func TestWrapStyledRunesHonorsLineBreaks(t *testing.T) {
	got := wrapStyledRunes(plainRunes("12 34\n56 78"), 40)
	lines := strings.Split(got, "\n")
	if len(lines) != 2 || lines[0] != "12 34 " || lines[1] != "56 78" {
		t.Fatalf("unexpected lines %q", lines)
	}
}

func TestWrapStyledRunesSplitsLongWords(t *testing.T) {
	got := wrapStyledRunes(plainRunes("abcdefgh"), 3)
	if got != "abc\ndef\ngh" {
		t.Fatalf("unexpected wrap %q", got)
	}
}
