// Package generator builds practice text from character sets.
package generator

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/verte-zerg/tuidrill/internal/charset"
	"github.com/verte-zerg/tuidrill/internal/model"
)

const (
	runLength      = 10
	groupsPerLine  = 4
	symbolProb     = 0.65
	groupSeparator = " "
	lineSeparator  = "\n"
)

// ErrEmptyCharSet is returned when a character set has no characters.
var ErrEmptyCharSet = errors.New("character set has no characters")

// Generator produces randomized practice text.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed returns a Generator with a fixed seed.
func NewWithSeed(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Generate produces the practice text for cs. Invalid sets fail fast.
func (g *Generator) Generate(cs model.CharacterSet) (string, error) {
	if cs.Chars == "" {
		return "", fmt.Errorf("%w: %q", ErrEmptyCharSet, cs.ID)
	}
	if err := charset.Validate(cs); err != nil {
		return "", err
	}
	if cs.Mode == model.ModeGroupedNumeric {
		return g.grouped(cs), nil
	}
	return g.sequential(cs), nil
}

// sequential shuffles every character of the alphabet and inserts a space
// after each run of ten, never at the end.
func (g *Generator) sequential(cs model.CharacterSet) string {
	runes := []rune(cs.Chars)
	for i := len(runes) - 1; i > 0; i-- {
		j := g.rnd.Intn(i + 1)
		runes[i], runes[j] = runes[j], runes[i]
	}
	var b strings.Builder
	for i, r := range runes {
		b.WriteRune(r)
		if (i+1)%runLength == 0 && i < len(runes)-1 {
			b.WriteString(groupSeparator)
		}
	}
	return b.String()
}

func (g *Generator) grouped(cs model.CharacterSet) string {
	digits, symbols := splitPools(cs.Chars)
	all := []rune(cs.Chars)
	cfg := cs.Groups

	groups := make([]string, 0, cfg.GroupCount)
	for i := 0; i < cfg.GroupCount; i++ {
		length := cfg.MinDigits + g.rnd.Intn(cfg.MaxDigits-cfg.MinDigits+1)
		if len(symbols) == 0 {
			groups = append(groups, string(g.pickN(all, length)))
			continue
		}
		groups = append(groups, string(g.mixedGroup(digits, symbols, length)))
	}

	lines := make([]string, 0, (len(groups)+groupsPerLine-1)/groupsPerLine)
	for i := 0; i < len(groups); i += groupsPerLine {
		end := i + groupsPerLine
		if end > len(groups) {
			end = len(groups)
		}
		lines = append(lines, strings.Join(groups[i:end], groupSeparator))
	}
	return strings.Join(lines, lineSeparator)
}

// mixedGroup starts with a digit, never places two symbols side by side and
// makes the last position a symbol when none was drawn before it.
func (g *Generator) mixedGroup(digits, symbols []rune, length int) []rune {
	group := make([]rune, 0, length)
	hasSymbol := false
	for j := 0; j < length; j++ {
		switch {
		case j == 0:
			group = append(group, g.pick(digits))
		case g.rnd.Float64() < symbolProb && IsDigit(group[j-1]):
			group = append(group, g.pick(symbols))
			hasSymbol = true
		default:
			group = append(group, g.pick(digits))
		}
		if j == length-2 && !hasSymbol {
			group = append(group, g.pick(symbols))
			hasSymbol = true
			j++
		}
	}
	return group
}

func (g *Generator) pick(pool []rune) rune {
	return pool[g.rnd.Intn(len(pool))]
}

func (g *Generator) pickN(pool []rune, n int) []rune {
	out := make([]rune, n)
	for i := range out {
		out[i] = g.pick(pool)
	}
	return out
}

func splitPools(chars string) (digits, symbols []rune) {
	for _, r := range chars {
		if IsDigit(r) {
			digits = append(digits, r)
		} else {
			symbols = append(symbols, r)
		}
	}
	return digits, symbols
}

// IsDigit reports whether r is an ASCII digit.
func IsDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
