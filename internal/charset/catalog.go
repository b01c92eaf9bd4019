// Package charset provides the catalog of selectable character sets.
package charset

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/verte-zerg/tuidrill/internal/model"
)

// ErrInvalid marks a character set that cannot be used for generation.
var ErrInvalid = errors.New("invalid character set")

// Defaults returns the built-in character sets in display order.
func Defaults() []model.CharacterSet {
	return []model.CharacterSet{
		{
			ID:          "all",
			Name:        "All characters",
			Description: "Letters, digits and symbols",
			Chars:       "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*()_+-=[]{}\\|;:'\",.<>?/~`",
		},
		{
			ID:          "symbols",
			Name:        "Symbols only",
			Description: "Punctuation and symbols",
			Chars:       "!@#$%^&*()_+-=[]{}\\|;:'\",.<>?/~`",
		},
		{
			ID:          "numberGroups",
			Name:        "Digits only",
			Description: "Groups of digits",
			Chars:       "0123456789",
			Mode:        model.ModeGroupedNumeric,
			Groups:      model.GroupConfig{GroupCount: 20, MinDigits: 3, MaxDigits: 10},
		},
		{
			ID:          "numberSymbolGroups",
			Name:        "Digits and symbols",
			Description: "Digits mixed with symbols common in numbers",
			Chars:       "0123456789:,.=-+*/%#_()$",
			Mode:        model.ModeGroupedNumeric,
			Groups:      model.GroupConfig{GroupCount: 17, MinDigits: 5, MaxDigits: 9},
		},
	}
}

// Validate checks the generation preconditions of a character set.
func Validate(cs model.CharacterSet) error {
	if cs.ID == "" {
		return fmt.Errorf("%w: id is empty", ErrInvalid)
	}
	if cs.Chars == "" {
		return fmt.Errorf("%w: %q has no characters", ErrInvalid, cs.ID)
	}
	for _, r := range cs.Chars {
		if unicode.IsSpace(r) || !unicode.IsPrint(r) {
			return fmt.Errorf("%w: %q contains untypeable character %U", ErrInvalid, cs.ID, r)
		}
	}
	switch cs.Mode {
	case model.ModeSequential:
		return nil
	case model.ModeGroupedNumeric:
		g := cs.Groups
		if g.GroupCount <= 0 || g.MinDigits <= 0 || g.MaxDigits <= 0 {
			return fmt.Errorf("%w: %q group parameters must be positive", ErrInvalid, cs.ID)
		}
		if g.MinDigits > g.MaxDigits {
			return fmt.Errorf("%w: %q min digits %d exceeds max digits %d", ErrInvalid, cs.ID, g.MinDigits, g.MaxDigits)
		}
		if !strings.ContainsAny(cs.Chars, "0123456789") {
			return fmt.Errorf("%w: %q grouped mode needs at least one digit", ErrInvalid, cs.ID)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q has unknown mode %d", ErrInvalid, cs.ID, cs.Mode)
	}
}

// Catalog is an ordered, immutable set of character sets keyed by id.
type Catalog struct {
	sets  []model.CharacterSet
	index map[string]int
}

// NewCatalog validates the given sets and builds a catalog. Ids must be unique.
func NewCatalog(sets []model.CharacterSet) (*Catalog, error) {
	if len(sets) == 0 {
		return nil, fmt.Errorf("%w: catalog is empty", ErrInvalid)
	}
	c := &Catalog{
		sets:  make([]model.CharacterSet, 0, len(sets)),
		index: make(map[string]int, len(sets)),
	}
	for _, cs := range sets {
		if err := Validate(cs); err != nil {
			return nil, err
		}
		if _, ok := c.index[cs.ID]; ok {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalid, cs.ID)
		}
		c.index[cs.ID] = len(c.sets)
		c.sets = append(c.sets, cs)
	}
	return c, nil
}

// All returns the sets in catalog order.
func (c *Catalog) All() []model.CharacterSet {
	out := make([]model.CharacterSet, len(c.sets))
	copy(out, c.sets)
	return out
}

// Lookup returns the set with the given id.
func (c *Catalog) Lookup(id string) (model.CharacterSet, bool) {
	i, ok := c.index[id]
	if !ok {
		return model.CharacterSet{}, false
	}
	return c.sets[i], true
}

// Default returns the first set of the catalog.
func (c *Catalog) Default() model.CharacterSet {
	return c.sets[0]
}

// Resolve returns the set for id, falling back to the default set.
func (c *Catalog) Resolve(id string) model.CharacterSet {
	if cs, ok := c.Lookup(id); ok {
		return cs
	}
	return c.Default()
}

// Name returns the display name for id, using the default set's name for
// unknown ids.
func (c *Catalog) Name(id string) string {
	return c.Resolve(id).Name
}
