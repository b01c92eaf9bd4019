// Package settings persists the selected character set and theme.
package settings

import (
	"context"
	"fmt"
	"os"

	"github.com/verte-zerg/tuidrill/internal/model"
	"github.com/verte-zerg/tuidrill/internal/store"
)

// Settings are the persisted user preferences. Empty CharSetID means none
// was stored.
type Settings struct {
	CharSetID string
	Theme     model.Theme
}

// Prefs reads and writes preferences through a KV. Every failure is logged
// and otherwise ignored.
type Prefs struct {
	kv   store.KV
	logf func(format string, args ...any)
}

// New returns Prefs over kv. A nil logf writes to stderr.
func New(kv store.KV, logf func(format string, args ...any)) *Prefs {
	if logf == nil {
		logf = logErrf
	}
	return &Prefs{kv: kv, logf: logf}
}

// Load returns the stored preferences, defaulting the theme to dark.
func (p *Prefs) Load(ctx context.Context) Settings {
	out := Settings{Theme: model.ThemeDark}
	if id, ok := p.get(ctx, store.KeyCharSet); ok {
		out.CharSetID = id
	}
	if theme, ok := p.get(ctx, store.KeyTheme); ok {
		if t := model.Theme(theme); t.Valid() {
			out.Theme = t
		} else {
			p.logf("ignoring unknown theme %q\n", theme)
		}
	}
	return out
}

// SaveCharSet stores the selected character set id.
func (p *Prefs) SaveCharSet(ctx context.Context, id string) {
	if err := p.kv.Set(ctx, store.KeyCharSet, id); err != nil {
		p.logf("failed to save character set: %v\n", err)
	}
}

// SaveTheme stores the selected theme.
func (p *Prefs) SaveTheme(ctx context.Context, theme model.Theme) {
	if err := p.kv.Set(ctx, store.KeyTheme, string(theme)); err != nil {
		p.logf("failed to save theme: %v\n", err)
	}
}

func (p *Prefs) get(ctx context.Context, key string) (string, bool) {
	v, ok, err := p.kv.Get(ctx, key)
	if err != nil {
		p.logf("failed to read %s: %v\n", key, err)
		return "", false
	}
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
