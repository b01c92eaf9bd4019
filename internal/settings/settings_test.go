package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/verte-zerg/tuidrill/internal/model"
	"github.com/verte-zerg/tuidrill/internal/store"
)

func quiet(string, ...any) {}

func TestLoadDefaults(t *testing.T) {
	got := New(store.NewMemory(), quiet).Load(context.Background())
	if got.CharSetID != "" || got.Theme != model.ThemeDark {
		t.Fatalf("unexpected defaults: %+v", got)
	}
}

func TestSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	p := New(kv, quiet)
	p.SaveCharSet(ctx, "symbols")
	p.SaveTheme(ctx, model.ThemeLight)

	got := New(kv, quiet).Load(ctx)
	if got.CharSetID != "symbols" || got.Theme != model.ThemeLight {
		t.Fatalf("unexpected settings: %+v", got)
	}
	if v, _, _ := kv.Get(ctx, store.KeyTheme); v != "light" {
		t.Fatalf("expected raw theme value, got %q", v)
	}
}

func TestLoadIgnoresUnknownTheme(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	_ = kv.Set(ctx, store.KeyTheme, "sepia")
	var logged int
	got := New(kv, func(string, ...any) { logged++ }).Load(ctx)
	if got.Theme != model.ThemeDark {
		t.Fatalf("expected dark fallback, got %q", got.Theme)
	}
	if logged != 1 {
		t.Fatalf("expected one diagnostic, got %d", logged)
	}
}

func TestFailuresAreSwallowed(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	kv.Err = errors.New("unavailable")
	var logged int
	p := New(kv, func(string, ...any) { logged++ })
	got := p.Load(ctx)
	if got.Theme != model.ThemeDark || got.CharSetID != "" {
		t.Fatalf("expected defaults on read failure, got %+v", got)
	}
	p.SaveTheme(ctx, model.ThemeLight)
	p.SaveCharSet(ctx, "all")
	if logged != 4 {
		t.Fatalf("expected 4 diagnostics, got %d", logged)
	}
}
