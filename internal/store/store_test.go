package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func TestSQLiteRoundTrip(t *testing.T) {
	dir := t.TempDir()
	st, err := Open(filepath.Join(dir, "nested", "tuidrill.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	exerciseKV(t, st)
}

func TestSQLitePersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuidrill.db")
	ctx := context.Background()
	st, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := st.Set(ctx, KeyTheme, "light"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	st, err = Open(path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	v, ok, err := st.Get(ctx, KeyTheme)
	if err != nil || !ok || v != "light" {
		t.Fatalf("expected persisted theme, got %q %v %v", v, ok, err)
	}
}

func TestMemoryRoundTrip(t *testing.T) {
	exerciseKV(t, NewMemory())
}

func TestMemoryErr(t *testing.T) {
	m := NewMemory()
	m.Err = errors.New("quota exceeded")
	ctx := context.Background()
	if err := m.Set(ctx, "k", "v"); err == nil {
		t.Fatalf("expected set error")
	}
	if _, _, err := m.Get(ctx, "k"); err == nil {
		t.Fatalf("expected get error")
	}
}

func exerciseKV(t *testing.T, kv KV) {
	t.Helper()
	ctx := context.Background()
	if _, ok, err := kv.Get(ctx, KeyRecords); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}
	if err := kv.Set(ctx, KeyRecords, "[]"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := kv.Set(ctx, KeyRecords, `[{"time":1}]`); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	v, ok, err := kv.Get(ctx, KeyRecords)
	if err != nil || !ok || v != `[{"time":1}]` {
		t.Fatalf("unexpected value %q ok=%v err=%v", v, ok, err)
	}
	if err := kv.Delete(ctx, KeyRecords); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := kv.Delete(ctx, KeyRecords); err != nil {
		t.Fatalf("delete missing: %v", err)
	}
	if _, ok, _ := kv.Get(ctx, KeyRecords); ok {
		t.Fatalf("expected key removed")
	}
}
