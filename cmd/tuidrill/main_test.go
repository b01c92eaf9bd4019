package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/verte-zerg/tuidrill/internal/charset"
	"github.com/verte-zerg/tuidrill/internal/config"
	"github.com/verte-zerg/tuidrill/internal/model"
	"github.com/verte-zerg/tuidrill/internal/records"
	"github.com/verte-zerg/tuidrill/internal/settings"
	"github.com/verte-zerg/tuidrill/internal/store"
)

func strPtr(s string) *string { return &s }

func testEnvironment(t *testing.T) environment {
	t.Helper()
	catalog, err := charset.NewCatalog(charset.Defaults())
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return environment{catalog: catalog}
}

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	for _, key := range []string{config.EnvCharSet, config.EnvTheme, config.EnvDB, config.EnvLogFile} {
		t.Setenv(key, "")
	}
	return dir
}

func TestResolvePracticeConfigPrecedence(t *testing.T) {
	isolate(t)
	e := testEnvironment(t)
	e.file.Practice.CharSet = strPtr("symbols")
	e.file.Practice.Theme = strPtr("light")
	e.env.CharSet = strPtr("numberGroups")

	cmd := newRootCmd()
	if err := cmd.ParseFlags([]string{"--theme", "dark"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	cfg, err := resolvePracticeConfig(cmd, e)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.CharSetID != "numberGroups" || !cfg.CharSetExplicit {
		t.Fatalf("expected env to win over file, got %+v", cfg)
	}
	if cfg.Theme != model.ThemeDark || !cfg.ThemeExplicit {
		t.Fatalf("expected flag to win, got %+v", cfg)
	}
}

func TestResolvePracticeConfigRejectsUnknownValues(t *testing.T) {
	isolate(t)
	e := testEnvironment(t)
	cmd := newRootCmd()
	if err := cmd.ParseFlags([]string{"--charset", "klingon"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if _, err := resolvePracticeConfig(cmd, e); err == nil || !strings.Contains(err.Error(), "available") {
		t.Fatalf("expected unknown charset error, got %v", err)
	}

	cmd = newRootCmd()
	if err := cmd.ParseFlags([]string{"--theme", "sepia"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if _, err := resolvePracticeConfig(cmd, e); err == nil {
		t.Fatalf("expected invalid theme error")
	}
}

func TestApplyPersisted(t *testing.T) {
	e := testEnvironment(t)
	saved := settings.Settings{CharSetID: "symbols", Theme: model.ThemeLight}

	cs, theme := applyPersisted(model.Config{}, saved, e.catalog)
	if cs.ID != "symbols" || theme != model.ThemeLight {
		t.Fatalf("expected persisted values, got %s %s", cs.ID, theme)
	}

	explicit := model.Config{CharSetID: "numberGroups", CharSetExplicit: true, Theme: model.ThemeDark, ThemeExplicit: true}
	cs, theme = applyPersisted(explicit, saved, e.catalog)
	if cs.ID != "numberGroups" || theme != model.ThemeDark {
		t.Fatalf("expected explicit values, got %s %s", cs.ID, theme)
	}

	cs, theme = applyPersisted(model.Config{}, settings.Settings{CharSetID: "gone"}, e.catalog)
	if cs.ID != "all" || theme != model.ThemeDark {
		t.Fatalf("expected defaults, got %s %s", cs.ID, theme)
	}
}

func TestGenerateCommandIsReproducible(t *testing.T) {
	isolate(t)
	run := func() string {
		cmd := newRootCmd()
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"generate", "--charset", "numberGroups", "--seed", "7"})
		if err := cmd.Execute(); err != nil {
			t.Fatalf("generate: %v", err)
		}
		return out.String()
	}
	first := run()
	if first == "" || first != run() {
		t.Fatalf("expected identical seeded output, got %q", first)
	}
	if lines := strings.Split(strings.TrimSpace(first), "\n"); len(lines) != 5 {
		t.Fatalf("expected 20 groups on 5 lines, got %d", len(lines))
	}
}

func TestGenerateCommandUnknownCharSet(t *testing.T) {
	isolate(t)
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"generate", "--charset", "nope"})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected error")
	}
}

func TestRecordsCommands(t *testing.T) {
	dir := isolate(t)
	dbFile := filepath.Join(dir, "records.db")
	st, err := store.Open(dbFile)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	recs := records.New(context.Background(), st, records.WithLogf(func(string, ...any) {}))
	recs.Save(context.Background(), 42, 3, "symbols")
	if err := st.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"records", "--db", dbFile})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("records: %v", err)
	}
	if !strings.Contains(out.String(), "Symbols only") || !strings.Contains(out.String(), "42") {
		t.Fatalf("unexpected records output:\n%s", out.String())
	}

	cmd = newRootCmd()
	cmd.SetIn(strings.NewReader("n\n"))
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"records", "clear", "--db", dbFile})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("clear abort: %v", err)
	}
	cmd = newRootCmd()
	cmd.SetArgs([]string{"records", "clear", "--yes", "--db", dbFile})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("clear: %v", err)
	}

	st, err = store.Open(dbFile)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() {
		_ = st.Close()
	}()
	if got := records.New(context.Background(), st).Records(); len(got) != 0 {
		t.Fatalf("expected records cleared, got %d", len(got))
	}
}

func TestConfirm(t *testing.T) {
	cases := map[string]bool{"y\n": true, "YES\n": true, "n\n": false, "": false, "maybe\n": false}
	for input, want := range cases {
		got, err := confirm(strings.NewReader(input), &bytes.Buffer{}, "? ")
		if err != nil {
			t.Fatalf("confirm %q: %v", input, err)
		}
		if got != want {
			t.Fatalf("confirm %q: got %v, want %v", input, got, want)
		}
	}
}
