// Package main provides the CLI entrypoint for tuidrill.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/tuidrill/internal/charset"
	"github.com/verte-zerg/tuidrill/internal/config"
	"github.com/verte-zerg/tuidrill/internal/generator"
	"github.com/verte-zerg/tuidrill/internal/model"
	"github.com/verte-zerg/tuidrill/internal/records"
	"github.com/verte-zerg/tuidrill/internal/session"
	"github.com/verte-zerg/tuidrill/internal/settings"
	"github.com/verte-zerg/tuidrill/internal/stats"
	"github.com/verte-zerg/tuidrill/internal/store"
	"github.com/verte-zerg/tuidrill/internal/tui"
)

const (
	defaultRecordsLimit  = 20
	defaultRecordsWindow = 5
)

var (
	dbPath string

	practiceCharSet string
	practiceTheme   string
	practiceLogFile string

	generateCharSet string
	generateSeed    int64

	recordsCharSet string
	recordsLimit   int
	recordsWindow  int

	clearYes bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tuidrill",
		Short:         "TUI character drill trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to the SQLite database")
	rootCmd.Flags().StringVar(&practiceCharSet, "charset", "", "character set id (default: last used)")
	rootCmd.Flags().StringVar(&practiceTheme, "theme", "", "color theme: dark or light (default: last used)")
	rootCmd.Flags().StringVar(&practiceLogFile, "log-file", "", "write diagnostics to this file while the TUI runs")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newCharSetsCmd())
	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newRecordsCmd())

	return rootCmd
}

// environment bundles the inputs shared by every command.
type environment struct {
	file    config.FileConfig
	env     config.EnvConfig
	catalog *charset.Catalog
}

func loadEnvironment() (environment, error) {
	env := config.LoadEnv()
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return environment{}, fmt.Errorf("failed to load config: %w", err)
	}
	userSets, err := fileCfg.CharacterSets()
	if err != nil {
		return environment{}, fmt.Errorf("failed to load character sets: %w", err)
	}
	catalog, err := charset.NewCatalog(append(charset.Defaults(), userSets...))
	if err != nil {
		return environment{}, fmt.Errorf("failed to build character sets: %w", err)
	}
	return environment{file: fileCfg, env: env, catalog: catalog}, nil
}

func resolveDBPath(cmd *cobra.Command, e environment) string {
	path := ""
	applyStringConfig(cmd, "db", &path, e.file.Storage.DB)
	applyStringConfig(cmd, "db", &path, e.env.DB)
	if cmd.Flags().Changed("db") {
		path = dbPath
	}
	if strings.TrimSpace(path) == "" {
		return config.DefaultDBPath()
	}
	return path
}

func openStore(path string) (*store.Store, error) {
	st, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	return st, nil
}

func closeStore(st *store.Store) {
	if cerr := st.Close(); cerr != nil {
		logErrf("failed to close db: %v\n", cerr)
	}
}

// resolvePracticeConfig merges flag, environment and config file values.
// Later sources only fill values the flags left unchanged; the environment
// wins over the file.
func resolvePracticeConfig(cmd *cobra.Command, e environment) (model.Config, error) {
	applyStringConfig(cmd, "charset", &practiceCharSet, e.file.Practice.CharSet)
	applyStringConfig(cmd, "charset", &practiceCharSet, e.env.CharSet)
	applyStringConfig(cmd, "theme", &practiceTheme, e.file.Practice.Theme)
	applyStringConfig(cmd, "theme", &practiceTheme, e.env.Theme)
	applyStringConfig(cmd, "log-file", &practiceLogFile, e.file.Practice.LogFile)
	applyStringConfig(cmd, "log-file", &practiceLogFile, e.env.LogFile)

	cfg := model.Config{
		CharSetID:       strings.TrimSpace(practiceCharSet),
		Theme:           model.Theme(strings.ToLower(strings.TrimSpace(practiceTheme))),
		DBPath:          resolveDBPath(cmd, e),
		LogFile:         strings.TrimSpace(practiceLogFile),
		CharSetExplicit: strings.TrimSpace(practiceCharSet) != "",
		ThemeExplicit:   strings.TrimSpace(practiceTheme) != "",
	}
	if err := validateConfig(cfg, e.catalog); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg model.Config, catalog *charset.Catalog) error {
	if cfg.ThemeExplicit && !cfg.Theme.Valid() {
		return fmt.Errorf("--theme must be %q or %q", model.ThemeDark, model.ThemeLight)
	}
	if cfg.CharSetExplicit {
		if _, ok := catalog.Lookup(cfg.CharSetID); !ok {
			return unknownCharSetError(cfg.CharSetID, catalog)
		}
	}
	return nil
}

// applyPersisted fills the values that no explicit source set from the
// stored preferences, then from the built-in defaults.
func applyPersisted(cfg model.Config, saved settings.Settings, catalog *charset.Catalog) (model.CharacterSet, model.Theme) {
	theme := cfg.Theme
	if !cfg.ThemeExplicit {
		theme = saved.Theme
	}
	if !theme.Valid() {
		theme = model.ThemeDark
	}
	id := cfg.CharSetID
	if !cfg.CharSetExplicit {
		id = saved.CharSetID
	}
	return catalog.Resolve(id), theme
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	e, err := loadEnvironment()
	if err != nil {
		return err
	}
	cfg, err := resolvePracticeConfig(cmd, e)
	if err != nil {
		return err
	}

	// Anything written to stderr would corrupt the alternate screen.
	logf := func(string, ...any) {}
	if cfg.LogFile != "" {
		f, err := tea.LogToFile(cfg.LogFile, "tuidrill")
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil {
				// Best-effort close of the log file.
				_ = cerr
			}
		}()
		logf = log.Printf
	} else {
		log.SetOutput(io.Discard)
	}

	st, err := openStore(cfg.DBPath)
	if err != nil {
		return err
	}
	defer closeStore(st)

	ctx := context.Background()
	prefs := settings.New(st, logf)
	cs, theme := applyPersisted(cfg, prefs.Load(ctx), e.catalog)
	recs := records.New(ctx, st, records.WithLogf(logf))

	engine, err := session.New(generator.New(), recs, cs)
	if err != nil {
		return err
	}
	if cfg.CharSetExplicit {
		prefs.SaveCharSet(ctx, cs.ID)
	}

	m := tui.NewModel(engine, e.catalog, prefs, theme)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newCharSetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "charsets",
		Short: "List character sets",
		Args:  cobra.NoArgs,
		RunE:  runCharSetsCmd,
	}
}

func runCharSetsCmd(cmd *cobra.Command, _ []string) error {
	e, err := loadEnvironment()
	if err != nil {
		return err
	}
	activeID := ""
	st, err := openStore(resolveDBPath(cmd, e))
	if err != nil {
		logErrf("%v\n", err)
	} else {
		defer closeStore(st)
		activeID = e.catalog.Resolve(settings.New(st, logErrf).Load(context.Background()).CharSetID).ID
	}
	if err := stats.RenderCharSets(cmd.OutOrStdout(), e.catalog.All(), activeID); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Print one practice text",
		Args:  cobra.NoArgs,
		RunE:  runGenerateCmd,
	}
	cmd.Flags().StringVar(&generateCharSet, "charset", "", "character set id (default: first set)")
	cmd.Flags().Int64Var(&generateSeed, "seed", 0, "random seed for reproducible output")
	return cmd
}

func runGenerateCmd(cmd *cobra.Command, _ []string) error {
	e, err := loadEnvironment()
	if err != nil {
		return err
	}
	cs := e.catalog.Default()
	if generateCharSet != "" {
		found, ok := e.catalog.Lookup(generateCharSet)
		if !ok {
			return unknownCharSetError(generateCharSet, e.catalog)
		}
		cs = found
	}
	gen := generator.New()
	if cmd.Flags().Changed("seed") {
		gen = generator.NewWithSeed(generateSeed)
	}
	text, err := gen.Generate(cs)
	if err != nil {
		return fmt.Errorf("failed to generate text: %w", err)
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), text); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newRecordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "records",
		Short: "Show records",
		Args:  cobra.NoArgs,
		RunE:  runRecordsCmd,
	}
	cmd.Flags().StringVar(&recordsCharSet, "charset", "", "character set filter")
	cmd.Flags().IntVar(&recordsLimit, "limit", defaultRecordsLimit, "number of records to list (0 for all)")
	cmd.Flags().IntVar(&recordsWindow, "window", defaultRecordsWindow, "moving average window for trends")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all records",
		Args:  cobra.NoArgs,
		RunE:  runRecordsClearCmd,
	}
	clearCmd.Flags().BoolVar(&clearYes, "yes", false, "skip confirmation")
	cmd.AddCommand(clearCmd)
	return cmd
}

func runRecordsCmd(cmd *cobra.Command, _ []string) error {
	cfg := model.RecordsConfig{
		CharSetID: recordsCharSet,
		Limit:     recordsLimit,
		Window:    recordsWindow,
	}
	if cfg.Limit < 0 {
		return fmt.Errorf("--limit must be >= 0")
	}
	if cfg.Window <= 0 {
		return fmt.Errorf("--window must be > 0")
	}
	e, err := loadEnvironment()
	if err != nil {
		return err
	}
	st, err := openStore(resolveDBPath(cmd, e))
	if err != nil {
		return err
	}
	defer closeStore(st)

	recs := stats.Filter(records.New(context.Background(), st, records.WithLogf(logErrf)).Records(), cfg.CharSetID)
	out := cmd.OutOrStdout()
	if err := stats.RenderRecords(out, recs, e.catalog.Name, cfg.Limit); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	trendWidth := stats.TrendWidth(stats.TerminalWidth(os.Stdout))
	if err := stats.RenderSummary(out, stats.Summarize(recs, cfg.Window), e.catalog.Name, trendWidth); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func runRecordsClearCmd(cmd *cobra.Command, _ []string) error {
	e, err := loadEnvironment()
	if err != nil {
		return err
	}
	st, err := openStore(resolveDBPath(cmd, e))
	if err != nil {
		return err
	}
	defer closeStore(st)

	ctx := context.Background()
	recs := records.New(ctx, st, records.WithLogf(logErrf))
	count := len(recs.Records())
	if count == 0 {
		logErrln("No records to clear.")
		return nil
	}
	if !clearYes {
		ok, err := confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), fmt.Sprintf("Clear all %d records? [y/N] ", count))
		if err != nil {
			return err
		}
		if !ok {
			logErrln("Aborted.")
			return nil
		}
	}
	if err := recs.Clear(ctx); err != nil {
		return err
	}
	logErrf("Cleared %d records.\n", count)
	return nil
}

func confirm(in io.Reader, out io.Writer, prompt string) (bool, error) {
	if _, err := fmt.Fprint(out, prompt); err != nil {
		return false, fmt.Errorf("failed to write prompt: %w", err)
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func unknownCharSetError(id string, catalog *charset.Catalog) error {
	sets := catalog.All()
	ids := make([]string, 0, len(sets))
	for _, cs := range sets {
		ids = append(ids, cs.ID)
	}
	return fmt.Errorf("unknown character set %q (available: %s)", id, strings.Join(ids, ", "))
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# tuidrill configuration
# Uncomment a value to enable it. CLI flags and %s_* variables override
# config values.

[practice]
# charset = %q           # Character set id (default: last used, then the first set)
# theme = %q             # dark or light
# log-file = ""           # Diagnostics file while the TUI runs

[storage]
# db = %q

# Additional character sets. mode is "sequential" (default) or "grouped".
# [[charsets]]
# id = "hex"
# name = "Hex digits"
# description = "Digits and a-f"
# chars = "0123456789abcdef"
# mode = "grouped"
# group-count = 12
# min-digits = 2
# max-digits = 6
`,
		"TUIDRILL",
		charset.Defaults()[0].ID,
		model.ThemeDark,
		config.DefaultDBPath(),
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
