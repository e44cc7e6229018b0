// Package main provides the CLI entrypoint for wcplus.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/wcplus/internal/config"
	"github.com/verte-zerg/wcplus/internal/logging"
	"github.com/verte-zerg/wcplus/internal/model"
	"github.com/verte-zerg/wcplus/internal/source"
	"github.com/verte-zerg/wcplus/internal/stats"
	"github.com/verte-zerg/wcplus/internal/store"
	"github.com/verte-zerg/wcplus/internal/tui"
)

const defaultCardWidth = 80

var (
	verbose bool

	reportExcludeMarkdown   bool
	reportExcludeCodeBlocks bool
	reportLines             string
	reportSelection         string
	reportFormat            string
	reportInputFormat       string

	watchExcludeMarkdown   bool
	watchExcludeCodeBlocks bool
	watchInputFormat       string
	watchPoll              time.Duration
	watchPosition          string
	watchPanel             bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "wcplus [FILE]",
		Short:         "Word and character counts for documents",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runReportCmd,
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "write debug diagnostics to stderr")
	addReportFlags(rootCmd)

	rootCmd.AddCommand(newReportCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newSettingsCmd())

	return rootCmd
}

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [FILE]",
		Short: "Print word and character counts (reads stdin without FILE)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runReportCmd,
	}
	addReportFlags(cmd)
	return cmd
}

func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&reportExcludeMarkdown, "exclude-markdown", false, "strip markdown syntax before counting")
	cmd.Flags().BoolVar(&reportExcludeCodeBlocks, "exclude-code-blocks", false, "strip fenced code blocks before counting")
	cmd.Flags().StringVar(&reportLines, "lines", "", "select lines N or N:M (1-based, inclusive)")
	cmd.Flags().StringVar(&reportSelection, "selection", "", "literal selection text")
	cmd.Flags().StringVar(&reportFormat, "format", stats.FormatText, "output format: text, card, json or yaml (default: card on a terminal)")
	cmd.Flags().StringVar(&reportInputFormat, "input-format", source.FormatAuto, "input format: auto, text or html")
}

func runReportCmd(cmd *cobra.Command, args []string) error {
	logger := logging.New(cmd.ErrOrStderr(), verbose)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		logger.Warn("runtime settings unavailable", "err", err)
	} else {
		defer closeStore(st)
	}
	settings, err := loadSettings(ctx, config.DefaultConfigPath(), st, logger)
	if err != nil {
		return err
	}
	applyBoolFlag(cmd, "exclude-markdown", &settings.ExcludeMarkdown, reportExcludeMarkdown)
	applyBoolFlag(cmd, "exclude-code-blocks", &settings.ExcludeCodeBlocks, reportExcludeCodeBlocks)

	path := "-"
	if len(args) == 1 {
		path = args[0]
	}
	doc, err := source.Load(path, source.LoadOptions{
		Format:    reportInputFormat,
		Lines:     reportLines,
		Selection: reportSelection,
		Stdin:     cmd.InOrStdin(),
	})
	if err != nil {
		return err
	}
	logger.Debug("document loaded", "path", path, "bytes", len(doc.Text), "selection", doc.HasSelection())

	out := cmd.OutOrStdout()
	format, width := resolveOutputFormat(cmd.Flags().Changed("format"), reportFormat, out)
	return stats.Render(out, stats.BuildReport(doc, settings), format, width)
}

// loadSettings layers the config file and the stored runtime settings over
// the defaults. st may be nil.
func loadSettings(ctx context.Context, configPath string, st *store.Store, logger *slog.Logger) (model.Settings, error) {
	settings := model.DefaultSettings()
	fileCfg, err := config.LoadConfig(configPath)
	if err != nil {
		return settings, fmt.Errorf("failed to load config: %w", err)
	}
	if err := fileCfg.Apply(&settings); err != nil {
		return settings, fmt.Errorf("invalid config %s: %w", configPath, err)
	}
	if st == nil {
		return settings, nil
	}
	skipped, err := st.ApplySettings(ctx, &settings)
	if err != nil {
		return settings, fmt.Errorf("failed to load runtime settings: %w", err)
	}
	for _, key := range skipped {
		logger.Warn("ignoring stored setting", "key", key)
	}
	return settings, nil
}

// resolveOutputFormat picks the card format for terminals unless a format
// was given explicitly, and returns the width available for cards.
func resolveOutputFormat(explicit bool, format string, out io.Writer) (string, int) {
	f, ok := out.(*os.File)
	isTerm := ok && term.IsTerminal(int(f.Fd()))
	width := defaultCardWidth
	if isTerm {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			width = w
		}
	}
	if explicit {
		return format, width
	}
	if isTerm {
		return stats.FormatCard, width
	}
	return stats.FormatText, width
}

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch FILE",
		Short: "Open a live view that recounts as the file changes",
		Args:  cobra.ExactArgs(1),
		RunE:  runWatchCmd,
	}
	cmd.Flags().BoolVar(&watchExcludeMarkdown, "exclude-markdown", false, "strip markdown syntax before counting")
	cmd.Flags().BoolVar(&watchExcludeCodeBlocks, "exclude-code-blocks", false, "strip fenced code blocks before counting")
	cmd.Flags().StringVar(&watchInputFormat, "input-format", source.FormatAuto, "input format: auto, text or html")
	cmd.Flags().DurationVar(&watchPoll, "poll", tui.DefaultPollInterval, "how often to check the file for changes")
	cmd.Flags().StringVar(&watchPosition, "position", "", "stats panel position: left or right")
	cmd.Flags().BoolVar(&watchPanel, "panel", false, "open the stats panel on startup")
	return cmd
}

func runWatchCmd(cmd *cobra.Command, args []string) error {
	logger := logging.New(cmd.ErrOrStderr(), verbose)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if watchPoll <= 0 {
		return fmt.Errorf("--poll must be greater than 0")
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer closeStore(st)

	settings, err := loadSettings(ctx, config.DefaultConfigPath(), st, logger)
	if err != nil {
		return err
	}
	applyBoolFlag(cmd, "exclude-markdown", &settings.ExcludeMarkdown, watchExcludeMarkdown)
	applyBoolFlag(cmd, "exclude-code-blocks", &settings.ExcludeCodeBlocks, watchExcludeCodeBlocks)
	if cmd.Flags().Changed("position") {
		pos, err := model.ParseSidebarPosition(watchPosition)
		if err != nil {
			return err
		}
		settings.SidebarPosition = pos
	}

	viewLogger, closeLog, err := watchLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	m, err := tui.NewModel(tui.Config{
		Path:         args[0],
		Format:       watchInputFormat,
		Settings:     settings,
		Saver:        st,
		PollInterval: watchPoll,
		Logger:       viewLogger,
		OpenPanel:    watchPanel,
	})
	if err != nil {
		return err
	}
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// watchLogger returns the live view logger. The terminal belongs to the view
// while it runs, so verbose output goes to a log file next to the database.
func watchLogger() (*slog.Logger, func(), error) {
	if !verbose {
		return logging.Discard(), func() {}, nil
	}
	path := filepath.Join(filepath.Dir(config.DefaultDBPath()), "watch.log")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logErrf("Logging to %s\n", path)
	return logging.New(f, true), func() { _ = f.Close() }, nil
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
		if err := os.WriteFile(path, []byte(config.DefaultTemplate()), 0o644); err != nil {
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

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show effective settings",
		Args:  cobra.NoArgs,
		RunE:  runSettingsCmd,
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Store a runtime setting",
		Args:  cobra.ExactArgs(2),
		RunE:  runSettingsSetCmd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "reset [KEY]",
		Short: "Remove stored runtime settings",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSettingsResetCmd,
	})
	return cmd
}

func runSettingsCmd(cmd *cobra.Command, _ []string) error {
	logger := logging.New(cmd.ErrOrStderr(), verbose)
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer closeStore(st)

	settings, err := loadSettings(context.Background(), config.DefaultConfigPath(), st, logger)
	if err != nil {
		return err
	}
	return writeSettings(cmd.OutOrStdout(), settings)
}

func writeSettings(w io.Writer, settings model.Settings) error {
	keys := model.SettingKeys()
	width := 0
	for _, key := range keys {
		width = max(width, len(key))
	}
	for _, key := range keys {
		value, err := settings.Get(key)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%-*s  %s\n", width, key, value); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func runSettingsSetCmd(cmd *cobra.Command, args []string) error {
	key := strings.TrimSpace(args[0])
	probe := model.DefaultSettings()
	if err := probe.Set(key, args[1]); err != nil {
		return err
	}
	value, err := probe.Get(key)
	if err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer closeStore(st)
	if err := st.SaveSetting(context.Background(), key, value); err != nil {
		return fmt.Errorf("failed to save setting: %w", err)
	}
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, value); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func runSettingsResetCmd(_ *cobra.Command, args []string) error {
	key := ""
	if len(args) == 1 {
		key = strings.TrimSpace(args[0])
		probe := model.DefaultSettings()
		if _, err := probe.Get(key); err != nil {
			return err
		}
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer closeStore(st)

	ctx := context.Background()
	if key == "" {
		if err := st.ResetSettings(ctx); err != nil {
			return fmt.Errorf("failed to reset settings: %w", err)
		}
		logErrln("Removed all stored settings")
		return nil
	}
	if err := st.DeleteSetting(ctx, key); err != nil {
		return fmt.Errorf("failed to reset %s: %w", key, err)
	}
	logErrf("Removed stored %s\n", key)
	return nil
}

func applyBoolFlag(cmd *cobra.Command, name string, target *bool, value bool) {
	if !cmd.Flags().Changed(name) {
		return
	}
	*target = value
}

func closeStore(st *store.Store) {
	if err := st.Close(); err != nil {
		logErrf("failed to close db: %v\n", err)
	}
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
