// Package main provides the CLI entrypoint for typemaster.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/typemaster/internal/config"
	"github.com/verte-zerg/typemaster/internal/generator"
	"github.com/verte-zerg/typemaster/internal/leaderboard"
	"github.com/verte-zerg/typemaster/internal/logging"
	"github.com/verte-zerg/typemaster/internal/model"
	"github.com/verte-zerg/typemaster/internal/store"
	"github.com/verte-zerg/typemaster/internal/tui"
	"github.com/verte-zerg/typemaster/internal/wordlist"
)

const (
	defaultMode       = "normal"
	defaultDifficulty = "medium"
	defaultTestType   = "time"
	defaultTime       = 30
	defaultWords      = 50
	defaultSound      = true
	defaultBackend    = config.BackendSQLite
	defaultLogLevel   = "warn"
	defaultLogFormat  = "pretty"
)

var (
	testMode       string
	testDifficulty string
	testType       string
	testTime       int
	testWords      int
	testText       string
	testSound      bool
	username       string
	backend        string
	logLevel       string
	logFormat      string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "typemaster",
		Short:         "Terminal typing speed test",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runTestCmd,
	}

	rootCmd.Flags().StringVar(&testMode, "mode", defaultMode, "normal, punctuation, numbers, quotes, custom, zen or hard")
	rootCmd.Flags().StringVar(&testDifficulty, "difficulty", defaultDifficulty, "easy, medium or hard")
	rootCmd.Flags().StringVar(&testType, "type", defaultTestType, "test type: time or words")
	rootCmd.Flags().IntVar(&testTime, "time", defaultTime, "time limit in seconds (15, 30, 60, 120)")
	rootCmd.Flags().IntVar(&testWords, "words", defaultWords, "word count (25, 50, 100, 200)")
	rootCmd.Flags().StringVar(&testText, "text", "", "text for custom mode")
	rootCmd.Flags().BoolVar(&testSound, "sound", defaultSound, "keystroke sounds")
	rootCmd.Flags().StringVar(&username, "username", "", "name prefilled when saving a score")

	rootCmd.PersistentFlags().StringVar(&backend, "backend", defaultBackend, "leaderboard backend: sqlite or yaml")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", defaultLogLevel, "log level")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", defaultLogFormat, "log format: pretty or json")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newLeaderboardCmd())
	rootCmd.AddCommand(newHistoryCmd())

	return rootCmd
}

// loadConfig reads the config file and applies values the command line left
// at their defaults.
func loadConfig(cmd *cobra.Command) (config.FileConfig, zerolog.Logger, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return config.FileConfig{}, zerolog.Nop(), fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "backend", &backend, fileCfg.Leaderboard.Backend)
	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)
	applyStringConfig(cmd, "log-format", &logFormat, fileCfg.Log.Format)
	if backend != config.BackendSQLite && backend != config.BackendYAML {
		return config.FileConfig{}, zerolog.Nop(), fmt.Errorf("--backend must be %q or %q", config.BackendSQLite, config.BackendYAML)
	}
	log := logging.Setup(logLevel, logFormat, os.Stderr)
	return fileCfg, log, nil
}

func runTestCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	applyStringConfig(cmd, "mode", &testMode, fileCfg.Test.Mode)
	applyStringConfig(cmd, "difficulty", &testDifficulty, fileCfg.Test.Difficulty)
	applyStringConfig(cmd, "type", &testType, fileCfg.Test.Type)
	applyIntConfig(cmd, "time", &testTime, fileCfg.Test.Time)
	applyIntConfig(cmd, "words", &testWords, fileCfg.Test.Words)
	applyStringConfig(cmd, "text", &testText, fileCfg.Test.CustomText)
	applyBoolConfig(cmd, "sound", &testSound, fileCfg.Test.Sound)
	applyStringConfig(cmd, "username", &username, fileCfg.Leaderboard.Username)

	textGiven := cmd.Flags().Changed("text") || fileCfg.Test.CustomText != nil
	settings, err := buildSettings(textGiven)
	if err != nil {
		return err
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("typemaster needs an interactive terminal")
	}

	gen := generator.New(nil)
	tiers, err := wordlist.LoadTiers(config.DefaultWordListDir(), wordlist.LowerASCII)
	if err != nil {
		return fmt.Errorf("failed to load word lists: %w", err)
	}
	for d, words := range tiers {
		log.Debug().Str("difficulty", string(d)).Int("words", len(words)).Msg("using custom word list")
		gen.WithVocabulary(d, words)
	}

	st, err := store.Open(config.DefaultDBPath(), log)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			log.Warn().Err(cerr).Msg("failed to close db")
		}
	}()

	board := leaderboard.NewBoard(leaderboardStore(st, log), log)
	m, err := tui.NewModel(tui.Options{
		Settings:  settings,
		Generator: gen,
		Board:     board,
		History:   st,
		Username:  username,
		Logger:    log,
	})
	if err != nil {
		return err
	}
	if err := tui.Run(m, tea.WithAltScreen()); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// buildSettings assembles the test settings from the flag values. Custom
// mode needs a text from --text or the config file; any non-empty text is
// typed verbatim, whitespace included.
func buildSettings(textGiven bool) (model.Settings, error) {
	mode, err := model.ParseMode(testMode)
	if err != nil {
		return model.Settings{}, err
	}
	difficulty, err := model.ParseDifficulty(testDifficulty)
	if err != nil {
		return model.Settings{}, err
	}
	tt, err := model.ParseTestType(testType)
	if err != nil {
		return model.Settings{}, err
	}
	if mode == model.ModeCustom && !textGiven {
		return model.Settings{}, fmt.Errorf("--text is required for custom mode")
	}
	if mode == model.ModeCustom && testText == "" {
		return model.Settings{}, fmt.Errorf("--text must not be empty for custom mode")
	}
	settings := model.Settings{
		Mode:         mode,
		Difficulty:   difficulty,
		TestType:     tt,
		TimeLimit:    testTime,
		WordLimit:    testWords,
		CustomText:   testText,
		SoundEnabled: testSound,
	}
	if err := settings.Validate(); err != nil {
		return model.Settings{}, err
	}
	return settings, nil
}

// leaderboardStore selects the configured leaderboard backend. The SQLite
// store always keeps result history.
func leaderboardStore(st *store.Store, log zerolog.Logger) leaderboard.Store {
	if backend == config.BackendYAML {
		return store.OpenFile(config.DefaultLeaderboardFilePath(), log)
	}
	return st
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

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# typemaster configuration
# Uncomment a value to enable it. CLI flags override config values.

[test]
# mode = %q          # normal, punctuation, numbers, quotes, custom, zen, hard
# difficulty = %q    # easy, medium, hard
# type = %q            # time or words
# time = %d                # Seconds for time tests
# words = %d               # Words for word tests
# custom-text = ""        # Text for custom mode
# sound = %t             # Keystroke sounds

[leaderboard]
# username = ""           # Name prefilled when saving a score
# backend = %q       # sqlite or yaml

[log]
# level = %q            # trace, debug, info, warn, error
# format = %q        # pretty or json
`,
		defaultMode,
		defaultDifficulty,
		defaultTestType,
		defaultTime,
		defaultWords,
		defaultSound,
		defaultBackend,
		defaultLogLevel,
		defaultLogFormat,
	)
}

func withContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
