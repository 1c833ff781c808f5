// levelup is a candy level-up calculator for the terminal.
//
// Usage:
//
//	levelup                  - Start the interactive calculator
//	levelup simulate         - Spend a number of candies and print the outcome
//	levelup solve            - Print the candies needed to reach a target level
//	levelup tiers            - List the loaded EXP tables
//	levelup history          - Show saved calculations
//	levelup serve            - Start SSH server for remote use
//
// Global flags:
//
//	--config <path>     - Config file (default: ~/.levelup/config.yaml)
//	--tables <dir>      - Directory with EXP table overrides
//	--db <path>         - History database path (default: ~/.levelup/history.db)
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/levelup/internal/calculator"
	"github.com/vovakirdan/levelup/internal/config"
	"github.com/vovakirdan/levelup/internal/leveling"
	"github.com/vovakirdan/levelup/internal/leveling/tables"
	"github.com/vovakirdan/levelup/internal/platform/tui"
	"github.com/vovakirdan/levelup/internal/storage"
)

var (
	// Global flags
	flagConfig   string
	flagTables   string
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "levelup",
	Short: "Level Up - Candy and Dream Shards calculator",
	Long: `Level Up works out how far a batch of EXP candies takes a creature, how
many candies are needed to reach a target level and how many Dream Shards
that costs.

Without a subcommand the interactive calculator starts.

Available commands:
  simulate - Spend a number of candies and print the outcome
  solve    - Candies needed to reach a target level
  tiers    - List the loaded EXP tables
  history  - Show saved calculations
  serve    - Start SSH server for remote use

Examples:
  levelup
  levelup simulate --start 10 --candies 120 --nature boost
  levelup solve --tier 900 --start 15 --target 30
  levelup serve --ssh :2222`,
	Args: cobra.NoArgs,
	Run:  runInteractive,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&flagTables, "tables", "", "Directory with EXP table overrides")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to history database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")

	// Add subcommands
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(tiersCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
}

// env is what every command loads before doing its work.
type env struct {
	cfg     config.Config
	book    *leveling.Book
	sources []tables.Source
	logger  *log.Logger
}

// loadEnv reads config and tables and sets up logging, exiting on failure.
func loadEnv() env {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "levelup",
	})
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.SetLevel(level)

	book, sources, err := tables.Load(flagTables)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading EXP tables: %v\n", err)
		os.Exit(1)
	}
	for _, src := range sources {
		logger.Debug("loaded table", "tier", src.Tier, "cap", src.CapLevel, "file", src.FilePath)
	}

	return env{cfg: cfg, book: book, sources: sources, logger: logger}
}

// openStore opens the history database. Failure is not fatal.
func (e env) openStore() *storage.Store {
	if e.cfg.Storage.DBPath == "" {
		return nil
	}
	store, err := storage.Open(e.cfg.Storage.DBPath)
	if err != nil {
		e.logger.Warn("could not open history database", "error", err)
		return nil
	}
	return store
}

// deps bundles shared resources for the TUI.
func (e env) deps(store *storage.Store) tui.Deps {
	bounds, err := calculator.NewBoundCache(calculator.DefaultBoundCacheSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return tui.Deps{
		Book:   e.book,
		Config: e.cfg,
		Bounds: bounds,
		Store:  store,
		Logger: e.logger,
	}
}

func runInteractive(_ *cobra.Command, _ []string) {
	e := loadEnv()

	// Log lines on stderr would corrupt the alt screen
	if f := openLogFile(); f != nil {
		defer f.Close()
		e.logger.SetOutput(f)
	} else {
		e.logger.SetOutput(io.Discard)
	}

	store := e.openStore()
	if store != nil {
		defer store.Close()
	}

	// Get terminal size
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	if err := tui.Run(e.deps(store), width, height); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// openLogFile opens ~/.levelup/levelup.log for appending, or returns nil.
func openLogFile() *os.File {
	path, err := config.ExpandHome("~/.levelup/levelup.log")
	if err != nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil
	}
	return f
}
