// vedapath is a terminal platformer about collecting the Vedas and
// answering their questions to open the gate of every level.
//
// Usage:
//
//	vedapath list                 - List available modes
//	vedapath play [mode]          - Play a mode (default: veda)
//	vedapath menu                 - Pick a mode and start level interactively
//	vedapath levels               - Show the level catalog
//	vedapath convert <in> [out]   - Convert a text question file to JSON
//	vedapath runs [mode]          - Show the run history
//	vedapath config               - Print the default game config
//	vedapath serve                - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 60)
//	--seed <value>     - Set RNG seed for reproducible spawns
//	--db <path>        - Set database path (default: ~/.vedapath/runs.db)
//	--log-file <path>  - Set log file (default: ~/.vedapath/vedapath.log)
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/vedapath/internal/config"
	"github.com/vovakirdan/vedapath/internal/core"
	// Import the game to register its modes
	_ "github.com/vovakirdan/vedapath/internal/game"
	"github.com/vovakirdan/vedapath/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogFile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "vedapath",
	Short: "Veda Path - collect the Vedas, answer, open the gate",
	Long: `Veda Path is a terminal platformer. Walk the field, touch a Veda to
get its question, answer enough of them correctly and the gate to the next
level opens.

Available commands:
  list     - Show all available modes
  play     - Play a mode directly
  menu     - Interactive mode and level picker
  levels   - Show the level catalog and question counts
  convert  - Convert a text question file to JSON
  runs     - View the run history
  config   - Print or install the default config
  serve    - Start SSH server for remote play

Examples:
  vedapath play
  vedapath play veda_endless --level 3
  vedapath play --questions https://example.org/questions.json
  vedapath menu
  vedapath serve --ssh :2222`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.vedapath/runs.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.vedapath/vedapath.log", "Log file for terminal sessions (empty = no logging)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(serveCmd)
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// openLogger writes to the log file, since the terminal belongs to the game.
// The returned closer is never nil.
func openLogger(out io.Writer) (*log.Logger, func()) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	opts := log.Options{ReportTimestamp: true, Prefix: "vedapath", Level: level}

	if out != nil {
		return log.NewWithOptions(out, opts), func() {}
	}
	if flagLogFile == "" {
		return log.New(io.Discard), func() {}
	}

	path, err := config.ExpandHome(flagLogFile)
	if err == nil {
		err = os.MkdirAll(filepath.Dir(path), 0o755)
	}
	var f *os.File
	if err == nil {
		f, err = os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
		return log.New(io.Discard), func() {}
	}
	return log.NewWithOptions(f, opts), func() { f.Close() }
}

// openStore opens the run history. Games still work without it.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run history: %v\n", err)
		logger.Warn("run history unavailable", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// playerName is the name recorded with local runs.
func playerName() string {
	for _, env := range []string{"USER", "USERNAME"} {
		if name := os.Getenv(env); name != "" {
			return name
		}
	}
	return "player"
}

// holdTicks reads the input latch window from the game config.
func holdTicks(configPath string) int {
	cfg, err := config.Load(configPath)
	if err != nil {
		return 0
	}
	return cfg.Input.HoldTicks
}
