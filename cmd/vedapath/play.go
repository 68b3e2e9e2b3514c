package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/vedapath/internal/game"
	"github.com/vovakirdan/vedapath/internal/platform/tui"
	"github.com/vovakirdan/vedapath/internal/registry"
)

var (
	flagConfig    string
	flagLevels    string
	flagQuestions string
	flagLevel     int
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the specified mode (default: veda).

Controls:
  Arrows/WASD  - Move
  A-D / 1-4    - Answer the question on screen (a held A/D key
                 must be released first; digits answer at once)
  P/Esc        - Pause
  R            - Restart the level (or a new session after the end)
  L            - Retry loading questions
  Q/Ctrl+C     - Quit

Question sources (--questions or questions.source in the config):
  empty        - Built-in questions
  path         - A .json or .yaml question file
  http(s) URL  - Fetched in the background when the session starts

Examples:
  vedapath play
  vedapath play veda_endless
  vedapath play --level 4
  vedapath play --questions ./my-questions.yaml
  vedapath play --levels ./my-levels.yaml --config ./vedapath.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	addGameFlags(playCmd)
	playCmd.Flags().IntVar(&flagLevel, "level", 1, "Level to start at (1-based)")
}

// addGameFlags registers the flags shared by play and menu.
func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	cmd.Flags().StringVar(&flagLevels, "levels", "", "Path to custom level catalog YAML")
	cmd.Flags().StringVar(&flagQuestions, "questions", "", "Question file or URL (overrides the config)")
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := game.ModeCampaign
	if len(args) > 0 {
		gameID = args[0]
	}

	// Check if mode exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'vedapath list' to see available modes.")
		os.Exit(1)
	}

	logger, closeLog := openLogger(nil)
	defer closeLog()

	game.SetOptions(game.Options{
		ConfigPath: flagConfig,
		LevelsPath: flagLevels,
		Questions:  flagQuestions,
		Logger:     logger,
	})

	g, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	if vg, ok := g.(*game.Game); ok {
		vg.SetStartLevel(flagLevel)
	}

	store := openStore(logger)

	runErr := tui.Run(g, runtimeConfig(), tui.ModelOptions{
		Store:     store,
		Player:    playerName(),
		HoldTicks: holdTicks(flagConfig),
		Logger:    logger,
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		logger.Error("game loop failed", "error", runErr)
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
