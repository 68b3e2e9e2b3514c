package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/vedapath/internal/game"
	"github.com/vovakirdan/vedapath/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start Veda Path with a mode picker menu",
	Long: `Start Veda Path in interactive menu mode.

Pick a mode and a start level. After a session ends, B returns to the menu.

Controls:
  Up/Down/j/k     - Choose a mode
  Left/Right/h/l  - Choose the start level
  Enter/Space     - Play
  Tab             - Run history
  Q               - Quit

Examples:
  vedapath menu
  vedapath menu --fps 30
  vedapath menu --questions ./questions.yaml`,
	Run: runMenu,
}

func init() {
	addGameFlags(menuCmd)
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, closeLog := openLogger(nil)
	defer closeLog()

	game.SetOptions(game.Options{
		ConfigPath: flagConfig,
		LevelsPath: flagLevels,
		Questions:  flagQuestions,
		Logger:     logger,
	})

	store := openStore(logger)

	err := tui.RunSession(runtimeConfig(), tui.ModelOptions{
		Store:     store,
		Player:    playerName(),
		HoldTicks: holdTicks(flagConfig),
		Logger:    logger,
	})

	// Cleanup
	if store != nil {
		store.Close()
	}

	if err != nil {
		logger.Error("menu loop failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
