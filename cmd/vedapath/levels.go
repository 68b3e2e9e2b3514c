package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/vedapath/internal/config"
	"github.com/vovakirdan/vedapath/internal/game"
	"github.com/vovakirdan/vedapath/internal/quiz"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Show the level catalog",
	Long: `Lists every level with its category, the number of Vedas it spawns
and how many questions the current question source has for it.

Examples:
  vedapath levels
  vedapath levels --levels ./my-levels.yaml
  vedapath levels --questions https://example.org/questions.json`,
	Run: runLevels,
}

func init() {
	addGameFlags(levelsCmd)
}

func runLevels(cmd *cobra.Command, _ []string) {
	game.SetOptions(game.Options{LevelsPath: flagLevels})
	levels := game.Levels()

	source := flagQuestions
	if source == "" {
		if cfg, err := config.Load(flagConfig); err == nil {
			source = cfg.Questions.Source
		}
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
	defer cancel()
	bank, err := quiz.Load(ctx, source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	if source == "" {
		source = "built-in"
	}
	fmt.Printf("Levels (questions: %s)\n", source)
	fmt.Println()

	fmt.Printf("  %-3s  %-28s  %-18s  %-5s  %s\n", "#", "Name", "Category", "Vedas", "Questions")
	fmt.Printf("  %-3s  %-28s  %-18s  %-5s  %s\n", "-", "----", "--------", "-----", "---------")
	for _, l := range levels {
		count := bank.Count(l.ID)
		warn := ""
		if count < l.RequiredItems {
			warn = "  (too few)"
		}
		fmt.Printf("  %-3d  %-28s  %-18s  %-5d  %d%s\n", l.ID, l.Name, l.Category, l.RequiredItems, count, warn)
		if l.LegacyQuiz != nil {
			fmt.Printf("       gate riddle: %s (%s)\n", l.LegacyQuiz.Question, l.LegacyQuiz.Answer)
		}
	}
}
