package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/vedapath/internal/platform/tui"
	"github.com/vovakirdan/vedapath/internal/registry"
	"github.com/vovakirdan/vedapath/internal/storage"
)

var (
	flagRunsLimit       int
	flagRunsPlayer      string
	flagRunsInteractive bool
	flagRunsClear       bool
	flagRunsID          string
)

var runsCmd = &cobra.Command{
	Use:   "runs [mode]",
	Short: "Show the run history",
	Long: `Display the best runs for a mode, or the most recent runs of every
mode when no mode is given. Completed runs are marked with *.

Examples:
  vedapath runs
  vedapath runs veda
  vedapath runs --player alice
  vedapath runs --id 5f0c1d2e-...
  vedapath runs --interactive
  vedapath runs veda_endless --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Number of runs to show")
	runsCmd.Flags().StringVar(&flagRunsPlayer, "player", "", "Only show runs of this player")
	runsCmd.Flags().BoolVarP(&flagRunsInteractive, "interactive", "i", false, "Browse the history in a table view")
	runsCmd.Flags().BoolVar(&flagRunsClear, "clear", false, "Delete the runs of the given mode")
	runsCmd.Flags().StringVar(&flagRunsID, "id", "", "Show a single run by its run ID")
}

func runRuns(_ *cobra.Command, args []string) {
	mode := ""
	if len(args) > 0 {
		mode = args[0]
		if !registry.Exists(mode) {
			fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", mode)
			fmt.Fprintln(os.Stderr, "Run 'vedapath list' to see available modes.")
			os.Exit(1)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run history: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagRunsClear {
		if mode == "" {
			fmt.Fprintln(os.Stderr, "Error: --clear needs a mode")
			os.Exit(1)
		}
		if err := store.ClearRuns(mode); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared run history of %s\n", mode)
		return
	}

	if flagRunsID != "" {
		showRun(store, flagRunsID)
		return
	}

	if flagRunsInteractive {
		cfg := runtimeConfig()
		if _, err := tui.RunHistory(store, cfg.ScreenW, cfg.ScreenH); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	var runs []storage.RunResult
	var title string
	switch {
	case flagRunsPlayer != "":
		runs, err = store.PlayerRuns(flagRunsPlayer, flagRunsLimit)
		title = "Runs of " + flagRunsPlayer
	case mode != "":
		runs, err = store.TopRuns(mode, flagRunsLimit)
		title = "Best runs - " + mode
	default:
		runs, err = store.RecentRuns(flagRunsLimit)
		title = "Recent runs"
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'vedapath play' and answer a question to record one.")
		return
	}

	header := []string{"Rank", "Player", "Levels", "Right", "Wrong", "Acc", "Time", "Date", "Run ID"}
	widths := []int{4, 12, 6, 5, 5, 4, 6, 12, 36}
	printRow(header, widths)
	dashes := make([]string, len(header))
	for i, h := range header {
		dashes[i] = strings.Repeat("-", len(h))
	}
	printRow(dashes, widths)
	for i, row := range tui.RunRows(runs) {
		printRow(append(row, runs[i].RunID), widths)
	}

	printStats(store, mode)
}

func printRow(cols []string, widths []int) {
	var b strings.Builder
	b.WriteString(" ")
	for i, c := range cols {
		fmt.Fprintf(&b, " %-*s", widths[i], c)
	}
	fmt.Println(strings.TrimRight(b.String(), " "))
}

func showRun(store *storage.Store, runID string) {
	run, err := store.RunByID(runID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if run == nil {
		fmt.Fprintf(os.Stderr, "Error: no run %q\n", runID)
		os.Exit(1)
	}

	status := "abandoned"
	if run.Completed {
		status = "liberated"
	}
	fmt.Printf("Run %s\n\n", run.RunID)
	fmt.Printf("  Player:   %s\n", run.Player)
	fmt.Printf("  Mode:     %s (%s)\n", run.Mode, status)
	fmt.Printf("  Levels:   %d cleared, %d loops\n", run.LevelsCleared, run.Loops)
	fmt.Printf("  Answers:  %d right, %d wrong (%.0f%%)\n", run.Correct, run.Wrong, run.Accuracy()*100)
	fmt.Printf("  Duration: %d:%02d\n", run.DurationSecs/60, run.DurationSecs%60)
	fmt.Printf("  Played:   %s\n", run.CreatedAt.Format("2006-01-02 15:04"))
}

// printStats prints aggregates for one mode, or every played mode.
func printStats(store *storage.Store, mode string) {
	stats := make(map[string]*storage.ModeStats)
	if mode != "" {
		s, err := store.GetModeStats(mode)
		if err != nil {
			return
		}
		stats[mode] = s
	} else {
		all, err := store.GetAllModeStats()
		if err != nil {
			return
		}
		stats = all
	}
	if len(stats) == 0 {
		return
	}

	modes := make([]string, 0, len(stats))
	for m := range stats {
		modes = append(modes, m)
	}
	sort.Strings(modes)

	fmt.Println()
	for _, m := range modes {
		s := stats[m]
		fmt.Printf("%s: %d runs, %d completed, best %d levels, %.0f%% correct\n",
			m, s.Runs, s.Completions, s.BestLevels, s.Accuracy()*100)
	}
}
