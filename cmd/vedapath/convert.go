package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/vedapath/internal/quiz"
)

var convertCmd = &cobra.Command{
	Use:   "convert <questions.txt> [questions.json]",
	Short: "Convert a text question file to JSON",
	Long: `Reads the plain-text question format and writes the JSON document
the game loads. Output goes to stdout when no output file is given.

Input format:
  Level 1
  1. What is the first stage of spiritual growth?
  A) Liberation
  B) Ignorance
  Answer: B

Examples:
  vedapath convert questions.txt questions.json
  vedapath convert questions.txt > questions.json`,
	Args: cobra.RangeArgs(1, 2),
	Run:  runConvert,
}

func runConvert(_ *cobra.Command, args []string) {
	in, err := os.Open(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer in.Close()

	doc, skipped, err := quiz.ConvertReport(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var out io.Writer = os.Stdout
	if len(args) == 2 {
		f, err := os.Create(args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	if err := quiz.WriteJSON(out, doc); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	for _, sk := range skipped {
		fmt.Fprintf(os.Stderr, "Warning: level %s question %d skipped: %s\n", sk.Level, sk.Number, sk.Reason)
	}

	bank := doc.Bank()
	total := 0
	for _, level := range bank.Levels() {
		total += bank.Count(level)
	}
	fmt.Fprintf(os.Stderr, "Converted %d questions across %d levels\n", total, len(bank.Levels()))
}
