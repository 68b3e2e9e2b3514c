package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/vedapath/internal/config"
)

var (
	flagConfigWrite bool
	flagConfigForce bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print or install the default game config",
	Long: `Prints the built-in vedapath.yaml. With --write the file is copied to
~/.vedapath/configs/vedapath.yaml, where play, menu and serve pick it up.

Examples:
  vedapath config > my-vedapath.yaml
  vedapath config --write`,
	Run: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigWrite, "write", false, "Install the default config in the user config directory")
	configCmd.Flags().BoolVar(&flagConfigForce, "force", false, "Overwrite an existing user config")
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) {
	data := config.DefaultYAML()
	if !flagConfigWrite {
		os.Stdout.Write(data)
		return
	}

	path := config.UserPath(config.FileName)
	if path == "" {
		fmt.Fprintln(os.Stderr, "Error: cannot determine home directory")
		os.Exit(1)
	}
	if _, err := os.Stat(path); err == nil && !flagConfigForce {
		fmt.Fprintf(os.Stderr, "Error: %s already exists (use --force to overwrite)\n", path)
		os.Exit(1)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", path)
}
