// Package main implements annstorectl, a command-line front end over
// a single annstore backing file: add, search, get, delete, vacuum,
// and inspect engine stats without writing Go.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	dbPath string
	dim    int
	metric string
)

var rootCmd = &cobra.Command{
	Use:   "annstorectl",
	Short: "Inspect and operate an annstore backing file",
	Long: `annstorectl is a command-line front end over a single annstore
backing file: add documents, run searches, and inspect engine health
without writing Go.`,
	Version: "0.1.0",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to the backing file (required)")
	rootCmd.PersistentFlags().IntVar(&dim, "dim", 0, "vector dimension (required)")
	rootCmd.PersistentFlags().StringVar(&metric, "metric", "dot", "similarity metric: dot or cosine")
	rootCmd.MarkPersistentFlagRequired("db")
}

func exitError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "annstorectl: "+format+"\n", args...)
	os.Exit(1)
}
