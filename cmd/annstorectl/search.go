package main

import (
	"github.com/xDarkicex/annstore/annstore"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <vector>",
	Short: "Search for the nearest documents to a vector",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		topK, _ := cmd.Flags().GetInt("top")
		ef, _ := cmd.Flags().GetInt("ef")
		exact, _ := cmd.Flags().GetBool("exact")

		s := openStore(true)
		defer s.Close()

		vec := parseVector(args[0])

		var (
			results []annstore.Result
			err     error
		)
		if exact {
			results, err = s.ScanSearch(vec, topK)
		} else {
			results, err = s.Search(vec, topK, ef, nil)
		}
		if err != nil {
			exitError("search: %v", err)
		}
		printResults(results)
	},
}

func init() {
	searchCmd.Flags().Int("top", 10, "number of results to return")
	searchCmd.Flags().Int("ef", 0, "beam width for the HNSW search (0 defaults to top)")
	searchCmd.Flags().Bool("exact", false, "use an exhaustive brute-force scan instead of HNSW")
	rootCmd.AddCommand(searchCmd)
}
