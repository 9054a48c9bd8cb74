package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print engine counters and health",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		s := openStore(true)
		defer s.Close()

		st := s.Stats()
		fmt.Printf("count=%d deleted=%d max_count=%d entry_point=%d entry_point_level=%d dim=%d\n",
			st.Count, st.DeletedCount, st.MaxCount, st.EntryPoint, st.EntryPointLevel, st.Dimension)
		fmt.Printf("healthy=%t\n", s.IsHealthy())
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
