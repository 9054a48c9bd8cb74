package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <vector>",
	Short: "Add a document",
	Long:  `Add a document with a comma-separated vector, e.g. "1,0,0,0".`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		meta, _ := cmd.Flags().GetString("meta")

		s := openStore(true)
		defer s.Close()

		vec := parseVector(args[0])
		id, err := s.Add(vec, []byte(meta), nil)
		if err != nil {
			exitError("add: %v", err)
		}
		fmt.Println(id.String())
	},
}

func init() {
	addCmd.Flags().String("meta", "", "metadata string stored alongside the vector")
	rootCmd.AddCommand(addCmd)
}
