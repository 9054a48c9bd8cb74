package main

import (
	"fmt"

	"github.com/xDarkicex/annstore/annstore"
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <docid>",
	Short: "Fetch a document's vector and metadata by DocID",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := annstore.ParseDocID(args[0])
		if err != nil {
			exitError("%v", err)
		}

		s := openStore(true)
		defer s.Close()

		vec, meta, ok, err := s.GetByID(id)
		if err != nil {
			exitError("get: %v", err)
		}
		if !ok {
			exitError("no such document: %s", args[0])
		}
		fmt.Printf("vector=%s\nmeta=%q\n", formatVector(vec), string(meta))
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
}
