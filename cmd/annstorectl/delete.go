package main

import (
	"fmt"

	"github.com/xDarkicex/annstore/annstore"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <docid>",
	Short: "Soft-delete a document by DocID",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := annstore.ParseDocID(args[0])
		if err != nil {
			exitError("%v", err)
		}

		s := openStore(true)
		defer s.Close()

		ok, err := s.Delete(id)
		if err != nil {
			exitError("delete: %v", err)
		}
		if !ok {
			exitError("no such document: %s", args[0])
		}
		fmt.Println("deleted")
	},
}

var vacuumCmd = &cobra.Command{
	Use:   "vacuum",
	Short: "Rebuild the backing file, reclaiming tombstoned slots",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		s := openStore(true)
		defer s.Close()

		if err := s.Vacuum(); err != nil {
			exitError("vacuum: %v", err)
		}
		fmt.Println("vacuum complete")
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(vacuumCmd)
}
