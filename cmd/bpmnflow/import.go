package main

import (
	"fmt"
	"os"

	"github.com/aretw0/bpmnflow/internal/cli"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Copy a process description into the repository",
	Long: `Import compiles a YAML or JSON process description and saves it into --dir,
or into Redis when --redis-addr is set. The description is not validated; run
'bpmnflow validate' afterwards.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s, _ := setup(cmd)
		defer s.Close()

		raw, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		id, _ := cmd.Flags().GetString("id")
		if _, err := cli.Import(cmd.Context(), s.Engine, s.Store, id, raw, os.Stdout); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	importCmd.Flags().String("id", "", "Store under this id instead of the one declared in the file")
	rootCmd.AddCommand(importCmd)
}
