package main

import (
	"fmt"
	"os"

	"github.com/aretw0/bpmnflow/internal/cli"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <id>",
	Short: "Export a process definition as a Mermaid flowchart",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s, _ := setup(cmd)
		defer s.Close()

		if err := cli.Graph(cmd.Context(), s.Engine, args[0], os.Stdout); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
