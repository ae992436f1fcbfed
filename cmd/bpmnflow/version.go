package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/bpmnflow"
	"github.com/aretw0/bpmnflow/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of bpmnflow",
	Run: func(cmd *cobra.Command, args []string) {
		if tui.IsTerminal(os.Stdout) {
			tui.PrintBanner(os.Stdout, bpmnflow.Version)
			return
		}
		fmt.Printf("bpmnflow version %s\n", strings.TrimSpace(bpmnflow.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
