package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/bpmnflow/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <id>",
	Short: "Run a process instance to completion",
	Long: `Places a token on every start event of the definition and forwards tokens along all
outgoing sequence flows until none is left. Prints the visited flow objects.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s, logger := setup(cmd)
		defer s.Close()

		data, _ := cmd.Flags().GetString("data")
		graphMode, _ := cmd.Flags().GetBool("graph")
		jsonMode, _ := cmd.Flags().GetBool("json")

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		err := cli.RunProcess(ctx, s.Engine, args[0], cli.RunOptions{
			Data:  data,
			Graph: graphMode,
			JSON:  jsonMode,
			Debug: logger.Enabled(ctx, slog.LevelDebug),
		}, logger, os.Stdout)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("data", "", "JSON document attached to every token")
	runCmd.Flags().Bool("graph", false, "Print a Mermaid flowchart with the visited flow objects highlighted")
	runCmd.Flags().Bool("json", false, "Print the outcome as JSON")
}
