package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/bpmnflow/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [id...]",
	Short: "Check process definitions for structural errors",
	Long: `Validates the named process definitions, or every definition when none is given.
Each finding is reported with its code (FO1-FO5). Exits with status 1 when any definition is invalid.`,
	Run: func(cmd *cobra.Command, args []string) {
		s, _ := setup(cmd)
		defer s.Close()

		jsonOutput, _ := cmd.Flags().GetBool("json")
		err := cli.Validate(cmd.Context(), s.Engine, args, os.Stdout, jsonOutput)
		if errors.Is(err, cli.ErrInvalid) {
			os.Exit(1)
		}
		if err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().Bool("json", false, "Print the reports as JSON")
}
