package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/bpmnflow/internal/cli"
	"github.com/aretw0/bpmnflow/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bpmnflow",
	Short: "bpmnflow validates and runs BPMN-style process definitions",
	Long: `bpmnflow reads process descriptions (YAML or JSON) from a directory or Redis,
checks every flow object against the structural rules of its kind, and can drive
token-based process instances through them.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", ".", "Directory containing the process descriptions")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("redis-addr", "", "Load process descriptions from this Redis server instead of --dir")
	rootCmd.PersistentFlags().Int("redis-db", 0, "Redis database number")
}

// setup builds the logger and engine from the persistent flags.
// It exits the process on configuration errors, like every other command does.
func setup(cmd *cobra.Command) (*cli.Setup, *slog.Logger) {
	levelName, _ := cmd.Flags().GetString("log-level")
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New(level)
	slog.SetDefault(logger)

	dir, _ := cmd.Flags().GetString("dir")
	redisAddr, _ := cmd.Flags().GetString("redis-addr")
	redisDB, _ := cmd.Flags().GetInt("redis-db")

	s, err := cli.NewEngine(cli.Options{
		Dir:       dir,
		RedisAddr: redisAddr,
		RedisDB:   redisDB,
		Debug:     level <= slog.LevelDebug,
	}, logger)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	return s, logger
}
