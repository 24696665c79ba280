package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

const version = "v0.1.0"

func newRootCommand() *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:           "sable",
		Short:         "Sable trains and queries small feedforward neural networks",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			})))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newTrainCommand())
	rootCmd.AddCommand(newPredictCommand())
	rootCmd.AddCommand(newSimilarCommand())
	rootCmd.AddCommand(newInspectCommand())

	return rootCmd
}
