package main

import (
	"github.com/spf13/cobra"
)

const appVersion = "1.0.0"

// rootFlags are the persistent flags shared by every subcommand.
type rootFlags struct {
	configPath string
	verbose    bool
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}

	long := `Tidy moves files from source directories into destination subfolders
chosen by file extension, using a configurable extension-to-folder mapping.
Hidden files are skipped by default and unmapped extensions go to a
fallback folder.`

	rootCmd := &cobra.Command{
		Use:           "tidy",
		Short:         "Organize files into folders by extension",
		Long:          long,
		Version:       appVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "tidy.json", "Configuration file path")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(newRunCommand(flags))
	rootCmd.AddCommand(newStatusCommand(flags))
	rootCmd.AddCommand(newWatchCommand(flags))
	rootCmd.AddCommand(newStatsCommand(flags))
	rootCmd.AddCommand(newConfigCommand(flags))

	return rootCmd
}
