package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tidy/internal/config"
)

func newConfigCommand(flags *rootFlags) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigValidateCommand(flags))
	configCmd.AddCommand(newConfigSetExtCommand(flags))
	configCmd.AddCommand(newConfigAddDirCommand(flags))

	return configCmd
}

func newConfigValidateCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the configuration file against the filesystem",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(flags.configPath)
			if err != nil {
				return err
			}

			result := config.ValidateConfig(cfg)
			out := cmd.OutOrStdout()

			for _, issue := range result.Errors {
				fmt.Fprintf(out, "error: %s: %s\n", issue.Field, issue.Message)
			}
			for _, issue := range result.Warnings {
				fmt.Fprintf(out, "warning: %s: %s\n", issue.Field, issue.Message)
			}

			if !result.Valid {
				return fmt.Errorf("configuration has %d errors", len(result.Errors))
			}
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}

func newConfigSetExtCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   `set-ext ".ext Folder"...`,
		Short: "Map extensions to destination folders",
		Long: `Adds or replaces extension mappings in the configuration file.
Each argument pairs an extension with a folder, for example:

  tidy config set-ext ".jpg Images" ".pdf Documents"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrCreate(flags.configPath)
			if err != nil {
				return err
			}

			cfg.SetExtensions(args)

			// Reject mappings that would not load back.
			if _, err := cfg.BuildExtensionMap(); err != nil {
				return err
			}

			if err := config.Save(cfg, flags.configPath); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d extensions mapped in %s\n",
				len(cfg.ExtensionFolders), flags.configPath)
			return nil
		},
	}
}

func newConfigAddDirCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "add-dir DIRECTORY...",
		Short: "Add source directories to the configuration",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrCreate(flags.configPath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			added := 0
			for _, dir := range args {
				if cfg.AddSourceDirectory(dir) {
					added++
				} else {
					fmt.Fprintf(out, "%s already configured\n", dir)
				}
			}

			if len(cfg.SourceDirectories) > config.MaxSourceDirectories {
				return &config.ConfigError{
					Type: config.ValidationError,
					Message: fmt.Sprintf("sourceDirectories would have %d entries; at most %d are allowed",
						len(cfg.SourceDirectories), config.MaxSourceDirectories),
				}
			}

			if err := config.Save(cfg, flags.configPath); err != nil {
				return err
			}

			fmt.Fprintf(out, "%d directories added to %s\n", added, flags.configPath)
			return nil
		},
	}
}
