package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"writingsystems/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Create or check the configuration file",
	}
	configCmd.AddCommand(newConfigInitCommand(), newConfigValidateCommand(ctx))
	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var pathFlag string
	var force bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write the sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := initTarget(pathFlag)
			if err != nil {
				return err
			}
			_, statErr := os.Stat(target)
			switch {
			case statErr == nil && !force:
				return fmt.Errorf("%s already exists; pass --force to overwrite it", target)
			case statErr != nil && !errors.Is(statErr, fs.ErrNotExist):
				return fmt.Errorf("inspect %s: %w", target, statErr)
			}
			if err := config.CreateSample(target); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample configuration to %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&pathFlag, "path", "p", "", "Where to write the file (default ~/.config/romanize/config.toml)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Replace an existing file")
	return cmd
}

func initTarget(pathFlag string) (string, error) {
	if p := strings.TrimSpace(pathFlag); p != "" {
		return config.ExpandPath(p)
	}
	return config.DefaultConfigPath()
}

// validate loads the file itself so a broken config is reported here rather
// than by the root command's pre-run.
func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "validate",
		Short:       "Check the configuration file and print the effective settings",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var pathFlag string
			if ctx.configFlag != nil {
				pathFlag = strings.TrimSpace(*ctx.configFlag)
			}
			cfg, resolved, exists, err := config.Load(pathFlag)
			if err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", resolved)
			if !exists {
				fmt.Fprintln(out, "No file found; using built-in defaults")
			}
			fmt.Fprintf(out, "Store:       %s\n", cfg.StorePath())
			if cfg.Registry.File != "" {
				fmt.Fprintf(out, "Registry:    %s (local file)\n", cfg.Registry.File)
			} else {
				fmt.Fprintf(out, "Registry:    %s\n", cfg.Registry.URL)
			}
			fmt.Fprintf(out, "Disabled:    %s\n", orNone(cfg.Engines.Disabled))
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}
