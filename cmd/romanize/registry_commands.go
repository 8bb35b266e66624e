package main

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"writingsystems/internal/registry"
)

func newRegistryCommand(ctx *commandContext) *cobra.Command {
	registryCmd := &cobra.Command{
		Use:   "registry",
		Short: "Inspect or refresh the language subtag registry",
	}

	registryCmd.AddCommand(newRegistryInfoCommand(ctx))
	registryCmd.AddCommand(newRegistryRefreshCommand(ctx))
	registryCmd.AddCommand(newRegistryShowCommand(ctx))

	return registryCmd
}

func newRegistryInfoCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show where the registry is read from and how old it is",
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := ctx.registrySource()
			if err != nil {
				return err
			}
			info, err := src.Info()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Path:    %s\n", info.Path)
			if info.Local {
				fmt.Fprintln(out, "Source:  local file")
			} else {
				fmt.Fprintf(out, "Source:  %s\n", info.URL)
				fmt.Fprintf(out, "Max age: %s\n", formatDays(info.MaxAge))
			}
			fmt.Fprintf(out, "Present: %s\n", yesNo(info.Exists))
			if info.Exists {
				fmt.Fprintf(out, "Updated: %s (%s ago)\n", info.ModTime.Format(time.RFC3339), info.Age.Round(time.Second))
				if !info.Local {
					fmt.Fprintf(out, "Stale:   %s\n", yesNo(info.Stale))
				}
			}
			return nil
		},
	}
}

func newRegistryRefreshCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Fetch the registry now, replacing the cached copy",
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := ctx.registrySource()
			if err != nil {
				return err
			}
			data, err := src.Refresh(cmd.Context())
			if err != nil {
				return err
			}
			index, err := registry.Parse(bytes.NewReader(data))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registry refreshed (file date %s, %d scripts, %d languages)\n",
				index.FileDate(), index.ScriptCount(), index.LanguageCount())
			return nil
		},
	}
}

func newRegistryShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <subtag>",
		Short: "Show what the registry records for a script or language subtag",
		Example: `  romanize registry show Grek
  romanize registry show el`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := ctx.ensureIndex(cmd.Context())
			if err != nil {
				return err
			}
			subtag := strings.TrimSpace(args[0])
			out := cmd.OutOrStdout()
			if descriptions := index.DescriptionsForScript(subtag); len(descriptions) > 0 {
				fmt.Fprintf(out, "Script:       %s\n", subtag)
				fmt.Fprintf(out, "Descriptions: %s\n", strings.Join(descriptions, "; "))
				fmt.Fprintf(out, "Languages:    %s\n", orNone(index.LanguagesForScript(subtag)))
				return nil
			}
			script, ok := index.SuppressScript(strings.ToLower(subtag))
			if !ok {
				return fmt.Errorf("no script or suppress-script language %q in registry", subtag)
			}
			fmt.Fprintf(out, "Language:     %s\n", strings.ToLower(subtag))
			fmt.Fprintf(out, "Script:       %s\n", script)
			return nil
		},
	}
}

func orNone(values []string) string {
	if len(values) == 0 {
		return "none"
	}
	return strings.Join(values, ", ")
}

func formatDays(d time.Duration) string {
	days := int(d / (24 * time.Hour))
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}
