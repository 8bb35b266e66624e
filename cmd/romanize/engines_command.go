package main

import (
	"strconv"

	"github.com/spf13/cobra"
)

func newEnginesCommand(ctx *commandContext) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "engines",
		Short: "List enabled engines in dispatch order",
		RunE: func(cmd *cobra.Command, args []string) error {
			romanizer, err := ctx.ensureRomanizer(cmd.Context())
			if err != nil {
				return err
			}
			if !all {
				names := romanizer.Engines()
				rows := make([][]string, 0, len(names))
				for i, name := range names {
					rows = append(rows, []string{strconv.Itoa(i + 1), name})
				}
				writeRows(cmd.OutOrStdout(), []column{{title: "#", right: true}, {title: "Engine"}}, rows)
				return nil
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			builtin := ctx.builtin.Names()
			rows := make([][]string, 0, len(builtin))
			for i, name := range builtin {
				rows = append(rows, []string{strconv.Itoa(i + 1), name, yesNo(cfg.EngineEnabled(name))})
			}
			writeRows(cmd.OutOrStdout(), []column{{title: "#", right: true}, {title: "Engine"}, {title: "Enabled"}}, rows)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "List every built-in engine with its enabled state")
	return cmd
}
