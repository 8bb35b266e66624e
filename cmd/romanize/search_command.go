package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"writingsystems/internal/romanstore"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Find stored text by the start of its romanization",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *romanstore.Store) error {
				records, err := store.Search(cmd.Context(), args[0], limit)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), jsonList(records))
				}
				out := cmd.OutOrStdout()
				if len(records) == 0 {
					if isTerminal(out) {
						fmt.Fprintln(out, "No matches")
					}
					return nil
				}
				rows := make([][]string, 0, len(records))
				for _, r := range records {
					rows = append(rows, []string{r.Original, r.Romanized, r.Engine, r.OriginalLangTag})
				}
				writeRows(out, []column{{title: "Original"}, {title: "Romanized"}, {title: "Engine"}, {title: "Tag"}}, rows)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", romanstore.DefaultSearchLimit, "Maximum number of matches")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output matches as JSON")
	return cmd
}
