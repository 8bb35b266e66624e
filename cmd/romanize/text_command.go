package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"writingsystems/internal/engines"
	"writingsystems/internal/langtag"
)

func newTextCommand(ctx *commandContext) *cobra.Command {
	var lang string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "text <text>",
		Short: "Romanize a single string",
		Example: `  romanize text Αθήνα --lang grc
  romanize text "Фёдор Достоевский" --lang ru --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			romanizer, err := ctx.ensureRomanizer(cmd.Context())
			if err != nil {
				return err
			}
			results, err := romanizer.Romanize(args[0], lang)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), jsonList(results))
			}
			printResults(cmd, results)
			return nil
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", langtag.Undetermined, "BCP 47 language tag of the text")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output results as JSON")
	return cmd
}

func printResults(cmd *cobra.Command, results []engines.RomanString) {
	out := cmd.OutOrStdout()
	if len(results) == 0 {
		if isTerminal(out) {
			fmt.Fprintln(out, "No romanizations")
		}
		return
	}
	rows := make([][]string, 0, len(results))
	for _, rs := range results {
		rows = append(rows, []string{rs.Romanized, rs.Engine, rs.OriginalLangTag})
	}
	writeRows(out, []column{{title: "Romanized"}, {title: "Engine"}, {title: "Tag"}}, rows)
}
