package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"writingsystems/internal/config"
	"writingsystems/internal/langtag"
	"writingsystems/internal/logging"
	"writingsystems/internal/romanize"
	"writingsystems/internal/romanstore"
)

type indexSummary struct {
	BatchID string `json:"batch_id"`
	Lines   int    `json:"lines"`
	Saved   int    `json:"saved"`
	Skipped int    `json:"skipped"`
}

func newIndexCommand(ctx *commandContext) *cobra.Command {
	var lang string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "index <file|->",
		Short: "Romanize every line of a file and store the results",
		Long: `Romanize every non-blank line of a file (or stdin with "-") and store the
results under one batch id. A line may carry its own language tag after a tab:

  Σωκράτης<TAB>grc
  Москва<TAB>ru`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			romanizer, err := ctx.ensureRomanizer(cmd.Context())
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			input, closeInput, err := openInput(cmd, args[0])
			if err != nil {
				return err
			}
			defer closeInput()

			summary := indexSummary{BatchID: uuid.NewString()}
			err = ctx.withStore(func(store *romanstore.Store) error {
				scanner := bufio.NewScanner(input)
				scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
				lineNo := 0
				for scanner.Scan() {
					lineNo++
					text, tag := splitIndexLine(scanner.Text(), lang)
					if text == "" {
						continue
					}
					summary.Lines++
					results, err := romanizer.Romanize(text, tag)
					if errors.Is(err, romanize.ErrInvalidTag) {
						summary.Skipped++
						logging.WarnWithContext(logger, "skipping line with invalid language tag", "index_line_skipped",
							logging.Int("line", lineNo),
							logging.String(logging.FieldLangTag, tag),
							logging.String(logging.FieldErrorHint, "use a BCP 47 tag after the tab, e.g. grc or sr-Latn"),
							logging.String(logging.FieldImpact, "line was not indexed"),
						)
						continue
					}
					if err != nil {
						return fmt.Errorf("line %d: %w", lineNo, err)
					}
					saved, err := store.Save(cmd.Context(), summary.BatchID, tag, results)
					if err != nil {
						return fmt.Errorf("line %d: %w", lineNo, err)
					}
					summary.Saved += saved
				}
				if err := scanner.Err(); err != nil {
					return fmt.Errorf("read input: %w", err)
				}
				return nil
			})
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), summary)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d lines (%d romanizations, %d skipped) in batch %s\n",
				summary.Lines, summary.Saved, summary.Skipped, summary.BatchID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", langtag.Undetermined, "Language tag for lines without one")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output the summary as JSON")
	return cmd
}

// splitIndexLine separates "text<TAB>tag"; lines without a tag use fallback.
func splitIndexLine(line, fallback string) (string, string) {
	text, tag, found := strings.Cut(line, "\t")
	text = strings.TrimSpace(text)
	tag = strings.TrimSpace(tag)
	if !found || tag == "" {
		tag = fallback
	}
	return text, tag
}

func openInput(cmd *cobra.Command, arg string) (io.Reader, func(), error) {
	if arg == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	path, err := config.ExpandPath(arg)
	if err != nil {
		return nil, nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open input: %w", err)
	}
	return file, func() { _ = file.Close() }, nil
}
