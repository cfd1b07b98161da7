package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/dictaz/internal/app"
	"github.com/abhisek/dictaz/internal/corpus"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the configured corpus",
	Long: "check loads the corpus exactly as a practice session would and reports\n" +
		"the first problem found, with its row number, or a summary when the\n" +
		"corpus is valid.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, closer, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer closer.Close()

		out := cmd.OutOrStdout()
		c, err := app.LoadCorpus(cmd.Context(), cfg.Corpus, logger)
		if err != nil {
			var le *corpus.LoadError
			if errors.As(err, &le) && le.Row > 0 {
				fmt.Fprintf(out, "✗ row %d: %v\n", le.Row, le.Err)
			} else {
				fmt.Fprintf(out, "✗ %v\n", err)
			}
			return fmt.Errorf("corpus is invalid")
		}

		withTranslation, withHints := 0, 0
		for _, r := range c.Rows() {
			if r.Translation != "" {
				withTranslation++
			}
			if len(r.Hints) > 0 {
				withHints++
			}
		}

		fmt.Fprintf(out, "✓ %s: %d sentences, %d themes\n", app.SourceName(cfg.Corpus), c.Len(), len(c.DistinctThemes()))
		fmt.Fprintf(out, "  %d with stored translations, %d with hints\n", withTranslation, withHints)
		if withTranslation < c.Len() && cfg.Translation.Strategy == "column" {
			fmt.Fprintln(out, "  warning: translation.strategy=column but some rows have no translation")
		}
		return nil
	},
}
