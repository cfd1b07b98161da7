package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/dictaz/internal/app"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List the themes in the corpus",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, closer, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer closer.Close()

		c, err := app.LoadCorpus(cmd.Context(), cfg.Corpus, logger)
		if err != nil {
			return err
		}

		counts := c.CountByTheme()
		out := cmd.OutOrStdout()
		for _, theme := range c.DistinctThemes() {
			fmt.Fprintf(out, "%-24s %d\n", theme, counts[theme])
		}
		fmt.Fprintf(out, "%-24s %d\n", "ALL", c.Len())
		return nil
	},
}
