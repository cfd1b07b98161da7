package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/dictaz/internal/app"
)

var translateCmd = &cobra.Command{
	Use:   "translate <sentence>",
	Short: "Translate a sentence with the configured live translator",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, logger, closer, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer closer.Close()

		kind := cfg.Translation.Strategy
		if kind == "auto" || kind == "column" {
			kind = ""
		}
		t, err := app.LiveTranslator(ctx, cfg, kind, logger)
		if err != nil {
			return err
		}
		if t == nil {
			return fmt.Errorf("no live translator configured (set translation.google_api_key or an LLM API key)")
		}

		out, err := t.Translate(ctx, strings.Join(args, " "), cfg.Translation.Source, cfg.Translation.Target)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}
