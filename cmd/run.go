package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/dictaz/internal/app"
	"github.com/abhisek/dictaz/internal/audio"
	"github.com/abhisek/dictaz/internal/corpus"
)

// runApp loads configuration, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	cfg, logger, closer, err := setup(cmd, true)
	if err != nil {
		return err
	}
	defer closer.Close()

	sess, err := app.NewSession(ctx, cfg, logger)
	if err != nil {
		return err
	}

	opts := app.Options{
		Source:  app.SourceName(cfg.Corpus),
		Session: sess,
		LoadCorpus: func(ctx context.Context) (*corpus.Corpus, error) {
			return app.LoadCorpus(ctx, cfg.Corpus, logger)
		},
		Logger: logger,
	}
	opts.Theme, _ = cmd.Flags().GetString("theme")

	player, err := audio.NewPlayer(cfg.Player.Command)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Audio playback unavailable:", err)
		fmt.Fprintln(os.Stderr, "Sentences will be generated but not played.")
	} else {
		opts.Player = player
	}

	return app.Run(ctx, opts)
}
