package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/dictaz/internal/app"
	"github.com/abhisek/dictaz/internal/audio"
	"github.com/abhisek/dictaz/internal/corpus"
)

var drawCmd = &cobra.Command{
	Use:   "draw",
	Short: "Pick a sentence, synthesize it, and save the audio",
	Long: "draw runs one non-interactive round: it picks a sentence from the\n" +
		"chosen theme, translates and synthesizes it, and writes the audio file.\n" +
		"The answer is only printed when asked for.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, logger, closer, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer closer.Close()

		theme, _ := cmd.Flags().GetString("theme")
		outPath, _ := cmd.Flags().GetString("out")
		showAnswer, _ := cmd.Flags().GetBool("answer")
		showTranslation, _ := cmd.Flags().GetBool("translation")
		showHints, _ := cmd.Flags().GetBool("hints")
		play, _ := cmd.Flags().GetBool("play")

		c, err := app.LoadCorpus(ctx, cfg.Corpus, logger)
		if err != nil {
			return err
		}
		sess, err := app.NewSession(ctx, cfg, logger)
		if err != nil {
			return err
		}

		sel, err := sess.Next(ctx, c, theme)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		path, err := audio.Save(outPath, sel.Audio)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, "Audio:", path)

		if showTranslation {
			fmt.Fprintln(out, "Translation:", sel.Translation)
		}
		if showHints && len(sel.Hints) > 0 {
			fmt.Fprintln(out, "Hints:")
			for _, h := range sel.Hints {
				fmt.Fprintf(out, "  %s: %s\n", h.Term, h.Note)
			}
		}
		if showAnswer {
			fmt.Fprintln(out, "Answer:", sel.Sentence)
		}

		if play {
			player, err := audio.NewPlayer(cfg.Player.Command)
			if err != nil {
				return err
			}
			if err := player.Play(ctx, sel.Audio); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	drawCmd.Flags().String("theme", corpus.AllThemes, "Theme to draw from ("+corpus.AllThemes+" for every theme)")
	drawCmd.Flags().StringP("out", "o", "dictaz-sentence", "Audio output path; the extension is added when missing")
	drawCmd.Flags().Bool("answer", false, "Print the sentence")
	drawCmd.Flags().Bool("translation", false, "Print the translation")
	drawCmd.Flags().Bool("hints", false, "Print the vocabulary hints")
	drawCmd.Flags().Bool("play", false, "Play the audio after saving it")
}
