package cmd

import (
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/abhisek/dictaz/internal/config"
	"github.com/abhisek/dictaz/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "dictaz",
	Short: "Terminal dictation practice",
	Long: "dictaz plays a sentence aloud, you type what you heard, and it tells you\n" +
		"whether you got it. Translations, vocabulary hints, and the answer are\n" +
		"one keystroke away.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Config file (default ./dictaz.yaml or $XDG_CONFIG_HOME/dictaz/dictaz.yaml)")
	pf.String("env-file", ".env", "Dotenv file exported before reading the environment")
	pf.String("corpus", "", "Sentence source: builtin, csv, sqlite, or sheet")
	pf.String("corpus-path", "", "Path for the csv and sqlite sources")
	pf.String("strategy", "", "Translation strategy: auto, column, llm, or google")
	pf.String("speech", "", "Speech provider: google, openai, or mock")
	pf.String("voice", "", "Voice name, e.g. en-US-Neural2-I")
	pf.Uint64("seed", 0, "Seed for sentence selection (0 = random)")
	pf.String("log-level", "", "Log level: debug, info, warn, error")

	rootCmd.Flags().String("theme", "", "Start practicing this theme directly (ALL for every theme)")

	rootCmd.AddCommand(themesCmd)
	rootCmd.AddCommand(drawCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(translateCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads configuration with this command's flags bound on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	file, _ := cmd.Flags().GetString("config")
	envFile, _ := cmd.Flags().GetString("env-file")
	return config.Load(config.Options{
		File:    file,
		EnvFile: envFile,
		Flags:   cmd.Flags(),
	})
}

// setup loads configuration and builds a logger. Interactive commands log
// to the configured file; the rest log to stderr.
func setup(cmd *cobra.Command, interactive bool) (*config.Config, *logrus.Logger, io.Closer, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	if !interactive && !cmd.Flags().Changed("log-level") && cfg.Log.Level == "info" {
		cfg.Log.Level = "warn"
	}
	logger, closer, err := logging.NewLogger(cfg.Log, interactive)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, logger, closer, nil
}
