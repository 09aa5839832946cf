package cmd

import (
	"fmt"
	"log/slog"

	"github.com/cottand/rebank/config"
	"github.com/cottand/rebank/internal/log"
	"github.com/cottand/rebank/lexicon"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Settings are shared by every subcommand. Flags registers them on the root
// command and Load fills in the rest before any subcommand runs.
type Settings struct {
	ConfigPath string
	LogLevel   int

	Config  config.Config
	Lexicon *lexicon.Lexicon
}

func (s *Settings) Flags(flags *pflag.FlagSet) {
	flags.StringVar(&s.ConfigPath, "config", "rebank.yaml", "config file")
	flags.IntVarP(&s.LogLevel, "log-level", "l", int(slog.LevelWarn), "log level, overrides the config")
}

// Load is meant as the root command's PersistentPreRunE
func (s *Settings) Load(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(s.ConfigPath)
	if err != nil {
		return fmt.Errorf("could not load config: %w", err)
	}
	s.Config = cfg

	level := cfg.Level()
	if cmd.Flags().Changed("log-level") {
		level = slog.Level(s.LogLevel)
	}
	log.SetLevel(level)
	log.EnableSections(cfg.LogSections...)

	if cfg.Lexicon == "" {
		s.Lexicon = lexicon.Default()
		return nil
	}
	s.Lexicon, err = lexicon.LoadFile(cfg.Lexicon)
	if err != nil {
		return fmt.Errorf("could not load lexicon: %w", err)
	}
	return nil
}
