package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdrpinto/pathfinder"
	"github.com/pdrpinto/pathfinder/config"
	"github.com/pdrpinto/pathfinder/kb"
)

// app carries the state shared by every subcommand once configuration has
// been loaded.
type app struct {
	viper   *viper.Viper
	cfgFile string

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{viper: config.NewViper()}

	rootCmd := &cobra.Command{
		Use:   "pathfinder",
		Short: "Multi-goal maze search and propositional knowledge base",
		Long: `pathfinder finds the cheapest action sequence through every goal of a
grid maze with A*, checks action sequences against a maze, and answers
entailment queries against a CNF knowledge base by resolution.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.load,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (YAML)")
	flags.String("log-level", "info", "log level: debug, info, warn or error")
	flags.String("log-format", "text", "log format: text or json")
	flags.Int("workers", 0, "goal orderings evaluated concurrently (0 = number of CPUs)")
	flags.String("strategy", "resolution", "entailment strategy: resolution or sat")

	a.viper.BindPFlag("log_level", flags.Lookup("log-level"))
	a.viper.BindPFlag("log_format", flags.Lookup("log-format"))
	a.viper.BindPFlag("workers", flags.Lookup("workers"))
	a.viper.BindPFlag("kb.strategy", flags.Lookup("strategy"))

	rootCmd.AddCommand(newSolveCmd(a), newVerifyCmd(a), newAskCmd(a), newServeCmd(a))
	return rootCmd
}

func (a *app) load(cmd *cobra.Command, _ []string) error {
	if err := config.ReadFile(a.viper, a.cfgFile); err != nil {
		return err
	}
	cfg, err := config.Decode(a.viper)
	if err != nil {
		return err
	}
	logger, err := cfg.NewLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	a.cfg, a.logger = cfg, logger
	logger.Debug("configuration loaded", "file", a.viper.ConfigFileUsed(), "workers", cfg.Workers)
	return nil
}

func (a *app) searchOptions() []pathfinder.Option {
	options := []pathfinder.Option{pathfinder.WithLogger(a.logger)}
	if a.cfg.Workers > 0 {
		options = append(options, pathfinder.WithWorkers(a.cfg.Workers))
	}
	return options
}

func (a *app) knowledgeBaseOptions() ([]kb.Option, error) {
	strategy, err := a.cfg.Strategy()
	if err != nil {
		return nil, err
	}
	return []kb.Option{kb.WithStrategy(strategy), kb.WithLogger(a.logger)}, nil
}
