package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/hydrex/internal/config"
	logpkg "github.com/kailas-cloud/hydrex/internal/logger"
)

// skipRuntime marks commands that run without configuration or logger.
const skipRuntime = "hydrex/skip-runtime"

var (
	flagEnv      string
	flagConfig   string
	flagLogLevel string

	// Populated by PersistentPreRunE before any command runs.
	cfg    config.Config
	env    string
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "hydrex",
	Short: "Hydrate search engine hits into domain models",
	Long: `hydrex maps search engine indexes to domain keys and turns raw documents
and search hits into hydrated models.

Configuration is read from config/<env>.yaml (or --config) after loading .env.`,
	SilenceUsage:      true,
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	PersistentPreRunE: loadRuntime,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagEnv, "env", "", "configuration environment (default: $ENV or local)")
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "path to a config file, overrides --env lookup")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level override: debug, info, warn, error")
}

func loadRuntime(cmd *cobra.Command, _ []string) error {
	if !needsRuntime(cmd) {
		return nil
	}

	if err := config.LoadDotEnv(); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}

	env = flagEnv
	if env == "" {
		env = config.GetEnv()
	}

	var err error
	if flagConfig != "" {
		cfg, err = config.LoadFile(flagConfig)
	} else {
		cfg, err = config.Load(env)
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level := cfg.Logging.Level
	if flagLogLevel != "" {
		level = flagLogLevel
	}
	l, err := logpkg.NewLogger(env, level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	logger = l
	return nil
}

func needsRuntime(cmd *cobra.Command) bool {
	if cmd.Annotations[skipRuntime] != "" {
		return false
	}
	switch cmd.Name() {
	case "help", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return false
	}
	return true
}
