package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/phrazzld/flashnotes/internal/config"
	"github.com/phrazzld/flashnotes/internal/platform/logger"
	"github.com/spf13/cobra"
)

// globalOptions holds the flags shared by every command.
type globalOptions struct {
	configPath string
	logLevel   string
	envFile    string
}

// newRootCmd creates the root command with all subcommands attached.
func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "flashnotes",
		Short: "Turn study notes into summaries and flashcards",
		Long: `flashnotes splits a document into chunks, summarizes each chunk with a
pretrained summarization model, and turns the summary into up to four
study flashcards.

Configuration is read from an optional config file and FLASHNOTES_*
environment variables (for example FLASHNOTES_LLM_PROVIDER). A .env file in
the working directory is loaded first when present.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadEnvFile(opts.envFile)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (default ./config.{yaml,toml,json} when present)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level override: debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file with environment overrides")

	cmd.AddCommand(
		newServeCmd(opts),
		newSummarizeCmd(opts),
		newMCPCmd(opts),
		newVersionCmd(),
	)

	return cmd
}

// loadEnvFile loads environment variables from path. Variables that are
// already set win, and a missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// loadAppConfig loads the application configuration and applies flag
// overrides.
func loadAppConfig(opts *globalOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if opts.logLevel != "" {
		if _, err := logger.ParseLevel(opts.logLevel); err != nil {
			return nil, err
		}
		cfg.Server.LogLevel = opts.logLevel
	}

	return cfg, nil
}

// setupAppLogger configures the application logger from config settings.
// Logs always go to stderr so stdout stays free for command output and the
// MCP protocol.
func setupAppLogger(cmd *cobra.Command, cfg *config.Config) (*slog.Logger, error) {
	l, err := logger.Setup(logger.LoggerConfig{
		Level:  cfg.Server.LogLevel,
		Format: cfg.Server.LogFormat,
		Writer: cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}
	return l, nil
}

// initializeApp loads configuration, sets up logging, and wires the
// application for the given command.
func initializeApp(cmd *cobra.Command, opts *globalOptions) (*application, error) {
	cfg, err := loadAppConfig(opts)
	if err != nil {
		return nil, err
	}

	l, err := setupAppLogger(cmd, cfg)
	if err != nil {
		return nil, err
	}

	l.Debug("configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("provider", cfg.LLM.Provider),
		slog.String("model", cfg.LLM.ModelName),
		slog.Bool("api_key_present", cfg.LLM.APIKey != ""))

	return newApplication(cfg, l)
}
