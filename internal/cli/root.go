// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jeranaias/lumina-tui/internal/api"
	"github.com/jeranaias/lumina-tui/internal/config"
	"github.com/jeranaias/lumina-tui/internal/logging"
)

// Version information (overridden at build time with -ldflags -X).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// =============================================================================
// GLOBAL OPTIONS
// =============================================================================

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	configPath string
	server     string
	logLevel   string
}

// resolvePath returns the config file path the flags point at.
func (o *rootOptions) resolvePath() (string, error) {
	if o.configPath != "" {
		return config.ExpandHome(o.configPath), nil
	}
	return config.DefaultPath()
}

// applyOverrides copies flag values over a loaded config.
func (o *rootOptions) applyOverrides(cfg *config.Config) {
	if o.server != "" {
		cfg.Server.URL = o.server
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
}

// loadConfig loads the config file, applies flag overrides and validates
// the result. The resolved path is returned for the reload watcher.
func (o *rootOptions) loadConfig() (*config.Config, string, error) {
	path, err := o.resolvePath()
	if err != nil {
		return nil, "", err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	o.applyOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, "", fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, path, nil
}

// openLogger creates the file logger. console adds warnings on stderr and
// must stay off while the TUI owns the terminal.
func openLogger(cfg *config.Config, console bool) (*zap.Logger, error) {
	return logging.New(logging.Options{
		File:    cfg.Log.File,
		Level:   cfg.Log.Level,
		Console: console,
	})
}

// newClient builds the backend client from the [server] section.
func newClient(cfg *config.Config, log *zap.Logger) *api.Client {
	return api.NewClient(&api.ClientConfig{
		BaseURL:           cfg.Server.URL,
		Timeout:           cfg.Timeout(),
		RequestsPerSecond: cfg.Server.RequestsPerSecond,
		Burst:             cfg.Server.Burst,
		Logger:            log,
	})
}

// setup is the common preamble of the backend subcommands.
func (o *rootOptions) setup() (*config.Config, *zap.Logger, *api.Client, error) {
	cfg, _, err := o.loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	log, err := openLogger(cfg, true)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, log, newClient(cfg, log), nil
}

// =============================================================================
// COMMAND TREE
// =============================================================================

// NewRootCommand builds the lumina command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "lumina",
		Short: "Terminal client for the Lumina chat assistant",
		Long: `lumina is a full-screen terminal client for the Lumina chat backend.

Chats are kept on the server and listed in the sidebar. Right-click a word in
the transcript to look it up, ctrl+r toggles dictation and ctrl+o attaches a
file to the next message.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "config file (default ~/.lumina/config.toml)")
	flags.StringVarP(&opts.server, "server", "s", "", "backend base URL, overrides server.url")
	flags.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error, overrides log.level")

	root.AddCommand(
		newAskCommand(opts),
		newSessionsCommand(opts),
		newUploadCommand(opts),
		newConfigCommand(opts),
		newVersionCommand(),
	)
	return root
}

// Execute runs the command tree against os.Args and returns the process
// exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, errorLabel(os.Stderr)+err.Error())
		return 1
	}
	return 0
}
