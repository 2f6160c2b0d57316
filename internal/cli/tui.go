// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/lumina-tui/internal/config"
	"github.com/jeranaias/lumina-tui/internal/dictation"
	"github.com/jeranaias/lumina-tui/internal/ui/chat"
)

// runTUI starts the full-screen client and blocks until it quits.
func runTUI(ctx context.Context, opts *rootOptions) error {
	cfg, path, err := opts.loadConfig()
	if err != nil {
		return err
	}
	log, err := openLogger(cfg, false)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var rec dictation.Recognizer
	if cfg.Dictation.Command != "" {
		rec = dictation.NewCommandRecognizer(cfg.Dictation.Command)
	}

	m := chat.New(chat.Options{
		Context:    ctx,
		Config:     cfg,
		Backend:    newClient(cfg, log),
		Recognizer: rec,
		Logger:     log,
	})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	// Flags keep priority over the file on reload.
	onChange := func(next *config.Config) {
		opts.applyOverrides(next)
		if err := next.Validate(); err != nil {
			p.Send(chat.ConfigErrorMsg{Err: err})
			return
		}
		log.Info("config reloaded", zap.String("path", path))
		p.Send(chat.ConfigReloadedMsg{Config: next})
	}
	onError := func(err error) {
		log.Warn("config reload failed", zap.String("path", path), zap.Error(err))
		p.Send(chat.ConfigErrorMsg{Err: err})
	}
	if err := config.Watch(ctx, path, onChange, onError); err != nil {
		log.Warn("config watcher disabled", zap.String("path", path), zap.Error(err))
	}

	log.Info("starting",
		zap.String("version", Version),
		zap.String("server", cfg.Server.URL),
		zap.Bool("dictation", rec != nil),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("terminal UI failed: %w", err)
	}
	return nil
}
