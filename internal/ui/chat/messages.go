// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import "github.com/jeranaias/lumina-tui/internal/config"

// ConfigReloadedMsg delivers a configuration re-read after the file
// changed on disk.
type ConfigReloadedMsg struct {
	Config *config.Config
}

// ConfigErrorMsg reports a configuration file that could not be re-read.
type ConfigErrorMsg struct {
	Err error
}
