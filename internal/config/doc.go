// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for lumina.
//
// Configuration is read from ~/.lumina/config.toml when present, filled with
// defaults, overridden by LUMINA_* environment variables and validated.
//
// # Example config.toml
//
//	[server]
//	url = "http://localhost:8000"
//	timeout_secs = 120
//
//	[dictation]
//	command = "whisper-stream --final-only"
//	quiet_period_ms = 1500
//
//	[lookup]
//	overlay_width = 40
//	overlay_height = 12
//
//	[ui]
//	theme = "auto"
//	include_images = false
//
//	[log]
//	file = "~/.lumina/lumina.log"
//	level = "info"
//
// # Live reload
//
// Watch reports rewrites of the file so the running TUI can pick up new
// dictation and lookup settings without a restart.
package config
