// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package dictation turns a continuous speech-to-text stream into composer
// input.
//
// The Controller is either Stopped or Listening. Each finalized fragment
// is appended to the composer and re-arms the AutoSubmitTimer. When the
// timer fires after the quiet period the controller submits the draft and
// stops listening. A stream error stops listening without submitting.
//
// Speech recognition itself is external: CommandRecognizer runs a
// configured command and treats every non-empty stdout line as one
// finalized fragment.
package dictation
