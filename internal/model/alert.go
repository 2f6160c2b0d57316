// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// AlertMsg asks the UI to show a blocking notice the user must dismiss.
// It is reserved for failures that stop an action from starting.
type AlertMsg struct {
	Text string
}
