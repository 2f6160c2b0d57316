// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jeranaias/lumina-tui/internal/model"
	"github.com/jeranaias/lumina-tui/internal/ui/components"
	"github.com/jeranaias/lumina-tui/internal/util"
)

// NoSessionsText is printed when the server has no saved chats.
const NoSessionsText = "No saved chats."

func newSessionsCommand(root *rootOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:     "sessions",
		Aliases: []string{"ls"},
		Short:   "List saved chats",
		Long:    "List saved chats in server order. Pinned chats are marked with ★.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, client, err := root.setup()
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			sessions, err := client.ListSessions(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list sessions: %w", err)
			}
			out := cmd.OutOrStdout()
			if asJSON {
				if sessions == nil {
					sessions = []model.Session{}
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(sessions)
			}
			printSessions(out, sessions)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the list as JSON")
	return cmd
}

// printSessions writes one line per session: pin marker, id, title.
func printSessions(out io.Writer, sessions []model.Session) {
	if len(sessions) == 0 {
		fmt.Fprintln(out, paint(out, dimStyle, NoSessionsText))
		return
	}

	idWidth := 0
	for _, s := range sessions {
		idWidth = max(idWidth, util.StringWidth(s.ID))
	}
	titleWidth := max(terminalWidth(out)-idWidth-4, 10)

	for _, s := range sessions {
		marker := " "
		if s.Pinned {
			marker = paint(out, pinStyle, "★")
		}
		title := s.Title
		if title == "" {
			title = components.UntitledSession
		}
		fmt.Fprintf(out, "%s %-*s  %s\n", marker, idWidth, s.ID, util.TruncateWidth(title, titleWidth))
	}
}
