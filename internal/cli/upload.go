// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jeranaias/lumina-tui/internal/config"
)

func newUploadCommand(root *rootOptions) *cobra.Command {
	var sessionID string
	cmd := &cobra.Command{
		Use:   "upload FILE",
		Short: "Upload a file to the backend",
		Long: `Upload one file as multipart form data. The backend indexes uploads per
chat, so pass --session with the id shown by "lumina sessions".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.ExpandHome(args[0])
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", path, err)
			}
			defer f.Close()

			_, log, client, err := root.setup()
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			name := filepath.Base(path)
			if err := client.Upload(cmd.Context(), name, f, sessionID); err != nil {
				log.Error("upload failed", zap.String("file", name), zap.Error(err))
				return fmt.Errorf("upload of %s failed: %w", name, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %s\n", name)
			return nil
		},
	}
	cmd.Flags().StringVar(&sessionID, "session", "", "session id to attach the file to")
	return cmd
}
