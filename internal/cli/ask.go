// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - one-shot question for lumina.
//
// Command: ask [message]
// Short:   Ask a single question
//
// Examples:
//   lumina ask "What is a quasar?"
//   echo "Summarize the news" | lumina ask
//   lumina ask --json "Define entropy"
//
// The message goes to POST /chat on its own: no session is created and
// nothing is added to the prompt history. With no argument the message is
// read from stdin, or prompted for when stdin is a terminal.

package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jeranaias/lumina-tui/internal/api"
	"github.com/jeranaias/lumina-tui/internal/pipeline"
)

// errEmptyMessage is returned when there is nothing to send.
var errEmptyMessage = errors.New("message is empty")

const askPrompt = "lumina> "

type askOptions struct {
	json bool
}

func newAskCommand(root *rootOptions) *cobra.Command {
	opts := &askOptions{}
	cmd := &cobra.Command{
		Use:   "ask [message]",
		Short: "Ask a single question without a session",
		Example: `  lumina ask "What is a quasar?"
  echo "Summarize the news" | lumina ask`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(cmd, root, opts, args)
		},
	}
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the raw response as JSON")
	return cmd
}

func runAsk(cmd *cobra.Command, root *rootOptions, opts *askOptions, args []string) error {
	message := strings.TrimSpace(strings.Join(args, " "))
	if message == "" {
		read, err := readMessage(cmd.InOrStdin())
		if err != nil {
			return err
		}
		message = read
	}
	if message == "" {
		return errEmptyMessage
	}

	_, log, client, err := root.setup()
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	resp, err := client.Ask(cmd.Context(), message)
	if err != nil {
		log.Error("ask failed", zap.Error(err))
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%s %w", pipeline.ConnectionErrorText, err)
	}

	out := cmd.OutOrStdout()
	if opts.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}
	displayResponse(out, resp)
	return nil
}

// readMessage prompts on a terminal and otherwise reads all of r.
func readMessage(r io.Reader) (string, error) {
	if isInputTerminal(r) {
		return promptMessage()
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read message: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// promptMessage asks for the message with line editing.
func promptMessage() (string, error) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	input, err := line.Prompt(askPrompt)
	if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
		return "", errEmptyMessage
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

// =============================================================================
// OUTPUT
// =============================================================================

// displayResponse prints the answer followed by any images. Markdown is
// rendered only when out is a terminal.
func displayResponse(out io.Writer, resp *api.ChatResponse) {
	answer := resp.Answer
	if strings.TrimSpace(answer) == "" {
		answer = pipeline.NoResponseText
	}

	if isTerminal(out) {
		fmt.Fprint(out, renderMarkdown(answer, terminalWidth(out)))
	} else {
		fmt.Fprintln(out, answer)
	}

	for _, img := range resp.Images {
		title := img.Title
		if img.ContextLabel != "" {
			title += " (" + img.ContextLabel + ")"
		}
		fmt.Fprintf(out, "%s %s\n", paint(out, labelStyle, "▣"), title)
		fmt.Fprintf(out, "  %s\n", paint(out, dimStyle, img.URL))
	}
}

// renderMarkdown renders text with glamour, falling back to the raw text.
func renderMarkdown(text string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width-2),
	)
	if err != nil {
		return text + "\n"
	}
	rendered, err := r.Render(text)
	if err != nil {
		return text + "\n"
	}
	return rendered
}
