// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dictation

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrNoCommand is returned when no recognizer command is configured.
var ErrNoCommand = errors.New("no dictation command configured")

// Event is one item of a recognition stream: a finalized fragment or a
// stream error. The stream ends when its channel is closed.
type Event struct {
	Text string
	Err  error
}

// Recognizer starts continuous recognition. The returned channel is closed
// when the stream ends, either on its own or because ctx was canceled.
type Recognizer interface {
	Start(ctx context.Context) (<-chan Event, error)
}

// =============================================================================
// COMMAND RECOGNIZER
// =============================================================================

// CommandRecognizer runs an external speech-to-text program.
type CommandRecognizer struct {
	Command string
}

// NewCommandRecognizer creates a recognizer for the given command line.
func NewCommandRecognizer(command string) *CommandRecognizer {
	return &CommandRecognizer{Command: command}
}

// Start launches the command. Canceling ctx kills it.
func (r *CommandRecognizer) Start(ctx context.Context) (<-chan Event, error) {
	args := strings.Fields(r.Command)
	if len(args) == 0 {
		return nil, ErrNoCommand
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("dictation pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", args[0], err)
	}

	events := make(chan Event)
	go func() {
		defer close(events)

		send := func(ev Event) bool {
			select {
			case events <- ev:
				return true
			case <-ctx.Done():
				return false
			}
		}

		scanner := bufio.NewScanner(stdout)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			if !send(Event{Text: line}) {
				break
			}
		}
		scanErr := scanner.Err()
		waitErr := cmd.Wait()

		if ctx.Err() != nil {
			return
		}
		if scanErr != nil {
			send(Event{Err: scanErr})
		} else if waitErr != nil {
			send(Event{Err: waitErr})
		}
	}()

	return events, nil
}
