// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package composer

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/lumina-tui/internal/model"
)

// UploadFailedText is shown when an attachment cannot be uploaded.
const UploadFailedText = "Upload failed."

// Uploader sends an attachment to the backend.
type Uploader interface {
	Upload(ctx context.Context, filename string, content io.Reader, sessionID string) error
}

// Attachment is the single pending file of a draft.
type Attachment struct {
	Name      string
	Uploading bool
}

// Draft is a snapshot of what would be sent.
type Draft struct {
	Text          string
	Attachment    *Attachment
	IncludeImages bool
}

// IsEmpty reports whether there is nothing to send: blank text and no
// attachment.
func (d Draft) IsEmpty() bool {
	return strings.TrimSpace(d.Text) == "" && d.Attachment == nil
}

// UploadedMsg carries the result of an attachment upload.
type UploadedMsg struct {
	Gen  uint64
	Name string
	Err  error
}

// =============================================================================
// COMPOSER
// =============================================================================

// Composer owns the pending message. Use it only from the UI event loop.
type Composer struct {
	ctx      context.Context
	uploader Uploader
	log      *zap.Logger

	text          string
	attachment    *Attachment
	includeImages bool
	history       *History
	uploadGen     uint64
}

// New creates a composer. uploader may be nil when attachments are disabled.
func New(ctx context.Context, uploader Uploader, history *History, log *zap.Logger) *Composer {
	if history == nil {
		history = NewHistory(DefaultHistorySize)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Composer{ctx: ctx, uploader: uploader, history: history, log: log.Named("composer")}
}

// Text returns the draft text.
func (c *Composer) Text() string { return c.text }

// SetText replaces the draft text. It does not leave recall navigation.
func (c *Composer) SetText(text string) { c.text = text }

// AppendFragment appends a dictated fragment, separated by a space from any
// existing text.
func (c *Composer) AppendFragment(fragment string) {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return
	}
	if c.text == "" {
		c.text = fragment
		return
	}
	c.text += " " + fragment
}

// History returns the prompt history.
func (c *Composer) History() *History { return c.history }

// IncludeImages reports whether supplementary images are requested.
func (c *Composer) IncludeImages() bool { return c.includeImages }

// SetIncludeImages sets the include-images flag.
func (c *Composer) SetIncludeImages(v bool) { c.includeImages = v }

// ToggleIncludeImages flips the include-images flag.
func (c *Composer) ToggleIncludeImages() { c.includeImages = !c.includeImages }

// Attachment returns the pending attachment, or nil.
func (c *Composer) Attachment() *Attachment {
	if c.attachment == nil {
		return nil
	}
	a := *c.attachment
	return &a
}

// Draft returns a snapshot of the pending message.
func (c *Composer) Draft() Draft {
	return Draft{Text: c.text, Attachment: c.Attachment(), IncludeImages: c.includeImages}
}

// Take returns the draft and clears text and attachment. The include-images
// flag is a preference and survives.
func (c *Composer) Take() Draft {
	d := c.Draft()
	c.text = ""
	c.ClearAttachment()
	return d
}

// =============================================================================
// RECALL
// =============================================================================

// RecallPrevious replaces the text with the previous history entry. It
// returns false when the history is empty, in which case the key keeps its
// default meaning.
func (c *Composer) RecallPrevious() bool {
	text, ok := c.history.Previous()
	if !ok {
		return false
	}
	c.text = text
	return true
}

// RecallNext replaces the text with the next history entry, or clears it
// when stepping past the newest entry. It returns false when not navigating.
func (c *Composer) RecallNext() bool {
	text, ok := c.history.Next()
	if !ok {
		return false
	}
	c.text = text
	return true
}

// =============================================================================
// ATTACHMENT
// =============================================================================

// Attach replaces any pending attachment with the file at path and returns
// the command uploading it. sessionID is sent along when non-empty.
func (c *Composer) Attach(path, sessionID string) tea.Cmd {
	name := filepath.Base(path)
	c.uploadGen++
	c.attachment = &Attachment{Name: name, Uploading: true}

	ctx, uploader, gen := c.ctx, c.uploader, c.uploadGen
	return func() tea.Msg {
		if uploader == nil {
			return UploadedMsg{Gen: gen, Name: name, Err: fmt.Errorf("uploads are not available")}
		}
		f, err := os.Open(path)
		if err != nil {
			return UploadedMsg{Gen: gen, Name: name, Err: err}
		}
		defer f.Close()
		return UploadedMsg{Gen: gen, Name: name, Err: uploader.Upload(ctx, name, f, sessionID)}
	}
}

// ClearAttachment discards the pending attachment. A still running upload
// for it is ignored when it completes.
func (c *Composer) ClearAttachment() {
	c.attachment = nil
	c.uploadGen++
}

// HandleMsg applies an upload result. A failed upload discards the
// attachment and returns a command raising a blocking alert.
func (c *Composer) HandleMsg(msg tea.Msg) tea.Cmd {
	m, ok := msg.(UploadedMsg)
	if !ok {
		return nil
	}
	if m.Gen != c.uploadGen || c.attachment == nil {
		return nil
	}
	if m.Err != nil {
		c.log.Warn("upload failed", zap.String("file", m.Name), zap.Error(m.Err))
		c.attachment = nil
		return func() tea.Msg { return model.AlertMsg{Text: UploadFailedText} }
	}
	c.attachment.Uploading = false
	return nil
}
