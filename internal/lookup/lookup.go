// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package lookup

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/jeranaias/lumina-tui/internal/api"
)

// Fixed overlay texts.
const (
	PendingText      = "Searching..."
	NotFoundText     = "No definition found."
	LookupFailedText = "Error fetching definition."
)

// DefaultAskTemplate builds the question handed to the composer.
const DefaultAskTemplate = `What does "%s" mean?`

// Default overlay footprint in terminal cells.
const (
	DefaultWidth  = 40
	DefaultHeight = 12
)

// Definer resolves a word to its definition.
type Definer interface {
	Define(ctx context.Context, req api.DefineRequest) (string, error)
}

// Overlay is the visible lookup popover.
type Overlay struct {
	X, Y       int
	Word       string
	Definition string
	Pending    bool
}

// ResolvedMsg carries the definition for the overlay opened at Gen.
type ResolvedMsg struct {
	Gen        uint64
	Word       string
	Definition string
	Err        error
}

// Options configures a Controller.
type Options struct {
	Width       int
	Height      int
	CacheTTL    time.Duration
	AskTemplate string
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller owns at most one overlay. Use it only from the UI event loop.
type Controller struct {
	ctx     context.Context
	definer Definer
	cache   *cache.Cache
	log     *zap.Logger

	width, height int
	askTemplate   string

	overlay *Overlay
	gen     uint64
}

// New creates a controller with no open overlay.
func New(ctx context.Context, definer Definer, opts Options, log *zap.Logger) *Controller {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 10 * time.Minute
	}
	if opts.AskTemplate == "" || !strings.Contains(opts.AskTemplate, "%s") {
		opts.AskTemplate = DefaultAskTemplate
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		ctx:         ctx,
		definer:     definer,
		cache:       cache.New(opts.CacheTTL, 2*opts.CacheTTL),
		log:         log.Named("lookup"),
		width:       opts.Width,
		height:      opts.Height,
		askTemplate: opts.AskTemplate,
	}
}

// Size returns the overlay footprint.
func (c *Controller) Size() (width, height int) { return c.width, c.height }

// SetSize changes the footprint used for overlays opened afterwards.
func (c *Controller) SetSize(width, height int) {
	if width > 0 {
		c.width = width
	}
	if height > 0 {
		c.height = height
	}
}

// Overlay returns a copy of the open overlay, or nil.
func (c *Controller) Overlay() *Overlay {
	if c.overlay == nil {
		return nil
	}
	o := *c.overlay
	return &o
}

// IsOpen reports whether an overlay is shown.
func (c *Controller) IsOpen() bool { return c.overlay != nil }

// Position clamps an anchor so a w by h footprint fits in a vw by vh
// viewport. Offsets past the top or left edge are left as they are.
func Position(x, y, w, h, vw, vh int) (left, top int) {
	return min(x, vw-w), min(y, vh-h)
}

// Open shows an overlay for selection anchored at (x, y) inside a vw by vh
// viewport, replacing any open one. A blank selection closes the current
// overlay and opens nothing.
func (c *Controller) Open(x, y int, selection string, vw, vh int) tea.Cmd {
	word := norm.NFC.String(strings.TrimSpace(selection))
	c.Close()
	if word == "" {
		return nil
	}

	left, top := Position(x, y, c.width, c.height, vw, vh)
	c.overlay = &Overlay{X: left, Y: top, Word: word, Definition: PendingText, Pending: true}

	gen := c.gen
	if def, ok := c.cache.Get(cacheKey(word)); ok {
		c.resolve(def.(string))
		return nil
	}

	ctx, definer := c.ctx, c.definer
	return func() tea.Msg {
		def, err := definer.Define(ctx, api.DefineRequest{Word: word, Context: ""})
		return ResolvedMsg{Gen: gen, Word: word, Definition: def, Err: err}
	}
}

// Close hides the overlay. Outstanding lookups for it are ignored.
func (c *Controller) Close() {
	c.overlay = nil
	c.gen++
}

// Ask closes the overlay and returns the question about its word. ok is
// false when no overlay is open.
func (c *Controller) Ask() (question string, ok bool) {
	if c.overlay == nil {
		return "", false
	}
	question = fmt.Sprintf(c.askTemplate, c.overlay.Word)
	c.Close()
	return question, true
}

// HandleMsg applies a resolved definition to the overlay that requested it.
func (c *Controller) HandleMsg(msg tea.Msg) tea.Cmd {
	m, ok := msg.(ResolvedMsg)
	if !ok {
		return nil
	}
	if m.Err == nil {
		c.cache.SetDefault(cacheKey(m.Word), m.Definition)
	}
	if m.Gen != c.gen || c.overlay == nil {
		return nil
	}
	if m.Err != nil {
		c.log.Warn("definition lookup failed", zap.String("word", m.Word), zap.Error(m.Err))
		c.overlay.Definition = LookupFailedText
		c.overlay.Pending = false
		return nil
	}
	c.resolve(m.Definition)
	return nil
}

func (c *Controller) resolve(def string) {
	if strings.TrimSpace(def) == "" {
		def = NotFoundText
	}
	c.overlay.Definition = def
	c.overlay.Pending = false
}

func cacheKey(word string) string {
	return strings.ToLower(word)
}
