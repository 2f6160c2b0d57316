// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/jeranaias/lumina-tui/internal/composer"
	"github.com/jeranaias/lumina-tui/internal/config"
	"github.com/jeranaias/lumina-tui/internal/dictation"
	"github.com/jeranaias/lumina-tui/internal/lookup"
	"github.com/jeranaias/lumina-tui/internal/model"
	"github.com/jeranaias/lumina-tui/internal/pipeline"
	"github.com/jeranaias/lumina-tui/internal/session"
	"github.com/jeranaias/lumina-tui/internal/ui/components"
	"github.com/jeranaias/lumina-tui/internal/ui/styles"
)

// Backend is every backend call the TUI makes.
type Backend interface {
	session.Backend
	pipeline.Backend
	composer.Uploader
	lookup.Definer
}

// Options configures a Model.
type Options struct {
	Context    context.Context
	Config     *config.Config
	Backend    Backend
	Recognizer dictation.Recognizer // nil disables dictation
	Logger     *zap.Logger
}

// focusArea is the part of the screen receiving keys.
type focusArea int

const (
	focusComposer focusArea = iota
	focusSidebar
)

// Layout constants in rows.
const (
	headerHeight   = 2
	composerHeight = 3
	statusHeight   = 1
)

// =============================================================================
// MODEL
// =============================================================================

// Model is the root Bubble Tea model.
type Model struct {
	cfg   *config.Config
	log   *zap.Logger
	theme *styles.Theme
	md    *components.MarkdownRenderer
	keys  KeyMap
	help  help.Model

	// Controllers
	transcript *model.Transcript
	registry   *session.Registry
	composer   *composer.Composer
	pipeline   *pipeline.Pipeline
	dictation  *dictation.Controller
	lookup     *lookup.Controller

	// Widgets
	input     textarea.Model
	viewport  viewport.Model
	sidebar   components.Sidebar
	dialog    components.Dialog
	spinner   components.Spinner
	pathInput textinput.Model

	// View state
	focus       focusArea
	showSidebar bool
	attaching   bool
	width       int
	height      int
	ready       bool

	// Plain transcript lines for mapping mouse positions to words
	lines       []string
	renderedVer uint64
	renderedW   int
	dirty       bool
	notice      string
}

// New creates the root model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	theme := styles.NewTheme(cfg.UI.Theme)

	transcript := &model.Transcript{}
	registry := session.NewRegistry(ctx, opts.Backend, transcript, log)
	comp := composer.New(ctx, opts.Backend, composer.NewHistory(composer.DefaultHistorySize), log)
	comp.SetIncludeImages(cfg.UI.IncludeImages)

	timer := dictation.NewAutoSubmitTimer(cfg.QuietPeriod())
	pipe := pipeline.New(ctx, opts.Backend, registry, transcript, comp, timer, log)
	dict := dictation.NewController(ctx, opts.Recognizer, comp, timer, pipe.Submit, log)

	look := lookup.New(ctx, opts.Backend, lookup.Options{
		Width:       cfg.Lookup.OverlayWidth,
		Height:      cfg.Lookup.OverlayHeight,
		CacheTTL:    cfg.CacheTTL(),
		AskTemplate: cfg.Lookup.AskTemplate,
	}, log)

	keys := DefaultKeyMap()

	ta := textarea.New()
	ta.Placeholder = "Message Lumina..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 8000
	ta.SetHeight(composerHeight)
	ta.KeyMap.InsertNewline = keys.Newline
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.BlurredStyle = ta.FocusedStyle
	ta.Focus()

	pi := textinput.New()
	pi.Prompt = "Attach file: "
	pi.Placeholder = "path/to/file"

	h := help.New()
	h.ShortSeparator = " · "

	return Model{
		cfg:         cfg,
		log:         log.Named("ui"),
		theme:       theme,
		md:          components.NewMarkdownRenderer(theme.GlamourStyle()),
		keys:        keys,
		help:        h,
		transcript:  transcript,
		registry:    registry,
		composer:    comp,
		pipeline:    pipe,
		dictation:   dict,
		lookup:      look,
		input:       ta,
		viewport:    viewport.New(80, 20),
		sidebar:     components.NewSidebar(),
		spinner:     components.NewSpinner(),
		pathInput:   pi,
		showSidebar: cfg.UI.ShowSidebar,
		dirty:       true,
	}
}

// Init starts the cursor blink and fetches the session list.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.registry.ListSessions())
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Transcript returns the transcript store.
func (m Model) Transcript() *model.Transcript { return m.transcript }

// Registry returns the session registry.
func (m Model) Registry() *session.Registry { return m.registry }

// Composer returns the composer.
func (m Model) Composer() *composer.Composer { return m.composer }

// Pipeline returns the send pipeline.
func (m Model) Pipeline() *pipeline.Pipeline { return m.pipeline }

// Dictation returns the dictation controller.
func (m Model) Dictation() *dictation.Controller { return m.dictation }

// Lookup returns the lookup controller.
func (m Model) Lookup() *lookup.Controller { return m.lookup }

// SidebarVisible reports whether the sidebar is shown.
func (m Model) SidebarVisible() bool { return m.showSidebar }

// narrow reports whether the terminal is below the narrow width.
func (m Model) narrow() bool {
	return m.width > 0 && m.width < m.cfg.UI.NarrowWidth
}

// sidebarWidth returns the columns taken by the sidebar.
func (m Model) sidebarWidth() int {
	if !m.showSidebar {
		return 0
	}
	return components.SidebarWidth
}

// transcriptTop returns the screen row of the first transcript line.
func (m Model) transcriptTop() int { return headerHeight }

// composerRows returns the rows taken by the composer block.
func (m Model) composerRows() int {
	rows := composerHeight + 2
	if m.composer.Attachment() != nil || m.attaching {
		rows++
	}
	return rows
}
