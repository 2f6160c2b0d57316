// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme names accepted by NewTheme.
const (
	ThemeAuto  = "auto"
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Theme holds all the styled components for the application.
type Theme struct {
	// Terminal capabilities
	Name         string
	IsDark       bool
	ColorProfile termenv.Profile

	// ==========================================================================
	// LAYOUT
	// ==========================================================================

	Header    lipgloss.Style
	Title     lipgloss.Style
	Separator lipgloss.Style

	// ==========================================================================
	// SIDEBAR
	// ==========================================================================

	Sidebar         lipgloss.Style
	SidebarFocused  lipgloss.Style
	SidebarItem     lipgloss.Style
	SidebarSelected lipgloss.Style
	SidebarActive   lipgloss.Style
	PinMarker       lipgloss.Style

	// ==========================================================================
	// TRANSCRIPT
	// ==========================================================================

	UserLabel  lipgloss.Style
	BotLabel   lipgloss.Style
	ImageTitle lipgloss.Style
	ImageURL   lipgloss.Style
	Empty      lipgloss.Style

	// ==========================================================================
	// COMPOSER
	// ==========================================================================

	Composer        lipgloss.Style
	ComposerFocused lipgloss.Style
	Chip            lipgloss.Style
	ChipUploading   lipgloss.Style

	// ==========================================================================
	// STATUS
	// ==========================================================================

	StatusBar    lipgloss.Style
	Spinner      lipgloss.Style
	Thinking     lipgloss.Style
	Listening    lipgloss.Style
	Warning      lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style

	// ==========================================================================
	// OVERLAY AND DIALOGS
	// ==========================================================================

	Overlay      lipgloss.Style
	OverlayWord  lipgloss.Style
	OverlayHint  lipgloss.Style
	Pending      lipgloss.Style
	Dialog       lipgloss.Style
	DialogDanger lipgloss.Style
	DialogTitle  lipgloss.Style
}

// NewTheme creates a theme. name is "auto", "dark" or "light"; auto asks
// the terminal for its background.
func NewTheme(name string) *Theme {
	name = strings.ToLower(strings.TrimSpace(name))
	var isDark bool
	switch name {
	case ThemeDark:
		isDark = true
	case ThemeLight:
		isDark = false
	default:
		name = ThemeAuto
		isDark = termenv.HasDarkBackground()
	}
	lipgloss.SetHasDarkBackground(isDark)

	t := &Theme{
		Name:         name,
		IsDark:       isDark,
		ColorProfile: termenv.ColorProfile(),
	}
	t.initStyles()
	return t
}

// GlamourStyle returns the glamour standard style matching the theme.
func (t *Theme) GlamourStyle() string {
	if t.IsDark {
		return ThemeDark
	}
	return ThemeLight
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	t.Header = lipgloss.NewStyle().
		Padding(0, 1).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(Border)

	t.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Violet)

	t.Separator = lipgloss.NewStyle().Foreground(Border)

	// Sidebar
	t.Sidebar = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	t.SidebarFocused = t.Sidebar.BorderForeground(Violet)

	t.SidebarItem = lipgloss.NewStyle().Foreground(TextPrimary)

	t.SidebarSelected = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(SurfaceBright).
		Bold(true)

	t.SidebarActive = lipgloss.NewStyle().Foreground(Emerald).Bold(true)

	t.PinMarker = lipgloss.NewStyle().Foreground(Amber)

	// Transcript
	t.UserLabel = lipgloss.NewStyle().Bold(true).Foreground(Teal)
	t.BotLabel = lipgloss.NewStyle().Bold(true).Foreground(Violet)
	t.ImageTitle = lipgloss.NewStyle().Foreground(TextSecondary).Italic(true)
	t.ImageURL = lipgloss.NewStyle().Foreground(Teal).Underline(true)
	t.Empty = lipgloss.NewStyle().Foreground(TextMuted).Italic(true)

	// Composer
	t.Composer = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	t.ComposerFocused = t.Composer.BorderForeground(Violet)

	t.Chip = lipgloss.NewStyle().
		Foreground(Surface).
		Background(Teal).
		Padding(0, 1)

	t.ChipUploading = t.Chip.Background(TextMuted)

	// Status
	t.StatusBar = lipgloss.NewStyle().Foreground(TextSecondary).Padding(0, 1)
	t.Spinner = lipgloss.NewStyle().Foreground(Violet)
	t.Thinking = lipgloss.NewStyle().Foreground(Violet).Italic(true)
	t.Listening = lipgloss.NewStyle().Foreground(Emerald).Bold(true)
	t.Warning = lipgloss.NewStyle().Foreground(Amber)
	t.ShortcutKey = lipgloss.NewStyle().Foreground(Teal).Bold(true)
	t.ShortcutDesc = lipgloss.NewStyle().Foreground(TextMuted)

	// Overlay and dialogs
	t.Overlay = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Violet).
		Background(Surface).
		Foreground(TextPrimary).
		Padding(0, 1)

	t.OverlayWord = lipgloss.NewStyle().Bold(true).Foreground(Violet)
	t.OverlayHint = lipgloss.NewStyle().Foreground(TextMuted)
	t.Pending = lipgloss.NewStyle().Foreground(TextMuted).Italic(true)

	t.Dialog = lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(Violet).
		Padding(1, 2)

	t.DialogDanger = t.Dialog.BorderForeground(Rose)
	t.DialogTitle = lipgloss.NewStyle().Bold(true)
}
