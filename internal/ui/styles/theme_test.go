// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTheme_Forced(t *testing.T) {
	dark := NewTheme("Dark")
	assert.Equal(t, ThemeDark, dark.Name)
	assert.True(t, dark.IsDark)
	assert.Equal(t, "dark", dark.GlamourStyle())

	light := NewTheme(" light ")
	assert.False(t, light.IsDark)
	assert.Equal(t, "light", light.GlamourStyle())
}

func TestNewTheme_UnknownFallsBackToAuto(t *testing.T) {
	th := NewTheme("solarized")
	assert.Equal(t, ThemeAuto, th.Name)
}

func TestTheme_StylesRender(t *testing.T) {
	th := NewTheme(ThemeDark)
	assert.Contains(t, th.UserLabel.Render("You"), "You")
	assert.Contains(t, th.Overlay.Render("definition"), "definition")
}
