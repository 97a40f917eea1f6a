package output

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestStatusStyle_KnownStatuses(t *testing.T) {
	assert.Equal(t, ColorGreen, StatusStyle(StatusBuilt).GetForeground())
	assert.Equal(t, ColorYellow, StatusStyle(StatusCached).GetForeground())
	assert.Equal(t, ColorBoldRed, StatusStyle(StatusFailed).GetForeground())
	assert.True(t, StatusStyle(StatusNoOp).GetFaint())
}

func TestStatusStyle_UnknownIsUnstyled(t *testing.T) {
	style := StatusStyle("mystery")
	assert.Equal(t, lipgloss.NoColor{}, style.GetForeground())
	assert.False(t, style.GetBold())
}

func TestCheckmark(t *testing.T) {
	assert.Contains(t, Checkmark(), "✔")
}
