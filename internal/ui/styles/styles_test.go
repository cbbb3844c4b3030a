package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestBlendEndpoints(t *testing.T) {
	colors := blend(5, lipgloss.Color("#000000"), lipgloss.Color("#ffffff"))

	assert.Len(t, colors, 5)
	assert.Equal(t, lipgloss.Color("#000000"), colors[0])
	assert.Equal(t, lipgloss.Color("#ffffff"), colors[4])
}

func TestGradientKeepsText(t *testing.T) {
	out := Gradient("héllo", T().Primary, T().Secondary)
	assert.Equal(t, "héllo", ansi.Strip(out))
	assert.Empty(t, Gradient("", T().Primary, T().Secondary))
	assert.Equal(t, "x", ansi.Strip(Gradient("x", "1", "2")))
}

func TestToColorfulFallback(t *testing.T) {
	c := toColorful(lipgloss.Color("240"))
	r, g, b := c.RGB255()
	assert.Equal(t, r, g)
	assert.Equal(t, g, b)
}

func TestStylesBuiltOnce(t *testing.T) {
	assert.Same(t, T().S(), T().S())
}
