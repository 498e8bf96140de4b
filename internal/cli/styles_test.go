package cli

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTable(t *testing.T) {
	out := RenderTable(
		[]string{"Country", "Sales"},
		[][]string{{"Japan", "3"}, {"United Kingdom", "1"}, {"Short"}},
	)

	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 4)
	assert.Contains(t, lines[0], "Country")
	assert.Contains(t, out, "United Kingdom")

	japan := -1
	for i, l := range lines {
		if strings.Contains(l, "Japan") {
			japan = i
		}
	}
	require.NotEqual(t, -1, japan)
	assert.Equal(t, lipgloss.Width(lines[japan]), lipgloss.Width(lines[len(lines)-1]), "rows share column widths")
}

func TestFormatters(t *testing.T) {
	assert.Contains(t, FormatSuccess("saved"), "saved")
	assert.Contains(t, FormatError("failed"), "failed")
	assert.Contains(t, FormatWarning("careful"), "careful")
	assert.Contains(t, FormatInfo("note"), "note")
	assert.Contains(t, FormatTitle("Products"), "Products")
	assert.Contains(t, RenderBox("Title", "body"), "body")
}
