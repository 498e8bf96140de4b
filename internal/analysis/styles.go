package analysis

import (
	"strings"

	"github.com/Veraticus/global-series-tracker/internal/cli"
	"github.com/charmbracelet/lipgloss"
)

// Styles holds the lipgloss styles of the insights report.
type Styles struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	Subtle      lipgloss.Style
	Label       lipgloss.Style
	Bar         lipgloss.Style
	InsightBox  lipgloss.Style
	FallbackBox lipgloss.Style
}

// NewStyles returns the report styles built on the CLI palette.
func NewStyles() *Styles {
	box := lipgloss.NewStyle().Padding(0, 1).MarginTop(1)
	return &Styles{
		Title:       cli.TitleStyle,
		Subtitle:    cli.SubtitleStyle,
		Subtle:      lipgloss.NewStyle().Foreground(cli.SubtleColor),
		Label:       cli.InfoStyle.Bold(true),
		Bar:         lipgloss.NewStyle().Foreground(cli.SuccessColor),
		InsightBox:  box.Border(lipgloss.DoubleBorder()).BorderForeground(cli.InfoColor),
		FallbackBox: box.Border(lipgloss.RoundedBorder()).BorderForeground(cli.WarningColor),
	}
}

// WithWidth returns a copy whose boxes fit a terminal of the given width.
func (s *Styles) WithWidth(width int) *Styles {
	out := *s
	if width > 0 && width < 100 {
		out.InsightBox = s.InsightBox.Width(width - 4)
		out.FallbackBox = s.FallbackBox.Width(width - 4)
	}
	return &out
}

// RenderProgressBar draws a bar of width cells filled to progress, which
// is clamped to 0..1.
func (s *Styles) RenderProgressBar(progress float64, width int) string {
	if width <= 0 {
		width = 30
	}
	filled := min(max(int(float64(width)*progress), 0), width)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// RenderBox renders content in style with an optional title line.
func (s *Styles) RenderBox(content, title string, style lipgloss.Style) string {
	if title == "" {
		return style.Render(content)
	}
	return style.Render(s.Label.Render(" "+title+" ") + "\n" + content)
}
