// Package cli provides the terminal prompts and styled output of gst.
package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette shared with the explorer's default theme.
var (
	PrimaryColor = lipgloss.Color("#4D96FF")
	SuccessColor = lipgloss.Color("#4ECDC4")
	WarningColor = lipgloss.Color("#FFE66D")
	ErrorColor   = lipgloss.Color("#FF6B6B")
	InfoColor    = lipgloss.Color("#95E1D3")
	SubtleColor  = lipgloss.Color("#666666")
	borderColor  = lipgloss.Color("#333333")
)

// Text styles.
var (
	TitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(PrimaryColor).MarginBottom(1)
	SubtitleStyle = lipgloss.NewStyle().Foreground(SubtleColor).MarginBottom(1)
	SuccessStyle  = lipgloss.NewStyle().Foreground(SuccessColor)
	WarningStyle  = lipgloss.NewStyle().Foreground(WarningColor)
	ErrorStyle    = lipgloss.NewStyle().Foreground(ErrorColor)
	InfoStyle     = lipgloss.NewStyle().Foreground(InfoColor)

	promptStyle = lipgloss.NewStyle().Bold(true).Foreground(PrimaryColor)
	headerStyle = lipgloss.NewStyle().Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(borderColor)
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(1, 2)
)

// FormatSuccess formats a success message with a check mark.
func FormatSuccess(message string) string {
	return SuccessStyle.Render("✓ " + message)
}

// FormatError formats an error message with a cross.
func FormatError(message string) string {
	return ErrorStyle.Render("✗ " + message)
}

// FormatWarning formats a warning message.
func FormatWarning(message string) string {
	return WarningStyle.Render("⚠️ " + message)
}

// FormatInfo formats an informational message.
func FormatInfo(message string) string {
	return InfoStyle.Render("ℹ️ " + message)
}

// FormatTitle formats a section title with the globe icon.
func FormatTitle(title string) string {
	return TitleStyle.Render("🌍 " + title)
}

// FormatPrompt formats a prompt label.
func FormatPrompt(prompt string) string {
	return promptStyle.Render(prompt + " → ")
}

// RenderBox renders content under title in a rounded box.
func RenderBox(title, content string) string {
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		TitleStyle.UnsetMargins().Render(title),
		content,
	))
}

// RenderTable lays out rows under a header with padded columns.
func RenderTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}

	renderRow := func(cells []string, style lipgloss.Style) string {
		parts := make([]string, len(widths))
		for i, w := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			parts[i] = style.Width(w + 2).Render(cell)
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, headerStyle.Render(renderRow(headers, lipgloss.NewStyle().Bold(true))))
	for _, row := range rows {
		lines = append(lines, renderRow(row, lipgloss.NewStyle()))
	}
	return strings.Join(lines, "\n")
}
