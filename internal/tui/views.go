package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/global-series-tracker/internal/model"
	"github.com/Veraticus/global-series-tracker/internal/views"
	"github.com/Veraticus/global-series-tracker/internal/workflow"
	"github.com/charmbracelet/lipgloss"
)

const historyDateLayout = "Jan 2, 2006"

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{m.renderHeader()}
	switch m.panel {
	case PanelRecord:
		sections = append(sections, m.renderRecord())
	case PanelExplore:
		sections = append(sections, m.renderExplore())
	case PanelInsights:
		sections = append(sections, m.renderInsights())
	case PanelProducts:
		sections = append(sections, m.renderProducts())
	}
	if footer := m.renderFooter(); footer != "" {
		sections = append(sections, footer)
	}
	sections = append(sections, m.help.View(m.keymap))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	title := m.theme.Title.Render("🌍 Global Series Tracker")

	tabs := make([]string, 0, int(panelCount))
	for p := Panel(0); p < panelCount; p++ {
		style := m.theme.Tab
		if p == m.panel {
			style = m.theme.ActiveTab
		}
		tabs = append(tabs, style.Render(p.String()))
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, lipgloss.JoinHorizontal(lipgloss.Top, tabs...), "")
}

func (m Model) renderFooter() string {
	var lines []string

	switch m.confirm {
	case confirmDeleteSale:
		lines = append(lines, m.theme.StatusWarning.Render(MsgConfirmDelete+" (y/N)"))
	case confirmClearProducts:
		lines = append(lines, m.theme.StatusWarning.Render(MsgConfirmClear+" (y/N)"))
	}

	if n := m.notification; n != nil {
		if n.IsError() {
			lines = append(lines, m.theme.StatusError.Render("✗ "+n.Message))
		} else {
			lines = append(lines, m.theme.StatusSuccess.Render("✓ "+n.Message))
		}
		if n.Warning != "" {
			lines = append(lines, m.theme.StatusWarning.Render("⚠ "+n.Warning))
		}
	}

	if len(lines) == 0 {
		return ""
	}
	return "\n" + strings.Join(lines, "\n")
}

func (m Model) renderRecord() string {
	var b strings.Builder
	b.WriteString(m.theme.Bold.Render("Record New Sale"))
	b.WriteString("\n")
	b.WriteString(m.theme.Subtitle.Render("Log a product series distribution to a specific market."))
	b.WriteString("\n\n")

	if len(m.products) == 0 {
		b.WriteString(m.theme.StatusError.Render(workflow.MsgNoProducts))
		return b.String()
	}

	series := "Select series..."
	if m.seriesIdx >= 0 {
		series = m.products[m.seriesIdx]
	}
	country := "Select country..."
	if m.countryIdx >= 0 {
		country = countryOptions[m.countryIdx]
		if country == model.OtherCountry {
			country = "Other (type below)"
		}
	}

	b.WriteString(m.renderField(fieldSeries, "Series", "‹ "+series+" ›"))
	b.WriteString(m.renderField(fieldCountry, "Country", "‹ "+country+" ›"))
	if m.customCountrySelected() {
		b.WriteString(m.renderField(fieldCustomCountry, "Country name", m.customCountry.View()))
	}
	b.WriteString(m.renderField(fieldCustomer, "Customer", m.customer.View()))
	b.WriteString("\n")
	b.WriteString(m.theme.Italic.Render("↑/↓ move between fields · ←/→ choose · enter to record"))

	return b.String()
}

func (m Model) renderField(field recordField, label, value string) string {
	labelStyle := m.theme.Normal
	if m.field == field {
		labelStyle = m.theme.Selected
	}
	return fmt.Sprintf("%s %s\n", labelStyle.Render(fmt.Sprintf("%-13s", label)), value)
}

func (m Model) renderExplore() string {
	var b strings.Builder
	b.WriteString(m.theme.Bold.Render("Data Explorer"))
	b.WriteString("\n")
	if m.mode == model.ViewHistory {
		b.WriteString(m.theme.Subtitle.Render("Manage and view all sales records."))
	} else {
		b.WriteString(m.theme.Subtitle.Render("Cross-reference your sales data instantly."))
	}
	b.WriteString("\n\n")

	modes := []struct {
		mode  model.ViewMode
		label string
	}{
		{model.ViewByCountry, "[1] By Country"},
		{model.ViewBySeries, "[2] By Series"},
		{model.ViewHistory, "[3] All Records"},
	}
	tabs := make([]string, 0, len(modes))
	for _, md := range modes {
		style := m.theme.Tab
		if md.mode == m.mode {
			style = m.theme.ActiveTab
		}
		tabs = append(tabs, style.Render(md.label))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n\n")
	b.WriteString(m.search.View())
	b.WriteString("\n\n")

	if m.mode == model.ViewHistory {
		b.WriteString(m.renderHistory())
	} else {
		b.WriteString(m.renderCrossReference())
	}
	return b.String()
}

func (m Model) renderHistory() string {
	rows := m.historyRows()

	var b strings.Builder
	b.WriteString(m.theme.Subtitle.Render(fmt.Sprintf("%d records found", len(rows))))
	b.WriteString("\n")

	if len(rows) == 0 {
		b.WriteString(m.theme.StatusPending.Render("No records found matching your search."))
		return b.String()
	}

	b.WriteString(m.theme.Bold.Render(fmt.Sprintf("%-14s %-18s %-18s %s", "Series Name", "Country", "Customer", "Date Recorded")))
	b.WriteString("\n")
	for i, rec := range rows {
		line := fmt.Sprintf("%-14s %-18s %-18s %s",
			truncate(rec.SeriesName, 14),
			truncate(rec.Country, 18),
			truncate(rec.CustomerName, 18),
			rec.Time().Format(historyDateLayout),
		)
		if i == m.cursor {
			line = m.theme.Selected.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderCrossReference() string {
	label := m.mode.Label()

	var left strings.Builder
	left.WriteString(m.theme.Bold.Render(strings.ToUpper("Select " + label)))
	left.WriteString("\n")
	opts := m.options()
	if len(opts) == 0 {
		left.WriteString(m.theme.StatusPending.Render("No data available yet."))
	}
	for i, opt := range opts {
		line := "  " + opt
		if opt == m.selected {
			line = "→ " + opt
		}
		if i == m.cursor {
			line = m.theme.Selected.Render(line)
		}
		left.WriteString(line)
		left.WriteString("\n")
	}

	heading := "SOLD PRODUCTS"
	if m.mode == model.ViewBySeries {
		heading = "EXPORTED MARKETS"
	}

	var right strings.Builder
	right.WriteString(m.theme.Bold.Render(heading))
	right.WriteString("\n")
	if m.selected == "" {
		right.WriteString(m.theme.StatusPending.Render(fmt.Sprintf("Select a %s to view history", label)))
	} else {
		results := m.crossReference()
		right.WriteString(fmt.Sprintf("Results for %s · %d Found\n", m.theme.StatusInfo.Render(m.selected), len(results)))
		if len(results) == 0 {
			right.WriteString(m.theme.StatusPending.Render("No sales recorded for this selection yet."))
		}
		for _, r := range results {
			right.WriteString("• " + r + "\n")
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.theme.RoundedBox.Width(28).Render(strings.TrimRight(left.String(), "\n")),
		" ",
		m.theme.RoundedBox.Width(40).Render(strings.TrimRight(right.String(), "\n")),
	)
}

func (m Model) renderInsights() string {
	var b strings.Builder
	b.WriteString(m.theme.Bold.Render("✨ AI Market Insights"))
	b.WriteString("\n")
	b.WriteString(m.theme.Subtitle.Render("Analyze your sales distribution to uncover trends and opportunities."))
	b.WriteString("\n\n")

	switch {
	case m.analyzing:
		b.WriteString(m.theme.StatusPending.Render("Analyzing global sales data...\nThis may take a few seconds"))
	case m.insight != nil:
		b.WriteString(m.theme.Bold.Render("Market Analysis Report"))
		b.WriteString("\n")
		width := max(30, m.width-6)
		b.WriteString(m.theme.RoundedBox.Width(width).Render(m.insight.Text))
		b.WriteString("\n")
		b.WriteString(m.theme.Italic.Render("Press g to regenerate."))
	default:
		b.WriteString(m.theme.Italic.Render("Press g to generate a market report."))
	}
	return b.String()
}

func (m Model) renderProducts() string {
	var b strings.Builder
	b.WriteString(m.theme.Bold.Render("Import Series"))
	b.WriteString("\n")
	b.WriteString(m.theme.Subtitle.Render("Paste your product series names here. Separated by commas, new lines, or pipes."))
	b.WriteString("\n")
	b.WriteString(m.paste.View())
	b.WriteString("\n")
	if m.paste.Focused() {
		b.WriteString(m.theme.Italic.Render("ctrl+s to add to database · esc to stop editing"))
	} else {
		b.WriteString(m.theme.Italic.Render("i to paste names · x to clear all"))
	}
	b.WriteString("\n\n")

	b.WriteString(m.theme.Bold.Render(fmt.Sprintf("Current Products (%d)", len(m.products))))
	b.WriteString("\n")
	if len(m.products) == 0 {
		b.WriteString(m.theme.StatusPending.Render("No products imported yet."))
		return b.String()
	}

	limit := max(5, m.height-22)
	for i, p := range m.products {
		if i == limit {
			b.WriteString(m.theme.StatusPending.Render(fmt.Sprintf("… and %d more", len(m.products)-limit)))
			break
		}
		b.WriteString("• " + p + "\n")
	}
	return b.String()
}

func (m Model) crossReference() []string {
	return views.CrossReference(m.sales, m.mode, m.selected)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
