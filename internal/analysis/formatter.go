package analysis

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/global-series-tracker/internal/views"
)

const (
	topRows  = 5
	barWidth = 20
	nameCol  = 20
)

// CLIFormatter renders summaries and insight results for the terminal.
type CLIFormatter struct {
	styles *Styles
}

// NewCLIFormatter creates a new CLI formatter with default styles.
func NewCLIFormatter() *CLIFormatter {
	return &CLIFormatter{
		styles: NewStyles(),
	}
}

// WithWidth adapts box widths to the terminal.
func (f *CLIFormatter) WithWidth(width int) *CLIFormatter {
	return &CLIFormatter{styles: f.styles.WithWidth(width)}
}

// FormatReport renders the summary followed by the insight text.
func (f *CLIFormatter) FormatReport(summary Summary, result Result, generatedAt time.Time) string {
	sections := []string{
		f.formatHeader(summary, generatedAt),
		f.formatDistribution("Top markets:", summary.CountryDistribution, summary.TotalSalesRecorded),
		f.formatDistribution("Top customers:", summary.CustomerActivity, summary.TotalSalesRecorded),
		f.FormatResult(result),
	}
	return strings.Join(sections, "\n\n")
}

// FormatResult renders only the insight text. Fallback messages get a
// warning box.
func (f *CLIFormatter) FormatResult(result Result) string {
	if result.Outcome == OutcomeGenerated {
		return f.styles.RenderBox(result.Text, "💡 AI Insights", f.styles.InsightBox)
	}
	return f.styles.RenderBox(result.Text, "", f.styles.FallbackBox)
}

func (f *CLIFormatter) formatHeader(summary Summary, generatedAt time.Time) string {
	title := f.styles.Title.Render("📊 Sales Insights")

	counts := fmt.Sprintf("%d sales recorded across %d products",
		summary.TotalSalesRecorded, summary.TotalProducts)
	countsStyled := f.styles.Subtitle.Render(counts)

	generated := f.styles.Subtle.Render("Generated: " + generatedAt.Format(time.RFC3339))

	return fmt.Sprintf("%s\n%s\n%s", title, countsStyled, generated)
}

func (f *CLIFormatter) formatDistribution(title string, counts map[string]int, total int) string {
	header := f.styles.Subtitle.Render(title)
	if len(counts) == 0 || total == 0 {
		return header + "\n" + f.styles.Subtle.Render("  none")
	}

	ranked := views.Ranked(counts)
	if len(ranked) > topRows {
		ranked = ranked[:topRows]
	}

	lines := make([]string, 0, len(ranked))
	for _, row := range ranked {
		share := float64(row.Count) / float64(total)
		bar := f.styles.Bar.Render(f.styles.RenderProgressBar(share, barWidth))
		lines = append(lines, fmt.Sprintf("  %-*s %s %d", nameCol, truncate(row.Name, nameCol), bar, row.Count))
	}

	return header + "\n" + strings.Join(lines, "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
