package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/theirongolddev/runway/internal/tui/theme"
)

// BarItem is one bar of a chart.
type BarItem struct {
	Label   string
	Value   float64
	Color   string
	Caption string // shown after horizontal bars
}

// truncate cuts s to display width w, marking the cut with an ellipsis.
func truncate(s string, w int) string {
	if w <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= w {
		return s
	}
	return ansi.Truncate(s, w, "…")
}

// HBarChart renders one horizontal bar per item, scaled to the largest
// value. Non-zero values always get at least one cell.
func HBarChart(items []BarItem, width int) string {
	if len(items) == 0 {
		return ""
	}
	t := theme.Active

	labelW, captionW, peak := 0, 0, 0.0
	for _, it := range items {
		labelW = max(labelW, lipgloss.Width(it.Label))
		captionW = max(captionW, lipgloss.Width(it.Caption))
		peak = max(peak, it.Value)
	}
	labelW = min(labelW, max(width/4, 6))
	barMax := max(width-labelW-captionW-3, 4)
	if peak == 0 {
		peak = 1
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	captionStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	lines := make([]string, 0, len(items))
	for _, it := range items {
		n := int(math.Round(it.Value / peak * float64(barMax)))
		if n == 0 && it.Value > 0 {
			n = 1
		}
		barStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(it.Color)).Background(t.Surface)
		lines = append(lines, labelStyle.Render(padRight(it.Label, labelW))+
			spaceStyle.Render(" ")+
			barStyle.Render(strings.Repeat("█", n))+
			spaceStyle.Render(strings.Repeat(" ", barMax-n+1))+
			captionStyle.Render(it.Caption))
	}
	return strings.Join(lines, "\n")
}

// BarChart renders a vertical bar chart with a y-axis and one colored bar
// per item. It falls back to HBarChart when the area is too small.
func BarChart(items []BarItem, width, height int) string {
	if len(items) == 0 {
		return ""
	}
	if width < 15 || height < 3 {
		return HBarChart(items, width)
	}

	t := theme.Active

	maxVal := 0.0
	for _, it := range items {
		maxVal = max(maxVal, it.Value)
	}
	if maxVal == 0 {
		maxVal = 1
	}

	// Y-axis: compute tick step and ceiling
	tickStep := chartTickStep(maxVal)
	maxIntervals := max(height/2, 2)
	for int(math.Ceil(maxVal/tickStep)) > maxIntervals {
		tickStep *= 2
	}
	ceiling := math.Ceil(maxVal/tickStep) * tickStep
	numIntervals := max(int(math.Round(ceiling/tickStep)), 1)

	rowsPerTick := max(height/numIntervals, 2)
	chartH := rowsPerTick * numIntervals

	yLabelW := max(len(formatChartLabel(ceiling))+1, 4)
	tickLabels := make(map[int]string)
	for i := 1; i <= numIntervals; i++ {
		tickLabels[i*rowsPerTick] = formatChartLabel(tickStep * float64(i))
	}

	chartW := max(width-yLabelW-1, 5)
	n := len(items)

	gap := 1
	if n <= 1 {
		gap = 0
	}
	barW := chartW
	if n > 1 {
		barW = (chartW - (n - 1)) / n
	}
	if barW < 2 {
		return HBarChart(items, width)
	}
	barW = min(barW, 10)
	axisLen := n*barW + max(0, n-1)*gap

	blocks := []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	blankStyle := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	for row := chartH; row >= 1; row-- {
		rowTop := ceiling * float64(row) / float64(chartH)
		rowBottom := ceiling * float64(row-1) / float64(chartH)

		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, tickLabels[row])))
		b.WriteString(axisStyle.Render("│"))

		for i, it := range items {
			if i > 0 && gap > 0 {
				b.WriteString(blankStyle.Render(strings.Repeat(" ", gap)))
			}
			barStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(it.Color)).Background(t.Surface)
			switch v := it.Value; {
			case v >= rowTop:
				b.WriteString(barStyle.Render(strings.Repeat("█", barW)))
			case v > rowBottom:
				idx := min(max(int((v-rowBottom)/(rowTop-rowBottom)*8), 1), 8)
				b.WriteString(barStyle.Render(strings.Repeat(string(blocks[idx]), barW)))
			default:
				b.WriteString(blankStyle.Render(strings.Repeat(" ", barW)))
			}
		}
		b.WriteString("\n")
	}

	// X-axis line with 0 label
	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, "0")))
	b.WriteString(axisStyle.Render("└"))
	b.WriteString(axisStyle.Render(strings.Repeat("─", axisLen)))

	// X-axis labels, one cell per bar
	labelStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	b.WriteString("\n")
	b.WriteString(blankStyle.Render(strings.Repeat(" ", yLabelW+1)))
	for i, it := range items {
		cell := barW
		if i < n-1 {
			cell += gap
		}
		b.WriteString(labelStyle.Render(padRight(truncate(it.Label, barW), cell)))
	}

	return b.String()
}

// chartTickStep computes a nice tick interval targeting ~5 ticks.
func chartTickStep(maxVal float64) float64 {
	if maxVal <= 0 {
		return 1
	}
	rough := maxVal / 5
	exp := math.Floor(math.Log10(rough))
	base := math.Pow(10, exp)
	frac := rough / base

	switch {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

func formatChartLabel(v float64) string {
	switch {
	case v >= 1e9:
		if v == math.Trunc(v/1e9)*1e9 {
			return fmt.Sprintf("%.0fB", v/1e9)
		}
		return fmt.Sprintf("%.1fB", v/1e9)
	case v >= 1e6:
		if v == math.Trunc(v/1e6)*1e6 {
			return fmt.Sprintf("%.0fM", v/1e6)
		}
		return fmt.Sprintf("%.1fM", v/1e6)
	case v >= 1e3:
		if v == math.Trunc(v/1e3)*1e3 {
			return fmt.Sprintf("%.0fk", v/1e3)
		}
		return fmt.Sprintf("%.1fk", v/1e3)
	case v >= 1:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}
