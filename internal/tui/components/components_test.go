package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"github.com/theirongolddev/runway/internal/i18n"
)

func TestChartTickStep(t *testing.T) {
	assert.Equal(t, 1.0, chartTickStep(0))
	assert.Equal(t, 200.0, chartTickStep(1000))
	assert.Equal(t, 500.0, chartTickStep(2000))
}

func TestFormatChartLabel(t *testing.T) {
	assert.Equal(t, "1k", formatChartLabel(1000))
	assert.Equal(t, "1.5k", formatChartLabel(1500))
	assert.Equal(t, "2M", formatChartLabel(2e6))
	assert.Equal(t, "0.50", formatChartLabel(0.5))
}

func TestBarChart_LabelsAndHeight(t *testing.T) {
	items := []BarItem{
		{Label: "房租", Value: 1200, Color: "#4ade80"},
		{Label: "Groceries", Value: 300, Color: "#60a5fa"},
	}
	out := ansi.Strip(BarChart(items, 40, 8))
	lines := strings.Split(out, "\n")
	last := lines[len(lines)-1]
	assert.Contains(t, last, "房租")
	assert.Contains(t, last, "Groc")
	assert.Contains(t, out, "└")
}

func TestBarChart_FallsBackWhenNarrow(t *testing.T) {
	items := []BarItem{{Label: "Rent", Value: 10, Color: "#4ade80", Caption: "$10"}}
	out := ansi.Strip(BarChart(items, 10, 8))
	assert.NotContains(t, out, "└")
	assert.Contains(t, out, "$10")
}

func TestHBarChart_MinimumCell(t *testing.T) {
	out := ansi.Strip(HBarChart([]BarItem{
		{Label: "a", Value: 1000, Color: "#4ade80"},
		{Label: "b", Value: 0.01, Color: "#60a5fa"},
	}, 40))
	lines := strings.Split(out, "\n")
	assert.Equal(t, 1, strings.Count(lines[1], "█"))
}

func TestShareBar(t *testing.T) {
	out := ansi.Strip(ShareBar("Rent", 0.75, "#4ade80", "$750", 6, 20))
	assert.True(t, strings.HasPrefix(out, "Rent  "))
	assert.Contains(t, out, " 75.0%")
	assert.Contains(t, out, "$750")
}

func TestTabBar_ClickMapping(t *testing.T) {
	bar := ansi.Strip(RenderTabBar(0, 80, i18n.EN))
	assert.Equal(t, 80, lipgloss.Width(bar))

	x := strings.Index(bar, "[3]")
	assert.Equal(t, 2, TabAtX(x, i18n.EN))
	assert.Equal(t, 0, TabAtX(1, i18n.EN))
	assert.Equal(t, -1, TabAtX(0, i18n.EN))
	assert.Equal(t, -1, TabAtX(79, i18n.EN))
}

func TestTabIdxByKey(t *testing.T) {
	assert.Equal(t, 3, TabIdxByKey('4'))
	assert.Equal(t, -1, TabIdxByKey('z'))
}

func TestStatusBar(t *testing.T) {
	out := ansi.Strip(RenderStatusBar(60, Status{Hints: "[?]help", Message: "Saved!", Right: "EN"}))
	assert.Equal(t, 60, lipgloss.Width(out))
	assert.True(t, strings.HasSuffix(out, "EN "))
	assert.Contains(t, out, "Saved!")
}
