package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"

	"github.com/theirongolddev/runway/internal/budget"
	"github.com/theirongolddev/runway/internal/i18n"
	"github.com/theirongolddev/runway/internal/model"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func TestRenderTable_AlignsWideRunes(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"名称", "Amount"},
		Rows: [][]string{
			{"房租", "¥1,200"},
			{"Food", "¥300"},
		},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	width := lipgloss.Width(lines[0])
	for _, l := range lines {
		assert.Equal(t, width, lipgloss.Width(l), "line %q", l)
	}
	assert.Contains(t, out, "│   ¥300 │")
}

func TestRenderTable_Empty(t *testing.T) {
	assert.Empty(t, RenderTable(Table{}))
}

func TestRenderHorizontalBar(t *testing.T) {
	line := RenderHorizontalBar("Rent", 6, 50, 100, 10, budget.Palette[0], "$50")
	assert.Equal(t, "  Rent   █████      $50", line)

	tiny := RenderHorizontalBar("x", 1, 0.1, 100, 10, budget.Palette[0], "")
	assert.Contains(t, tiny, "█", "non-zero values get at least one cell")
}

func TestRenderReport(t *testing.T) {
	c := budget.NewCalculator()
	c.SetRemaining("3000")
	c.UpdateCost(1, budget.FieldName, "Rent")
	c.UpdateCost(1, budget.FieldAmount, "1000")

	out := RenderReport(model.NewReport(c, i18n.EN), i18n.EN, "bar")
	assert.Contains(t, out, "You can survive for 3 months")
	assert.Contains(t, out, "Total Amount")
	assert.Contains(t, out, "$3,000")
	assert.Contains(t, out, "3.0 months")
	assert.Contains(t, out, "Cost Items: 1")
	assert.Contains(t, out, "Cost Range: $0")
}

func TestRenderReport_NoResult(t *testing.T) {
	out := RenderReport(model.NewReport(budget.NewCalculator(), i18n.EN), i18n.EN, "pie")
	assert.Contains(t, out, "Enter a remaining amount")
	assert.NotContains(t, out, "Budget Summary")
}

func TestRenderChart_PieAndEmpty(t *testing.T) {
	items := []budget.ChartItem{
		{Name: "Rent", Amount: 750, Color: budget.Palette[0]},
		{Name: "Food", Amount: 250, Color: budget.Palette[1]},
	}
	out := RenderChart(items, i18n.EN, "pie")
	assert.Contains(t, out, "75.0%")
	assert.Contains(t, out, "Average Cost: $500")

	empty := RenderChart(nil, i18n.ZH, "bar")
	assert.Contains(t, empty, "暂无成本数据")
}

func TestRenderScenarios(t *testing.T) {
	assert.Contains(t, RenderScenarios(nil, i18n.EN), "No saved scenarios")

	out := RenderScenarios([]model.Scenario{{
		Name:      "home",
		Remaining: "1200",
		Costs:     []budget.CostEntry{{ID: 1, Amount: "100"}},
		UpdatedAt: time.Now().Add(-2 * time.Hour),
	}}, i18n.EN)
	assert.Contains(t, out, "home")
	assert.Contains(t, out, "12.0 months")
	assert.Contains(t, out, "2 hours ago")
}
