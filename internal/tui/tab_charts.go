package tui

import (
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/runway/internal/budget"
	"github.com/theirongolddev/runway/internal/cli"
	"github.com/theirongolddev/runway/internal/i18n"
	"github.com/theirongolddev/runway/internal/model"
	"github.com/theirongolddev/runway/internal/tui/components"
	"github.com/theirongolddev/runway/internal/tui/theme"
)

const barChartHeight = 10

func (a App) updateChartsNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "c", " ":
		if a.chart == "pie" {
			a.chart = "bar"
		} else {
			a.chart = "pie"
		}
	case "b":
		a.chart = "bar"
	case "p":
		a.chart = "pie"
	}
	return a, nil
}

func (a App) renderChartsTab(cw int) string {
	t := theme.Active
	loc := a.locale

	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	activeStyle := lipgloss.NewStyle().Foreground(t.Background).Background(t.Accent).Bold(true)
	inactiveStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.SurfaceHover)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	barLabel, pieLabel := " b "+loc.T(i18n.KeyBarChart)+" ", " p "+loc.T(i18n.KeyPieChart)+" "
	var toggle string
	if a.chart == "pie" {
		toggle = inactiveStyle.Render(barLabel) + spaceStyle.Render(" ") + activeStyle.Render(pieLabel)
	} else {
		toggle = activeStyle.Render(barLabel) + spaceStyle.Render(" ") + inactiveStyle.Render(pieLabel)
	}

	items := budget.ChartData(a.calc.Costs(), model.CostLabel(loc))
	if len(items) == 0 {
		body := toggle + "\n\n" +
			mutedStyle.Render(loc.T(i18n.KeyNoCostData)) + "\n" +
			dimStyle.Render(loc.T(i18n.KeyAddCostsToViewCharts))
		return components.ContentCard(loc.T(i18n.KeyCostCharts), body, cw)
	}

	st := budget.Stats(items)
	inner := components.CardInnerWidth(cw)

	var b strings.Builder
	b.WriteString(toggle)
	b.WriteString("\n\n")

	var metrics []components.Metric
	if a.chart == "pie" {
		b.WriteString(mutedStyle.Render(loc.T(i18n.KeyCostProportion)))
		b.WriteString("\n")
		labelW := 0
		for _, it := range items {
			labelW = max(labelW, lipgloss.Width(it.Name))
		}
		labelW = min(labelW, inner/4)
		barW := max(inner-labelW-24, 10)
		for _, it := range items {
			b.WriteString(components.ShareBar(it.Name, budget.Share(it.Amount, st.Total), it.Color,
				cli.FormatMoney(loc, it.Amount), labelW, barW))
			b.WriteString("\n")
		}
		metrics = []components.Metric{
			{Label: loc.T(i18n.KeyTotalAmount), Value: cli.FormatMoney(loc, st.Total)},
			{Label: loc.T(i18n.KeyAverageCost), Value: cli.FormatMoney(loc, math.Round(st.Average))},
		}
	} else {
		b.WriteString(mutedStyle.Render(loc.T(i18n.KeyCostDistribution)))
		b.WriteString("\n")
		bars := make([]components.BarItem, 0, len(items))
		for _, it := range items {
			bars = append(bars, components.BarItem{
				Label:   it.Name,
				Value:   it.Amount,
				Color:   it.Color,
				Caption: cli.FormatMoney(loc, it.Amount),
			})
		}
		b.WriteString(components.BarChart(bars, inner, barChartHeight))
		b.WriteString("\n")
		metrics = []components.Metric{
			{Label: loc.T(i18n.KeyTotalCosts), Value: cli.FormatMoney(loc, st.Total)},
			{Label: loc.T(i18n.KeyCostItems), Value: cli.FormatCount(st.Count)},
		}
	}

	footer := mutedStyle.Render(loc.T(i18n.KeyHighestCost)+": ") + valueStyle.Render(cli.FormatMoney(loc, st.Highest.Amount)) +
		spaceStyle.Render("   ") +
		mutedStyle.Render(loc.T(i18n.KeyLowestCost)+": ") + valueStyle.Render(cli.FormatMoney(loc, st.Lowest.Amount)) +
		spaceStyle.Render("   ") +
		mutedStyle.Render(loc.T(i18n.KeyCostRange)+": ") + valueStyle.Render(cli.FormatMoney(loc, st.Range))
	b.WriteString("\n")
	b.WriteString(footer)

	return components.ContentCard(loc.T(i18n.KeyCostCharts), b.String(), cw) + "\n" +
		components.MetricCardRow(metrics, cw)
}
