package cli

import (
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/runway/internal/budget"
	"github.com/theirongolddev/runway/internal/i18n"
	"github.com/theirongolddev/runway/internal/model"
)

const chartBarWidth = 30

// RenderReport renders the result, summary, breakdown and chart for a
// calculation. chart is "bar" or "pie".
func RenderReport(r model.Report, loc i18n.Locale, chart string) string {
	var b strings.Builder

	b.WriteString(RenderTitle(loc.T(i18n.KeyAppTitle)))
	b.WriteString("\n\n")

	if len(r.Errors) > 0 {
		keys := make([]string, 0, len(r.Errors))
		for k := range r.Errors {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b.WriteString("  " + warnStyle.Render(k+": "+r.Errors[k]) + "\n")
		}
		b.WriteString("\n")
	}

	switch {
	case !r.HasResult:
		b.WriteString("  " + mutedStyle.Render(r.Text) + "\n")
		return b.String()
	case r.Insufficient:
		b.WriteString("  " + badStyle.Render(r.Text) + "\n\n")
	default:
		b.WriteString("  " + goodStyle.Render(r.Text) + "\n\n")
	}

	b.WriteString(RenderTable(Table{
		Title: loc.T(i18n.KeySummary),
		Rows: [][]string{
			{loc.T(i18n.KeyTotalAmount), FormatMoney(loc, r.Remaining)},
			{loc.T(i18n.KeyTotalMonthlyExpense), FormatMoney(loc, r.TotalMonthly)},
			{loc.T(i18n.KeySurvivalTime), r.Summary + " " + loc.UnitLabel(r.Unit)},
		},
	}))
	b.WriteString("\n")

	rows := make([][]string, 0, len(r.Breakdown)+2)
	for _, line := range r.Breakdown {
		rows = append(rows, []string{line.Name, FormatMoney(loc, line.Amount), line.Description})
	}
	rows = append(rows, []string{"---"}, []string{loc.T(i18n.KeyTotalMonthlyCost), FormatMoney(loc, r.TotalMonthly), ""})
	b.WriteString(RenderTable(Table{
		Title: loc.T(i18n.KeyCostsBreakdown),
		Rows:  rows,
	}))
	b.WriteString("\n")

	b.WriteString(RenderChart(r.Chart, loc, chart))
	return b.String()
}

// RenderChart renders the cost chart with its summary and footer stats.
func RenderChart(items []budget.ChartItem, loc i18n.Locale, chart string) string {
	var b strings.Builder
	b.WriteString("  " + headerStyle.Render(loc.T(i18n.KeyCostCharts)) + "\n")

	if len(items) == 0 {
		b.WriteString("  " + mutedStyle.Render(loc.T(i18n.KeyNoCostData)) + "\n")
		b.WriteString("  " + dimStyle.Render(loc.T(i18n.KeyAddCostsToViewCharts)) + "\n")
		return b.String()
	}

	st := budget.Stats(items)
	labelWidth := 0
	for _, it := range items {
		labelWidth = max(labelWidth, lipgloss.Width(it.Name))
	}

	if chart == "pie" {
		b.WriteString("  " + mutedStyle.Render(loc.T(i18n.KeyCostProportion)) + "\n")
		for _, it := range items {
			share := budget.Share(it.Amount, st.Total)
			b.WriteString(RenderHorizontalBar(it.Name, labelWidth, share, 1, chartBarWidth, it.Color,
				FormatPercent(share)+"  "+FormatMoney(loc, it.Amount)))
			b.WriteString("\n")
		}
		b.WriteString("\n  " + mutedStyle.Render(loc.T(i18n.KeyTotalAmount)+": ") + valueStyle.Render(FormatMoney(loc, st.Total)))
		b.WriteString("   " + mutedStyle.Render(loc.T(i18n.KeyAverageCost)+": ") + valueStyle.Render(FormatMoney(loc, math.Round(st.Average))))
	} else {
		b.WriteString("  " + mutedStyle.Render(loc.T(i18n.KeyCostDistribution)) + "\n")
		for _, it := range items {
			b.WriteString(RenderHorizontalBar(it.Name, labelWidth, it.Amount, st.Highest.Amount, chartBarWidth, it.Color,
				FormatMoney(loc, it.Amount)))
			b.WriteString("\n")
		}
		b.WriteString("\n  " + mutedStyle.Render(loc.T(i18n.KeyTotalCosts)+": ") + valueStyle.Render(FormatMoney(loc, st.Total)))
		b.WriteString("   " + mutedStyle.Render(loc.T(i18n.KeyCostItems)+": ") + valueStyle.Render(FormatCount(st.Count)))
	}
	b.WriteString("\n")

	b.WriteString("  " + mutedStyle.Render(loc.T(i18n.KeyHighestCost)+": ") + valueStyle.Render(FormatMoney(loc, st.Highest.Amount)))
	b.WriteString("   " + mutedStyle.Render(loc.T(i18n.KeyLowestCost)+": ") + valueStyle.Render(FormatMoney(loc, st.Lowest.Amount)))
	b.WriteString("   " + mutedStyle.Render(loc.T(i18n.KeyCostRange)+": ") + valueStyle.Render(FormatMoney(loc, st.Range)))
	b.WriteString("\n")
	return b.String()
}

// RenderScenarios renders saved scenarios as a table.
func RenderScenarios(list []model.Scenario, loc i18n.Locale) string {
	if len(list) == 0 {
		return "  " + mutedStyle.Render(loc.T(i18n.KeyNoScenarios)) + "\n"
	}

	rows := make([][]string, 0, len(list))
	for _, sc := range list {
		c := budget.NewCalculator()
		sc.Apply(c)
		r := model.NewReport(c, loc)
		survival := "-"
		if r.HasResult {
			survival = r.Summary + " " + loc.UnitLabel(r.Unit)
		}
		rows = append(rows, []string{
			sc.Name,
			FormatMoney(loc, r.Remaining),
			FormatMoney(loc, r.TotalMonthly),
			survival,
			FormatAgo(sc.UpdatedAt),
		})
	}

	return RenderTable(Table{
		Title: loc.T(i18n.KeyScenarios),
		Headers: []string{
			loc.T(i18n.KeyScenarioName),
			loc.T(i18n.KeyRemainingAmount),
			loc.T(i18n.KeyTotalMonthlyCost),
			loc.T(i18n.KeySurvivalTime),
			loc.T(i18n.KeyUpdated),
		},
		Rows: rows,
	})
}
