package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/theirongolddev/runway/internal/budget"
	"github.com/theirongolddev/runway/internal/cli"
	"github.com/theirongolddev/runway/internal/i18n"
	"github.com/theirongolddev/runway/internal/model"
	"github.com/theirongolddev/runway/internal/tui/components"
	"github.com/theirongolddev/runway/internal/tui/theme"
)

// fieldsPerCost is the number of inputs on each cost row: name, amount and
// description, in budget.Field order.
const fieldsPerCost = 3

type costRow struct {
	id     budget.CostID
	name   textinput.Model
	amount textinput.Model
	desc   textinput.Model
}

// calcForm holds the text inputs mirroring the calculator. Field 0 is the
// remaining amount; field 1+3*i+f is field f of cost row i.
type calcForm struct {
	remaining textinput.Model
	rows      []costRow
	focus     int // -1 while navigating
	last      int // field to return to after navigating
	width     int
}

func newCalcForm(calc *budget.Calculator, loc i18n.Locale) calcForm {
	f := calcForm{width: 30}
	f.rebuild(calc, loc)
	f.setFocus(0)
	return f
}

func newFormInput(width int) textinput.Model {
	t := theme.Active
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 64
	ti.Width = width
	ti.TextStyle = lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(t.AccentBright)
	return ti
}

func (f *calcForm) newRow(e budget.CostEntry) costRow {
	r := costRow{
		id:     e.ID,
		name:   newFormInput(f.width),
		amount: newFormInput(f.width),
		desc:   newFormInput(f.width),
	}
	r.name.SetValue(e.Name)
	r.amount.SetValue(e.Amount)
	r.desc.SetValue(e.Description)
	return r
}

// rebuild discards every input and recreates them from calc.
func (f *calcForm) rebuild(calc *budget.Calculator, loc i18n.Locale) {
	f.remaining = newFormInput(f.width)
	f.remaining.SetValue(calc.Remaining())
	f.rows = nil
	for _, e := range calc.Costs() {
		f.rows = append(f.rows, f.newRow(e))
	}
	f.localize(loc)
}

// sync matches the rows to calc's entries, keeping the inputs of entries
// that still exist.
func (f *calcForm) sync(calc *budget.Calculator, loc i18n.Locale) {
	existing := make(map[budget.CostID]costRow, len(f.rows))
	for _, r := range f.rows {
		existing[r.id] = r
	}
	rows := make([]costRow, 0, len(f.rows)+1)
	for _, e := range calc.Costs() {
		if r, ok := existing[e.ID]; ok {
			rows = append(rows, r)
			continue
		}
		rows = append(rows, f.newRow(e))
	}
	f.rows = rows
	f.localize(loc)
}

func (f *calcForm) localize(loc i18n.Locale) {
	f.remaining.Placeholder = loc.T(i18n.KeyInputPlaceholder)
	for i := range f.rows {
		f.rows[i].name.Placeholder = loc.T(i18n.KeyCostNamePlaceholder)
		f.rows[i].amount.Placeholder = loc.T(i18n.KeyInputPlaceholder)
		f.rows[i].desc.Placeholder = loc.T(i18n.KeyCostDescPlaceholder)
	}
}

func (f *calcForm) resize(w int) {
	f.width = w
	for i := range f.fieldCount() {
		f.input(i).Width = w
	}
}

func (f *calcForm) fieldCount() int {
	return 1 + fieldsPerCost*len(f.rows)
}

func (f *calcForm) input(i int) *textinput.Model {
	if i == 0 {
		return &f.remaining
	}
	r := &f.rows[(i-1)/fieldsPerCost]
	switch budget.Field((i - 1) % fieldsPerCost) {
	case budget.FieldName:
		return &r.name
	case budget.FieldAmount:
		return &r.amount
	default:
		return &r.desc
	}
}

// rowOf returns the cost row holding field i, or -1 for the remaining field.
func (f *calcForm) rowOf(i int) int {
	if i < 1 {
		return -1
	}
	return (i - 1) / fieldsPerCost
}

func (f *calcForm) focused() bool {
	return f.focus >= 0
}

// setFocus focuses field i, clamped to the form. A negative i blurs all.
func (f *calcForm) setFocus(i int) tea.Cmd {
	for k := range f.fieldCount() {
		f.input(k).Blur()
	}
	if i < 0 {
		f.focus = -1
		return nil
	}
	i = min(i, f.fieldCount()-1)
	f.focus = i
	f.last = i
	return f.input(i).Focus()
}

func (f *calcForm) blur() {
	if f.focused() {
		f.last = f.focus
	}
	f.setFocus(-1)
}

func (f calcForm) focusCmd() tea.Cmd {
	if !f.focused() {
		return nil
	}
	return textinput.Blink
}

func (a App) inputWidth() int {
	cw := a.contentWidth()
	if !a.isCompactLayout() {
		cw = components.LayoutRow(cw, 2)[0]
	}
	return max(components.CardInnerWidth(cw)-4, 10)
}

// ─── Update ─────────────────────────────────────────────────────

func (a App) updateCalcInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := a.form.fieldCount()
	switch msg.String() {
	case "esc":
		a.form.blur()
		return a, nil
	case "tab", "down", "enter":
		return a, a.form.setFocus((a.form.focus + 1) % n)
	case "shift+tab", "up":
		return a, a.form.setFocus((a.form.focus + n - 1) % n)
	}

	ti := a.form.input(a.form.focus)
	before := ti.Value()
	var cmd tea.Cmd
	*ti, cmd = ti.Update(msg)
	if v := ti.Value(); v != before {
		a.applyField(a.form.focus, v)
	}
	return a, cmd
}

// applyField pushes the value of form field i into the calculator.
func (a *App) applyField(i int, v string) {
	if i == 0 {
		a.calc.SetRemaining(v)
	} else {
		r := a.form.rows[a.form.rowOf(i)]
		a.calc.UpdateCost(r.id, budget.Field((i-1)%fieldsPerCost), v)
	}

	if res, ok := a.calc.Result(); ok {
		a.logger.Debug("recomputed",
			zap.String("op", "tui.applyField"),
			zap.Float64("months", res.Months),
			zap.String("unit", a.calc.Unit().String()),
		)
	}
}

func (a App) updateCalcNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "i", "tab":
		return a, a.form.setFocus(a.form.last)
	case "d":
		a.selectUnit(budget.UnitDays)
	case "m":
		a.selectUnit(budget.UnitMonths)
	case "y":
		a.selectUnit(budget.UnitYears)
	case "l":
		a.toggleLocale()
	case "r":
		return a.resetCalculator()
	case "a":
		return a.addCost()
	case "x":
		return a.removeCost()
	case "s":
		return a.openSavePrompt()
	}
	return a, nil
}

func (a *App) selectUnit(u budget.Unit) {
	if !a.calc.SelectUnit(u) {
		return
	}
	a.logger.Debug("unit selected", zap.String("op", "tui.selectUnit"), zap.String("unit", u.String()))
}

func (a App) resetCalculator() (tea.Model, tea.Cmd) {
	a.calc.Reset()
	a.form.rebuild(a.calc, a.locale)
	a.scen.current = ""
	a.activeTab = tabCalculator
	return a, a.form.setFocus(0)
}

func (a App) addCost() (tea.Model, tea.Cmd) {
	a.calc.AddCost()
	a.form.sync(a.calc, a.locale)
	a.activeTab = tabCalculator
	return a, a.form.setFocus(1 + fieldsPerCost*(len(a.form.rows)-1))
}

// removeCost deletes the cost row under the cursor, or the last row when
// the cursor is on the remaining amount. The final row is never removed.
func (a App) removeCost() (tea.Model, tea.Cmd) {
	pos := a.form.last
	if a.form.focused() {
		pos = a.form.focus
	}
	row := a.form.rowOf(pos)
	if row < 0 || row >= len(a.form.rows) {
		row = len(a.form.rows) - 1
	}
	if !a.calc.RemoveCost(a.form.rows[row].id) {
		return a, nil
	}
	wasFocused := a.form.focused()
	a.form.sync(a.calc, a.locale)

	next := 1 + fieldsPerCost*min(row, len(a.form.rows)-1)
	if wasFocused {
		return a, a.form.setFocus(next)
	}
	a.form.setFocus(-1)
	a.form.last = next
	return a, nil
}

// ─── View ───────────────────────────────────────────────────────

func (a App) renderCalculatorTab(cw int) string {
	if a.isCompactLayout() {
		parts := []string{a.renderInputsCard(cw), a.renderResultCard(cw)}
		if s := a.renderSummary(cw); s != "" {
			parts = append(parts, s)
		}
		return strings.Join(parts, "\n")
	}

	widths := components.LayoutRow(cw, 2)
	right := []string{a.renderResultCard(widths[1])}
	if s := a.renderSummary(widths[1]); s != "" {
		right = append(right, s)
	}
	return components.CardRow([]string{
		a.renderInputsCard(widths[0]),
		lipgloss.JoinVertical(lipgloss.Left, right...),
	})
}

func (a App) inputLine(i int) string {
	t := theme.Active
	marker := "  "
	if a.form.focus == i {
		marker = "▸ "
	}
	return lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Render(marker) +
		a.form.input(i).View()
}

func (a App) renderInputsCard(w int) string {
	t := theme.Active
	loc := a.locale

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	headerStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	valueStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	errStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	v := a.calc.Validation()

	var b strings.Builder
	b.WriteString(headerStyle.Render(loc.T(i18n.KeyRemainingAmount)+" ("+loc.Currency()+")") + "\n")
	b.WriteString(a.inputLine(0) + "\n")
	if v.Remaining != nil {
		b.WriteString(errStyle.Render("  "+loc.T(i18n.KeyInputError)) + "\n")
	}

	b.WriteString("\n" + headerStyle.Render(loc.T(i18n.KeyMonthlyCosts)) + "\n")
	label := model.CostLabel(loc)
	for i, r := range a.form.rows {
		b.WriteString(labelStyle.Render(label(i+1)) + "\n")
		for f := range fieldsPerCost {
			b.WriteString(a.inputLine(1+fieldsPerCost*i+f) + "\n")
		}
		if v.Costs[r.id] != nil {
			b.WriteString(errStyle.Render("  "+loc.T(i18n.KeyInputError)) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(labelStyle.Render(loc.T(i18n.KeyTotalMonthlyCost)+": ") +
		valueStyle.Render(cli.FormatMoney(loc, a.calc.TotalMonthly().InexactFloat64())))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("[^n] " + loc.T(i18n.KeyAddCost) +
		"  [^w] " + loc.T(i18n.KeyRemoveCost) +
		"  [^r] " + loc.T(i18n.KeyReset)))

	return components.ContentCard(loc.T(i18n.KeyCalculator), b.String(), w)
}

var unitKeys = map[budget.Unit]string{
	budget.UnitDays:   "d",
	budget.UnitMonths: "m",
	budget.UnitYears:  "y",
}

func (a App) renderResultCard(w int) string {
	t := theme.Active
	loc := a.locale

	res, ok := a.calc.Result()
	if !ok {
		dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
		return components.ContentCard(loc.T(i18n.KeyResult), dimStyle.Render(loc.T(i18n.KeyEnterAmountsForResult)), w)
	}

	color := t.Outcome(res.Months)
	if res.Insufficient() {
		color = t.Red
	}
	resultStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	b.WriteString(resultStyle.Render(model.ResultText(loc, res, a.calc.Unit())))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render(loc.T(i18n.KeyTimeUnit) + ": "))
	for i, u := range budget.Units {
		if i > 0 {
			b.WriteString(spaceStyle.Render(" "))
		}
		b.WriteString(a.unitButton(u))
	}

	return components.ContentCard(loc.T(i18n.KeyResult), b.String(), w)
}

func (a App) unitButton(u budget.Unit) string {
	t := theme.Active
	label := " " + unitKeys[u] + " " + a.locale.UnitLabel(u.String()) + " "

	var style lipgloss.Style
	switch {
	case u == a.calc.Unit():
		style = lipgloss.NewStyle().Foreground(t.Background).Background(t.Accent).Bold(true)
	case a.calc.UnitAvailable(u):
		style = lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover)
	default:
		style = lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Strikethrough(true)
	}
	return style.Render(label)
}

// renderSummary renders the budget summary and cost breakdown, or nothing
// while there is no result.
func (a App) renderSummary(w int) string {
	t := theme.Active
	loc := a.locale

	r := model.NewReport(a.calc, loc)
	if !r.HasResult {
		return ""
	}

	survival := components.Metric{
		Label: loc.T(i18n.KeySurvivalTime),
		Value: r.Summary + " " + loc.UnitLabel(r.Unit),
		Color: t.Outcome(r.Months),
	}
	if r.Insufficient {
		survival.Color = t.Red
	}
	metrics := components.MetricCardRow([]components.Metric{
		{Label: loc.T(i18n.KeyTotalAmount), Value: cli.FormatMoney(loc, r.Remaining)},
		{Label: loc.T(i18n.KeyTotalMonthlyExpense), Value: cli.FormatMoney(loc, r.TotalMonthly)},
		survival,
	}, w)

	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	amountStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	descStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	totalStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Bold(true)

	nameW, amountW := 0, 0
	for _, line := range r.Breakdown {
		nameW = max(nameW, lipgloss.Width(line.Name))
		amountW = max(amountW, lipgloss.Width(cli.FormatMoney(loc, line.Amount)))
	}
	inner := components.CardInnerWidth(w)
	nameW = min(nameW, inner/2)

	var b strings.Builder
	b.WriteString(totalStyle.Render(loc.T(i18n.KeyCostsBreakdown)))
	b.WriteString("\n")
	for _, line := range r.Breakdown {
		amt := cli.FormatMoney(loc, line.Amount)
		b.WriteString(nameStyle.Render(fitWidth(line.Name, nameW)))
		b.WriteString(amountStyle.Render("  " + strings.Repeat(" ", amountW-lipgloss.Width(amt)) + amt))
		if line.Description != "" {
			b.WriteString(descStyle.Render("  " + line.Description))
		}
		b.WriteString("\n")
	}
	b.WriteString(totalStyle.Render(loc.T(i18n.KeyTotalMonthlyCost) + ": " + cli.FormatMoney(loc, r.TotalMonthly)))

	return metrics + "\n" + components.ContentCard(loc.T(i18n.KeySummary), b.String(), w)
}
