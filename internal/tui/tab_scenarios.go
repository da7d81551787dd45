package tui

import (
	"context"
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

type scenariosLoadedMsg struct {
	list []model.Scenario
	err  error
}

type scenarioSavedMsg struct {
	scenario model.Scenario
	err      error
}

type scenarioDeletedMsg struct {
	name string
	err  error
}

// scenariosState tracks the scenarios tab and the save prompt.
type scenariosState struct {
	list    []model.Scenario
	cursor  int
	loading bool
	err     error

	current   string // name of the scenario last loaded or saved
	prompting bool
	input     textinput.Model
}

func (s *scenariosState) move(delta int) {
	if len(s.list) == 0 {
		s.cursor = 0
		return
	}
	s.cursor = min(max(s.cursor+delta, 0), len(s.list)-1)
}

func (s scenariosState) selected() (model.Scenario, bool) {
	if s.cursor < 0 || s.cursor >= len(s.list) {
		return model.Scenario{}, false
	}
	return s.list[s.cursor], true
}

func loadScenariosCmd(st ScenarioStore) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		list, err := st.List(ctx)
		return scenariosLoadedMsg{list: list, err: err}
	}
}

func saveScenarioCmd(st ScenarioStore, sc model.Scenario) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		saved, err := st.Save(ctx, sc)
		return scenarioSavedMsg{scenario: saved, err: err}
	}
}

func deleteScenarioCmd(st ScenarioStore, name string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		return scenarioDeletedMsg{name: name, err: st.Delete(ctx, name)}
	}
}

// reload starts a background list refresh.
func (a *App) reload() tea.Cmd {
	if a.scenarios == nil {
		return nil
	}
	a.scen.loading = true
	return tea.Batch(a.spinner.Tick, loadScenariosCmd(a.scenarios))
}

func (a App) onScenariosLoaded(msg scenariosLoadedMsg) (tea.Model, tea.Cmd) {
	a.scen.loading = false
	a.scen.err = msg.err
	if msg.err != nil {
		a.logger.Error("listing scenarios", zap.String("op", "tui.scenarios"), zap.Error(msg.err))
		return a, nil
	}
	a.scen.list = msg.list
	a.scen.move(0)
	return a, nil
}

func (a App) onScenarioSaved(msg scenarioSavedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		a.logger.Error("saving scenario", zap.String("op", "tui.scenarios"), zap.Error(msg.err))
		a.flash(msg.err.Error(), true)
		return a, nil
	}
	a.scen.current = msg.scenario.Name
	a.flash(a.locale.T(i18n.KeyScenarioSaved, "name", msg.scenario.Name), false)
	return a, a.reload()
}

func (a App) onScenarioDeleted(msg scenarioDeletedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		a.logger.Error("deleting scenario", zap.String("op", "tui.scenarios"), zap.Error(msg.err))
		a.flash(msg.err.Error(), true)
		return a, nil
	}
	if a.scen.current == msg.name {
		a.scen.current = ""
	}
	a.flash(a.locale.T(i18n.KeyScenarioDeleted, "name", msg.name), false)
	return a, a.reload()
}

func (a App) updateScenariosNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		a.scen.move(1)
	case "k", "up":
		a.scen.move(-1)
	case "g", "home":
		a.scen.cursor = 0
	case "G", "end":
		a.scen.move(len(a.scen.list))
	case "enter":
		return a.loadSelected()
	case "x", "delete":
		sc, ok := a.scen.selected()
		if !ok || a.scenarios == nil {
			return a, nil
		}
		return a, deleteScenarioCmd(a.scenarios, sc.Name)
	case "s":
		return a.openSavePrompt()
	case "r":
		return a, a.reload()
	}
	return a, nil
}

// loadSelected replaces the calculator with the selected scenario.
func (a App) loadSelected() (tea.Model, tea.Cmd) {
	sc, ok := a.scen.selected()
	if !ok {
		return a, nil
	}
	sc.Apply(a.calc)
	a.form.rebuild(a.calc, a.locale)
	a.form.setFocus(-1)
	a.form.last = 0
	a.scen.current = sc.Name
	a.activeTab = tabCalculator
	a.flash(a.locale.T(i18n.KeyScenarioLoaded, "name", sc.Name), false)
	a.logger.Info("scenario loaded", zap.String("op", "tui.loadSelected"), zap.String("name", sc.Name))
	return a, nil
}

func (a App) openSavePrompt() (tea.Model, tea.Cmd) {
	if a.scenarios == nil {
		a.flash(a.locale.T(i18n.KeyStoreUnavailable), true)
		return a, nil
	}
	t := theme.Active
	ti := textinput.New()
	ti.Prompt = "› "
	ti.CharLimit = 64
	ti.Width = 40
	ti.Placeholder = a.locale.T(i18n.KeyScenarioName)
	ti.PromptStyle = lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	ti.TextStyle = lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	ti.SetValue(a.scen.current)
	ti.CursorEnd()

	a.scen.input = ti
	a.scen.prompting = true
	a.form.blur()
	return a, a.scen.input.Focus()
}

func (a App) updateSavePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.scen.prompting = false
		return a, nil
	case "enter":
		name := strings.TrimSpace(a.scen.input.Value())
		if name == "" {
			a.flash(a.locale.T(i18n.KeyEmptyName), true)
			return a, nil
		}
		a.scen.prompting = false
		return a, saveScenarioCmd(a.scenarios, model.ScenarioFrom(name, a.calc))
	}

	var cmd tea.Cmd
	a.scen.input, cmd = a.scen.input.Update(msg)
	return a, cmd
}

func (a App) renderSavePrompt(cw int) string {
	return components.ContentCard(a.locale.T(i18n.KeySaveScenario), a.scen.input.View(), cw)
}

func (a App) renderScenariosTab(cw int) string {
	t := theme.Active
	loc := a.locale

	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	errStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)
	title := loc.T(i18n.KeyScenarios)

	switch {
	case a.scenarios == nil:
		return components.ContentCard(title, errStyle.Render(loc.T(i18n.KeyStoreUnavailable)), cw)
	case a.scen.loading && len(a.scen.list) == 0:
		return components.ContentCard(title, a.spinner.View()+mutedStyle.Render(" "+loc.T(i18n.KeyLoading)), cw)
	case a.scen.err != nil:
		return components.ContentCard(title, errStyle.Render(a.scen.err.Error()), cw)
	case len(a.scen.list) == 0:
		return components.ContentCard(title,
			mutedStyle.Render(loc.T(i18n.KeyNoScenarios))+"\n\n"+dimStyle.Render("[s] "+loc.T(i18n.KeySaveScenario)), cw)
	}

	inner := components.CardInnerWidth(cw)
	headerStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)

	cols := []int{20, 14, 14, 16, 16}
	row := func(cells ...string) string {
		var b strings.Builder
		for i, c := range cells {
			b.WriteString(fitWidth(c, cols[i]))
			b.WriteString(" ")
		}
		return b.String()
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("  " + row(
		loc.T(i18n.KeyScenarioName),
		loc.T(i18n.KeyRemainingAmount),
		loc.T(i18n.KeyTotalMonthlyCost),
		loc.T(i18n.KeySurvivalTime),
		loc.T(i18n.KeyUpdated),
	)))
	b.WriteString("\n")

	for i, sc := range a.scen.list {
		calc := budget.NewCalculator()
		sc.Apply(calc)
		r := model.NewReport(calc, loc)
		survival := "-"
		if r.HasResult {
			survival = r.Summary + " " + loc.UnitLabel(r.Unit)
		}
		name := sc.Name
		if name == a.scen.current {
			name = "● " + name
		}
		line := row(name, cli.FormatMoney(loc, r.Remaining), cli.FormatMoney(loc, r.TotalMonthly),
			survival, cli.FormatAgo(sc.UpdatedAt))

		if i == a.scen.cursor {
			line = markerStyle.Render("▸ ") + selectedStyle.Render(fitWidth(line, inner-2))
		} else {
			line = rowStyle.Render("  " + line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("[j/k] navigate  [Enter] load  [x] delete  [s] save  [r] reload"))

	return components.ContentCard(title, b.String(), cw)
}
