package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/runway/internal/budget"
	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/i18n"
	"github.com/theirongolddev/runway/internal/model"
	"github.com/theirongolddev/runway/internal/store"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// memStore is an in-memory ScenarioStore.
type memStore struct {
	items map[string]model.Scenario
	err   error
}

func newMemStore() *memStore {
	return &memStore{items: make(map[string]model.Scenario)}
}

func (m *memStore) List(context.Context) ([]model.Scenario, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]model.Scenario, 0, len(m.items))
	for _, sc := range m.items {
		out = append(out, sc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memStore) Save(_ context.Context, sc model.Scenario) (model.Scenario, error) {
	if m.err != nil {
		return model.Scenario{}, m.err
	}
	sc.UpdatedAt = time.Now()
	m.items[sc.Name] = sc
	return sc, nil
}

func (m *memStore) Delete(_ context.Context, name string) error {
	if _, ok := m.items[name]; !ok {
		return fmt.Errorf("%q: %w", name, store.ErrNotFound)
	}
	delete(m.items, name)
	return nil
}

func newTestApp(t *testing.T, loc i18n.Locale, st ScenarioStore) App {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.General.Locale = string(loc)
	cfg.General.DataDir = t.TempDir()
	opts := Options{
		Config:     cfg,
		ConfigPath: filepath.Join(t.TempDir(), "config.toml"),
	}
	if st != nil {
		opts.Scenarios = st
	}
	a := NewApp(opts)
	return update(t, a, tea.WindowSizeMsg{Width: 120, Height: 50})
}

func update(t *testing.T, a App, msg tea.Msg) App {
	t.Helper()
	m, _ := a.Update(msg)
	next, ok := m.(App)
	require.True(t, ok)
	return next
}

func typeText(t *testing.T, a App, s string) App {
	t.Helper()
	return update(t, a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func press(t *testing.T, a App, k tea.KeyType) App {
	t.Helper()
	return update(t, a, tea.KeyMsg{Type: k})
}

func alt(t *testing.T, a App, r rune) App {
	t.Helper()
	return update(t, a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}, Alt: true})
}

// drain runs cmd and feeds store results back into the app. Timers such as
// cursor blinks and spinner ticks are dropped.
func drain(t *testing.T, a App, cmd tea.Cmd) App {
	t.Helper()
	if cmd == nil {
		return a
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			a = drain(t, a, c)
		}
	case scenariosLoadedMsg, scenarioSavedMsg, scenarioDeletedMsg:
		m, next := a.Update(msg)
		a = drain(t, m.(App), next)
	}
	return a
}

// fillRent enters remaining and one named cost on a fresh app.
func fillRent(t *testing.T, a App, remaining, amount string) App {
	t.Helper()
	a = typeText(t, a, remaining)
	a = press(t, a, tea.KeyTab)
	a = typeText(t, a, "Rent")
	a = press(t, a, tea.KeyTab)
	return typeText(t, a, amount)
}

func TestTypingComputesResult(t *testing.T) {
	a := newTestApp(t, i18n.EN, nil)
	a = fillRent(t, a, "3000", "1000")

	res, ok := a.calc.Result()
	require.True(t, ok)
	assert.Equal(t, 3.0, res.Months)
	assert.Equal(t, budget.UnitMonths, a.calc.Unit())

	view := a.View()
	assert.Contains(t, view, "You can survive for 3 months")
	assert.Contains(t, view, "Budget Summary")
	assert.Contains(t, view, "$3,000")
}

func TestNoResultUntilInputsComplete(t *testing.T) {
	a := newTestApp(t, i18n.EN, nil)
	a = typeText(t, a, "3000")

	_, ok := a.calc.Result()
	assert.False(t, ok)
	assert.Contains(t, a.View(), "Enter a remaining amount")
}

func TestInvalidAmountShowsInlineError(t *testing.T) {
	a := newTestApp(t, i18n.EN, nil)
	a = typeText(t, a, "abc")

	assert.NotNil(t, a.calc.Validation().Remaining)
	assert.Contains(t, a.View(), "Please enter a valid amount")
}

func TestInsufficientFunds(t *testing.T) {
	a := newTestApp(t, i18n.ZH, nil)
	a = fillRent(t, a, "500", "1000")
	assert.Contains(t, a.View(), "资金不足，无法坚持一个月")
}

func TestFocusCycles(t *testing.T) {
	a := newTestApp(t, i18n.EN, nil)
	require.Equal(t, 0, a.form.focus)

	for range a.form.fieldCount() {
		a = press(t, a, tea.KeyTab)
	}
	assert.Equal(t, 0, a.form.focus, "tab wraps back to the remaining amount")

	a = press(t, a, tea.KeyShiftTab)
	assert.Equal(t, a.form.fieldCount()-1, a.form.focus)
}

func TestAddAndRemoveCost(t *testing.T) {
	a := newTestApp(t, i18n.EN, nil)

	a = press(t, a, tea.KeyCtrlN)
	require.Len(t, a.form.rows, 2)
	require.Len(t, a.calc.Costs(), 2)
	assert.Equal(t, 4, a.form.focus, "focus moves to the new cost's name")

	a = typeText(t, a, "Food")
	assert.Equal(t, "Food", a.calc.Costs()[1].Name)

	a = press(t, a, tea.KeyCtrlW)
	require.Len(t, a.calc.Costs(), 1)
	assert.Len(t, a.form.rows, 1)

	a = press(t, a, tea.KeyCtrlW)
	assert.Len(t, a.calc.Costs(), 1, "the last cost is never removed")
}

func TestRemoveKeepsOtherRowsInputs(t *testing.T) {
	a := newTestApp(t, i18n.EN, nil)
	a = fillRent(t, a, "3000", "1000")
	a = press(t, a, tea.KeyCtrlN)
	a = typeText(t, a, "Food")

	// Back to the first cost's name and remove it.
	a = press(t, a, tea.KeyShiftTab)
	a = press(t, a, tea.KeyShiftTab)
	a = press(t, a, tea.KeyShiftTab)
	require.Equal(t, 0, a.form.rowOf(a.form.focus))
	a = press(t, a, tea.KeyCtrlW)

	require.Len(t, a.form.rows, 1)
	assert.Equal(t, "Food", a.form.rows[0].name.Value())
	assert.Equal(t, 1, a.form.focus)
}

func TestUnitSelection(t *testing.T) {
	a := newTestApp(t, i18n.EN, nil)
	a = fillRent(t, a, "6000", "1000")
	require.Equal(t, budget.UnitMonths, a.calc.Unit())

	a = alt(t, a, 'd')
	assert.Equal(t, budget.UnitDays, a.calc.Unit())
	assert.Contains(t, a.View(), "You can survive for 183 days")

	a = alt(t, a, 'y')
	assert.Equal(t, budget.UnitDays, a.calc.Unit(), "years is unavailable under twelve months")

	a = press(t, a, tea.KeyEsc)
	a = typeText(t, a, "m")
	assert.Equal(t, budget.UnitMonths, a.calc.Unit())
}

func TestAutoUnitOnRecompute(t *testing.T) {
	a := newTestApp(t, i18n.EN, nil)
	a = fillRent(t, a, "30000", "1000")
	assert.Equal(t, budget.UnitYears, a.calc.Unit())
	assert.Contains(t, a.View(), "You can survive for 2.5 years")
}

func TestLocaleToggle(t *testing.T) {
	a := newTestApp(t, i18n.ZH, nil)
	assert.Contains(t, a.View(), "预算管理器")

	a = update(t, a, tea.KeyMsg{Type: tea.KeyCtrlL})
	assert.Equal(t, i18n.EN, a.locale)
	assert.Equal(t, i18n.EN.T(i18n.KeyCostNamePlaceholder), a.form.rows[0].name.Placeholder)
	assert.Contains(t, a.View(), "Budget Manager")
}

func TestReset(t *testing.T) {
	a := newTestApp(t, i18n.EN, nil)
	a = fillRent(t, a, "3000", "1000")
	a = press(t, a, tea.KeyCtrlN)

	a = update(t, a, tea.KeyMsg{Type: tea.KeyCtrlR})
	_, ok := a.calc.Result()
	assert.False(t, ok)
	assert.Empty(t, a.calc.Remaining())
	assert.Len(t, a.form.rows, 1)
	assert.Empty(t, a.form.remaining.Value())
	assert.Equal(t, 0, a.form.focus)
}

func TestNavigationModeSwitchesTabs(t *testing.T) {
	a := newTestApp(t, i18n.EN, nil)
	a = fillRent(t, a, "3000", "1000")

	a = typeText(t, a, "2")
	assert.Equal(t, tabCalculator, a.activeTab, "digits are typed while an input has focus")

	a = press(t, a, tea.KeyEsc)
	assert.False(t, a.form.focused())
	a = typeText(t, a, "2")
	require.Equal(t, tabCharts, a.activeTab)
	assert.Contains(t, a.View(), "Cost Distribution")

	a = typeText(t, a, "c")
	assert.Equal(t, "pie", a.chart)
	assert.Contains(t, a.View(), "Cost Proportion")
	assert.Contains(t, a.View(), "100.0%")

	a = press(t, a, tea.KeyLeft)
	assert.Equal(t, tabCalculator, a.activeTab)
	a = press(t, a, tea.KeyEnter)
	assert.True(t, a.form.focused())
}

func TestChartsEmptyState(t *testing.T) {
	a := newTestApp(t, i18n.EN, nil)
	a = press(t, a, tea.KeyEsc)
	a = typeText(t, a, "2")
	assert.Contains(t, a.View(), "No cost data")
}

func TestHelpOverlay(t *testing.T) {
	a := newTestApp(t, i18n.EN, nil)
	a = press(t, a, tea.KeyEsc)
	a = typeText(t, a, "?")
	require.True(t, a.showHelp)
	assert.Contains(t, a.View(), "Keyboard Shortcuts")

	a = typeText(t, a, "x")
	assert.False(t, a.showHelp)
}

func TestQuit(t *testing.T) {
	a := newTestApp(t, i18n.EN, nil)
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestTooNarrow(t *testing.T) {
	a := newTestApp(t, i18n.EN, nil)
	a = update(t, a, tea.WindowSizeMsg{Width: 40, Height: 20})
	assert.Contains(t, a.View(), "Terminal too narrow")
}

func TestSaveLoadDeleteScenario(t *testing.T) {
	st := newMemStore()
	a := newTestApp(t, i18n.EN, st)
	a = drain(t, a, loadScenariosCmd(st))
	assert.False(t, a.scen.loading)

	a = fillRent(t, a, "2400", "800")
	a = update(t, a, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.True(t, a.scen.prompting)

	a = typeText(t, a, "home")
	m, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	a = drain(t, m.(App), cmd)

	require.Contains(t, st.items, "home")
	assert.Equal(t, "2400", st.items["home"].Remaining)
	assert.Equal(t, "Saved scenario: home", a.status)
	require.Len(t, a.scen.list, 1)

	a = update(t, a, tea.KeyMsg{Type: tea.KeyCtrlR})
	a = press(t, a, tea.KeyEsc)
	a = typeText(t, a, "3")
	require.Equal(t, tabScenarios, a.activeTab)
	assert.Contains(t, a.View(), "home")

	a = press(t, a, tea.KeyEnter)
	assert.Equal(t, tabCalculator, a.activeTab)
	assert.Equal(t, "2400", a.calc.Remaining())
	assert.Equal(t, "2400", a.form.remaining.Value())
	assert.Equal(t, "Rent", a.form.rows[0].name.Value())
	assert.Contains(t, a.View(), "You can survive for 3 months")

	a = typeText(t, a, "3")
	m, cmd = a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	a = drain(t, m.(App), cmd)
	assert.Empty(t, st.items)
	assert.Empty(t, a.scen.list)
	assert.Equal(t, "Deleted scenario: home", a.status)
}

func TestSavePromptRejectsEmptyName(t *testing.T) {
	a := newTestApp(t, i18n.EN, newMemStore())
	a = update(t, a, tea.KeyMsg{Type: tea.KeyCtrlS})
	a = press(t, a, tea.KeyEnter)
	assert.True(t, a.scen.prompting)
	assert.True(t, a.statusErr)

	a = press(t, a, tea.KeyEsc)
	assert.False(t, a.scen.prompting)
}

func TestSaveWithoutStore(t *testing.T) {
	a := newTestApp(t, i18n.EN, nil)
	a = update(t, a, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.False(t, a.scen.prompting)
	assert.Equal(t, "Scenario store unavailable", a.status)
}

func TestSettingsCycleWritesConfig(t *testing.T) {
	a := newTestApp(t, i18n.ZH, nil)
	a = press(t, a, tea.KeyEsc)
	a = typeText(t, a, "4")
	require.Equal(t, tabSettings, a.activeTab)

	a = press(t, a, tea.KeyEnter) // language
	assert.Equal(t, i18n.EN, a.locale)
	assert.True(t, a.settings.saved)

	a = typeText(t, a, "j")
	a = typeText(t, a, "j")
	a = press(t, a, tea.KeyEnter) // chart
	assert.Equal(t, "pie", a.chart)

	cfg, err := config.LoadFrom(a.configPath)
	require.NoError(t, err)
	assert.Equal(t, "en", cfg.General.Locale)
	assert.Equal(t, "pie", cfg.Appearance.Chart)
}

func TestSettingsEditServerAddr(t *testing.T) {
	a := newTestApp(t, i18n.EN, nil)
	a = press(t, a, tea.KeyEsc)
	a = typeText(t, a, "4")
	for range settingsFieldServerAddr {
		a = typeText(t, a, "j")
	}
	a = press(t, a, tea.KeyEnter)
	require.True(t, a.settings.editing)

	a.settings.input.SetValue("")
	a = typeText(t, a, "0.0.0.0:9000")
	a = press(t, a, tea.KeyEnter)
	assert.False(t, a.settings.editing)

	cfg, err := config.LoadFrom(a.configPath)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9000", cfg.Server.Addr)
}

func TestSetupConfigApplied(t *testing.T) {
	cfg := config.DefaultConfig()
	path := filepath.Join(t.TempDir(), "config.toml")
	a := NewApp(Options{Config: cfg, ConfigPath: path, NeedSetup: true})
	require.True(t, a.setupActive())
	assert.Equal(t, "zh", a.setupVals.Locale)

	a.setupVals.Locale = "en"
	a.setupVals.Chart = "pie"
	a.setupVals.Unit = "days"
	require.NoError(t, a.saveSetupConfig())
	assert.Equal(t, i18n.EN, a.locale)
	assert.Equal(t, "pie", a.chart)

	saved, err := config.LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "en", saved.General.Locale)
	assert.Equal(t, "days", saved.General.DefaultUnit)
}
