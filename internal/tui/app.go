// Package tui provides the interactive Bubble Tea calculator for runway.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"go.uber.org/zap"

	"github.com/theirongolddev/runway/internal/budget"
	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/i18n"
	"github.com/theirongolddev/runway/internal/model"
	"github.com/theirongolddev/runway/internal/tui/components"
	"github.com/theirongolddev/runway/internal/tui/theme"
)

// ScenarioStore persists named calculator snapshots.
type ScenarioStore interface {
	List(ctx context.Context) ([]model.Scenario, error)
	Save(ctx context.Context, sc model.Scenario) (model.Scenario, error)
	Delete(ctx context.Context, name string) error
}

// Options configures NewApp.
type Options struct {
	Config     config.Config
	ConfigPath string        // where the settings tab writes; empty uses config.ConfigPath()
	Scenarios  ScenarioStore // nil disables the scenarios tab
	Logger     *zap.Logger
	NeedSetup  bool // run the first-run form before the calculator
}

const (
	tabCalculator = iota
	tabCharts
	tabScenarios
	tabSettings
)

const (
	minTerminalWidth = 60
	compactWidth     = 110
	maxContentWidth  = 160
	minContentHeight = 5

	storeTimeout = 5 * time.Second
)

// App is the root Bubble Tea model.
type App struct {
	cfg        config.Config
	configPath string
	locale     i18n.Locale
	logger     *zap.Logger
	scenarios  ScenarioStore

	// Calculator state
	calc  *budget.Calculator
	form  calcForm
	chart string // "bar" or "pie"

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// Per-tab state
	scen     scenariosState
	settings settingsState

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *SetupValues
	needSetup bool

	spinner spinner.Model

	// Transient feedback shown in the status bar
	status    string
	statusErr bool
}

// NewApp creates a new TUI app model.
func NewApp(opts Options) App {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	path := opts.ConfigPath
	if path == "" {
		path = config.ConfigPath()
	}

	theme.SetActive(opts.Config.Appearance.Theme)
	loc := i18n.Parse(opts.Config.General.Locale)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	chart := opts.Config.Appearance.Chart
	if chart != "pie" {
		chart = "bar"
	}

	calc := budget.NewCalculator()
	a := App{
		cfg:        opts.Config,
		configPath: path,
		locale:     loc,
		logger:     logger,
		scenarios:  opts.Scenarios,
		calc:       calc,
		form:       newCalcForm(calc, loc),
		chart:      chart,
		spinner:    sp,
		needSetup:  opts.NeedSetup,
		scen:       scenariosState{loading: opts.Scenarios != nil},
	}
	if a.needSetup {
		a.setupForm = a.newSetupForm()
	}
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.form.focusCmd()}
	if a.scenarios != nil {
		cmds = append(cmds, a.spinner.Tick, loadScenariosCmd(a.scenarios))
	}
	if a.setupForm != nil {
		cmds = append(cmds, a.setupForm.Init())
	}
	return tea.Batch(cmds...)
}

func (a App) setupActive() bool {
	return a.needSetup && a.setupForm != nil
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.form.resize(a.inputWidth())
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if a.showHelp || a.setupActive() {
			return a, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if a.activeTab == tabScenarios {
				a.scen.move(-1)
			}
		case tea.MouseButtonWheelDown:
			if a.activeTab == tabScenarios {
				a.scen.move(1)
			}
		case tea.MouseButtonLeft:
			if msg.Action == tea.MouseActionPress && msg.Y == 0 {
				if tab := components.TabAtX(msg.X, a.locale); tab >= 0 {
					return a.switchTab(tab)
				}
			}
		}
		return a, nil

	case spinner.TickMsg:
		if !a.scen.loading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case scenariosLoadedMsg:
		return a.onScenariosLoaded(msg)

	case scenarioSavedMsg:
		return a.onScenarioSaved(msg)

	case scenarioDeletedMsg:
		return a.onScenarioDeleted(msg)

	case tea.KeyMsg:
		return a.updateKey(msg)
	}

	if a.setupActive() {
		return a.updateSetupForm(msg)
	}
	return a.updateActiveInput(msg)
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Global: quit
	if key == "ctrl+c" {
		return a, tea.Quit
	}

	// First-run setup wizard intercepts all keys
	if a.setupActive() {
		return a.updateSetupForm(msg)
	}

	// Dismiss help
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	a.status = ""

	if a.scen.prompting {
		return a.updateSavePrompt(msg)
	}
	if a.activeTab == tabSettings && a.settings.editing {
		return a.updateSettingsInput(msg)
	}

	// Calculator actions reachable while typing
	switch key {
	case "ctrl+l":
		a.toggleLocale()
		return a, nil
	case "ctrl+r":
		return a.resetCalculator()
	case "ctrl+n":
		return a.addCost()
	case "ctrl+w":
		return a.removeCost()
	case "ctrl+s":
		return a.openSavePrompt()
	case "alt+d":
		a.selectUnit(budget.UnitDays)
		return a, nil
	case "alt+m":
		a.selectUnit(budget.UnitMonths)
		return a, nil
	case "alt+y":
		a.selectUnit(budget.UnitYears)
		return a, nil
	}

	if a.activeTab == tabCalculator && a.form.focused() {
		return a.updateCalcInput(msg)
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "?":
		a.showHelp = true
		return a, nil
	case "left":
		return a.switchTab((a.activeTab + len(components.Tabs) - 1) % len(components.Tabs))
	case "right":
		return a.switchTab((a.activeTab + 1) % len(components.Tabs))
	}
	if len(msg.Runes) == 1 {
		if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
			return a.switchTab(idx)
		}
	}

	switch a.activeTab {
	case tabCalculator:
		return a.updateCalcNav(msg)
	case tabCharts:
		return a.updateChartsNav(msg)
	case tabScenarios:
		return a.updateScenariosNav(msg)
	case tabSettings:
		return a.updateSettingsNav(msg)
	}
	return a, nil
}

// updateActiveInput forwards non-key messages such as cursor blinks to
// whichever text input currently has focus.
func (a App) updateActiveInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case a.scen.prompting:
		a.scen.input, cmd = a.scen.input.Update(msg)
	case a.settings.editing:
		a.settings.input, cmd = a.settings.input.Update(msg)
	case a.form.focused():
		ti := a.form.input(a.form.focus)
		*ti, cmd = ti.Update(msg)
	}
	return a, cmd
}

func (a App) switchTab(idx int) (tea.Model, tea.Cmd) {
	a.activeTab = idx
	if idx != tabCalculator {
		a.form.blur()
	}
	return a, nil
}

func (a *App) toggleLocale() {
	a.locale = a.locale.Toggle()
	a.cfg.General.Locale = string(a.locale)
	a.form.localize(a.locale)
	a.logger.Debug("locale toggled", zap.String("op", "tui.toggleLocale"), zap.String("locale", string(a.locale)))
}

func (a *App) flash(msg string, isErr bool) {
	a.status = msg
	a.statusErr = isErr
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	if a.setupForm.State == huh.StateCompleted {
		if err := a.saveSetupConfig(); err != nil {
			a.logger.Warn("saving setup config", zap.String("op", "tui.setup"), zap.Error(err))
			a.flash(err.Error(), true)
		}
		a.needSetup = false
		a.setupForm = nil
		return a, a.form.focusCmd()
	}

	if a.setupForm.State == huh.StateAborted {
		a.needSetup = false
		a.setupForm = nil
		return a, a.form.focusCmd()
	}

	return a, cmd
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	// First-run setup wizard
	if a.setupActive() {
		return a.setupForm.View()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	t := theme.Active
	msg := lipgloss.NewStyle().
		Foreground(t.Orange).
		Background(t.Background).
		Render(fmt.Sprintf("Terminal too narrow (%d cols), need at least %d", a.width, minTerminalWidth))
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, msg,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	sectionStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Cyan).
		Background(t.Surface).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Editing", []struct{ key, desc string }{
			{"Tab ↓ / ⇧Tab ↑", "Next / Previous field"},
			{"Esc", "Stop editing"},
			{"^n  ^w", "Add / Remove cost"},
			{"^r", "Reset"},
			{"^l", "Toggle language"},
			{"^s", "Save scenario"},
			{"alt+d/m/y", "Days / Months / Years"},
		}},
		{"Navigation", []struct{ key, desc string }{
			{"1 2 3 4", "Jump to tab"},
			{"← →", "Previous / Next tab"},
			{"Enter  i", "Edit fields"},
			{"d m y", "Select time unit"},
			{"c", "Toggle bar / pie chart"},
			{"j k", "Navigate lists"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}
	for i, sec := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(sectionStyle.Render(sec.title))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-16s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// 1. Header: tab bar and app title
	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true).
		Width(w)
	header := components.RenderTabBar(a.activeTab, w, a.locale) + "\n" +
		titleStyle.Render(" "+a.locale.T(i18n.KeyAppTitle))

	// 2. Status bar
	statusBar := components.RenderStatusBar(w, components.Status{
		Hints:   a.statusHints(),
		Message: a.status,
		IsError: a.statusErr,
		Right:   "[^l] " + a.locale.ToggleLabel() + "  " + theme.Active.Name,
	})

	// 3. Content zone height
	contentH := max(h-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	// 4. Tab content
	var content string
	switch a.activeTab {
	case tabCalculator:
		content = a.renderCalculatorTab(cw)
	case tabCharts:
		content = a.renderChartsTab(cw)
	case tabScenarios:
		content = a.renderScenariosTab(cw)
	case tabSettings:
		content = a.renderSettingsTab(cw)
	}
	if a.scen.prompting {
		content = a.renderSavePrompt(cw) + "\n" + content
	}

	// 5. Truncate + pad to exactly contentH lines
	content = padHeight(truncateHeight(content, contentH), contentH)

	// 6. Fill each line to full width with background
	content = fillLinesWithBackground(content, cw, t.Background)

	// 7. Center when the terminal is wider than the content
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) statusHints() string {
	switch {
	case a.scen.prompting || a.settings.editing:
		return "[Enter]save  [Esc]cancel"
	case a.activeTab == tabCalculator && a.form.focused():
		return "[Tab]next  [Esc]navigate  [?]help"
	default:
		return "[?]help  [q]uit"
	}
}

// ─── Helpers ────────────────────────────────────────────────────

// fitWidth truncates or pads s to exactly w display cells.
func fitWidth(s string, w int) string {
	if lipgloss.Width(s) > w {
		s = ansi.Truncate(s, w, "…")
	}
	return s + strings.Repeat(" ", max(w-lipgloss.Width(s), 0))
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}
