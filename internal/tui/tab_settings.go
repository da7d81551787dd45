package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/theirongolddev/runway/internal/cli"
	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/i18n"
	"github.com/theirongolddev/runway/internal/tui/components"
	"github.com/theirongolddev/runway/internal/tui/theme"
)

const (
	settingsFieldLocale = iota
	settingsFieldTheme
	settingsFieldChart
	settingsFieldUnit
	settingsFieldServerAddr
	settingsFieldDataDir
	settingsFieldCount // sentinel
)

var (
	chartChoices = []string{"bar", "pie"}
	unitChoices  = []string{"auto", "days", "months", "years"}
)

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	saved   bool  // flash "saved" message briefly
	saveErr error // non-nil if last save failed
}

func newSettingsInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 50
	return ti
}

// nextChoice returns the value after cur in choices, wrapping around.
func nextChoice(choices []string, cur string) string {
	for i, c := range choices {
		if c == cur {
			return choices[(i+1)%len(choices)]
		}
	}
	return choices[0]
}

func (a App) updateSettingsNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		a.settings.cursor = min(a.settings.cursor+1, settingsFieldCount-1)
		a.settings.saved = false
	case "k", "up":
		a.settings.cursor = max(a.settings.cursor-1, 0)
		a.settings.saved = false
	case "enter", " ":
		switch a.settings.cursor {
		case settingsFieldServerAddr, settingsFieldDataDir:
			return a.settingsStartEdit()
		default:
			a.settingsCycle()
			a.settingsSave()
		}
	}
	return a, nil
}

// settingsCycle advances an enumerated field to its next value and applies
// it to the running app.
func (a *App) settingsCycle() {
	switch a.settings.cursor {
	case settingsFieldLocale:
		a.locale = a.locale.Toggle()
		a.cfg.General.Locale = string(a.locale)
		a.form.localize(a.locale)
	case settingsFieldTheme:
		a.cfg.Appearance.Theme = theme.Next(a.cfg.Appearance.Theme)
		theme.SetActive(a.cfg.Appearance.Theme)
		a.restyle()
	case settingsFieldChart:
		a.cfg.Appearance.Chart = nextChoice(chartChoices, a.cfg.Appearance.Chart)
		a.chart = a.cfg.Appearance.Chart
	case settingsFieldUnit:
		a.cfg.General.DefaultUnit = nextChoice(unitChoices, a.cfg.General.DefaultUnit)
	}
}

// restyle recreates theme-dependent widgets after a theme change.
func (a *App) restyle() {
	focus, last := a.form.focus, a.form.last
	a.form.rebuild(a.calc, a.locale)
	a.form.setFocus(focus)
	a.form.last = last
	a.spinner.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)
}

func (a App) settingsStartEdit() (tea.Model, tea.Cmd) {
	a.settings.editing = true
	a.settings.saved = false

	ti := newSettingsInput()
	switch a.settings.cursor {
	case settingsFieldServerAddr:
		ti.Placeholder = "127.0.0.1:8787"
		ti.SetValue(a.cfg.Server.Addr)
	case settingsFieldDataDir:
		ti.Placeholder = a.cfg.DataDir()
		ti.SetValue(a.cfg.General.DataDir)
	}

	cmd := ti.Focus()
	a.settings.input = ti
	return a, cmd
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		val := strings.TrimSpace(a.settings.input.Value())
		switch a.settings.cursor {
		case settingsFieldServerAddr:
			if val != "" {
				a.cfg.Server.Addr = val
			}
		case settingsFieldDataDir:
			a.cfg.General.DataDir = val
		}
		a.settingsSave()
		a.settings.editing = false
		return a, nil
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

func (a *App) settingsSave() {
	a.settings.saveErr = config.SaveTo(a.configPath, a.cfg)
	a.settings.saved = a.settings.saveErr == nil
	if a.settings.saveErr != nil {
		a.logger.Warn("saving settings", zap.String("op", "tui.settingsSave"), zap.Error(a.settings.saveErr))
	}
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active
	loc := a.locale

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	greenStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)

	type field struct {
		label string
		value string
	}

	unit := a.cfg.General.DefaultUnit
	unitDisplay := loc.T(i18n.KeyAuto)
	if unit != "" && unit != "auto" {
		unitDisplay = loc.UnitLabel(unit)
	}
	dataDir := a.cfg.General.DataDir
	if dataDir == "" {
		dataDir = "(" + a.cfg.DataDir() + ")"
	}

	fields := []field{
		{loc.T(i18n.KeyLanguage), string(a.locale)},
		{loc.T(i18n.KeyTheme), theme.Active.Name},
		{loc.T(i18n.KeyDefaultChart), a.chart},
		{loc.T(i18n.KeyDefaultUnit), unitDisplay},
		{loc.T(i18n.KeyServerAddr), a.cfg.Server.Addr},
		{loc.T(i18n.KeyDataDir), dataDir},
	}

	innerW := components.CardInnerWidth(cw)

	var formBody strings.Builder
	for i, f := range fields {
		label := fitWidth(f.label+":", 18) + " "

		if a.settings.editing && i == a.settings.cursor {
			formBody.WriteString(markerStyle.Render("▸ "))
			formBody.WriteString(accentStyle.Render(label))
			formBody.WriteString(a.settings.input.View())
			formBody.WriteString("\n")
			continue
		}

		if i == a.settings.cursor {
			marker := markerStyle.Render("▸ ")
			lbl := selectedLabelStyle.Render(label)
			value := selectedStyle.Render(f.value)
			formBody.WriteString(marker + lbl + value)
			usedWidth := lipgloss.Width(marker) + lipgloss.Width(lbl) + lipgloss.Width(value)
			if padLen := innerW - usedWidth; padLen > 0 {
				formBody.WriteString(lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", padLen)))
			}
		} else {
			formBody.WriteString(lipgloss.NewStyle().Background(t.Surface).Render("  "))
			formBody.WriteString(labelStyle.Render(label))
			formBody.WriteString(valueStyle.Render(f.value))
		}
		formBody.WriteString("\n")
	}

	if a.settings.saveErr != nil {
		warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
		formBody.WriteString("\n")
		formBody.WriteString(warnStyle.Render(loc.T(i18n.KeySaveFailed, "error", a.settings.saveErr.Error())))
	} else if a.settings.saved {
		formBody.WriteString("\n")
		formBody.WriteString(greenStyle.Render(loc.T(i18n.KeySaved)))
	}

	formBody.WriteString("\n")
	formBody.WriteString(labelStyle.Render("[j/k] navigate  [Enter] change  [Esc] cancel"))

	scenarioCount := "-"
	if a.scenarios != nil {
		scenarioCount = cli.FormatCount(len(a.scen.list))
	}
	var infoBody strings.Builder
	infoBody.WriteString(labelStyle.Render("Config file:     ") + valueStyle.Render(a.configPath) + "\n")
	infoBody.WriteString(labelStyle.Render("Database:        ") + valueStyle.Render(a.cfg.DBPath()) + "\n")
	infoBody.WriteString(labelStyle.Render("Saved scenarios: ") + valueStyle.Render(scenarioCount) + "\n")
	infoBody.WriteString(labelStyle.Render("Log level:       ") + valueStyle.Render(fmt.Sprintf("%s (%s)", a.cfg.Log.Level, a.cfg.Log.Format)))

	var b strings.Builder
	b.WriteString(components.ContentCard(loc.T(i18n.KeySettings), formBody.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("General", infoBody.String(), cw))

	return b.String()
}
