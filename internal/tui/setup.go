package tui

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/i18n"
	"github.com/theirongolddev/runway/internal/tui/theme"
)

// SetupValues holds the answers of the first-run form.
type SetupValues struct {
	Locale string
	Theme  string
	Chart  string
	Unit   string
}

// SetupValuesFrom seeds the form with cfg's current values.
func SetupValuesFrom(cfg config.Config) SetupValues {
	v := SetupValues{
		Locale: string(i18n.Parse(cfg.General.Locale)),
		Theme:  theme.ByName(cfg.Appearance.Theme).Name,
		Chart:  "bar",
		Unit:   "auto",
	}
	if cfg.Appearance.Chart == "pie" {
		v.Chart = "pie"
	}
	if cfg.General.DefaultUnit != "" {
		v.Unit = cfg.General.DefaultUnit
	}
	return v
}

// Apply copies the answers into cfg.
func (v SetupValues) Apply(cfg *config.Config) {
	cfg.General.Locale = v.Locale
	cfg.General.DefaultUnit = v.Unit
	cfg.Appearance.Theme = v.Theme
	cfg.Appearance.Chart = v.Chart
}

// NewSetupForm builds the first-run form, writing answers into vals.
func NewSetupForm(vals *SetupValues) *huh.Form {
	themes := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themes = append(themes, huh.NewOption(t.Name, t.Name))
	}
	units := make([]huh.Option[string], 0, len(unitChoices))
	for _, u := range unitChoices {
		units = append(units, huh.NewOption(u, u))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to runway").
				Description("How long will your money last? A few choices first;\nchange them later in Settings or with `runway setup`."),
			huh.NewSelect[string]().
				Title("Language / 语言").
				Options(
					huh.NewOption("中文", string(i18n.ZH)),
					huh.NewOption("English", string(i18n.EN)),
				).
				Value(&vals.Locale),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themes...).
				Value(&vals.Theme),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Default chart").
				Options(
					huh.NewOption("Bar", "bar"),
					huh.NewOption("Pie", "pie"),
				).
				Value(&vals.Chart),
			huh.NewSelect[string]().
				Title("Default time unit for `runway calc`").
				Options(units...).
				Value(&vals.Unit),
		),
	).WithTheme(huh.ThemeDracula())
}

// newSetupForm binds the form to a.setupVals, which every copy of the model
// shares.
func (a *App) newSetupForm() *huh.Form {
	vals := SetupValuesFrom(a.cfg)
	a.setupVals = &vals
	return NewSetupForm(a.setupVals)
}

// saveSetupConfig applies the form answers to the running app and writes
// them to disk.
func (a *App) saveSetupConfig() error {
	a.setupVals.Apply(&a.cfg)

	a.locale = i18n.Parse(a.cfg.General.Locale)
	theme.SetActive(a.cfg.Appearance.Theme)
	a.chart = a.cfg.Appearance.Chart
	a.restyle()

	if err := config.SaveTo(a.configPath, a.cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	return nil
}
