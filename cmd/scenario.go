package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/runway/internal/budget"
	"github.com/theirongolddev/runway/internal/cli"
	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/i18n"
	"github.com/theirongolddev/runway/internal/model"
	"github.com/theirongolddev/runway/internal/store"
)

var scenarioCmd = &cobra.Command{
	Use:     "scenario",
	Aliases: []string{"scenarios"},
	Short:   "Manage saved scenarios",
}

var scenarioSaveCmd = &cobra.Command{
	Use:     "save NAME",
	Short:   "Save remaining funds and costs under a name",
	Example: "  runway scenario save rent-only --remaining 3000 --cost Rent=1000",
	Args:    cobra.ExactArgs(1),
	RunE:    runScenarioSave,
}

var scenarioListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List saved scenarios",
	Args:    cobra.NoArgs,
	RunE:    runScenarioList,
}

var scenarioShowCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Compute and print a saved scenario",
	Args:  cobra.ExactArgs(1),
	RunE:  runScenarioShow,
}

var scenarioRmCmd = &cobra.Command{
	Use:     "rm NAME",
	Aliases: []string{"delete"},
	Short:   "Delete a saved scenario",
	Args:    cobra.ExactArgs(1),
	RunE:    runScenarioRm,
}

func init() {
	addCalcFlags(scenarioSaveCmd)
	scenarioCmd.AddCommand(scenarioSaveCmd, scenarioListCmd, scenarioShowCmd, scenarioRmCmd)
	rootCmd.AddCommand(scenarioCmd)
}

// withStore opens the scenario store for the duration of fn.
func withStore(fn func(ctx context.Context, cfg config.Config, st *store.Store) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	st, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	return fn(context.Background(), cfg, st)
}

func runScenarioSave(_ *cobra.Command, args []string) error {
	return withStore(func(ctx context.Context, cfg config.Config, st *store.Store) error {
		if strings.TrimSpace(flagRemaining) == "" {
			return errors.New("--remaining is required")
		}
		calc := buildCalculator(flagRemaining, flagCosts)
		saved, err := st.Save(ctx, model.ScenarioFrom(strings.TrimSpace(args[0]), calc))
		if err != nil {
			return fmt.Errorf("saving scenario: %w", err)
		}
		loc := i18n.Parse(cfg.General.Locale)
		fmt.Printf("  %s\n", loc.T(i18n.KeyScenarioSaved, "name", saved.Name))
		return nil
	})
}

func runScenarioList(_ *cobra.Command, _ []string) error {
	return withStore(func(ctx context.Context, cfg config.Config, st *store.Store) error {
		list, err := st.List(ctx)
		if err != nil {
			return fmt.Errorf("listing scenarios: %w", err)
		}
		fmt.Println()
		fmt.Print(cli.RenderScenarios(list, i18n.Parse(cfg.General.Locale)))
		fmt.Println()
		return nil
	})
}

func runScenarioShow(_ *cobra.Command, args []string) error {
	return withStore(func(ctx context.Context, cfg config.Config, st *store.Store) error {
		sc, err := st.Get(ctx, args[0])
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no scenario named %q", args[0])
		}
		if err != nil {
			return fmt.Errorf("loading scenario: %w", err)
		}

		loc := i18n.Parse(cfg.General.Locale)
		calc := budget.NewCalculator()
		sc.Apply(calc)
		if err := applyUnit(calc, cfg.General.DefaultUnit); err != nil {
			return err
		}

		fmt.Println()
		fmt.Printf("  %s  %s\n", sc.Name, cli.FormatAgo(sc.UpdatedAt))
		fmt.Print(cli.RenderReport(model.NewReport(calc, loc), loc, cfg.Appearance.Chart))
		fmt.Println()
		return nil
	})
}

func runScenarioRm(_ *cobra.Command, args []string) error {
	return withStore(func(ctx context.Context, cfg config.Config, st *store.Store) error {
		err := st.Delete(ctx, args[0])
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no scenario named %q", args[0])
		}
		if err != nil {
			return fmt.Errorf("deleting scenario: %w", err)
		}
		loc := i18n.Parse(cfg.General.Locale)
		fmt.Printf("  %s\n", loc.T(i18n.KeyScenarioDeleted, "name", args[0]))
		return nil
	})
}
