package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/runway/internal/budget"
	"github.com/theirongolddev/runway/internal/cli"
	"github.com/theirongolddev/runway/internal/i18n"
	"github.com/theirongolddev/runway/internal/model"
)

var (
	flagRemaining string
	flagCosts     []string
	flagUnit      string
	flagChart     string
	flagJSON      bool
)

const calcExample = `  runway calc --remaining 3000 --cost Rent=1000
  runway calc --remaining 12000 --cost Rent=2500 --cost "Food=800=groceries" --unit years
  runway calc --remaining 500 --cost 1000 --json`

var calcCmd = &cobra.Command{
	Use:     "calc",
	Short:   "Compute how long the remaining funds last",
	Example: calcExample,
	RunE:    runCalc,
}

func init() {
	addCalcFlags(calcCmd)
	calcCmd.Flags().StringVarP(&flagUnit, "unit", "u", "", "Display unit: auto, days, months, years (default from config)")
	calcCmd.Flags().StringVar(&flagChart, "chart", "", "Chart style: bar or pie (default from config)")
	calcCmd.Flags().BoolVar(&flagJSON, "json", false, "Print the result as JSON")
	rootCmd.AddCommand(calcCmd)
}

func addCalcFlags(c *cobra.Command) {
	c.Flags().StringVarP(&flagRemaining, "remaining", "r", "", "Remaining funds")
	c.Flags().StringArrayVarP(&flagCosts, "cost", "c", nil, "Monthly cost as Name=Amount[=Description], repeatable")
}

// parseCost parses a --cost value. A bare amount leaves the name empty.
func parseCost(raw string) budget.CostEntry {
	parts := strings.SplitN(raw, "=", 3)
	var e budget.CostEntry
	switch len(parts) {
	case 1:
		e.Amount = parts[0]
	case 2:
		e.Name, e.Amount = parts[0], parts[1]
	default:
		e.Name, e.Amount, e.Description = parts[0], parts[1], parts[2]
	}
	e.Name = strings.TrimSpace(e.Name)
	e.Amount = strings.TrimSpace(e.Amount)
	e.Description = strings.TrimSpace(e.Description)
	return e
}

// buildCalculator loads the --remaining and --cost flags into a calculator.
func buildCalculator(remaining string, rawCosts []string) *budget.Calculator {
	costs := make([]budget.CostEntry, 0, len(rawCosts))
	for i, raw := range rawCosts {
		e := parseCost(raw)
		e.ID = budget.CostID(i + 1)
		costs = append(costs, e)
	}
	calc := budget.NewCalculator()
	calc.Load(strings.TrimSpace(remaining), costs)
	return calc
}

// applyUnit selects unit on calc. "auto" and "" keep the automatic choice;
// a unit the duration does not allow is reported and ignored.
func applyUnit(calc *budget.Calculator, unit string) error {
	if unit == "" || unit == "auto" {
		return nil
	}
	u, err := budget.ParseUnit(unit)
	if err != nil {
		return err
	}
	if _, ok := calc.Result(); ok && !calc.SelectUnit(u) {
		fmt.Fprintf(os.Stderr, "  %s is not available for this duration, showing %s\n", u, calc.Unit())
	}
	return nil
}

func runCalc(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	loc := i18n.Parse(cfg.General.Locale)

	if strings.TrimSpace(flagRemaining) == "" {
		return errors.New("--remaining is required")
	}

	calc := buildCalculator(flagRemaining, flagCosts)

	unit := flagUnit
	if unit == "" {
		unit = cfg.General.DefaultUnit
	}
	if err := applyUnit(calc, unit); err != nil {
		return err
	}

	report := model.NewReport(calc, loc)

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	chart := flagChart
	if chart == "" {
		chart = cfg.Appearance.Chart
	}
	if chart != "bar" && chart != "pie" {
		return fmt.Errorf("unknown chart %q", chart)
	}

	fmt.Println()
	fmt.Print(cli.RenderReport(report, loc, chart))
	fmt.Println()
	return nil
}
