package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/runway/internal/budget"
)

func TestParseCost(t *testing.T) {
	cases := []struct {
		raw  string
		want budget.CostEntry
	}{
		{"1000", budget.CostEntry{Amount: "1000"}},
		{"Rent=1000", budget.CostEntry{Name: "Rent", Amount: "1000"}},
		{" Food = 800 = groceries ", budget.CostEntry{Name: "Food", Amount: "800", Description: "groceries"}},
		{"Misc=5=a=b", budget.CostEntry{Name: "Misc", Amount: "5", Description: "a=b"}},
	}
	for _, tc := range cases {
		if diff := cmp.Diff(tc.want, parseCost(tc.raw)); diff != "" {
			t.Errorf("parseCost(%q) mismatch (-want +got):\n%s", tc.raw, diff)
		}
	}
}

func TestBuildCalculator(t *testing.T) {
	calc := buildCalculator(" 3000 ", []string{"Rent=1000"})
	s, ok := calc.Result()
	require.True(t, ok)
	assert.InDelta(t, 3.0, s.Months, 1e-9)
	assert.Equal(t, budget.UnitMonths, calc.Unit())

	costs := calc.Costs()
	require.Len(t, costs, 1)
	assert.Equal(t, budget.CostID(1), costs[0].ID)
}

func TestBuildCalculator_InvalidCostExcluded(t *testing.T) {
	calc := buildCalculator("1000", []string{"A=200", "B=abc"})
	assert.Equal(t, "200", calc.TotalMonthly().String())
	assert.Len(t, calc.ValidCosts(), 1)
}

func TestApplyUnit(t *testing.T) {
	calc := buildCalculator("3000", []string{"1000"})

	require.NoError(t, applyUnit(calc, "auto"))
	assert.Equal(t, budget.UnitMonths, calc.Unit())

	require.NoError(t, applyUnit(calc, "days"))
	assert.Equal(t, budget.UnitDays, calc.Unit())

	// Three months is too short to show in years.
	require.NoError(t, applyUnit(calc, "years"))
	assert.Equal(t, budget.UnitDays, calc.Unit())

	assert.Error(t, applyUnit(calc, "weeks"))
}

func TestFilterDetachArg(t *testing.T) {
	got := filterDetachArg([]string{"serve", "--detach", "--addr", ":9000", "--detach=true"})
	assert.Equal(t, []string{"serve", "--addr", ":9000"}, got)
}

func TestPIDFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runway-serve.pid")

	_, err := readPID(path)
	assert.ErrorIs(t, err, os.ErrNotExist)
	require.NoError(t, ensureServeNotRunning(path))

	require.NoError(t, writePID(path, 4242))
	pid, err := readPID(path)
	require.NoError(t, err)
	assert.Equal(t, 4242, pid)

	require.NoError(t, os.WriteFile(path, []byte("nope\n"), 0o600))
	_, err = readPID(path)
	assert.Error(t, err)
}

func TestEnsureServeNotRunning_CurrentProcess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runway-serve.pid")
	require.NoError(t, writePID(path, os.Getpid()))
	assert.Error(t, ensureServeNotRunning(path))
}

func TestStateFileRoundTrip(t *testing.T) {
	path := statePath(filepath.Join(t.TempDir(), "runway-serve.pid"))
	want := serveRuntimeState{PID: 7, Addr: "127.0.0.1:8787", StartedAt: time.Unix(1700000000, 0).UTC(), DataDir: "/tmp/runway"}
	require.NoError(t, writeState(path, want))

	got, err := readState(path)
	require.NoError(t, err)
	assert.True(t, want.StartedAt.Equal(got.StartedAt))
	got.StartedAt = want.StartedAt
	assert.Equal(t, want, got)
}

func TestLoadConfig_FlagOverrides(t *testing.T) {
	dir := t.TempDir()
	flagConfig = filepath.Join(dir, "config.toml")
	flagLocale = "en-GB"
	flagDataDir = filepath.Join(dir, "data")
	t.Cleanup(func() { flagConfig, flagLocale, flagDataDir = "", "", "" })

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "en", cfg.General.Locale)
	assert.Equal(t, filepath.Join(dir, "data", "runway.db"), cfg.DBPath())
	assert.Equal(t, flagConfig, configPath())
}
