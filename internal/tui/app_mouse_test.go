package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/theirongolddev/runway/internal/i18n"
	"github.com/theirongolddev/runway/internal/model"
	"github.com/theirongolddev/runway/internal/tui/components"
)

func click(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}
}

func TestClickTabBarSwitchesTabs(t *testing.T) {
	for _, loc := range i18n.Locales {
		a := newTestApp(t, loc, nil)
		pos := 1 // leading space

		for i := range components.Tabs {
			w := components.TabVisualWidth(i, loc)
			a = update(t, a, click(pos+w/2, 0))
			assert.Equal(t, i, a.activeTab, "locale=%s x=%d", loc, pos+w/2)
			pos += w + 2
		}
	}
}

func TestClickOutsideTabBarIgnored(t *testing.T) {
	a := newTestApp(t, i18n.EN, nil)
	a = update(t, a, click(5, 3))
	assert.Equal(t, tabCalculator, a.activeTab)
	assert.True(t, a.form.focused(), "clicks below the tab bar keep input focus")
}

func TestClickAwayFromCalculatorBlursInput(t *testing.T) {
	a := newTestApp(t, i18n.EN, nil)
	x := 1 + components.TabVisualWidth(0, i18n.EN) + 2
	a = update(t, a, click(x, 0))
	assert.Equal(t, tabCharts, a.activeTab)
	assert.False(t, a.form.focused())
}

func TestWheelMovesScenarioCursor(t *testing.T) {
	a := newTestApp(t, i18n.EN, nil)
	a.activeTab = tabScenarios
	a.scen.list = []model.Scenario{{Name: "a"}, {Name: "b"}, {Name: "c"}}

	a = update(t, a, tea.MouseMsg{Button: tea.MouseButtonWheelDown})
	a = update(t, a, tea.MouseMsg{Button: tea.MouseButtonWheelDown})
	a = update(t, a, tea.MouseMsg{Button: tea.MouseButtonWheelDown})
	assert.Equal(t, 2, a.scen.cursor)

	a = update(t, a, tea.MouseMsg{Button: tea.MouseButtonWheelUp})
	assert.Equal(t, 1, a.scen.cursor)
}
