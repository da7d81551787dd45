package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/runway/internal/i18n"
	"github.com/theirongolddev/runway/internal/tui/theme"
)

// Tab represents a single tab in the tab bar.
type Tab struct {
	Title string // i18n key of the display name
	Key   rune
}

// Tabs defines all available tabs.
var Tabs = []Tab{
	{Title: i18n.KeyCalculator, Key: '1'},
	{Title: i18n.KeyCostCharts, Key: '2'},
	{Title: i18n.KeyScenarios, Key: '3'},
	{Title: i18n.KeySettings, Key: '4'},
}

const tabGap = "  "

// tabLabel is the plain text of a tab, e.g. "[1]Calculator".
func tabLabel(tab Tab, loc i18n.Locale) string {
	return "[" + string(tab.Key) + "]" + loc.T(tab.Title)
}

// TabVisualWidth returns the rendered width of tab idx in loc.
func TabVisualWidth(idx int, loc i18n.Locale) int {
	return lipgloss.Width(tabLabel(Tabs[idx], loc))
}

// RenderTabBar renders the tab bar with the given active index.
func RenderTabBar(activeIdx int, width int, loc i18n.Locale) string {
	t := theme.Active

	activeStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.SurfaceHover).
		Bold(true)

	inactiveStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Background)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Background).
		Bold(true)

	dimKeyStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Background)

	spaceStyle := lipgloss.NewStyle().Background(t.Background)

	parts := make([]string, 0, len(Tabs))
	for i, tab := range Tabs {
		if i == activeIdx {
			parts = append(parts, activeStyle.Render(tabLabel(tab, loc)))
			continue
		}
		parts = append(parts, dimKeyStyle.Render("[")+keyStyle.Render(string(tab.Key))+dimKeyStyle.Render("]")+
			inactiveStyle.Render(loc.T(tab.Title)))
	}

	row := spaceStyle.Render(" ") + strings.Join(parts, spaceStyle.Render(tabGap))
	if pad := width - lipgloss.Width(row); pad > 0 {
		row += spaceStyle.Render(strings.Repeat(" ", pad))
	}
	return row
}

// TabAtX returns the tab under column x of the tab bar, or -1.
func TabAtX(x int, loc i18n.Locale) int {
	pos := 1 // leading space
	for i := range Tabs {
		w := TabVisualWidth(i, loc)
		if x >= pos && x < pos+w {
			return i
		}
		pos += w + len(tabGap)
	}
	return -1
}

// TabIdxByKey returns the tab index for a given key press, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}
