package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/runway/internal/tui/theme"
)

// Status is the content of the bottom status bar.
type Status struct {
	Hints   string // key hints on the left
	Message string // transient feedback after an action
	IsError bool
	Right   string // right-aligned info
}

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(width int, s Status) string {
	t := theme.Active

	base := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	msgStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface).Bold(true)
	if s.IsError {
		msgStyle = msgStyle.Foreground(t.Red)
	}

	left := base.Render(" " + s.Hints)
	if s.Message != "" {
		left += base.Render("  ") + msgStyle.Render(s.Message)
	}
	right := ""
	if s.Right != "" {
		right = base.Render(s.Right + " ")
	}

	padding := max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	bar := left + base.Render(strings.Repeat(" ", padding)) + right
	if lipgloss.Width(bar) > width && width > 0 {
		return lipgloss.NewStyle().MaxWidth(width).Render(bar)
	}
	return bar
}
