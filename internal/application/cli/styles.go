package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	boxChecked   = "☑"
	boxUnchecked = "☐"
)

type styles struct {
	title   lipgloss.Style
	success lipgloss.Style
	pending lipgloss.Style
	accent  lipgloss.Style
	muted   lipgloss.Style
	fail    lipgloss.Style
	done    lipgloss.Style
	panel   lipgloss.Style
}

// newStyles binds the palette to a renderer so colors are dropped when the output is not a terminal
func newStyles(renderer *lipgloss.Renderer) styles {
	return styles{
		title:   renderer.NewStyle().Bold(true),
		success: renderer.NewStyle().Foreground(lipgloss.Color("42")),
		pending: renderer.NewStyle().Foreground(lipgloss.Color("214")),
		accent:  renderer.NewStyle().Foreground(lipgloss.Color("12")),
		muted:   renderer.NewStyle().Faint(true),
		fail:    renderer.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		done:    renderer.NewStyle().Faint(true).Strikethrough(true),
		panel: renderer.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1),
	}
}

func progressBar(done, total, width int) string {
	filled := 0
	if total > 0 {
		filled = min(done*width/total, width)
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + fmt.Sprintf(" %d/%d", done, total)
}
