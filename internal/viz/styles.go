package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	header   lipgloss.Style
	label    lipgloss.Style
	value    lipgloss.Style
	active   lipgloss.Style
	graph    lipgloss.Style
	help     lipgloss.Style
	panel    lipgloss.Style
	canvas   lipgloss.Style
	running  lipgloss.Style
	paused   lipgloss.Style
	complete lipgloss.Style
	warning  lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		header:   lipgloss.NewStyle().Foreground(t.Primary).Bold(true).MarginBottom(1),
		label:    lipgloss.NewStyle().Foreground(t.Muted).Width(10),
		value:    lipgloss.NewStyle().Foreground(t.Text),
		active:   lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		graph:    lipgloss.NewStyle().Foreground(t.Primary).Padding(1, 0),
		help:     lipgloss.NewStyle().Foreground(t.Muted).MarginTop(1),
		panel:    lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(t.Muted).Padding(1, 2).Width(52),
		canvas:   lipgloss.NewStyle().Padding(1, 2),
		running:  lipgloss.NewStyle().Foreground(t.Running).Bold(true),
		paused:   lipgloss.NewStyle().Foreground(t.Paused).Bold(true),
		complete: lipgloss.NewStyle().Foreground(t.Complete).Bold(true),
		warning:  lipgloss.NewStyle().Foreground(t.Warning).Bold(true),
	}
}

// JointBar draws v within [-limit, limit] as a track with a marker. A zero
// limit centres the marker; values past the limit pin it to the end.
func JointBar(v, limit float64, width int) string {
	if width < 3 {
		width = 3
	}
	pos := width / 2
	if limit > 0 {
		frac := (v + limit) / (2 * limit)
		if frac < 0 {
			frac = 0
		}
		if frac > 1 {
			frac = 1
		}
		pos = int(frac * float64(width-1))
	}
	return "[" + strings.Repeat("-", pos) + "|" + strings.Repeat("-", width-1-pos) + "]"
}

// OutOfRange reports whether v lies outside [-limit, limit].
func OutOfRange(v, limit float64) bool {
	return v < -limit || v > limit
}
