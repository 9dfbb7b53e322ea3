package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// BuildFunc creates the live model for a named entry.
type BuildFunc func(name string) (Model, error)

// Picker lists named entries and opens the live view of the chosen one.
type Picker struct {
	names  []string
	info   map[string]string
	cursor int
	build  BuildFunc
	live   *Model
	err    error
	styles styles
}

func NewPicker(names []string, info map[string]string, build BuildFunc) Picker {
	return Picker{
		names:  names,
		info:   info,
		build:  build,
		styles: newStyles(ThemeTerminal),
	}
}

func (p Picker) Init() tea.Cmd { return nil }

func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if p.live != nil {
		if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
			p.live = nil
			return p, nil
		}
		next, cmd := p.live.Update(msg)
		live := next.(Model)
		p.live = &live
		return p, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch key.String() {
	case "q", "ctrl+c":
		return p, tea.Quit
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.names)-1 {
			p.cursor++
		}
	case "enter", " ":
		if len(p.names) == 0 {
			return p, nil
		}
		live, err := p.build(p.names[p.cursor])
		if err != nil {
			p.err = err
			return p, nil
		}
		p.err = nil
		p.live = &live
		return p, live.Init()
	}
	return p, nil
}

func (p Picker) View() string {
	if p.live != nil {
		return p.live.View()
	}

	var b strings.Builder
	b.WriteString("\n  " + p.styles.header.Render("ARMTRAJ") + "\n")
	for i, name := range p.names {
		desc := p.info[name]
		if i == p.cursor {
			b.WriteString(fmt.Sprintf("  %s %s  %s\n", p.styles.active.Render("▸"), p.styles.value.Bold(true).Render(fmt.Sprintf("%-18s", name)), p.styles.active.UnsetBold().Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", p.styles.label.UnsetWidth().Render(fmt.Sprintf("%-18s", name)), p.styles.label.UnsetWidth().Render(desc)))
		}
	}
	if p.err != nil {
		b.WriteString("\n  " + p.styles.warning.Render(p.err.Error()) + "\n")
	}
	b.WriteString(p.styles.help.Render("\n  j/k navigate  enter select  esc back  q quit") + "\n")
	return b.String()
}

// RunPicker shows the picker until the user quits.
func RunPicker(names []string, info map[string]string, build BuildFunc) error {
	_, err := tea.NewProgram(NewPicker(names, info, build), tea.WithAltScreen()).Run()
	return err
}
