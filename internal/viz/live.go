package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/armtraj/internal/angle"
	"github.com/san-kum/armtraj/internal/sim"
)

const (
	width           = 48
	height          = 16
	historyCapacity = 600
	frameInterval   = time.Second / 60
)

type TickMsg time.Time

// Options describe the controller being shown.
type Options struct {
	Name   string
	Joints []string
	// LimitsDeg are symmetric joint limits in degrees, used to scale the bars.
	LimitsDeg []float64
	Dt        float64
	Theme     Theme
}

// Model steps a controller in real time and renders its targets.
type Model struct {
	ctrl     sim.Controller
	opts     Options
	limits   []float64
	steps    int
	q        sim.Vector
	t        float64
	ticks    int
	running  bool
	complete bool
	err      error
	selected int
	history  [][]float64
	canvas   *Canvas
	theme    Theme
	styles   styles
}

// NewModel configures ctrl and returns a view of its first targets. A
// configuration error is kept and shown instead of the arm.
func NewModel(ctrl sim.Controller, opts Options) Model {
	if !(opts.Dt > 0) {
		opts.Dt = sim.DefaultConfig().Dt
	}
	if opts.Theme.Name == "" {
		opts.Theme = ThemeTerminal
	}

	steps := int(math.Round(frameInterval.Seconds() / opts.Dt))
	if steps < 1 {
		steps = 1
	}

	m := Model{
		ctrl:    ctrl,
		opts:    opts,
		limits:  angle.Deg2RadVector(opts.LimitsDeg),
		steps:   steps,
		running: true,
		canvas:  NewCanvas(width, height),
		theme:   opts.Theme,
		styles:  newStyles(opts.Theme),
	}
	m.reset()
	return m
}

func (m *Model) reset() {
	m.complete = false
	m.ticks = 0
	m.t = 0
	m.history = nil
	m.q, m.err = m.ctrl.Configure()
	if m.err == nil {
		m.history = make([][]float64, len(m.q))
		m.record(m.q)
	}
}

func (m *Model) record(q sim.Vector) {
	for j := range m.history {
		if j >= len(q) {
			break
		}
		m.history[j] = append(m.history[j], q[j])
		if len(m.history[j]) > historyCapacity {
			m.history[j] = m.history[j][1:]
		}
	}
}

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "tab", "l", "right":
			m.cycleJoint(1)
		case "shift+tab", "h", "left":
			m.cycleJoint(-1)
		case "t":
			m.theme = NextTheme(m.theme)
			m.styles = newStyles(m.theme)
		}
	case TickMsg:
		if m.running && !m.complete && m.err == nil {
			m.advance()
		}
		return m, tick()
	}
	return m, nil
}

// advance runs one frame worth of controller ticks.
func (m *Model) advance() {
	for i := 0; i < m.steps; i++ {
		m.t = m.ctrl.Time()
		q, continuing := m.ctrl.Step(m.opts.Dt)
		if q == nil {
			m.err = fmt.Errorf("controller returned no targets at t=%.3f", m.t)
			return
		}
		m.q = q
		m.ticks++
		m.record(q)
		if !continuing {
			m.complete = true
			return
		}
	}
}

func (m *Model) cycleJoint(dir int) {
	n := len(m.q)
	if n == 0 {
		return
	}
	m.selected = ((m.selected+dir)%n + n) % n
}

func (m Model) jointName(j int) string {
	if j < len(m.opts.Joints) && m.opts.Joints[j] != "" {
		return m.opts.Joints[j]
	}
	return fmt.Sprintf("q%d", j)
}

func (m Model) status() string {
	switch {
	case m.err != nil:
		return m.styles.warning.Render("ERROR")
	case m.complete:
		return m.styles.complete.Render("COMPLETE")
	case !m.running:
		return m.styles.paused.Render("PAUSED")
	default:
		return m.styles.running.Render("RUNNING")
	}
}

func (m Model) View() string {
	var s strings.Builder
	s.WriteString(m.styles.header.Render(strings.ToUpper(m.opts.Name)) + "\n")
	s.WriteString(m.status() + "\n\n")

	if m.err != nil {
		s.WriteString(m.styles.warning.Render(m.err.Error()) + "\n")
		s.WriteString(m.styles.help.Render("Q:Quit R:Retry"))
		return m.styles.panel.Render(s.String())
	}

	s.WriteString(m.styles.label.Render("Time") + m.styles.value.Render(fmt.Sprintf("%.2fs", m.t)) + "\n")
	s.WriteString(m.styles.label.Render("Ticks") + m.styles.value.Render(fmt.Sprintf("%d", m.ticks)) + "\n\n")

	for j, v := range m.q {
		limit := 0.0
		if j < len(m.limits) {
			limit = m.limits[j]
		}
		line := fmt.Sprintf("%-4s %s %7.2f°", m.jointName(j), JointBar(v, limit, 16), angle.Rad2Deg(v))
		switch {
		case j == m.selected:
			s.WriteString(m.styles.active.Render("> "+line) + "\n")
		case j < len(m.limits) && OutOfRange(v, limit):
			s.WriteString("  " + m.styles.warning.Render(line) + "\n")
		default:
			s.WriteString("  " + m.styles.label.UnsetWidth().Render(line) + "\n")
		}
	}

	if m.selected < len(m.history) && len(m.history[m.selected]) > 1 {
		chart := asciigraph.Plot(m.history[m.selected],
			asciigraph.Height(5),
			asciigraph.Width(30),
			asciigraph.Caption(m.jointName(m.selected)+" (rad)"),
		)
		s.WriteString(m.styles.graph.Render(chart) + "\n")
	}

	s.WriteString(m.styles.help.Render("SP:Pause R:Reset Q:Quit\nTab:Joint T:Theme (" + m.theme.Name + ")"))

	m.canvas.Clear()
	m.canvas.DrawArm(m.q)
	arm := m.styles.canvas.Render(m.canvas.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, arm, m.styles.panel.Render(s.String()))
}

// Targets returns the most recent joint targets.
func (m Model) Targets() sim.Vector { return m.q.Clone() }

// Complete reports whether the controller has finished.
func (m Model) Complete() bool { return m.complete }

// Run shows the live view until the user quits.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
