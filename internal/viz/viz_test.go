package viz

import (
	"errors"
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/armtraj/internal/sim"
)

// rampController moves every joint at 1 rad/s and completes after limit.
type rampController struct {
	dim   int
	t     float64
	limit float64
	err   error
}

func (c *rampController) Configure() (sim.Vector, error) {
	if c.err != nil {
		return nil, c.err
	}
	c.t = 0
	return make(sim.Vector, c.dim), nil
}

func (c *rampController) Step(dt float64) (sim.Vector, bool) {
	q := make(sim.Vector, c.dim)
	for i := range q {
		q[i] = c.t
	}
	c.t += dt
	return q, c.t <= c.limit
}

func (c *rampController) Time() float64 { return c.t }

func key(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModelRunsToCompletion(t *testing.T) {
	ctrl := &rampController{dim: 3, limit: 0.5}
	m := NewModel(ctrl, Options{Name: "ramp", Dt: 0.01})

	for i := 0; i < 100 && !m.Complete(); i++ {
		m = update(m, TickMsg{})
	}
	if !m.Complete() {
		t.Fatal("expected the controller to complete")
	}
	if !strings.Contains(m.View(), "COMPLETE") {
		t.Error("expected COMPLETE status in view")
	}

	ticks := m.ticks
	m = update(m, TickMsg{})
	if m.ticks != ticks {
		t.Error("completed controller should not be stepped")
	}
}

func TestModelPause(t *testing.T) {
	m := NewModel(&rampController{dim: 2, limit: 10}, Options{Dt: 0.01})

	m = update(m, key(" "))
	m = update(m, TickMsg{})
	if m.ticks != 0 {
		t.Errorf("paused model stepped %d ticks", m.ticks)
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("expected PAUSED status in view")
	}

	m = update(m, key(" "))
	m = update(m, TickMsg{})
	if m.ticks == 0 {
		t.Error("resumed model did not step")
	}
}

func TestModelReset(t *testing.T) {
	ctrl := &rampController{dim: 2, limit: 10}
	m := NewModel(ctrl, Options{Dt: 0.01})

	m = update(m, TickMsg{})
	m = update(m, TickMsg{})
	m = update(m, key("r"))

	if m.ticks != 0 || ctrl.Time() != 0 {
		t.Errorf("expected reset to t=0, got ticks=%d t=%v", m.ticks, ctrl.Time())
	}
}

func TestModelCyclesJoints(t *testing.T) {
	m := NewModel(&rampController{dim: 3, limit: 10}, Options{Dt: 0.01, Joints: []string{"s1", "s2", "s3"}})

	m = update(m, key("tab"))
	m = update(m, key("tab"))
	if m.selected != 2 {
		t.Errorf("expected joint 2 selected, got %d", m.selected)
	}
	m = update(m, key("tab"))
	if m.selected != 0 {
		t.Errorf("expected selection to wrap to 0, got %d", m.selected)
	}
	m = update(m, key("h"))
	if m.selected != 2 {
		t.Errorf("expected selection to wrap back to 2, got %d", m.selected)
	}
}

func TestModelConfigureError(t *testing.T) {
	m := NewModel(&rampController{err: errors.New("bad waypoints")}, Options{Dt: 0.01})
	m = update(m, TickMsg{})

	view := m.View()
	if !strings.Contains(view, "ERROR") || !strings.Contains(view, "bad waypoints") {
		t.Errorf("expected error in view, got:\n%s", view)
	}
}

func TestModelThemeCycle(t *testing.T) {
	m := NewModel(&rampController{dim: 1, limit: 1}, Options{Dt: 0.01})
	first := m.theme.Name
	m = update(m, key("t"))
	if m.theme.Name == first {
		t.Error("expected theme to change")
	}
}

func TestJointBar(t *testing.T) {
	tests := []struct {
		name  string
		v     float64
		limit float64
		want  string
	}{
		{"centre", 0, 1, "[--|---]"},
		{"lower end", -1, 1, "[|-----]"},
		{"upper end", 1, 1, "[-----|]"},
		{"clamped", 5, 1, "[-----|]"},
		{"no limit", 3, 0, "[---|--]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := JointBar(tt.v, tt.limit, 6); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestArmPointsHome(t *testing.T) {
	pts := armPoints(make([]float64, 9))
	if len(pts) != 5 {
		t.Fatalf("expected 5 points, got %d", len(pts))
	}
	last := pts[len(pts)-1]
	reach := 0.0
	for _, l := range linkLengths {
		reach += l
	}
	if math.Abs(last[0]) > 1e-12 || math.Abs(last[1]-reach) > 1e-12 {
		t.Errorf("expected upright arm ending at (0, %v), got %v", reach, last)
	}
}

func TestArmPointsBendsAtPitchJoints(t *testing.T) {
	q := make([]float64, 9)
	q[0] = 1.0 // yaw does not show in the side view
	q[1] = math.Pi / 2

	pts := armPoints(q)
	shoulder := pts[1]
	elbow := pts[2]
	if math.Abs(elbow[1]-shoulder[1]) > 1e-12 {
		t.Errorf("expected horizontal upper arm, got %v -> %v", shoulder, elbow)
	}
	if elbow[0] <= 0 {
		t.Errorf("expected upper arm pointing forward, got %v", elbow)
	}
}

func TestCanvas(t *testing.T) {
	c := NewCanvas(4, 2)
	c.DrawLine(0, 0, 7, 7)
	if !c.IsSet(0, 0) || !c.IsSet(7, 7) {
		t.Error("expected line end points set")
	}
	if c.IsSet(7, 0) {
		t.Error("unexpected dot off the line")
	}
	c.Set(-1, 3)
	c.Set(100, 100)

	lines := strings.Split(strings.TrimRight(c.String(), "\n"), "\n")
	if len(lines) != 2 || len([]rune(lines[0])) != 4 {
		t.Errorf("unexpected canvas shape %q", c.String())
	}

	c.Clear()
	if c.IsSet(0, 0) {
		t.Error("expected empty canvas after Clear")
	}
}

func TestPickerOpensLiveView(t *testing.T) {
	built := ""
	p := NewPicker([]string{"a", "b"}, nil, func(name string) (Model, error) {
		built = name
		return NewModel(&rampController{dim: 1, limit: 1}, Options{Name: name, Dt: 0.01}), nil
	})

	next, _ := p.Update(key("j"))
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	p = next.(Picker)

	if built != "b" {
		t.Errorf("expected entry b built, got %q", built)
	}
	if p.live == nil {
		t.Fatal("expected live view open")
	}

	next, _ = p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if next.(Picker).live != nil {
		t.Error("expected esc to return to the list")
	}
}

func TestPickerShowsBuildError(t *testing.T) {
	p := NewPicker([]string{"broken"}, nil, func(string) (Model, error) {
		return Model{}, errors.New("no such preset")
	})
	next, _ := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !strings.Contains(next.View(), "no such preset") {
		t.Error("expected build error in view")
	}
}
