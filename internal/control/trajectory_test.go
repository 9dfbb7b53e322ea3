package control_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/armtraj/internal/control"
	"github.com/san-kum/armtraj/internal/sim"
	"github.com/san-kum/armtraj/internal/trajectory"
)

type tick struct {
	t          float64
	q          sim.Vector
	continuing bool
}

func runToCompletion(ctrl *control.Trajectory, dt float64) []tick {
	var ticks []tick
	for i := 0; i < 100000; i++ {
		t := ctrl.Time()
		q, continuing := ctrl.Step(dt)
		ticks = append(ticks, tick{t: t, q: q, continuing: continuing})
		if !continuing {
			break
		}
	}
	return ticks
}

var _ = Describe("Trajectory", func() {
	var ctrl *control.Trajectory

	BeforeEach(func() {
		ctrl = control.NewTrajectory(patrol(), trajectory.Linear, nil)
	})

	It("returns the first waypoint from Configure", func() {
		q0, err := ctrl.Configure()
		Expect(err).NotTo(HaveOccurred())
		Expect([]float64(q0)).To(Equal(home))
		Expect(ctrl.Time()).To(BeZero())
	})

	It("hits every anchor exactly with a step that divides the anchor times", func() {
		_, err := ctrl.Configure()
		Expect(err).NotTo(HaveOccurred())

		ticks := runToCompletion(ctrl, 0.125)
		byTime := make(map[float64]sim.Vector, len(ticks))
		for _, tk := range ticks {
			byTime[tk.t] = tk.q
		}

		for _, a := range anchors {
			q, ok := byTime[a.time]
			Expect(ok).To(BeTrue(), "no tick at t=%v", a.time)
			Expect([]float64(q)).To(Equal(a.values), "t=%v", a.time)
		}
	})

	It("stops on the first tick whose advanced time exceeds the last waypoint", func() {
		_, err := ctrl.Configure()
		Expect(err).NotTo(HaveOccurred())

		ticks := runToCompletion(ctrl, 0.125)
		Expect(ticks).To(HaveLen(81))

		for _, tk := range ticks[:len(ticks)-1] {
			Expect(tk.continuing).To(BeTrue(), "t=%v", tk.t)
		}
		last := ticks[len(ticks)-1]
		Expect(last.continuing).To(BeFalse())
		Expect(last.t).To(Equal(10.0))
		Expect([]float64(last.q)).To(Equal(home))
		Expect(ctrl.Time()).To(BeNumerically(">", ctrl.DomainUpper()))
	})

	It("produces a continuous sequence at a 10 ms tick", func() {
		_, err := ctrl.Configure()
		Expect(err).NotTo(HaveOccurred())

		ticks := runToCompletion(ctrl, 0.01)
		Expect(len(ticks)).To(BeNumerically(">=", 1000))

		for i := 1; i < len(ticks); i++ {
			for j := range ticks[i].q {
				step := math.Abs(ticks[i].q[j] - ticks[i-1].q[j])
				Expect(step).To(BeNumerically("<", 0.01), "tick %d joint %d", i, j)
			}
		}
		for _, a := range anchors {
			k := int(math.Round(a.time / 0.01))
			for j := range a.values {
				Expect(ticks[k].q[j]).To(BeNumerically("~", a.values[j], 1e-12))
			}
		}
	})

	It("tracks the current leg", func() {
		_, err := ctrl.Configure()
		Expect(err).NotTo(HaveOccurred())
		Expect(ctrl.Leg()).To(Equal(-1))

		for ctrl.Time() < 6.0 {
			ctrl.Step(0.5)
		}
		Expect(ctrl.Leg()).To(Equal(2))
	})

	It("rewinds the clock when configured again", func() {
		_, err := ctrl.Configure()
		Expect(err).NotTo(HaveOccurred())
		ctrl.Step(1.0)
		ctrl.Step(1.0)
		Expect(ctrl.Time()).To(Equal(2.0))

		_, err = ctrl.Configure()
		Expect(err).NotTo(HaveOccurred())
		Expect(ctrl.Time()).To(BeZero())
	})

	It("fails fast with too few waypoints", func() {
		set := trajectory.NewWaypointSet(9)
		Expect(set.Append(0, home)).To(Succeed())

		_, err := control.NewTrajectory(set, trajectory.Linear, nil).Configure()
		Expect(err).To(MatchError(trajectory.ErrTooFewWaypoints))
		Expect(err).To(MatchError(trajectory.ErrConfig))
	})

	It("refuses to step before Configure", func() {
		q, continuing := ctrl.Step(0.01)
		Expect(q).To(BeNil())
		Expect(continuing).To(BeFalse())
	})

	DescribeTable("every basis passes through the anchors",
		func(basis trajectory.Basis) {
			c := control.NewTrajectory(patrol(), basis, nil)
			_, err := c.Configure()
			Expect(err).NotTo(HaveOccurred())

			for _, a := range anchors {
				q, err := c.Evaluate(a.time)
				Expect(err).NotTo(HaveOccurred())
				Expect([]float64(q)).To(Equal(a.values))
			}
		},
		Entry("linear", trajectory.Linear),
		Entry("monotone", trajectory.Monotone),
		Entry("akima", trajectory.Akima),
		Entry("natural", trajectory.Natural),
	)
})
