package control_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/armtraj/internal/angle"
	"github.com/san-kum/armtraj/internal/control"
	"github.com/san-kum/armtraj/internal/pattern"
	"github.com/san-kum/armtraj/internal/trajectory"
)

func mustSelector(ws []pattern.Window) *pattern.Selector {
	sel, err := pattern.NewSelector(ws)
	Expect(err).NotTo(HaveOccurred())
	return sel
}

var _ = Describe("Pattern", func() {
	table := [][]float64{home, reach, tuck, twist}

	It("selects patterns by half-open window and never completes", func() {
		ctrl := control.NewPattern(table, mustSelector(pattern.DefaultWindows()), nil)
		q0, err := ctrl.Configure()
		Expect(err).NotTo(HaveOccurred())
		Expect([]float64(q0)).To(Equal(home))

		seen := map[float64][]float64{}
		for ctrl.Time() <= 12.0 {
			t := ctrl.Time()
			q, continuing := ctrl.Step(0.5)
			Expect(continuing).To(BeTrue())
			seen[t] = q
		}

		Expect(seen[2.0]).To(Equal(home))
		Expect(seen[2.5]).To(Equal(reach))
		Expect(seen[5.0]).To(Equal(tuck))
		Expect(seen[7.5]).To(Equal(twist))
		Expect(seen[10.0]).To(Equal(twist))
		Expect(seen[12.0]).To(Equal(twist))
	})

	It("returns to the first pattern with cyclic windows", func() {
		ctrl := control.NewPattern(table, mustSelector(pattern.CyclicWindows()), nil)
		_, err := ctrl.Configure()
		Expect(err).NotTo(HaveOccurred())

		for ctrl.Time() < 10.0 {
			ctrl.Step(0.25)
		}
		q, _ := ctrl.Step(0.25)
		Expect([]float64(q)).To(Equal(home))
		Expect(ctrl.Current()).To(Equal(0))
	})

	It("refuses to step before Configure", func() {
		ctrl := control.NewPattern(table, mustSelector(pattern.DefaultWindows()), nil)
		q, continuing := ctrl.Step(0.1)
		Expect(q).To(BeNil())
		Expect(continuing).To(BeFalse())
	})

	It("hands out copies", func() {
		ctrl := control.NewPattern(table, mustSelector(pattern.DefaultWindows()), nil)
		_, err := ctrl.Configure()
		Expect(err).NotTo(HaveOccurred())

		q, _ := ctrl.Step(0.1)
		q[0] = 42
		Expect(ctrl.Table()[0][0]).To(BeZero())
	})

	DescribeTable("rejects bad tables",
		func(tbl [][]float64) {
			ctrl := control.NewPattern(tbl, mustSelector(pattern.DefaultWindows()), nil)
			_, err := ctrl.Configure()
			Expect(err).To(MatchError(control.ErrPatternTable))
			Expect(err).To(MatchError(trajectory.ErrConfig))
		},
		Entry("empty", [][]float64{}),
		Entry("too few patterns for the windows", [][]float64{home, reach}),
		Entry("ragged", [][]float64{home, reach[:3], tuck, twist}),
	)
})

var _ = Describe("RandomPattern", func() {
	limits := []pattern.Limit{
		pattern.Symmetric(177), pattern.Symmetric(94), pattern.Symmetric(174),
		pattern.Symmetric(137), pattern.Symmetric(255), pattern.Symmetric(165),
		pattern.Symmetric(255), pattern.Symmetric(0.030), pattern.Symmetric(0.030),
	}

	newRandom := func(seed int64, lim []pattern.Limit) *control.RandomPattern {
		return control.NewRandomPattern(lim, mustSelector(pattern.DefaultWindows()), pattern.NewSeededGenerator(seed), nil)
	}

	It("draws radians within the joint limits", func() {
		ctrl := newRandom(42, limits)
		_, err := ctrl.Configure()
		Expect(err).NotTo(HaveOccurred())

		tbl := ctrl.Table()
		Expect(tbl).To(HaveLen(4))
		for _, row := range tbl {
			Expect(row).To(HaveLen(9))
			for j, v := range row {
				Expect(v).To(BeNumerically(">=", angle.Deg2Rad(limits[j].Min)))
				Expect(v).To(BeNumerically("<=", angle.Deg2Rad(limits[j].Max)))
			}
		}
	})

	It("is reproducible for a seed", func() {
		a := newRandom(7, limits)
		b := newRandom(7, limits)
		_, errA := a.Configure()
		_, errB := b.Configure()
		Expect(errA).NotTo(HaveOccurred())
		Expect(errB).NotTo(HaveOccurred())
		Expect(a.Table()).To(Equal(b.Table()))
	})

	It("does not redraw patterns per tick", func() {
		ctrl := newRandom(3, limits)
		first, err := ctrl.Configure()
		Expect(err).NotTo(HaveOccurred())

		for ctrl.Time() < 2.4 {
			q, _ := ctrl.Step(0.1)
			Expect(q).To(Equal(first))
		}
	})

	It("uses the exact value for a degenerate range", func() {
		fixed := []pattern.Limit{{Min: 30, Max: 30}, {Min: -90, Max: -90}}
		ctrl := newRandom(1, fixed)
		q0, err := ctrl.Configure()
		Expect(err).NotTo(HaveOccurred())
		Expect([]float64(q0)).To(Equal([]float64{angle.Deg2Rad(30), angle.Deg2Rad(-90)}))
	})

	It("refuses to step before Configure", func() {
		ctrl := newRandom(1, limits)
		q, continuing := ctrl.Step(0.1)
		Expect(q).To(BeNil())
		Expect(continuing).To(BeFalse())
	})

	It("refuses to step after a failed Configure", func() {
		ctrl := newRandom(1, []pattern.Limit{{Min: 10, Max: -10}})
		_, err := ctrl.Configure()
		Expect(err).To(HaveOccurred())
		q, continuing := ctrl.Step(0.1)
		Expect(q).To(BeNil())
		Expect(continuing).To(BeFalse())
	})

	It("rejects an inverted range", func() {
		ctrl := newRandom(1, []pattern.Limit{{Min: 10, Max: -10}})
		_, err := ctrl.Configure()
		Expect(err).To(MatchError(pattern.ErrInvalidRange))
		Expect(err).To(MatchError(trajectory.ErrConfig))
	})
})
