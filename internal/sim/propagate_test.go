package sim

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/phasependulum/internal/dynamo"
	"github.com/san-kum/phasependulum/internal/integrators"
	"github.com/san-kum/phasependulum/internal/physics"
)

var _ = Describe("Propagate", func() {
	var (
		d     *physics.Derivative
		start dynamo.State
	)

	BeforeEach(func() {
		d = physics.MustConfigure(dynamo.DefaultParams())
		start = dynamo.State{Angle: math.Pi / 4}
	})

	It("returns exactly maxSteps points without a condition", func() {
		for _, n := range []int{1, 2, 17, 1000} {
			traj, err := Propagate(start, d, 0.1, n, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(traj).To(HaveLen(n))
		}
	})

	It("returns an empty trajectory for zero steps", func() {
		traj, err := Propagate(start, d, 0.1, 0, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(traj).To(BeEmpty())
	})

	It("rejects a negative step bound", func() {
		_, err := Propagate(start, d, 0.1, -1, nil)
		Expect(err).To(MatchError(dynamo.ErrNegativeBound))
	})

	It("starts with the initial state and follows RK4", func() {
		traj, err := Propagate(start, d, 0.1, 3, nil)
		Expect(err).NotTo(HaveOccurred())

		x := start
		for _, p := range traj {
			Expect(p).To(Equal(x.Point()))
			x = integrators.RK4(x, d, 0.1).State
		}
	})

	It("returns an empty trajectory when the first state is rejected", func() {
		threshold := 0.5
		cond := ConditionFunc(func(s dynamo.State) bool { return s.Angle < threshold })

		traj, err := Propagate(start, d, 0.1, 100, cond)
		Expect(err).NotTo(HaveOccurred())
		Expect(traj).To(BeEmpty())
	})

	It("accepts a huge step bound when the condition stops early", func() {
		reject := ConditionFunc(func(dynamo.State) bool { return false })

		traj, err := Propagate(start, d, 0.1, math.MaxInt, reject)
		Expect(err).NotTo(HaveOccurred())
		Expect(traj).To(BeEmpty())
		Expect(cap(traj)).To(BeNumerically("<=", DefaultSteps))

		calls := 0
		stop := ConditionFunc(func(dynamo.State) bool {
			calls++
			return calls <= 3
		})
		traj, err = Propagate(start, d, 0.1, 1_000_000_000, stop)
		Expect(err).NotTo(HaveOccurred())
		Expect(traj).To(HaveLen(3))
	})

	It("grows past the initial buffer", func() {
		traj, err := Propagate(start, d, 0.1, DefaultSteps+250, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(traj).To(HaveLen(DefaultSteps + 250))
	})

	It("drops the first rejected state", func() {
		calls := 0
		cond := ConditionFunc(func(dynamo.State) bool {
			calls++
			return calls <= 5
		})

		traj, err := Propagate(start, d, 0.1, 100, cond)
		Expect(err).NotTo(HaveOccurred())
		Expect(traj).To(HaveLen(5))
		Expect(calls).To(Equal(6))
	})

	It("keeps every point inside a bounding box", func() {
		box := Unbounded()
		box.MinVelocity = -0.3

		traj, err := Propagate(start, d, 0.1, 1000, box)
		Expect(err).NotTo(HaveOccurred())
		Expect(len(traj)).To(BeNumerically(">", 0))
		Expect(len(traj)).To(BeNumerically("<", 1000))
		for _, p := range traj {
			Expect(p.Y).To(BeNumerically(">", -0.3))
		}
	})

	It("conserves energy without damping", func() {
		delta := 0.1
		traj, err := Propagate(start, d, delta, 1000, nil)
		Expect(err).NotTo(HaveOccurred())

		e0 := d.Energy(start)
		for _, p := range traj {
			e := d.Energy(dynamo.State{Angle: p.X, Velocity: p.Y})
			Expect(math.Abs(e - e0)).To(BeNumerically("<", delta*delta))
		}
	})

	It("is independent between calls", func() {
		first, err := Propagate(start, d, 0.1, 50, nil)
		Expect(err).NotTo(HaveOccurred())

		_, err = Propagate(dynamo.State{Angle: 2, Velocity: 1}, d, 0.05, 80, nil)
		Expect(err).NotTo(HaveOccurred())

		again, err := Propagate(start, d, 0.1, 50, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(again).To(Equal(first))
	})
})

var _ = Describe("PropagateInto", func() {
	It("overwrites the destination buffer", func() {
		d := physics.MustConfigure(dynamo.DefaultParams())
		dst := make(dynamo.Trajectory, 10, 64)
		for i := range dst {
			dst[i] = dynamo.Point{X: 99, Y: 99}
		}

		traj, err := PropagateInto(dst, dynamo.State{Angle: 1}, d, 0.1, 4, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(traj).To(HaveLen(4))
		Expect(traj[0]).To(Equal(dynamo.Point{X: 1, Y: 0}))
	})
})

var _ = Describe("Separatrices", func() {
	It("confines undamped curves to their half plane", func() {
		d := physics.MustConfigure(dynamo.DefaultParams())

		curves, err := Separatrices(context.Background(), d, DefaultOptions())
		Expect(err).NotTo(HaveOccurred())

		upper, lower := curves[0], curves[1]
		Expect(len(upper)).To(BeNumerically(">", 1))
		Expect(len(upper)).To(BeNumerically("<", DefaultSteps))
		Expect(len(lower)).To(BeNumerically(">", 1))
		Expect(len(lower)).To(BeNumerically("<", DefaultSteps))

		for _, p := range upper {
			Expect(p.Y).To(BeNumerically(">", 0))
			Expect(p.X).To(BeNumerically("<", math.Pi))
		}
		for _, p := range lower {
			Expect(p.Y).To(BeNumerically("<", 0))
			Expect(p.X).To(BeNumerically(">", -math.Pi))
		}
	})

	It("runs damped curves for the full step bound", func() {
		d := physics.MustConfigure(dynamo.Params{Gravity: 9.8, Length: 10, Damping: 0.2})

		curves, err := Separatrices(context.Background(), d, Options{Delta: 0.1, Steps: 300})
		Expect(err).NotTo(HaveOccurred())
		Expect(curves[0]).To(HaveLen(300))
		Expect(curves[1]).To(HaveLen(300))
	})

	It("matches sequential propagation of the seeds", func() {
		d := physics.MustConfigure(dynamo.DefaultParams())
		opts := Options{Delta: 0.1, Steps: 400}

		curves, err := Separatrices(context.Background(), d, opts)
		Expect(err).NotTo(HaveOccurred())
		for i, seed := range SeparatrixSeeds(d.Params()) {
			want, err := PropagateWith(seed.State, d, opts, seed.Bound)
			Expect(err).NotTo(HaveOccurred())
			Expect(curves[i]).To(Equal(want))
		}
	})

	It("seeds next to the saddle points", func() {
		seeds := SeparatrixSeeds(dynamo.Params{Gravity: 9.8, Length: 10, Damping: 0.1})
		Expect(seeds[0].State.Angle).To(BeNumerically("~", -math.Pi, 1e-4))
		Expect(seeds[1].State.Angle).To(BeNumerically("~", math.Pi, 1e-4))
		Expect(seeds[0].Bound).To(BeNil())
		Expect(seeds[1].Bound).To(BeNil())
	})
})

var _ = Describe("Batch", func() {
	It("matches sequential propagation", func() {
		d := physics.MustConfigure(dynamo.Params{Gravity: 9.8, Length: 10, Damping: 0.05})
		opts := Options{Delta: 0.1, Steps: 200}
		seeds := []Seed{
			{State: dynamo.State{Angle: 0.3}},
			{State: dynamo.State{Angle: -1, Velocity: 2}},
			{State: dynamo.State{Angle: 2}, Bound: Box{MinAngle: -3, MaxAngle: 3, MinVelocity: -1, MaxVelocity: 1}},
		}

		results, err := NewBatch(d, opts).Run(context.Background(), seeds)
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(len(seeds)))

		for i, seed := range seeds {
			want, err := PropagateWith(seed.State, d, opts, seed.Bound)
			Expect(err).NotTo(HaveOccurred())
			Expect(results[i]).To(Equal(want))
		}
	})

	It("reports a canceled context", func() {
		d := physics.MustConfigure(dynamo.DefaultParams())
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewBatch(d, DefaultOptions()).Run(ctx, []Seed{{State: dynamo.State{Angle: 1}}})
		Expect(err).To(MatchError(context.Canceled))
	})
})
