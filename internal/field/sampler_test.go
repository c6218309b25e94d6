package field

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/phasependulum/internal/dynamo"
	"github.com/san-kum/phasependulum/internal/physics"
)

func rotate(p r2.Vec) r2.Vec { return r2.Vec{X: -p.Y, Y: p.X} }

var _ = Describe("Sampler", func() {
	var sampler *Sampler

	BeforeEach(func() {
		sampler = NewSampler()
	})

	It("builds a padded grid symmetric about the origin", func() {
		samples, err := sampler.Sample(rotate, 4, 2*math.Pi, Identity())
		Expect(err).NotTo(HaveOccurred())
		Expect(samples).To(HaveLen(36))

		side := 6
		for row := 0; row < side; row++ {
			for col := 0; col < side; col++ {
				p := samples[row*side+col].Point
				mirror := samples[(side-1-row)*side+(side-1-col)].Point
				Expect(p.X).To(Equal(-mirror.X))
				Expect(p.Y).To(Equal(-mirror.Y))
			}
		}
	})

	It("places cell centers on the expected coordinates", func() {
		samples, err := sampler.Sample(rotate, 4, 2*math.Pi, Identity())
		Expect(err).NotTo(HaveOccurred())

		first := samples[0].Model
		Expect(first.X).To(BeNumerically("~", -2.5/4*2*math.Pi, 1e-12))
		Expect(first.Y).To(BeNumerically("~", -2.5/4*2*math.Pi, 1e-12))

		// row-major: second sample moves along x
		Expect(samples[1].Model.Y).To(Equal(first.Y))
		Expect(samples[1].Model.X - first.X).To(BeNumerically("~", 2*math.Pi/4, 1e-12))
	})

	It("returns no samples for a zero grid", func() {
		samples, err := sampler.Sample(rotate, 0, 2*math.Pi, Identity())
		Expect(err).NotTo(HaveOccurred())
		Expect(samples).To(BeEmpty())
	})

	It("rejects negative grids and bad ranges", func() {
		_, err := sampler.Sample(rotate, -2, 2*math.Pi, Identity())
		Expect(err).To(MatchError(dynamo.ErrNegativeBound))

		_, err = sampler.Sample(rotate, 4, 0, Identity())
		Expect(err).To(MatchError(dynamo.ErrParameterBounds))
	})

	It("maps point and head through the scale", func() {
		sc := PlotScale(400)
		samples, err := sampler.Sample(rotate, 2, 2*math.Pi, sc)
		Expect(err).NotTo(HaveOccurred())

		for _, s := range samples {
			Expect(s.Vector).To(Equal(rotate(s.Model)))
			Expect(s.Point.X).To(BeNumerically("~", sc.Apply(s.Model.X), 1e-9))
			Expect(s.Head.X).To(BeNumerically("~", sc.Apply(s.Model.X+s.Vector.X), 1e-9))
			Expect(s.Head.Y).To(BeNumerically("~", sc.Apply(s.Model.Y+s.Vector.Y), 1e-9))
		}
	})

	It("treats a nil scale as the identity", func() {
		samples, err := sampler.Sample(rotate, 2, 1, nil)
		Expect(err).NotTo(HaveOccurred())
		for _, s := range samples {
			Expect(s.Point).To(Equal(s.Model))
		}
	})

	It("grows the buffer and never truncates", func() {
		small, err := sampler.Sample(rotate, 2, 1, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(small).To(HaveLen(16))

		large, err := sampler.Sample(rotate, 10, 1, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(large).To(HaveLen(144))
		Expect(sampler.Cap()).To(BeNumerically(">=", 144))

		small, err = sampler.Sample(rotate, 2, 1, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(small).To(HaveLen(16))
		Expect(sampler.Cap()).To(BeNumerically(">=", 144))
	})

	It("does not depend on earlier calls", func() {
		d := physics.MustConfigure(dynamo.DefaultParams())

		fresh, err := SampleField(d.Vector, 6, 2*math.Pi, PlotScale(300))
		Expect(err).NotTo(HaveOccurred())

		_, err = sampler.Sample(rotate, 12, 5, nil)
		Expect(err).NotTo(HaveOccurred())

		reused, err := sampler.Sample(d.Vector, 6, 2*math.Pi, PlotScale(300))
		Expect(err).NotTo(HaveOccurred())
		Expect(reused).To(Equal(fresh))
	})

	It("samples the pendulum field", func() {
		d := physics.MustConfigure(dynamo.DefaultParams())

		samples, err := SampleField(d.Vector, 4, 2*math.Pi, Identity())
		Expect(err).NotTo(HaveOccurred())
		for _, s := range samples {
			Expect(s.Vector.X).To(Equal(s.Model.Y))
			Expect(s.Vector.Y).To(Equal(d.Accel(dynamo.State{Angle: s.Model.X, Velocity: s.Model.Y})))
		}
	})
})

var _ = Describe("Segments", func() {
	It("scales vectors from the plot-space point", func() {
		samples := []Sample{{Point: r2.Vec{X: 1, Y: 2}, Vector: r2.Vec{X: 0.5, Y: -1}}}

		segs := Segments(samples, 4)
		Expect(segs).To(HaveLen(1))
		Expect(segs[0].From).To(Equal(r2.Vec{X: 1, Y: 2}))
		Expect(segs[0].To).To(Equal(r2.Vec{X: 3, Y: -2}))
	})
})

var _ = Describe("ColorIndex", func() {
	DescribeTable("maps magnitude to a lookup index",
		func(v r2.Vec, colorScale float64, want int) {
			Expect(ColorIndex(v, colorScale)).To(Equal(want))
		},
		Entry("zero vector", r2.Vec{}, 0.25, 0),
		Entry("saturated", r2.Vec{X: 10}, 0.25, 255),
		Entry("half", r2.Vec{X: 3, Y: 4}, 0.1, 127),
		Entry("NaN", r2.Vec{X: math.NaN()}, 1.0, 0),
	)
})
