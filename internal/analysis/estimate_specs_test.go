package analysis_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/lyapunov/internal/analysis"
	"github.com/san-kum/lyapunov/internal/integrators"
	"github.com/san-kum/lyapunov/internal/physics"
	"github.com/san-kum/lyapunov/internal/sim"
)

// Reference spectrum of the Lorenz system at σ=10, ρ=28, β=8/3.
const (
	lorenzL1  = 0.9056
	lorenzL3  = -14.5723
	lorenzSum = -(10 + 1 + 8.0/3.0)
)

var _ = Describe("Estimate", func() {
	var (
		ctx   context.Context
		model physics.Model
		flow  *sim.Flow
	)

	BeforeEach(func() {
		ctx = context.Background()
		model = physics.NewLorenz()
		flow = sim.New(model, integrators.NewRK4(), sim.DefaultConfig())
	})

	Context("on the Lorenz attractor", func() {
		It("recovers the spectrum with finite-difference tangents", func() {
			cfg := analysis.DefaultConfig()
			cfg.Exponents = 3
			cfg.Window = 0.1
			cfg.Windows = 10000

			res, err := analysis.Estimate(ctx, flow, model.DefaultState(), cfg, analysis.WithSeed(1))
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Method).To(Equal(analysis.FullModel))
			Expect(res.Spectrum).To(HaveLen(3))

			Expect(res.Spectrum[0]).To(BeNumerically("~", lorenzL1, 0.1))
			Expect(res.Spectrum[1]).To(BeNumerically("~", 0, 0.05))
			Expect(res.Spectrum[2]).To(BeNumerically("~", lorenzL3, 0.3))
			Expect(res.Spectrum[0] + res.Spectrum[1] + res.Spectrum[2]).To(BeNumerically("~", lorenzSum, 0.05))
		})

		It("recovers the spectrum with the Jacobian", func() {
			cfg := analysis.DefaultConfig()
			cfg.Exponents = 3
			cfg.UseJacobian = true
			cfg.Window = cfg.Dt
			cfg.Windows = 50000

			res, err := analysis.Estimate(ctx, flow, model.DefaultState(), cfg,
				analysis.WithJacobian(flow), analysis.WithSeed(1))
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Method).To(Equal(analysis.TangentMap))

			Expect(res.Spectrum[0]).To(BeNumerically("~", lorenzL1, 0.15))
			Expect(res.Spectrum[1]).To(BeNumerically("~", 0, 0.1))
			Expect(res.Spectrum[2]).To(BeNumerically("~", lorenzL3, 0.4))
			Expect(res.Spectrum[0] + res.Spectrum[1] + res.Spectrum[2]).To(BeNumerically("~", lorenzSum, 0.1))
		})

		It("has a Kaplan-Yorke dimension just above two", func() {
			cfg := analysis.DefaultConfig()
			cfg.Exponents = 3
			cfg.Window = 0.1
			cfg.Windows = 5000

			res, err := analysis.Estimate(ctx, flow, model.DefaultState(), cfg, analysis.WithSeed(2))
			Expect(err).NotTo(HaveOccurred())
			Expect(analysis.KaplanYorke(res.Spectrum, true)).To(BeNumerically("~", 2.06, 0.03))
		})
	})

	Context("with forwarded parameters", func() {
		It("estimates the decay rate of a linear system", func() {
			linear := physics.NewLinear(-1, -1)
			lflow := sim.New(linear, integrators.NewRK4(), sim.DefaultConfig())

			cfg := analysis.DefaultConfig()
			cfg.Exponents = 2
			cfg.Init = analysis.InitUnit
			cfg.Windows = 20

			res, err := analysis.Estimate(ctx, lflow, []float64{1, 1}, cfg,
				analysis.WithParams(map[string]float64{"a0": -0.25, "a1": -2}))
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Spectrum[0]).To(BeNumerically("~", -0.25, 1e-6))
			Expect(res.Spectrum[1]).To(BeNumerically("~", -2, 1e-6))
		})

		It("fails on an unknown parameter", func() {
			cfg := analysis.DefaultConfig()
			cfg.Windows = 2

			res, err := analysis.Estimate(ctx, flow, model.DefaultState(), cfg,
				analysis.WithParams(map[string]float64{"gamma": 1}))
			Expect(err).To(HaveOccurred())

			var werr *analysis.WindowError
			Expect(err).To(BeAssignableToTypeOf(werr))
			Expect(res.Completed).To(BeZero())
		})
	})
})

var _ = Describe("Sweep", func() {
	It("tracks the growth rate of a one-dimensional linear system", func() {
		linear := physics.NewLinear(-1)
		flow := sim.New(linear, integrators.NewRK4(), sim.DefaultConfig())

		cfg := analysis.DefaultConfig()
		cfg.BurnIn = 0
		cfg.Windows = 10
		cfg.Init = analysis.InitUnit

		values := analysis.Linspace(-1, -0.25, 4)
		points, err := analysis.Sweep(context.Background(), flow, []float64{1}, cfg, "a0", values, analysis.WithSeed(5))
		Expect(err).NotTo(HaveOccurred())
		Expect(points).To(HaveLen(4))

		for i, p := range points {
			Expect(p.Param).To(Equal(values[i]))
			Expect(p.Spectrum[0]).To(BeNumerically("~", values[i], 1e-6))
			Expect(p.Dimension).To(BeZero())
		}
	})

	It("rejects an empty parameter name", func() {
		_, err := analysis.Sweep(context.Background(), nil, []float64{1}, analysis.DefaultConfig(), "", []float64{1})
		Expect(err).To(MatchError(analysis.ErrInvalidConfig))
	})

	It("reports the failing parameter value", func() {
		flow := sim.New(physics.NewLinear(-1), integrators.NewRK4(), sim.DefaultConfig())
		cfg := analysis.DefaultConfig()
		cfg.Windows = 2

		_, err := analysis.Sweep(context.Background(), flow, []float64{1}, cfg, "rho", []float64{1})
		Expect(err).To(MatchError(ContainSubstring("rho=1")))
	})
})

var _ = Describe("Linspace", func() {
	It("includes both ends", func() {
		Expect(analysis.Linspace(0, 1, 5)).To(Equal([]float64{0, 0.25, 0.5, 0.75, 1}))
	})

	It("returns the lower end alone for a single step", func() {
		Expect(analysis.Linspace(2, 3, 1)).To(Equal([]float64{2}))
	})

	It("returns nothing for no steps", func() {
		Expect(analysis.Linspace(2, 3, 0)).To(BeEmpty())
		Expect(analysis.Linspace(2, 3, -4)).To(BeEmpty())
	})

	It("handles descending ranges", func() {
		values := analysis.Linspace(1, -1, 3)
		Expect(values[1]).To(BeNumerically("~", 0, 1e-15))
		Expect(math.Signbit(values[2])).To(BeTrue())
	})
})
