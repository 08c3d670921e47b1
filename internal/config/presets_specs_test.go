package config_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/lyapunov/internal/config"
	"github.com/san-kum/lyapunov/internal/dynamo"
	"github.com/san-kum/lyapunov/internal/integrators"
	"github.com/san-kum/lyapunov/internal/physics"
)

var _ = Describe("Presets", func() {
	for _, model := range config.Models() {
		for _, name := range config.ListPresets(model) {
			Context(model+"/"+name, func() {
				var cfg *config.Config

				BeforeEach(func() {
					cfg = config.GetPreset(model, name)
					Expect(cfg).NotTo(BeNil())
				})

				It("names its own model", func() {
					Expect(cfg.Model).To(Equal(model))
				})

				It("validates", func() {
					Expect(cfg.Validate()).To(Succeed())
				})

				It("refers to a registered model and integrator", func() {
					m, err := physics.New(cfg.Model)
					Expect(err).NotTo(HaveOccurred())
					_, err = integrators.New(cfg.Integrator)
					Expect(err).NotTo(HaveOccurred())

					_, err = dynamo.WithParams(m, cfg.Params)
					Expect(err).NotTo(HaveOccurred())

					_, err = cfg.InitialState(m.DefaultState())
					Expect(err).NotTo(HaveOccurred())
				})

				It("does not ask for more exponents than the model has", func() {
					m, err := physics.New(cfg.Model)
					Expect(err).NotTo(HaveOccurred())
					Expect(cfg.Estimator.Exponents).To(BeNumerically("<=", m.StateDim()))
				})
			})
		}
	}
})
