package solver_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/equilib/internal/market"
	"github.com/san-kum/equilib/internal/solver"
)

var (
	textbookDemand = market.Linear{Intercept: 100, Slope: -2}
	textbookSupply = market.Linear{Intercept: 20, Slope: 3}
)

var _ = Describe("Linear", func() {
	It("solves the textbook market exactly", func() {
		pt, err := solver.Linear(textbookDemand, textbookSupply)
		Expect(err).NotTo(HaveOccurred())
		Expect(pt.Price).To(BeNumerically("~", 16.0, 1e-6))
		Expect(pt.Quantity).To(BeNumerically("~", 68.0, 1e-6))
		Expect(pt.Check(textbookDemand, textbookSupply, 1e-9)).To(BeTrue())
	})

	DescribeTable("rejects configurations without a unique positive equilibrium",
		func(demand, supply market.Linear) {
			_, err := solver.Linear(demand, supply)
			Expect(err).To(MatchError(market.ErrConfiguration))
		},
		Entry("both slopes negative", market.Linear{Intercept: 100, Slope: -2}, market.Linear{Intercept: 20, Slope: -3}),
		Entry("both slopes positive", market.Linear{Intercept: 100, Slope: 2}, market.Linear{Intercept: 20, Slope: 3}),
		Entry("both flat", market.Linear{Intercept: 100}, market.Linear{Intercept: 20}),
		Entry("inverted slopes", market.Linear{Intercept: 20, Slope: 3}, market.Linear{Intercept: 100, Slope: -2}),
		Entry("negative price", market.Linear{Intercept: 10, Slope: -1}, market.Linear{Intercept: 30, Slope: 1}),
		Entry("negative quantity", market.Linear{Intercept: -10, Slope: -1}, market.Linear{Intercept: -20, Slope: 1}),
		Entry("NaN intercept", market.Linear{Intercept: math.NaN(), Slope: -2}, textbookSupply),
		Entry("infinite slope", textbookDemand, market.Linear{Intercept: 20, Slope: math.Inf(1)}),
		Entry("overflowing intersection", market.Linear{Intercept: 1e308}, market.Linear{Intercept: -1e308, Slope: 1}),
	)

	It("accepts perfectly inelastic demand", func() {
		pt, err := solver.Linear(market.Linear{Intercept: 50}, market.Linear{Intercept: 10, Slope: 4})
		Expect(err).NotTo(HaveOccurred())
		Expect(pt.Price).To(BeNumerically("~", 10.0, 1e-12))
		Expect(pt.Quantity).To(BeNumerically("~", 50.0, 1e-12))
	})
})

var _ = Describe("Methods", func() {
	cfg := solver.DefaultConfig()

	DescribeTable("agree on the textbook market",
		func(name string) {
			m, err := solver.Get(name)
			Expect(err).NotTo(HaveOccurred())

			res, err := m.Solve(textbookDemand, textbookSupply, cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Price).To(BeNumerically("~", 16.0, 1e-6))
			Expect(res.Quantity).To(BeNumerically("~", 68.0, 1e-6))
			Expect(res.Residual).To(BeNumerically("<=", cfg.Tolerance))
		},
		Entry("closed", "closed"),
		Entry("bisect", "bisect"),
		Entry("newton", "newton"),
		Entry("auto", "auto"),
	)

	It("rejects unknown methods", func() {
		_, err := solver.Get("secant")
		Expect(err).To(HaveOccurred())
	})

	It("refuses non-linear curves in closed form", func() {
		_, err := solver.Closed{}.Solve(market.Power{Scale: 100, Exponent: -1}, textbookSupply, cfg)
		Expect(err).To(MatchError(market.ErrConfiguration))
	})

	Context("with a constant-elasticity demand", func() {
		demand := market.Power{Scale: 400, Exponent: -1}
		supply := market.Linear{Intercept: 0, Slope: 1}

		It("finds P = 20 by bisection", func() {
			res, err := solver.Bisect{}.Solve(demand, supply, cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Price).To(BeNumerically("~", 20.0, 1e-6))
			Expect(res.Iterations).To(BeNumerically(">", 0))
		})

		It("finds P = 20 by Newton iteration", func() {
			c := cfg
			c.Guess = 5
			res, err := solver.Newton{}.Solve(demand, supply, c)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Price).To(BeNumerically("~", 20.0, 1e-6))
			Expect(res.Quantity).To(BeNumerically("~", 20.0, 1e-6))
		})

		It("routes auto to bisection", func() {
			res, err := solver.Auto{}.Solve(demand, supply, cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Method).To(Equal("bisect"))
		})
	})

	It("reports an explicit bracket without a crossing", func() {
		c := cfg
		c.Lo, c.Hi = 20, 40
		_, err := solver.Bisect{}.Solve(textbookDemand, textbookSupply, c)
		Expect(err).To(MatchError(market.ErrConfiguration))
	})

	It("fails to converge instead of returning an approximation", func() {
		c := cfg
		c.Lo, c.Hi = 0, 33.3
		c.MaxIter = 3
		_, err := solver.Bisect{}.Solve(textbookDemand, textbookSupply, c)
		Expect(err).To(MatchError(market.ErrConvergence))

		var se *market.SolveError
		Expect(err).To(BeAssignableToTypeOf(se))
	})

	It("fails Newton when the iteration budget runs out", func() {
		c := cfg
		c.Guess = 1000
		c.MaxIter = 2
		_, err := solver.Newton{}.Solve(market.Power{Scale: 400, Exponent: -1}, market.Linear{Slope: 1}, c)
		Expect(err).To(MatchError(market.ErrConvergence))

		var se *market.SolveError
		Expect(err).To(BeAssignableToTypeOf(se))
		Expect(errors.As(err, &se)).To(BeTrue())
		Expect(se.Iterations).To(Equal(2))
	})

	It("fails Newton on flat excess demand", func() {
		_, err := solver.Newton{}.Solve(market.Linear{Intercept: 10}, market.Linear{Intercept: 5}, cfg)
		Expect(err).To(MatchError(market.ErrConvergence))
	})
})
