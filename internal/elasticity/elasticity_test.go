package elasticity_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/equilib/internal/elasticity"
	"github.com/san-kum/equilib/internal/market"
)

var _ = Describe("Point", func() {
	It("matches the textbook equilibrium", func() {
		e, err := elasticity.Point(16, 68, -2)
		Expect(err).NotTo(HaveOccurred())
		Expect(e).To(BeNumerically("~", -0.4706, 1e-4))
	})

	It("signals a domain error at zero quantity", func() {
		e, err := elasticity.Point(16, 0, -2)
		Expect(err).To(MatchError(market.ErrDomain))
		Expect(math.IsNaN(e)).To(BeFalse())
	})

	It("signals a domain error at zero quantity and zero price", func() {
		_, err := elasticity.Point(0, 0, -2)
		Expect(err).To(MatchError(market.ErrDomain))
	})

	It("rejects non-finite inputs", func() {
		_, err := elasticity.Point(math.NaN(), 10, -1)
		Expect(err).To(MatchError(market.ErrDomain))
	})
})

var _ = Describe("At", func() {
	It("takes the slope from the demand configuration", func() {
		demand := market.Linear{Intercept: 120, Slope: -4}
		e, err := elasticity.At(demand, market.Point{Price: 10, Quantity: 80})
		Expect(err).NotTo(HaveOccurred())
		Expect(e).To(BeNumerically("~", -0.5, 1e-12))
	})

	It("is constant along a power curve", func() {
		demand := market.Power{Scale: 250, Exponent: -1.3}
		for _, p := range []float64{0.5, 3, 40} {
			e, err := elasticity.At(demand, market.Point{Price: p, Quantity: demand.Quantity(p)})
			Expect(err).NotTo(HaveOccurred())
			Expect(e).To(BeNumerically("~", -1.3, 1e-9))
		}
	})
})

var _ = Describe("Arc", func() {
	It("uses midpoints", func() {
		e, err := elasticity.Arc(10, 80, 20, 60)
		Expect(err).NotTo(HaveOccurred())
		Expect(e).To(BeNumerically("~", (-20.0/140.0)/(10.0/30.0), 1e-12))
	})

	It("rejects equal prices", func() {
		_, err := elasticity.Arc(10, 80, 10, 60)
		Expect(err).To(MatchError(market.ErrDomain))
	})
})

var _ = DescribeTable("Classify",
	func(e float64, expected elasticity.Class) {
		Expect(elasticity.Classify(e)).To(Equal(expected))
	},
	Entry("textbook demand", -0.4706, elasticity.Inelastic),
	Entry("unit", -1.0, elasticity.UnitElastic),
	Entry("elastic demand", -2.5, elasticity.Elastic),
	Entry("elastic supply", 1.2, elasticity.Elastic),
	Entry("zero", 0.0, elasticity.Inelastic),
)

var _ = Describe("Evaluate", func() {
	It("reports both sides of the textbook market", func() {
		r, err := elasticity.Evaluate(
			market.Linear{Intercept: 100, Slope: -2},
			market.Linear{Intercept: 20, Slope: 3},
			market.Point{Price: 16, Quantity: 68},
		)
		Expect(err).NotTo(HaveOccurred())
		Expect(r.Demand).To(BeNumerically("~", -32.0/68.0, 1e-12))
		Expect(r.Supply).To(BeNumerically("~", 48.0/68.0, 1e-12))
		Expect(r.DemandClass).To(Equal("inelastic"))
		Expect(r.SupplyClass).To(Equal("inelastic"))
	})
})
