package market

import (
	"math"
	"testing"
)

func TestLinearQuantity(t *testing.T) {
	demand := Linear{Intercept: 100, Slope: -2}
	supply := Linear{Intercept: 20, Slope: 3}

	if q := demand.Quantity(16); q != 68 {
		t.Errorf("expected demand 68, got %f", q)
	}
	if q := supply.Quantity(16); q != 68 {
		t.Errorf("expected supply 68, got %f", q)
	}
	if d := demand.Derivative(3); d != -2 {
		t.Errorf("expected slope -2, got %f", d)
	}
}

func TestLinearString(t *testing.T) {
	tests := []struct {
		fn       Linear
		expected string
	}{
		{Linear{100, -2}, "Q = 100 - 2P"},
		{Linear{20, 3}, "Q = 20 + 3P"},
	}

	for _, tt := range tests {
		if got := tt.fn.String(); got != tt.expected {
			t.Errorf("expected %q, got %q", tt.expected, got)
		}
	}
}

func TestPowerDerivative(t *testing.T) {
	p := Power{Scale: 100, Exponent: -1.5}

	analytic := p.Derivative(4)
	h := 1e-6
	numeric := (p.Quantity(4+h) - p.Quantity(4-h)) / (2 * h)

	if math.Abs(analytic-numeric) > 1e-4 {
		t.Errorf("expected derivative %f, got %f", numeric, analytic)
	}
}

func TestPowerZeroPrice(t *testing.T) {
	p := Power{Scale: 10, Exponent: -1}
	q := p.Quantity(0)
	if math.IsInf(q, 0) || math.IsNaN(q) {
		t.Errorf("expected finite quantity at zero price, got %f", q)
	}
}

type opaque struct{ fn func(float64) float64 }

func (o opaque) Quantity(p float64) float64 { return o.fn(p) }

func TestDerivativeFiniteDifference(t *testing.T) {
	fn := opaque{fn: func(p float64) float64 { return 50 - 0.5*p*p }}

	got := Derivative(fn, 4)
	if math.Abs(got-(-4)) > 1e-5 {
		t.Errorf("expected derivative -4, got %f", got)
	}

	// one-sided at the domain edge
	got = Derivative(fn, 0)
	if math.Abs(got) > 1e-5 {
		t.Errorf("expected derivative ~0 at zero, got %f", got)
	}
}

func TestPointCheck(t *testing.T) {
	demand := Linear{Intercept: 100, Slope: -2}
	supply := Linear{Intercept: 20, Slope: 3}

	if !(Point{Price: 16, Quantity: 68}).Check(demand, supply, 1e-9) {
		t.Error("expected equilibrium to check")
	}
	if (Point{Price: 15, Quantity: 70}).Check(demand, supply, 1e-9) {
		t.Error("expected off-equilibrium point to fail check")
	}
}

func TestSurplusTextbook(t *testing.T) {
	demand := Linear{Intercept: 100, Slope: -2}
	supply := Linear{Intercept: 20, Slope: 3}

	w, err := Surplus(demand, supply, Point{Price: 16, Quantity: 68})
	if err != nil {
		t.Fatalf("surplus failed: %v", err)
	}
	if math.Abs(w.Consumer-1156) > 1e-9 {
		t.Errorf("expected consumer surplus 1156, got %f", w.Consumer)
	}
	if math.Abs(w.Producer-704) > 1e-9 {
		t.Errorf("expected producer surplus 704, got %f", w.Producer)
	}
	if math.Abs(w.Total()-1860) > 1e-9 {
		t.Errorf("expected total 1860, got %f", w.Total())
	}
}

func TestSurplusNegativeIntercept(t *testing.T) {
	demand := Linear{Intercept: 60, Slope: -1}
	supply := Linear{Intercept: -20, Slope: 1}

	// P* = 40, Q* = 20, supply starts at P = 20
	w, err := Surplus(demand, supply, Point{Price: 40, Quantity: 20})
	if err != nil {
		t.Fatalf("surplus failed: %v", err)
	}
	if math.Abs(w.Consumer-200) > 1e-9 {
		t.Errorf("expected consumer surplus 200, got %f", w.Consumer)
	}
	if math.Abs(w.Producer-200) > 1e-9 {
		t.Errorf("expected producer surplus 200, got %f", w.Producer)
	}
}
