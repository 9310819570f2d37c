package solver

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/equilib/internal/market"
)

func TestLinearRandomMarkets(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 1000; i++ {
		c := rng.Float64() * 100
		a := c + rng.Float64()*100
		b := 0.01 + rng.Float64()*10
		d := 0.01 + rng.Float64()*10

		demand := market.Linear{Intercept: a, Slope: -b}
		supply := market.Linear{Intercept: c, Slope: d}

		pt, err := Linear(demand, supply)
		if err != nil {
			t.Fatalf("a=%f b=%f c=%f d=%f: unexpected error %v", a, b, c, d, err)
		}

		lhs := a - b*pt.Price
		rhs := c + d*pt.Price
		if math.Abs(lhs-rhs) > 1e-6 {
			t.Errorf("a=%f b=%f c=%f d=%f: demand %f != supply %f", a, b, c, d, lhs, rhs)
		}
	}
}

func TestLinearRandomMarketsBelowSupply(t *testing.T) {
	rng := rand.New(rand.NewSource(43))

	for i := 0; i < 1000; i++ {
		a := rng.Float64() * 100
		c := a + 0.01 + rng.Float64()*100
		b := 0.01 + rng.Float64()*10
		d := 0.01 + rng.Float64()*10

		_, err := Linear(market.Linear{Intercept: a, Slope: -b}, market.Linear{Intercept: c, Slope: d})
		if !errors.Is(err, market.ErrConfiguration) {
			t.Fatalf("a=%f b=%f c=%f d=%f: expected ErrConfiguration, got %v", a, b, c, d, err)
		}
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}.withDefaults()

	if cfg.Tolerance != DefaultTolerance {
		t.Errorf("expected tolerance %g, got %g", DefaultTolerance, cfg.Tolerance)
	}
	if cfg.MaxIter != DefaultMaxIter {
		t.Errorf("expected max iter %d, got %d", DefaultMaxIter, cfg.MaxIter)
	}
	if cfg.Guess != DefaultGuess {
		t.Errorf("expected guess %g, got %g", DefaultGuess, cfg.Guess)
	}
}

func TestNames(t *testing.T) {
	names := Names()
	if len(names) != 4 {
		t.Fatalf("expected 4 methods, got %d", len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("names not sorted: %v", names)
		}
	}
}
