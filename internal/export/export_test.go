package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/san-kum/equilib/internal/config"
	"github.com/san-kum/equilib/internal/market"
	"github.com/san-kum/equilib/internal/solver"
	"github.com/san-kum/equilib/internal/storage"
)

func TestCurvesToSVG(t *testing.T) {
	c, err := market.Sample(market.Linspace(0, 32, 33), market.Linear{Intercept: 100, Slope: -2}, market.Linear{Intercept: 20, Slope: 3})
	if err != nil {
		t.Fatalf("sample failed: %v", err)
	}
	eq := market.Point{Price: 16, Quantity: 68}

	svg := CurvesToSVG(c, &eq, 640, 480)

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Error("expected a complete svg document")
	}
	if strings.Count(svg, "<path") != 2 {
		t.Errorf("expected 2 paths, got %d", strings.Count(svg, "<path"))
	}
	if !strings.Contains(svg, "<circle") {
		t.Error("expected equilibrium marker")
	}
}

func TestCurvesToSVGTooShort(t *testing.T) {
	c := market.Curves{Prices: []float64{1}, Demand: []float64{1}, Supply: []float64{1}}
	if svg := CurvesToSVG(c, nil, 100, 100); svg != "" {
		t.Error("expected empty svg for a single point")
	}
}

func TestWriteJSON(t *testing.T) {
	meta := &storage.RunMetadata{
		ID:     "textbook_1",
		Name:   "textbook",
		Demand: config.CurveConfig{Kind: config.KindLinear, Intercept: 100, Slope: -2},
		Supply: config.CurveConfig{Kind: config.KindLinear, Intercept: 20, Slope: 3},
		Result: solver.Result{Point: market.Point{Price: 16, Quantity: 68}, Method: "closed"},
	}
	curves := market.Curves{Prices: []float64{0}, Demand: []float64{100}, Supply: []float64{20}}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, meta, curves); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if decoded["demand"] != "Q = 100 - 2P" {
		t.Errorf("expected demand description, got %v", decoded["demand"])
	}
	result := decoded["result"].(map[string]any)
	if result["price"] != 16.0 {
		t.Errorf("expected price 16, got %v", result["price"])
	}
}
