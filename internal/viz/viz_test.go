package viz

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/equilib/internal/config"
	"github.com/san-kum/equilib/internal/market"
	"github.com/san-kum/equilib/internal/scenario"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(Model)
	}
	return m
}

func TestModelInitialSolve(t *testing.T) {
	m := NewModel(config.GetPreset("textbook"))
	if m.Err() != nil {
		t.Fatalf("unexpected error: %v", m.Err())
	}
	if m.Outcome().Result.Price != 16 {
		t.Errorf("expected price 16, got %f", m.Outcome().Result.Price)
	}
}

func TestModelAdjustIntercept(t *testing.T) {
	m := NewModel(config.GetPreset("textbook"))

	// demand.intercept += 5 => 105 - 2P = 20 + 3P => P = 17
	m = press(m, "right", "right", "right", "right", "right")
	if m.Err() != nil {
		t.Fatalf("unexpected error: %v", m.Err())
	}
	if m.Outcome().Result.Price != 17 {
		t.Errorf("expected price 17, got %f", m.Outcome().Result.Price)
	}

	m = press(m, "r")
	if m.Outcome().Result.Price != 16 {
		t.Errorf("expected reset price 16, got %f", m.Outcome().Result.Price)
	}
}

func TestModelInvalidMarket(t *testing.T) {
	m := NewModel(config.GetPreset("textbook"))

	// demand.slope -2 -> +1 makes both slopes positive
	m = press(m, "down", "right", "right", "right")
	if !errors.Is(m.Err(), market.ErrConfiguration) {
		t.Errorf("expected ErrConfiguration, got %v", m.Err())
	}
	if !strings.Contains(m.View(), "error") {
		t.Error("expected error in view")
	}
}

func TestModelQuit(t *testing.T) {
	m := NewModel(config.DefaultConfig())
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestModelPowerParams(t *testing.T) {
	m := NewModel(config.GetPreset("power"))
	expected := []string{"demand.scale", "demand.exponent", "supply.scale", "supply.exponent"}
	for i, p := range expected {
		if m.params[i] != p {
			t.Errorf("param %d: expected %s, got %s", i, p, m.params[i])
		}
	}
}

func TestRenderOutcome(t *testing.T) {
	sc, _ := scenario.New(config.GetPreset("textbook"))
	out, err := sc.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	s := RenderOutcome(out)
	for _, want := range []string{"textbook", "16.000000", "68.000000", "inelastic", "Q = 100 - 2P"} {
		if !strings.Contains(s, want) {
			t.Errorf("expected report to contain %q", want)
		}
	}
}

func TestPlotCurves(t *testing.T) {
	c, _ := market.Sample(market.Linspace(0, 32, 33), market.Linear{Intercept: 100, Slope: -2}, market.Linear{Intercept: 20, Slope: 3})
	eq := market.Point{Price: 16, Quantity: 68}

	s := PlotCurves(c, &eq, DefaultPlotOptions())
	if !strings.Contains(s, "P*=16") {
		t.Error("expected equilibrium in caption")
	}

	if s := PlotCurves(market.Curves{}, nil, DefaultPlotOptions()); !strings.Contains(s, "no grid points") {
		t.Error("expected placeholder for empty curves")
	}
}

func TestSparkline(t *testing.T) {
	if s := Sparkline(nil, 5); s != "─────" {
		t.Errorf("expected flat line, got %q", s)
	}
	if s := Sparkline([]float64{1, 2, 3}, 3); len([]rune(s)) < 3 {
		t.Errorf("expected at least 3 runes, got %q", s)
	}
}
