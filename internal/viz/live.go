package viz

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/equilib/internal/config"
	"github.com/san-kum/equilib/internal/scenario"
	"github.com/san-kum/equilib/internal/sweep"
)

const (
	defaultStep = 1.0
	minStep     = 1e-4
	maxStep     = 1e4
)

// Model is an interactive market: each keypress nudges one coefficient and
// re-solves.
type Model struct {
	initial  config.Config
	cfg      config.Config
	params   []string
	selected int
	step     float64
	theme    int
	width    int

	out *scenario.Outcome
	err error
}

func NewModel(cfg *config.Config) Model {
	m := Model{
		initial: *cfg,
		cfg:     *cfg,
		params:  tunable(cfg),
		step:    defaultStep,
		width:   80,
	}
	m.solve()
	return m
}

func tunable(cfg *config.Config) []string {
	var out []string
	for _, side := range []struct {
		name string
		kind string
	}{{"demand", cfg.Demand.Kind}, {"supply", cfg.Supply.Kind}} {
		if side.kind == config.KindPower {
			out = append(out, side.name+".scale", side.name+".exponent")
		} else {
			out = append(out, side.name+".intercept", side.name+".slope")
		}
	}
	return out
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "down", "j", "tab":
			m.selected = (m.selected + 1) % len(m.params)
		case "up", "k", "shift+tab":
			m.selected = (m.selected + len(m.params) - 1) % len(m.params)
		case "right", "l", "+", "=":
			m.adjust(m.step)
		case "left", "h", "-", "_":
			m.adjust(-m.step)
		case "]":
			m.step = min(m.step*10, maxStep)
		case "[":
			m.step = max(m.step/10, minStep)
		case "r":
			m.cfg = m.initial
			m.step = defaultStep
			m.solve()
		case "t":
			m.theme = (m.theme + 1) % len(Themes)
		}
	}
	return m, nil
}

func (m *Model) adjust(delta float64) {
	name := m.params[m.selected]
	v, err := sweep.Get(&m.cfg, name)
	if err != nil {
		m.err = err
		return
	}
	if err := sweep.Set(&m.cfg, name, v+delta); err != nil {
		m.err = err
		return
	}
	m.solve()
}

func (m *Model) solve() {
	m.out, m.err = nil, nil
	sc, err := scenario.New(&m.cfg)
	if err != nil {
		m.err = err
		return
	}
	m.out, m.err = sc.Run(context.Background())
}

// Outcome returns the current solution, nil when the market has none.
func (m Model) Outcome() *scenario.Outcome { return m.out }

// Err returns the error from the last solve.
func (m Model) Err() error { return m.err }

func (m Model) View() string {
	theme := Themes[m.theme]
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(theme.Primary).Render("equilib live"))
	b.WriteString("  ")
	b.WriteString(Subtle.Render(fmt.Sprintf("step %g", m.step)))
	b.WriteString("\n\n")

	for i, name := range m.params {
		v, _ := sweep.Get(&m.cfg, name)
		line := fmt.Sprintf(" %-18s %10.4f ", name, v)
		if i == m.selected {
			b.WriteString(Selected.Render(line))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(RenderError(m.err))
		b.WriteString("\n")
	} else if m.out != nil {
		opts := DefaultPlotOptions()
		opts.Theme = theme
		opts.Width = max(20, min(m.width-12, 100))
		b.WriteString(PlotCurves(m.out.Curves, &m.out.Result.Point, opts))
		b.WriteString("\n")
		b.WriteString(Legend(theme))
		b.WriteString("\n\n")
		b.WriteString(RenderOutcome(m.out))
		b.WriteString("\n")
	}

	b.WriteString(KeyHint.Render("↑/↓ select  ←/→ adjust  [/] step  r reset  t theme  q quit"))
	return b.String()
}
