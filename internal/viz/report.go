package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/equilib/internal/market"
	"github.com/san-kum/equilib/internal/scenario"
)

// RenderOutcome renders a solved market as a bordered panel.
func RenderOutcome(out *scenario.Outcome) string {
	lines := []string{
		Title.Render(out.Name),
		Metric("demand", describe(out.Demand.Func())),
		Metric("supply", describe(out.Supply.Func())),
		Separator(44),
		Metric("price", fmt.Sprintf("%.6f", out.Result.Price)),
		Metric("quantity", fmt.Sprintf("%.6f", out.Result.Quantity)),
		Metric("method", fmt.Sprintf("%s (%d iter, residual %.2e)", out.Result.Method, out.Result.Iterations, out.Result.Residual)),
		Separator(44),
		Metric("demand e", fmt.Sprintf("%.4f  %s", out.Elasticity.Demand, out.Elasticity.DemandClass)),
		Metric("supply e", fmt.Sprintf("%.4f  %s", out.Elasticity.Supply, out.Elasticity.SupplyClass)),
	}

	if out.Welfare != nil {
		lines = append(lines,
			Separator(44),
			Metric("consumer", fmt.Sprintf("%.4f", out.Welfare.Consumer)),
			Metric("producer", fmt.Sprintf("%.4f", out.Welfare.Producer)),
			Metric("total", fmt.Sprintf("%.4f", out.Welfare.Total())),
		)
	}

	return Panel.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// RenderError renders err in the error style.
func RenderError(err error) string {
	return ErrorText.Render("error: ") + err.Error()
}

func describe(fn market.PriceFunction, err error) string {
	if err != nil {
		return err.Error()
	}
	return fmt.Sprint(fn)
}

// Legend explains the plot series colors.
func Legend(t Theme) string {
	var sb strings.Builder
	sb.WriteString(KeyHint.Render("series 1: demand   series 2: supply   theme: "))
	sb.WriteString(lipgloss.NewStyle().Foreground(t.Primary).Render(t.Name))
	return sb.String()
}
