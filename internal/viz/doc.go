// Package viz renders markets for the terminal.
//
// The package provides:
//
//   - [PlotCurves]: asciigraph plot of demand and supply over the price grid
//   - [RenderOutcome]: lipgloss panel with the equilibrium, elasticities and welfare
//   - [Model]: interactive Bubble Tea program for tuning coefficients live
//
// # Key Bindings
//
//	Up/Down   - Select coefficient
//	Left/Right - Decrease/increase selected coefficient
//	[ ]       - Shrink/grow step size
//	R         - Reset to initial configuration
//	T         - Cycle color themes
//	Q         - Quit
package viz
