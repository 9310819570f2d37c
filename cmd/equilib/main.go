package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/san-kum/equilib/internal/config"
	"github.com/san-kum/equilib/internal/elasticity"
	"github.com/san-kum/equilib/internal/ledger"
	"github.com/san-kum/equilib/internal/market"
	"github.com/san-kum/equilib/internal/scenario"
	"github.com/san-kum/equilib/internal/solver"
	"github.com/san-kum/equilib/internal/storage"
	"github.com/san-kum/equilib/internal/sweep"
	"github.com/san-kum/equilib/internal/viz"
)

var (
	dataDir string
	verbose bool

	// market
	demandIntercept float64
	demandSlope     float64
	supplyIntercept float64
	supplySlope     float64
	method          string
	tolerance       float64
	maxIter         int
	guess           float64
	lo              float64
	hi              float64
	gridMin         float64
	gridMax         float64
	points          int
	configFile      string
	preset          string

	// output
	save     bool
	record   bool
	plot     bool
	asJSON   bool
	theme    string
	width    int
	height   int
	outFile  string
	limit    int
	nameFlag string

	// sweep
	from  float64
	to    float64
	steps int
)

// main registers the equilib commands and executes the root command, exiting
// with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:           "equilib",
		Short:         "supply and demand equilibrium lab",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogger(verbose)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".equilib", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "solve for equilibrium price and quantity",
		Args:  cobra.NoArgs,
		RunE:  solveMarket,
	}
	addMarketFlags(solveCmd)
	solveCmd.Flags().BoolVar(&save, "save", false, "save run to data directory")
	solveCmd.Flags().BoolVar(&record, "record", false, "record solve in the history ledger")
	solveCmd.Flags().BoolVar(&plot, "plot", false, "plot curves")
	solveCmd.Flags().BoolVar(&asJSON, "json", false, "print result as JSON")
	addPlotFlags(solveCmd)

	elasticityCmd := &cobra.Command{
		Use:   "elasticity [price] [quantity] [slope]",
		Short: "point elasticity (dQ/dP)*(P/Q)",
		Args:  cobra.ExactArgs(3),
		RunE:  pointElasticity,
	}

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "plot demand and supply curves",
		Args:  cobra.NoArgs,
		RunE:  plotMarket,
	}
	addMarketFlags(plotCmd)
	addPlotFlags(plotCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep [param]",
		Short: "re-solve while one coefficient varies",
		Long:  "re-solve while one coefficient varies\n\nparameters: " + fmt.Sprint(sweep.Params()),
		Args:  cobra.ExactArgs(1),
		RunE:  sweepMarket,
	}
	addMarketFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&from, "from", 50, "first value")
	sweepCmd.Flags().Float64Var(&to, "to", 150, "last value")
	sweepCmd.Flags().IntVar(&steps, "steps", 11, "number of values")

	batchCmd := &cobra.Command{
		Use:   "batch [file]",
		Short: "solve every market in a yaml batch file",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}
	batchCmd.Flags().BoolVar(&save, "save", false, "save each run")
	batchCmd.Flags().BoolVar(&record, "record", false, "record each solve in the history ledger")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "tune coefficients interactively",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addMarketFlags(liveCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available market presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tMETHOD\tDEMAND\tSUPPLY")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				d, _ := p.DemandFunc()
				s, _ := p.SupplyFunc()
				fmt.Fprintf(w, "%s\t%s\t%v\t%v\n", name, p.Method, d, s)
			}
			return w.Flush()
		},
	}

	methodsCmd := &cobra.Command{
		Use:   "methods",
		Short: "list solver methods",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range solver.Names() {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(solveCmd, elasticityCmd, plotCmd, sweepCmd, batchCmd, liveCmd, presetsCmd, methodsCmd)
	rootCmd.AddCommand(runCommands()...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func setupLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.TimeOnly,
		}),
	))
}

func addMarketFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64Var(&demandIntercept, "demand-intercept", config.DefaultDemandIntercept, "demand intercept a in Qd = a - bP")
	f.Float64Var(&demandSlope, "demand-slope", config.DefaultDemandSlope, "demand slope dQd/dP (negative)")
	f.Float64Var(&supplyIntercept, "supply-intercept", config.DefaultSupplyIntercept, "supply intercept c in Qs = c + dP")
	f.Float64Var(&supplySlope, "supply-slope", config.DefaultSupplySlope, "supply slope dQs/dP (positive)")
	f.StringVar(&method, "method", config.DefaultMethod, "solver method")
	f.Float64Var(&tolerance, "tolerance", solver.DefaultTolerance, "residual tolerance for iterative methods")
	f.IntVar(&maxIter, "max-iter", solver.DefaultMaxIter, "iteration budget for iterative methods")
	f.Float64Var(&guess, "guess", solver.DefaultGuess, "starting price for newton")
	f.Float64Var(&lo, "lo", 0, "bracket lower price for bisect")
	f.Float64Var(&hi, "hi", 0, "bracket upper price for bisect (0 = expand automatically)")
	f.Float64Var(&gridMin, "grid-min", 0, "lowest sampled price")
	f.Float64Var(&gridMax, "grid-max", 0, "highest sampled price (0 = twice the equilibrium)")
	f.IntVar(&points, "points", config.DefaultGridPoints, "number of sampled prices")
	f.StringVar(&configFile, "config", "", "market config file (yaml)")
	f.StringVar(&preset, "preset", "", "start from a named preset")
}

func addPlotFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&theme, "theme", viz.ThemeClassic.Name, "plot theme")
	cmd.Flags().IntVar(&width, "width", 72, "plot width")
	cmd.Flags().IntVar(&height, "height", 16, "plot height")
}

// buildConfig layers preset, config file and explicitly set flags, in that order.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("demand-intercept") {
		cfg.Demand.Kind, cfg.Demand.Intercept = config.KindLinear, demandIntercept
	}
	if flags.Changed("demand-slope") {
		cfg.Demand.Kind, cfg.Demand.Slope = config.KindLinear, demandSlope
	}
	if flags.Changed("supply-intercept") {
		cfg.Supply.Kind, cfg.Supply.Intercept = config.KindLinear, supplyIntercept
	}
	if flags.Changed("supply-slope") {
		cfg.Supply.Kind, cfg.Supply.Slope = config.KindLinear, supplySlope
	}
	if flags.Changed("method") {
		cfg.Method = method
	}
	if flags.Changed("tolerance") {
		cfg.Solver.Tolerance = tolerance
	}
	if flags.Changed("max-iter") {
		cfg.Solver.MaxIter = maxIter
	}
	if flags.Changed("guess") {
		cfg.Solver.Guess = guess
	}
	if flags.Changed("lo") {
		cfg.Solver.Lo = lo
	}
	if flags.Changed("hi") {
		cfg.Solver.Hi = hi
	}
	if flags.Changed("grid-min") {
		cfg.Grid.Min = gridMin
	}
	if flags.Changed("grid-max") {
		cfg.Grid.Max = gridMax
	}
	if flags.Changed("points") {
		cfg.Grid.Points = points
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	slog.Debug("market configured", "name", cfg.Name, "method", cfg.Method,
		"demand", cfg.Demand, "supply", cfg.Supply)
	return cfg, nil
}

func plotOptions() viz.PlotOptions {
	opts := viz.DefaultPlotOptions()
	opts.Theme = viz.ThemeByName(theme)
	opts.Width = width
	opts.Height = height
	return opts
}

func solveMarket(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	m, err := scenario.New(cfg)
	if err != nil {
		return err
	}

	start := time.Now()
	out, err := m.Run(cmd.Context())
	if err != nil {
		return err
	}
	slog.Debug("market solved", "name", out.Name, "method", out.Result.Method,
		"iterations", out.Result.Iterations, "elapsed", time.Since(start))

	runID, err := persist(cmd.Context(), out)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Println(viz.RenderOutcome(out))
	if plot {
		opts := plotOptions()
		fmt.Println()
		fmt.Println(viz.PlotCurves(out.Curves, &out.Result.Point, opts))
		fmt.Println(viz.Legend(opts.Theme))
	}
	if runID != "" {
		fmt.Printf("run id: %s\n", runID)
	}
	return nil
}

// persist saves and records out according to --save and --record.
func persist(ctx context.Context, out *scenario.Outcome) (string, error) {
	var runID string
	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return "", err
		}
		id, err := st.Save(out)
		if err != nil {
			return "", fmt.Errorf("save run: %w", err)
		}
		runID = id
		slog.Info("run saved", "id", runID)
	}

	if record {
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return "", err
		}
		l, err := ledger.Open(filepath.Join(dataDir, "ledger.db"))
		if err != nil {
			return "", err
		}
		defer l.Close()

		id, err := l.Record(ctx, runID, out)
		if err != nil {
			return "", err
		}
		slog.Debug("solve recorded", "entry", id)
	}
	return runID, nil
}

func pointElasticity(cmd *cobra.Command, args []string) error {
	vals := make([]float64, 3)
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return fmt.Errorf("argument %d: %w", i+1, err)
		}
		vals[i] = v
	}

	e, err := elasticity.Point(vals[0], vals[1], vals[2])
	if err != nil {
		return err
	}
	fmt.Println(viz.Metric("elasticity", fmt.Sprintf("%.6f", e)))
	fmt.Println(viz.Metric("class", elasticity.Classify(e).String()))
	return nil
}

func plotMarket(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	m, err := scenario.New(cfg)
	if err != nil {
		return err
	}
	out, err := m.Run(cmd.Context())
	if err != nil {
		return err
	}

	opts := plotOptions()
	fmt.Println(viz.PlotCurves(out.Curves, &out.Result.Point, opts))
	fmt.Println(viz.Legend(opts.Theme))
	return nil
}

func sweepMarket(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	s, err := sweep.New(args[0], market.Linspace(from, to, steps))
	if err != nil {
		return err
	}

	rows, err := s.Run(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tPRICE\tQUANTITY\tELASTICITY\tCLASS\n", args[0])

	prices := make([]float64, 0, len(rows))
	for _, row := range rows {
		if row.Err != nil {
			fmt.Fprintf(w, "%.4f\t-\t-\t-\t%v\n", row.Value, row.Err)
			continue
		}
		prices = append(prices, row.Point.Price)
		fmt.Fprintf(w, "%.4f\t%.4f\t%.4f\t%.4f\t%s\n",
			row.Value, row.Point.Price, row.Point.Quantity, row.Elasticity, row.Class)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(prices) > 1 {
		fmt.Printf("\nprice %s\n", viz.Sparkline(prices, len(prices)))
	}
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	b, err := scenario.LoadBatch(args[0])
	if err != nil {
		return err
	}

	slog.Info("running batch", "name", b.Name, "markets", len(b.Markets))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MARKET\tMETHOD\tPRICE\tQUANTITY\tELASTICITY\tSTATUS")

	failed := 0
	_, err = scenario.RunBatch(cmd.Context(), b, func(i int, e scenario.Entry) {
		if e.Err != nil {
			failed++
			fmt.Fprintf(w, "%s\t-\t-\t-\t-\t%v\n", e.Name, e.Err)
			return
		}
		status := "ok"
		if id, err := persist(cmd.Context(), e.Outcome); err != nil {
			status = err.Error()
		} else if id != "" {
			status = id
		}
		r := e.Outcome.Result
		fmt.Fprintf(w, "%s\t%s\t%.4f\t%.4f\t%.4f\t%s\n",
			e.Name, r.Method, r.Price, r.Quantity, e.Outcome.Elasticity.Demand, status)
	})
	if flushErr := w.Flush(); flushErr != nil {
		return flushErr
	}
	if err != nil {
		return err
	}

	if failed > 0 {
		slog.Warn("batch finished with failures", "failed", failed, "total", len(b.Markets))
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	p := tea.NewProgram(viz.NewModel(cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
