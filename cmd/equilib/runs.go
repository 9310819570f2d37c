package main

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/equilib/internal/export"
	"github.com/san-kum/equilib/internal/ledger"
	"github.com/san-kum/equilib/internal/scenario"
	"github.com/san-kum/equilib/internal/storage"
	"github.com/san-kum/equilib/internal/viz"
)

var (
	svgWidth  int
	svgHeight int
)

func runCommands() []*cobra.Command {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}
	showCmd.Flags().BoolVar(&plot, "plot", false, "plot curves")
	addPlotFlags(showCmd)

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run curves to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export run curves to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 640, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 480, "image height")

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "show recorded solves",
		RunE:  showHistory,
	}
	historyCmd.Flags().IntVar(&limit, "limit", 20, "maximum entries")
	historyCmd.Flags().StringVar(&nameFlag, "name", "", "only entries for this market")

	return []*cobra.Command{listCmd, showCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, historyCmd}
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tMETHOD\tPRICE\tQUANTITY\tELASTICITY")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.4f\t%.4f\t%.4f\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Result.Method,
			run.Result.Price,
			run.Result.Quantity,
			run.Elasticity.Demand,
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, *scenario.Outcome, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	curves, err := st.LoadCurves(runID)
	if err != nil {
		return nil, nil, err
	}
	return meta, &scenario.Outcome{
		Name:       meta.Name,
		Demand:     meta.Demand,
		Supply:     meta.Supply,
		Result:     meta.Result,
		Elasticity: meta.Elasticity,
		Welfare:    meta.Welfare,
		Curves:     curves,
	}, nil
}

func showRun(cmd *cobra.Command, args []string) error {
	meta, out, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s (%s)\n", meta.ID, meta.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Println(viz.RenderOutcome(out))
	if plot {
		opts := plotOptions()
		fmt.Println()
		fmt.Println(viz.PlotCurves(out.Curves, &out.Result.Point, opts))
		fmt.Println(viz.Legend(opts.Theme))
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	curves, err := st.LoadCurves(args[0])
	if err != nil {
		return err
	}

	if curves.Len() == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	if err := storage.WriteCurvesCSV(w, curves); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, out, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return export.WriteJSON(os.Stdout, meta, out.Curves)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	_, out, err := loadRun(args[0])
	if err != nil {
		return err
	}

	svg := export.CurvesToSVG(out.Curves, &out.Result.Point, svgWidth, svgHeight)
	if svg == "" {
		return fmt.Errorf("not enough points to draw")
	}

	if outFile == "" {
		fmt.Println(svg)
		return nil
	}
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	slog.Info("svg written", "path", outFile)
	return nil
}

func showHistory(cmd *cobra.Command, args []string) error {
	path := filepath.Join(dataDir, "ledger.db")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Println("no history recorded")
		return nil
	}

	l, err := ledger.Open(path)
	if err != nil {
		return err
	}
	defer l.Close()

	var entries []ledger.Entry
	if nameFlag != "" {
		entries, err = l.ByName(cmd.Context(), nameFlag)
	} else {
		entries, err = l.Recent(cmd.Context(), limit)
	}
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tTIME\tNAME\tMETHOD\tDEMAND\tSUPPLY\tPRICE\tQUANTITY\tELASTICITY\tRUN")
	for _, e := range entries {
		run := e.RunID
		if run == "" {
			run = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%.4f\t%.4f\t%.4f\t%s\n",
			e.ID, e.Time().Format("2006-01-02 15:04:05"), e.Name, e.Method,
			e.Demand, e.Supply, e.Price, e.Quantity, e.Elasticity, run)
	}
	return w.Flush()
}
