package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/reactorsim/internal/analysis"
	"github.com/san-kum/reactorsim/internal/automation"
	"github.com/san-kum/reactorsim/internal/config"
	"github.com/san-kum/reactorsim/internal/experiment"
	"github.com/san-kum/reactorsim/internal/export"
	"github.com/san-kum/reactorsim/internal/integrators"
	"github.com/san-kum/reactorsim/internal/kinetics"
	"github.com/san-kum/reactorsim/internal/nucdata"
	"github.com/san-kum/reactorsim/internal/optim"
	"github.com/san-kum/reactorsim/internal/reactor"
	"github.com/san-kum/reactorsim/internal/storage"
	"github.com/san-kum/reactorsim/internal/tui"
	"github.com/spf13/cobra"
)

var (
	dataDir string
	verbose bool

	dt       float64
	tFinal   float64
	u235     float64
	u238     float64
	pu239    float64
	th232    float64
	massKg   float64
	xeYield  float64
	nThermal float64
	nFast    float64

	controllerName string
	gainFast       float64
	gainThermal    float64
	tRamp          float64
	pNominal       float64
	sigmaFast      float64
	sigmaThermal   float64

	configFile string

	// Gain scan range
	scanFrom   float64
	scanTo     float64
	scanPoints int

	// Extra axis for tune
	tuneFastTo     float64
	tuneFastPoints int

	plotColumn string
	columnName string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "reactorsim",
		Short: "two-group reactor kinetics lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".reactorsim", "data directory")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a scenario and store the result",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScenario,
	}
	addScenarioFlags(runCmd)

	scanCmd := &cobra.Command{
		Use:   "scan [preset]",
		Short: "sweep the thermal rod gain",
		Args:  cobra.MaximumNArgs(1),
		RunE:  scanGains,
	}
	addScenarioFlags(scanCmd)
	scanCmd.Flags().Float64Var(&scanFrom, "from", 0, "lowest thermal gain")
	scanCmd.Flags().Float64Var(&scanTo, "to", 40, "highest thermal gain")
	scanCmd.Flags().IntVar(&scanPoints, "points", 9, "number of gains")

	tuneCmd := &cobra.Command{
		Use:   "tune [preset]",
		Short: "grid-search controller gains toward the power setpoint",
		Args:  cobra.MaximumNArgs(1),
		RunE:  tuneGains,
	}
	addScenarioFlags(tuneCmd)
	tuneCmd.Flags().Float64Var(&scanFrom, "from", 0, "lowest thermal gain")
	tuneCmd.Flags().Float64Var(&scanTo, "to", 40, "highest thermal gain")
	tuneCmd.Flags().IntVar(&scanPoints, "points", 9, "thermal gain grid points")
	tuneCmd.Flags().Float64Var(&tuneFastTo, "fast-to", 5, "highest fast gain")
	tuneCmd.Flags().IntVar(&tuneFastPoints, "fast-points", 3, "fast gain grid points")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&plotColumn, "column", "", "plot a single column")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&columnName, "column", reactor.ColPower, "column to analyze")

	batchCmd := &cobra.Command{
		Use:   "batch [campaign.yaml]",
		Short: "run a scripted campaign of scenarios",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRunCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRunJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export one column as an SVG plot",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRunSVG,
	}
	exportSVGCmd.Flags().StringVar(&columnName, "column", reactor.ColPower, "column to render")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "run a scenario with live visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addScenarioFlags(liveCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, p := range config.ListPresets() {
				fmt.Println(p)
			}
		},
	}

	rootCmd.AddCommand(runCmd, scanCmd, tuneCmd, batchCmd, listCmd, plotCmd, analyzeCmd,
		exportCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, liveCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep (s)")
	cmd.Flags().Float64Var(&tFinal, "time", config.DefaultTFinal, "duration (s)")
	cmd.Flags().StringVar(&controllerName, "controller", "ramp", "controller (ramp, fixed)")
	cmd.Flags().Float64Var(&u235, "u235", config.DefaultEnrichment, "U-235 mass percent")
	cmd.Flags().Float64Var(&u238, "u238", 100-config.DefaultEnrichment, "U-238 mass percent")
	cmd.Flags().Float64Var(&pu239, "pu239", 0, "Pu-239 mass percent")
	cmd.Flags().Float64Var(&th232, "th232", 0, "Th-232 mass percent")
	cmd.Flags().Float64Var(&massKg, "mass", config.DefaultMassKg, "fuel mass (kg)")
	cmd.Flags().Float64Var(&xeYield, "xe-yield", config.DefaultXeYield, "Xe-135 share of fission products (percent)")
	cmd.Flags().Float64Var(&nThermal, "n-thermal", config.DefaultNThermal, "initial thermal population")
	cmd.Flags().Float64Var(&nFast, "n-fast", 0, "initial fast population")
	cmd.Flags().Float64Var(&gainFast, "gain-fast", 0, "fast rod gain")
	cmd.Flags().Float64Var(&gainThermal, "gain-thermal", config.DefaultGain, "thermal rod gain")
	cmd.Flags().Float64Var(&tRamp, "t-ramp", config.DefaultTRamp, "setpoint ramp time (s)")
	cmd.Flags().Float64Var(&pNominal, "p-nominal", config.DefaultPNominal, "nominal power (W)")
	cmd.Flags().Float64Var(&sigmaFast, "sigma-fast", 0, "fixed fast rod absorption (1/s)")
	cmd.Flags().Float64Var(&sigmaThermal, "sigma-thermal", 0, "fixed thermal rod absorption (1/s)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
}

// scenarioConfig resolves the run configuration: preset first, then
// config file, then explicitly set CLI flags on top.
func scenarioConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	name := "startup"
	if len(args) > 0 {
		name = args[0]
	}

	cfg := config.GetPreset(name)
	if cfg == nil {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	fl := cmd.Flags()
	if fl.Changed("dt") {
		cfg.Dt = dt
	}
	if fl.Changed("time") {
		cfg.TFinal = tFinal
	}
	if fl.Changed("controller") {
		cfg.Controller = controllerName
	}
	if fl.Changed("u235") {
		cfg.Fuel.U235 = u235
	}
	if fl.Changed("u238") {
		cfg.Fuel.U238 = u238
	}
	if fl.Changed("pu239") {
		cfg.Fuel.Pu239 = pu239
	}
	if fl.Changed("th232") {
		cfg.Fuel.Th232 = th232
	}
	if fl.Changed("mass") {
		cfg.Fuel.MassKg = massKg
	}
	if fl.Changed("xe-yield") {
		cfg.FP.Xe135 = xeYield
		cfg.FP.Other = 100 - xeYield
	}
	if fl.Changed("n-thermal") {
		cfg.InitState.NThermal = nThermal
	}
	if fl.Changed("n-fast") {
		cfg.InitState.NFast = nFast
	}
	if fl.Changed("gain-fast") {
		cfg.Control.GainFast = gainFast
	}
	if fl.Changed("gain-thermal") {
		cfg.Control.GainThermal = gainThermal
	}
	if fl.Changed("t-ramp") {
		cfg.Control.TRamp = tRamp
	}
	if fl.Changed("p-nominal") {
		cfg.Control.PNominal = pNominal
	}
	if fl.Changed("sigma-fast") {
		cfg.Control.SigmaFast = sigmaFast
	}
	if fl.Changed("sigma-thermal") {
		cfg.Control.SigmaThermal = sigmaThermal
	}

	return cfg, nil
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := scenarioConfig(cmd, args)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	sc := experiment.FromConfig(cfg)
	data := nucdata.NewTable(newLogger())

	fmt.Printf("running %s scenario...\n", sc.Name)
	start := time.Now()

	res, err := sc.Run(context.Background(), data)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(sc.Name, sc.Controller, sc.Dt, sc.TFinal, res)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", res.StepsTaken)
	if res.Excursions > 0 {
		fmt.Printf("excursions: %d state components clamped at zero\n", res.Excursions)
	}

	names := make([]string, 0, len(res.Metrics))
	for name := range res.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.6g\n", name, res.Metrics[name])
	}

	return nil
}

func scanGains(cmd *cobra.Command, args []string) error {
	cfg, err := scenarioConfig(cmd, args)
	if err != nil {
		return err
	}

	sc := experiment.FromConfig(cfg)
	data := nucdata.NewTable(newLogger())
	gains := experiment.Linspace(scanFrom, scanTo, scanPoints)

	fmt.Printf("scanning %d gains on %s...\n\n", len(gains), sc.Name)

	points, err := experiment.Scan(context.Background(), data, sc, gains)
	if err != nil {
		return err
	}

	best := experiment.Best(points, sc.PNominal)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GAIN\tTAIL_POWER\tREGULATION\tEXC")
	for i, pt := range points {
		mark := ""
		if i == best {
			mark = "  <- best"
		}
		fmt.Fprintf(w, "%.3f\t%.4g\t%.3f\t%d%s\n",
			pt.Gain, pt.TailPower, pt.Metrics["regulation"], pt.Excursions, mark)
	}
	return w.Flush()
}

func tuneGains(cmd *cobra.Command, args []string) error {
	cfg, err := scenarioConfig(cmd, args)
	if err != nil {
		return err
	}

	base := experiment.FromConfig(cfg)
	data := nucdata.NewTable(newLogger())

	gs := optim.NewGridSearch(
		[]string{"gain_fast", "gain_thermal"},
		[][]float64{
			experiment.Linspace(0, tuneFastTo, tuneFastPoints),
			experiment.Linspace(scanFrom, scanTo, scanPoints),
		},
	)

	build := func(params map[string]float64) (experiment.Scenario, error) {
		sc := base
		sc.GainFast = params["gain_fast"]
		sc.GainThermal = params["gain_thermal"]
		return sc, nil
	}
	cost := func(res *reactor.Result) float64 {
		return math.Abs(experiment.TailMean(res.Series.Power) - base.PNominal)
	}

	fmt.Printf("tuning gains on %s (%d runs)...\n", base.Name, gs.Size())
	start := time.Now()

	bestParams, bestCost, err := gs.Search(context.Background(), data, build, cost)
	if err != nil {
		return err
	}
	if bestParams == nil {
		return fmt.Errorf("no grid point completed")
	}

	fmt.Printf("completed in %v\n\n", time.Since(start))
	fmt.Printf("best gains: fast %.3f, thermal %.3f\n", bestParams["gain_fast"], bestParams["gain_thermal"])
	fmt.Printf("tail power error: %.4g W\n", bestCost)
	return nil
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
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tDURATION\tDT\tCTRL\tSTEPS\tEXC")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.6gs\t%s\t%d\t%d\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.TFinal,
			run.Dt,
			run.Controller,
			run.Steps,
			run.Excursions,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	if series.Len() == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("samples: %d\n\n", series.Len())

	columns := []string{
		reactor.ColPower, reactor.ColNThermal, reactor.ColKEff,
		reactor.ColSigmaTh, reactor.ColXe135, reactor.ColBurnup,
	}
	if plotColumn != "" {
		if series.Column(plotColumn) == nil {
			return fmt.Errorf("unknown column: %s (available: %v)", plotColumn, reactor.ColumnOrder)
		}
		columns = []string{plotColumn}
	}

	for _, name := range columns {
		graph := asciigraph.Plot(series.Column(name),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(plotCaption(name)),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func plotCaption(name string) string {
	switch name {
	case reactor.ColPower:
		return "total power (W)"
	case reactor.ColNThermal:
		return "thermal neutron population"
	case reactor.ColNFast:
		return "fast neutron population"
	case reactor.ColKEff:
		return "k-eff"
	case reactor.ColSigmaTh:
		return "thermal rod absorption (1/s)"
	case reactor.ColSigmaFast:
		return "fast rod absorption (1/s)"
	case reactor.ColXe135:
		return "Xe-135 inventory (atoms)"
	case reactor.ColBurnup:
		return "burnup (J)"
	case reactor.ColU235:
		return "U-235 inventory (atoms)"
	case reactor.ColU238:
		return "U-238 inventory (atoms)"
	case reactor.ColPu239:
		return "Pu-239 inventory (atoms)"
	}
	return name + " vs time"
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	data := series.Column(columnName)
	if data == nil {
		return fmt.Errorf("unknown column: %s (available: %v)", columnName, reactor.ColumnOrder)
	}
	if len(data) == 0 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("column: %s\n\n", columnName)

	ps := analysis.PowerSpectrum(data)
	plotData := ps
	if len(ps) > 4 {
		plotData = ps[:len(ps)/4]
	}

	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("power spectrum (%s)", columnName)),
	)
	fmt.Println(graph)
	fmt.Println()

	freq, mag := analysis.Dominant(data, meta.Dt)
	if freq > 0 {
		fmt.Printf("dominant frequency: %.3f hz (magnitude %.4g)\n", freq, mag)
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	} else {
		fmt.Println("no dominant frequency")
	}

	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	camp, err := automation.LoadCampaign(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("campaign %s: %d runs\n", camp.Name, len(camp.Runs))
	ids, err := camp.Run(context.Background(), nucdata.NewTable(newLogger()), st)
	if err != nil {
		return err
	}

	fmt.Println("\nstored runs:")
	for _, id := range ids {
		fmt.Printf("  %s\n", id)
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportRunCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	return storage.ExportCSV(os.Stdout, series)
}

func exportRunJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, *meta, series)
}

func exportRunSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}

	ys := series.Column(columnName)
	if ys == nil {
		return fmt.Errorf("unknown column: %s (available: %v)", columnName, reactor.ColumnOrder)
	}

	svg := export.LineSVG(series.Time, ys, 900, 300, "#00ff00")
	if svg == "" {
		return fmt.Errorf("no data to render")
	}
	fmt.Println(svg)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := scenarioConfig(cmd, args)
	if err != nil {
		return err
	}

	sc := experiment.FromConfig(cfg)
	data := nucdata.NewTable(newLogger())

	eng, err := kinetics.New(data, sc.FP, sc.Params)
	if err != nil {
		return err
	}
	x0, err := eng.InitialState(sc.Fuel, sc.MassKg, sc.NThermal0, sc.NFast0)
	if err != nil {
		return err
	}
	ctrl, err := sc.NewController()
	if err != nil {
		return err
	}

	m := tui.NewModel(sc.Name, eng, integrators.NewEuler(), ctrl, x0, sc.Dt)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
