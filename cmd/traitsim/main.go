package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/traitsim/internal/analysis"
	"github.com/san-kum/traitsim/internal/config"
	"github.com/san-kum/traitsim/internal/export"
	"github.com/san-kum/traitsim/internal/mesh"
	"github.com/san-kum/traitsim/internal/metrics"
	"github.com/san-kum/traitsim/internal/sim"
	"github.com/san-kum/traitsim/internal/storage"
	"github.com/san-kum/traitsim/internal/tui"
	"github.com/san-kum/traitsim/internal/viz"
)

var (
	dataDir string

	dt          float64
	steps       int
	nPoints     int
	mPoints     int
	eps         float64
	m1          float64
	m2          float64
	rIn         float64
	kernelWidth float64

	consumerScheme string
	resourceScheme string

	configFile   string
	preset       string
	stepsPerTick int

	exportFormat string

	sweepParam  string
	sweepFrom   float64
	sweepTo     float64
	sweepPoints int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "traitsim",
		Short: "trait-structured consumer/resource simulation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".traitsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "run a coupled simulation",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulation,
	}
	addProblemFlags(runCmd)
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot stored fields",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "output format (json|svg)")

	sweepCmd := &cobra.Command{
		Use:   "sweep [scenario]",
		Short: "sweep one coefficient over a value grid",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	addProblemFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "eps", "coefficient to sweep (eps|m1|m2|r-in|kernel-width)")
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0, "first value")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 0.01, "last value")
	sweepCmd.Flags().IntVar(&sweepPoints, "points", 5, "number of values")

	liveCmd := &cobra.Command{
		Use:   "live [scenario]",
		Short: "run with live visualization",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addProblemFlags(liveCmd)
	liveCmd.Flags().IntVar(&stepsPerTick, "speed", 1, "time steps per frame")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset configurations",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Printf("%-14s %s (schemes %s/%s, dt=%g, steps=%d)\n",
					name, cfg.Scenario, cfg.ConsumerScheme, cfg.ResourceScheme, cfg.Dt, cfg.Steps)
			}
			return nil
		},
	}

	scenariosCmd := &cobra.Command{
		Use:   "scenarios",
		Short: "list built-in scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range sim.DefaultScenarios().List() {
				fmt.Println(name)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, sweepCmd, liveCmd, presetsCmd, scenariosCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addProblemFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of time steps")
	cmd.Flags().IntVar(&nPoints, "n", config.DefaultN, "interior trait points")
	cmd.Flags().IntVar(&mPoints, "m", config.DefaultN, "interior resource points")
	cmd.Flags().Float64Var(&eps, "eps", config.DefaultEps, "mutation rate")
	cmd.Flags().Float64Var(&m1, "m1", config.DefaultM1, "consumer mortality")
	cmd.Flags().Float64Var(&m2, "m2", config.DefaultM2, "resource decay rate")
	cmd.Flags().Float64Var(&rIn, "r-in", config.DefaultRIn, "resource supply rate")
	cmd.Flags().Float64Var(&kernelWidth, "kernel-width", config.DefaultKernelWidth, "consumption kernel width")
	cmd.Flags().StringVar(&consumerScheme, "consumer-scheme", "explicit", "consumer update scheme")
	cmd.Flags().StringVar(&resourceScheme, "resource-scheme", "explicit", "resource update scheme (explicit|quasistatic)")
}

// buildConfig merges preset, config file and flags; flags win.
func buildConfig(cmd *cobra.Command, scenario string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	cfg.Scenario = scenario

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("steps") {
		cfg.Steps = steps
	}
	if cmd.Flags().Changed("n") {
		cfg.N = nPoints
	}
	if cmd.Flags().Changed("m") {
		cfg.M = mPoints
	}
	if cmd.Flags().Changed("eps") {
		cfg.Coefficients.Eps = eps
	}
	if cmd.Flags().Changed("m1") {
		cfg.Coefficients.M1 = m1
	}
	if cmd.Flags().Changed("m2") {
		cfg.Coefficients.M2 = m2
	}
	if cmd.Flags().Changed("r-in") {
		cfg.Coefficients.RIn = rIn
	}
	if cmd.Flags().Changed("kernel-width") {
		cfg.Coefficients.KernelWidth = kernelWidth
	}
	if cmd.Flags().Changed("consumer-scheme") {
		cfg.ConsumerScheme = consumerScheme
	}
	if cmd.Flags().Changed("resource-scheme") {
		cfg.ResourceScheme = resourceScheme
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func buildProblem(cfg *config.Config) (sim.Problem, error) {
	scenario, err := sim.DefaultScenarios().Get(cfg.Scenario)
	if err != nil {
		return sim.Problem{}, err
	}

	p := scenario(sim.Params{
		Eps:         cfg.Coefficients.Eps,
		M1:          cfg.Coefficients.M1,
		M2:          cfg.Coefficients.M2,
		RIn:         cfg.Coefficients.RIn,
		KernelWidth: cfg.Coefficients.KernelWidth,
	})
	p.XLims = cfg.XLims
	p.YLims = cfg.YLims
	p.N = cfg.N
	p.M = cfg.M
	p.Dt = cfg.Dt
	p.Steps = cfg.Steps
	p.ConsumerScheme = cfg.ConsumerScheme
	p.ResourceScheme = cfg.ResourceScheme
	return p, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}
	problem, err := buildProblem(cfg)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	msh, err := mesh.New(problem.XLims, problem.YLims, problem.N, problem.M, problem.Dt, problem.Steps)
	if err != nil {
		return err
	}

	engine := sim.New()
	engine.AddMetric(metrics.NewBiomass(msh))
	engine.AddMetric(metrics.NewResourceStock(msh))
	engine.AddMetric(metrics.NewMeanTrait(msh))

	fmt.Printf("running %s scenario...\n", cfg.Scenario)
	start := time.Now()

	result, err := engine.Solve(context.Background(), problem)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(cfg.Scenario, cfg.ConsumerScheme, cfg.ResourceScheme, cfg.Coefficients.Eps, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}
	fmt.Printf("  trait_variance: %.6f\n",
		analysis.TraitVariance(result.U.Row(result.StepsTaken), msh.X))

	det := analysis.SteadyState{Tol: 1e-6, Window: 3}
	if step, ok := det.Detect(result.U, msh.X, result.StepsTaken+1); ok {
		fmt.Printf("steady state reached at t = %.4f\n", float64(step)*msh.Dt)
	}

	fmt.Println()
	fmt.Println(viz.CompareRows(result.U.Row(0), result.U.Row(result.StepsTaken), "consumer u: initial vs final"))
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
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tSTEPS\tDT\tN\tM\tSCHEMES")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.4f\t%d\t%d\t%s/%s\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.Dt,
			run.N,
			run.M,
			run.ConsumerScheme,
			run.ResourceScheme,
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

	uRows, times, err := st.LoadField(runID, "u")
	if err != nil {
		return err
	}
	rRows, _, err := st.LoadField(runID, "r")
	if err != nil {
		return err
	}
	if len(uRows) == 0 || len(rRows) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Println(viz.HeaderStyle.Render(fmt.Sprintf("run %s — %s", meta.ID, meta.Scenario)))
	fmt.Printf("samples: %d, dt: %g\n\n", len(times), meta.Dt)

	last := len(uRows) - 1
	fmt.Println(viz.CompareRows(uRows[0], uRows[last], "consumer u: initial vs final"))
	fmt.Println()
	fmt.Println(viz.CompareRows(rRows[0], rRows[last], "resource R: initial vs final"))
	fmt.Println()

	// Trajectory of the central trait point across time.
	mid := len(uRows[0]) / 2
	series := make([]float64, len(uRows))
	for i := range uRows {
		series[i] = uRows[i][mid]
	}
	fmt.Println(viz.PlotSeries(series, "u at central trait vs time"))

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	switch exportFormat {
	case "json":
		meta, err := st.Load(runID)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)

	case "svg":
		return exportSVG(st, runID)

	default:
		return fmt.Errorf("unknown format: %s", exportFormat)
	}
}

// exportSVG writes final-row curves for both fields plus a space-time
// heatmap of the consumer density.
func exportSVG(st *storage.Store, runID string) error {
	for _, field := range []struct {
		name  string
		color string
	}{
		{"u", "#00ff00"},
		{"r", "#00aaff"},
	} {
		rows, _, err := st.LoadField(runID, field.name)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return fmt.Errorf("no data for field %s", field.name)
		}

		last := rows[len(rows)-1]
		xs := make([]float64, len(last))
		for i := range xs {
			xs[i] = float64(i) / float64(len(xs)-1)
		}

		name := fmt.Sprintf("%s_%s.svg", runID, field.name)
		if err := os.WriteFile(name, []byte(export.CurveSVG(xs, last, 640, 320, field.color)), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", name)

		if field.name == "u" {
			name = fmt.Sprintf("%s_u_heat.svg", runID)
			if err := os.WriteFile(name, []byte(export.HeatmapSVG(rows, 640, 320)), 0644); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", name)
		}
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	build := func(v float64) sim.Problem {
		c := *cfg
		switch sweepParam {
		case "eps":
			c.Coefficients.Eps = v
		case "m1":
			c.Coefficients.M1 = v
		case "m2":
			c.Coefficients.M2 = v
		case "r-in":
			c.Coefficients.RIn = v
		case "kernel-width":
			c.Coefficients.KernelWidth = v
		}
		p, err := buildProblem(&c)
		if err != nil {
			return sim.Problem{}
		}
		return p
	}

	if _, err := sim.DefaultScenarios().Get(cfg.Scenario); err != nil {
		return err
	}
	switch sweepParam {
	case "eps", "m1", "m2", "r-in", "kernel-width":
	default:
		return fmt.Errorf("unknown sweep parameter: %s", sweepParam)
	}

	// Score each run by its final total biomass.
	score := func(res *sim.Result) float64 {
		m := metrics.NewBiomass(res.Mesh)
		m.Observe(res.U.Row(res.StepsTaken), nil, 0)
		return m.Value()
	}

	values := sim.SweepValues(sweepFrom, sweepTo, sweepPoints)
	fmt.Printf("sweeping %s over %d values in [%g, %g]...\n", sweepParam, len(values), sweepFrom, sweepTo)

	result, err := sim.RunSweep(context.Background(), values, build, score)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tFINAL BIOMASS\t\n", sweepParam)
	for i, p := range result.Points {
		marker := ""
		if i == result.Best {
			marker = "<- best"
		}
		fmt.Fprintf(w, "%.6g\t%.6f\t%s\n", p.Value, p.Score, marker)
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}
	problem, err := buildProblem(cfg)
	if err != nil {
		return err
	}

	consumer, resource, msh, err := sim.New().Build(problem)
	if err != nil {
		return err
	}

	return tui.Run(consumer, resource, msh, cfg.Scenario, stepsPerTick)
}
