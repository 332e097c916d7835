package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/codebox/generative-city-map/internal/analysis"
	"github.com/codebox/generative-city-map/internal/automation"
	"github.com/codebox/generative-city-map/internal/city"
	"github.com/codebox/generative-city-map/internal/config"
	"github.com/codebox/generative-city-map/internal/experiment"
	"github.com/codebox/generative-city-map/internal/export"
	"github.com/codebox/generative-city-map/internal/gui"
	"github.com/codebox/generative-city-map/internal/optim"
	"github.com/codebox/generative-city-map/internal/render"
	"github.com/codebox/generative-city-map/internal/server"
	"github.com/codebox/generative-city-map/internal/storage"
	"github.com/codebox/generative-city-map/internal/viz"
)

var (
	dataDir    string
	verbose    bool
	seed       = time.Now().UnixNano()
	width      float64
	height     float64
	seedCount  int
	branch     float64
	expiry     float64
	viewport   string
	maxTicks   int
	style      string
	scale      float64
	outFile    string
	configFile string
	preset     string
	addr       string
	sweepSpecs []string
	metricName string
	benchRuns  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "citymap",
		Short: "Generative city street maps",
		Long:  "citymap grows deterministic street networks from a seed and renders them as terminal maps, PNG images, SVG drawings, or a live animation.",
		RunE:  runLive,
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".citymap", "directory for stored runs")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Grow a map and store it",
		RunE:  runGenerate,
	}
	addGrowFlags(generateCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "Watch a map grow in the terminal",
		RunE:  runLive,
	}
	addGrowFlags(liveCmd)

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "Watch a map grow in a graphical window",
		RunE:  runGUI,
	}
	addGrowFlags(guiCmd)

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "Grow a map and write it as a PNG image",
		RunE:  runRender,
	}
	addGrowFlags(renderCmd)
	renderCmd.Flags().Float64Var(&scale, "scale", 8, "pixels per street unit")
	renderCmd.Flags().StringVarP(&outFile, "out", "o", "map.png", "output file")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List stored runs",
		RunE:  runList,
	}

	plotCmd := &cobra.Command{
		Use:   "plot <run-id>",
		Short: "Plot a stored run in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  runPlot,
	}

	exportCmd := &cobra.Command{
		Use:   "export <run-id>",
		Short: "Export a stored run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runExport,
	}
	exportCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default: stdout)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv <run-id>",
		Short: "Export the streets of a stored run as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  runExportCSV,
	}

	topoCmd := &cobra.Command{
		Use:   "topo <run-id>",
		Short: "Export the branching topology of a stored run as Graphviz DOT",
		Args:  cobra.ExactArgs(1),
		RunE:  runTopo,
	}
	topoCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file, .svg renders via graphviz (default: stdout)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve maps over HTTP",
		RunE:  runServe,
	}
	addGrowFlags(serveCmd)
	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "Grid-search growth parameters against a metric",
		RunE:  runSweep,
	}
	addGrowFlags(sweepCmd)
	sweepCmd.Flags().StringArrayVar(&sweepSpecs, "param", nil, "parameter range as name=lo:hi:n (repeatable)")
	sweepCmd.Flags().StringVar(&metricName, "metric", "coverage", "metric to maximize")

	batchCmd := &cobra.Command{
		Use:   "batch <scenario.yaml>",
		Short: "Run a scenario file of growth steps",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "List available presets",
		RunE:  runPresets,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark growth across canvas sizes and seed counts",
		RunE:  runBench,
	}
	benchCmd.Flags().IntVar(&benchRuns, "runs", 4, "seeds per configuration, grown concurrently")

	rootCmd.AddCommand(generateCmd, liveCmd, guiCmd, renderCmd, listCmd, plotCmd,
		exportCmd, exportCSVCmd, topoCmd, serveCmd, sweepCmd, batchCmd, presetsCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addGrowFlags(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&seed, "seed", seed, "random seed")
	cmd.Flags().Float64Var(&width, "width", config.DefaultWidth, "canvas width in street units")
	cmd.Flags().Float64Var(&height, "height", config.DefaultHeight, "canvas height in street units")
	cmd.Flags().IntVar(&seedCount, "seeds", config.DefaultSeeds, "number of root streets")
	cmd.Flags().Float64Var(&branch, "branch", config.DefaultBranch, "per-step branch probability")
	cmd.Flags().Float64Var(&expiry, "expiry", config.DefaultExpiry, "per-generation expiry threshold")
	cmd.Flags().StringVar(&viewport, "viewport", "rect",
		fmt.Sprintf("canvas shape (%s)", strings.Join(experiment.ListViewports(), ", ")))
	cmd.Flags().IntVar(&maxTicks, "max-ticks", experiment.DefaultMaxTicks, "tick cap for runaway growth")
	cmd.Flags().StringVar(&style, "style", config.DefaultStyle,
		fmt.Sprintf("render style (%s)", strings.Join(render.ListStyles(), ", ")))
	cmd.Flags().StringVar(&configFile, "config", "", "config file (yaml or toml)")
	cmd.Flags().StringVar(&preset, "preset", "", "named preset configuration")
}

// resolveConfig builds the effective configuration: defaults, then preset,
// then config file, then any flags the user set explicitly. The seed flag is
// special cased so that presets and config files keep their stored seed
// unless one is given on the command line.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q (available: %s)",
				preset, strings.Join(config.ListPresets(), ", "))
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

	flags := cmd.Flags()
	if flags.Changed("seed") || (preset == "" && configFile == "") {
		cfg.Seed = seed
	}
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("seeds") {
		cfg.Seeds = seedCount
	}
	if flags.Changed("branch") {
		cfg.Branch = branch
	}
	if flags.Changed("expiry") {
		cfg.Expiry = expiry
	}
	if flags.Changed("viewport") {
		cfg.Viewport = viewport
	}
	if flags.Changed("max-ticks") {
		cfg.MaxTicks = maxTicks
	}
	if flags.Changed("style") {
		cfg.Style = style
	}
	return cfg, nil
}

func newLogger() *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	run := cfg.ToRun()
	exp := experiment.New(run)
	for _, m := range experiment.DefaultMetrics(run.Width, run.Height) {
		exp.AddMetric(m)
	}

	fmt.Printf("growing %gx%g %s map from seed %d...\n", run.Width, run.Height, run.Viewport, run.Seed)
	start := time.Now()

	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(run, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("ticks: %d\n", result.Ticks)
	fmt.Printf("streets: %d\n", result.Lines)
	if !result.Exhausted {
		fmt.Println("stopped at tick cap before the map settled")
	}
	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, result.Metrics[name])
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	m, err := viz.NewLive(cfg.ToRun())
	if err != nil {
		return err
	}
	if _, err := tea.NewProgram(m).Run(); err != nil {
		return fmt.Errorf("live view failed: %w", err)
	}
	return nil
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	return gui.Run(cfg.ToRun())
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	run := cfg.ToRun()

	r, err := render.New(render.Options{
		Width:  run.Width,
		Height: run.Height,
		Scale:  scale,
		Style:  cfg.Style,
		Seed:   uint32(run.Seed),
	})
	if err != nil {
		return err
	}

	result, err := experiment.New(run).Run(context.Background())
	if err != nil {
		return err
	}
	if err := r.RenderPNG(outFile, result.Model); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d streets, %d ticks, seed %d)\n", outFile, result.Lines, result.Ticks, run.Seed)
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no stored runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCREATED\tSEED\tSIZE\tSHAPE\tROOTS\tTICKS\tSTREETS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%gx%g\t%s\t%d\t%d\t%d\n",
			run.ID, run.Timestamp.Format("2006-01-02 15:04:05"), run.Seed,
			run.Width, run.Height, run.Viewport, run.Seeds, run.Ticks, run.Lines)
	}
	return w.Flush()
}

// regrow rebuilds a stored run from its recorded parameters. Growth is
// deterministic, so the rebuilt map matches the one that was saved.
func regrow(runID string) (experiment.Config, *experiment.Result, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return experiment.Config{}, nil, err
	}

	cfg := configFromMeta(meta)
	exp := experiment.New(cfg)
	for _, m := range experiment.DefaultMetrics(cfg.Width, cfg.Height) {
		exp.AddMetric(m)
	}
	result, err := exp.Run(context.Background())
	return cfg, result, err
}

func configFromMeta(meta *storage.RunMetadata) experiment.Config {
	cfg := experiment.Config{
		Seed:     meta.Seed,
		Width:    meta.Width,
		Height:   meta.Height,
		Viewport: meta.Viewport,
		MaxTicks: experiment.DefaultMaxTicks,
		City: city.Config{
			SeedCount:       meta.Seeds,
			PBifurcation:    meta.Branch,
			ExpiryThreshold: meta.Expiry,
		},
	}
	// A run stopped at the tick cap must be replayed to the same tick.
	if !meta.Exhausted {
		cfg.MaxTicks = meta.Ticks
	}
	return cfg
}

func runPlot(cmd *cobra.Command, args []string) error {
	cfg, result, err := regrow(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", args[0])
	fmt.Printf("seed: %d  size: %gx%g  streets: %d  ticks: %d\n\n",
		cfg.Seed, cfg.Width, cfg.Height, result.Lines, result.Ticks)

	fmt.Println(viz.Plot(result.Model, 72, 24))

	history := make([]float64, len(result.ActiveHistory))
	for i, v := range result.ActiveHistory {
		history[i] = float64(v)
	}
	fmt.Println(asciigraph.Plot(history,
		asciigraph.Height(8),
		asciigraph.Width(72),
		asciigraph.Caption("active streets per tick")))
	fmt.Println()

	peak, at := analysis.PeakActive(result.ActiveHistory)
	fmt.Printf("peak active: %d at tick %d\n", peak, at)
	fmt.Printf("growth rate: %.3f streets/tick\n", analysis.GrowthRate(result.ActiveHistory))
	fmt.Printf("children per street: %.3f\n\n", analysis.ChildrenPerLine(result.Model))

	hist := analysis.GenerationHistogram(result.Model)
	lengths := analysis.LengthByGeneration(result.Model)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GEN\tSTREETS\tLENGTH")
	for gen, count := range hist {
		fmt.Fprintf(w, "%d\t%d\t%.1f\n", gen, count, lengths[gen])
	}
	return w.Flush()
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, result, err := regrow(args[0])
	if err != nil {
		return err
	}
	if outFile == "" {
		return storage.ExportJSONStdout(cfg, result)
	}
	if err := storage.ExportJSON(outFile, cfg, result); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outFile)
	return nil
}

func runExportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	records, err := st.LoadLines(args[0])
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"seed", "line", "parent", "generation",
		"origin_x", "origin_y", "tip_x", "tip_y", "angle", "steps", "tag", "state"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			strconv.Itoa(r.Seed),
			strconv.Itoa(r.Line),
			strconv.Itoa(r.Parent),
			strconv.Itoa(r.Generation),
			strconv.FormatFloat(r.OriginX, 'f', 6, 64),
			strconv.FormatFloat(r.OriginY, 'f', 6, 64),
			strconv.FormatFloat(r.TipX, 'f', 6, 64),
			strconv.FormatFloat(r.TipY, 'f', 6, 64),
			strconv.FormatFloat(r.Angle, 'f', 6, 64),
			strconv.Itoa(r.Steps),
			strconv.FormatFloat(r.Tag, 'f', 6, 64),
			r.State,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func runTopo(cmd *cobra.Command, args []string) error {
	_, result, err := regrow(args[0])
	if err != nil {
		return err
	}

	dot := export.TopologyDOT(result.Model)
	if outFile == "" {
		fmt.Print(dot)
		return nil
	}
	if strings.HasSuffix(outFile, ".svg") {
		svg, err := export.RenderTopologySVG(context.Background(), dot)
		if err != nil {
			return err
		}
		if err := os.WriteFile(outFile, svg, 0644); err != nil {
			return err
		}
	} else {
		if err := os.WriteFile(outFile, []byte(dot), 0644); err != nil {
			return err
		}
	}
	fmt.Printf("wrote %s\n", outFile)
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	st := storage.New(dataDir)
	return server.New(cfg.ToRun(), st, newLogger()).ListenAndServe(addr)
}

func runSweep(cmd *cobra.Command, args []string) error {
	if len(sweepSpecs) == 0 {
		return fmt.Errorf("at least one --param is required (e.g. --param branch=0.05:0.3:6)")
	}
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	base := cfg.ToRun()

	names := make([]string, 0, len(sweepSpecs))
	ranges := make([][]float64, 0, len(sweepSpecs))
	for _, spec := range sweepSpecs {
		name, values, err := parseSweepSpec(spec)
		if err != nil {
			return err
		}
		names = append(names, name)
		ranges = append(ranges, values)
	}

	build := func(params map[string]float64) (*experiment.Experiment, error) {
		runCfg, err := optim.ApplyParams(base, params)
		if err != nil {
			return nil, err
		}
		exp := experiment.New(runCfg)
		for _, m := range experiment.DefaultMetrics(runCfg.Width, runCfg.Height) {
			exp.AddMetric(m)
		}
		return exp, nil
	}

	fmt.Printf("sweeping %s over %s...\n\n", metricName, strings.Join(names, ", "))
	best, evals, err := optim.NewGridSearch(names, ranges).Search(context.Background(), build, metricName)
	if err != nil {
		return err
	}
	if len(evals) == 0 {
		return fmt.Errorf("no sweep run succeeded")
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\n", strings.ToUpper(strings.Join(names, "\t")), strings.ToUpper(metricName))
	for _, e := range evals {
		for _, name := range names {
			fmt.Fprintf(w, "%.4f\t", e.Params[name])
		}
		fmt.Fprintf(w, "%.6f\n", e.Value)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s=%.4f", name, best.Params[name]))
	}
	fmt.Printf("\nbest: %s with %s=%.6f\n", strings.Join(parts, " "), metricName, best.Value)
	return nil
}

func parseSweepSpec(spec string) (string, []float64, error) {
	name, rng, ok := strings.Cut(spec, "=")
	if !ok {
		return "", nil, fmt.Errorf("bad param spec %q (want name=lo:hi:n)", spec)
	}
	fields := strings.Split(rng, ":")
	if len(fields) != 3 {
		return "", nil, fmt.Errorf("bad param range %q (want lo:hi:n)", rng)
	}
	lo, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return "", nil, fmt.Errorf("bad param range %q: %w", rng, err)
	}
	hi, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return "", nil, fmt.Errorf("bad param range %q: %w", rng, err)
	}
	n, err := strconv.Atoi(fields[2])
	if err != nil || n < 1 {
		return "", nil, fmt.Errorf("bad param count in %q", rng)
	}
	return name, optim.Linspace(lo, hi, n), nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	results, err := automation.RunScenario(context.Background(), scenario, st, newLogger())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tTICKS\tSTREETS\tRUN\tOUTPUT")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\n", r.Name, r.Ticks, r.Lines, orDash(r.RunID), orDash(r.Output))
	}
	return w.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func runPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSIZE\tSHAPE\tROOTS\tBRANCH\tEXPIRY\tSTYLE")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%gx%g\t%s\t%d\t%.3f\t%.3f\t%s\n",
			name, p.Width, p.Height, p.Viewport, p.Seeds, p.Branch, p.Expiry, p.Style)
	}
	return w.Flush()
}

func runBench(cmd *cobra.Command, args []string) error {
	sizes := []struct{ w, h float64 }{{60, 40}, {120, 80}, {200, 120}}
	rootCounts := []int{3, 6, 12}

	fmt.Printf("benchmarking growth, %d runs per configuration\n\n", benchRuns)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SIZE\tROOTS\tRUNS\tTICKS\tSTREETS\tTIME\tTICKS/SEC")

	for _, size := range sizes {
		for _, roots := range rootCounts {
			cfg := experiment.Config{
				Seed:     42,
				Width:    size.w,
				Height:   size.h,
				Viewport: "rect",
				MaxTicks: experiment.DefaultMaxTicks,
				City: city.Config{
					SeedCount:       roots,
					PBifurcation:    config.DefaultBranch,
					ExpiryThreshold: config.DefaultExpiry,
				},
			}

			start := time.Now()
			results, err := experiment.NewEnsemble(cfg, benchRuns, cfg.Seed).Run(context.Background())
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			ticks, streets := 0, 0
			for _, r := range results {
				ticks += r.Ticks
				streets += r.Lines
			}
			fmt.Fprintf(w, "%gx%g\t%d\t%d\t%d\t%d\t%v\t%.0f\n",
				size.w, size.h, roots, benchRuns, ticks, streets,
				elapsed.Round(time.Microsecond), float64(ticks)/elapsed.Seconds())
		}
	}
	return w.Flush()
}
