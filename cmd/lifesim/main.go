package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/lifesim/internal/analysis"
	"github.com/san-kum/lifesim/internal/config"
	"github.com/san-kum/lifesim/internal/experiment"
	"github.com/san-kum/lifesim/internal/export"
	"github.com/san-kum/lifesim/internal/gui"
	"github.com/san-kum/lifesim/internal/life"
	"github.com/san-kum/lifesim/internal/metrics"
	"github.com/san-kum/lifesim/internal/sim"
	"github.com/san-kum/lifesim/internal/storage"
	"github.com/san-kum/lifesim/internal/tui"
	"github.com/san-kum/lifesim/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	logLevel   string
	logFile    string
	logOut     *os.File

	rows        int
	cols        int
	speedMs     int
	seed        int64
	pattern     string
	theme       string
	generations int
	stopOnCycle bool
	cellSize    int

	metricNames []string
	plotAfter   bool
	svgOut      string
	frameRate   int
	braille     bool
	maxGens     int
	numRuns     int
)

// main registers the commands and runs the terminal UI when no subcommand
// is given. It exits with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:           "lifesim",
		Short:         "interactive game of life",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return closeLogging()
		},
		RunE: runTUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".lifesim", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVar(&logFile, "log-file", "", "write logs to this file")

	pf.IntVar(&rows, "rows", config.DefaultRows, "grid rows")
	pf.IntVar(&cols, "cols", config.DefaultCols, "grid columns")
	pf.IntVar(&speedMs, "speed", sim.DefaultSpeedMs, "delay between generations in ms (50-2000)")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 = time based)")
	pf.StringVar(&pattern, "pattern", "", "starting pattern, \"random\" or empty")
	pf.StringVar(&theme, "theme", config.DefaultTheme, "color theme")
	pf.IntVar(&generations, "generations", config.DefaultGenerations, "generations for headless runs")
	pf.BoolVar(&stopOnCycle, "stop-on-cycle", true, "stop headless runs when a cycle is found")
	pf.IntVar(&cellSize, "cell-size", config.DefaultCellSize, "cell size in pixels (gui)")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "terminal UI",
		RunE:  runTUI,
	}

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "desktop window",
		RunE:  runGUI,
	}

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "stream generations to the terminal",
		RunE:  runWatch,
	}
	watchCmd.Flags().IntVar(&frameRate, "fps", 30, "maximum frame rate (0 = every generation)")
	watchCmd.Flags().BoolVar(&braille, "braille", false, "pack 2x4 cells into each character")
	watchCmd.Flags().IntVar(&maxGens, "max", 0, "stop after this many generations (0 = until interrupted)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless and store the result",
		RunE:  runHeadless,
	}
	runCmd.Flags().StringSliceVar(&metricNames, "metrics", nil, "metrics to record (default all)")
	runCmd.Flags().BoolVar(&plotAfter, "plot", false, "plot the population when done")
	runCmd.Flags().StringVar(&svgOut, "svg", "", "write the final grid as svg")

	soupCmd := &cobra.Command{
		Use:   "soup",
		Short: "run many random soups in parallel",
		RunE:  runSoup,
	}
	soupCmd.Flags().IntVar(&numRuns, "runs", 16, "number of soups")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run population",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "population spectrum",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export run population chart to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSIZE\tPATTERN\tSPEED\tTHEME")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%dx%d\t%s\t%dms\t%s\n", name, p.Rows, p.Cols, p.Pattern, p.SpeedMs, p.Theme)
			}
			return w.Flush()
		},
	}

	patternsCmd := &cobra.Command{
		Use:   "patterns",
		Short: "list built-in patterns",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSIZE\tCELLS\tDESCRIPTION")
			for _, name := range life.PatternNames() {
				p := life.MustPattern(name)
				fmt.Fprintf(w, "%s\t%dx%d\t%d\t%s\n", name, p.Shape.Rows(), p.Shape.Cols(), p.Shape.Population(), p.Description)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(tuiCmd, guiCmd, watchCmd, runCmd, soupCmd, listCmd, plotCmd, analyzeCmd, exportJSONCmd, exportSVGCmd, presetsCmd, patternsCmd)
	if err := rootCmd.Execute(); err != nil {
		closeLogging()
		log.Error(err)
		os.Exit(1)
	}
}

func setupLogging(cmd *cobra.Command) error {
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	log.SetLevel(level)
	log.SetReportTimestamp(true)

	// The terminal UI owns the screen, so its logs go to a file or nowhere.
	interactive := cmd.Name() == "tui" || cmd == cmd.Root()
	switch {
	case logFile != "":
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("log file: %w", err)
		}
		log.SetOutput(f)
		logOut = f
	case interactive:
		log.SetOutput(io.Discard)
	default:
		log.SetOutput(os.Stderr)
	}
	return nil
}

// closeLogging flushes and closes the --log-file handle, if one was opened.
func closeLogging() error {
	if logOut == nil {
		return nil
	}
	log.SetOutput(os.Stderr)
	err := logOut.Close()
	logOut = nil
	return err
}

// loadConfig merges defaults, preset, config file and explicitly set flags,
// in that order, and validates the result.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}
	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("rows") {
		cfg.Rows = rows
	}
	if flags.Changed("cols") {
		cfg.Cols = cols
	}
	if flags.Changed("speed") {
		cfg.SpeedMs = speedMs
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("pattern") {
		cfg.Pattern = pattern
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("generations") {
		cfg.Generations = generations
	}
	if flags.Changed("stop-on-cycle") {
		cfg.StopOnCycle = stopOnCycle
	}
	if flags.Changed("cell-size") {
		cfg.CellSize = cellSize
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func effectiveSeed(cfg *config.Config) int64 {
	if cfg.Seed != 0 {
		return cfg.Seed
	}
	return time.Now().UnixNano()
}

func newSimulation(cfg *config.Config, s int64) *sim.Simulation {
	sm := sim.NewSimulationFrom(cfg.InitialGrid(s))
	sm.SetSpeed(cfg.SpeedMs)
	return sm
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	s := effectiveSeed(cfg)
	log.Info("starting tui", "rows", cfg.Rows, "cols", cfg.Cols, "pattern", cfg.Pattern, "seed", s)
	return tui.Run(newSimulation(cfg, s), tui.Options{Theme: cfg.Theme, Pattern: cfg.Pattern, Seed: s})
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	s := effectiveSeed(cfg)
	log.Info("starting gui", "rows", cfg.Rows, "cols", cfg.Cols, "cell_size", cfg.CellSize, "seed", s)
	gui.Run(newSimulation(cfg, s), gui.Options{Theme: cfg.Theme, CellSize: cfg.CellSize, Seed: s})
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	s := effectiveSeed(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	title := cfg.Pattern
	if title == "" {
		title = "empty"
	}
	renderer := tui.NewLiveRenderer(os.Stdout, title, frameRate, braille)
	runner := sim.NewRunner(newSimulation(cfg, s))
	runner.AddObserver(renderer)
	if maxGens > 0 {
		runner.AddObserver(sim.ObserverFunc(func(g life.Grid, generation int) {
			if generation >= maxGens {
				cancel()
			}
		}))
	}

	renderer.Start()
	defer renderer.Stop()

	runner.Start()
	err = runner.Run(ctx)
	if errors.Is(err, context.Canceled) {
		snap := runner.Snapshot()
		log.Info("watch stopped", "generation", snap.Generation, "population", snap.Grid.Population())
		return nil
	}
	return err
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	s := effectiveSeed(cfg)

	ms, err := experiment.NewRegistry().Metrics(metricNames)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp := experiment.New(cfg, s)
	if err := exp.Setup(ms); err != nil {
		return err
	}
	exp.Simulator().AddObserver(sim.ObserverFunc(func(g life.Grid, gen int) {
		log.Debug("generation", "n", gen, "population", g.Population())
	}))

	log.Info("running", "pattern", cfg.Pattern, "rows", cfg.Rows, "cols", cfg.Cols, "generations", cfg.Generations, "seed", s)
	start := time.Now()
	result, err := exp.Run(cmd.Context())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(exp.Info(), result)
	if err != nil {
		return err
	}
	log.Info("run saved", "id", runID, "elapsed", elapsed)

	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("generations: %d\n", result.Generations)
	if result.Period > 0 {
		fmt.Printf("cycle: period %d from generation %d\n", result.Period, result.CycleStart)
	} else {
		fmt.Println("cycle: none found")
	}
	fmt.Println("\nmetrics:")
	for _, m := range ms {
		fmt.Printf("  %s: %.4f\n", m.Name(), result.Metrics[m.Name()])
	}

	if svgOut != "" {
		svg := export.GridToSVG(result.Final, cfg.CellSize, viz.GetTheme(cfg.Theme))
		if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
			return err
		}
		log.Info("final grid written", "path", svgOut)
	}
	if plotAfter {
		fmt.Println()
		fmt.Println(populationGraph(result.Populations))
	}
	return nil
}

func runSoup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	s := effectiveSeed(cfg)

	e := sim.NewEnsemble(cfg.Rows, cfg.Cols, numRuns, s, metrics.Default)
	log.Info("running soups", "runs", numRuns, "rows", cfg.Rows, "cols", cfg.Cols, "seed", s)
	start := time.Now()
	results, err := e.Run(cmd.Context(), cfg.SimConfig())
	if err != nil {
		return err
	}
	log.Info("soups done", "elapsed", time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tGENS\tPERIOD\tSTART\tFINAL\tPEAK\tCHURN")
	for i, r := range results {
		fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%.0f\t%.0f\t%.2f\n",
			e.Seed(i), r.Generations, r.Period, r.CycleStart,
			r.Metrics["final_population"], r.Metrics["peak_population"], r.Metrics["churn"])
	}
	return w.Flush()
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
	fmt.Fprintln(w, "ID\tPATTERN\tTIME\tSIZE\tGENS\tPERIOD\tSEED")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%d\t%d\t%d\n",
			run.ID,
			run.Pattern,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Rows, run.Cols,
			run.Generations,
			run.Period,
			run.Seed,
		)
	}
	return w.Flush()
}

func populationGraph(populations []int) string {
	return asciigraph.Plot(analysis.Ints(populations),
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("population"),
	)
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	pops, err := st.LoadPopulation(runID)
	if err != nil {
		return err
	}
	if len(pops) == 0 {
		return fmt.Errorf("no data to plot")
	}
	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("pattern: %s\n", meta.Pattern)
	fmt.Printf("generations: %d\n\n", meta.Generations)
	fmt.Println(populationGraph(pops))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	pops, err := st.LoadPopulation(runID)
	if err != nil {
		return err
	}
	if len(pops) < 4 {
		return fmt.Errorf("run %s: too few generations to analyze", runID)
	}

	fmt.Printf("population spectrum: %s\n\n", meta.ID)
	data := analysis.Ints(pops)
	ps := analysis.PowerSpectrum(data)
	graph := asciigraph.Plot(ps[1:],
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (population)"),
	)
	fmt.Println(graph)
	fmt.Println()

	period, power := analysis.DominantPeriod(data)
	if period == 0 {
		fmt.Println("dominant period: none (flat population)")
	} else {
		fmt.Printf("dominant period: %.2f generations (power %.2f)\n", period, power)
	}
	if meta.Period > 0 {
		fmt.Printf("exact cycle: period %d from generation %d\n", meta.Period, meta.CycleStart)
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	pops, err := st.LoadPopulation(runID)
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, meta, pops)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	runID := args[0]
	st := storage.New(dataDir)
	if _, err := st.Load(runID); err != nil {
		return err
	}
	pops, err := st.LoadPopulation(runID)
	if err != nil {
		return err
	}
	svg := export.PopulationToSVG(pops, 800, 300, string(viz.GetTheme(cfg.Theme).Alive))
	if svg == "" {
		return fmt.Errorf("run %s: not enough generations for a chart", runID)
	}
	_, err = io.WriteString(os.Stdout, strings.TrimSpace(svg)+"\n")
	return err
}
