package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/uterosim/symprobe/internal/config"
	"github.com/uterosim/symprobe/internal/extract"
	"github.com/uterosim/symprobe/internal/metrics"
	"github.com/uterosim/symprobe/internal/plots"
	"github.com/uterosim/symprobe/internal/progress"
	"github.com/uterosim/symprobe/internal/run"
	"github.com/uterosim/symprobe/internal/simlog"
	"github.com/uterosim/symprobe/internal/sweep"
)

var (
	settingsFile string
	resultsDir   string
	dim          int
	live         bool
	// Parameter sweep
	paramName   string
	start       float64
	end         float64
	step        float64
	paramValues []float64
	// Resolution sweep
	meshBase string
	resStart int
	resEnd   int
	// Extraction and plotting
	simName   string
	estrus    string
	simRange  []string
	delimiter string
	svgOut    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "symprobe",
		Short:         "uterine simulation sweep orchestration",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&settingsFile, "settings", "", "settings file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&resultsDir, "results", "", "results directory (overrides settings)")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run a simulation sweep",
	}
	sweepCmd.PersistentFlags().IntVar(&dim, "dim", 2, "simulation dimension (2 or 3)")
	sweepCmd.PersistentFlags().BoolVar(&live, "live", false, "show live progress view")

	sweepParamCmd := &cobra.Command{
		Use:   "parameter",
		Short: "sweep one parameter over a value range",
		RunE:  sweepParameter,
	}
	sweepParamCmd.Flags().StringVar(&paramName, "param", "", "parameter to sweep")
	sweepParamCmd.Flags().Float64Var(&start, "start", 0, "first value")
	sweepParamCmd.Flags().Float64Var(&end, "end", 0, "last value (inclusive)")
	sweepParamCmd.Flags().Float64Var(&step, "step", 0, "value increment")
	sweepParamCmd.Flags().Float64SliceVar(&paramValues, "values", nil, "explicit values, in run order (instead of start/end/step)")
	sweepParamCmd.MarkFlagRequired("param")

	sweepResCmd := &cobra.Command{
		Use:   "resolution",
		Short: "sweep mesh resolutions",
		RunE:  sweepResolution,
	}
	sweepResCmd.Flags().StringVar(&meshBase, "mesh", "", "base mesh name")
	sweepResCmd.Flags().IntVar(&resStart, "start", 0, "first mesh index")
	sweepResCmd.Flags().IntVar(&resEnd, "end", 0, "last mesh index (inclusive)")
	sweepResCmd.MarkFlagRequired("mesh")

	sweepEstrusCmd := &cobra.Command{
		Use:   "estrus",
		Short: "run one simulation per estrus stage",
		RunE:  sweepEstrus,
	}

	sweepCmd.AddCommand(sweepParamCmd, sweepResCmd, sweepEstrusCmd)

	extractCmd := &cobra.Command{
		Use:   "extract [kind] [sim-numbers...]",
		Short: "extract point data from simulation meshes",
		Args:  cobra.MinimumNArgs(2),
		RunE:  extractRuns,
	}
	extractCmd.Flags().StringVar(&simName, "sim-name", "", "simulation name (overrides settings)")

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "plot extracted simulation data",
	}
	plotCmd.PersistentFlags().StringVar(&simName, "sim-name", "", "simulation name (overrides settings)")
	plotCmd.PersistentFlags().StringVar(&delimiter, "delimiter", ",", "extracted data delimiter")
	plotCmd.PersistentFlags().StringVar(&svgOut, "svg", "", "also export the chart to an SVG file")

	plotCellCmd := &cobra.Command{
		Use:   "cell [kind] [sim-numbers...]",
		Short: "plot per-cell membrane potential traces",
		Args:  cobra.MinimumNArgs(2),
		RunE:  plotCell,
	}
	plotCellCmd.Flags().StringVar(&estrus, "estrus", "estrus", "estrus stage label")

	plotParamCmd := &cobra.Command{
		Use:   "parameter [metric]",
		Short: "plot a comparison metric over a parameter sweep",
		Args:  cobra.ExactArgs(1),
		RunE:  plotParameter,
	}
	plotParamCmd.Flags().StringVar(&paramName, "param", "", "swept parameter")
	plotParamCmd.Flags().StringVar(&estrus, "estrus", "all", "estrus stage, or all")
	plotParamCmd.Flags().StringSliceVarP(&simRange, "range", "r", nil, "simulation numbers, e.g. 1-4 or 1,3")
	plotParamCmd.MarkFlagRequired("param")
	plotParamCmd.MarkFlagRequired("range")

	plotResCmd := &cobra.Command{
		Use:   "resolution [metric]",
		Short: "plot a convergence metric over a resolution sweep",
		Args:  cobra.ExactArgs(1),
		RunE:  plotResolution,
	}
	plotResCmd.Flags().StringVar(&estrus, "estrus", "all", "estrus stage, or all")
	plotResCmd.Flags().StringSliceVarP(&simRange, "range", "r", nil, "simulation numbers, e.g. 1-4 or 1,3")
	plotResCmd.MarkFlagRequired("range")

	plotCmd.AddCommand(plotCellCmd, plotParamCmd, plotResCmd)

	runsCmd := &cobra.Command{
		Use:   "runs [kind]",
		Short: "list recorded simulation runs",
		Args:  cobra.ExactArgs(1),
		RunE:  listRuns,
	}
	runsCmd.Flags().StringVar(&simName, "sim-name", "", "simulation name (overrides settings)")

	rootCmd.AddCommand(sweepCmd, extractCmd, plotCmd, runsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "symprobe: %v\n", err)
		os.Exit(1)
	}
}

// loadSettings builds the settings object: defaults, then the optional
// settings file, then environment and flag overrides.
func loadSettings() (*config.Settings, error) {
	s := config.Default()
	if settingsFile != "" {
		loaded, err := config.Load(settingsFile)
		if err != nil {
			return nil, err
		}
		s = loaded
	}
	if dir := os.Getenv(config.ConfigDirEnv); dir != "" {
		s.ConfigDir = dir
	}
	if resultsDir != "" {
		s.ResultsDir = resultsDir
	}
	if simName != "" {
		s.SimName = simName
	}
	return s, nil
}

func sweepParameter(cmd *cobra.Command, args []string) error {
	var axis sweep.Axis
	var err error
	if len(paramValues) > 0 {
		axis, err = sweep.ParameterAxisValues(paramName, paramValues)
	} else {
		axis, err = sweep.NewParameterAxis(paramName, start, end, step)
	}
	if err != nil {
		return err
	}
	return runSweep(axis, fmt.Sprintf("parameter sweep: %s", paramName))
}

func sweepResolution(cmd *cobra.Command, args []string) error {
	axis, err := sweep.NewResolutionAxis(meshBase, resStart, resEnd)
	if err != nil {
		return err
	}
	return runSweep(axis, fmt.Sprintf("resolution sweep: %s", meshBase))
}

func sweepEstrus(cmd *cobra.Command, args []string) error {
	return runSweep(sweep.NewEstrusAxis(), "estrus sweep")
}

func runSweep(axis sweep.Axis, title string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	base, err := sweep.LoadBase(settings, dim)
	if err != nil {
		return err
	}

	configs, err := sweep.NewEnumerator(settings).Enumerate(axis, base)
	if err != nil {
		return err
	}

	resolver := sweep.NewResolver(settings)
	prepare := func(cfg sweep.SimulationConfig) (sweep.SimulationConfig, error) {
		resolved, err := resolver.Resolve(base, cfg)
		if err != nil {
			return resolved, err
		}
		if err := sweep.ApplyOverrides(base, resolved); err != nil {
			return resolved, err
		}
		return resolved, nil
	}

	sim := run.NewChaste(settings.Simulator)
	dispatcher := run.NewDispatcher(sim, settings.ResultsDir, axis.Kind(), settings.SimName, prepare)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var records []run.Record
	var dispatchErr error
	if live {
		view := func(total int, updates <-chan run.Record) error {
			return progress.Run(title, total, updates)
		}
		records, dispatchErr = dispatchLive(ctx, cancel, dispatcher, configs, view)
	} else {
		records, dispatchErr = dispatcher.Dispatch(ctx, configs)
	}

	if err := run.WriteSummary(os.Stdout, records); err != nil {
		return err
	}
	if dispatchErr != nil {
		return dispatchErr
	}

	index, err := run.Index(records)
	if err != nil {
		return err
	}
	fmt.Printf("results under %s (%d runs)\n", settings.ResultsDir, len(index))
	return nil
}

func extractRuns(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	kind, err := sweep.ParseKind(args[0])
	if err != nil {
		return err
	}
	numbers, err := extract.ParseRange(args[1:])
	if err != nil {
		return err
	}

	extractor := extract.NewPvPython()
	ctx := context.Background()

	for _, n := range numbers {
		outputDir := run.RunDir(settings.ResultsDir, kind, n)
		logPath := run.LogPath(outputDir, settings.SimName, n)

		mesh, err := simlog.MeshName(logPath)
		if err != nil {
			return err
		}
		points, err := settings.ExtractionPoints(mesh)
		if err != nil {
			return err
		}

		savePath := run.ExtractPath(outputDir, settings.SimName, n)
		if err := os.MkdirAll(filepath.Dir(savePath), 0755); err != nil {
			return err
		}

		meshPath := run.MeshPath(outputDir, settings.SimName, n)
		fmt.Printf("extracting %s (%s) -> %s\n", meshPath, mesh, savePath)
		if err := extractor.Extract(ctx, meshPath, savePath, points); err != nil {
			return err
		}
	}
	return nil
}

func plotCell(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	kind, err := sweep.ParseKind(args[0])
	if err != nil {
		return err
	}
	numbers, err := extract.ParseRange(args[1:])
	if err != nil {
		return err
	}

	for _, n := range numbers {
		series, err := loadSeries(settings, settings.ResultsDir, kind, n)
		if err != nil {
			return err
		}
		fmt.Printf("simulation %03d\n", n)
		if err := plots.CellTraces(os.Stdout, series.V, series.T, estrus); err != nil {
			return err
		}

		outputDir := run.RunDir(settings.ResultsDir, kind, n)
		logPath := run.LogPath(outputDir, settings.SimName, n)
		if mesh, err := simlog.MeshName(logPath); err == nil {
			if hornLength, err := settings.HornLength(mesh); err == nil {
				velocity, err := metrics.EstimateVelocity(series.V, series.T, hornLength)
				if err != nil {
					fmt.Printf("propagation velocity: %v\n", err)
				} else {
					fmt.Printf("propagation velocity: %.2f mm/s\n", velocity)
				}
			}
		}

		if svgOut != "" {
			var svgSeries []plots.Series
			for j, caption := range []string{"ovarian end", "centre", "cervical end"} {
				svgSeries = append(svgSeries, plots.Series{
					Name:  caption,
					Stage: estrus,
					X:     series.T,
					Y:     series.Column(j),
				})
			}
			path := svgPath(svgOut, n)
			if err := plots.WriteLineChart(path, svgSeries, "time (s)", "amplitude (mV)"); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
		}
	}
	return nil
}

func plotParameter(cmd *cobra.Command, args []string) error {
	metric := args[0]
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	numbers, err := extract.ParseRange(simRange)
	if err != nil {
		return err
	}
	stages, err := stageList(estrus)
	if err != nil {
		return err
	}

	comp := make(map[string][]float64)
	spikes := make(map[string][]float64)
	var values []float64

	for _, stage := range stages {
		root := stageResultsDir(settings.ResultsDir, stage, len(stages) > 1)
		stageValues := make([]float64, 0, len(numbers))

		var baseline *extract.Series
		for _, n := range numbers {
			series, err := loadSeries(settings, root, sweep.Parameter, n)
			if err != nil {
				return err
			}

			outputDir := run.RunDir(root, sweep.Parameter, n)
			logPath := run.LogPath(outputDir, settings.SimName, n)
			value, err := simlog.ParamValue(logPath, paramName)
			if err != nil {
				return err
			}
			stageValues = append(stageValues, value)

			if baseline == nil {
				baseline = series
			}
			d, err := metrics.Compare(baseline.Column(1), series.Column(1), metric, series.T)
			if err != nil {
				return err
			}
			comp[stage] = append(comp[stage], d)

			cervical := metrics.SpikeTimes(series.Column(2), series.T, metrics.DefaultSpikeHeight)
			spikes[stage] = append(spikes[stage], float64(len(cervical)))
		}
		values = stageValues
	}

	if err := plots.ParameterComparison(os.Stdout, comp, values, metric, paramName); err != nil {
		return err
	}
	fmt.Println()
	if err := plots.SpikePropagation(os.Stdout, spikes, values, paramName); err != nil {
		return err
	}

	if svgOut != "" {
		var svgSeries []plots.Series
		for _, stage := range stages {
			svgSeries = append(svgSeries, plots.Series{Name: stage, Stage: stage, X: values, Y: comp[stage]})
		}
		if err := plots.WriteLineChart(svgOut, svgSeries, plots.AxisLabel(paramName), metric); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgOut)
	}
	return nil
}

func plotResolution(cmd *cobra.Command, args []string) error {
	metric := args[0]
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	numbers, err := extract.ParseRange(simRange)
	if err != nil {
		return err
	}
	stages, err := stageList(estrus)
	if err != nil {
		return err
	}

	comp := make(map[string][]float64)
	var elements []float64

	for _, stage := range stages {
		root := stageResultsDir(settings.ResultsDir, stage, len(stages) > 1)
		stageElements := make([]float64, 0, len(numbers))

		// Finest mesh last in range; everything is compared against it.
		finest, err := loadSeries(settings, root, sweep.Resolution, numbers[len(numbers)-1])
		if err != nil {
			return err
		}

		for _, n := range numbers {
			count, err := runElements(settings, root, n)
			if err != nil {
				return err
			}
			stageElements = append(stageElements, float64(count))

			series, err := loadSeries(settings, root, sweep.Resolution, n)
			if err != nil {
				return err
			}
			d, err := metrics.Compare(finest.Column(1), series.Column(1), metric, series.T)
			if err != nil {
				return err
			}
			comp[stage] = append(comp[stage], d)
		}
		elements = stageElements
	}

	if err := plots.Convergence(os.Stdout, comp, elements, metric); err != nil {
		return err
	}

	if svgOut != "" {
		var svgSeries []plots.Series
		for _, stage := range stages {
			svgSeries = append(svgSeries, plots.Series{Name: stage, Stage: stage, X: elements, Y: comp[stage]})
		}
		if err := plots.WriteLineChart(svgOut, svgSeries, "number of elements", metric); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgOut)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	kind, err := sweep.ParseKind(args[0])
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NUM\tDIR\tMESH\tEXTRACTED")

	found := 0
	for n := 1; ; n++ {
		outputDir := run.RunDir(settings.ResultsDir, kind, n)
		if _, err := os.Stat(outputDir); err != nil {
			break
		}
		found++

		mesh := "-"
		logPath := run.LogPath(outputDir, settings.SimName, n)
		if name, err := simlog.MeshName(logPath); err == nil {
			mesh = name
		}

		extracted := "no"
		if _, err := os.Stat(run.ExtractPath(outputDir, settings.SimName, n)); err == nil {
			extracted = "yes"
		}

		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", n, run.RunDirName(kind, n), mesh, extracted)
	}

	if found == 0 {
		fmt.Printf("no %s runs under %s\n", kind, settings.ResultsDir)
		return nil
	}
	return w.Flush()
}

// loadSeries reads one run's extracted data, rebuilds the time vector
// from its log, and reorders columns to ovarian, centre, cervical.
func loadSeries(settings *config.Settings, resultsRoot string, kind sweep.Kind, n int) (*extract.Series, error) {
	outputDir := run.RunDir(resultsRoot, kind, n)
	logPath := run.LogPath(outputDir, settings.SimName, n)
	dataPath := run.ExtractPath(outputDir, settings.SimName, n)

	sep := ','
	if delimiter != "" {
		sep = []rune(delimiter)[0]
	}
	series, err := extract.LoadData(dataPath, logPath, sep)
	if err != nil {
		return nil, err
	}

	mesh, err := simlog.MeshName(logPath)
	if err != nil {
		return nil, err
	}
	points, err := settings.ExtractionPoints(mesh)
	if err != nil {
		return nil, err
	}
	if err := series.Reorder(points); err != nil {
		return nil, err
	}
	return series, nil
}

// dispatchLive runs the dispatcher behind a live view fed from its
// update channel. When the view exits early the sweep is cancelled and
// the channel drained, so a dispatcher blocked on a full buffer can
// still observe the cancellation.
func dispatchLive(ctx context.Context, cancel context.CancelFunc, dispatcher *run.Dispatcher,
	configs []sweep.SimulationConfig, view func(int, <-chan run.Record) error) ([]run.Record, error) {
	updates := make(chan run.Record, 16)
	dispatcher.OnUpdate = func(rec run.Record) { updates <- rec }

	var records []run.Record
	var dispatchErr error
	done := make(chan struct{})
	go func() {
		records, dispatchErr = dispatcher.Dispatch(ctx, configs)
		close(updates)
		close(done)
	}()

	viewErr := view(len(configs), updates)
	cancel()
	for range updates {
	}
	<-done

	if viewErr != nil {
		return records, viewErr
	}
	return records, dispatchErr
}

// runElements looks up the element count of the mesh a run actually
// used, as named in its log.
func runElements(settings *config.Settings, resultsRoot string, n int) (int, error) {
	outputDir := run.RunDir(resultsRoot, sweep.Resolution, n)
	logPath := run.LogPath(outputDir, settings.SimName, n)
	mesh, err := simlog.MeshName(logPath)
	if err != nil {
		return 0, err
	}
	return settings.ElementCount(mesh)
}

// stageList expands the estrus flag: "all" covers the four stages in
// cycle order.
func stageList(flag string) ([]string, error) {
	if flag == "all" {
		return sweep.EstrusStages[:], nil
	}
	for _, stage := range sweep.EstrusStages {
		if stage == flag {
			return []string{stage}, nil
		}
	}
	return nil, fmt.Errorf("unknown estrus stage: %s", flag)
}

// stageResultsDir locates per-stage sweep output. Multi-stage plots
// expect one subdirectory per stage under the results directory.
func stageResultsDir(resultsDir, stage string, multi bool) string {
	if multi {
		return filepath.Join(resultsDir, stage)
	}
	return resultsDir
}

func svgPath(base string, n int) string {
	ext := filepath.Ext(base)
	if ext == "" {
		ext = ".svg"
	}
	return base[:len(base)-len(filepath.Ext(base))] + "_" + strconv.Itoa(n) + ext
}
