package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/wavesim/internal/analysis"
	"github.com/san-kum/wavesim/internal/config"
	"github.com/san-kum/wavesim/internal/engine"
	"github.com/san-kum/wavesim/internal/export"
	"github.com/san-kum/wavesim/internal/snapshot"
	"github.com/san-kum/wavesim/internal/stencil"
	"github.com/san-kum/wavesim/internal/storage"
	"github.com/san-kum/wavesim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	rows       int
	cols       int
	spacing    float64
	velocity   float64
	density    float64
	order      int
	dt         float64
	steps      int
	cadence    int
	boundKind  string
	freq       float64
	recvRow    int
	recvCol    int
	// view/export options
	frameIdx int
	svgScale float64
	outPath  string
	termW    int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "wavesim",
		Short: "2d acoustic wave propagation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".wavesim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation",
		RunE:  runSimulation,
	}
	addScenarioFlags(runCmd)
	runCmd.Flags().IntVar(&recvRow, "receiver-row", -1, "receiver row (-1 disables)")
	runCmd.Flags().IntVar(&recvCol, "receiver-col", -1, "receiver col (-1 disables)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot per-frame field rms",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of the receiver trace",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	viewCmd := &cobra.Command{
		Use:   "view [run_id]",
		Short: "render one recorded frame as ascii",
		Args:  cobra.ExactArgs(1),
		RunE:  viewRun,
	}
	viewCmd.Flags().IntVar(&frameIdx, "frame", -1, "frame index (-1 for last)")
	viewCmd.Flags().IntVar(&termW, "width", 100, "output width in characters")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with live terminal visualization",
		RunE:  runLive,
	}
	addScenarioFlags(liveCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVar(&outPath, "out", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export one frame as an SVG heatmap",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&frameIdx, "frame", -1, "frame index (-1 for last)")
	exportSVGCmd.Flags().Float64Var(&svgScale, "scale", 2, "pixels per grid cell")
	exportSVGCmd.Flags().StringVar(&outPath, "out", "frame.svg", "output file")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, analyzeCmd, viewCmd, liveCmd, presetsCmd, exportJSONCmd, exportSVGCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().IntVar(&rows, "rows", config.DefaultRows, "grid rows")
	cmd.Flags().IntVar(&cols, "cols", config.DefaultCols, "grid cols")
	cmd.Flags().Float64Var(&spacing, "spacing", config.DefaultSpacing, "grid spacing (m)")
	cmd.Flags().Float64Var(&velocity, "velocity", config.DefaultVel, "wave velocity (m/s)")
	cmd.Flags().Float64Var(&density, "density", config.DefaultDensity, "medium density (kg/m3)")
	cmd.Flags().IntVar(&order, "order", config.DefaultOrder, "stencil order (2 or 4)")
	cmd.Flags().Float64Var(&dt, "dt", 0, "timestep (0 derives a stable value)")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of time steps")
	cmd.Flags().IntVar(&cadence, "cadence", config.DefaultCadence, "snapshot every n steps")
	cmd.Flags().StringVar(&boundKind, "boundary", "", "boundary kind (damping, rigid, periodic)")
	cmd.Flags().Float64Var(&freq, "freq", config.DefaultFreq, "source frequency (hz)")
}

// loadScenario resolves preset, config file, and flag overrides, in that
// order of increasing precedence.
func loadScenario(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p, err := config.GetPreset(preset)
		if err != nil {
			return nil, fmt.Errorf("%w (available: %v)", err, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		c, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	}

	flags := cmd.Flags()
	if flags.Changed("rows") {
		cfg.Grid.Rows = rows
	}
	if flags.Changed("cols") {
		cfg.Grid.Cols = cols
	}
	if flags.Changed("spacing") {
		cfg.Grid.Spacing = spacing
	}
	if flags.Changed("velocity") {
		cfg.Medium.Layers = nil
		cfg.Medium.Velocity = velocity
		if cfg.Medium.Density == 0 {
			cfg.Medium.Density = config.DefaultDensity
		}
	}
	if flags.Changed("density") {
		cfg.Medium.Layers = nil
		cfg.Medium.Density = density
		if cfg.Medium.Velocity == 0 {
			cfg.Medium.Velocity = config.DefaultVel
		}
	}
	if flags.Changed("order") {
		cfg.Order = order
	}
	if flags.Changed("dt") {
		cfg.Time.Dt = dt
	}
	if flags.Changed("steps") {
		cfg.Time.Steps = steps
	}
	if flags.Changed("cadence") {
		cfg.Time.Cadence = cadence
	}
	if flags.Changed("boundary") {
		cfg.Boundary.Kind = boundKind
	}
	if flags.Changed("freq") {
		for i := range cfg.Sources {
			cfg.Sources[i].Freq = freq
		}
	}
	return cfg, nil
}

func buildEngine(cfg *config.Config) (*engine.Engine, error) {
	med, err := cfg.BuildMedium()
	if err != nil {
		return nil, err
	}

	coef, err := stencil.New(cfg.Order)
	if err != nil {
		return nil, err
	}

	bc, err := cfg.BuildBoundary()
	if err != nil {
		return nil, err
	}

	eng, err := engine.New(med, coef, bc, cfg.Time.Dt)
	if err != nil {
		return nil, err
	}

	for _, s := range cfg.Sources {
		w, err := config.BuildWavelet(s)
		if err != nil {
			return nil, err
		}
		if _, err := eng.AddSource(s.Row, s.Col, w); err != nil {
			return nil, err
		}
	}
	return eng, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd)
	if err != nil {
		return err
	}

	eng, err := buildEngine(cfg)
	if err != nil {
		return err
	}

	var recv *engine.Receiver
	if recvRow >= 0 && recvCol >= 0 {
		recv, err = engine.NewReceiver(eng.Grid(), recvRow, recvCol)
		if err != nil {
			return err
		}
		eng.AddObserver(recv)
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("running %dx%d grid, order %d, dt=%.6gs...\n",
		cfg.Grid.Rows, cfg.Grid.Cols, cfg.Order, eng.Dt())
	start := time.Now()

	result, err := eng.Run(context.Background(), cfg.Time.Steps, cfg.Time.Cadence)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	meta := storage.RunMetadata{
		Rows:     cfg.Grid.Rows,
		Cols:     cfg.Grid.Cols,
		Spacing:  cfg.Grid.Spacing,
		Dt:       eng.Dt(),
		Steps:    result.StepsTaken,
		Cadence:  cfg.Time.Cadence,
		Order:    cfg.Order,
		Boundary: cfg.Boundary.Kind,
	}
	runID, err := st.Save(meta, result.Frames)
	if err != nil {
		return err
	}

	if recv != nil {
		times, samples := recv.Trace()
		if err := st.SaveTrace(runID, "trace_0", times, samples); err != nil {
			return err
		}
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Printf("frames: %d\n", result.Frames.Len())
	fmt.Printf("final rms: %.6e\n", eng.RMS())
	fmt.Printf("final energy: %.6e\n", eng.Energy())

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
	fmt.Fprintln(w, "ID\tTIME\tGRID\tDT\tSTEPS\tFRAMES\tORDER\tBOUNDARY")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%dx%d\t%.6gs\t%d\t%d\t%d\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Rows,
			run.Cols,
			run.Dt,
			run.Steps,
			run.Frames,
			run.Order,
			run.Boundary,
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

	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no frames to plot")
	}

	data := make([][]float64, len(frames))
	for i, f := range frames {
		data[i] = f.Data
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("frames: %d\n\n", len(frames))

	graph := asciigraph.Plot(analysis.FrameRMS(data),
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("field rms per frame"),
	)
	fmt.Println(graph)

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	_, samples, err := st.LoadTrace(runID, "trace_0")
	if err != nil {
		return fmt.Errorf("no receiver trace for run %s (re-run with --receiver-row/--receiver-col): %w", runID, err)
	}

	sp, err := analysis.PowerSpectrum(samples, meta.Dt)
	if err != nil {
		return err
	}

	fmt.Printf("frequency analysis: %s\n\n", meta.ID)

	plotData := sp.Power[:len(sp.Power)/4]
	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum"),
	)
	fmt.Println(graph)
	fmt.Println()

	dom := sp.Dominant()
	fmt.Printf("dominant frequency: %.3f hz\n", dom)
	if dom > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/dom)
	}

	return nil
}

func pickFrame(frames []snapshot.Frame, idx int) (snapshot.Frame, error) {
	if len(frames) == 0 {
		return snapshot.Frame{}, fmt.Errorf("run has no frames")
	}
	if idx < 0 {
		return frames[len(frames)-1], nil
	}
	if idx >= len(frames) {
		return snapshot.Frame{}, fmt.Errorf("frame index %d out of range (have %d)", idx, len(frames))
	}
	return frames[idx], nil
}

func viewRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	frame, err := pickFrame(frames, frameIdx)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s  step: %d  t=%.6gs\n\n", meta.ID, frame.Step, float64(frame.Step)*meta.Dt)
	fmt.Print(viz.RenderFrame(frame.Data, meta.Rows, meta.Cols, termW))
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd)
	if err != nil {
		return err
	}

	eng, err := buildEngine(cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(viz.NewModel(eng))
	if _, err := p.Run(); err != nil {
		return err
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

	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	if outPath == "" {
		return export.WriteJSON(os.Stdout, *meta, frames)
	}
	return export.ExportJSON(outPath, *meta, frames)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	frame, err := pickFrame(frames, frameIdx)
	if err != nil {
		return err
	}

	if err := export.ExportSVG(outPath, frame.Data, meta.Rows, meta.Cols, svgScale); err != nil {
		return err
	}
	fmt.Printf("wrote %s (step %d)\n", outPath, frame.Step)
	return nil
}
