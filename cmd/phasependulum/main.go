package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/san-kum/phasependulum/internal/config"
	"github.com/san-kum/phasependulum/internal/dynamo"
	"github.com/san-kum/phasependulum/internal/export"
	"github.com/san-kum/phasependulum/internal/field"
	"github.com/san-kum/phasependulum/internal/integrators"
	"github.com/san-kum/phasependulum/internal/metrics"
	"github.com/san-kum/phasependulum/internal/physics"
	"github.com/san-kum/phasependulum/internal/sim"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configFile string
	preset     string
	format     string
	verbose    bool
	saveConfig string
	overrides  []string

	gravity  float64
	length   float64
	damping  float64
	angle    float64
	velocity float64
	delta    float64
	steps    int

	integrateSteps int

	minAngle    float64
	maxAngle    float64
	minVelocity float64
	maxVelocity float64
	plot        bool

	height      float64
	interval    float64
	fieldRange  float64
	vectorScale float64
	colorScale  float64

	logger = zap.NewNop()

	trajectories = sim.NewTrajectoryPool(sim.DefaultSteps)
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "phasependulum",
		Short:        "damped pendulum phase portrait engine",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !verbose {
				logger = zap.NewNop()
				return nil
			}
			l, err := zap.NewDevelopment()
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&format, "format", "table", "output format: table, csv or json")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log to stderr")
	rootCmd.PersistentFlags().StringVar(&saveConfig, "save-config", "", "write the resolved configuration to this path")
	rootCmd.PersistentFlags().StringArrayVar(&overrides, "set", nil, "override a parameter by name (name=value, repeatable)")

	integrateCmd := &cobra.Command{
		Use:   "integrate",
		Short: "advance a state by RK4 steps",
		Args:  cobra.NoArgs,
		RunE:  runIntegrate,
	}
	stateFlags(integrateCmd)
	integrateCmd.Flags().IntVar(&integrateSteps, "steps", 1, "number of steps")

	propagateCmd := &cobra.Command{
		Use:   "propagate",
		Short: "propagate a bounded phase-space trajectory",
		Args:  cobra.NoArgs,
		RunE:  runPropagate,
	}
	stateFlags(propagateCmd)
	propagateCmd.Flags().IntVar(&steps, "steps", sim.DefaultSteps, "maximum number of steps")
	propagateCmd.Flags().Float64Var(&minAngle, "min-angle", math.Inf(-1), "stop when angle <= value")
	propagateCmd.Flags().Float64Var(&maxAngle, "max-angle", math.Inf(1), "stop when angle >= value")
	propagateCmd.Flags().Float64Var(&minVelocity, "min-velocity", math.Inf(-1), "stop when velocity <= value")
	propagateCmd.Flags().Float64Var(&maxVelocity, "max-velocity", math.Inf(1), "stop when velocity >= value")
	propagateCmd.Flags().BoolVar(&plot, "plot", false, "plot angle and velocity (table format)")

	separatrixCmd := &cobra.Command{
		Use:   "separatrix",
		Short: "propagate the two limiting curves through the upright equilibrium",
		Args:  cobra.NoArgs,
		RunE:  runSeparatrix,
	}
	paramFlags(separatrixCmd)
	separatrixCmd.Flags().Float64Var(&delta, "delta", sim.DefaultDelta, "step size")
	separatrixCmd.Flags().IntVar(&steps, "steps", sim.DefaultSteps, "maximum number of steps")

	fieldCmd := &cobra.Command{
		Use:   "field",
		Short: "sample the phase-space vector field",
		Args:  cobra.NoArgs,
		RunE:  runField,
	}
	paramFlags(fieldCmd)
	fieldCmd.Flags().Float64Var(&height, "height", config.DefaultHeight, "plot height in plot units")
	fieldCmd.Flags().Float64Var(&interval, "interval", config.DefaultInterval, "spacing between arrows")
	fieldCmd.Flags().Float64Var(&fieldRange, "range", config.DefaultRange, "model-space extent of the grid")
	fieldCmd.Flags().Float64Var(&vectorScale, "vector-scale", config.DefaultVectorScale, "arrow length factor")
	fieldCmd.Flags().Float64Var(&colorScale, "color-scale", config.DefaultColorScale, "magnitude to color factor")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(out, "%-10s gravity=%g length=%g damping=%g angle=%.4f velocity=%g\n",
					name, p.Params.Gravity, p.Params.Length, p.Params.Damping,
					p.InitState.Angle, p.InitState.Velocity)
			}
			return nil
		},
	}

	rootCmd.AddCommand(integrateCmd, propagateCmd, separatrixCmd, fieldCmd, presetsCmd)
	return rootCmd
}

func paramFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&gravity, "gravity", config.DefaultGravity, "gravitational acceleration")
	cmd.Flags().Float64Var(&length, "length", config.DefaultLength, "pendulum length")
	cmd.Flags().Float64Var(&damping, "damping", config.DefaultDamping, "damping coefficient")
}

func stateFlags(cmd *cobra.Command) {
	paramFlags(cmd)
	cmd.Flags().Float64Var(&angle, "angle", config.DefaultAngle, "initial angle (rad)")
	cmd.Flags().Float64Var(&velocity, "velocity", 0, "initial angular velocity (rad/t)")
	cmd.Flags().Float64Var(&delta, "delta", sim.DefaultDelta, "step size")
}

// loadConfig layers defaults, config file, preset and explicitly set flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	flags := cmd.Flags()
	if flags.Changed("gravity") {
		cfg.Params.Gravity = gravity
	}
	if flags.Changed("length") {
		cfg.Params.Length = length
	}
	if flags.Changed("damping") {
		cfg.Params.Damping = damping
	}
	if flags.Changed("angle") {
		cfg.InitState.Angle = angle
	}
	if flags.Changed("velocity") {
		cfg.InitState.Velocity = velocity
	}
	if flags.Changed("delta") {
		cfg.Propagation.Delta = delta
	}
	if flags.Changed("steps") && cmd.Name() != "integrate" {
		cfg.Propagation.Steps = steps
	}
	if flags.Changed("height") {
		cfg.Field.Height = height
	}
	if flags.Changed("interval") {
		cfg.Field.Interval = interval
	}
	if flags.Changed("range") {
		cfg.Field.Range = fieldRange
	}
	if flags.Changed("vector-scale") {
		cfg.Field.VectorScale = vectorScale
	}
	if flags.Changed("color-scale") {
		cfg.Field.ColorScale = colorScale
	}

	for _, kv := range overrides {
		if err := applyOverride(&cfg.Params, kv); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if saveConfig != "" {
		if err := config.Save(saveConfig, cfg); err != nil {
			return nil, fmt.Errorf("save config: %w", err)
		}
		logger.Info("saved configuration", zap.String("path", saveConfig))
	}

	fields := []zap.Field{zap.String("command", cmd.Name())}
	for name, v := range cfg.Params.GetParams() {
		fields = append(fields, zap.Float64(name, v))
	}
	fields = append(fields,
		zap.Float64("angle", cfg.InitState.Angle),
		zap.Float64("velocity", cfg.InitState.Velocity),
		zap.Float64("delta", cfg.Propagation.Delta),
		zap.Int("steps", cfg.Propagation.Steps),
	)
	logger.Debug("configuration", fields...)
	return cfg, nil
}

// applyOverride parses one name=value pair from --set.
func applyOverride(p *dynamo.Params, kv string) error {
	name, raw, ok := strings.Cut(kv, "=")
	if !ok {
		return fmt.Errorf("invalid --set %q: want name=value", kv)
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return fmt.Errorf("invalid --set %q: %w", kv, err)
	}
	return p.SetParam(strings.TrimSpace(name), value)
}

func checkFormat() error {
	switch format {
	case "table", "csv", "json":
		return nil
	default:
		return fmt.Errorf("unknown format: %s (want table, csv or json)", format)
	}
}

func runIntegrate(cmd *cobra.Command, args []string) error {
	if err := checkFormat(); err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	d, err := physics.Configure(cfg.Params)
	if err != nil {
		return err
	}

	results, err := integrators.NewStepper(d, cfg.Propagation.Delta).Advance(cfg.State(), integrateSteps)
	if err != nil {
		return err
	}
	logger.Info("integrated", zap.Int("steps", len(results)))

	out := cmd.OutOrStdout()
	switch format {
	case "csv":
		return export.WriteResultsCSV(out, results)
	case "json":
		doc := export.NewDocument(export.KindIntegration, cfg.Params)
		doc.Delta = cfg.Propagation.Delta
		doc.Steps = integrateSteps
		doc.AddResults(results)
		return export.WriteJSON(out, doc)
	}

	rows := []export.Row{
		{Label: "start", Value: cfg.State().String()},
		{Label: "steps", Value: strconv.Itoa(len(results))},
	}
	if n := len(results); n > 0 {
		last := results[n-1]
		rows = append(rows,
			export.Row{Label: "angle", Value: formatFloat(last.Angle)},
			export.Row{Label: "velocity", Value: formatFloat(last.Velocity)},
			export.Row{Label: "acceleration", Value: formatFloat(last.Acceleration)},
			export.Row{Label: "energy", Value: formatFloat(d.Energy(last.State))},
		)
	}
	return writeLine(out, export.Summary("integrate", rows))
}

func runPropagate(cmd *cobra.Command, args []string) error {
	if err := checkFormat(); err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	d, err := physics.Configure(cfg.Params)
	if err != nil {
		return err
	}

	box := sim.Box{MinAngle: minAngle, MaxAngle: maxAngle, MinVelocity: minVelocity, MaxVelocity: maxVelocity}
	traj, err := trajectories.Propagate(cfg.State(), d, cfg.Propagation, box)
	if err != nil {
		return err
	}
	defer trajectories.Put(traj)
	drift := metrics.Drift(d, traj)
	logger.Info("propagated",
		zap.Int("points", len(traj)),
		zap.Int("max_steps", cfg.Propagation.Steps),
		zap.Bool("valid", traj.IsValid()),
	)

	out := cmd.OutOrStdout()
	switch format {
	case "csv":
		return export.WriteTrajectoryCSV(out, traj)
	case "json":
		doc := export.NewDocument(export.KindTrajectory, cfg.Params)
		doc.Delta = cfg.Propagation.Delta
		doc.Steps = cfg.Propagation.Steps
		doc.AddTrajectory(traj)
		doc.Drift = append(doc.Drift, drift)
		return export.WriteJSON(out, doc)
	}

	rows := []export.Row{
		{Label: "start", Value: cfg.State().String()},
		{Label: "points", Value: fmt.Sprintf("%d / %d", len(traj), cfg.Propagation.Steps)},
		{Label: "energy drift", Value: formatFloat(drift.MaxAbs)},
		{Label: "mean energy", Value: formatFloat(metrics.Mean(d, traj))},
		{Label: "rotates", Value: strconv.FormatBool(d.Rotates(cfg.State()))},
	}
	if last, ok := traj.Last(); ok {
		rows = append(rows, export.Row{Label: "last", Value: dynamo.State{Angle: last.X, Velocity: last.Y}.String()})
	}
	if err := writeLine(out, export.Summary("propagate", rows)); err != nil {
		return err
	}
	if plot {
		return writeLine(out, export.PlotTrajectory(traj, 80, 12, "angle (blue) / velocity (red)"))
	}
	return nil
}

func runSeparatrix(cmd *cobra.Command, args []string) error {
	if err := checkFormat(); err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	d, err := physics.Configure(cfg.Params)
	if err != nil {
		return err
	}

	curves, err := sim.Separatrices(cmd.Context(), d, cfg.Propagation)
	if err != nil {
		return err
	}
	logger.Info("separatrices",
		zap.Int("upper", len(curves[0])),
		zap.Int("lower", len(curves[1])),
	)

	out := cmd.OutOrStdout()
	switch format {
	case "csv":
		return export.WriteTrajectoryCSV(out, curves[:]...)
	case "json":
		doc := export.NewDocument(export.KindSeparatrix, cfg.Params)
		doc.Delta = cfg.Propagation.Delta
		doc.Steps = cfg.Propagation.Steps
		for _, c := range curves {
			doc.AddTrajectory(c)
			doc.Drift = append(doc.Drift, metrics.Drift(d, c))
		}
		return export.WriteJSON(out, doc)
	}

	rows := []export.Row{
		{Label: "separatrix energy", Value: formatFloat(d.SeparatrixEnergy())},
		{Label: "upper points", Value: strconv.Itoa(len(curves[0]))},
		{Label: "lower points", Value: strconv.Itoa(len(curves[1]))},
	}
	return writeLine(out, export.Summary("separatrix", rows))
}

func runField(cmd *cobra.Command, args []string) error {
	if err := checkFormat(); err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	d, err := physics.Configure(cfg.Params)
	if err != nil {
		return err
	}

	gridSteps, err := field.GridSteps(cfg.Field.Height, cfg.Field.Interval)
	if err != nil {
		return err
	}
	scale := field.PlotScale(cfg.Field.Height)
	samples, err := field.NewSampler().Sample(d.Vector, gridSteps, cfg.Field.Range, scale)
	if err != nil {
		return err
	}
	logger.Info("sampled field",
		zap.Int("grid_steps", gridSteps),
		zap.Int("samples", len(samples)),
		zap.Stringer("scale", scale),
	)

	out := cmd.OutOrStdout()
	switch format {
	case "csv":
		return export.WriteFieldCSV(out, samples, cfg.Field.VectorScale, cfg.Field.ColorScale)
	case "json":
		doc := export.NewDocument(export.KindField, cfg.Params)
		doc.GridSteps = gridSteps
		doc.AddSamples(samples, cfg.Field.VectorScale, cfg.Field.ColorScale)
		return export.WriteJSON(out, doc)
	}

	maxNorm := 0.0
	for _, s := range samples {
		maxNorm = math.Max(maxNorm, math.Hypot(s.Vector.X, s.Vector.Y))
	}
	rows := []export.Row{
		{Label: "grid steps", Value: strconv.Itoa(gridSteps)},
		{Label: "samples", Value: strconv.Itoa(len(samples))},
		{Label: "tile size", Value: formatFloat(field.RepeatSize(scale, cfg.Field.Range))},
		{Label: "max magnitude", Value: formatFloat(maxNorm)},
	}
	return writeLine(out, export.Summary("field", rows))
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

func writeLine(w io.Writer, s string) error {
	_, err := fmt.Fprintln(w, s)
	return err
}
