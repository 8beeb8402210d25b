package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/san-kum/contrastviz/internal/config"
	"github.com/san-kum/contrastviz/internal/storage"
	"github.com/san-kum/contrastviz/internal/storage/sqlite"
)

var (
	dataDir   string
	storeKind string
	logLevel  string
	logFormat string

	// Shared by run, preview, batch and watch.
	configFile string
	preset     string
	mode       string
	steps      int
	output     string
	easing     string
	easing3D   string
	seed       int64
	fps        int
	gifFPS     int
	width      int
	height     int
	svg        bool
	noMP4      bool
	ffmpeg     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "contrastviz",
		Short:         "visualize contrastive alignment of image and text embedding spaces",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// A missing .env is normal.
			_ = godotenv.Load()
			return setupLogging()
		},
	}
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".contrastviz", "run store directory")
	pf.StringVar(&storeKind, "store", "fs", "run store backend (fs|sqlite)")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug|info|warn|error)")
	pf.StringVar(&logFormat, "log-format", "text", "log format (text|json)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "render frames, animations and the viewer",
		Args:  cobra.NoArgs,
		RunE:  runVisualization,
	}
	addConfigFlags(runCmd)

	viewerCmd := &cobra.Command{
		Use:   "viewer",
		Short: "write only the interactive HTML viewer",
		Args:  cobra.NoArgs,
		RunE:  writeViewer,
	}
	viewerCmd.Flags().StringVar(&viewerDir, "output", ".", "directory holding the frames")
	viewerCmd.Flags().IntVar(&viewerFrames, "frames", 0, "number of frames (default: count step_*.png in --output)")

	previewCmd := &cobra.Command{
		Use:   "preview",
		Short: "play the alignment schedule in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runPreview,
	}
	addConfigFlags(previewCmd)
	previewCmd.Flags().BoolVar(&preview3D, "3d", false, "preview the 3D schedule")
	previewCmd.Flags().BoolVar(&previewLoop, "loop", false, "loop playback")
	previewCmd.Flags().StringVar(&previewTheme, "theme", "classic", "color theme")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show run metrics and convergence",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run record to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&exportPath, "out", "o", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	batchCmd := &cobra.Command{
		Use:   "batch [file.yaml]",
		Short: "run a list of jobs",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}
	batchCmd.Flags().BoolVar(&keepGoing, "keep-going", false, "continue after a failed job")

	watchCmd := &cobra.Command{
		Use:   "watch [config.yaml]",
		Short: "re-run whenever the config file changes",
		Args:  cobra.ExactArgs(1),
		RunE:  runWatch,
	}
	watchCmd.Flags().DurationVar(&debounce, "debounce", 0, "wait this long after the last change")

	rootCmd.AddCommand(runCmd, viewerCmd, previewCmd, listCmd, showCmd, exportJSONCmd, presetsCmd, batchCmd, watchCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error:"), err)
		os.Exit(1)
	}
}

func addConfigFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
	f.StringVar(&mode, "mode", "all", "what to produce ("+strings.Join(config.Modes, "|")+")")
	f.IntVar(&steps, "steps", config.DefaultSteps, "interpolation steps N (N+1 frames)")
	f.StringVar(&output, "output", config.DefaultOutput, "output prefix; parts go to <prefix>_static, _3d, _html")
	f.StringVar(&easing, "easing", config.DefaultEasing, "2D easing (linear|cubic)")
	f.StringVar(&easing3D, "easing-3d", config.DefaultEasing3D, "3D easing (linear|cubic)")
	f.Int64Var(&seed, "seed", config.DefaultSeed, "random seed")
	f.IntVar(&fps, "fps", config.DefaultFPS, "mp4 frame rate")
	f.IntVar(&gifFPS, "gif-fps", config.DefaultGIFFPS, "gif frame rate")
	f.IntVar(&width, "width", config.DefaultWidth, "frame width in pixels")
	f.IntVar(&height, "height", config.DefaultHeight, "frame height in pixels")
	f.BoolVar(&svg, "svg", false, "also write SVG frames")
	f.BoolVar(&noMP4, "no-mp4", false, "skip the mp4 encoder")
	f.StringVar(&ffmpeg, "ffmpeg", config.DefaultFFmpeg, "ffmpeg binary")
}

// buildConfig applies defaults, preset, config file, environment and then
// the flags the user actually set, in that order.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg.ApplyPreset(p)
	}

	if configFile != "" {
		if _, err := config.Load(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}

	f := cmd.Flags()
	if f.Changed("mode") {
		cfg.Mode = mode
	}
	if f.Changed("steps") {
		cfg.Steps = steps
	}
	if f.Changed("output") {
		cfg.Output = output
	}
	if f.Changed("easing") {
		cfg.Easing = easing
	}
	if f.Changed("easing-3d") {
		cfg.Ease3D = easing3D
	}
	if f.Changed("seed") {
		cfg.Seed = seed
	}
	if f.Changed("fps") {
		cfg.Anim.MP4FPS = fps
	}
	if f.Changed("gif-fps") {
		cfg.Anim.GIFFPS = gifFPS
	}
	if f.Changed("width") {
		cfg.Render.Width = width
	}
	if f.Changed("height") {
		cfg.Render.Height = height
	}
	if f.Changed("svg") {
		cfg.Render.SVG = svg
	}
	if f.Changed("no-mp4") {
		cfg.Anim.MP4 = !noMP4
	}
	if f.Changed("ffmpeg") {
		cfg.Anim.FFmpeg = ffmpeg
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setupLogging() error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return fmt.Errorf("invalid --log-level %q", logLevel)
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch logFormat {
	case "text":
		handler = slog.NewTextHandler(os.Stderr, opts)
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	default:
		return fmt.Errorf("invalid --log-format %q (text|json)", logFormat)
	}
	slog.SetDefault(slog.New(handler))
	return nil
}

func openCatalog() (storage.Catalog, error) {
	var cat storage.Catalog
	switch storeKind {
	case "fs":
		cat = storage.New(dataDir)
	case "sqlite":
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return nil, err
		}
		st, err := sqlite.Open(filepath.Join(dataDir, "runs.db"))
		if err != nil {
			return nil, err
		}
		cat = st
	default:
		return nil, fmt.Errorf("unknown store: %s (fs|sqlite)", storeKind)
	}
	if err := cat.Init(); err != nil {
		cat.Close()
		return nil, err
	}
	return cat, nil
}
