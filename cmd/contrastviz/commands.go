package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/contrastviz/internal/animate"
	"github.com/san-kum/contrastviz/internal/batch"
	"github.com/san-kum/contrastviz/internal/config"
	"github.com/san-kum/contrastviz/internal/pipeline"
	"github.com/san-kum/contrastviz/internal/space"
	"github.com/san-kum/contrastviz/internal/storage"
	"github.com/san-kum/contrastviz/internal/viewer"
	"github.com/san-kum/contrastviz/internal/viz"
	"github.com/san-kum/contrastviz/internal/watch"
)

var (
	viewerDir    string
	viewerFrames int
	preview3D    bool
	previewLoop  bool
	previewTheme string
	exportPath   string
	keepGoing    bool
	debounce     time.Duration
)

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// execute runs the pipeline for cfg, recording runs in the configured store.
func execute(ctx context.Context, cfg *config.Config) (*pipeline.Report, error) {
	cat, err := openCatalog()
	if err != nil {
		return nil, fmt.Errorf("open run store: %w", err)
	}
	defer cat.Close()

	p, err := pipeline.New(cfg, pipeline.WithLogger(slog.Default()), pipeline.WithCatalog(cat))
	if err != nil {
		return nil, err
	}
	return p.Run(ctx)
}

func runVisualization(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	ctx, stop := signalContext()
	defer stop()

	printBanner(cfg)
	report, err := execute(ctx, cfg)
	if report != nil {
		printReport(report)
	}
	return err
}

func writeViewer(cmd *cobra.Command, args []string) error {
	n := viewerFrames
	if n == 0 {
		frames, err := animate.CollectFrames(viewerDir)
		if err != nil {
			return err
		}
		n = len(frames)
	}
	if n < 2 {
		return fmt.Errorf("viewer needs at least 2 frames, got %d", n)
	}
	path, err := viewer.WriteFile(context.Background(), viewerDir, viewer.NewPage(n))
	if err != nil {
		return err
	}
	fmt.Printf("%s %s (%d frames)\n", okStyle.Render("viewer written:"), path, n)
	return nil
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	dim, name := 2, cfg.Easing
	if preview3D {
		dim, name = 3, cfg.Ease3D
	}

	gen, err := space.NewGenerator(dim, cfg.Seed)
	if err != nil {
		return err
	}
	sched, err := pipeline.BuildSchedule(cfg.Steps, name, dim)
	if err != nil {
		return err
	}
	frames, err := sched.Frames(gen.Generate())
	if err != nil {
		return err
	}

	return viz.Run(frames, viz.Options{
		Title: fmt.Sprintf("contrastive alignment %dD (%s)", dim, name),
		FPS:   cfg.Anim.GIFFPS,
		Loop:  previewLoop,
		Theme: previewTheme,
	})
}

func listRuns(cmd *cobra.Command, args []string) error {
	cat, err := openCatalog()
	if err != nil {
		return err
	}
	defer cat.Close()

	runs, err := cat.List(context.Background())
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODE\tDIM\tSTEPS\tEASING\tSEED\tTIME\tR@1\tOUTPUT")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%dD\t%d\t%s\t%d\t%s\t%.2f\t%s\n",
			run.ID,
			run.Mode,
			run.Dim,
			run.Steps,
			run.Easing,
			run.Seed,
			run.Timestamp.Local().Format("2006-01-02 15:04:05"),
			run.Metrics["retrieval_at_1"],
			run.Output,
		)
	}
	return w.Flush()
}

func loadRun(id string) (*storage.Run, error) {
	cat, err := openCatalog()
	if err != nil {
		return nil, err
	}
	defer cat.Close()

	run, err := cat.Load(context.Background(), id)
	if errors.Is(err, storage.ErrRunNotFound) {
		return nil, fmt.Errorf("no run %s in %s (%s store)", id, dataDir, storeKind)
	}
	return run, err
}

func showRun(cmd *cobra.Command, args []string) error {
	run, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render("run " + run.ID))
	fmt.Printf("mode: %s (%dD)\n", run.Mode, run.Dim)
	fmt.Printf("steps: %d  easing: %s  seed: %d\n", run.Steps, run.Easing, run.Seed)
	fmt.Printf("time: %s\n", run.Timestamp.Local().Format(time.RFC1123))
	fmt.Printf("output: %s\n", run.Output)

	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(run.Metrics))
	for name := range run.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %-20s %s\n", name, valueStyle.Render(fmt.Sprintf("%.6f", run.Metrics[name])))
	}

	for _, name := range []string{"mean_pair_distance", "retrieval_at_1"} {
		series := run.Series[name]
		if len(series) < 2 {
			continue
		}
		fmt.Println()
		fmt.Println(asciigraph.Plot(series,
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.Caption(name+" by step"),
		))
	}

	if len(run.Artifacts) > 0 {
		fmt.Println("\nartifacts:")
		for _, a := range run.Artifacts {
			fmt.Printf("  %s\n", a)
		}
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	run, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if exportPath == "" {
		return storage.ExportJSON(os.Stdout, run)
	}
	if err := storage.ExportJSONFile(exportPath, run); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", exportPath)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tMODE\tSTEPS\tEASING\tSIZE")
	for _, name := range config.ListPresets() {
		cfg := config.DefaultConfig()
		cfg.ApplyPreset(config.GetPreset(name))
		fmt.Fprintf(w, "%s\t%s\t%d\t%s/%s\t%dx%d\n",
			name, cfg.Mode, cfg.Steps, cfg.Easing, cfg.Ease3D, cfg.Render.Width, cfg.Render.Height)
	}
	return w.Flush()
}

func runBatch(cmd *cobra.Command, args []string) error {
	plan, err := batch.LoadPlan(args[0])
	if err != nil {
		return err
	}
	if keepGoing {
		plan.KeepGoing = true
	}

	base := config.DefaultConfig()
	if err := base.ApplyEnv(); err != nil {
		return fmt.Errorf("environment: %w", err)
	}

	ctx, stop := signalContext()
	defer stop()

	if plan.Name != "" {
		fmt.Println(titleStyle.Render(plan.Name))
	}
	results, err := batch.Run(ctx, plan, base, execute, slog.Default())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "JOB\tMODE\tSTEPS\tSTATUS\tELAPSED")
	for _, r := range results {
		status, elapsed := okStyle.Render("ok"), "-"
		if r.Err != nil {
			status = errorStyle.Render("failed")
		}
		if r.Report != nil {
			elapsed = r.Report.Elapsed.Round(time.Millisecond).String()
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", r.Name, r.Config.Mode, r.Config.Steps, status, elapsed)
	}
	if ferr := w.Flush(); ferr != nil && err == nil {
		err = ferr
	}
	return err
}

func runWatch(cmd *cobra.Command, args []string) error {
	path := args[0]
	w, err := watch.New(path, debounce, slog.Default())
	if err != nil {
		return err
	}
	defer w.Close()

	ctx, stop := signalContext()
	defer stop()

	fmt.Printf("watching %s (ctrl-c to stop)\n", path)
	return w.Run(ctx, func(ctx context.Context) error {
		cfg, err := config.Load(path, nil)
		if err != nil {
			return err
		}
		if err := cfg.ApplyEnv(); err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		report, err := execute(ctx, cfg)
		if report != nil {
			printReport(report)
		}
		return err
	})
}
