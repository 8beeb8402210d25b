package main

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/contrastviz/internal/config"
	"github.com/san-kum/contrastviz/internal/pipeline"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88")).Bold(true)
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffaa00")).Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444")).Bold(true)
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(0, 2)
)

func printBanner(cfg *config.Config) {
	row := func(label, value string) string {
		return labelStyle.Render(label) + valueStyle.Render(value)
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("CONTRASTIVE LEARNING VISUALIZATION"),
		"",
		row("mode", cfg.Mode),
		row("steps", fmt.Sprintf("%d (%d frames)", cfg.Steps, cfg.Steps+1)),
		row("easing", fmt.Sprintf("%s, 3d %s", cfg.Easing, cfg.Ease3D)),
		row("seed", fmt.Sprint(cfg.Seed)),
		row("size", fmt.Sprintf("%dx%d", cfg.Render.Width, cfg.Render.Height)),
		row("output", cfg.Output+"_*"),
	)
	fmt.Println(boxStyle.Render(body))
}

func printReport(r *pipeline.Report) {
	for _, part := range r.Parts {
		fmt.Printf("\n%s %s\n", titleStyle.Render(part.Name), valueStyle.Render(part.Dir))
		fmt.Printf("  %s%d\n", labelStyle.Render("frames"), part.Frames)
		if len(part.Elapsed) > 0 {
			var total time.Duration
			for _, d := range part.Elapsed {
				total += d
			}
			fmt.Printf("  %s%v\n", labelStyle.Render("per frame"), (total / time.Duration(len(part.Elapsed))).Round(time.Millisecond))
		}
		if part.RunID != "" {
			fmt.Printf("  %s%s\n", labelStyle.Render("run id"), part.RunID)
		}

		names := make([]string, 0, len(part.Metrics))
		for name := range part.Metrics {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("  %s%.4f\n", labelStyle.Width(22).Render(name), part.Metrics[name])
		}

		for _, a := range part.Artifacts {
			ext := filepath.Ext(a)
			if ext == ".gif" || ext == ".mp4" || ext == ".html" {
				fmt.Printf("  %s %s\n", okStyle.Render("✓"), a)
			}
		}
		for enc, reason := range part.Skipped {
			fmt.Printf("  %s %s skipped: %v\n", warnStyle.Render("!"), enc, reason)
		}
	}
	fmt.Printf("\ncompleted in %v\n", r.Elapsed.Round(time.Millisecond))
}
