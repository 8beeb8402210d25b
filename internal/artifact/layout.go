// Package artifact names the files a run writes into its output directory.
package artifact

import (
	"fmt"
	"path/filepath"
	"strconv"
)

const (
	FramePrefix  = "step_"
	FrameExt     = ".png"
	CombinedName = "combined_space.png"
	ViewerName   = "interactive_viewer.html"
	ManifestName = "manifest.json"
	MetricsName  = "metrics.prom"
	framePattern = FramePrefix + "*" + FrameExt
	gifName2D    = "contrastive_learning_animation.gif"
	gifName3D    = "contrastive_learning_3d.gif"
	mp4Name2D    = "contrastive_learning.mp4"
	mp4Name3D    = "contrastive_learning_3d.mp4"
	svgExt       = ".svg"
)

// Layout maps artifact kinds to paths under Dir for a run of Steps steps.
type Layout struct {
	Dir   string
	Steps int
	Dim   int
}

func New(dir string, steps, dim int) Layout {
	return Layout{Dir: dir, Steps: steps, Dim: dim}
}

// Digits is the zero-padding width of frame numbers: the decimal length of
// the step count.
func (l Layout) Digits() int {
	return Digits(l.Steps)
}

// Digits returns len(str(n)).
func Digits(n int) int {
	return len(strconv.Itoa(n))
}

func (l Layout) FrameName(k int) string {
	return fmt.Sprintf("%s%0*d%s", FramePrefix, l.Digits(), k, FrameExt)
}

func (l Layout) FramePath(k int) string {
	return filepath.Join(l.Dir, l.FrameName(k))
}

func (l Layout) SVGPath(k int) string {
	return filepath.Join(l.Dir, fmt.Sprintf("%s%0*d%s", FramePrefix, l.Digits(), k, svgExt))
}

// FramePattern is the glob matching every frame file.
func (l Layout) FramePattern() string {
	return framePattern
}

func (l Layout) CombinedPath() string { return filepath.Join(l.Dir, CombinedName) }
func (l Layout) ViewerPath() string   { return filepath.Join(l.Dir, ViewerName) }
func (l Layout) ManifestPath() string { return filepath.Join(l.Dir, ManifestName) }
func (l Layout) MetricsPath() string  { return filepath.Join(l.Dir, MetricsName) }

func (l Layout) GIFPath() string {
	if l.Dim == 3 {
		return filepath.Join(l.Dir, gifName3D)
	}
	return filepath.Join(l.Dir, gifName2D)
}

func (l Layout) MP4Path() string {
	if l.Dim == 3 {
		return filepath.Join(l.Dir, mp4Name3D)
	}
	return filepath.Join(l.Dir, mp4Name2D)
}
