package artifact

import (
	"path/filepath"
	"testing"
)

func TestFrameNamesArePadded(t *testing.T) {
	tests := []struct {
		steps int
		k     int
		want  string
	}{
		{4, 0, "step_0.png"},
		{4, 4, "step_4.png"},
		{10, 3, "step_03.png"},
		{100, 0, "step_000.png"},
		{100, 57, "step_057.png"},
		{100, 100, "step_100.png"},
	}

	for _, tt := range tests {
		l := New("out", tt.steps, 2)
		if got := l.FrameName(tt.k); got != tt.want {
			t.Errorf("steps=%d k=%d: got %s, want %s", tt.steps, tt.k, got, tt.want)
		}
	}
}

func TestAnimationNamesFollowDimension(t *testing.T) {
	flat := New("out", 10, 2)
	deep := New("out", 10, 3)

	if got := filepath.Base(flat.GIFPath()); got != "contrastive_learning_animation.gif" {
		t.Errorf("2D gif: %s", got)
	}
	if got := filepath.Base(deep.GIFPath()); got != "contrastive_learning_3d.gif" {
		t.Errorf("3D gif: %s", got)
	}
	if got := filepath.Base(flat.MP4Path()); got != "contrastive_learning.mp4" {
		t.Errorf("2D mp4: %s", got)
	}
	if got := filepath.Base(deep.MP4Path()); got != "contrastive_learning_3d.mp4" {
		t.Errorf("3D mp4: %s", got)
	}
}

func TestPathsAreUnderDir(t *testing.T) {
	l := New(filepath.Join("a", "b"), 9, 2)
	for _, p := range []string{l.FramePath(1), l.SVGPath(1), l.CombinedPath(), l.ViewerPath(), l.ManifestPath()} {
		if filepath.Dir(p) != filepath.Join("a", "b") {
			t.Errorf("%s is not under a/b", p)
		}
	}
	if filepath.Base(l.SVGPath(7)) != "step_7.svg" {
		t.Errorf("unexpected svg name %s", l.SVGPath(7))
	}
}
