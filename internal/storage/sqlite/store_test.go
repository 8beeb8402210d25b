package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/contrastviz/internal/storage"
)

func openTempStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}

func sampleRun(id string, at time.Time) *storage.Run {
	return &storage.Run{
		ID:        id,
		Mode:      "static",
		Dim:       2,
		Steps:     2,
		Seed:      42,
		Easing:    "linear",
		Timestamp: at,
		Output:    "out_static",
		Artifacts: []string{"out_static/step_0.png", "out_static/combined_space.png"},
		Metrics:   map[string]float64{"retrieval_at_1": 1},
		Series: map[string][]float64{
			"retrieval_at_1":     {0, 0.5, 1},
			"mean_pair_distance": {1.2, 0.6, 0},
		},
		Final: &storage.Points{
			Image: map[string][]float64{"dog": {0.5, 0.5}},
			Text:  map[string][]float64{"dog": {0.5, 0.5}},
		},
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := openTempStore(t)

	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	if err := store.Save(ctx, sampleRun("run-1", now)); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Load(ctx, "run-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Mode != "static" || got.Seed != 42 || got.Dim != 2 {
		t.Fatalf("unexpected run: %+v", got)
	}
	if !got.Timestamp.Equal(now) {
		t.Fatalf("timestamp = %v, want %v", got.Timestamp, now)
	}
	if len(got.Artifacts) != 2 {
		t.Fatalf("artifacts = %v", got.Artifacts)
	}
	if got.Metrics["retrieval_at_1"] != 1 {
		t.Fatalf("metrics = %v", got.Metrics)
	}
	series := got.Series["mean_pair_distance"]
	if len(series) != 3 || series[0] != 1.2 || series[2] != 0 {
		t.Fatalf("series = %v", series)
	}
	if got.Final == nil || got.Final.Image["dog"][1] != 0.5 {
		t.Fatalf("final = %+v", got.Final)
	}
}

func TestListOrdersByCreation(t *testing.T) {
	ctx := context.Background()
	store := openTempStore(t)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"b", "a", "c"} {
		if err := store.Save(ctx, sampleRun(id, base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}

	runs, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}
	if runs[0].ID != "b" || runs[1].ID != "a" || runs[2].ID != "c" {
		t.Fatalf("order = %s %s %s", runs[0].ID, runs[1].ID, runs[2].ID)
	}
	if runs[0].Final != nil {
		t.Fatal("list should not decode final points")
	}
}

func TestLoadNotFound(t *testing.T) {
	store := openTempStore(t)
	_, err := store.Load(context.Background(), "missing")
	if !errors.Is(err, storage.ErrRunNotFound) {
		t.Fatalf("expected ErrRunNotFound, got %v", err)
	}
}

func TestSaveDuplicateID(t *testing.T) {
	ctx := context.Background()
	store := openTempStore(t)
	run := sampleRun("dup", time.Now().UTC())
	if err := store.Save(ctx, run); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := store.Save(ctx, run); err == nil {
		t.Fatal("expected duplicate id error")
	}
}

func TestInitIsIdempotent(t *testing.T) {
	store := openTempStore(t)
	if err := store.Init(); err != nil {
		t.Fatalf("second init: %v", err)
	}
}
