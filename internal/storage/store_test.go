package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/san-kum/contrastviz/internal/align"
	"github.com/san-kum/contrastviz/internal/schedule"
	"github.com/san-kum/contrastviz/internal/space"
)

func sampleResult() *align.Result {
	final := schedule.Frame{
		Step:  2,
		Total: 2,
		Dim:   2,
		Image: space.Points{"dog": {0.5, 0.5}},
		Text:  space.Points{"dog": {0.5, 0.5}},
	}
	return &align.Result{
		Frames: 3,
		Final:  final,
		Metrics: map[string]float64{
			"mean_pair_distance": 0,
			"retrieval_at_1":     1,
		},
		Series: map[string][]float64{
			"mean_pair_distance": {1.4, 0.7, 0},
			"retrieval_at_1":     {0, 0.5, 1},
		},
	}
}

func TestNewRun(t *testing.T) {
	r := NewRun("static", 42, "linear", "out_static", sampleResult())

	if r.ID == "" {
		t.Error("expected non-empty run id")
	}
	if r.Dim != 2 || r.Steps != 2 {
		t.Errorf("expected dim 2 steps 2, got %d %d", r.Dim, r.Steps)
	}
	if r.Final == nil || len(r.Final.Image["dog"]) != 2 {
		t.Fatal("final points not copied")
	}

	other := NewRun("static", 42, "linear", "out_static", sampleResult())
	if other.ID == r.ID {
		t.Error("run ids should be unique")
	}
}

func TestStoreSaveLoad(t *testing.T) {
	ctx := context.Background()
	st := New(t.TempDir())

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	run := NewRun("static", 42, "linear", "out_static", sampleResult())
	run.Artifacts = []string{"out_static/step_0.png"}
	if err := st.Save(ctx, run); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := st.Load(ctx, run.ID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Mode != "static" || loaded.Seed != 42 {
		t.Errorf("metadata mismatch: %+v", loaded)
	}
	if loaded.Metrics["retrieval_at_1"] != 1 {
		t.Errorf("expected retrieval 1, got %f", loaded.Metrics["retrieval_at_1"])
	}

	series := loaded.Series["mean_pair_distance"]
	if len(series) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(series))
	}
	if series[1] != 0.7 {
		t.Errorf("expected 0.7, got %f", series[1])
	}
	if loaded.Final == nil || loaded.Final.Text["dog"][0] != 0.5 {
		t.Error("final points not loaded")
	}
	if len(loaded.Artifacts) != 1 {
		t.Errorf("expected 1 artifact, got %d", len(loaded.Artifacts))
	}
}

func TestStoreList(t *testing.T) {
	ctx := context.Background()
	st := New(t.TempDir())
	_ = st.Init()

	for _, mode := range []string{"static", "3d"} {
		if err := st.Save(ctx, NewRun(mode, 1, "linear", "out", sampleResult())); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := st.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
	for _, r := range runs {
		if r.Series != nil {
			t.Error("list should not carry series")
		}
	}
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(t.TempDir() + "/missing")
	runs, err := st.List(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestStoreLoadNotFound(t *testing.T) {
	st := New(t.TempDir())
	_, err := st.Load(context.Background(), "nope")
	if !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
}

func TestExportJSON(t *testing.T) {
	run := NewRun("3d", 7, "cubic", "out_3d", sampleResult())

	var buf bytes.Buffer
	if err := ExportJSON(&buf, run); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var decoded Run
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if decoded.Easing != "cubic" || len(decoded.Series["retrieval_at_1"]) != 3 {
		t.Errorf("export mismatch: %+v", decoded)
	}
}
