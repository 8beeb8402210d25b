package telemetry

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFramesCounted(t *testing.T) {
	r := New()
	r.Frames(2, []time.Duration{time.Millisecond, 2 * time.Millisecond, 3 * time.Millisecond})
	r.Frames(3, []time.Duration{time.Millisecond})

	assert.Equal(t, 3.0, testutil.ToFloat64(r.frames.WithLabelValues("2")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.frames.WithLabelValues("3")))
}

func TestAlignmentGauges(t *testing.T) {
	r := New()
	r.Alignment(2, map[string]float64{"retrieval_at_1": 1, "mean_pair_distance": 0})

	assert.Equal(t, 1.0, testutil.ToFloat64(r.alignment.WithLabelValues("2", "retrieval_at_1")))
	assert.Equal(t, 2, testutil.CollectAndCount(r.alignment))
}

func TestArtifactsAndSkips(t *testing.T) {
	r := New()
	r.Artifact("gif", 1)
	r.Artifact("gif", 1)
	r.Artifact("frame", 5)
	r.Skipped("mp4")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.artifacts.WithLabelValues("gif")))
	assert.Equal(t, 5.0, testutil.ToFloat64(r.artifacts.WithLabelValues("frame")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.skipped.WithLabelValues("mp4")))
}

func TestWriteTextfile(t *testing.T) {
	r := New()
	r.Frames(2, []time.Duration{time.Millisecond})

	path := filepath.Join(t.TempDir(), "metrics.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `contrastviz_frames_rendered_total{dim="2"} 1`)
}
