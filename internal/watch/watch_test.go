package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMissingFile(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope.yaml"), 0, nil)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestRunOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("steps: 10\n"), 0o644))

	w, err := New(path, 50*time.Millisecond, nil)
	require.NoError(t, err)
	defer w.Close()

	calls := make(chan struct{}, 10)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(context.Context) error {
			calls <- struct{}{}
			return errors.New("failures are logged, not fatal")
		})
	}()

	wait := func(msg string) {
		t.Helper()
		select {
		case <-calls:
		case <-time.After(3 * time.Second):
			t.Fatal(msg)
		}
	}
	wait("no initial run")

	require.NoError(t, os.WriteFile(path, []byte("steps: 20\n"), 0o644))
	wait("no run after change")

	// Same content: touched but not changed.
	require.NoError(t, os.WriteFile(path, []byte("steps: 20\n"), 0o644))
	select {
	case <-calls:
		t.Fatal("unchanged content triggered a run")
	case <-time.After(400 * time.Millisecond):
	}

	// Other files in the directory are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0o644))
	select {
	case <-calls:
		t.Fatal("unrelated file triggered a run")
	case <-time.After(400 * time.Millisecond):
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestDebounceCoalescesBursts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0o644))

	w, err := New(path, 200*time.Millisecond, nil)
	require.NoError(t, err)
	defer w.Close()

	calls := make(chan struct{}, 10)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx, func(context.Context) error {
		calls <- struct{}{}
		return nil
	})
	<-calls

	for _, body := range []string{"b", "c", "d", "e"} {
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
		time.Sleep(20 * time.Millisecond)
	}

	select {
	case <-calls:
	case <-time.After(3 * time.Second):
		t.Fatal("no run after burst")
	}
	select {
	case <-calls:
		t.Fatal("burst produced more than one run")
	case <-time.After(600 * time.Millisecond):
	}
}
