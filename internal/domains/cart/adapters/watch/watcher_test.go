package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFileWatcher_SignalsExternalWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vegefoods-cart-v1.json")

	watcher, err := NewFileWatcher(path, nil)
	require.NoError(t, err)
	defer watcher.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changes, err := watcher.Watch(ctx)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte(`{"items":[],"promo":null}`), 0o644))

	select {
	case _, ok := <-changes:
		require.True(t, ok)
	case <-time.After(3 * time.Second):
		t.Fatal("expected a change signal after external write")
	}
}

func TestFileWatcher_IgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vegefoods-cart-v1.json")

	watcher, err := NewFileWatcher(path, nil)
	require.NoError(t, err)
	defer watcher.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changes, err := watcher.Watch(ctx)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0o644))

	select {
	case <-changes:
		t.Fatal("unrelated file must not signal")
	case <-time.After(300 * time.Millisecond):
	}
}
