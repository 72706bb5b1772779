package storage

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bestseller-dashboard/utils"
)

type countingInvalidator struct {
	n atomic.Int32
}

func (c *countingInvalidator) Invalidate() { c.n.Add(1) }

func TestWatcherInvalidatesOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bestsellers.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	target := &countingInvalidator{}
	w, err := NewWatcher(path, target, 20*time.Millisecond, utils.Discard())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	require.NoError(t, os.WriteFile(path, []byte(sampleCSV+"x;y;4;1;1;2010;Fiction\n"), 0o644))

	assert.Eventually(t, func() bool { return target.n.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bestsellers.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	target := &countingInvalidator{}
	w, err := NewWatcher(path, target, 10*time.Millisecond, utils.Discard())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0o644))

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(0), target.n.Load())
}
