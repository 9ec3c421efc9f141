package project

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, c *Catalog) <-chan struct{} {
	t.Helper()

	w, err := c.Watch(WithDebounce(20 * time.Millisecond))
	require.NoError(t, err)

	signals := make(chan struct{}, 16)
	cancelSub := c.Subscribe(func() { signals <- struct{}{} })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() { done <- w.Run(ctx) }()

	t.Cleanup(func() {
		cancel()
		cancelSub()
		require.NoError(t, <-done)
	})

	return signals
}

func Test_Watcher_Fires_After_External_Edit(t *testing.T) {
	t.Parallel()

	c := NewCatalog(t.TempDir())
	signals := startWatcher(t, c)

	path := filepath.Join(c.Dir(), ProjectsFileName)
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":"1","name":"a","path":"/a"}]`), 0o644))

	select {
	case <-signals:
	case <-time.After(5 * time.Second):
		t.Fatal("no refresh signal after external edit")
	}

	doc, err := c.View()
	require.NoError(t, err)
	require.Len(t, doc.Projects, 1)
}

func Test_Watcher_Ignores_Unrelated_Files(t *testing.T) {
	t.Parallel()

	c := NewCatalog(t.TempDir())
	signals := startWatcher(t, c)

	require.NoError(t, os.WriteFile(filepath.Join(c.Dir(), "icon.svg"), []byte("<svg/>"), 0o644))

	select {
	case <-signals:
		t.Fatal("unexpected refresh signal for an icon file")
	case <-time.After(200 * time.Millisecond):
	}
}

func Test_Watcher_Debounces_Bursts(t *testing.T) {
	t.Parallel()

	c := NewCatalog(t.TempDir())

	w, err := c.Watch(WithDebounce(300 * time.Millisecond))
	require.NoError(t, err)

	signals := make(chan struct{}, 16)
	cancelSub := c.Subscribe(func() { signals <- struct{}{} })

	defer cancelSub()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() { _ = w.Run(ctx) }()

	path := filepath.Join(c.Dir(), ProjectsFileName)
	for _i := 0; _i < 5; _i++ {
		require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))
	}

	select {
	case <-signals:
	case <-time.After(5 * time.Second):
		t.Fatal("no refresh signal")
	}

	select {
	case <-signals:
		t.Fatal("burst produced more than one signal")
	case <-time.After(500 * time.Millisecond):
	}
}
