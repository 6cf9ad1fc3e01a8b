package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/bindgen/errors"
)

const debounce = 50 * time.Millisecond

func counter() (*int32, RegenerateFunc) {
	var n int32
	return &n, func() error {
		atomic.AddInt32(&n, 1)
		return nil
	}
}

func TestWatcher_FileChange(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "reshop_ast.json")
	require.NoError(t, os.WriteFile(input, []byte("{}"), 0644))

	n, regenerate := counter()
	w, err := New([]string{input}, debounce, regenerate)
	require.NoError(t, err)
	w.Start()
	defer w.Stop()

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(input, []byte(`{"kind":"TranslationUnitDecl"}`), 0644))
	}

	assert.Eventually(t, func() bool { return atomic.LoadInt32(n) >= 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestWatcher_SiblingIgnored(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "pyobj_methods_docstring.i.in")
	require.NoError(t, os.WriteFile(input, []byte(""), 0644))

	n, regenerate := counter()
	w, err := New([]string{input}, debounce, regenerate)
	require.NoError(t, err)
	w.Start()
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "pyobj_methods_docstring.i"), []byte("out"), 0644))

	time.Sleep(10 * debounce)
	assert.Equal(t, int32(0), atomic.LoadInt32(n))
}

func TestWatcher_DirectoryChange(t *testing.T) {
	dir := t.TempDir()

	n, regenerate := counter()
	w, err := New([]string{dir}, debounce, regenerate)
	require.NoError(t, err)
	w.Start()
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.xml"), []byte("<doxygenindex/>"), 0644))

	assert.Eventually(t, func() bool { return atomic.LoadInt32(n) >= 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestWatcher_RegenerateErrorKeepsWatching(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "tables.toml")
	require.NoError(t, os.WriteFile(input, []byte(""), 0644))

	var n int32
	w, err := New([]string{input}, debounce, func() error {
		atomic.AddInt32(&n, 1)
		return errors.New("broken tables")
	})
	require.NoError(t, err)
	w.Start()
	defer w.Stop()

	require.NoError(t, os.WriteFile(input, []byte("a"), 0644))
	assert.Eventually(t, func() bool { return atomic.LoadInt32(&n) == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(input, []byte("b"), 0644))
	assert.Eventually(t, func() bool { return atomic.LoadInt32(&n) == 2 }, 2*time.Second, 10*time.Millisecond)
}

func TestWatcher_MissingInput(t *testing.T) {
	_, regenerate := counter()
	_, err := New([]string{filepath.Join(t.TempDir(), "absent.json")}, debounce, regenerate)
	require.Error(t, err)
	assert.True(t, errors.IsMissingInputError(err))
}

func TestWatcher_RunStopsWithContext(t *testing.T) {
	_, regenerate := counter()
	w, err := New([]string{t.TempDir()}, debounce, regenerate)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestWatcher_StopWithoutStart(t *testing.T) {
	_, regenerate := counter()
	w, err := New([]string{t.TempDir()}, debounce, regenerate)
	require.NoError(t, err)
	assert.NoError(t, w.Stop())
}

func TestWatcher_OptionalFileCreated(t *testing.T) {
	dir := t.TempDir()
	tmpl := filepath.Join(dir, "pyobj_methods_docstring.i.in")

	n, regenerate := counter()
	w, err := New(nil, debounce, regenerate)
	require.NoError(t, err)
	require.NoError(t, w.AddOptional(tmpl))
	w.Start()
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "unrelated.txt"), []byte("x"), 0644))
	time.Sleep(10 * debounce)
	assert.Equal(t, int32(0), atomic.LoadInt32(n))

	require.NoError(t, os.WriteFile(tmpl, []byte(""), 0644))
	assert.Eventually(t, func() bool { return atomic.LoadInt32(n) >= 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestWatcher_OptionalMissingParent(t *testing.T) {
	_, regenerate := counter()
	w, err := New(nil, debounce, regenerate)
	require.NoError(t, err)
	defer w.Stop()

	err = w.AddOptional(filepath.Join(t.TempDir(), "absent", "pyobj_methods_docstring.i.in"))
	require.Error(t, err)
	assert.True(t, errors.IsMissingInputError(err))
}

func TestWatcher_RegenerationsDoNotOverlap(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "reshop_ast.json")
	require.NoError(t, os.WriteFile(input, []byte("{}"), 0644))

	var inFlight, maxInFlight, runs int32
	w, err := New([]string{input}, 10*time.Millisecond, func() error {
		cur := atomic.AddInt32(&inFlight, 1)
		for {
			old := atomic.LoadInt32(&maxInFlight)
			if cur <= old || atomic.CompareAndSwapInt32(&maxInFlight, old, cur) {
				break
			}
		}
		time.Sleep(150 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		atomic.AddInt32(&runs, 1)
		return nil
	})
	require.NoError(t, err)
	w.Start()
	defer w.Stop()

	// Each write lands after the previous burst has fired, while its
	// regeneration is still running.
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(input, []byte("{}"), 0644))
		time.Sleep(50 * time.Millisecond)
	}

	assert.Eventually(t, func() bool { return atomic.LoadInt32(&runs) >= 2 }, 3*time.Second, 10*time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&maxInFlight))
}
