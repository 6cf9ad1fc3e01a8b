// Package watch reruns generation when an input of the run changes.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/teranos/bindgen/errors"
	"github.com/teranos/bindgen/logger"
)

// RegenerateFunc is called once per burst of input changes.
type RegenerateFunc func() error

// Watcher watches input files and directories. Files are watched through
// their parent directory so editors that replace a file on save are seen.
type Watcher struct {
	watcher        *fsnotify.Watcher
	dirs           map[string]bool // watched whole
	files          map[string]bool // watched by exact path
	regenerate     RegenerateFunc
	debouncePeriod time.Duration
	log            *zap.SugaredLogger

	// runMu keeps regenerations from overlapping when one outlasts the
	// debounce period.
	runMu sync.Mutex

	mu            sync.Mutex
	debounceTimer *time.Timer
	started       bool
	done          chan struct{}
}

// New watches paths. Every path must exist.
func New(paths []string, debounce time.Duration, regenerate RegenerateFunc) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	w := &Watcher{
		watcher:        fw,
		dirs:           make(map[string]bool),
		files:          make(map[string]bool),
		regenerate:     regenerate,
		debouncePeriod: debounce,
		log:            logger.ComponentLogger("watch"),
		done:           make(chan struct{}),
	}

	added := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fw.Close()
			return nil, errors.Wrapf(err, "failed to resolve %s", p)
		}
		info, err := os.Stat(abs)
		if err != nil {
			fw.Close()
			return nil, errors.WrapMissingInput(err, p)
		}

		dir := abs
		if info.IsDir() {
			w.dirs[abs] = true
		} else {
			w.files[abs] = true
			dir = filepath.Dir(abs)
		}
		if added[dir] {
			continue
		}
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, errors.Wrapf(err, "failed to watch %s", dir)
		}
		added[dir] = true
	}
	return w, nil
}

// AddOptional watches a file that may not exist yet, through its parent
// directory, so creating it triggers a regeneration. The parent must exist.
// Call it before Start.
func (w *Watcher) AddOptional(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrapf(err, "failed to resolve %s", path)
	}
	dir := filepath.Dir(abs)
	if _, err := os.Stat(dir); err != nil {
		return errors.WrapMissingInput(err, dir)
	}
	if err := w.watcher.Add(dir); err != nil {
		return errors.Wrapf(err, "failed to watch %s", dir)
	}
	w.files[abs] = true
	return nil
}

// Start begins watching in the background.
func (w *Watcher) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return
	}
	w.started = true
	go w.watchLoop()
}

// Run watches until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	w.Start()
	w.log.Infow("watching inputs", logger.FieldCount, len(w.dirs)+len(w.files))
	<-ctx.Done()
	return w.Stop()
}

// Stop stops watching and cancels a pending regeneration.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	started := w.started
	w.mu.Unlock()

	err := w.watcher.Close()
	if started {
		<-w.done
	}
	return err
}

func (w *Watcher) watchLoop() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			w.log.Debugw("input changed", logger.FieldFile, event.Name, logger.FieldOp, event.Op.String())
			w.schedule()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warnw("watcher error", logger.FieldError, err)
		}
	}
}

const changeOps = fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&changeOps == 0 {
		return false
	}
	name := filepath.Clean(event.Name)
	return w.files[name] || w.dirs[filepath.Dir(name)]
}

// schedule debounces a burst of events into one regeneration.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debouncePeriod, w.run)
}

func (w *Watcher) run() {
	w.runMu.Lock()
	defer w.runMu.Unlock()
	if err := w.regenerate(); err != nil {
		w.log.Errorw("regeneration failed", logger.FieldError, err)
	}
}
