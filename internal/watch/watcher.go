package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"portfolio/internal/catalog"
	"portfolio/internal/logging"
)

// RunFunc performs one full pipeline run. changed lists the paths that
// triggered it.
type RunFunc func(ctx context.Context, changed []string) error

// Watcher monitors the source tree.
type Watcher struct {
	root     string
	debounce time.Duration
	run      RunFunc
	logger   *slog.Logger
	fs       *fsnotify.Watcher
}

// New starts watching root and its immediate subdirectories. Watches are
// active when New returns.
func New(root string, debounce time.Duration, run RunFunc, logger *slog.Logger) (*Watcher, error) {
	if run == nil {
		return nil, errors.New("watch: run func is required")
	}
	if debounce <= 0 {
		return nil, errors.New("watch: debounce must be positive")
	}
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	w := &Watcher{
		root:     root,
		debounce: debounce,
		run:      run,
		logger:   logging.NewComponentLogger(logger, "watch"),
		fs:       fsWatcher,
	}
	if err := w.addTree(); err != nil {
		_ = fsWatcher.Close()
		return nil, err
	}
	return w, nil
}

func (w *Watcher) addTree() error {
	if err := w.fs.Add(w.root); err != nil {
		return fmt.Errorf("watch %s: %w", w.root, err)
	}
	entries, err := os.ReadDir(w.root)
	if err != nil {
		return fmt.Errorf("list %s: %w", w.root, err)
	}
	for _, entry := range entries {
		if !entry.IsDir() || isHidden(entry.Name()) {
			continue
		}
		dir := filepath.Join(w.root, entry.Name())
		if err := w.fs.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	return nil
}

// WatchList returns the directories being watched.
func (w *Watcher) WatchList() []string {
	return w.fs.WatchList()
}

// Run processes events until ctx is done. Errors from individual runs are
// logged and watching continues.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fs.Close()

	fire := make(chan struct{}, 1)
	var timer *time.Timer
	pending := make(map[string]struct{})
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	schedule := func(path string) {
		pending[path] = struct{}{}
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(w.debounce, func() {
			select {
			case fire <- struct{}{}:
			default:
			}
		})
	}

	w.logger.Info("watching source tree",
		logging.String("root", w.root),
		logging.Int("directories", len(w.fs.WatchList())),
		logging.Duration("debounce", w.debounce))

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if w.handle(event) {
				schedule(event.Name)
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			logging.WarnWithContext(w.logger, "watcher error", "watch_error", logging.Error(err))

		case <-fire:
			changed := make([]string, 0, len(pending))
			for path := range pending {
				changed = append(changed, path)
			}
			clear(pending)
			w.logger.Info("source change detected", logging.Int("paths", len(changed)))
			if err := w.run(ctx, changed); err != nil {
				logging.ErrorWithContext(w.logger, "triggered run failed", "watch_run_failed",
					logging.Error(err),
					logging.String(logging.FieldErrorHint, "fix the error; the next change triggers another run"))
			}
		}
	}
}

// handle reports whether event should schedule a run. New category
// directories under the root are added to the watch list.
func (w *Watcher) handle(event fsnotify.Event) bool {
	name := filepath.Base(event.Name)
	if isHidden(name) {
		return false
	}
	if event.Op&fsnotify.Create != 0 && filepath.Dir(event.Name) == filepath.Clean(w.root) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.fs.Add(event.Name); err != nil {
				logging.WarnWithContext(w.logger, "failed to watch new category", "watch_add_failed",
					logging.String("dir", event.Name), logging.Error(err))
			} else {
				w.logger.Debug("watching new category", logging.String("dir", event.Name))
			}
			return false
		}
	}
	if !catalog.IsSupported(name) {
		return false
	}
	return event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}

func isHidden(name string) bool {
	return len(name) > 0 && name[0] == '.'
}
