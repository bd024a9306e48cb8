// Package watch monitors the extension API dump directory and triggers a
// regeneration when a dump changes on disk. Editors and the engine both
// rewrite dumps in several events, so changes are debounced before the
// callback fires.
package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/godot-ecs/nodegen/internal/genlog"
)

// DumpWatcher monitors schema dump files and triggers regeneration callbacks.
type DumpWatcher struct {
	watcher   *fsnotify.Watcher
	debouncer *Debouncer
	dir       string
	log       *genlog.Logger
	onChange  func([]string) error
	stopChan  chan struct{}
	wg        sync.WaitGroup
}

// NewDumpWatcher creates a watcher over the dump directory. onChange receives
// the batch of dump files that changed since the last quiet period.
func NewDumpWatcher(dir string, log *genlog.Logger, onChange func([]string) error) (*DumpWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	dw := &DumpWatcher{
		watcher:   watcher,
		debouncer: NewDebouncer(500 * time.Millisecond),
		dir:       dir,
		log:       log,
		onChange:  onChange,
		stopChan:  make(chan struct{}),
	}

	dw.debouncer.SetCallback(func(files []string) {
		if err := dw.onChange(files); err != nil {
			dw.log.Error("regeneration after dump change failed", zap.Error(err))
		}
	})

	return dw, nil
}

// Start begins watching the dump directory. The directory is created if it
// does not exist yet, so a watch session can start before the first dump.
func (dw *DumpWatcher) Start() error {
	if err := os.MkdirAll(dw.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create dump directory: %w", err)
	}
	if err := dw.watcher.Add(dw.dir); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", dw.dir, err)
	}
	dw.log.Step("watching dump directory", zap.String("dir", dw.dir))

	dw.wg.Add(1)
	go dw.watch()

	return nil
}

// Stop stops the watcher and waits for the event loop to drain.
func (dw *DumpWatcher) Stop() error {
	select {
	case <-dw.stopChan:
		return nil
	default:
		close(dw.stopChan)
	}

	dw.wg.Wait()
	dw.debouncer.Stop()
	return dw.watcher.Close()
}

// watch is the main event loop
func (dw *DumpWatcher) watch() {
	defer dw.wg.Done()

	for {
		select {
		case event, ok := <-dw.watcher.Events:
			if !ok {
				return
			}

			if !isDumpFile(event.Name) {
				continue
			}

			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				dw.log.Debug("dump changed", zap.String("file", event.Name))
				dw.debouncer.Add(event.Name)
			}

		case err, ok := <-dw.watcher.Errors:
			if !ok {
				return
			}
			dw.log.Error("watch error", zap.Error(err))

		case <-dw.stopChan:
			return
		}
	}
}

// isDumpFile reports whether path looks like a versioned extension API dump.
// Editor temp files and hidden files are excluded.
func isDumpFile(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return false
	}
	if !strings.HasPrefix(base, "extension_api") {
		return false
	}
	return filepath.Ext(base) == ".json"
}

// Debouncer collects file changes and triggers callbacks after a quiet period
type Debouncer struct {
	duration time.Duration
	timer    *time.Timer
	files    map[string]struct{}
	mutex    sync.Mutex
	callback func([]string)
	stopChan chan struct{}
}

// NewDebouncer creates a new debouncer instance
func NewDebouncer(duration time.Duration) *Debouncer {
	return &Debouncer{
		duration: duration,
		files:    make(map[string]struct{}),
		stopChan: make(chan struct{}),
	}
}

// Add adds a file to the debouncer
func (d *Debouncer) Add(file string) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	d.files[file] = struct{}{}

	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(d.duration, func() {
		d.flush()
	})
}

// flush triggers the callback with accumulated files
func (d *Debouncer) flush() {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if len(d.files) == 0 {
		return
	}

	files := make([]string, 0, len(d.files))
	for file := range d.files {
		files = append(files, file)
	}

	d.files = make(map[string]struct{})

	if d.callback != nil {
		d.callback(files)
	}
}

// SetCallback sets the callback function
func (d *Debouncer) SetCallback(callback func([]string)) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.callback = callback
}

// Stop stops the debouncer
func (d *Debouncer) Stop() {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}

	select {
	case <-d.stopChan:
	default:
		close(d.stopChan)
	}
}
