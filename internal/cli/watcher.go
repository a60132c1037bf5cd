package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/toyz/headertool/internal/utils"
)

// DefaultDebounce is how long the watcher waits for header changes to settle
const DefaultDebounce = 200 * time.Millisecond

// Watcher re-runs generation whenever a header under the input directory
// changes
type Watcher struct {
	watcher     *fsnotify.Watcher
	debouncer   *Debouncer
	config      Config
	diagnostics *utils.DiagnosticSystem
	filter      utils.FileFilter
	stopChan    chan struct{}
	wg          sync.WaitGroup
}

// NewWatcher creates a watcher calling onChange with the changed headers
func NewWatcher(config Config, diagnostics *utils.DiagnosticSystem, debounce time.Duration, onChange func([]string)) (*Watcher, error) {
	config = config.WithDefaults()

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w := &Watcher{
		watcher:     fsWatcher,
		debouncer:   NewDebouncer(debounce),
		config:      config,
		diagnostics: diagnostics,
		filter:      utils.HeaderFileFilter(config.Extensions, config.GeneratedMarker),
		stopChan:    make(chan struct{}),
	}
	w.debouncer.SetCallback(onChange)

	return w, nil
}

// Start registers every directory under the input root and begins watching
func (w *Watcher) Start() error {
	root, err := filepath.Abs(w.config.InputDir)
	if err != nil {
		return err
	}

	err = filepath.WalkDir(root, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		if path != root && !utils.DefaultDirectoryFilter()(path, entry) {
			return filepath.SkipDir
		}
		if w.isOutputDir(path) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", path, err)
		}
		w.diagnostics.Debug("Watching directory: %s", path)
		return nil
	})
	if err != nil {
		return err
	}

	w.wg.Add(1)
	go w.watch()

	return nil
}

// Stop stops the watcher
func (w *Watcher) Stop() error {
	select {
	case <-w.stopChan:
		return nil
	default:
		close(w.stopChan)
	}

	w.wg.Wait()
	w.debouncer.Stop()
	return w.watcher.Close()
}

// watch is the main event loop
func (w *Watcher) watch() {
	defer w.wg.Done()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.diagnostics.Warn("watch error: %v", err)

		case <-w.stopChan:
			return
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Op&fsnotify.Create == fsnotify.Create {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !w.isOutputDir(event.Name) {
			if err := w.watcher.Add(event.Name); err == nil {
				w.diagnostics.Debug("Watching directory: %s", event.Name)
			}
			return
		}
	}

	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}
	if !w.isHeader(event.Name) {
		return
	}

	w.diagnostics.Verbose("Header changed: %s", event.Name)
	w.debouncer.Add(event.Name)
}

// isHeader applies the scan filter by name only; the file may already be gone
func (w *Watcher) isHeader(path string) bool {
	if strings.HasPrefix(filepath.Base(path), ".") {
		return false
	}
	return w.filter(path, headerEntry{name: filepath.Base(path)})
}

func (w *Watcher) isOutputDir(path string) bool {
	output, err := filepath.Abs(w.config.OutputDir)
	if err != nil {
		return false
	}
	abs, err := filepath.Abs(path)
	return err == nil && abs == output
}

// headerEntry is a regular-file os.DirEntry carrying only a name
type headerEntry struct {
	name string
}

func (e headerEntry) Name() string               { return e.name }
func (e headerEntry) IsDir() bool                { return false }
func (e headerEntry) Type() os.FileMode          { return 0 }
func (e headerEntry) Info() (os.FileInfo, error) { return nil, os.ErrNotExist }

// Debouncer collects file changes and triggers the callback once they
// stop arriving for its duration. Callbacks never overlap: a batch that
// settles while the previous callback is running waits for it.
type Debouncer struct {
	duration time.Duration
	timer    *time.Timer
	files    map[string]struct{}
	mutex    sync.Mutex
	running  sync.Mutex
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

// Add adds a file to the pending batch and restarts the timer
func (d *Debouncer) Add(file string) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	select {
	case <-d.stopChan:
		return
	default:
	}

	d.files[file] = struct{}{}

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.duration, d.flush)
}

// flush triggers the callback with the accumulated files, sorted
func (d *Debouncer) flush() {
	d.running.Lock()
	defer d.running.Unlock()

	d.mutex.Lock()
	if len(d.files) == 0 {
		d.mutex.Unlock()
		return
	}

	files := make([]string, 0, len(d.files))
	for file := range d.files {
		files = append(files, file)
	}
	sort.Strings(files)
	d.files = make(map[string]struct{})
	callback := d.callback
	d.mutex.Unlock()

	if callback != nil {
		callback(files)
	}
}

// SetCallback sets the callback function
func (d *Debouncer) SetCallback(callback func([]string)) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.callback = callback
}

// Stop stops the debouncer; pending changes are dropped
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
