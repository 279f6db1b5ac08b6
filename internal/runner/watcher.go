package runner

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher re-checks PHP files when they change.
type Watcher struct {
	runner       *Runner
	discovery    *FileDiscovery
	watcher      *fsnotify.Watcher
	onResult     func(*Result)
	debounceTime time.Duration
	stopCh       chan struct{}
	doneCh       chan struct{}
	stopOnce     sync.Once
}

// NewWatcher creates a watcher over the discovery root. onResult receives the
// result of every re-check batch.
func NewWatcher(r *Runner, discovery *FileDiscovery, onResult func(*Result)) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		runner:       r,
		discovery:    discovery,
		watcher:      watcher,
		onResult:     onResult,
		debounceTime: 300 * time.Millisecond,
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
	}

	if err := w.addDirectoriesRecursively(discovery.RootDir()); err != nil {
		watcher.Close()
		return nil, err
	}

	return w, nil
}

// Start begins watching for file changes.
func (w *Watcher) Start(ctx context.Context) {
	go w.watch(ctx)
}

// Stop stops the watcher and waits for the event loop to exit.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		<-w.doneCh
		w.watcher.Close()
	})
}

// watch is the main event loop with debouncing logic.
func (w *Watcher) watch(ctx context.Context) {
	defer close(w.doneCh)

	var debounceTimer *time.Timer
	recheckCh := make(chan struct{}, 1)
	changedFiles := make(map[string]bool)

	stopTimer := func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}

	for {
		select {
		case <-ctx.Done():
			stopTimer()
			return

		case <-w.stopCh:
			stopTimer()
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addDirectoriesRecursively(event.Name); err != nil {
						log.Printf("Warning: failed to watch new directory %s: %v", event.Name, err)
					}
					continue
				}
			}

			if !w.shouldProcessEvent(event) {
				continue
			}
			changedFiles[event.Name] = true

			stopTimer()
			debounceTimer = time.AfterFunc(w.debounceTime, func() {
				select {
				case recheckCh <- struct{}{}:
				default:
				}
			})

		case <-recheckCh:
			w.recheck(ctx, changedFiles)
			changedFiles = make(map[string]bool)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("File watcher error: %v", err)
		}
	}
}

// recheck checks the changed files that still exist.
func (w *Watcher) recheck(ctx context.Context, changedFiles map[string]bool) {
	paths := make([]string, 0, len(changedFiles))
	for path := range changedFiles {
		if _, err := os.Stat(path); err == nil {
			paths = append(paths, path)
		}
	}
	if len(paths) == 0 {
		return
	}
	sort.Strings(paths)

	log.Printf("Re-checking %d changed file(s)...", len(paths))
	result, err := w.runner.CheckFiles(ctx, paths)
	if err != nil {
		log.Printf("Error during re-check: %v", err)
		return
	}

	if w.onResult != nil {
		w.onResult(result)
	}
}

// shouldProcessEvent checks if an event should trigger a re-check.
func (w *Watcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return false
	}

	relPath, err := filepath.Rel(w.discovery.RootDir(), event.Name)
	if err != nil {
		return false
	}

	return w.discovery.Matches(filepath.ToSlash(relPath))
}

// addDirectoriesRecursively adds all non-ignored directories to the watcher.
func (w *Watcher) addDirectoriesRecursively(rootPath string) error {
	return filepath.WalkDir(rootPath, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			// Log but continue - don't fail the entire watch for one directory
			log.Printf("Warning: error accessing %s: %v", path, err)
			return nil
		}

		if !entry.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(w.discovery.RootDir(), path)
		if err != nil {
			return nil
		}
		relPath = filepath.ToSlash(relPath)
		if relPath != "." && w.discovery.shouldIgnore(relPath) {
			return filepath.SkipDir
		}

		if err := w.watcher.Add(path); err != nil {
			log.Printf("Warning: failed to watch directory %s: %v", path, err)
		}

		return nil
	})
}
