package config

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long Watch waits for writes to settle.
const DefaultDebounce = 200 * time.Millisecond

// Watch calls onChange after the settings file is written, renamed over or
// recreated by an external editor. Bursts of events within debounce collapse
// into a single call. Watch returns once the watcher is running; it stops
// when ctx is cancelled.
func Watch(ctx context.Context, configPath string, debounce time.Duration, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create config watcher: %w", err)
	}
	// Editors often replace the file, so watch the directory.
	dir := filepath.Dir(configPath)
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch '%s': %w", dir, err)
	}
	target := filepath.Clean(configPath)

	go func() {
		var (
			mu     sync.Mutex
			timer  *time.Timer
			closed bool
		)
		defer func() {
			mu.Lock()
			closed = true
			if timer != nil {
				timer.Stop()
			}
			mu.Unlock()
			_ = watcher.Close()
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				mu.Lock()
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(debounce, func() {
					mu.Lock()
					stop := closed
					mu.Unlock()
					if !stop {
						onChange()
					}
				})
				mu.Unlock()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("Config watcher error: %v", err)
			}
		}
	}()
	return nil
}
