// Package debug is a category-tagged file logger for chasing timing and
// dispatch problems without disturbing the terminal UI.
package debug

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	mu      sync.Mutex
	file    *os.File
	enabled bool
	// per-callsite counters for LogEvery
	counters = make(map[string]int)
)

func logPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "loom", "debug.log"), nil
}

// Enable starts logging to ~/.config/loom/debug.log, truncating any
// previous log.
func Enable() error {
	mu.Lock()
	defer mu.Unlock()

	if enabled {
		return nil
	}

	path, err := logPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	file = f
	enabled = true
	write("debug", "=== log started ===")
	return nil
}

// Disable stops logging and closes the file.
func Disable() {
	mu.Lock()
	defer mu.Unlock()

	if file != nil {
		file.Close()
		file = nil
	}
	enabled = false
}

// write appends one line. Caller holds mu.
func write(category, format string, args ...any) {
	ts := time.Now().Format("15:04:05.000")
	fmt.Fprintf(file, "[%s] %-10s %s\n", ts, category, fmt.Sprintf(format, args...))
	file.Sync() // flush immediately so the log survives a crash
}

// Log writes one message under a category.
func Log(category, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	if !enabled || file == nil {
		return
	}
	write(category, format, args...)
}

// LogEvery writes only every nth call for a given category+format pair.
// Use for per-iteration playback loop logging.
func LogEvery(n int, category, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	if !enabled || file == nil {
		return
	}

	key := category + format
	counters[key]++
	if counters[key]%n != 0 {
		return
	}
	write(category, format+" (count=%d)", append(args, counters[key])...)
}
