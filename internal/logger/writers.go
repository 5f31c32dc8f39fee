package logger

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
)

// SafeFileWriter is a buffered, mutex-guarded log file. The TUI owns the
// terminal, so the application logger writes here instead. A background
// goroutine flushes the buffer every interval until Close.
type SafeFileWriter struct {
	path string
	log  *zap.Logger

	mu     sync.Mutex
	file   *os.File
	buf    *bufio.Writer
	closed bool
	writes uint64
	syncs  uint64

	stop chan struct{}
}

// NewSafeFileWriter opens path for appending, creating parent directories.
// interval must be positive. log reports flush failures.
func NewSafeFileWriter(path string, interval time.Duration, log *zap.Logger) (*SafeFileWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	w := &SafeFileWriter{
		path: path,
		log:  log,
		file: file,
		buf:  bufio.NewWriter(file),
		stop: make(chan struct{}),
	}
	go w.flushEvery(interval)

	return w, nil
}

// Write buffers p. It fails with os.ErrClosed after Close.
func (w *SafeFileWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return 0, os.ErrClosed
	}
	n, err := w.buf.Write(p)
	if err != nil {
		return n, fmt.Errorf("failed to buffer log entry: %w", err)
	}
	w.writes++
	return n, nil
}

// WriteLine writes line followed by a newline.
func (w *SafeFileWriter) WriteLine(line string) error {
	_, err := w.Write([]byte(line + "\n"))
	return err
}

// Sync implements zapcore.WriteSyncer.
func (w *SafeFileWriter) Sync() error {
	return w.Flush()
}

// Flush pushes buffered data to disk. It is a no-op after Close.
func (w *SafeFileWriter) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	return w.flushLocked()
}

func (w *SafeFileWriter) flushLocked() error {
	if err := w.buf.Flush(); err != nil {
		return fmt.Errorf("failed to flush log buffer: %w", err)
	}
	if err := w.file.Sync(); err != nil {
		return fmt.Errorf("failed to sync log file: %w", err)
	}
	w.syncs++
	return nil
}

func (w *SafeFileWriter) flushEvery(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stop:
			return
		case <-ticker.C:
			if err := w.Flush(); err != nil {
				w.log.Error("Log flush failed", zap.String("file", w.path), zap.Error(err))
			}
		}
	}
}

// Close flushes and closes the file. Calling it twice is safe.
func (w *SafeFileWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	close(w.stop)

	flushErr := w.buf.Flush()
	if err := w.file.Close(); err != nil {
		return fmt.Errorf("failed to close log file: %w", err)
	}
	if flushErr != nil {
		return fmt.Errorf("failed to flush log buffer on close: %w", flushErr)
	}

	w.log.Debug("Log file closed",
		zap.String("file", w.path),
		zap.Uint64("writes", w.writes),
		zap.Uint64("syncs", w.syncs))
	return nil
}

// GetStats returns the number of writes and completed flushes.
func (w *SafeFileWriter) GetStats() (writes, flushes uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.writes, w.syncs
}
