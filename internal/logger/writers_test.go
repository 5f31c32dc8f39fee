package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSafeFileWriterConcurrentWrites(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "nested", "test_safe_writer.log")
	logger := zap.NewNop()

	writer, err := NewSafeFileWriter(testFile, 50*time.Millisecond, logger)
	require.NoError(t, err)
	defer writer.Close()

	var wg sync.WaitGroup
	numGoroutines := 10
	linesPerGoroutine := 100

	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < linesPerGoroutine; j++ {
				if err := writer.WriteLine(fmt.Sprintf("Goroutine %d, Line %d", id, j)); err != nil {
					t.Errorf("Failed to write line: %v", err)
				}
			}
		}(i)
	}

	flushDone := make(chan struct{})
	go func() {
		defer close(flushDone)
		for i := 0; i < 10; i++ {
			if err := writer.Flush(); err != nil {
				logger.Error("Failed to flush", zap.Error(err))
			}
			time.Sleep(5 * time.Millisecond)
		}
	}()

	wg.Wait()
	<-flushDone

	require.NoError(t, writer.Flush())

	lines, flushes := writer.GetStats()
	assert.Equal(t, uint64(numGoroutines*linesPerGoroutine), lines)
	assert.NotZero(t, flushes)

	info, err := os.Stat(testFile)
	require.NoError(t, err)
	assert.NotZero(t, info.Size())
}

func TestSafeFileWriterAsLogSink(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "form.log")

	writer, err := NewSafeFileWriter(testFile, time.Second, zap.NewNop())
	require.NoError(t, err)

	log, err := CreatePrettyLogger(false, writer)
	require.NoError(t, err)
	log.Info("Deposit clamped", zap.String("amount", "12.5"))

	require.NoError(t, writer.Close())
	require.NoError(t, writer.Close(), "close is idempotent")

	data, err := os.ReadFile(testFile)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "Deposit lowered to balance: 12.5"))

	_, err = writer.Write([]byte("late"))
	assert.ErrorIs(t, err, os.ErrClosed)
}
