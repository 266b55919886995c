package build

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jrick/logrotate/rotator"
)

// agentctlLogFilename is the fixed log file name written under --log-dir;
// agentctl only ever runs one logical process, so unlike a daemon juggling
// several services there's no per-service name to parameterize.
const agentctlLogFilename = "agentctl.log"

// LogRotatorConfig holds the configuration for agentctl's optional log file.
type LogRotatorConfig struct {
	// LogDir is the directory where the log file is written.
	LogDir string

	// MaxLogFiles is the maximum number of rotated log files to keep.
	// Zero selects a small built-in default.
	MaxLogFiles int

	// MaxLogFileSize is the maximum size of the log file in megabytes
	// before it is rotated. Zero selects a small built-in default.
	MaxLogFileSize int
}

const (
	defaultMaxLogFiles    = 3
	defaultMaxLogFileSize = 10
)

// RotatingLogWriter feeds written bytes through a gzip-compressing rotator
// via a pipe, so agentctl's file handler can treat it as a plain io.Writer.
type RotatingLogWriter struct {
	pipe    *io.PipeWriter
	rotator *rotator.Rotator
}

// NewRotatingLogWriter returns a writer that discards everything until
// InitLogRotator succeeds.
func NewRotatingLogWriter() *RotatingLogWriter {
	return &RotatingLogWriter{}
}

// InitLogRotator creates cfg.LogDir if needed and starts the rotator
// goroutine feeding agentctl.log within it. Must be called before Write
// does anything useful.
func (r *RotatingLogWriter) InitLogRotator(cfg *LogRotatorConfig) error {
	maxFiles := cfg.MaxLogFiles
	if maxFiles == 0 {
		maxFiles = defaultMaxLogFiles
	}
	maxSize := cfg.MaxLogFileSize
	if maxSize == 0 {
		maxSize = defaultMaxLogFileSize
	}

	logFile := filepath.Join(cfg.LogDir, agentctlLogFilename)

	if err := os.MkdirAll(cfg.LogDir, 0o700); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	var err error
	r.rotator, err = rotator.New(logFile, int64(maxSize*1024), false, maxFiles)
	if err != nil {
		return fmt.Errorf("failed to create file rotator: %w", err)
	}
	r.rotator.SetCompressor(gzip.NewWriter(nil), ".gz")

	pr, pw := io.Pipe()
	go func() {
		if err := r.rotator.Run(pr); err != nil {
			fmt.Fprintf(os.Stderr, "agentctl: log rotator stopped: %v\n", err)
		}
	}()
	r.pipe = pw

	return nil
}

// Write sends b to the rotator pipe. Before InitLogRotator has run
// successfully, writes are silently dropped.
func (r *RotatingLogWriter) Write(b []byte) (int, error) {
	if r.pipe == nil {
		return len(b), nil
	}
	return r.pipe.Write(b)
}

// Close signals the rotator goroutine to flush and exit.
func (r *RotatingLogWriter) Close() error {
	if r.pipe == nil {
		return nil
	}
	return r.pipe.Close()
}
