package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu      sync.RWMutex
	base    = zap.NewNop()
	sugar   = base.Sugar()
	logFile *os.File
)

// Init replaces the package logger. Until Init is called every log call is
// discarded. Calling Init again closes the previous log file.
func Init(cfg Config) error {
	lvl, err := cfg.level()
	if err != nil {
		return err
	}

	var (
		sink zapcore.WriteSyncer
		file *os.File
	)
	if cfg.toStderr() {
		sink = zapcore.Lock(os.Stderr)
	} else {
		path := filepath.Clean(cfg.LogFilePath)
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("logger: create log dir: %w", err)
			}
		}
		file, err = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("logger: open log file: %w", err)
		}
		sink = zapcore.AddSync(file)
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), sink, lvl)
	l := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))

	mu.Lock()
	prev := logFile
	base = l
	sugar = l.Sugar()
	logFile = file
	mu.Unlock()

	if prev != nil {
		_ = prev.Close()
	}
	l.Debug("logger initialized", zap.String("level", lvl.String()))
	return nil
}

func current() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return sugar
}

func Debugf(format string, args ...interface{}) {
	current().Debugf(format, args...)
}

func Infof(format string, args ...interface{}) {
	current().Infof(format, args...)
}

func Warnf(format string, args ...interface{}) {
	current().Warnf(format, args...)
}

func Errorf(format string, args ...interface{}) {
	current().Errorf(format, args...)
}

// Get returns the underlying zap logger for callers that want typed fields.
func Get() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base.WithOptions(zap.AddCallerSkip(-1))
}

// Sync flushes buffered entries. When logging to a file the file is closed
// and the logger goes back to discarding.
func Sync() error {
	mu.Lock()
	defer mu.Unlock()

	err := base.Sync()
	if logFile == nil {
		// stderr sync errors are expected on terminals
		return nil
	}
	if cerr := logFile.Close(); cerr != nil && err == nil {
		err = cerr
	}
	logFile = nil
	base = zap.NewNop()
	sugar = base.Sugar()
	return err
}
