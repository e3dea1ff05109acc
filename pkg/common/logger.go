package common

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	logger *zap.Logger
	once   sync.Once
	mu     sync.RWMutex
)

func getLogger() *zap.Logger {
	initLogger()
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

func GetLogger() *zap.Logger {
	return getLogger().Named("default")
}

func GetLoggerWith(name string, fields ...zap.Field) *zap.Logger {
	return getLogger().Named(name).With(fields...)
}

func logsDir() string {
	if dir, found := os.LookupEnv(EnvKeyAquaLogDir); found && dir != "" {
		return dir
	}
	wd, err := os.Getwd()
	if err != nil {
		log.Fatalf("Error getting current directory: %v", err)
	}
	return filepath.Join(wd, "logs")
}

func initLogger() {
	once.Do(func() {
		dir := logsDir()
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			log.Fatalf("Error find/create logs directory: %v", err)
		}

		logFile := &lumberjack.Logger{
			Filename:   filepath.Join(dir, "engine.log"),
			MaxSize:    10, // megabytes
			MaxBackups: 5,
			MaxAge:     28,   // days
			Compress:   true, // gzip
		}

		encoderCfg := zap.NewProductionEncoderConfig()
		encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

		fileCore := zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderCfg),
			zapcore.AddSync(logFile),
			zap.InfoLevel,
		)

		var built *zap.Logger
		if IsProduction() {
			built = zap.New(fileCore, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
		} else {
			consoleEncoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
			consoleCore := zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stdout), zap.DebugLevel)

			combinedCore := zapcore.NewTee(fileCore, consoleCore)
			built = zap.New(combinedCore, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
		}

		mu.Lock()
		if logger == nil {
			logger = built
		}
		mu.Unlock()
	})
}

func replaceLogger(l *zap.Logger) {
	initLogger()
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

// SetTestCaptureLogger routes every logger obtained afterwards into buf as JSON lines.
func SetTestCaptureLogger(buf io.Writer, level zapcore.Level) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encoderCfg)

	core := zapcore.NewCore(encoder, zapcore.AddSync(&lockedWriter{w: buf}), level)
	replaceLogger(zap.New(core))
}

func SetTestLoggerNop() {
	replaceLogger(zap.NewNop())
}

// lockedWriter serialises writes from concurrent workers into a shared test buffer.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (lw *lockedWriter) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	return lw.w.Write(p)
}

// ParseLogs decodes captured JSON log lines, skipping anything that is not JSON.
func ParseLogs(r io.Reader) []map[string]any {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var logs []map[string]any

	for scanner.Scan() {
		var j map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &j); err == nil {
			logs = append(logs, j)
		}
	}
	return logs
}

// FindLog returns the first captured line matching logger, msg and category.
func FindLog(buf *bytes.Buffer, loggerName, msg, category string) (map[string]any, bool) {
	for _, l := range ParseLogs(bytes.NewReader(buf.Bytes())) {
		if l["logger"] == loggerName && l["msg"] == msg && l[LoggerFieldCategory] == category {
			return l, true
		}
	}
	return nil, false
}
