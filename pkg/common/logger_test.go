package common

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	_ "liyu1981.xyz/aqua-condition-service/pkg/testing"
)

func TestLoggingCapture(t *testing.T) {
	var buf bytes.Buffer
	SetTestCaptureLogger(&buf, zapcore.InfoLevel)

	logger := GetLoggerWith(LoggerNameEngineCore, zap.String(LoggerFieldCategory, LoggerCategoryRule))
	logger.Info("Rule saved", zap.String("tankId", "tank-1"))
	logger.Debug("dropped below level")

	entry, found := FindLog(&buf, LoggerNameEngineCore, "Rule saved", LoggerCategoryRule)
	assert.True(t, found)
	assert.Equal(t, "tank-1", entry["tankId"])

	_, found = FindLog(&buf, LoggerNameEngineCore, "dropped below level", LoggerCategoryRule)
	assert.False(t, found)
}

func TestParseLogsSkipsNonJSON(t *testing.T) {
	input := bytes.NewBufferString("{\"msg\":\"a\"}\nnot json\n{\"msg\":\"b\"}\n")
	logs := ParseLogs(input)
	assert.Len(t, logs, 2)
	assert.Equal(t, "b", logs[1]["msg"])
}
