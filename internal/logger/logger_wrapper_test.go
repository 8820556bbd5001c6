package logger

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/leandrodaf/midiinterp/sdk/contracts"
)

func TestZapLoggerWritesStructuredFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewWithCore(core)

	log.Info("mix changed",
		log.Field().Float64("mix", 0.25),
		log.Field().Int("channelA", 3),
		log.Field().Error("error", errors.New("boom")),
	)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "mix changed", entry.Message)
	assert.Equal(t, zapcore.InfoLevel, entry.Level)
	ctx := entry.ContextMap()
	assert.Equal(t, 0.25, ctx["mix"])
	assert.Equal(t, int64(3), ctx["channelA"])
	assert.Equal(t, "boom", ctx["error"])
}

func TestZapLoggerSetLevel(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewWithCore(core)

	log.SetLevel(contracts.WarnLevel)
	log.Debug("hidden")
	log.Info("hidden")
	log.Warn("shown")
	log.Error("shown")

	assert.Equal(t, 2, logs.Len())
	assert.Equal(t, 2, logs.FilterMessage("shown").Len())
}

func TestZapLoggerIgnoresForeignFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewWithCore(core)

	log.Info("entry", nil)

	require.Equal(t, 1, logs.Len())
	assert.Empty(t, logs.All()[0].Context)
}

func TestZapLoggerFileDestination(t *testing.T) {
	path := filepath.Join(t.TempDir(), "interp.log")
	log := NewZapLogger()

	log.SetDestination(contracts.FileLog, path)
	log.Info("to file", log.Field().String("device", "keys"))
	log.SetDestination(contracts.ConsoleLog)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"to file"`)
	assert.Contains(t, string(data), `"device":"keys"`)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, contracts.DebugLevel, contracts.ParseLogLevel("debug"))
	assert.Equal(t, contracts.WarnLevel, contracts.ParseLogLevel("warning"))
	assert.Equal(t, contracts.InfoLevel, contracts.ParseLogLevel("nonsense"))
	assert.Equal(t, zapcore.ErrorLevel, toZapLevel(contracts.ErrorLevel))
}
