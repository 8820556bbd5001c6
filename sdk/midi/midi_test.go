package midi

import (
	"errors"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/leandrodaf/midiinterp/internal/logger"
	"github.com/leandrodaf/midiinterp/sdk/contracts"
)

func TestApplyDefaultOptions(t *testing.T) {
	options, err := applyDefaultOptions()
	require.NoError(t, err)

	assert.NotNil(t, options.Logger)
	assert.Equal(t, contracts.InfoLevel, options.LogLevel)
	assert.Equal(t, "midiinterp", options.CoreMIDIConfig.ClientName)
	assert.Nil(t, options.MIDIEventFilter)
}

func TestApplyOptionsOverridesDefaults(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := logger.NewWithCore(core)

	options, err := applyDefaultOptions(
		contracts.WithLogger(log),
		contracts.WithLogLevel(contracts.ErrorLevel),
		contracts.WithCoreMIDIConfig(contracts.CoreMIDIConfig{ClientName: "bench"}),
		contracts.WithMIDIEventFilter(contracts.MIDIEventFilter{Commands: []contracts.MIDICommand{contracts.CommandNoteOn}}),
		nil,
	)
	require.NoError(t, err)

	assert.Equal(t, "bench", options.CoreMIDIConfig.ClientName)
	assert.True(t, options.MIDIEventFilter.Allows(contracts.CommandNoteOn))
	assert.False(t, options.MIDIEventFilter.Allows(contracts.CommandControlChange))

	options.Logger.Warn("below the configured level")
	assert.Zero(t, logs.Len())
}

func TestNewClientOnUnsupportedOS(t *testing.T) {
	if _, ok := clientInitializers[runtime.GOOS]; ok {
		t.Skip("native backend available on " + runtime.GOOS)
	}

	_, err := NewMIDIClient(contracts.WithLogger(logger.NewNopLogger()))
	assert.True(t, errors.Is(err, ErrUnsupportedOS))
}

func TestSliceSink(t *testing.T) {
	var sink SliceSink
	require.NoError(t, sink.Send(contracts.NoteOn(0, 0, 60, 1)))
	require.NoError(t, sink.Send(contracts.NoteOff(1, 0, 60, 0)))

	events := sink.Events()
	require.Len(t, events, 2)
	events[0].Note = 0
	assert.Equal(t, uint8(60), sink.Events()[0].Note, "Events returns a copy")
}
