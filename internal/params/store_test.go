package params_test

import (
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leandrodaf/midiinterp/internal/engine"
	"github.com/leandrodaf/midiinterp/internal/params"
)

func TestNewStoreDefaults(t *testing.T) {
	s := params.NewStore()

	assert.Equal(t, float32(0.5), s.Mix())
	a, b := s.Channels()
	assert.Equal(t, 1, a)
	assert.Equal(t, 2, b)
	assert.Equal(t, engine.Config{Mix: 0.5, ChannelA: 0, ChannelB: 1}, s.Snapshot())
}

func TestSetMix(t *testing.T) {
	s := params.NewStore()

	require.NoError(t, s.SetMix(0))
	assert.Equal(t, float32(0), s.Mix())
	require.NoError(t, s.SetMix(1))
	assert.Equal(t, float32(1), s.Mix())

	for _, bad := range []float32{-0.01, 1.01, float32(math.NaN()), float32(math.Inf(1))} {
		err := s.SetMix(bad)
		assert.ErrorIs(t, err, params.ErrInvalidMix)
	}
	assert.Equal(t, float32(1), s.Mix(), "rejected values must not be stored")
}

func TestSetChannels(t *testing.T) {
	s := params.NewStore()

	require.NoError(t, s.SetChannelA(16))
	require.NoError(t, s.SetChannelB(16))
	assert.Equal(t, engine.Config{Mix: 0.5, ChannelA: 15, ChannelB: 15}, s.Snapshot())

	assert.ErrorIs(t, s.SetChannelA(0), params.ErrInvalidChannel)
	assert.ErrorIs(t, s.SetChannelB(17), params.ErrInvalidChannel)

	a, b := s.Channels()
	assert.Equal(t, 16, a)
	assert.Equal(t, 16, b)
}

func TestConcurrentWritersAndReader(t *testing.T) {
	s := params.NewStore()
	var wg sync.WaitGroup

	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				_ = s.SetMix(float32(i%11) / 10)
				_ = s.SetChannelA(1 + (i+w)%16)
				_ = s.SetChannelB(1 + (i*w)%16)
			}
		}(w)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			snap := s.Snapshot()
			assert.NoError(t, params.ValidateMix(snap.Mix))
			assert.Less(t, snap.ChannelA, uint8(16))
			assert.Less(t, snap.ChannelB, uint8(16))
		}
	}()

	wg.Wait()
	<-done
}

func TestValidateTiming(t *testing.T) {
	require.NoError(t, params.ValidateTiming(48000, 256))
	assert.Equal(t, 5*time.Millisecond, params.BlockDuration(1000, 5))

	tests := []struct {
		name       string
		sampleRate float64
		blockSize  int
	}{
		{"zero sample rate", 0, 256},
		{"negative block size", 48000, -1},
		{"NaN sample rate", math.NaN(), 256},
		{"block shorter than a nanosecond", 1e12, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, params.ValidateTiming(tt.sampleRate, tt.blockSize), params.ErrInvalidTiming)
		})
	}
}
