// Package params holds the interpolator parameters shared between the
// configuration owner and the processing thread.
package params

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/leandrodaf/midiinterp/internal/engine"
)

const (
	// MinChannel and MaxChannel bound the external, 1-based channel numbers.
	MinChannel = 1
	MaxChannel = 16

	DefaultMix      float32 = 0.5
	DefaultChannelA         = 1
	DefaultChannelB         = 2
)

var (
	ErrInvalidMix     = errors.New("mix must be within [0, 1]")
	ErrInvalidChannel = errors.New("channel must be within [1, 16]")
	ErrInvalidTiming  = errors.New("sample rate and block size must give a positive block duration")
)

// Store keeps each parameter in its own atomic cell. Writers and the
// processing thread never block each other; a reader may observe a value
// that is one update stale.
type Store struct {
	mix      atomic.Uint32 // float32 bits
	channelA atomic.Uint32
	channelB atomic.Uint32
}

// NewStore returns a store holding the default parameters.
func NewStore() *Store {
	s := &Store{}
	s.mix.Store(math.Float32bits(DefaultMix))
	s.channelA.Store(DefaultChannelA)
	s.channelB.Store(DefaultChannelB)
	return s
}

// ValidateMix checks that mix is a finite value within [0, 1].
func ValidateMix(mix float32) error {
	if math.IsNaN(float64(mix)) || mix < 0 || mix > 1 {
		return fmt.Errorf("%w: got %v", ErrInvalidMix, mix)
	}
	return nil
}

// ValidateChannel checks a 1-based channel number.
func ValidateChannel(channel int) error {
	if channel < MinChannel || channel > MaxChannel {
		return fmt.Errorf("%w: got %d", ErrInvalidChannel, channel)
	}
	return nil
}

// BlockDuration is the wall-clock length of blockSize frames at sampleRate.
// It truncates to whole nanoseconds.
func BlockDuration(sampleRate float64, blockSize int) time.Duration {
	return time.Duration(float64(blockSize) / sampleRate * float64(time.Second))
}

// ValidateTiming checks that the sample rate and block size are positive and
// that one block lasts at least a nanosecond.
func ValidateTiming(sampleRate float64, blockSize int) error {
	if math.IsNaN(sampleRate) || sampleRate <= 0 || blockSize <= 0 || BlockDuration(sampleRate, blockSize) <= 0 {
		return fmt.Errorf("%w: sampleRate=%v blockSize=%d", ErrInvalidTiming, sampleRate, blockSize)
	}
	return nil
}

// SetMix stores a new mix ratio. Invalid values leave the store unchanged.
func (s *Store) SetMix(mix float32) error {
	if err := ValidateMix(mix); err != nil {
		return err
	}
	s.mix.Store(math.Float32bits(mix))
	return nil
}

// SetChannelA stores the 1-based channel of side A.
func (s *Store) SetChannelA(channel int) error {
	if err := ValidateChannel(channel); err != nil {
		return fmt.Errorf("channel A: %w", err)
	}
	s.channelA.Store(uint32(channel))
	return nil
}

// SetChannelB stores the 1-based channel of side B.
func (s *Store) SetChannelB(channel int) error {
	if err := ValidateChannel(channel); err != nil {
		return fmt.Errorf("channel B: %w", err)
	}
	s.channelB.Store(uint32(channel))
	return nil
}

// Mix returns the current mix ratio.
func (s *Store) Mix() float32 {
	return math.Float32frombits(s.mix.Load())
}

// Channels returns the current 1-based source channels.
func (s *Store) Channels() (channelA, channelB int) {
	return int(s.channelA.Load()), int(s.channelB.Load())
}

// Snapshot reads every parameter once and converts the channels to the
// 0-based numbering used on the wire.
func (s *Store) Snapshot() engine.Config {
	return engine.Config{
		Mix:      s.Mix(),
		ChannelA: uint8(s.channelA.Load() - 1),
		ChannelB: uint8(s.channelB.Load() - 1),
	}
}
