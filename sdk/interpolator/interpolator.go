// Package interpolator exposes the note interpolation engine together with
// its parameter store and a block runner for live input.
package interpolator

import (
	"github.com/leandrodaf/midiinterp/internal/engine"
	"github.com/leandrodaf/midiinterp/internal/params"
	"github.com/leandrodaf/midiinterp/sdk/contracts"
)

// Interpolator owns the parameters and runs the engine over blocks of events.
// Setters may be called from any goroutine while Process runs on another.
type Interpolator struct {
	logger     contracts.Logger
	store      *params.Store
	sampleRate float64
	blockSize  int
}

// NewInterpolator creates an interpolator configured by opts.
// Invalid parameters are reported here rather than during processing.
func NewInterpolator(opts ...contracts.InterpolatorOption) (*Interpolator, error) {
	options, err := applyDefaultOptions(opts...)
	if err != nil {
		return nil, err
	}

	in := &Interpolator{
		logger:     options.Logger,
		store:      params.NewStore(),
		sampleRate: options.SampleRate,
		blockSize:  options.BlockSize,
	}
	if err := in.store.SetMix(options.Mix); err != nil {
		return nil, err
	}
	if err := in.store.SetChannelA(options.ChannelA); err != nil {
		return nil, err
	}
	if err := in.store.SetChannelB(options.ChannelB); err != nil {
		return nil, err
	}

	in.logger.Info("interpolator created",
		in.logger.Field().Float64("mix", float64(options.Mix)),
		in.logger.Field().Int("channelA", options.ChannelA),
		in.logger.Field().Int("channelB", options.ChannelB))
	return in, nil
}

// SetMix updates the interpolation weight (0 = channel A, 1 = channel B).
func (in *Interpolator) SetMix(mix float32) error {
	if err := in.store.SetMix(mix); err != nil {
		in.logger.Warn("rejected mix", in.logger.Field().Error("error", err))
		return err
	}
	in.logger.Debug("mix changed", in.logger.Field().Float64("mix", float64(mix)))
	return nil
}

// SetChannelA updates the first source channel (1-16).
func (in *Interpolator) SetChannelA(channel int) error {
	if err := in.store.SetChannelA(channel); err != nil {
		in.logger.Warn("rejected channel", in.logger.Field().Error("error", err))
		return err
	}
	in.logger.Info("channel A changed", in.logger.Field().Int("channel", channel))
	return nil
}

// SetChannelB updates the second source channel (1-16).
func (in *Interpolator) SetChannelB(channel int) error {
	if err := in.store.SetChannelB(channel); err != nil {
		in.logger.Warn("rejected channel", in.logger.Field().Error("error", err))
		return err
	}
	in.logger.Info("channel B changed", in.logger.Field().Int("channel", channel))
	return nil
}

// Mix returns the current mix ratio.
func (in *Interpolator) Mix() float32 {
	return in.store.Mix()
}

// Channels returns the current 1-based source channels.
func (in *Interpolator) Channels() (channelA, channelB int) {
	return in.store.Channels()
}

// BlockSize returns the number of frames per block.
func (in *Interpolator) BlockSize() int {
	return in.blockSize
}

// SampleRate returns the frame rate used for block timing.
func (in *Interpolator) SampleRate() float64 {
	return in.sampleRate
}

// Process runs one block. The parameters are read once at the start; the
// result is appended to dst. When cap(dst)-len(dst) >= len(src) nothing is
// allocated.
func (in *Interpolator) Process(dst, src []contracts.Event) []contracts.Event {
	return engine.Process(dst, src, in.store.Snapshot())
}
