package interpolator

import (
	"github.com/leandrodaf/midiinterp/internal/logger"
	"github.com/leandrodaf/midiinterp/internal/params"
	"github.com/leandrodaf/midiinterp/sdk/contracts"
)

// ErrInvalidTiming is returned when the sample rate and block size do not
// give a positive block duration.
var ErrInvalidTiming = params.ErrInvalidTiming

const (
	defaultSampleRate = 48000
	defaultBlockSize  = 256
)

// applyDefaultOptions starts from the defaults, applies opts on top and
// validates the result.
func applyDefaultOptions(opts ...contracts.InterpolatorOption) (contracts.InterpolatorOptions, error) {
	options := contracts.InterpolatorOptions{
		Mix:        params.DefaultMix,
		ChannelA:   params.DefaultChannelA,
		ChannelB:   params.DefaultChannelB,
		SampleRate: defaultSampleRate,
		BlockSize:  defaultBlockSize,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}

	if options.Logger == nil {
		options.Logger = logger.NewZapLogger()
	}

	if err := params.ValidateTiming(options.SampleRate, options.BlockSize); err != nil {
		return options, err
	}
	return options, nil
}
