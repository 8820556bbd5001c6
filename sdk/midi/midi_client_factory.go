package midi

import (
	"github.com/leandrodaf/midiinterp/sdk/contracts"
)

// NewMIDIClient creates a capture client for the current platform with the
// specified options applied on top of the defaults.
func NewMIDIClient(opts ...contracts.Option) (contracts.ClientMIDI, error) {
	options, err := applyDefaultOptions(opts...)
	if err != nil {
		return nil, err
	}

	return NewClient(&options)
}
