package midi

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/leandrodaf/midiinterp/internal/midi/mididarwin"
	"github.com/leandrodaf/midiinterp/internal/midi/midiwindows"
	"github.com/leandrodaf/midiinterp/sdk/contracts"
)

// ErrUnsupportedOS is returned when the operating system is not supported by the MIDI client.
var ErrUnsupportedOS = errors.New("unsupported operating system")

// clientInitializers maps OS names to corresponding MIDI client initializers.
var clientInitializers = map[string]func(*contracts.ClientOptions) (contracts.ClientMIDI, error){
	"darwin":  mididarwin.NewMIDIClient,
	"windows": midiwindows.NewMIDIClient,
}

// NewClient initializes the capture client of the current operating system.
// It returns ErrUnsupportedOS on platforms without a native backend.
func NewClient(opts *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	if initializer, exists := clientInitializers[runtime.GOOS]; exists {
		return initializer(opts)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedOS, runtime.GOOS)
}
