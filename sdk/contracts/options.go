package contracts

// MIDICommand represents the types of MIDI commands for event filtering.
type MIDICommand byte

const (
	// CommandNoteOn is the MIDI command for a Note On event (0x90).
	CommandNoteOn MIDICommand = 0x90
	// CommandNoteOff is the MIDI command for a Note Off event (0x80).
	CommandNoteOff MIDICommand = 0x80
	// CommandControlChange is the MIDI command for a Control Change event (0xB0).
	CommandControlChange MIDICommand = 0xB0
	// CommandPitchBend is the MIDI command for a Pitch Bend event (0xE0).
	CommandPitchBend MIDICommand = 0xE0
)

// MIDIEventFilter allows users to specify which MIDI commands to capture.
type MIDIEventFilter struct {
	Commands []MIDICommand // List of MIDI commands to filter.
}

// Allows reports whether a command passes the filter. A nil filter allows everything.
func (f *MIDIEventFilter) Allows(command MIDICommand) bool {
	if f == nil {
		return true
	}
	for _, allowed := range f.Commands {
		if command == allowed {
			return true
		}
	}
	return false
}

// CoreMIDIConfig holds configuration for CoreMIDI.
type CoreMIDIConfig struct {
	ClientName string // Name of the MIDI client.
}

// ClientOptions defines the configuration options for the MIDI client.
type ClientOptions struct {
	Logger          Logger           // Logger for logging events and errors.
	LogLevel        LogLevel         // Level of logging to use.
	LogFilePath     string           // File path for logging if file logging is enabled.
	MIDIEventFilter *MIDIEventFilter // Optional filter for MIDI events to capture.
	CoreMIDIConfig  *CoreMIDIConfig  // Configuration specific to CoreMIDI.
}

// Option is a function that modifies ClientOptions.
type Option func(*ClientOptions)

// WithLogger sets the logger for the MIDI client.
func WithLogger(l Logger) Option {
	return func(opts *ClientOptions) {
		opts.Logger = l
	}
}

// WithLogLevel sets the logging level for the MIDI client.
func WithLogLevel(level LogLevel) Option {
	return func(opts *ClientOptions) {
		opts.LogLevel = level
	}
}

// WithLogFile sends the client logs to a file instead of the console.
func WithLogFile(path string) Option {
	return func(opts *ClientOptions) {
		opts.LogFilePath = path
	}
}

// WithMIDIEventFilter sets the MIDI event filter for the MIDI client.
func WithMIDIEventFilter(filter MIDIEventFilter) Option {
	return func(opts *ClientOptions) {
		opts.MIDIEventFilter = &filter
	}
}

// WithCoreMIDIConfig sets the CoreMIDI configuration for the MIDI client.
func WithCoreMIDIConfig(config CoreMIDIConfig) Option {
	return func(opts *ClientOptions) {
		opts.CoreMIDIConfig = &config
	}
}

// InterpolatorOptions defines the configuration of the note interpolator.
// Channels use the external 1-based numbering (1-16).
type InterpolatorOptions struct {
	Logger     Logger  // Logger for configuration changes and runner activity.
	Mix        float32 // Interpolation weight between channel A (0) and channel B (1).
	ChannelA   int     // First source channel.
	ChannelB   int     // Second source channel.
	SampleRate float64 // Frames per second used to convert capture timestamps into block offsets.
	BlockSize  int     // Frames per processing block.
}

// InterpolatorOption is a function that modifies InterpolatorOptions.
type InterpolatorOption func(*InterpolatorOptions)

// WithInterpolatorLogger sets the logger for the interpolator.
func WithInterpolatorLogger(l Logger) InterpolatorOption {
	return func(opts *InterpolatorOptions) {
		opts.Logger = l
	}
}

// WithMix sets the initial mix ratio.
func WithMix(mix float32) InterpolatorOption {
	return func(opts *InterpolatorOptions) {
		opts.Mix = mix
	}
}

// WithChannels sets the two source channels (1-based).
func WithChannels(channelA, channelB int) InterpolatorOption {
	return func(opts *InterpolatorOptions) {
		opts.ChannelA = channelA
		opts.ChannelB = channelB
	}
}

// WithSampleRate sets the frame rate used for block timing.
func WithSampleRate(sampleRate float64) InterpolatorOption {
	return func(opts *InterpolatorOptions) {
		opts.SampleRate = sampleRate
	}
}

// WithBlockSize sets the number of frames per processing block.
func WithBlockSize(blockSize int) InterpolatorOption {
	return func(opts *InterpolatorOptions) {
		opts.BlockSize = blockSize
	}
}
