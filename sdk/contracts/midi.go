package contracts

// MIDI is a raw message captured from an input device.
type MIDI struct {
	Timestamp uint64 // Capture time in nanoseconds (monotonic within one client).
	Status    byte   // Status byte, command in the high nibble and channel in the low nibble.
	Data1     byte   // First data byte (note number for note messages).
	Data2     byte   // Second data byte (velocity for note messages).
}

// Command returns the command nibble of the status byte.
func (m MIDI) Command() MIDICommand {
	return MIDICommand(m.Status & 0xF0)
}

// Channel returns the 0-based channel encoded in the status byte.
func (m MIDI) Channel() uint8 {
	return m.Status & 0x0F
}

// Bytes returns the message in wire order, trimmed to the length its status implies.
func (m MIDI) Bytes() []byte {
	switch {
	case m.Status < 0xF0 && (m.Command() == 0xC0 || m.Command() == 0xD0), m.Status == 0xF1, m.Status == 0xF3:
		return []byte{m.Status, m.Data1}
	case m.Status < 0xF0, m.Status == 0xF2:
		return []byte{m.Status, m.Data1, m.Data2}
	default:
		return []byte{m.Status}
	}
}

// ClientMIDI defines an interface for MIDI client operations.
type ClientMIDI interface {
	Stop() error                         // Stops the MIDI client and releases resources.
	ListDevices() ([]DeviceInfo, error)  // Lists all available MIDI devices.
	SelectDevice(deviceID int) error     // Selects a MIDI device by its ID for communication.
	StartCapture(eventChannel chan MIDI) // Starts capturing MIDI events and sends them to the specified channel.
}
