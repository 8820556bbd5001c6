package contracts

// EventKind tags the variant held by an Event.
type EventKind uint8

const (
	// EventOther is any message that is neither a note-on nor a note-off (CC, pitch bend, sysex, ...).
	EventOther EventKind = iota
	// EventNoteOn is a note-on with a non-zero velocity.
	EventNoteOn
	// EventNoteOff is a note-off, including a note-on carrying velocity zero.
	EventNoteOff
)

// String returns the name of the kind.
func (k EventKind) String() string {
	switch k {
	case EventNoteOn:
		return "NoteOn"
	case EventNoteOff:
		return "NoteOff"
	default:
		return "Other"
	}
}

// Event is a single timestamped MIDI event inside a processing block.
//
// Timing is the offset, in frames, relative to the start of the block. Equal
// timings denote simultaneous events. Channel is 0-based (0-15).
type Event struct {
	Kind     EventKind
	Timing   uint32
	Channel  uint8
	Note     uint8   // 0-127, note events only.
	Velocity float32 // 0.0-1.0, note events only.
	Data     []byte  // Raw wire bytes, kept for EventOther so it can be forwarded verbatim.
}

// NoteOn builds a note-on event.
func NoteOn(timing uint32, channel, note uint8, velocity float32) Event {
	return Event{Kind: EventNoteOn, Timing: timing, Channel: channel, Note: note, Velocity: velocity}
}

// NoteOff builds a note-off event.
func NoteOff(timing uint32, channel, note uint8, velocity float32) Event {
	return Event{Kind: EventNoteOff, Timing: timing, Channel: channel, Note: note, Velocity: velocity}
}

// Other builds a catch-all event around raw message bytes.
func Other(timing uint32, channel uint8, data []byte) Event {
	return Event{Kind: EventOther, Timing: timing, Channel: channel, Data: data}
}

// EventSink consumes processed events in the order they are emitted.
type EventSink interface {
	Send(event Event) error
}
