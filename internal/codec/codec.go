// Package codec converts between raw MIDI wire messages and block events.
package codec

import (
	"math"

	gomidi "gitlab.com/gomidi/midi/v2"

	"github.com/leandrodaf/midiinterp/sdk/contracts"
)

const maxData = 127

// Decode turns one complete wire message into an event at timing.
// A note-on with velocity zero is a note-off.
func Decode(msg []byte, timing uint32) contracts.Event {
	m := gomidi.Message(msg)

	var channel, key, velocity uint8
	switch {
	case m.GetNoteOn(&channel, &key, &velocity):
		if velocity == 0 {
			return contracts.NoteOff(timing, channel, key, 0)
		}
		return contracts.NoteOn(timing, channel, key, float32(velocity)/maxData)
	case m.GetNoteOff(&channel, &key, &velocity):
		return contracts.NoteOff(timing, channel, key, float32(velocity)/maxData)
	}

	m.GetChannel(&channel)
	return contracts.Other(timing, channel, msg)
}

// DecodeCaptured decodes a message captured by a ClientMIDI.
func DecodeCaptured(c contracts.MIDI, timing uint32) contracts.Event {
	return Decode(c.Bytes(), timing)
}

// Encode returns the wire form of an event. Velocities are scaled to seven
// bits; a note-on never encodes to velocity zero so it is not read back as a
// note-off.
func Encode(e contracts.Event) []byte {
	switch e.Kind {
	case contracts.EventNoteOn:
		return gomidi.NoteOn(e.Channel, e.Note&maxData, velocity7(e.Velocity, 1))
	case contracts.EventNoteOff:
		return gomidi.NoteOffVelocity(e.Channel, e.Note&maxData, velocity7(e.Velocity, 0))
	default:
		return e.Data
	}
}

func velocity7(v float32, floor uint8) uint8 {
	scaled := math.Round(float64(v) * maxData)
	switch {
	case math.IsNaN(scaled) || scaled < float64(floor):
		return floor
	case scaled > maxData:
		return maxData
	default:
		return uint8(scaled)
	}
}

// Split walks a packet that may hold several messages and calls fn for each
// one. Running status is expanded so every message passed to fn starts with
// its status byte. System exclusive messages are passed whole; stray data
// bytes without a known status are skipped.
func Split(packet []byte, fn func(msg []byte)) {
	var running byte

	for i := 0; i < len(packet); {
		b := packet[i]

		switch {
		case b == 0xF0:
			end := i + 1
			for end < len(packet) && packet[end] != 0xF7 {
				end++
			}
			if end < len(packet) {
				end++
			}
			fn(packet[i:end])
			i = end
			running = 0
			continue
		case b >= 0xF8:
			// Real-time messages may appear anywhere and leave running status alone.
			fn(packet[i : i+1])
			i++
			continue
		case b >= 0xF0:
			n := 1 + systemDataLen(b)
			if i+n > len(packet) {
				return
			}
			fn(packet[i : i+n])
			i += n
			running = 0
			continue
		case b&0x80 != 0:
			running = b
			i++
		case running == 0:
			i++
			continue
		}

		n := channelDataLen(running)
		if i+n > len(packet) {
			return
		}
		msg := make([]byte, 0, n+1)
		msg = append(msg, running)
		msg = append(msg, packet[i:i+n]...)
		fn(msg)
		i += n
	}
}

func channelDataLen(status byte) int {
	switch status & 0xF0 {
	case 0xC0, 0xD0:
		return 1
	default:
		return 2
	}
}

func systemDataLen(status byte) int {
	switch status {
	case 0xF1, 0xF3:
		return 1
	case 0xF2:
		return 2
	default:
		return 0
	}
}
