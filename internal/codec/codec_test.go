package codec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leandrodaf/midiinterp/internal/codec"
	"github.com/leandrodaf/midiinterp/sdk/contracts"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		msg  []byte
		want contracts.Event
	}{
		{"note on", []byte{0x92, 60, 127}, contracts.NoteOn(4, 2, 60, 1)},
		{"note on velocity zero", []byte{0x90, 61, 0}, contracts.NoteOff(4, 0, 61, 0)},
		{"note off", []byte{0x8F, 62, 0}, contracts.NoteOff(4, 15, 62, 0)},
		{"control change", []byte{0xB3, 7, 100}, contracts.Other(4, 3, []byte{0xB3, 7, 100})},
		{"clock", []byte{0xF8}, contracts.Other(4, 0, []byte{0xF8})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, codec.Decode(tt.msg, 4))
		})
	}
}

func TestDecodeCaptured(t *testing.T) {
	ev := codec.DecodeCaptured(contracts.MIDI{Status: 0x91, Data1: 64, Data2: 127}, 9)
	assert.Equal(t, contracts.NoteOn(9, 1, 64, 1), ev)
}

func TestEncode(t *testing.T) {
	assert.Equal(t, []byte{0x90, 66, 76}, codec.Encode(contracts.NoteOn(0, 0, 66, 0.6)))
	assert.Equal(t, []byte{0x91, 60, 1}, codec.Encode(contracts.NoteOn(0, 1, 60, 0)), "note-on keeps a non-zero velocity")
	assert.Equal(t, []byte{0x92, 60, 127}, codec.Encode(contracts.NoteOn(0, 2, 60, 1.5)))
	assert.Equal(t, []byte{0x83, 60, 0}, codec.Encode(contracts.NoteOff(0, 3, 60, 0)))

	raw := []byte{0xE0, 0, 64}
	assert.Equal(t, raw, codec.Encode(contracts.Other(0, 0, raw)))
}

func TestEncodeDecodeNoteOn(t *testing.T) {
	ev := contracts.NoteOn(0, 5, 72, 100.0/127)
	assert.Equal(t, ev, codec.Decode(codec.Encode(ev), 0))
}

func TestSplit(t *testing.T) {
	packet := []byte{
		// running status
		0x90, 60, 100, 62, 90,
		// clock inside the stream
		0xF8,
		// still running status
		64, 80,
		// program change, sysex, note off
		0xC1, 5,
		0xF0, 1, 2, 0xF7,
		0x80, 60, 0,
	}

	var got [][]byte
	codec.Split(packet, func(msg []byte) {
		got = append(got, append([]byte(nil), msg...))
	})

	assert.Equal(t, [][]byte{
		{0x90, 60, 100},
		{0x90, 62, 90},
		{0xF8},
		{0x90, 64, 80},
		{0xC1, 5},
		{0xF0, 1, 2, 0xF7},
		{0x80, 60, 0},
	}, got)
}

func TestSplitTruncatedAndStray(t *testing.T) {
	var got [][]byte
	codec.Split([]byte{60, 0x90, 61}, func(msg []byte) {
		got = append(got, msg)
	})
	assert.Empty(t, got)
}
