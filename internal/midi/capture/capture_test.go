package capture

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leandrodaf/midiinterp/internal/logger"
	"github.com/leandrodaf/midiinterp/sdk/contracts"
)

func newTestSink(filter *contracts.MIDIEventFilter) *Sink {
	s := NewSink(logger.NewNopLogger(), filter)
	s.now = func() time.Time { return time.Unix(0, 42) }
	return s
}

func TestPacketDeliversEachMessage(t *testing.T) {
	s := newTestSink(nil)
	ch := make(chan contracts.MIDI, 8)
	s.Attach(ch)

	s.Packet([]byte{0x91, 60, 100, 64, 90, 0xC0, 3, 0xF0, 1, 2, 0xF7})
	close(ch)

	var got []contracts.MIDI
	for m := range ch {
		got = append(got, m)
	}
	assert.Equal(t, []contracts.MIDI{
		{Timestamp: 42, Status: 0x91, Data1: 60, Data2: 100},
		{Timestamp: 42, Status: 0x91, Data1: 64, Data2: 90},
		{Timestamp: 42, Status: 0xC0, Data1: 3},
	}, got)
}

func TestDeliverAppliesFilterOnCommandNibble(t *testing.T) {
	s := newTestSink(&contracts.MIDIEventFilter{Commands: []contracts.MIDICommand{contracts.CommandNoteOn}})
	ch := make(chan contracts.MIDI, 4)
	s.Attach(ch)

	s.Deliver(contracts.MIDI{Status: 0x9A, Data1: 1, Data2: 1})
	s.Deliver(contracts.MIDI{Status: 0xB0, Data1: 7, Data2: 1})
	s.Deliver(contracts.MIDI{Status: 0xF8})

	require.Len(t, ch, 2)
	assert.Equal(t, byte(0x9A), (<-ch).Status)
	assert.Equal(t, byte(0xF8), (<-ch).Status)
}

func TestDeliverDropsWhenFull(t *testing.T) {
	s := newTestSink(nil)
	assert.False(t, s.Attached())
	s.Deliver(contracts.MIDI{Status: 0x90, Data1: 1, Data2: 1})

	ch := make(chan contracts.MIDI, 1)
	s.Attach(ch)
	assert.True(t, s.Attached())

	s.Deliver(contracts.MIDI{Status: 0x90, Data1: 1, Data2: 1})
	s.Deliver(contracts.MIDI{Status: 0x90, Data1: 2, Data2: 1})

	assert.Len(t, ch, 1)
	assert.Equal(t, uint64(1), s.Dropped())
}

func TestMessageStampsTime(t *testing.T) {
	s := newTestSink(nil)
	ch := make(chan contracts.MIDI, 1)
	s.Attach(ch)

	s.Message(0x80, 60, 0)

	assert.Equal(t, contracts.MIDI{Timestamp: 42, Status: 0x80, Data1: 60}, <-ch)
}
