// Package capture holds the delivery logic shared by the platform MIDI clients.
package capture

import (
	"sync/atomic"
	"time"

	"github.com/leandrodaf/midiinterp/internal/codec"
	"github.com/leandrodaf/midiinterp/sdk/contracts"
)

// Sink forwards captured messages to the channel registered by StartCapture.
// Delivery never blocks the driver callback: when the channel is full the
// message is dropped and counted.
type Sink struct {
	logger  contracts.Logger
	filter  *contracts.MIDIEventFilter
	channel atomic.Value // chan contracts.MIDI
	dropped atomic.Uint64
	now     func() time.Time
}

// NewSink creates a sink applying filter (nil allows everything).
func NewSink(logger contracts.Logger, filter *contracts.MIDIEventFilter) *Sink {
	return &Sink{logger: logger, filter: filter, now: time.Now}
}

// Attach registers the destination channel. A nil channel detaches it.
func (s *Sink) Attach(ch chan contracts.MIDI) {
	s.channel.Store(ch)
}

// Attached reports whether a destination channel is registered.
func (s *Sink) Attached() bool {
	ch, _ := s.channel.Load().(chan contracts.MIDI)
	return ch != nil
}

// Dropped returns how many messages were discarded because the channel was full.
func (s *Sink) Dropped() uint64 {
	return s.dropped.Load()
}

// Packet splits a raw packet into messages and delivers each one.
func (s *Sink) Packet(data []byte) {
	ts := uint64(s.now().UnixNano())
	codec.Split(data, func(msg []byte) {
		if len(msg) > 3 {
			s.logger.Debug("system exclusive message ignored", s.logger.Field().Int("length", len(msg)))
			return
		}
		m := contracts.MIDI{Timestamp: ts, Status: msg[0]}
		if len(msg) > 1 {
			m.Data1 = msg[1]
		}
		if len(msg) > 2 {
			m.Data2 = msg[2]
		}
		s.Deliver(m)
	})
}

// Message stamps and delivers a single short message.
func (s *Sink) Message(status, data1, data2 byte) {
	s.Deliver(contracts.MIDI{
		Timestamp: uint64(s.now().UnixNano()),
		Status:    status,
		Data1:     data1,
		Data2:     data2,
	})
}

// Deliver sends one message, applying the filter.
func (s *Sink) Deliver(m contracts.MIDI) {
	if m.Status < 0xF0 && !s.filter.Allows(m.Command()) {
		return
	}

	ch, _ := s.channel.Load().(chan contracts.MIDI)
	if ch == nil {
		return
	}

	select {
	case ch <- m:
	default:
		if n := s.dropped.Add(1); n == 1 || n%100 == 0 {
			s.logger.Warn("event buffer full; dropping MIDI event", s.logger.Field().Uint64("dropped", n))
		}
	}
}
