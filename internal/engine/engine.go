// Package engine blends the note-ons of two source channels into a single
// stream of synthesized notes.
//
// Process is called once per block from the real-time thread. It performs no
// I/O, takes no locks and, given a destination with enough capacity, does not
// allocate: every synthesized event replaces at least one source note-on, so
// the output is never longer than the input.
package engine

import "github.com/leandrodaf/midiinterp/sdk/contracts"

// Config is the per-block snapshot of the engine parameters. Channels are
// 0-based.
type Config struct {
	Mix      float32
	ChannelA uint8
	ChannelB uint8
}

// Process routes src into dst and returns the extended slice.
//
// Note-offs and other messages are forwarded as they come. Note-ons on
// ChannelA or ChannelB are accumulated per timing and replaced by one
// interpolated note-on, emitted at the accumulated timing as soon as a later
// note-on shows up. A flush triggered by a source note-on is sent on that
// note's channel; one triggered by any other note-on, or by the end of the
// block, is sent on ChannelA.
func Process(dst, src []contracts.Event, cfg Config) []contracts.Event {
	var (
		acc  Accumulator
		held uint32
	)

	for _, ev := range src {
		if ev.Kind != contracts.EventNoteOn {
			dst = append(dst, ev)
			continue
		}

		isA := ev.Channel == cfg.ChannelA
		isB := ev.Channel == cfg.ChannelB

		if ev.Timing > held && !acc.Empty() {
			out := cfg.ChannelA
			if isA || isB {
				out = ev.Channel
			}
			if flushed, ok := acc.Flush(cfg.Mix, held, out); ok {
				dst = append(dst, flushed)
			}
		}

		if !isA && !isB {
			dst = append(dst, ev)
			continue
		}

		if isA {
			acc.AddA(ev.Note, ev.Velocity)
		}
		if isB {
			acc.AddB(ev.Note, ev.Velocity)
		}
		held = ev.Timing
	}

	if flushed, ok := acc.Flush(cfg.Mix, held, cfg.ChannelA); ok {
		dst = append(dst, flushed)
	}
	return dst
}
