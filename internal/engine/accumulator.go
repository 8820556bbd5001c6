package engine

import (
	"math"

	"github.com/leandrodaf/midiinterp/sdk/contracts"
)

// side holds the running sums of one source channel since the last flush.
// Counts and sums are reset together.
type side struct {
	count       uint32
	noteSum     uint32
	velocitySum float32
}

func (s *side) add(note uint8, velocity float32) {
	s.count++
	s.noteSum += uint32(note)
	s.velocitySum += velocity
}

func (s *side) mean() (note, velocity float32) {
	n := float32(s.count)
	return float32(s.noteSum) / n, s.velocitySum / n
}

// Accumulator collects simultaneous note-ons of the two source channels.
// The zero value is empty and ready to use.
type Accumulator struct {
	a side
	b side
}

// AddA accumulates a note into side A.
func (acc *Accumulator) AddA(note uint8, velocity float32) {
	acc.a.add(note, velocity)
}

// AddB accumulates a note into side B.
func (acc *Accumulator) AddB(note uint8, velocity float32) {
	acc.b.add(note, velocity)
}

// Empty reports whether nothing was accumulated since the last flush.
func (acc *Accumulator) Empty() bool {
	return acc.a.count == 0 && acc.b.count == 0
}

// Reset clears both sides.
func (acc *Accumulator) Reset() {
	*acc = Accumulator{}
}

// Means returns the mean pitch and velocity of each side. A side without
// events borrows the mean of the other one. Both results are meaningless
// when the accumulator is empty.
func (acc *Accumulator) Means() (noteA, velocityA, noteB, velocityB float32) {
	if acc.a.count > 0 {
		noteA, velocityA = acc.a.mean()
	} else {
		noteA, velocityA = acc.b.mean()
	}
	if acc.b.count > 0 {
		noteB, velocityB = acc.b.mean()
	} else {
		noteB, velocityB = noteA, velocityA
	}
	return noteA, velocityA, noteB, velocityB
}

// Flush converts the held state into one note-on at timing on channel and
// resets the accumulator. It returns false when nothing was held.
func (acc *Accumulator) Flush(mix float32, timing uint32, channel uint8) (contracts.Event, bool) {
	if acc.Empty() {
		return contracts.Event{}, false
	}

	noteA, velocityA, noteB, velocityB := acc.Means()
	note := math.Round(float64(noteA*(1-mix) + noteB*mix))
	velocity := velocityA*(1-mix) + velocityB*mix

	acc.Reset()
	return contracts.NoteOn(timing, channel, uint8(note), velocity), true
}
