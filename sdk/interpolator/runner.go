package interpolator

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/leandrodaf/midiinterp/internal/codec"
	"github.com/leandrodaf/midiinterp/internal/params"
	"github.com/leandrodaf/midiinterp/sdk/contracts"
)

// ErrRunnerStarted is returned when Run is called on a runner that is already running.
var ErrRunnerStarted = errors.New("runner already started")

const initialBlockCapacity = 256

// Runner slices a live stream of captured messages into fixed-length blocks,
// runs each block through the Interpolator and forwards the result to a sink.
type Runner struct {
	interp  *Interpolator
	sink    contracts.EventSink
	logger  contracts.Logger
	now     func() time.Time
	running atomic.Bool

	blocks     atomic.Uint64
	sent       atomic.Uint64
	sendErrors atomic.Uint64

	pending []contracts.MIDI
	events  []contracts.Event
	out     []contracts.Event
}

// Stats counts what a runner has done so far.
type Stats struct {
	Blocks     uint64
	Sent       uint64
	SendErrors uint64
}

// NewRunner creates a runner sending the processed events to sink.
func NewRunner(interp *Interpolator, sink contracts.EventSink) *Runner {
	return &Runner{
		interp:  interp,
		sink:    sink,
		logger:  interp.logger,
		now:     time.Now,
		pending: make([]contracts.MIDI, 0, initialBlockCapacity),
		events:  make([]contracts.Event, 0, initialBlockCapacity),
		out:     make([]contracts.Event, 0, initialBlockCapacity),
	}
}

// BlockDuration is the wall-clock length of one block.
func (r *Runner) BlockDuration() time.Duration {
	return params.BlockDuration(r.interp.sampleRate, r.interp.blockSize)
}

// Running reports whether Run is in progress.
func (r *Runner) Running() bool {
	return r.running.Load()
}

// Stats returns a snapshot of the runner counters.
func (r *Runner) Stats() Stats {
	return Stats{
		Blocks:     r.blocks.Load(),
		Sent:       r.sent.Load(),
		SendErrors: r.sendErrors.Load(),
	}
}

// Run collects messages from src and processes one block per BlockDuration.
// It returns when ctx is cancelled or src is closed, after processing the
// messages still pending.
func (r *Runner) Run(ctx context.Context, src <-chan contracts.MIDI) error {
	if !r.running.CompareAndSwap(false, true) {
		return ErrRunnerStarted
	}
	defer r.running.Store(false)

	ticker := time.NewTicker(r.BlockDuration())
	defer ticker.Stop()

	r.logger.Info("runner started",
		r.logger.Field().Int("blockSize", r.interp.blockSize),
		r.logger.Field().Float64("sampleRate", r.interp.sampleRate))

	blockStart := r.now()
	for {
		select {
		case <-ctx.Done():
			r.flushPending(blockStart)
			r.logger.Info("runner stopped", r.logger.Field().Uint64("blocks", r.blocks.Load()))
			return nil
		case msg, ok := <-src:
			if !ok {
				r.flushPending(blockStart)
				r.logger.Info("input closed; runner stopped", r.logger.Field().Uint64("blocks", r.blocks.Load()))
				return nil
			}
			r.pending = append(r.pending, msg)
		case tick := <-ticker.C:
			r.flushPending(blockStart)
			blockStart = tick
		}
	}
}

func (r *Runner) flushPending(blockStart time.Time) {
	if len(r.pending) == 0 {
		return
	}
	r.ProcessBatch(uint64(blockStart.UnixNano()), r.pending)
	r.pending = r.pending[:0]
}

// ProcessBatch runs msgs as one block starting at blockStart (nanoseconds)
// and returns how many events reached the sink. It must not be called
// concurrently with Run.
func (r *Runner) ProcessBatch(blockStart uint64, msgs []contracts.MIDI) int {
	r.events = r.events[:0]
	var last uint32
	for _, msg := range msgs {
		last = r.offset(blockStart, msg.Timestamp, last)
		r.events = append(r.events, codec.DecodeCaptured(msg, last))
	}

	r.out = r.interp.Process(r.out[:0], r.events)
	r.blocks.Add(1)

	sent := 0
	for _, ev := range r.out {
		if err := r.sink.Send(ev); err != nil {
			r.sendErrors.Add(1)
			r.logger.Error("failed to send event",
				r.logger.Field().String("kind", ev.Kind.String()),
				r.logger.Field().Uint8("channel", ev.Channel+1),
				r.logger.Field().Error("error", err))
			continue
		}
		sent++
	}
	r.sent.Add(uint64(sent))
	return sent
}

// offset converts a capture timestamp into a frame offset inside the block.
// Offsets never go backwards and never leave the block.
func (r *Runner) offset(blockStart, timestamp uint64, previous uint32) uint32 {
	var frames uint64
	if timestamp > blockStart {
		frames = uint64(float64(timestamp-blockStart) * r.interp.sampleRate / float64(time.Second))
	}

	limit := uint64(r.interp.blockSize - 1)
	if frames > limit {
		frames = limit
	}
	if uint32(frames) < previous {
		return previous
	}
	return uint32(frames)
}
