package midi

import (
	"errors"
	"fmt"
	"sync"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"github.com/leandrodaf/midiinterp/internal/codec"
	"github.com/leandrodaf/midiinterp/sdk/contracts"
)

// ErrOutputPortNotFound is returned when no output port matches the requested name.
var ErrOutputPortNotFound = errors.New("MIDI output port not found")

// PortSink sends events to a MIDI output port through the registered gomidi driver.
// A driver must be registered by the caller, e.g. by importing
// gitlab.com/gomidi/midi/v2/drivers/rtmididrv.
type PortSink struct {
	logger contracts.Logger
	out    drivers.Out
	send   func(msg gomidi.Message) error
}

// NewPortSink opens the output port whose name contains portName.
func NewPortSink(portName string, logger contracts.Logger) (*PortSink, error) {
	out, err := gomidi.FindOutPort(portName)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrOutputPortNotFound, portName, err)
	}

	send, err := gomidi.SendTo(out)
	if err != nil {
		return nil, fmt.Errorf("open output %q: %w", out.String(), err)
	}

	logger.Info("MIDI output opened", logger.Field().String("port", out.String()))
	return &PortSink{logger: logger, out: out, send: send}, nil
}

// Send encodes and writes one event.
func (s *PortSink) Send(event contracts.Event) error {
	msg := codec.Encode(event)
	if len(msg) == 0 {
		return nil
	}
	return s.send(msg)
}

// Close closes the output port.
func (s *PortSink) Close() error {
	s.logger.Info("MIDI output closed", s.logger.Field().String("port", s.out.String()))
	return s.out.Close()
}

// OutputPorts lists the names of the available output ports.
func OutputPorts() []string {
	ports := gomidi.GetOutPorts()
	names := make([]string, len(ports))
	for i, p := range ports {
		names[i] = p.String()
	}
	return names
}

// SliceSink keeps every event it receives. It is safe for concurrent use.
type SliceSink struct {
	mu     sync.Mutex
	events []contracts.Event
}

// Send appends event.
func (s *SliceSink) Send(event contracts.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// Events returns a copy of what was received so far.
func (s *SliceSink) Events() []contracts.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]contracts.Event(nil), s.events...)
}
