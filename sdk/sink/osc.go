package sink

import (
	"context"
	"fmt"

	"github.com/hypebeast/go-osc/osc"

	"github.com/lumentone/midilight/sdk/contracts"
)

// OSC broadcasts light states as OSC messages, for lighting software such as
// QLC+ or custom fixtures. Each Apply sends one message carrying hue,
// saturation, lightness, kelvin and the transition in milliseconds.
type OSC struct {
	id      string
	address string
	client  *osc.Client
}

// NewOSC creates a sink sending to the given host, port and OSC address,
// e.g. NewOSC("127.0.0.1", 8765, "/light/studio").
func NewOSC(host string, port int, address string) *OSC {
	return &OSC{
		id:      fmt.Sprintf("osc:%s:%d%s", host, port, address),
		address: address,
		client:  osc.NewClient(host, port),
	}
}

// ID identifies the sink by its target endpoint.
func (s *OSC) ID() string {
	return s.id
}

// Apply sends the state as one OSC message. The message is atomic at the
// protocol boundary; a failed send is reported but never retried here.
func (s *OSC) Apply(_ context.Context, state contracts.LightState) error {
	msg := osc.NewMessage(s.address)
	msg.Append(float32(state.Hue))
	msg.Append(float32(state.Saturation))
	msg.Append(float32(state.Lightness))
	msg.Append(int32(state.Kelvin))
	msg.Append(int32(state.Transition.Milliseconds()))

	if err := s.client.Send(msg); err != nil {
		return fmt.Errorf("%w: %v", ErrSinkUnavailable, err)
	}
	return nil
}
