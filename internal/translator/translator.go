// Package translator turns validated MIDI events into light state commands.
package translator

import (
	"time"

	"github.com/lumentone/midilight/internal/color"
	"github.com/lumentone/midilight/sdk/contracts"
)

// Translator combines the color model and the parameter mappings into one
// immutable LightState per relevant MIDI event. It is stateless itself; all
// persisted channel data lives in the ChannelState passed by the caller.
type Translator struct {
	mapper            color.Mapper
	defaultTransition time.Duration
}

// New builds a Translator from validated engine options.
func New(opts contracts.EngineOptions) *Translator {
	return &Translator{
		mapper: color.Mapper{
			MinLightness:  opts.MinLightness,
			MaxLightness:  opts.MaxLightness,
			MinKelvin:     opts.MinKelvin,
			MaxKelvin:     opts.MaxKelvin,
			MaxTransition: opts.MaxTransition,
		},
		defaultTransition: opts.DefaultTransition,
	}
}

// Translate processes one event against the channel's state and returns the
// light state to emit, or nil when the event produces no command.
//
// Policies:
//   - NoteOff (and zero-velocity NoteOn) never emits; it only pops the note
//     from the sounding stack, freezing the last emitted state.
//   - Among simultaneously sounding notes the most recent one wins; releasing
//     it hands color back to the previous held note on the next update.
//   - Pitch bend and modulation emit only while a note sounds. On a silent
//     channel they are persisted anyway, pre-arming the next NoteOn.
//
// Malformed events fail with an error wrapping contracts.ErrInvalidEvent;
// nothing is clamped at this layer.
func (t *Translator) Translate(ev contracts.Event, st *ChannelState) (*contracts.LightState, error) {
	if err := ev.Validate(); err != nil {
		return nil, err
	}

	switch ev.Kind {
	case contracts.NoteOnEvent:
		if ev.Velocity == 0 {
			// Running-status NoteOff.
			st.noteOff(ev.Note)
			return nil, nil
		}
		st.noteOn(ev.Note, ev.Velocity)
		return t.stateFor(st), nil

	case contracts.NoteOffEvent:
		st.noteOff(ev.Note)
		return nil, nil

	case contracts.PitchBendEvent:
		st.bend = ev.Bend
		st.hasBend = true
		if !st.Active() {
			return nil, nil
		}
		return t.stateFor(st), nil

	case contracts.ControlChangeEvent:
		if ev.Controller != contracts.ControllerModulation {
			return nil, nil
		}
		st.modulation = ev.Value
		st.hasModulation = true
		if !st.Active() {
			return nil, nil
		}
		return t.stateFor(st), nil
	}
	return nil, nil
}

// stateFor builds a LightState from the channel's current note and persisted
// control values, falling back to neutral defaults where no control event
// has arrived yet.
func (t *Translator) stateFor(st *ChannelState) *contracts.LightState {
	cur, ok := st.current()
	if !ok {
		return nil
	}

	kelvin := t.mapper.NeutralKelvin()
	if st.hasBend {
		kelvin = t.mapper.KelvinForBend(st.bend)
	}
	transition := t.defaultTransition
	if st.hasModulation {
		transition = t.mapper.TransitionForModulation(st.modulation)
	}

	return &contracts.LightState{
		Hue:        color.HueForNote(cur.note),
		Saturation: t.mapper.SaturationForVelocity(cur.velocity),
		Lightness:  t.mapper.LightnessForOctave(cur.note),
		Kelvin:     kelvin,
		Transition: transition,
	}
}
