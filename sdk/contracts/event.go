package contracts

import (
	"errors"
	"fmt"
)

// ErrInvalidEvent is returned when a MIDI event carries out-of-range values.
var ErrInvalidEvent = errors.New("invalid MIDI event")

// ControllerModulation is the MIDI controller number of the modulation wheel.
const ControllerModulation uint8 = 1

// EventKind identifies the type of a decoded MIDI event.
type EventKind uint8

const (
	// NoteOnEvent indicates a key was pressed (velocity > 0) or released (velocity 0).
	NoteOnEvent EventKind = iota
	// NoteOffEvent indicates a key was released.
	NoteOffEvent
	// ControlChangeEvent carries a controller value, e.g. the modulation wheel.
	ControlChangeEvent
	// PitchBendEvent carries the pitch wheel position normalized to [-1, 1].
	PitchBendEvent
)

// String returns a human readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case NoteOnEvent:
		return "note_on"
	case NoteOffEvent:
		return "note_off"
	case ControlChangeEvent:
		return "control_change"
	case PitchBendEvent:
		return "pitch_bend"
	}
	return fmt.Sprintf("unknown(%d)", uint8(k))
}

// Event represents a decoded MIDI performance event.
// Only the fields relevant to the Kind are meaningful.
type Event struct {
	Kind       EventKind // Type of the event.
	Channel    uint8     // MIDI channel (0-15).
	Note       uint8     // Note number (0-127), for note events.
	Velocity   uint8     // Key velocity (0-127), for note events.
	Controller uint8     // Controller number (0-127), for control changes.
	Value      uint8     // Controller value (0-127), for control changes.
	Bend       float64   // Pitch wheel position in [-1, 1], for pitch bends.
}

// Validate reports whether the event values are within their legal MIDI
// ranges. Events failing validation must be dropped, never clamped.
func (e Event) Validate() error {
	if e.Channel > 15 {
		return fmt.Errorf("%w: channel %d out of range 0-15", ErrInvalidEvent, e.Channel)
	}
	switch e.Kind {
	case NoteOnEvent, NoteOffEvent:
		if e.Note > 127 {
			return fmt.Errorf("%w: note %d out of range 0-127", ErrInvalidEvent, e.Note)
		}
		if e.Velocity > 127 {
			return fmt.Errorf("%w: velocity %d out of range 0-127", ErrInvalidEvent, e.Velocity)
		}
	case ControlChangeEvent:
		if e.Controller > 127 {
			return fmt.Errorf("%w: controller %d out of range 0-127", ErrInvalidEvent, e.Controller)
		}
		if e.Value > 127 {
			return fmt.Errorf("%w: controller value %d out of range 0-127", ErrInvalidEvent, e.Value)
		}
	case PitchBendEvent:
		if e.Bend < -1 || e.Bend > 1 {
			return fmt.Errorf("%w: pitch bend %f out of range [-1, 1]", ErrInvalidEvent, e.Bend)
		}
	default:
		return fmt.Errorf("%w: unknown event kind %d", ErrInvalidEvent, uint8(e.Kind))
	}
	return nil
}

// NormalizeBend converts a raw signed 14-bit pitch wheel value
// (-8192 to 8191) to the normalized [-1, 1] range used by Event.Bend.
func NormalizeBend(raw int16) float64 {
	const maxBend = 8192
	if raw < -maxBend {
		raw = -maxBend
	}
	bend := float64(raw) / maxBend
	if bend > 1 {
		bend = 1
	}
	return bend
}
