package translator

// soundingNote is one currently held key on a channel.
type soundingNote struct {
	note     uint8
	velocity uint8
}

// ChannelState holds everything the engine remembers about one MIDI channel:
// the ordered stack of currently sounding notes plus the persisted pitch bend
// and modulation values. Pitch and modulation survive across note events
// until changed; a value received while the channel is silent pre-arms the
// next note. ChannelState is only touched from the single event-processing
// goroutine and needs no synchronization.
type ChannelState struct {
	notes         []soundingNote
	bend          float64
	modulation    uint8
	hasBend       bool
	hasModulation bool
}

// Active reports whether any note is currently sounding on the channel.
func (s *ChannelState) Active() bool {
	return len(s.notes) > 0
}

// current returns the most recently started note that is still sounding.
func (s *ChannelState) current() (soundingNote, bool) {
	if len(s.notes) == 0 {
		return soundingNote{}, false
	}
	return s.notes[len(s.notes)-1], true
}

// noteOn pushes a note onto the sounding stack. Re-striking a held note
// moves it to the top with the new velocity.
func (s *ChannelState) noteOn(note, velocity uint8) {
	s.remove(note)
	s.notes = append(s.notes, soundingNote{note: note, velocity: velocity})
}

// noteOff removes a note from the sounding stack. Releasing the current
// note makes the next most recent held note current again.
func (s *ChannelState) noteOff(note uint8) {
	s.remove(note)
}

func (s *ChannelState) remove(note uint8) {
	for i, n := range s.notes {
		if n.note == note {
			s.notes = append(s.notes[:i], s.notes[i+1:]...)
			return
		}
	}
}
