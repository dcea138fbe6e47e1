package translator

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/lumentone/midilight/sdk/contracts"
)

func newTestTranslator() *Translator {
	return New(contracts.EngineOptions{
		MinLightness:  0.1,
		MaxLightness:  1.0,
		MinKelvin:     2500,
		MaxKelvin:     9000,
		MaxTransition: 508 * time.Millisecond,
	})
}

func noteOn(note, velocity uint8) contracts.Event {
	return contracts.Event{Kind: contracts.NoteOnEvent, Note: note, Velocity: velocity}
}

func noteOff(note uint8) contracts.Event {
	return contracts.Event{Kind: contracts.NoteOffEvent, Note: note}
}

func modulation(value uint8) contracts.Event {
	return contracts.Event{Kind: contracts.ControlChangeEvent, Controller: contracts.ControllerModulation, Value: value}
}

func pitchBend(bend float64) contracts.Event {
	return contracts.Event{Kind: contracts.PitchBendEvent, Bend: bend}
}

func mustTranslate(t *testing.T, tr *Translator, ev contracts.Event, st *ChannelState) *contracts.LightState {
	t.Helper()
	state, err := tr.Translate(ev, st)
	if err != nil {
		t.Fatalf("translate failed: %v", err)
	}
	return state
}

func TestNoteOnEmitsState(t *testing.T) {
	tr := newTestTranslator()
	st := &ChannelState{}

	got := mustTranslate(t, tr, noteOn(60, 100), st)
	if got == nil {
		t.Fatal("expected a light state")
	}
	if got.Hue != 285 {
		t.Errorf("hue = %v, want 285", got.Hue)
	}
	if want := 100.0 / 127; got.Saturation != want {
		t.Errorf("saturation = %v, want %v", got.Saturation, want)
	}
	if math.Abs(got.Lightness-0.55) > 1e-9 {
		t.Errorf("lightness = %v, want 0.55", got.Lightness)
	}
	if got.Kelvin != 5750 {
		t.Errorf("kelvin = %d, want neutral 5750", got.Kelvin)
	}
	if got.Transition != 0 {
		t.Errorf("transition = %v, want default 0", got.Transition)
	}
}

func TestNoteOffNeverEmits(t *testing.T) {
	tr := newTestTranslator()
	st := &ChannelState{}

	mustTranslate(t, tr, noteOn(60, 100), st)
	if got := mustTranslate(t, tr, noteOff(60), st); got != nil {
		t.Fatalf("note off emitted %+v", got)
	}
	if st.Active() {
		t.Error("channel still active after releasing its only note")
	}
}

func TestZeroVelocityNoteOnActsAsNoteOff(t *testing.T) {
	tr := newTestTranslator()
	st := &ChannelState{}

	mustTranslate(t, tr, noteOn(60, 100), st)
	if got := mustTranslate(t, tr, noteOn(60, 0), st); got != nil {
		t.Fatalf("zero-velocity note on emitted %+v", got)
	}
	if st.Active() {
		t.Error("channel still active after zero-velocity note on")
	}
}

func TestVelocityChangesOnlySaturation(t *testing.T) {
	tr := newTestTranslator()
	st := &ChannelState{}

	first := mustTranslate(t, tr, noteOn(60, 100), st)
	second := mustTranslate(t, tr, noteOn(60, 50), st)

	if second.Saturation == first.Saturation {
		t.Error("saturation did not change with velocity")
	}
	if second.Hue != first.Hue || second.Lightness != first.Lightness ||
		second.Kelvin != first.Kelvin || second.Transition != first.Transition {
		t.Errorf("more than saturation changed: %+v vs %+v", first, second)
	}
}

func TestModulationWhileSounding(t *testing.T) {
	tr := newTestTranslator()
	st := &ChannelState{}

	first := mustTranslate(t, tr, noteOn(60, 100), st)
	got := mustTranslate(t, tr, modulation(127), st)
	if got == nil {
		t.Fatal("expected a light state while a note sounds")
	}
	if got.Hue != first.Hue || got.Saturation != first.Saturation || got.Lightness != first.Lightness {
		t.Error("modulation changed color parameters")
	}
	if got.Transition != 508*time.Millisecond {
		t.Errorf("transition = %v, want 508ms", got.Transition)
	}
}

func TestPitchBendWhileSounding(t *testing.T) {
	tr := newTestTranslator()
	st := &ChannelState{}

	mustTranslate(t, tr, noteOn(60, 100), st)
	got := mustTranslate(t, tr, pitchBend(-1), st)
	if got == nil {
		t.Fatal("expected a light state while a note sounds")
	}
	if got.Kelvin != 9000 {
		t.Errorf("kelvin = %d, want 9000 at full downward bend", got.Kelvin)
	}
}

func TestControlOnSilentChannelPreArmsNextNote(t *testing.T) {
	tr := newTestTranslator()
	st := &ChannelState{}

	if got := mustTranslate(t, tr, modulation(127), st); got != nil {
		t.Fatalf("control change on silent channel emitted %+v", got)
	}
	if got := mustTranslate(t, tr, pitchBend(1), st); got != nil {
		t.Fatalf("pitch bend on silent channel emitted %+v", got)
	}

	got := mustTranslate(t, tr, noteOn(60, 100), st)
	if got.Transition != 508*time.Millisecond {
		t.Errorf("transition = %v, want pre-armed 508ms", got.Transition)
	}
	if got.Kelvin != 2500 {
		t.Errorf("kelvin = %d, want pre-armed 2500", got.Kelvin)
	}
}

func TestControlStatePersistsAcrossNotes(t *testing.T) {
	tr := newTestTranslator()
	st := &ChannelState{}

	mustTranslate(t, tr, noteOn(60, 100), st)
	mustTranslate(t, tr, pitchBend(-1), st)
	mustTranslate(t, tr, noteOff(60), st)

	got := mustTranslate(t, tr, noteOn(64, 80), st)
	if got.Kelvin != 9000 {
		t.Errorf("kelvin = %d, want persisted 9000", got.Kelvin)
	}
}

func TestUnknownControllerIgnored(t *testing.T) {
	tr := newTestTranslator()
	st := &ChannelState{}

	mustTranslate(t, tr, noteOn(60, 100), st)
	ev := contracts.Event{Kind: contracts.ControlChangeEvent, Controller: 7, Value: 100}
	if got := mustTranslate(t, tr, ev, st); got != nil {
		t.Fatalf("unrelated controller emitted %+v", got)
	}
}

func TestLastNoteWins(t *testing.T) {
	tr := newTestTranslator()
	st := &ChannelState{}

	mustTranslate(t, tr, noteOn(60, 100), st)
	got := mustTranslate(t, tr, noteOn(64, 100), st)
	if got.Hue != 15 {
		t.Errorf("hue = %v, want 15 for the most recent note", got.Hue)
	}

	// Releasing the current note hands color back to the held one.
	mustTranslate(t, tr, noteOff(64), st)
	got = mustTranslate(t, tr, modulation(10), st)
	if got == nil {
		t.Fatal("expected a light state, a note is still held")
	}
	if got.Hue != 285 {
		t.Errorf("hue = %v, want 285 for the remaining note", got.Hue)
	}
}

func TestMalformedEventsFailFast(t *testing.T) {
	tr := newTestTranslator()
	events := []contracts.Event{
		{Kind: contracts.NoteOnEvent, Channel: 16, Note: 60, Velocity: 100},
		{Kind: contracts.NoteOnEvent, Note: 128, Velocity: 100},
		{Kind: contracts.NoteOnEvent, Note: 60, Velocity: 200},
		{Kind: contracts.ControlChangeEvent, Controller: 200},
		{Kind: contracts.ControlChangeEvent, Controller: 1, Value: 255},
		{Kind: contracts.PitchBendEvent, Bend: 1.5},
		{Kind: contracts.EventKind(9)},
	}
	for _, ev := range events {
		st := &ChannelState{}
		state, err := tr.Translate(ev, st)
		if !errors.Is(err, contracts.ErrInvalidEvent) {
			t.Errorf("%+v: error = %v, want ErrInvalidEvent", ev, err)
		}
		if state != nil {
			t.Errorf("%+v: emitted a state despite being malformed", ev)
		}
	}
}
