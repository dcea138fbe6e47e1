// Package color maps musical parameters to light color parameters.
package color

import (
	"math"
	"time"
)

// newtonHues assigns a hue angle to each of the twelve pitch classes,
// following Newton's color circle with the seven-color partition extended
// chromatically. Index 0 is C, index 11 is B. Adjacent semitones map to
// adjacent hues and the circle wraps at 360.
var newtonHues = [12]float64{
	285, // C  indigo-violet
	300, // C# violet
	330, // D  violet-red
	0,   // D# red
	15,  // E  red-orange
	45,  // F  orange-yellow
	60,  // F# yellow
	90,  // G  yellow-green
	120, // G# green
	180, // A  green-blue
	240, // A# blue
	255, // B  blue-indigo
}

// HueForNote returns the hue angle in degrees for a MIDI note (0-127).
// Only the pitch class matters; octaves do not affect hue.
func HueForNote(note uint8) float64 {
	return newtonHues[note%12]
}

// Mapper converts note velocity, octave, pitch bend and modulation into the
// remaining light state parameters. All mappings are linear and total over
// their legal input ranges.
type Mapper struct {
	MinLightness  float64       // Lightness for octave 0.
	MaxLightness  float64       // Lightness for octave 10.
	MinKelvin     int           // Color temperature at bend +1.
	MaxKelvin     int           // Color temperature at bend -1.
	MaxTransition time.Duration // Transition at modulation 127.
}

// SaturationForVelocity scales a note velocity (0-127) to [0, 1].
func (m Mapper) SaturationForVelocity(velocity uint8) float64 {
	return float64(velocity) / 127
}

// LightnessForOctave maps the octave of a note (note/12, 0-10) linearly into
// the configured lightness bounds.
func (m Mapper) LightnessForOctave(note uint8) float64 {
	octave := float64(note / 12)
	return m.MinLightness + octave/10*(m.MaxLightness-m.MinLightness)
}

// KelvinForBend maps a normalized pitch bend in [-1, 1] to a color
// temperature. The mapping descends: bend -1 yields MaxKelvin, bend +1
// yields MinKelvin, so bending up warms the light.
func (m Mapper) KelvinForBend(bend float64) int {
	span := float64(m.MaxKelvin - m.MinKelvin)
	return m.MaxKelvin - int(math.Round((bend+1)/2*span))
}

// NeutralKelvin is the color temperature used before any pitch bend arrives
// on a channel, the midpoint of the configured range.
func (m Mapper) NeutralKelvin() int {
	return m.KelvinForBend(0)
}

// TransitionForModulation scales a modulation value (0-127) linearly from
// zero to the configured maximum transition duration.
func (m Mapper) TransitionForModulation(value uint8) time.Duration {
	return time.Duration(float64(value) / 127 * float64(m.MaxTransition)).Round(time.Millisecond)
}
