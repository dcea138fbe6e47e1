package contracts

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/multierr"
)

// ErrInvalidConfig is returned when engine options fail validation.
// Configuration problems are fatal and surface before the event stream
// is consumed.
var ErrInvalidConfig = errors.New("invalid engine configuration")

// EngineOptions defines the configuration for the translation engine.
// Options are fixed at construction; there is no runtime mutation.
type EngineOptions struct {
	Logger            Logger        // Logger for engine events and errors.
	LogLevel          LogLevel      // Level of logging to use.
	Channels          []uint8       // MIDI channels honored by the engine (0-15).
	DefaultTransition time.Duration // Transition used before any modulation arrives.
	MinLightness      float64       // Lightness mapped to the lowest octave.
	MaxLightness      float64       // Lightness mapped to the highest octave.
	MinKelvin         int           // Color temperature at full upward pitch bend.
	MaxKelvin         int           // Color temperature at full downward pitch bend.
	MaxTransition     time.Duration // Transition at full modulation.
	SendInterval      time.Duration // Minimum interval between commands per sink.
	FailureLimit      int           // Consecutive failures before a sink is degraded.
	ShutdownGrace     time.Duration // Grace period for in-flight commands on shutdown.
}

// Validate reports all configuration problems at once.
func (o *EngineOptions) Validate() error {
	var err error
	if len(o.Channels) == 0 {
		err = multierr.Append(err, errors.New("at least one MIDI channel is required"))
	}
	for _, ch := range o.Channels {
		if ch > 15 {
			err = multierr.Append(err, fmt.Errorf("channel %d out of range 0-15", ch))
		}
	}
	if o.MinLightness < 0 || o.MaxLightness > 1 || o.MinLightness >= o.MaxLightness {
		err = multierr.Append(err, fmt.Errorf("lightness range [%g, %g] must satisfy 0 <= min < max <= 1", o.MinLightness, o.MaxLightness))
	}
	if o.MinKelvin <= 0 || o.MinKelvin >= o.MaxKelvin {
		err = multierr.Append(err, fmt.Errorf("kelvin range [%d, %d] must satisfy 0 < min < max", o.MinKelvin, o.MaxKelvin))
	}
	if o.DefaultTransition < 0 {
		err = multierr.Append(err, errors.New("default transition must not be negative"))
	}
	if o.MaxTransition <= 0 {
		err = multierr.Append(err, errors.New("max transition must be positive"))
	}
	if o.SendInterval <= 0 {
		err = multierr.Append(err, errors.New("send interval must be positive"))
	}
	if o.FailureLimit <= 0 {
		err = multierr.Append(err, errors.New("failure limit must be positive"))
	}
	if o.ShutdownGrace <= 0 {
		err = multierr.Append(err, errors.New("shutdown grace must be positive"))
	}
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, err)
	}
	return nil
}

// Option is a function that modifies EngineOptions.
type Option func(*EngineOptions)

// WithLogger sets the logger for the engine.
func WithLogger(l Logger) Option {
	return func(opts *EngineOptions) {
		opts.Logger = l
	}
}

// WithLogLevel sets the logging level for the engine.
func WithLogLevel(level LogLevel) Option {
	return func(opts *EngineOptions) {
		opts.LogLevel = level
	}
}

// WithChannels sets the MIDI channels the engine listens on.
func WithChannels(channels ...uint8) Option {
	return func(opts *EngineOptions) {
		opts.Channels = channels
	}
}

// WithDefaultTransition sets the transition duration used until the first
// modulation event arrives on a channel.
func WithDefaultTransition(d time.Duration) Option {
	return func(opts *EngineOptions) {
		opts.DefaultTransition = d
	}
}

// WithLightnessRange sets the lightness bounds mapped across the octave range.
func WithLightnessRange(min, max float64) Option {
	return func(opts *EngineOptions) {
		opts.MinLightness = min
		opts.MaxLightness = max
	}
}

// WithKelvinRange sets the color temperature bounds mapped across the pitch
// bend range.
func WithKelvinRange(min, max int) Option {
	return func(opts *EngineOptions) {
		opts.MinKelvin = min
		opts.MaxKelvin = max
	}
}

// WithMaxTransition sets the transition duration reached at full modulation.
func WithMaxTransition(d time.Duration) Option {
	return func(opts *EngineOptions) {
		opts.MaxTransition = d
	}
}

// WithSendInterval sets the minimum interval between commands sent to one
// sink. Updates arriving faster are coalesced, keeping only the newest.
func WithSendInterval(d time.Duration) Option {
	return func(opts *EngineOptions) {
		opts.SendInterval = d
	}
}

// WithFailureLimit sets how many consecutive command failures degrade a sink.
func WithFailureLimit(n int) Option {
	return func(opts *EngineOptions) {
		opts.FailureLimit = n
	}
}

// WithShutdownGrace sets how long in-flight commands may take to complete
// during shutdown before being abandoned.
func WithShutdownGrace(d time.Duration) Option {
	return func(opts *EngineOptions) {
		opts.ShutdownGrace = d
	}
}
