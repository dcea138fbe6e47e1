// Package midilight exposes the MIDI-to-light translation engine.
package midilight

import (
	"context"

	"github.com/lumentone/midilight/internal/dispatch"
	"github.com/lumentone/midilight/internal/translator"
	"github.com/lumentone/midilight/sdk/contracts"
)

// Engine translates a MIDI event stream into light state commands and
// delivers them to registered light sinks.
type Engine struct {
	log        contracts.Logger
	dispatcher *dispatch.Dispatcher
}

// NewEngine creates a new translation engine with the specified options.
// It applies default options and fails on invalid configuration.
//
// opts ...contracts.Option: A variadic list of option functions to customize the engine configuration.
//
// Returns:
//   - *Engine: The configured engine, in the Init state.
//   - error: An error wrapping contracts.ErrInvalidConfig if the options are invalid.
func NewEngine(opts ...contracts.Option) (*Engine, error) {
	options, err := applyDefaultOptions(opts...)
	if err != nil {
		return nil, err
	}

	tr := translator.New(options)
	return &Engine{
		log:        options.Logger,
		dispatcher: dispatch.New(options, tr),
	}, nil
}

// AddSink registers a light device. Sinks may be added before Run or while
// the engine is running, e.g. when discovery finds a new device. Re-adding
// a degraded sink resumes delivery to it.
func (e *Engine) AddSink(sink contracts.LightSink) error {
	return e.dispatcher.AddSink(sink)
}

// RemoveSink unregisters a light device, e.g. when discovery loses it.
func (e *Engine) RemoveSink(id string) {
	e.dispatcher.RemoveSink(id)
}

// Run consumes the ordered MIDI event stream until it is closed or ctx is
// canceled. The stream closing triggers a graceful shutdown: pending
// commands are drained within the configured grace period.
func (e *Engine) Run(ctx context.Context, events <-chan contracts.Event) error {
	return e.dispatcher.Run(ctx, events)
}

// State returns the engine lifecycle state.
func (e *Engine) State() contracts.EngineState {
	return e.dispatcher.State()
}
