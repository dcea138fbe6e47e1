package contracts

import (
	"context"
	"time"
)

// LightState is one atomic color command for a light device. Values are
// produced fresh for every translated event and never mutated afterwards.
type LightState struct {
	Hue        float64       // Hue angle in degrees, [0, 360).
	Saturation float64       // Color saturation, [0, 1].
	Lightness  float64       // Perceived lightness, [0, 1].
	Kelvin     int           // Color temperature in the device-supported range.
	Transition time.Duration // How long the device should fade to this state.
}

// LightSink represents one controllable light device. The engine only ever
// calls Apply; discovery and connection lifecycle belong to the caller.
type LightSink interface {
	// ID uniquely identifies the device among registered sinks.
	ID() string
	// Apply sends the state to the device. It may block on network I/O and
	// must respect ctx cancellation. An error marks the command as failed;
	// the engine will not retry it.
	Apply(ctx context.Context, state LightState) error
}

// EngineState describes the dispatcher lifecycle.
type EngineState int32

const (
	// EngineInit is the initial state, before the event stream is consumed.
	EngineInit EngineState = iota
	// EngineRunning indicates the event stream is being consumed.
	EngineRunning
	// EngineStopping indicates in-flight commands are draining.
	EngineStopping
	// EngineStopped is the terminal state.
	EngineStopped
)

// String returns a human readable name for the engine state.
func (s EngineState) String() string {
	switch s {
	case EngineInit:
		return "init"
	case EngineRunning:
		return "running"
	case EngineStopping:
		return "stopping"
	case EngineStopped:
		return "stopped"
	}
	return "unknown"
}
