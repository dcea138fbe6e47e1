package main

import (
	"context"
	"fmt"
	"time"

	"github.com/lumentone/midilight/internal/logger"
	"github.com/lumentone/midilight/sdk/contracts"
	"github.com/lumentone/midilight/sdk/midilight"
)

// printSink writes every light command to stdout instead of a device.
type printSink struct{}

func (printSink) ID() string { return "stdout" }

func (printSink) Apply(_ context.Context, state contracts.LightState) error {
	fmt.Printf("hue=%.0f sat=%.2f light=%.2f kelvin=%d transition=%s\n",
		state.Hue, state.Saturation, state.Lightness, state.Kelvin, state.Transition)
	return nil
}

func main() {
	log := logger.NewDevelopmentLogger()

	engine, err := midilight.NewEngine(
		contracts.WithLogger(log),
		contracts.WithLogLevel(contracts.DebugLevel),
		contracts.WithChannels(0),
		contracts.WithSendInterval(10*time.Millisecond),
	)
	if err != nil {
		log.Fatal("failed to configure engine", log.Field().Error("error", err))
	}
	if err := engine.AddSink(printSink{}); err != nil {
		log.Fatal("failed to add sink", log.Field().Error("error", err))
	}

	// A short C major arpeggio with a modulation sweep.
	events := make(chan contracts.Event)
	go func() {
		defer close(events)
		for i, note := range []uint8{60, 64, 67, 72} {
			events <- contracts.Event{Kind: contracts.NoteOnEvent, Channel: 0, Note: note, Velocity: 100}
			events <- contracts.Event{Kind: contracts.ControlChangeEvent, Channel: 0,
				Controller: contracts.ControllerModulation, Value: uint8(i * 40)}
			time.Sleep(50 * time.Millisecond)
			events <- contracts.Event{Kind: contracts.NoteOffEvent, Channel: 0, Note: note}
		}
	}()

	if err := engine.Run(context.Background(), events); err != nil {
		log.Error("engine stopped", log.Field().Error("error", err))
	}
}
