// Package dispatch owns the event loop: it filters and translates the MIDI
// stream and fans resulting light states out to per-sink workers.
package dispatch

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/lumentone/midilight/internal/translator"
	"github.com/lumentone/midilight/sdk/contracts"
)

// Error definitions for dispatcher lifecycle misuse.
var (
	ErrAlreadyStarted = errors.New("dispatcher already started")
	ErrStopped        = errors.New("dispatcher is stopped")
)

// Dispatcher consumes an ordered MIDI event stream and forwards translated
// light states to every registered sink. Events are processed one at a time
// on a single goroutine, preserving musical ordering; per-sink delivery with
// pacing and coalescing happens on dedicated workers so a slow device never
// delays intake or other devices.
type Dispatcher struct {
	log        contracts.Logger
	translator *translator.Translator
	accepted   [16]bool
	channels   [16]*translator.ChannelState
	opts       contracts.EngineOptions

	state atomic.Int32

	mu      sync.Mutex
	workers map[string]*sinkWorker
	wg      sync.WaitGroup
}

// New creates a Dispatcher in the Init state.
func New(opts contracts.EngineOptions, tr *translator.Translator) *Dispatcher {
	d := &Dispatcher{
		log:        opts.Logger,
		translator: tr,
		opts:       opts,
		workers:    make(map[string]*sinkWorker),
	}
	for _, ch := range opts.Channels {
		d.accepted[ch] = true
	}
	for i := range d.channels {
		d.channels[i] = &translator.ChannelState{}
	}
	return d
}

// State returns the current lifecycle state.
func (d *Dispatcher) State() contracts.EngineState {
	return contracts.EngineState(d.state.Load())
}

// AddSink registers a light device and starts its delivery worker. Adding a
// sink with the ID of an existing one replaces it, which also resets a
// degraded sink. Permitted until the dispatcher stops.
func (d *Dispatcher) AddSink(sink contracts.LightSink) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.State() >= contracts.EngineStopping {
		return ErrStopped
	}
	if old, ok := d.workers[sink.ID()]; ok {
		old.stop()
	}

	w := newSinkWorker(sink, d.log, d.opts.SendInterval, d.opts.ShutdownGrace, d.opts.FailureLimit)
	d.workers[sink.ID()] = w
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		w.run()
	}()

	d.log.Info("light sink registered", d.log.Field().String("sink", sink.ID()))
	return nil
}

// RemoveSink unregisters a device, abandoning any pending state for it.
func (d *Dispatcher) RemoveSink(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if w, ok := d.workers[id]; ok {
		w.stop()
		delete(d.workers, id)
		d.log.Info("light sink removed", d.log.Field().String("sink", id))
	}
}

// Run consumes the event stream until it is closed or ctx is canceled, then
// drains in-flight commands and stops. The stream closing is a graceful
// shutdown trigger, not an error. Run may be called once.
func (d *Dispatcher) Run(ctx context.Context, events <-chan contracts.Event) error {
	if !d.state.CompareAndSwap(int32(contracts.EngineInit), int32(contracts.EngineRunning)) {
		if d.State() == contracts.EngineRunning {
			return ErrAlreadyStarted
		}
		return ErrStopped
	}
	defer d.shutdown()

	d.log.Info("dispatcher running")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				d.log.Info("event stream ended")
				return nil
			}
			d.process(ev)
		}
	}
}

// process runs one event through filter, translation and fan-out. Malformed
// events are logged and dropped; the stream continues.
func (d *Dispatcher) process(ev contracts.Event) {
	if ev.Channel > 15 || !d.accepted[ev.Channel] {
		return
	}

	state, err := d.translator.Translate(ev, d.channels[ev.Channel])
	if err != nil {
		d.log.Warn("dropping malformed event",
			d.log.Field().String("kind", ev.Kind.String()),
			d.log.Field().Error("error", err))
		return
	}
	if state == nil {
		return
	}

	d.mu.Lock()
	for _, w := range d.workers {
		w.offer(*state)
	}
	d.mu.Unlock()
}

// shutdown transitions Running -> Stopping -> Stopped, giving every worker
// the configured grace period to deliver its final pending command.
func (d *Dispatcher) shutdown() {
	d.state.Store(int32(contracts.EngineStopping))
	d.log.Info("dispatcher stopping, draining in-flight commands")

	d.mu.Lock()
	for _, w := range d.workers {
		w.stop()
	}
	d.workers = make(map[string]*sinkWorker)
	d.mu.Unlock()

	d.wg.Wait()
	d.state.Store(int32(contracts.EngineStopped))
	d.log.Info("dispatcher stopped")
}
