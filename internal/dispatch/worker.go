package dispatch

import (
	"context"
	"sync"
	"time"

	"github.com/lumentone/midilight/sdk/contracts"
)

// sinkWorker delivers light states to one sink. It owns all per-sink state
// (pending update, pacing clock, failure count) so no other goroutine touches
// it. The pending slot holds at most the newest undelivered state; anything
// older is superseded before it is ever sent.
type sinkWorker struct {
	sink         contracts.LightSink
	log          contracts.Logger
	interval     time.Duration
	failureLimit int
	grace        time.Duration

	mu      sync.Mutex
	pending *contracts.LightState

	kick     chan struct{}
	quit     chan struct{}
	stopOnce sync.Once
}

func newSinkWorker(sink contracts.LightSink, log contracts.Logger, interval, grace time.Duration, failureLimit int) *sinkWorker {
	return &sinkWorker{
		sink:         sink,
		log:          log,
		interval:     interval,
		failureLimit: failureLimit,
		grace:        grace,
		kick:         make(chan struct{}, 1),
		quit:         make(chan struct{}),
	}
}

// offer replaces the pending state with a newer one and wakes the worker.
// It never blocks, no matter how stalled the sink is.
func (w *sinkWorker) offer(state contracts.LightState) {
	w.mu.Lock()
	w.pending = &state
	w.mu.Unlock()

	select {
	case w.kick <- struct{}{}:
	default:
	}
}

// take removes and returns the pending state, or nil when there is none.
func (w *sinkWorker) take() *contracts.LightState {
	w.mu.Lock()
	state := w.pending
	w.pending = nil
	w.mu.Unlock()
	return state
}

// stop asks the worker to deliver its final pending state and exit.
func (w *sinkWorker) stop() {
	w.stopOnce.Do(func() {
		close(w.quit)
	})
}

// run is the worker loop. It paces commands at least interval apart, always
// sending the newest pending state, and degrades the sink after too many
// consecutive failures.
func (w *sinkWorker) run() {
	lastSent := time.Now()
	failures := 0

	for {
		select {
		case <-w.quit:
			w.flush()
			return
		case <-w.kick:
		}

		// Pacing window. Updates arriving while we wait keep replacing the
		// pending slot, so the send below carries the newest state.
		if wait := w.interval - time.Since(lastSent); wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-w.quit:
				timer.Stop()
				w.flush()
				return
			case <-timer.C:
			}
		}

		state := w.take()
		if state == nil {
			continue
		}

		err := w.apply(*state)
		lastSent = time.Now()
		if err != nil {
			failures++
			w.log.Warn("light sink rejected command",
				w.log.Field().String("sink", w.sink.ID()),
				w.log.Field().Int("consecutiveFailures", failures),
				w.log.Field().Error("error", err))
			if failures >= w.failureLimit {
				w.log.Error("light sink degraded, suspending delivery until it is re-added",
					w.log.Field().String("sink", w.sink.ID()))
				return
			}
			continue
		}
		failures = 0
	}
}

// flush delivers the final pending state within the shutdown grace period.
func (w *sinkWorker) flush() {
	state := w.take()
	if state == nil {
		return
	}
	if err := w.apply(*state); err != nil {
		w.log.Warn("final light command abandoned",
			w.log.Field().String("sink", w.sink.ID()),
			w.log.Field().Error("error", err))
	}
}

func (w *sinkWorker) apply(state contracts.LightState) error {
	ctx, cancel := context.WithTimeout(context.Background(), w.grace)
	defer cancel()
	return w.sink.Apply(ctx, state)
}
