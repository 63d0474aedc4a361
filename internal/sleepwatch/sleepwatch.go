// Package sleepwatch detects system sleep by watching the wall clock. A
// timer that was supposed to fire after a few seconds but took far longer
// can only mean the machine was suspended in between; the gap is the time
// it spent asleep.
package sleepwatch

import (
	"context"
	"log/slog"
	"time"
)

// DefaultInterval is the tick length between clock checks.
const DefaultInterval = 5 * time.Second

// Event records one detected sleep.
type Event struct {
	// Excess is how much longer than expected the tick took, i.e. roughly
	// how long the system slept.
	Excess time.Duration
	// WokeAt is when the oversleeping tick finally fired.
	WokeAt time.Time
}

// Excess reports the oversleep beyond the expected tick when elapsed
// exceeds the threshold. Elapsed at or under the threshold, including a
// clock that went nowhere, is not a sleep event.
func Excess(expected, threshold, elapsed time.Duration) (time.Duration, bool) {
	if elapsed <= threshold {
		return 0, false
	}
	excess := elapsed - expected
	if excess < 0 {
		excess = 0
	}
	return excess, true
}

// Summarize returns the event count and mean sleep length.
func Summarize(events []Event) (int, time.Duration) {
	if len(events) == 0 {
		return 0, 0
	}
	var total time.Duration
	for _, ev := range events {
		total += ev.Excess
	}
	return len(events), total / time.Duration(len(events))
}

// Watcher runs the detection loop.
type Watcher struct {
	// Interval between clock checks; DefaultInterval when zero.
	Interval time.Duration
	// Threshold above which a tick counts as a sleep event; twice the
	// interval when zero.
	Threshold time.Duration
	// OnEvent, if set, is called from the loop for each detected sleep.
	OnEvent func(Event)

	Log *slog.Logger
}

// Run ticks until ctx is done and returns the sleep events observed.
func (w *Watcher) Run(ctx context.Context) []Event {
	interval := w.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	threshold := w.Threshold
	if threshold <= 0 {
		threshold = 2 * interval
	}
	log := w.Log
	if log == nil {
		log = slog.Default()
	}

	log.Debug("sleep watcher running", "interval", interval, "threshold", threshold)

	var events []Event
	timer := time.NewTimer(interval)
	defer timer.Stop()

	for {
		start := time.Now()
		select {
		case <-ctx.Done():
			return events
		case <-timer.C:
		}

		if excess, ok := Excess(interval, threshold, time.Since(start)); ok {
			ev := Event{Excess: excess, WokeAt: time.Now()}
			events = append(events, ev)
			log.Debug("sleep detected", "excess", excess)
			if w.OnEvent != nil {
				w.OnEvent(ev)
			}
		}
		timer.Reset(interval)
	}
}
