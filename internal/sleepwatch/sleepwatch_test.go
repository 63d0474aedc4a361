package sleepwatch

import (
	"context"
	"testing"
	"time"
)

func TestExcess(t *testing.T) {
	tests := []struct {
		name       string
		expected   time.Duration
		threshold  time.Duration
		elapsed    time.Duration
		wantExcess time.Duration
		wantOK     bool
	}{
		{
			name:     "slept exactly as expected",
			expected: 5 * time.Second, threshold: 10 * time.Second,
			elapsed: 5 * time.Second,
		},
		{
			name:     "slept longer than threshold",
			expected: 5 * time.Second, threshold: 10 * time.Second,
			elapsed:    15 * time.Second,
			wantExcess: 10 * time.Second, wantOK: true,
		},
		{
			name:     "exactly at threshold is not an event",
			expected: 5 * time.Second, threshold: 10 * time.Second,
			elapsed: 10 * time.Second,
		},
		{
			name:     "just past threshold is an event",
			expected: 5 * time.Second, threshold: 10 * time.Second,
			elapsed:    10*time.Second + time.Nanosecond,
			wantExcess: 5*time.Second + time.Nanosecond, wantOK: true,
		},
		{
			name:     "zero elapsed",
			expected: 5 * time.Second, threshold: 10 * time.Second,
			elapsed: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			excess, ok := Excess(tt.expected, tt.threshold, tt.elapsed)

			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if excess != tt.wantExcess {
				t.Errorf("excess = %v, want %v", excess, tt.wantExcess)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	count, avg := Summarize(nil)
	if count != 0 || avg != 0 {
		t.Errorf("Summarize(nil) = (%d, %v), want (0, 0)", count, avg)
	}

	events := []Event{
		{Excess: 10 * time.Second},
		{Excess: 20 * time.Second},
	}
	count, avg = Summarize(events)
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
	if avg != 15*time.Second {
		t.Errorf("avg = %v, want 15s", avg)
	}
}

func TestWatcherStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{Interval: time.Hour}

	done := make(chan []Event, 1)
	go func() { done <- w.Run(ctx) }()

	cancel()

	select {
	case events := <-done:
		if len(events) != 0 {
			t.Errorf("events = %v, want none", events)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}

func TestWatcherNoFalseEvents(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Millisecond)
	defer cancel()

	w := &Watcher{Interval: 10 * time.Millisecond, Threshold: time.Minute}
	if events := w.Run(ctx); len(events) != 0 {
		t.Errorf("unexpected sleep events on a machine that never slept: %v", events)
	}
}
