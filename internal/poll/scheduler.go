// Package poll owns the background refresh loops keeping live views fresh.
package poll

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ninebyfour/ninebyfour-go/internal/observability"
)

// Action is one unit of refresh work. A failing action does not stop its
// loop; polling is best-effort and the next tick simply runs again.
type Action func(context.Context) error

// Step pairs a delay with the action to run after it. A loop iterates its
// steps in order, sleeping each step's interval before invoking it, so two
// cadences (a short unread-count refresh nested with a longer full reload)
// share one loop and one bounded request rate.
type Step struct {
	Interval time.Duration
	Action   Action
}

type subscription struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Scheduler maintains at most one repeating background loop per key.
// Starting a key that is already running terminates the old loop before the
// new one is installed; stopping is idempotent.
type Scheduler struct {
	mu   sync.Mutex
	subs map[string]*subscription
}

// NewScheduler constructs an empty scheduler.
func NewScheduler() *Scheduler {
	s := new(Scheduler)
	s.subs = make(map[string]*subscription)
	return s
}

// Start installs a repeating loop for key executing steps in order. Any
// previously running loop for the same key is cancelled and fully drained
// first, so no two loops ever poll the same target. The loop ends when ctx
// is cancelled or Stop is called.
func (s *Scheduler) Start(ctx context.Context, key string, steps ...Step) error {
	if len(steps) == 0 {
		return errors.New("poll: at least one step required")
	}
	for _, step := range steps {
		if step.Interval <= 0 {
			return errors.New("poll: step interval must be positive")
		}
		if step.Action == nil {
			return errors.New("poll: step action must not be nil")
		}
	}

	loopCtx, cancel := context.WithCancel(ctx)
	sub := &subscription{cancel: cancel, done: make(chan struct{})}

	// Install and displace in one critical section: two racing Starts each
	// see exactly one predecessor, so every displaced loop has exactly one
	// successor responsible for draining it and none can leak.
	s.mu.Lock()
	old := s.subs[key]
	s.subs[key] = sub
	s.mu.Unlock()
	if old != nil {
		old.cancel()
		<-old.done
	}

	go s.run(loopCtx, key, sub, steps)
	return nil
}

// Stop cancels the loop for key and waits for it to exit. Stopping an idle
// or unknown key is a no-op; calling Stop repeatedly is safe.
func (s *Scheduler) Stop(key string) {
	s.mu.Lock()
	sub, ok := s.subs[key]
	if ok {
		delete(s.subs, key)
	}
	s.mu.Unlock()
	if !ok {
		return
	}
	sub.cancel()
	<-sub.done
}

// StopAll cancels every running loop and waits for each to exit.
func (s *Scheduler) StopAll() {
	s.mu.Lock()
	subs := make([]*subscription, 0, len(s.subs))
	for key, sub := range s.subs {
		subs = append(subs, sub)
		delete(s.subs, key)
	}
	s.mu.Unlock()
	for _, sub := range subs {
		sub.cancel()
		<-sub.done
	}
}

// Active reports whether a loop is currently installed for key.
func (s *Scheduler) Active(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.subs[key]
	return ok
}

func (s *Scheduler) run(ctx context.Context, key string, sub *subscription, steps []Step) {
	defer close(sub.done)
	defer func() {
		s.mu.Lock()
		if current, ok := s.subs[key]; ok && current == sub {
			delete(s.subs, key)
		}
		s.mu.Unlock()
	}()

	for {
		for _, step := range steps {
			if !sleep(ctx, step.Interval) {
				return
			}
			if ctx.Err() != nil {
				return
			}
			observability.Telemetry().IncCounter(observability.MetricPollTicks, 1,
				map[string]string{"subscription": key})
			if err := step.Action(ctx); err != nil {
				observability.Log().Debug("poll tick failed",
					observability.F("subscription", key),
					observability.F("error", err.Error()),
				)
			}
		}
	}
}

// sleep waits for d or cancellation, reporting false when cancelled.
func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
