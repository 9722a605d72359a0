package services

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"emoji-zoo/internal/logger"
)

// Dispatcher runs fn on the goroutine that owns the marker store and returns
// once fn has finished. In the app this is fyne.DoAndWait.
type Dispatcher func(fn func())

// Scheduler invokes a tick callback on a fixed interval. The timer is
// re-armed only after the callback has completed, so a slow tick delays the
// next one instead of stacking or skipping ticks.
type Scheduler struct {
	interval time.Duration
	tick     func()
	dispatch Dispatcher
	logger   logger.Logger

	stop     chan struct{}
	stopOnce sync.Once
	ticks    atomic.Uint64
}

func NewScheduler(interval time.Duration, tick func(), dispatch Dispatcher, log logger.Logger) *Scheduler {
	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}
	return &Scheduler{
		interval: interval,
		tick:     tick,
		dispatch: dispatch,
		logger:   log,
		stop:     make(chan struct{}),
	}
}

// Run blocks until ctx is cancelled or Stop is called.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Debug("Scheduler started", map[string]interface{}{
		"interval_ms": s.interval.Milliseconds(),
	})

	timer := time.NewTimer(s.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.stop:
			return nil
		case <-timer.C:
		}

		s.dispatch(s.tick)
		s.ticks.Add(1)

		timer.Reset(s.interval)
	}
}

// Stop ends Run. It is safe to call more than once.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
		s.logger.Debug("Scheduler stopped", map[string]interface{}{
			"ticks": s.ticks.Load(),
		})
	})
}

// Shutdown implements shutdown.Shutdownable.
func (s *Scheduler) Shutdown() {
	s.Stop()
}

// Ticks reports how many ticks have been dispatched.
func (s *Scheduler) Ticks() uint64 {
	return s.ticks.Load()
}
