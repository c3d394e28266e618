package search

import (
	"context"
	"sync"
	"time"

	"github.com/mquezada/katutubo/internal/datastore"
)

// DefaultDebounce is the quiet period waited after the last keystroke
// before a suggestion query is issued.
const DefaultDebounce = 220 * time.Millisecond

// Debouncer rate-limits suggestion queries and discards stale results.
// Every Update increments a generation; a completed query only commits its
// result when its generation is still the current one. This replaces the
// usual "ignore if the view was torn down" flag with an explicit,
// testable mechanism. There is no true request abort: a superseded query
// runs to completion and its result is dropped.
type Debouncer struct {
	planner *Planner
	delay   time.Duration
	commit  func(term string, results []datastore.Person)

	mu    sync.Mutex
	gen   uint64
	timer *time.Timer
	wg    sync.WaitGroup
}

// NewDebouncer wraps planner. commit receives the results of the newest
// non-superseded query; it is called from a timer goroutine.
func NewDebouncer(planner *Planner, delay time.Duration, commit func(term string, results []datastore.Person)) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{planner: planner, delay: delay, commit: commit}
}

// Update registers a keystroke. An empty term resets to the idle state
// immediately, without waiting out the quiet period and without issuing a
// query.
func (d *Debouncer) Update(term string) {
	d.mu.Lock()
	d.gen++
	gen := d.gen
	d.cancelPendingLocked()

	if term == "" {
		d.mu.Unlock()
		d.commit("", nil)
		return
	}

	d.wg.Add(1)
	d.timer = time.AfterFunc(d.delay, func() {
		defer d.wg.Done()
		d.fire(term, gen)
	})
	d.mu.Unlock()
}

// fire runs the planner for the given generation and commits the result if
// the generation is still current when the query resolves.
func (d *Debouncer) fire(term string, gen uint64) {
	if !d.current(gen) {
		return
	}
	results, _ := d.planner.Suggest(context.Background(), term)
	if !d.current(gen) {
		// A newer keystroke arrived while the query was in flight;
		// discard the stale result.
		return
	}
	d.commit(term, results)
}

// Stop invalidates any pending query and waits for in-flight work to
// drain. The Debouncer must not be used afterwards.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	d.gen++
	d.cancelPendingLocked()
	d.mu.Unlock()
	d.wg.Wait()
}

// cancelPendingLocked stops a pending timer. When Stop reports the timer
// had not fired yet its callback will never run, so the waitgroup slot is
// released here.
func (d *Debouncer) cancelPendingLocked() {
	if d.timer != nil {
		if d.timer.Stop() {
			d.wg.Done()
		}
		d.timer = nil
	}
}

func (d *Debouncer) current(gen uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return gen == d.gen
}
