package resilience

import "sync"

// SingleFlight collapses concurrent calls for the same key into one
// execution. The cache store uses it so a burst of identical stats queries
// after an invalidation hits the database once.
type SingleFlight struct {
	mu       sync.Mutex
	inflight map[string]*flightCall
}

type flightCall struct {
	done sync.WaitGroup
	val  any
	err  error
}

// Do runs fn for key unless another call for the same key is already in
// flight, in which case it waits and returns that call's result. The third
// return reports whether the result was shared.
func (g *SingleFlight) Do(key string, fn func() (any, error)) (any, error, bool) {
	g.mu.Lock()
	if g.inflight == nil {
		g.inflight = make(map[string]*flightCall)
	}
	if c, ok := g.inflight[key]; ok {
		g.mu.Unlock()
		c.done.Wait()
		return c.val, c.err, true
	}

	c := &flightCall{}
	c.done.Add(1)
	g.inflight[key] = c
	g.mu.Unlock()

	c.val, c.err = fn()
	c.done.Done()

	g.mu.Lock()
	delete(g.inflight, key)
	g.mu.Unlock()

	return c.val, c.err, false
}
