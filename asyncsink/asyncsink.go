// Package asyncsink decouples a slow event sink from the cache hot path.
//
// Emit enqueues onto a bounded channel drained by worker goroutines; when
// the queue is full the event is dropped rather than blocking the cache
// operation. Use it to wrap sinks that do real IO:
//
//	sink := asyncsink.New(rescache.LogSink{L: logger}, 1, 1000)
//	defer sink.Close()
package asyncsink

import (
	"sync"

	"github.com/rescache/rescache"
)

type Sink struct {
	inner rescache.Sink
	q     chan rescache.Event
	wg    sync.WaitGroup
	once  sync.Once
}

var _ rescache.Sink = (*Sink)(nil)

func New(inner rescache.Sink, workers, qlen int) *Sink {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	s := &Sink{inner: inner, q: make(chan rescache.Event, qlen)}
	s.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer s.wg.Done()
			for e := range s.q {
				s.inner.Emit(e)
			}
		}()
	}
	return s
}

func (s *Sink) Emit(e rescache.Event) {
	select {
	case s.q <- e:
	default: // drop
	}
}

// Close drains the queue and stops the workers. Emit after Close panics;
// close the cache first.
func (s *Sink) Close() {
	s.once.Do(func() {
		close(s.q)
		s.wg.Wait()
	})
}
