package server

import (
	"sync"

	"github.com/jonathan/resume-screener/internal/pipeline"
)

// subscriberBuffer is how many events a slow SSE client may lag before
// events are dropped for it.
const subscriberBuffer = 64

// broker fans progress events out to SSE subscribers.
type broker struct {
	mu   sync.Mutex
	subs map[chan pipeline.ProgressEvent]struct{}
}

func newBroker() *broker {
	return &broker{subs: make(map[chan pipeline.ProgressEvent]struct{})}
}

// subscribe registers a listener. The returned func unregisters it.
func (b *broker) subscribe() (<-chan pipeline.ProgressEvent, func()) {
	ch := make(chan pipeline.ProgressEvent, subscriberBuffer)

	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	return ch, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, ok := b.subs[ch]; ok {
			delete(b.subs, ch)
			close(ch)
		}
	}
}

// publish delivers ev to every subscriber without blocking the run.
func (b *broker) publish(ev pipeline.ProgressEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (b *broker) len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
