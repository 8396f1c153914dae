package sse

import (
	"encoding/json"
	"sync"
)

// Event is what image and menu mutations broadcast so browser caches
// refetch stale images.
type Event struct {
	Type string `json:"type"`
	Path string `json:"path,omitempty"`
}

type client struct {
	ch        chan Event
	closeOnce sync.Once
}

// closeCh is safe against the publisher and the unsubscriber racing to
// close the same channel.
func (c *client) closeCh() {
	c.closeOnce.Do(func() { close(c.ch) })
}

// Broker fans events out to the currently connected event-stream
// clients. Everything is in-process; a client that cannot keep up is
// dropped rather than blocking the publisher.
type Broker struct {
	mu      sync.Mutex
	clients map[*client]struct{}
}

func NewBroker() *Broker {
	return &Broker{clients: make(map[*client]struct{})}
}

// Subscribe registers a client and returns its event channel plus an
// unsubscribe func. The channel is buffered so one slow read does not
// stall Publish.
func (b *Broker) Subscribe() (<-chan Event, func()) {
	cl := &client{ch: make(chan Event, 8)}

	b.mu.Lock()
	b.clients[cl] = struct{}{}
	b.mu.Unlock()

	unsubscribe := func() {
		b.mu.Lock()
		delete(b.clients, cl)
		b.mu.Unlock()
		cl.closeCh()
	}
	return cl.ch, unsubscribe
}

func (b *Broker) Publish(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for cl := range b.clients {
		select {
		case cl.ch <- ev:
		default:
			// full buffer, the client is too slow; it will resync on
			// its next reconnect
			delete(b.clients, cl)
			cl.closeCh()
		}
	}
}

func (b *Broker) ClientCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.clients)
}

// Frame renders an event as a text/event-stream data frame.
func Frame(ev Event) []byte {
	data, _ := json.Marshal(ev)
	return append(append([]byte("data: "), data...), '\n', '\n')
}
