package sse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recvEvent(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestBroker_FanOut(t *testing.T) {
	t.Parallel()

	b := NewBroker()
	ch1, unsub1 := b.Subscribe()
	ch2, unsub2 := b.Subscribe()
	defer unsub1()
	defer unsub2()

	require.Equal(t, 2, b.ClientCount())

	b.Publish(Event{Type: "image_uploaded", Path: "/images/menu/a.jpg"})

	for _, ch := range []<-chan Event{ch1, ch2} {
		ev := recvEvent(t, ch)
		assert.Equal(t, "image_uploaded", ev.Type)
		assert.Equal(t, "/images/menu/a.jpg", ev.Path)
	}
}

func TestBroker_UnsubscribeStopsDelivery(t *testing.T) {
	t.Parallel()

	b := NewBroker()
	ch, unsub := b.Subscribe()
	unsub()
	// second call is a no-op
	unsub()

	assert.Equal(t, 0, b.ClientCount())

	b.Publish(Event{Type: "image_deleted"})

	// the channel is closed, not fed
	_, open := <-ch
	assert.False(t, open)
}

func TestBroker_DropsSlowClient(t *testing.T) {
	t.Parallel()

	b := NewBroker()
	ch, unsub := b.Subscribe()
	defer unsub()

	// overflow the buffer without reading
	for i := 0; i < 16; i++ {
		b.Publish(Event{Type: "image_uploaded"})
	}

	assert.Equal(t, 0, b.ClientCount())

	// buffered events are still readable, then the channel closes
	n := 0
	for range ch {
		n++
	}
	assert.Equal(t, 8, n)
}

func TestFrame(t *testing.T) {
	t.Parallel()

	got := Frame(Event{Type: "connected"})
	assert.Equal(t, "data: {\"type\":\"connected\"}\n\n", string(got))

	got = Frame(Event{Type: "image_deleted", Path: "/images/other/x.png"})
	assert.Equal(t, "data: {\"type\":\"image_deleted\",\"path\":\"/images/other/x.png\"}\n\n", string(got))
}
