package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func receive[T any](t *testing.T, ch <-chan Event[T]) Event[T] {
	t.Helper()
	select {
	case ev, ok := <-ch:
		require.True(t, ok, "channel closed unexpectedly")
		return ev
	case <-time.After(time.Second):
		require.FailNow(t, "timeout waiting for event")
	}
	return Event[T]{}
}

func TestBroker_PublishDelivers(t *testing.T) {
	b := NewBroker[string]()
	defer b.Close()

	ch := b.Subscribe(context.Background())
	b.Publish(ChangedEvent, "preferences.yaml")

	ev := receive(t, ch)
	require.Equal(t, ChangedEvent, ev.Type)
	require.Equal(t, "preferences.yaml", ev.Payload)
	require.False(t, ev.Timestamp.IsZero())
}

func TestBroker_FanOut(t *testing.T) {
	b := NewBroker[int]()
	defer b.Close()

	a := b.Subscribe(context.Background())
	c := b.Subscribe(context.Background())
	require.Equal(t, 2, b.SubscriberCount())

	b.Publish(ChangedEvent, 7)
	require.Equal(t, 7, receive(t, a).Payload)
	require.Equal(t, 7, receive(t, c).Payload)
}

func TestBroker_CancelUnsubscribes(t *testing.T) {
	b := NewBroker[int]()
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch := b.Subscribe(ctx)
	cancel()

	require.Eventually(t, func() bool { return b.SubscriberCount() == 0 }, time.Second, 5*time.Millisecond)
	_, ok := <-ch
	require.False(t, ok)
}

func TestBroker_FullBufferDrops(t *testing.T) {
	b := NewBroker[int]()
	defer b.Close()

	ch := b.Subscribe(context.Background())
	for i := 0; i < defaultBufferSize+5; i++ {
		b.Publish(ChangedEvent, i)
	}
	require.Len(t, ch, defaultBufferSize)
}

func TestBroker_CloseClosesSubscribers(t *testing.T) {
	b := NewBroker[int]()
	ch := b.Subscribe(context.Background())

	b.Close()
	b.Close()
	b.Publish(ChangedEvent, 1)

	_, ok := <-ch
	require.False(t, ok)

	late := b.Subscribe(context.Background())
	_, ok = <-late
	require.False(t, ok, "subscribing after close yields a closed channel")
}

func TestContinuousListener_Listen(t *testing.T) {
	b := NewBroker[string]()
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := NewContinuousListener(ctx, b)
	b.Publish(ErrorEvent, "boom")

	msg := l.Listen()()
	ev, ok := msg.(Event[string])
	require.True(t, ok)
	require.Equal(t, ErrorEvent, ev.Type)
	require.Equal(t, "boom", ev.Payload)
}

func TestContinuousListener_ListenAfterCancel(t *testing.T) {
	b := NewBroker[string]()
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	l := NewContinuousListener(ctx, b)
	cancel()

	require.Nil(t, l.Listen()())

	var nilListener *ContinuousListener[string]
	require.Nil(t, nilListener.Listen())
}
