package bus_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"souk/pkg/bus"
	"souk/pkg/core"
)

func TestPublishDeliversInSubscriptionOrder(t *testing.T) {
	b := bus.New(nil)

	var order []string
	b.Subscribe(core.SignalStorageUpdated, func(any) { order = append(order, "first") })
	b.Subscribe(core.SignalStorageUpdated, func(any) { order = append(order, "second") })
	b.Subscribe(core.SignalStorageUpdated, func(any) { order = append(order, "third") })

	b.Publish(core.SignalStorageUpdated, nil)

	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestSubscribersReceiveSameDetail(t *testing.T) {
	b := bus.New(nil)

	detail := core.StorageDetail{Key: core.KeyProducts}
	var got []any
	b.Subscribe(core.SignalStorageUpdated, func(d any) { got = append(got, d) })
	b.Subscribe(core.SignalStorageUpdated, func(d any) { got = append(got, d) })

	b.Publish(core.SignalStorageUpdated, detail)

	require.Len(t, got, 2)
	assert.Equal(t, detail, got[0])
	assert.Equal(t, detail, got[1])
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := bus.New(nil)

	calls := 0
	unsub := b.Subscribe(core.SignalMarketUpdated, func(any) { calls++ })

	b.Publish(core.SignalMarketUpdated, nil)
	unsub()
	b.Publish(core.SignalMarketUpdated, nil)

	assert.Equal(t, 1, calls)

	// Double unsubscribe is a no-op.
	assert.NotPanics(t, unsub)
}

func TestUnsubscribeDuringDeliveryDoesNotSkipOthers(t *testing.T) {
	b := bus.New(nil)

	var unsubSecond func()
	var delivered []string

	b.Subscribe(core.SignalStorageUpdated, func(any) {
		delivered = append(delivered, "first")
		unsubSecond()
	})
	unsubSecond = b.Subscribe(core.SignalStorageUpdated, func(any) {
		delivered = append(delivered, "second")
	})
	b.Subscribe(core.SignalStorageUpdated, func(any) {
		delivered = append(delivered, "third")
	})

	require.NotPanics(t, func() { b.Publish(core.SignalStorageUpdated, nil) })

	// The second subscriber was removed mid-pass; the third still fires.
	assert.Equal(t, []string{"first", "third"}, delivered)
}

func TestNestedPublishIsQueuedAfterCurrentPass(t *testing.T) {
	b := bus.New(nil)

	var order []string
	b.Subscribe(core.SignalStorageUpdated, func(any) {
		order = append(order, "storage-a")
		b.Publish(core.SignalMarketUpdated, nil)
	})
	b.Subscribe(core.SignalStorageUpdated, func(any) {
		order = append(order, "storage-b")
	})
	b.Subscribe(core.SignalMarketUpdated, func(any) {
		order = append(order, "market")
	})

	b.Publish(core.SignalStorageUpdated, nil)

	// The nested market publish runs only after both storage subscribers.
	assert.Equal(t, []string{"storage-a", "storage-b", "market"}, order)
}

func TestHandlerPanicDoesNotStopFanout(t *testing.T) {
	b := bus.New(nil)

	reached := false
	b.Subscribe(core.SignalStorageUpdated, func(any) { panic("boom") })
	b.Subscribe(core.SignalStorageUpdated, func(any) { reached = true })

	require.NotPanics(t, func() { b.Publish(core.SignalStorageUpdated, nil) })
	assert.True(t, reached)
}

func TestLateSubscriberMissesInFlightPublish(t *testing.T) {
	b := bus.New(nil)

	lateCalls := 0
	b.Subscribe(core.SignalStorageUpdated, func(any) {
		b.Subscribe(core.SignalStorageUpdated, func(any) { lateCalls++ })
	})

	b.Publish(core.SignalStorageUpdated, nil)
	assert.Zero(t, lateCalls)

	b.Publish(core.SignalStorageUpdated, nil)
	assert.Equal(t, 1, lateCalls)
}
