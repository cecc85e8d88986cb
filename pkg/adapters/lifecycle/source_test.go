package lifecycle_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapter "souk/pkg/adapters/lifecycle"
	"souk/pkg/core"
)

func TestSourceBridgesChangeEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan core.ChangeEvent, 1)
	source := adapter.NewSource(events)
	require.NoError(t, source.Start(ctx))

	events <- core.ChangeEvent{Op: core.ChangeModify, Key: core.KeyProducts, Timestamp: 1}

	select {
	case e := <-source.Events():
		assert.Equal(t, "MODIFY products", e.String())
	case <-time.After(2 * time.Second):
		t.Fatal("no event bridged")
	}
}

func TestSourceClosesWhenFeedCloses(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan core.ChangeEvent)
	source := adapter.NewSource(events)
	require.NoError(t, source.Start(ctx))

	close(events)

	select {
	case _, ok := <-source.Events():
		assert.False(t, ok, "output closes with the feed")
	case <-time.After(2 * time.Second):
		t.Fatal("output never closed")
	}
}
