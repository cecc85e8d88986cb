// Package lifecycle bridges a backend's change event feed to the
// generic lifecycle.Source interface, so embedders can supervise the
// external change stream alongside their other workers.
package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"souk/pkg/core"
)

type changeSource struct {
	events <-chan core.ChangeEvent
	out    chan lifecycle.Event
}

// NewSource creates a lifecycle.Source that emits profile change events.
func NewSource(events <-chan core.ChangeEvent) lifecycle.Source {
	return &changeSource{
		events: events,
		out:    make(chan lifecycle.Event),
	}
}

func (s *changeSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *changeSource) Start(ctx context.Context) error {
	// lifecycle.Go keeps the bridge goroutine itself tracked and safe.
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.events:
				if !ok {
					return nil
				}
				// core.ChangeEvent implements lifecycle.Event (has String())
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
