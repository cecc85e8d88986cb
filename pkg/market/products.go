package market

import (
	"souk/pkg/core"
	"souk/pkg/store"
)

// Products is the merchant's own catalog.
type Products struct {
	*store.Collection[*core.Product]
}

// NewProducts creates the products repository. Status defaults to
// active when the caller omits it.
func NewProducts(d Deps) *Products {
	return &Products{store.New(store.Config[*core.Product]{
		Key:     core.KeyProducts,
		Backend: d.Backend,
		Bus:     d.Bus,
		Logger:  d.Logger,
		Now:     d.Now,
		NewID:   d.NewID,
		Prepare: func(p *core.Product) {
			if p.Status == "" {
				p.Status = core.StatusActive
			}
		},
	})}
}
