// Package market provides the typed entity repositories of the
// marketplace: products, partners, shipping orders, the shared market
// feed and supplier exhibitions. Each repository is a thin policy layer
// over the generic collection store.
package market

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"souk/pkg/bus"
	"souk/pkg/core"
	"souk/pkg/store"
)

// Deps are the shared collaborators every repository is built from.
type Deps struct {
	Backend core.Backend
	Bus     *bus.Bus
	Logger  *slog.Logger

	// Now and NewID are injectable for tests; the collection store
	// falls back to time.Now and uuid when nil.
	Now   func() time.Time
	NewID func() string
}

// Repositories bundles every entity repository over one backend.
type Repositories struct {
	Products    *Products
	Partners    *Partners
	Market      *MarketItems
	Shipping    *ShippingOrders
	Exhibitions *Exhibitions
}

// NewRepositories wires all repositories over the shared deps.
func NewRepositories(d Deps) *Repositories {
	market := NewMarketItems(d)
	return &Repositories{
		Products:    NewProducts(d),
		Partners:    NewPartners(d),
		Market:      market,
		Shipping:    NewShippingOrders(d, market),
		Exhibitions: NewExhibitions(d, market),
	}
}

// MarketItems is the shared marketplace feed. Every mutation publishes
// the market-updated signal.
type MarketItems struct {
	*store.Collection[*core.MarketItem]
}

// NewMarketItems creates the marketItems repository.
func NewMarketItems(d Deps) *MarketItems {
	return &MarketItems{store.New(store.Config[*core.MarketItem]{
		Key:     core.KeyMarketItems,
		Backend: d.Backend,
		Bus:     d.Bus,
		Signal:  core.SignalMarketUpdated,
		Logger:  d.Logger,
		Now:     d.Now,
		NewID:   d.NewID,
		Prepare: func(item *core.MarketItem) {
			if item.Status == "" {
				item.Status = core.StatusActive
			}
			if item.Type == "" {
				item.Type = core.MarketProduct
			}
		},
	})}
}

// PublishProduct exposes a catalog product on the shared feed. The
// provider identity comes from the caller; the feed item is a copy, so
// later catalog edits do not retroactively change the listing.
func (m *MarketItems) PublishProduct(ctx context.Context, p *core.Product, provider core.Provider) (*core.MarketItem, error) {
	item := &core.MarketItem{
		Name:        p.Name,
		Price:       p.Price,
		Stock:       p.Stock,
		Category:    p.Category,
		Description: p.Description,
		Images:      p.Images,
		SKU:         p.SKU,
		Status:      p.Status,
		Type:        core.MarketProduct,
		Provider:    provider,
	}
	published, err := m.Add(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("failed to publish product %s: %w", p.ID, err)
	}
	return published, nil
}
