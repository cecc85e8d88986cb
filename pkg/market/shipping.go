package market

import (
	"context"
	"fmt"

	"souk/pkg/core"
	"souk/pkg/store"
)

// ShippingOrders holds delivery requests. Order value is always derived
// from the line items, never trusted from the caller.
type ShippingOrders struct {
	*store.Collection[*core.ShippingOrder]
	market *MarketItems
}

// NewShippingOrders creates the shippingOrders repository.
func NewShippingOrders(d Deps, market *MarketItems) *ShippingOrders {
	return &ShippingOrders{
		Collection: store.New(store.Config[*core.ShippingOrder]{
			Key:     core.KeyShippingOrders,
			Backend: d.Backend,
			Bus:     d.Bus,
			Logger:  d.Logger,
			Now:     d.Now,
			NewID:   d.NewID,
			Prepare: func(o *core.ShippingOrder) {
				if o.Status == "" {
					o.Status = core.ShippingPending
				}
				if o.PublishToMarketplace && o.PublishScope == "" {
					o.PublishScope = core.ScopePublic
				}
				o.Value = orderValue(o.Items)
			},
		}),
		market: market,
	}
}

func orderValue(items []core.OrderItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}

// Place stores the order and, when it is flagged for the marketplace
// with a public scope, mirrors it into the shared feed as an offer. The
// provider identity comes from the caller.
func (s *ShippingOrders) Place(ctx context.Context, o *core.ShippingOrder, provider core.Provider) (*core.ShippingOrder, error) {
	placed, err := s.Add(ctx, o)
	if err != nil {
		return nil, err
	}
	if !placed.PublishToMarketplace || placed.PublishScope != core.ScopePublic {
		return placed, nil
	}

	_, err = s.market.Add(ctx, &core.MarketItem{
		Name:        "توصيل إلى " + placed.Destination,
		Price:       placed.Value,
		Stock:       1,
		Category:    "شحن",
		Description: fmt.Sprintf("استلام من %s، عدد العناصر %d", placed.PickupAddress, len(placed.Items)),
		Type:        core.MarketOffer,
		Provider:    provider,
		Metadata: map[string]any{
			"source":  "shippingOrder",
			"orderId": placed.ID,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("order %s stored but marketplace mirror failed: %w", placed.ID, err)
	}
	return placed, nil
}
