package market

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"souk/pkg/core"
	"souk/pkg/store"
)

// Exhibitions manages supplier storefronts. Each supplier's exhibitions
// live under their own collection key, and the one-exhibition-per-supplier
// rule is enforced here rather than in storage.
type Exhibitions struct {
	deps   Deps
	market *MarketItems

	mu   sync.Mutex
	cols map[string]*store.Collection[*core.Exhibition]
}

// NewExhibitions creates the exhibitions repository.
func NewExhibitions(d Deps, market *MarketItems) *Exhibitions {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.NewID == nil {
		d.NewID = uuid.NewString
	}
	return &Exhibitions{
		deps:   d,
		market: market,
		cols:   make(map[string]*store.Collection[*core.Exhibition]),
	}
}

// collection returns (lazily creating) the per-supplier collection.
func (e *Exhibitions) collection(supplierID string) *store.Collection[*core.Exhibition] {
	e.mu.Lock()
	defer e.mu.Unlock()

	if col, ok := e.cols[supplierID]; ok {
		return col
	}
	col := store.New(store.Config[*core.Exhibition]{
		Key:     core.ExhibitionsKey(supplierID),
		Backend: e.deps.Backend,
		Bus:     e.deps.Bus,
		Signal:  core.SignalExhibitionUpdated,
		Logger:  e.deps.Logger,
		Now:     e.deps.Now,
		NewID:   e.deps.NewID,
		Prepare: func(ex *core.Exhibition) {
			// New storefronts start hidden until the supplier opts in.
			if ex.Visibility == "" {
				ex.Visibility = core.VisibilityPrivate
			}
			ex.UpdatedAt = e.deps.Now()
		},
	})
	e.cols[supplierID] = col
	return col
}

// Get returns the supplier's exhibition, if any.
func (e *Exhibitions) Get(ctx context.Context, supplierID string) (*core.Exhibition, bool) {
	items := e.collection(supplierID).List(ctx)
	if len(items) == 0 {
		return nil, false
	}
	return items[0], true
}

// Create stores the supplier's exhibition. A supplier can hold at most
// one; the existing one must be deleted before another is created.
func (e *Exhibitions) Create(ctx context.Context, ex *core.Exhibition) (*core.Exhibition, error) {
	col := e.collection(ex.SupplierID)
	if len(col.List(ctx)) > 0 {
		return nil, core.ErrExhibitionExists
	}
	return col.Add(ctx, ex)
}

// EnsureDefault returns the supplier's exhibition, creating a private
// default one on first use.
func (e *Exhibitions) EnsureDefault(ctx context.Context, supplierID, supplierName string) (*core.Exhibition, error) {
	if ex, ok := e.Get(ctx, supplierID); ok {
		return ex, nil
	}
	return e.Create(ctx, &core.Exhibition{
		SupplierID:   supplierID,
		SupplierName: supplierName,
		Title:        "معرض " + supplierName,
		Visibility:   core.VisibilityPrivate,
		Settings: core.ExhibitionSettings{
			AllowComments: true,
			ShowPrices:    true,
			EnableOrders:  true,
		},
	})
}

// Update applies mutate to the supplier's exhibition. It reports false
// when the supplier has none.
func (e *Exhibitions) Update(ctx context.Context, supplierID string, mutate func(*core.Exhibition)) (bool, error) {
	ex, ok := e.Get(ctx, supplierID)
	if !ok {
		return false, nil
	}
	return e.collection(supplierID).Update(ctx, ex.ID, mutate)
}

// Delete removes the supplier's exhibition, freeing them to create a
// new one.
func (e *Exhibitions) Delete(ctx context.Context, supplierID string) (bool, error) {
	ex, ok := e.Get(ctx, supplierID)
	if !ok {
		return false, nil
	}
	return e.collection(supplierID).Delete(ctx, ex.ID)
}

// AddItem appends a product to the supplier's exhibition and assigns
// its id.
func (e *Exhibitions) AddItem(ctx context.Context, supplierID string, item core.ExhibitionItem) (core.ExhibitionItem, error) {
	item.ID = e.deps.NewID()
	ok, err := e.Update(ctx, supplierID, func(ex *core.Exhibition) {
		ex.Items = append(ex.Items, item)
	})
	if err != nil {
		return core.ExhibitionItem{}, err
	}
	if !ok {
		return core.ExhibitionItem{}, fmt.Errorf("supplier %s has no exhibition", supplierID)
	}
	return item, nil
}

// RemoveItem drops an item from the supplier's exhibition. Absent items
// are a no-op.
func (e *Exhibitions) RemoveItem(ctx context.Context, supplierID, itemID string) (bool, error) {
	removed := false
	ok, err := e.Update(ctx, supplierID, func(ex *core.Exhibition) {
		kept := ex.Items[:0]
		for _, it := range ex.Items {
			if it.ID == itemID {
				removed = true
				continue
			}
			kept = append(kept, it)
		}
		ex.Items = kept
	})
	if err != nil || !ok {
		return false, err
	}
	return removed, nil
}

// AddView bumps the exhibition's view counter.
func (e *Exhibitions) AddView(ctx context.Context, supplierID string) (bool, error) {
	return e.Update(ctx, supplierID, func(ex *core.Exhibition) { ex.Stats.Views++ })
}

// AddLike bumps the exhibition's like counter.
func (e *Exhibitions) AddLike(ctx context.Context, supplierID string) (bool, error) {
	return e.Update(ctx, supplierID, func(ex *core.Exhibition) { ex.Stats.Likes++ })
}

// Subscribe bumps the exhibition's subscriber counter.
func (e *Exhibitions) Subscribe(ctx context.Context, supplierID string) (bool, error) {
	return e.Update(ctx, supplierID, func(ex *core.Exhibition) { ex.Stats.Subscribers++ })
}

// PublishItem exposes one exhibition item on the shared feed at its
// discounted price and counts the publication as a share. Item-level
// publishing works regardless of the exhibition's visibility; only
// whole-exhibition browsing honors it.
func (e *Exhibitions) PublishItem(ctx context.Context, supplierID, itemID string, provider core.Provider) (*core.MarketItem, error) {
	ex, ok := e.Get(ctx, supplierID)
	if !ok {
		return nil, fmt.Errorf("supplier %s has no exhibition", supplierID)
	}

	var item *core.ExhibitionItem
	for i := range ex.Items {
		if ex.Items[i].ID == itemID {
			item = &ex.Items[i]
			break
		}
	}
	if item == nil {
		return nil, fmt.Errorf("item %s not found in exhibition %s", itemID, ex.ID)
	}

	published, err := e.market.Add(ctx, &core.MarketItem{
		Name:        item.Name,
		Price:       item.FinalPrice(),
		Stock:       item.Stock,
		Category:    item.Category,
		Description: item.Description,
		Images:      item.Images,
		SKU:         "EXH-" + item.ID,
		Type:        core.MarketProduct,
		Provider:    provider,
		Metadata: map[string]any{
			"source":       "exhibition",
			"exhibitionId": ex.ID,
			"itemId":       item.ID,
			"supplierId":   ex.SupplierID,
		},
	})
	if err != nil {
		return nil, err
	}

	if _, err := e.Update(ctx, supplierID, func(x *core.Exhibition) { x.Stats.Shares++ }); err != nil {
		return published, err
	}
	return published, nil
}

// Public returns every public exhibition across all suppliers, the
// cross-supplier browse used by the marketplace feed.
func (e *Exhibitions) Public(ctx context.Context) ([]*core.Exhibition, error) {
	keys, err := e.deps.Backend.Keys(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list exhibition keys: %w", err)
	}

	var out []*core.Exhibition
	for _, key := range keys {
		supplierID, ok := strings.CutPrefix(key, core.ExhibitionsPrefix)
		if !ok {
			continue
		}
		for _, ex := range e.collection(supplierID).List(ctx) {
			if ex.Visibility == core.VisibilityPublic {
				out = append(out, ex)
			}
		}
	}
	return out, nil
}
