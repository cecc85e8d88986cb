package market_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"souk/pkg/core"
)

func TestCreateExhibitionDefaultsToPrivate(t *testing.T) {
	ctx := context.Background()
	repos, _ := newRepos(t)

	ex, err := repos.Exhibitions.Create(ctx, &core.Exhibition{
		SupplierID: "sup-1",
		Title:      "معرض الإلكترونيات",
	})
	require.NoError(t, err)
	assert.Equal(t, core.VisibilityPrivate, ex.Visibility)

	got, ok := repos.Exhibitions.Get(ctx, "sup-1")
	require.True(t, ok)
	assert.Equal(t, ex.ID, got.ID)
}

func TestSecondExhibitionRejected(t *testing.T) {
	ctx := context.Background()
	repos, _ := newRepos(t)

	_, err := repos.Exhibitions.Create(ctx, &core.Exhibition{SupplierID: "sup-1", Title: "الأول"})
	require.NoError(t, err)

	_, err = repos.Exhibitions.Create(ctx, &core.Exhibition{SupplierID: "sup-1", Title: "الثاني"})
	require.ErrorIs(t, err, core.ErrExhibitionExists)

	// The collection still holds exactly the first one.
	got, ok := repos.Exhibitions.Get(ctx, "sup-1")
	require.True(t, ok)
	assert.Equal(t, "الأول", got.Title)

	// A different supplier is unaffected.
	_, err = repos.Exhibitions.Create(ctx, &core.Exhibition{SupplierID: "sup-2", Title: "آخر"})
	require.NoError(t, err)
}

func TestEnsureDefaultIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repos, _ := newRepos(t)

	first, err := repos.Exhibitions.EnsureDefault(ctx, "sup-1", "شركة التوريد")
	require.NoError(t, err)
	assert.Equal(t, core.VisibilityPrivate, first.Visibility)
	assert.True(t, first.Settings.ShowPrices)

	second, err := repos.Exhibitions.EnsureDefault(ctx, "sup-1", "شركة التوريد")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestDeleteFreesTheSupplierSlot(t *testing.T) {
	ctx := context.Background()
	repos, _ := newRepos(t)

	_, err := repos.Exhibitions.Create(ctx, &core.Exhibition{SupplierID: "sup-1", Title: "الأول"})
	require.NoError(t, err)

	ok, err := repos.Exhibitions.Delete(ctx, "sup-1")
	require.NoError(t, err)
	require.True(t, ok)

	_, err = repos.Exhibitions.Create(ctx, &core.Exhibition{SupplierID: "sup-1", Title: "الثاني"})
	require.NoError(t, err)
}

func TestStatsOnlyGrow(t *testing.T) {
	ctx := context.Background()
	repos, _ := newRepos(t)

	_, err := repos.Exhibitions.Create(ctx, &core.Exhibition{SupplierID: "sup-1", Title: "معرض"})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = repos.Exhibitions.AddView(ctx, "sup-1")
		require.NoError(t, err)
	}
	_, err = repos.Exhibitions.AddLike(ctx, "sup-1")
	require.NoError(t, err)
	_, err = repos.Exhibitions.Subscribe(ctx, "sup-1")
	require.NoError(t, err)

	got, ok := repos.Exhibitions.Get(ctx, "sup-1")
	require.True(t, ok)
	assert.Equal(t, core.ExhibitionStats{Views: 3, Likes: 1, Shares: 0, Subscribers: 1}, got.Stats)
}

func TestPublishItemUsesDiscountedPrice(t *testing.T) {
	ctx := context.Background()
	repos, _ := newRepos(t)

	_, err := repos.Exhibitions.Create(ctx, &core.Exhibition{SupplierID: "sup-1", Title: "معرض"})
	require.NoError(t, err)

	item, err := repos.Exhibitions.AddItem(ctx, "sup-1", core.ExhibitionItem{
		Name:     "سماعة",
		Price:    200,
		Discount: 25,
		Stock:    10,
	})
	require.NoError(t, err)
	require.NotEmpty(t, item.ID)

	published, err := repos.Exhibitions.PublishItem(ctx, "sup-1", item.ID, supplierIdentity())
	require.NoError(t, err)
	assert.Equal(t, 150.0, published.Price)
	assert.Equal(t, "EXH-"+item.ID, published.SKU)
	assert.Equal(t, "exhibition", published.Metadata["source"])
	assert.Equal(t, item.ID, published.Metadata["itemId"])

	got, _ := repos.Exhibitions.Get(ctx, "sup-1")
	assert.Equal(t, 1, got.Stats.Shares)
}

func TestPublishItemIgnoresExhibitionVisibility(t *testing.T) {
	ctx := context.Background()
	repos, _ := newRepos(t)

	// A private exhibition can still push individual items to the feed.
	_, err := repos.Exhibitions.Create(ctx, &core.Exhibition{
		SupplierID: "sup-1",
		Title:      "معرض خاص",
		Visibility: core.VisibilityPrivate,
	})
	require.NoError(t, err)

	item, err := repos.Exhibitions.AddItem(ctx, "sup-1", core.ExhibitionItem{Name: "منتج", Price: 100})
	require.NoError(t, err)

	_, err = repos.Exhibitions.PublishItem(ctx, "sup-1", item.ID, supplierIdentity())
	require.NoError(t, err)
	assert.Len(t, repos.Market.List(ctx), 1)
}

func TestPublicListsOnlyPublicExhibitions(t *testing.T) {
	ctx := context.Background()
	repos, _ := newRepos(t)

	_, err := repos.Exhibitions.Create(ctx, &core.Exhibition{
		SupplierID: "sup-1",
		Title:      "ظاهر",
		Visibility: core.VisibilityPublic,
	})
	require.NoError(t, err)
	_, err = repos.Exhibitions.Create(ctx, &core.Exhibition{
		SupplierID: "sup-2",
		Title:      "مخفي",
		Visibility: core.VisibilityPrivate,
	})
	require.NoError(t, err)

	public, err := repos.Exhibitions.Public(ctx)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, "ظاهر", public[0].Title)
}

func TestRemoveItemIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repos, _ := newRepos(t)

	_, err := repos.Exhibitions.Create(ctx, &core.Exhibition{SupplierID: "sup-1", Title: "معرض"})
	require.NoError(t, err)
	item, err := repos.Exhibitions.AddItem(ctx, "sup-1", core.ExhibitionItem{Name: "منتج", Price: 10})
	require.NoError(t, err)

	removed, err := repos.Exhibitions.RemoveItem(ctx, "sup-1", item.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repos.Exhibitions.RemoveItem(ctx, "sup-1", item.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}
