package market

import (
	"context"
	"fmt"

	"souk/pkg/core"
)

// Seed resets the shared feed and loads the demo dataset. Existing
// market collections are cleared first so repeated seeding stays
// deterministic; the merchant catalog and partners are left alone.
func (r *Repositories) Seed(ctx context.Context, backend core.Backend) error {
	for _, key := range []string{core.KeyMarketItems, core.KeyMarketOrders, core.KeySupplierLocalOrders} {
		if err := backend.Remove(ctx, key); err != nil {
			return fmt.Errorf("failed to clear %s: %w", key, err)
		}
	}

	for _, item := range demoMarketItems() {
		if _, err := r.Market.Add(ctx, item); err != nil {
			return fmt.Errorf("failed to seed market item %q: %w", item.Name, err)
		}
	}
	return nil
}

func demoMarketItems() []*core.MarketItem {
	return []*core.MarketItem{
		{
			Name:        "هاتف ذكي آيفون 15",
			Price:       4000,
			Stock:       25,
			Category:    "إلكترونيات",
			Description: "أحدث هاتف ذكي من آبل بتقنيات متطورة",
			SKU:         "IP15-001",
			Status:      core.StatusActive,
			Type:        core.MarketProduct,
			Provider: core.Provider{
				ID:       "provider_1",
				Name:     "شركة التوريد المتقدم",
				Role:     "supplier",
				Rating:   4.8,
				Verified: true,
			},
		},
		{
			Name:        "لابتوب ديل XPS 13",
			Price:       5500,
			Stock:       15,
			Category:    "إلكترونيات",
			Description: "لابتوب عالي الأداء للمحترفين",
			SKU:         "DL-XPS13",
			Status:      core.StatusActive,
			Type:        core.MarketProduct,
			Provider: core.Provider{
				ID:       "provider_2",
				Name:     "معرض الأجهزة الذكية",
				Role:     "merchant",
				Rating:   4.6,
				Verified: true,
			},
		},
		{
			Name:        "ساعة ذكية سامسونج",
			Price:       1200,
			Stock:       30,
			Category:    "إلكترونيات",
			Description: "ساعة ذكية بتصميم أنيق وميزات متقدمة",
			SKU:         "SS-GW1",
			Status:      core.StatusActive,
			Type:        core.MarketProduct,
			Provider: core.Provider{
				ID:       "provider_3",
				Name:     "متجر الإلكترونيات الحديثة",
				Role:     "merchant",
				Rating:   4.5,
				Verified: true,
			},
		},
		{
			Name:        "سماعة بلوتوث جودة عالية",
			Price:       350,
			Stock:       50,
			Category:    "إلكترونيات",
			Description: "سماعة بلوتوث بجودة صوت ممتازة وبطارية تدوم حتى 20 ساعة",
			SKU:         "BT-HQ1",
			Status:      core.StatusActive,
			Type:        core.MarketProduct,
			Provider: core.Provider{
				ID:       "provider_4",
				Name:     "شركة الصوت الرقمي",
				Role:     "supplier",
				Rating:   4.7,
				Verified: true,
			},
		},
		{
			Name:        "طقم أثاث مكتبي حديث",
			Price:       8500,
			Stock:       10,
			Category:    "أثاث",
			Description: "طقم أثاث مكتبي مكون من مكتب وكرسي ومكتبة بتصميم عصري",
			SKU:         "OF-MOD1",
			Status:      core.StatusActive,
			Type:        core.MarketProduct,
			Provider: core.Provider{
				ID:       "provider_5",
				Name:     "أثاث المكاتب الراقية",
				Role:     "supplier",
				Rating:   4.6,
				Verified: true,
			},
		},
	}
}
