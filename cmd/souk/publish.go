package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"souk/pkg/core"
)

var (
	publishProviderID   string
	publishProviderName string
)

var publishCmd = &cobra.Command{
	Use:   "publish <product-id>",
	Short: "Publish a catalog product to the market feed",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		p, err := openPlatform()
		if err != nil {
			fatal("Failed to open profile", err)
		}
		defer p.Close()

		ctx := context.Background()
		product, ok := p.Repos.Products.Get(ctx, args[0])
		if !ok {
			fatal("Product not found", fmt.Errorf("no product with id %s", args[0]))
		}

		item, err := p.Repos.Market.PublishProduct(ctx, product, core.Provider{
			ID:   publishProviderID,
			Name: publishProviderName,
			Role: "merchant",
		})
		if err != nil {
			fatal("Failed to publish product", err)
		}
		fmt.Println("Published to market as", item.ID)
	},
}

func init() {
	rootCmd.AddCommand(publishCmd)
	publishCmd.Flags().StringVar(&publishProviderID, "provider", "cli", "Provider id stamped on the market item")
	publishCmd.Flags().StringVar(&publishProviderName, "provider-name", "souk CLI", "Provider display name")
}
