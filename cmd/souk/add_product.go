package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"souk"
	"souk/pkg/core"
)

var (
	productPrice    float64
	productStock    int
	productCategory string
	productSKU      string
	productPublish  bool
)

var addProductCmd = &cobra.Command{
	Use:   "add-product <name>",
	Short: "Add a product to the catalog",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		p, err := openPlatform()
		if err != nil {
			fatal("Failed to open profile", err)
		}
		defer p.Close()

		ctx := context.Background()
		product, err := p.Repos.Products.Add(ctx, &souk.Product{
			Name:     args[0],
			Price:    productPrice,
			Stock:    productStock,
			Category: productCategory,
			SKU:      productSKU,
		})
		if err != nil {
			fatal("Failed to add product", err)
		}
		fmt.Println("Added product", product.ID)

		if productPublish {
			item, err := p.Repos.Market.PublishProduct(ctx, product, core.Provider{
				ID:   "cli",
				Name: "souk CLI",
				Role: "merchant",
			})
			if err != nil {
				fatal("Failed to publish product", err)
			}
			fmt.Println("Published to market as", item.ID)
		}
	},
}

func init() {
	rootCmd.AddCommand(addProductCmd)
	addProductCmd.Flags().Float64Var(&productPrice, "price", 0, "Unit price")
	addProductCmd.Flags().IntVar(&productStock, "stock", 0, "Units in stock")
	addProductCmd.Flags().StringVar(&productCategory, "category", "", "Category")
	addProductCmd.Flags().StringVar(&productSKU, "sku", "", "Stock keeping unit")
	addProductCmd.Flags().BoolVar(&productPublish, "publish", false, "Also publish to the market feed")
}
