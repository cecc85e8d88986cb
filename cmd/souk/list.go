package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"souk"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list <collection>",
	Short: "List the records of a collection",
	Long: `List the contents of one collection: products, partners,
shipping-orders, market or notifications.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"products", "partners", "shipping-orders", "market", "notifications"},
	Run: func(cmd *cobra.Command, args []string) {
		p, err := openPlatform()
		if err != nil {
			fatal("Failed to open profile", err)
		}
		defer p.Close()

		ctx := context.Background()
		if listJSON {
			var records any
			switch args[0] {
			case "products":
				records = p.Repos.Products.List(ctx)
			case "partners":
				records = p.Repos.Partners.List(ctx)
			case "shipping-orders":
				records = p.Repos.Shipping.List(ctx)
			case "market":
				records = p.Repos.Market.List(ctx)
			case "notifications":
				records = p.Notifications.List()
			default:
				fatal("Unknown collection", fmt.Errorf("%q", args[0]))
			}
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(records); err != nil {
				fatal("Failed to encode JSON", err)
			}
			return
		}
		printRecords(ctx, p, args[0])
	},
}

func printRecords(ctx context.Context, p *souk.Platform, collection string) {
	switch collection {
	case "products":
		for _, r := range p.Repos.Products.List(ctx) {
			fmt.Printf("%s  %-30s %10.2f  stock %d  %s\n", r.ID, r.Name, r.Price, r.Stock, r.Status)
		}
	case "partners":
		for _, r := range p.Repos.Partners.List(ctx) {
			fmt.Printf("%s  %-30s %s\n", r.ID, r.Name, r.Type)
		}
	case "shipping-orders":
		for _, r := range p.Repos.Shipping.List(ctx) {
			fmt.Printf("%s  %s -> %s  %10.2f  %s\n", r.ID, r.PickupAddress, r.Destination, r.Value, r.Status)
		}
	case "market":
		for _, r := range p.Repos.Market.List(ctx) {
			fmt.Printf("%s  %-30s %10.2f  %s  by %s\n", r.ID, r.Name, r.Price, r.Type, r.Provider.Name)
		}
	case "notifications":
		for _, n := range p.Notifications.List() {
			read := " "
			if !n.Read {
				read = "*"
			}
			fmt.Printf("%s %s  [%s] %s\n", read, n.ID, n.Priority, n.Title)
		}
	default:
		fatal("Unknown collection", fmt.Errorf("%q", collection))
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
}
