package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// seedCmd represents the seed command
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the demo marketplace dataset",
	Long:  `Clear the market collections and load the demo dataset. Catalog and partners are untouched.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		p, err := openPlatform()
		if err != nil {
			fatal("Failed to open profile", err)
		}
		defer p.Close()

		if err := p.Repos.Seed(context.Background(), p.Backend); err != nil {
			fatal("Failed to seed", err)
		}
		fmt.Println("Seeded demo market data")
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
