package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"souk"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of souk",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("souk version %s\n", souk.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
