package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"souk/pkg/core"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print change signals for the profile until interrupted",
	Long: `Subscribe to the profile's signals and print every collection
change, including writes made by other processes on the same profile.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		p, err := openPlatform()
		if err != nil {
			fatal("Failed to open profile", err)
		}
		defer p.Close()

		unsubscribe := p.Bus.Subscribe(core.SignalStorageUpdated, func(detail any) {
			d, ok := detail.(core.StorageDetail)
			if !ok {
				return
			}
			fmt.Printf("%s  storage-updated  %s\n", time.Now().Format(time.TimeOnly), d.Key)
		})
		defer unsubscribe()

		fmt.Println("Watching profile, Ctrl-C to stop")
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
