package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a souk profile in the current directory",
	Long:  `Create a souk.yaml marker so the directory is discovered as a profile root.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cwd, err := os.Getwd()
		if err != nil {
			fatal("Failed to get CWD", err)
		}
		if profile != "" {
			cwd = profile
			if err := os.MkdirAll(cwd, 0755); err != nil {
				fatal("Failed to create profile directory", err)
			}
		}

		path := filepath.Join(cwd, "souk.yaml")
		if _, err := os.Stat(path); err == nil {
			fatal("Profile already initialized", fmt.Errorf("%s exists", path))
		}

		name := adapter
		if name == "" {
			name = "fs"
		}
		data, err := yaml.Marshal(profileConfig{Adapter: name})
		if err != nil {
			fatal("Failed to encode config", err)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			fatal("Failed to write config", err)
		}

		fmt.Println("Initialized souk profile in", cwd)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
