package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"souk"
)

var (
	verbose bool
	profile string
	adapter string
)

// profileConfig is the optional souk.yaml inside a profile directory.
type profileConfig struct {
	Adapter   string `yaml:"adapter"`
	Database  string `yaml:"database"`
	Retention string `yaml:"retention"`
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "souk",
	Short: "A marketplace document store with event sync",
	Long: `Souk manages a marketplace profile: JSON document collections for
products, partners, shipping orders, the shared market feed and supplier
exhibitions, with change signals and cross-process sync.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	// Env defaults (SOUK_PROFILE, SOUK_ADAPTER) may live in a .env file.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&profile, "profile", "p", "", "Profile directory (default: discovered from CWD)")
	rootCmd.PersistentFlags().StringVarP(&adapter, "adapter", "a", "", "Storage adapter: memory, fs or sqlite")
}

// profileDir resolves the profile directory: flag, then SOUK_PROFILE,
// then the nearest marker above the CWD, then the CWD itself.
func profileDir() string {
	if profile != "" {
		return profile
	}
	if env := os.Getenv("SOUK_PROFILE"); env != "" {
		return env
	}
	wd, err := os.Getwd()
	if err != nil {
		fatal("Failed to get CWD", err)
	}
	if found, err := souk.FindProfile(wd); err == nil {
		return found
	}
	return wd
}

// loadConfig reads souk.yaml from the profile directory, if present.
func loadConfig(dir string) profileConfig {
	var cfg profileConfig
	data, err := os.ReadFile(filepath.Join(dir, "souk.yaml"))
	if err != nil {
		return cfg
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		slog.Warn("ignoring malformed souk.yaml", "error", err)
	}
	return cfg
}

// openPlatform assembles the platform for the resolved profile.
func openPlatform(extra ...souk.Option) (*souk.Platform, error) {
	dir := profileDir()
	cfg := loadConfig(dir)

	name := adapter
	if name == "" {
		name = os.Getenv("SOUK_ADAPTER")
	}
	if name == "" && cfg.Adapter != "" {
		name = cfg.Adapter
	}
	if name == "" {
		name = "fs"
	}

	uri := dir
	if name == "sqlite" {
		db := cfg.Database
		if db == "" {
			db = "souk.db"
		}
		uri = filepath.Join(dir, db)
	}

	opts := []souk.Option{
		souk.WithAdapter(name),
		souk.WithLogger(slog.Default()),
	}
	if cfg.Retention != "" {
		opts = append(opts, souk.WithRetentionSchedule(cfg.Retention))
	}
	opts = append(opts, extra...)

	return souk.Open(uri, opts...)
}
