package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/4elobrek9/repodoc-cli/internal/ai"
	cfgpkg "github.com/4elobrek9/repodoc-cli/internal/config"
	"github.com/spf13/cobra"
)

var (
	// Global flags (wired to config/viper in loadConfig)
	cfgFile        string
	debug          bool
	flagModel      string
	flagOllamaHost string
	flagTimeoutSec int

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "repodoc",
	Short: "RepoDoc CLI: generate a README for a repository with a local model",
	Long:  `RepoDoc scans a source tree, asks a local Ollama model to analyze each file, and assembles the results into a complete README document.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	// Initialize configuration before executing commands
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent global flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.repodoc/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&flagModel, "model", "", "model name (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagOllamaHost, "ollama-host", "", "Ollama host, e.g. http://127.0.0.1:11434 (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagTimeoutSec, "timeout-sec", 0, "per-request timeout in seconds (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: allow running commands that don't need config
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c

	// Apply CLI overrides if provided
	f := rootCmd.PersistentFlags()
	if f.Changed("model") && flagModel != "" {
		cfg.Model = flagModel
	}
	if f.Changed("ollama-host") && flagOllamaHost != "" {
		cfg.OllamaHost = flagOllamaHost
	}
	if f.Changed("timeout-sec") && flagTimeoutSec > 0 {
		cfg.TimeoutSec = flagTimeoutSec
	}
}

// requireConfig returns the loaded config, retrying the load once for the
// case where loadConfig warned and left cfg nil.
func requireConfig() (*cfgpkg.Global, error) {
	if cfg != nil {
		return cfg, nil
	}
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg = c
	return cfg, nil
}

// buildClient assembles the Ollama client from the effective config.
func buildClient(c *cfgpkg.Global) *ai.Client {
	client := ai.NewClient(
		c.OllamaHost,
		time.Duration(c.TimeoutSec)*time.Second,
		c.RetryMaxAttempts,
		time.Duration(c.RetryBaseDelayMs)*time.Millisecond,
		time.Duration(c.RetryMaxDelayMs)*time.Millisecond,
	)
	client.SetDebugLogging(debug)
	return client
}
