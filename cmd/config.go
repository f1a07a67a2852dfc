package cmd

import (
	"fmt"
	"strconv"
	"strings"

	cfgpkg "github.com/4elobrek9/repodoc-cli/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set RepoDoc configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Println("No config loaded")
			return nil
		}
		fmt.Printf("model: %s\n", cfg.Model)
		fmt.Printf("ollama_host: %s\n", cfg.OllamaHost)
		fmt.Printf("timeout_sec: %d\n", cfg.TimeoutSec)
		fmt.Printf("chunk_size: %d\n", cfg.ChunkSize)
		fmt.Printf("ignore_dirs: %s\n", strings.Join(cfg.IgnoreDirs, ", "))
		fmt.Printf("ignore_files: %s\n", strings.Join(cfg.IgnoreFiles, ", "))
		fmt.Printf("retry_max_attempts: %d\n", cfg.RetryMaxAttempts)
		if cfg.RetryMaxAttempts > 1 {
			fmt.Printf("retry_base_delay_ms: %d\n", cfg.RetryBaseDelayMs)
			fmt.Printf("retry_max_delay_ms: %d\n", cfg.RetryMaxDelayMs)
		}
		if cfg.Output != "" {
			fmt.Printf("output: %s\n", cfg.Output)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		c, err := requireConfig()
		if err != nil {
			return err
		}
		switch key {
		case "model":
			c.Model = val
		case "ollama_host":
			c.OllamaHost = val
		case "timeout_sec":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid int for timeout_sec: %v", val)
			}
			c.TimeoutSec = i
		case "chunk_size":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid int for chunk_size: %v", val)
			}
			c.ChunkSize = i
		case "ignore_dirs":
			c.IgnoreDirs = splitList(val)
		case "ignore_files":
			c.IgnoreFiles = splitList(val)
		case "retry_max_attempts":
			i, err := strconv.Atoi(val)
			if err != nil || i < 1 {
				return fmt.Errorf("invalid int for retry_max_attempts: %v", val)
			}
			c.RetryMaxAttempts = i
		case "retry_base_delay_ms":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for retry_base_delay_ms: %v", val)
			}
			c.RetryBaseDelayMs = i
		case "retry_max_delay_ms":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for retry_max_delay_ms: %v", val)
			}
			c.RetryMaxDelayMs = i
		case "output":
			c.Output = val
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		fmt.Println("Saved config")
		return nil
	},
}

// splitList parses a comma-separated flag value, dropping empty entries.
func splitList(val string) []string {
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
