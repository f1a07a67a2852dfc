package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	Model      string `mapstructure:"model" yaml:"model"`
	OllamaHost string `mapstructure:"ollama_host" yaml:"ollama_host"`
	TimeoutSec int    `mapstructure:"timeout_sec" yaml:"timeout_sec"`

	// Analysis chunking
	ChunkSize int `mapstructure:"chunk_size" yaml:"chunk_size"`

	// Scanner exclusion rules. Entries may be plain names or doublestar
	// glob patterns matched against repository-relative paths.
	IgnoreDirs  []string `mapstructure:"ignore_dirs" yaml:"ignore_dirs"`
	IgnoreFiles []string `mapstructure:"ignore_files" yaml:"ignore_files"`

	// Retry configuration for model calls. A single attempt means no retry.
	RetryMaxAttempts int `mapstructure:"retry_max_attempts" yaml:"retry_max_attempts"`
	RetryBaseDelayMs int `mapstructure:"retry_base_delay_ms" yaml:"retry_base_delay_ms"`
	RetryMaxDelayMs  int `mapstructure:"retry_max_delay_ms" yaml:"retry_max_delay_ms"`

	// Default output path. Empty means README_FOR_<repo>.md in the
	// working directory.
	Output string `mapstructure:"output" yaml:"output"`
}

// DefaultIgnoreDirs are directory names never descended into.
func DefaultIgnoreDirs() []string {
	return []string{".git", "__pycache__", "node_modules", "venv", "env", ".idea", ".vscode", ".github"}
}

// DefaultIgnoreFiles are file names excluded from listing, stats and tree.
func DefaultIgnoreFiles() []string {
	return []string{".gitignore", "README.md", "CONTRIBUTING.md", "CODE_OF_CONDUCT.md"}
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.repodoc/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".repodoc")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("REPODOC")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("model", "llama3")
	v.SetDefault("ollama_host", "http://127.0.0.1:11434")
	v.SetDefault("timeout_sec", 300)
	v.SetDefault("chunk_size", 5000)
	v.SetDefault("ignore_dirs", DefaultIgnoreDirs())
	v.SetDefault("ignore_files", DefaultIgnoreFiles())
	// A single failed model call degrades that unit of work rather than
	// retrying; raise retry_max_attempts to opt in to bounded retries.
	v.SetDefault("retry_max_attempts", 1)
	v.SetDefault("retry_base_delay_ms", 500)
	v.SetDefault("retry_max_delay_ms", 4000)
	v.SetDefault("output", "")

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".repodoc")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
