package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kazuma-desu/showmore/pkg/logger"
	"github.com/kazuma-desu/showmore/pkg/truncate"
)

// EnvConfigPath overrides the default config file location
const EnvConfigPath = "SHOWMORECONFIG"

// ContextConfig represents a named etcd connection used as a text source
type ContextConfig struct {
	Username              string   `yaml:"username,omitempty"`
	Password              string   `yaml:"password,omitempty"`
	CACert                string   `yaml:"cacert,omitempty"`
	Cert                  string   `yaml:"cert,omitempty"`
	Key                   string   `yaml:"key,omitempty"`
	Endpoints             []string `yaml:"endpoints"`
	InsecureSkipTLSVerify bool     `yaml:"insecure-skip-tls-verify,omitempty"`
}

// Labels are the toggle captions rendered next to truncated text
type Labels struct {
	More string `yaml:"more,omitempty"`
	Less string `yaml:"less,omitempty"`
}

// Config represents the entire configuration file
type Config struct {
	Contexts       map[string]*ContextConfig `yaml:"contexts,omitempty"`
	CurrentContext string                    `yaml:"current-context,omitempty"`
	LogLevel       string                    `yaml:"log-level,omitempty"`
	DefaultOutput  string                    `yaml:"default-output,omitempty"`
	Labels         Labels                    `yaml:"labels,omitempty"`
	Thresholds     truncate.Thresholds       `yaml:"thresholds,omitempty"`
	Strict         bool                      `yaml:"strict,omitempty"`
}

// Settable lists the keys accepted by SetValue, in display order
var Settable = []string{
	"log-level",
	"default-output",
	"strict",
	"thresholds.chars",
	"thresholds.words",
	"thresholds.line-breaks",
	"labels.more",
	"labels.less",
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	if envPath := os.Getenv(EnvConfigPath); envPath != "" {
		return envPath, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(homeDir, ".config", "showmore", "config.yaml"), nil
}

// LoadConfig loads the configuration from the config file.
// A missing file yields an empty config.
func LoadConfig() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	info, statErr := os.Stat(configPath)
	if os.IsNotExist(statErr) {
		return &Config{
			Contexts: make(map[string]*ContextConfig),
		}, nil
	}
	if statErr != nil {
		return nil, fmt.Errorf("failed to stat config file %s: %w", configPath, statErr)
	}

	if mode := info.Mode().Perm(); mode&0077 != 0 {
		logger.Log.Warnw("Config file is readable by other users, consider changing to 0600",
			"file", configPath, "mode", fmt.Sprintf("%o", mode))
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Contexts == nil {
		cfg.Contexts = make(map[string]*ContextConfig)
	}

	return &cfg, nil
}

// SaveConfig saves the configuration to the config file
func SaveConfig(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	configDir := filepath.Dir(configPath)
	if mkdirErr := os.MkdirAll(configDir, 0700); mkdirErr != nil {
		return fmt.Errorf("failed to create config directory: %w", mkdirErr)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// 0600: the file may hold etcd passwords
	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// SetValue updates a single settable key on cfg. Keys are listed in Settable.
func SetValue(cfg *Config, key, value string) error {
	switch key {
	case "log-level":
		switch value {
		case "debug", "info", "warn", "error":
			cfg.LogLevel = value
		default:
			return fmt.Errorf("invalid log level: %s (use debug, info, warn, error)", value)
		}
	case "default-output":
		cfg.DefaultOutput = value
	case "strict":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %q is not a boolean", key, value)
		}
		cfg.Strict = b
	case "thresholds.chars", "thresholds.words", "thresholds.line-breaks":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %q is not an integer", key, value)
		}
		switch key {
		case "thresholds.chars":
			cfg.Thresholds.Chars = n
		case "thresholds.words":
			cfg.Thresholds.Words = n
		default:
			cfg.Thresholds.LineBreaks = n
		}
	case "labels.more":
		cfg.Labels.More = value
	case "labels.less":
		cfg.Labels.Less = value
	default:
		return fmt.Errorf("unknown config key %q (valid: %s)", key, strings.Join(Settable, ", "))
	}
	return nil
}

// ContextNames returns the configured context names in sorted order
func (c *Config) ContextNames() []string {
	names := make([]string, 0, len(c.Contexts))
	for name := range c.Contexts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetCurrentContext returns the current context configuration
func GetCurrentContext() (*ContextConfig, string, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, "", err
	}

	if cfg.CurrentContext == "" {
		return nil, "", nil
	}

	ctxConfig, exists := cfg.Contexts[cfg.CurrentContext]
	if !exists {
		return nil, "", fmt.Errorf("current context %q not found", cfg.CurrentContext)
	}

	return ctxConfig, cfg.CurrentContext, nil
}

// SetContext adds or updates a context in the config
func SetContext(name string, ctxConfig *ContextConfig, makeCurrent bool) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	cfg.Contexts[name] = ctxConfig

	if makeCurrent || cfg.CurrentContext == "" {
		cfg.CurrentContext = name
	}

	return SaveConfig(cfg)
}

// DeleteContext removes a context from the config.
// Deleting the current context switches to the first remaining one by name.
func DeleteContext(name string) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	if _, exists := cfg.Contexts[name]; !exists {
		return fmt.Errorf("context %q not found", name)
	}

	delete(cfg.Contexts, name)

	if cfg.CurrentContext == name {
		cfg.CurrentContext = ""
		if names := cfg.ContextNames(); len(names) > 0 {
			cfg.CurrentContext = names[0]
		}
	}

	return SaveConfig(cfg)
}

// UseContext switches the current context
func UseContext(name string) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	if _, exists := cfg.Contexts[name]; !exists {
		return fmt.Errorf("context %q not found", name)
	}

	cfg.CurrentContext = name
	return SaveConfig(cfg)
}
