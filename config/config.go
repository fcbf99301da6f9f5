package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	APIBaseURL     string `yaml:"api_base_url"`
	RawBaseURL     string `yaml:"raw_base_url"`
	DefaultBranch  string `yaml:"default_branch"`
	TreeDocument   string `yaml:"tree_document"`
	URLList        string `yaml:"url_list"`
	Script         string `yaml:"script"`
	Shell          string `yaml:"shell"`
	ProviderPrefix string `yaml:"provider_prefix"`
	ProgressBar    bool   `yaml:"progress_bar"`

	// Token is only ever read from the environment.
	Token string `yaml:"-"`
}

func init() {
	// report validation errors under the config file keys
	validation.ErrorTag = "yaml"
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		APIBaseURL:     "https://api.github.com",
		RawBaseURL:     "https://raw.githubusercontent.com",
		DefaultBranch:  "main",
		TreeDocument:   "github_tree.json",
		URLList:        "urls.txt",
		Script:         "./process_docs.sh",
		Shell:          "bash",
		ProviderPrefix: "terraform-provider-",
		ProgressBar:    true,
	}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.APIBaseURL, validation.Required, is.URL),
		validation.Field(&c.RawBaseURL, validation.Required, is.URL),
		validation.Field(&c.DefaultBranch, validation.Required),
		validation.Field(&c.TreeDocument, validation.Required),
		validation.Field(&c.URLList, validation.Required),
		validation.Field(&c.Shell, validation.Required),
	)
}

// Load reads the config file at path (the user config path when empty),
// then applies .env and environment overrides.
func Load(path string) (Config, error) {
	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("error loading .env: %w", err)
	}

	var (
		config Config
		err    error
	)
	if path == "" {
		config, err = LoadConfig()
	} else {
		config, err = readConfig(path)
	}
	if err != nil {
		return Config{}, err
	}

	applyEnv(&config)

	if err := config.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

// LoadConfig loads the configuration from the user config file, creating it when missing.
func LoadConfig() (Config, error) {
	configPath := getConfigPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig()
	}

	return readConfig(configPath)
}

func readConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("error reading config file: %w", err)
	}

	// unset keys keep their defaults
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("error parsing config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves the configuration to the config file
func SaveConfig(config Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	configPath := getConfigPath()
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

func applyEnv(config *Config) {
	config.Token = os.Getenv("GITHUB_TOKEN")
	config.APIBaseURL = getEnv("DOCS_SCRAPE_API_URL", config.APIBaseURL)
	config.Script = getEnv("DOCS_SCRAPE_SCRIPT", config.Script)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getConfigPath returns the path to the config file
func getConfigPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(configDir, "docs-scrape", "config.yaml")
}

// createDefaultConfig creates a new config file with default values
func createDefaultConfig() (Config, error) {
	config := DefaultConfig()
	if err := SaveConfig(config); err != nil {
		return Config{}, fmt.Errorf("error creating default config: %v", err)
	}
	return config, nil
}
