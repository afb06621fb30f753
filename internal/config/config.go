package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the revsent configuration.
type Config struct {
	Provider       string       `json:"provider"`
	SentimentModel string       `json:"sentimentModel"`
	NounModel      string       `json:"nounModel"`
	BaseURL        string       `json:"baseURL"`
	ReviewsFile    string       `json:"reviewsFile"`
	Format         string       `json:"format"`
	ExcerptChars   int          `json:"excerptChars"`
	TimeoutSeconds int          `json:"timeoutSeconds"`
	MaxRetries     int          `json:"maxRetries"`
	WaitForModel   bool         `json:"waitForModel"`
	Server         ServerConfig `json:"server"`

	// Token is read from the environment or flags only.
	Token string `json:"-"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr string `json:"addr"`
}

// Timeout returns the per-request classifier timeout.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Provider:       "huggingface",
		SentimentModel: "siebert/sentiment-roberta-large-english",
		NounModel:      "vblagoje/bert-english-uncased-finetuned-pos",
		BaseURL:        "https://api-inference.huggingface.co/models/",
		ReviewsFile:    "reviews_test.tsv",
		Format:         "text",
		ExcerptChars:   280,
		TimeoutSeconds: 60,
		MaxRetries:     0,
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// ConfigDir returns the platform-appropriate config directory for revsent.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "revsent"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "revsent"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "revsent"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "revsent"), nil
	default:
		return filepath.Join(home, ".config", "revsent"), nil
	}
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadDotEnv loads KEY=value pairs from the given files (".env" when none are
// named) into the process environment. Missing files are skipped and
// variables that are already set are left alone.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading %s: %w", p, err)
		}
	}
	return nil
}

// LoadFile loads config from the config file. Returns zero Config and nil error if file doesn't exist.
func LoadFile() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Save writes the config to the config file.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Load builds the effective config by merging: defaults <- file <- env <- overrides.
// The overrides map comes from CLI flags (only non-zero values should be set).
func Load(overrides map[string]string) (Config, error) {
	cfg := Default()

	fileCfg, err := LoadFile()
	if err != nil {
		return Config{}, err
	}
	mergeFile(&cfg, fileCfg)
	if err := mergeEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := mergeOverrides(&cfg, overrides); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func mergeFile(dst *Config, src Config) {
	if src.Provider != "" {
		dst.Provider = src.Provider
	}
	if src.SentimentModel != "" {
		dst.SentimentModel = src.SentimentModel
	}
	if src.NounModel != "" {
		dst.NounModel = src.NounModel
	}
	if src.BaseURL != "" {
		dst.BaseURL = src.BaseURL
	}
	if src.ReviewsFile != "" {
		dst.ReviewsFile = src.ReviewsFile
	}
	if src.Format != "" {
		dst.Format = src.Format
	}
	if src.ExcerptChars > 0 {
		dst.ExcerptChars = src.ExcerptChars
	}
	if src.TimeoutSeconds > 0 {
		dst.TimeoutSeconds = src.TimeoutSeconds
	}
	if src.MaxRetries > 0 {
		dst.MaxRetries = src.MaxRetries
	}
	// JSON cannot distinguish an absent bool from false, so the file can only
	// turn waiting on.
	dst.WaitForModel = src.WaitForModel || dst.WaitForModel
	if src.Server.Addr != "" {
		dst.Server.Addr = src.Server.Addr
	}
}

// envKeys maps environment variables to config keys understood by SetField.
var envKeys = []struct{ env, key string }{
	{"REVSENT_PROVIDER", "provider"},
	{"REVSENT_SENTIMENT_MODEL", "sentimentModel"},
	{"REVSENT_NOUN_MODEL", "nounModel"},
	{"REVSENT_BASE_URL", "baseURL"},
	{"REVSENT_REVIEWS_FILE", "reviewsFile"},
	{"REVSENT_FORMAT", "format"},
	{"REVSENT_EXCERPT_CHARS", "excerptChars"},
	{"REVSENT_TIMEOUT_SECONDS", "timeoutSeconds"},
	{"REVSENT_MAX_RETRIES", "maxRetries"},
	{"REVSENT_WAIT_FOR_MODEL", "waitForModel"},
	{"REVSENT_ADDR", "server.addr"},
}

// TokenEnvVars are consulted in order for the API token.
var TokenEnvVars = []string{"HF_TOKEN", "HUGGINGFACEHUB_API_TOKEN"}

func mergeEnv(cfg *Config) error {
	for _, e := range envKeys {
		v := os.Getenv(e.env)
		if v == "" {
			continue
		}
		if err := SetField(cfg, e.key, v); err != nil {
			return fmt.Errorf("%s: %w", e.env, err)
		}
	}
	for _, name := range TokenEnvVars {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			cfg.Token = v
			break
		}
	}
	return nil
}

func mergeOverrides(cfg *Config, overrides map[string]string) error {
	for key, v := range overrides {
		if v == "" {
			continue
		}
		if key == "token" {
			cfg.Token = strings.TrimSpace(v)
			continue
		}
		if err := SetField(cfg, key, v); err != nil {
			return err
		}
	}
	return nil
}

// Keys lists the keys accepted by SetField.
var Keys = []string{
	"provider", "sentimentModel", "nounModel", "baseURL", "reviewsFile",
	"format", "excerptChars", "timeoutSeconds", "maxRetries", "waitForModel",
	"server.addr",
}

// SetField sets a single config field by key name. Returns error if key is unknown.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "provider":
		cfg.Provider = value
	case "sentimentModel":
		cfg.SentimentModel = value
	case "nounModel":
		cfg.NounModel = value
	case "baseURL":
		cfg.BaseURL = value
	case "reviewsFile":
		cfg.ReviewsFile = value
	case "format":
		cfg.Format = value
	case "excerptChars":
		return setInt(&cfg.ExcerptChars, key, value)
	case "timeoutSeconds":
		return setInt(&cfg.TimeoutSeconds, key, value)
	case "maxRetries":
		return setInt(&cfg.MaxRetries, key, value)
	case "waitForModel":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("waitForModel must be true or false: %w", err)
		}
		cfg.WaitForModel = b
	case "server.addr", "addr":
		cfg.Server.Addr = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

func setInt(dst *int, key, value string) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%s must be an integer: %w", key, err)
	}
	if n < 0 {
		return fmt.Errorf("%s must not be negative", key)
	}
	*dst = n
	return nil
}
