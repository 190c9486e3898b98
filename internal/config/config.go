package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config defines bot configuration.
type Config struct {
	Discord    DiscordConfig    `yaml:"discord"`
	Store      StoreConfig      `yaml:"store"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Log        LogConfig        `yaml:"log"`
}

type DiscordConfig struct {
	// Token is the bot credential. Required.
	Token         string `yaml:"token"`
	CommandPrefix string `yaml:"command_prefix"`
	// WelcomeChannelID enables welcome messages when set.
	WelcomeChannelID string `yaml:"welcome_channel_id"`
	// WatchThreadID enables the legacy periodic thread check when set.
	WatchThreadID string `yaml:"watch_thread_id"`
}

type StoreConfig struct {
	// Backend selects the query store: "firestore" or "sqlite".
	Backend         string `yaml:"backend"`
	ProjectID       string `yaml:"project_id"`
	CredentialsPath string `yaml:"credentials_path"`
	SQLitePath      string `yaml:"sqlite_path"`
}

type ClassifierConfig struct {
	// Policy selects keyword detection: "anywhere" (default) or "prefix".
	// Earlier revisions of the bot only matched the keyword as a prefix.
	Policy               string `yaml:"policy"`
	MinDescriptionLength int    `yaml:"min_description_length"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		Discord: DiscordConfig{
			CommandPrefix: "!",
		},
		Store: StoreConfig{
			Backend:    "firestore",
			SQLitePath: "doubtbot.db",
		},
		Classifier: ClassifierConfig{
			Policy:               "anywhere",
			MinDescriptionLength: 5,
		},
		Log: LogConfig{
			Level: "info",
		},
	}

	if path := os.Getenv("DOUBTBOT_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if token := os.Getenv("DOUBTBOT_TOKEN"); token != "" {
		cfg.Discord.Token = token
	}
	if prefix := os.Getenv("DOUBTBOT_COMMAND_PREFIX"); prefix != "" {
		cfg.Discord.CommandPrefix = prefix
	}
	if id := os.Getenv("DOUBTBOT_WELCOME_CHANNEL_ID"); id != "" {
		cfg.Discord.WelcomeChannelID = id
	}
	if id := os.Getenv("DOUBTBOT_WATCH_THREAD_ID"); id != "" {
		cfg.Discord.WatchThreadID = id
	}
	if backend := os.Getenv("DOUBTBOT_STORE_BACKEND"); backend != "" {
		cfg.Store.Backend = backend
	}
	if project := os.Getenv("DOUBTBOT_STORE_PROJECT_ID"); project != "" {
		cfg.Store.ProjectID = project
	}
	if creds := os.Getenv("DOUBTBOT_STORE_CREDENTIALS_PATH"); creds != "" {
		cfg.Store.CredentialsPath = creds
	}
	if path := os.Getenv("DOUBTBOT_SQLITE_PATH"); path != "" {
		cfg.Store.SQLitePath = path
	}
	if policy := os.Getenv("DOUBTBOT_CLASSIFIER_POLICY"); policy != "" {
		cfg.Classifier.Policy = policy
	}
	if minStr := os.Getenv("DOUBTBOT_MIN_DESCRIPTION_LENGTH"); minStr != "" {
		minLen, err := strconv.Atoi(minStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid DOUBTBOT_MIN_DESCRIPTION_LENGTH: %w", err)
		}
		cfg.Classifier.MinDescriptionLength = minLen
	}
	if level := os.Getenv("DOUBTBOT_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate enforces the required startup values. Missing required values
// are fatal; missing optional values disable the dependent feature.
func (c Config) Validate() error {
	if c.Discord.Token == "" {
		return fmt.Errorf("discord token is required (DOUBTBOT_TOKEN)")
	}
	switch c.Store.Backend {
	case "firestore":
		if c.Store.ProjectID == "" {
			return fmt.Errorf("store project id is required for the firestore backend (DOUBTBOT_STORE_PROJECT_ID)")
		}
		if c.Store.CredentialsPath == "" {
			return fmt.Errorf("store credentials path is required for the firestore backend (DOUBTBOT_STORE_CREDENTIALS_PATH)")
		}
	case "sqlite":
		if c.Store.SQLitePath == "" {
			return fmt.Errorf("sqlite path is required for the sqlite backend (DOUBTBOT_SQLITE_PATH)")
		}
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	switch c.Classifier.Policy {
	case "anywhere", "prefix":
	default:
		return fmt.Errorf("unknown classifier policy %q", c.Classifier.Policy)
	}
	if c.Classifier.MinDescriptionLength < 1 {
		return fmt.Errorf("min description length must be positive")
	}
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
