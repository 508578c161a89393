package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// Mapstructure tags map environment variables and config file keys.
type Config struct {
	// Server Configuration
	ServerAddress string `mapstructure:"SERVER_ADDRESS"` // e.g., ":8080"
	AppEnv        string `mapstructure:"APP_ENV"`        // "production" switches gin to release mode

	// AI Configuration
	OpenAIKey   string `mapstructure:"OPENAI_API_KEY"`
	OpenAIModel string `mapstructure:"OPENAI_MODEL"` // e.g., "gpt-4o"

	// Storage Configuration
	DatabasePath string `mapstructure:"DATABASE_PATH"` // SQLite file for saved projects

	// Export Configuration
	ExportDir      string `mapstructure:"EXPORT_DIR"`      // Root directory for exported projects
	PublishCommand string `mapstructure:"PUBLISH_COMMAND"` // Optional command run on the export directory

	// Sessions
	SessionLimit int `mapstructure:"SESSION_LIMIT"` // Max live sessions before the oldest is evicted
}

var defaults = map[string]any{
	"SERVER_ADDRESS":  ":8080",
	"APP_ENV":         "development",
	"OPENAI_API_KEY":  "",
	"OPENAI_MODEL":    "gpt-4o",
	"DATABASE_PATH":   "site_prompts.db",
	"EXPORT_DIR":      "tmp",
	"PUBLISH_COMMAND": "",
	"SESSION_LIMIT":   1000,
}

// LoadConfig reads configuration from a config file and environment
// variables. path may be a directory holding config.yaml or a file path.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if info, statErr := os.Stat(path); statErr == nil && !info.IsDir() {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(path)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.AutomaticEnv() // Environment variables override file values

	err = v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			log.Println("Config file ('config.yaml') not found in specified path, relying solely on environment variables.")
		} else {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		log.Printf("Using configuration file: %s", filepath.Clean(v.ConfigFileUsed()))
	}

	err = v.Unmarshal(&config)
	if err != nil {
		return Config{}, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	config.AppEnv = strings.ToLower(strings.TrimSpace(config.AppEnv))
	if config.OpenAIKey == "" {
		log.Println("WARN: OPENAI_API_KEY is not set. Site generation will be unavailable.")
	}
	if config.SessionLimit < 0 {
		log.Printf("WARN: SESSION_LIMIT %d is negative, sessions will be unbounded.", config.SessionLimit)
		config.SessionLimit = 0
	}

	return
}

// IsProduction reports whether the app runs in production mode.
func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}
