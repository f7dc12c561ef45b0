// Package config loads runtime configuration from an optional YAML file
// with environment-variable overrides. Secrets only ever come from the
// environment.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// JWTConfig defines one issuer/secret pair accepted for admin auth.
type JWTConfig struct {
	Issuer string
	Secret []byte
}

// Config holds runtime configuration shared across the application.
type Config struct {
	Addr           string
	MongoURI       string
	MongoDatabase  string
	PostCollection string
	ConnectTimeout time.Duration

	FeedURL     string
	FeedTimeout time.Duration

	JWTConfigs  []JWTConfig
	JWTAudience string

	AllowedOrigins []string
	ServerLog      *log.Logger
}

// fileConfig mirrors the optional config.yml. Validation happens before any
// value is used so a malformed file fails loudly at startup.
type fileConfig struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Mongo struct {
		URI            string `yaml:"uri" validate:"omitempty,uri"`
		Database       string `yaml:"database"`
		Collection     string `yaml:"collection"`
		ConnectTimeout string `yaml:"connectTimeout"`
	} `yaml:"mongo"`
	Feed struct {
		URL     string `yaml:"url" validate:"omitempty,url"`
		Timeout string `yaml:"timeout"`
	} `yaml:"feed"`
	CORS struct {
		AllowedOrigins []string `yaml:"allowedOrigins"`
	} `yaml:"cors"`
}

// Load reads the optional YAML file named by CONFIG_FILE (default
// config.yml), then applies environment overrides and defaults.
func Load() (Config, error) {
	file, err := readFile(envOrDefault("CONFIG_FILE", "config.yml"))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Addr:           firstNonEmpty(os.Getenv("HTTP_ADDR"), file.Server.Addr, ":8080"),
		MongoURI:       firstNonEmpty(os.Getenv("MONGO_URI"), file.Mongo.URI, "mongodb://mongo:27017"),
		MongoDatabase:  firstNonEmpty(os.Getenv("MONGO_DB"), file.Mongo.Database, "mobile-post"),
		PostCollection: firstNonEmpty(os.Getenv("POST_COLLECTION"), file.Mongo.Collection, "posts"),
		ConnectTimeout: parseDuration(firstNonEmpty(os.Getenv("MONGO_CONNECT_TIMEOUT"), file.Mongo.ConnectTimeout), 10*time.Second),
		FeedURL:        firstNonEmpty(os.Getenv("IMPORT_FEED_URL"), file.Feed.URL),
		FeedTimeout:    parseDuration(firstNonEmpty(os.Getenv("IMPORT_FEED_TIMEOUT"), file.Feed.Timeout), 30*time.Second),
		JWTAudience:    strings.TrimSpace(os.Getenv("AUTH_JWT_AUDIENCE")),
		AllowedOrigins: parseList(os.Getenv("API_ALLOWED_ORIGINS"), file.CORS.AllowedOrigins, []string{"*"}),
		ServerLog:      log.New(os.Stdout, "[mobile-post-api] ", log.LstdFlags|log.Lshortfile),
	}

	if secret := strings.TrimSpace(os.Getenv("AUTH_ADMIN_JWT_SECRET")); secret != "" {
		cfg.JWTConfigs = append(cfg.JWTConfigs, JWTConfig{
			Issuer: envOrDefault("AUTH_ADMIN_JWT_ISSUER", "mobile-post-auth"),
			Secret: []byte(secret),
		})
	}
	if len(cfg.JWTConfigs) == 0 {
		return Config{}, errors.New("AUTH_ADMIN_JWT_SECRET must be configured")
	}

	return cfg, nil
}

func readFile(path string) (fileConfig, error) {
	var file fileConfig
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return file, nil
	}
	if err != nil {
		return file, fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return file, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := validator.New().Struct(file); err != nil {
		return file, fmt.Errorf("validate %s: %w", path, err)
	}
	return file, nil
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return parsed
}

// parseList prefers the comma-separated env value, then the file list, then
// the fallback.
func parseList(env string, file []string, fallback []string) []string {
	values := make([]string, 0)
	for _, part := range strings.Split(env, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	if len(values) > 0 {
		return values
	}
	for _, part := range file {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	if len(values) > 0 {
		return values
	}
	return fallback
}
