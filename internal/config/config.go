package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr          string        `yaml:"addr"`
	DatabasePath  string        `yaml:"database_path"`
	APITimeout    time.Duration `yaml:"timeout"`
	StaticDir     string        `yaml:"static_dir"`
	UploadsConfig UploadsConfig `yaml:"uploads"`
	SessionConfig SessionConfig `yaml:"session"`
}

type UploadsConfig struct {
	Dir          string `yaml:"dir"`
	PublicPrefix string `yaml:"public_prefix"`
	MaxBytes     int64  `yaml:"max_bytes"`
}

type SessionConfig struct {
	CookieName      string        `yaml:"cookie_name"`
	TTL             time.Duration `yaml:"ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
}

func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Addr:         getEnv("JOBPORTAL_ADDR", ":3000"),
		DatabasePath: getEnv("JOBPORTAL_DATABASE_PATH", "jobportal.db"),
		APITimeout:   15 * time.Second,
		StaticDir:    getEnv("JOBPORTAL_STATIC_DIR", "public"),
		UploadsConfig: UploadsConfig{
			Dir:          getEnv("JOBPORTAL_UPLOADS_DIR", "uploads"),
			PublicPrefix: "/uploads",
			MaxBytes:     2 << 20, // 2 MiB
		},
		SessionConfig: SessionConfig{
			CookieName:      getEnv("JOBPORTAL_SESSION_COOKIE", "sid"),
			TTL:             4 * time.Hour,
			CleanupInterval: 15 * time.Minute,
		},
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Validate rejects configurations the server cannot safely run with.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr is required")
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("database_path is required")
	}
	if c.UploadsConfig.Dir == "" {
		return fmt.Errorf("uploads.dir is required")
	}
	if c.UploadsConfig.MaxBytes <= 0 {
		return fmt.Errorf("uploads.max_bytes must be positive")
	}
	if c.SessionConfig.CookieName == "" {
		return fmt.Errorf("session.cookie_name is required")
	}
	if c.SessionConfig.TTL <= 0 {
		return fmt.Errorf("session.ttl must be positive")
	}

	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
