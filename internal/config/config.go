package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const insecureJWTSecret = "changeme"

type Config struct {
	Addr       string         `yaml:"addr" validate:"required"`
	Env        string         `yaml:"env" validate:"omitempty,oneof=development test production"`
	APITimeout time.Duration  `yaml:"timeout" validate:"gt=0"`
	Database   DatabaseConfig `yaml:"database"`
	Reddit     RedditConfig   `yaml:"reddit"`
	Auth       AuthConfig     `yaml:"auth"`
}

type DatabaseConfig struct {
	Driver          string        `yaml:"driver" validate:"required,oneof=sqlite postgres"`
	DSN             string        `yaml:"dsn" validate:"required"`
	MaxOpenConns    int           `yaml:"max_open_conns" validate:"gte=1"`
	MaxIdleConns    int           `yaml:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" validate:"gte=0"`
	MigrateOnStart  bool          `yaml:"migrate_on_start"`
}

// RedditConfig holds the API credentials and endpoints used to verify
// usernames. Empty credentials are allowed here: intake reports them per
// request instead of refusing to start.
type RedditConfig struct {
	ClientID     string        `yaml:"client_id"`
	ClientSecret string        `yaml:"client_secret"`
	TokenURL     string        `yaml:"token_url" validate:"omitempty,url"`
	APIBaseURL   string        `yaml:"api_base_url" validate:"omitempty,url"`
	UserAgent    string        `yaml:"user_agent"`
	Timeout      time.Duration `yaml:"timeout" validate:"gte=0"`
}

// AuthConfig enables bearer-token checks on routes that act for a signed-in
// applicant. An empty JWTSecret disables them.
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
}

// LoadDotEnv loads KEY=VALUE pairs from the given files into the process
// environment without overriding variables that are already set. Missing
// files are skipped.
func LoadDotEnv(files ...string) error {
	for _, f := range files {
		if f == "" {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Addr:       getEnv("FDU_ADDR", ":8080"),
		Env:        getEnv("FDU_ENV", "production"),
		APITimeout: 15 * time.Second,
		Database: DatabaseConfig{
			Driver:       getEnv("DATABASE_DRIVER", "sqlite"),
			DSN:          getEnv("DATABASE_URL", "fairdatause.db"),
			MaxOpenConns: 10,
			MaxIdleConns: 5,
		},
		Reddit: RedditConfig{
			ClientID:     os.Getenv("REDDIT_CLIENT_ID"),
			ClientSecret: os.Getenv("REDDIT_CLIENT_SECRET"),
			UserAgent:    os.Getenv("REDDIT_USER_AGENT"),
			Timeout:      5 * time.Second,
		},
		Auth: AuthConfig{
			JWTSecret: os.Getenv("AUTH_JWT_SECRET"),
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

// Development reports whether diagnostic details such as stack traces may be
// returned to clients.
func (c *Config) Development() bool {
	return c.Env == "development"
}

// Validate checks field constraints and rejects insecure settings outside
// development.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}

	if c.Auth.JWTSecret == insecureJWTSecret && !c.Development() {
		return errors.New("invalid config: auth.jwt_secret uses the insecure default outside development")
	}

	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
