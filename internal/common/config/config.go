package config

import (
	"os"
	"regexp"
	"time"

	"github.com/pusdatin/simontok/pkg/helper"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type (
	// Config is the root configuration for the simontok server
	Config struct {
		Port     int            `yaml:"port"`
		Web      WebConfig      `yaml:"web"`
		Logger   LoggerConfig   `yaml:"logger"`
		Database DatabaseConfig `yaml:"database"`
		Session  SessionConfig  `yaml:"session"`
		JWT      JWTConfig      `yaml:"jwt"`
		I18n     I18nConfig     `yaml:"i18n"`
		Metrics  MetricsConfig  `yaml:"metrics"`
	}

	// WebConfig locates the server-rendered assets
	WebConfig struct {
		TemplateGlob string `yaml:"template_glob"` // glob passed to gin.LoadHTMLGlob
		StaticDir    string `yaml:"static_dir"`    // served under /static
	}

	// DatabaseConfig represents the database configuration
	DatabaseConfig struct {
		Type     string `yaml:"type"` // postgres, mysql, sqlite
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		DBName   string `yaml:"dbname"`
		SSLMode  string `yaml:"sslmode"`
	}

	// SessionConfig represents the flash/session storage configuration
	SessionConfig struct {
		Type  string             `yaml:"type"`  // "memory" or "redis"
		Redis SessionRedisConfig `yaml:"redis"` // Redis configuration
	}

	// SessionRedisConfig represents the Redis configuration for session storage
	SessionRedisConfig struct {
		Addr     string        `yaml:"addr"`
		Username string        `yaml:"username"`
		Password string        `yaml:"password"`
		DB       int           `yaml:"db"`
		Prefix   string        `yaml:"prefix"`
		TTL      time.Duration `yaml:"ttl"`
	}

	// JWTConfig configures the session cookie signer
	JWTConfig struct {
		SecretKey string        `yaml:"secret_key"`
		Duration  time.Duration `yaml:"duration"`
	}

	// I18nConfig locates the translation bundles
	I18nConfig struct {
		Dir         string `yaml:"dir"`
		DefaultLang string `yaml:"default_lang"`
	}

	// MetricsConfig configures the Prometheus registry
	MetricsConfig struct {
		Namespace string    `yaml:"namespace"`
		Buckets   []float64 `yaml:"buckets"`
	}

	// LoggerConfig represents the logger configuration
	LoggerConfig struct {
		Level      string `yaml:"level"`       // debug, info, warn, error
		Format     string `yaml:"format"`      // json, console
		Output     string `yaml:"output"`      // stdout, file
		FilePath   string `yaml:"file_path"`   // path to log file when output is file
		MaxSize    int    `yaml:"max_size"`    // max size of log file in MB
		MaxBackups int    `yaml:"max_backups"` // max number of backup files
		MaxAge     int    `yaml:"max_age"`     // max age of backup files in days
		Compress   bool   `yaml:"compress"`    // whether to compress backup files
		Color      bool   `yaml:"color"`       // whether to use color in console output
		Stacktrace bool   `yaml:"stacktrace"`  // whether to include stacktrace in error logs
		TimeZone   string `yaml:"time_zone"`   // time zone for log timestamps
		TimeFormat string `yaml:"time_format"` // time format for log timestamps
	}
)

// LoadConfig loads configuration from a YAML file with environment variable support
func LoadConfig(filename string) (*Config, string, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	cfgPath := helper.GetCfgPath(filename)
	data, err := os.ReadFile(cfgPath)
	if err != nil {
		return nil, cfgPath, err
	}

	// Resolve environment variables
	data = resolveEnv(data)
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, cfgPath, err
	}

	setDefaults(&cfg)
	return &cfg, cfgPath, nil
}

func setDefaults(cfg *Config) {
	if cfg.Port == 0 {
		cfg.Port = 8370
	}
	if cfg.Web.TemplateGlob == "" {
		cfg.Web.TemplateGlob = "web/templates/*.tmpl"
	}
	if cfg.Session.Type == "" {
		cfg.Session.Type = "memory"
	}
	if cfg.JWT.Duration <= 0 {
		cfg.JWT.Duration = 12 * time.Hour
	}
	if cfg.I18n.Dir == "" {
		cfg.I18n.Dir = "configs/i18n"
	}
	if cfg.I18n.DefaultLang == "" {
		cfg.I18n.DefaultLang = "id"
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = "simontok"
	}
}

// resolveEnv replaces environment variable placeholders in YAML content
func resolveEnv(content []byte) []byte {
	regex := regexp.MustCompile(`\$\{(\w+)(?::([^}]*))?\}`)

	return regex.ReplaceAllFunc(content, func(match []byte) []byte {
		matches := regex.FindSubmatch(match)
		envKey := string(matches[1])
		var defaultValue string

		if len(matches) > 2 {
			defaultValue = string(matches[2])
		}

		if value, exists := os.LookupEnv(envKey); exists {
			return []byte(value)
		}
		return []byte(defaultValue)
	})
}
