package config

import (
	"errors"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type WebServerConfig struct {
	Port            string   `mapstructure:"port"`
	IP              string   `mapstructure:"ip"`
	ReadTimeout     int      `mapstructure:"read_timeout"`
	WriteTimeout    int      `mapstructure:"write_timeout"`
	ShutdownTimeout int      `mapstructure:"shutdown_timeout"`
	AllowedOrigins  []string `mapstructure:"allowed_origins"` // CORS origins for the JSON API
	TrustedProxies  []string `mapstructure:"trusted_proxies"` // IPs or CIDRs allowed to set X-Forwarded-For
}

// APIConfig describes the external analytics backend.
type APIConfig struct {
	BaseURL        string `mapstructure:"base_url"`    // Explicit override (ARENA_API_BASE_URL)
	Origin         string `mapstructure:"origin"`      // Joined onto relative base URLs such as "/api"
	Environment    string `mapstructure:"environment"` // "production" selects static-only data by default
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type DataSourceConfig struct {
	Mode                string `mapstructure:"mode"`   // live, static, fallback; empty derives from environment
	Sticky              string `mapstructure:"sticky"` // per_call or once
	ProbeTimeoutSeconds int    `mapstructure:"probe_timeout_seconds"`
}

type SnapshotConfig struct {
	Source    string `mapstructure:"source"` // embedded or redis
	Path      string `mapstructure:"path"`   // Optional file overriding the embedded document
	SeedRedis bool   `mapstructure:"seed_redis"`
}

type RedisConfig struct {
	Address          string `mapstructure:"address"`
	Password         string `mapstructure:"password"`
	DB               int    `mapstructure:"db"`
	PoolSize         int    `mapstructure:"pool_size"`
	MinIdleConns     int    `mapstructure:"min_idle_conns"`
	OperationTimeout int    `mapstructure:"operation_timeout"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

type CacheConfig struct {
	Enabled     bool `mapstructure:"enabled"`
	MaxSizeMB   int  `mapstructure:"max_size_mb"`
	TTLSeconds  int  `mapstructure:"ttl_seconds"`
	CounterSize int  `mapstructure:"counter_size"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type Config struct {
	WebServer  WebServerConfig  `mapstructure:"webserver"`
	API        APIConfig        `mapstructure:"api"`
	DataSource DataSourceConfig `mapstructure:"datasource"`
	Snapshot   SnapshotConfig   `mapstructure:"snapshot"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Cache      CacheConfig      `mapstructure:"cache"`
	RateLimit  RateLimitConfig  `mapstructure:"ratelimit"`
	Log        LogConfig        `mapstructure:"log"`
}

// IsProduction reports whether the dashboard runs as a production build.
func (c APIConfig) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

func LoadConfig() (Config, error) {
	var config Config

	// .env is optional; real environment variables win.
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	v := viper.New()
	v.AddConfigPath(".")
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// ARENA_API_BASE_URL overrides api.base_url, and so on.
	v.SetEnvPrefix("ARENA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Printf("Error reading config file: %v", err)
			return config, err
		}
		log.Println("No config file found, using defaults and environment")
	}

	if err := v.Unmarshal(&config); err != nil {
		log.Printf("Unable to decode into struct: %v", err)
		return config, err
	}

	return config, nil
}

func MustLoadConfig() Config {
	config, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	return config
}

func setDefaults(v *viper.Viper) {
	// WebServer defaults
	v.SetDefault("webserver.port", "8080")
	v.SetDefault("webserver.ip", "127.0.0.1")
	v.SetDefault("webserver.read_timeout", 15)
	v.SetDefault("webserver.write_timeout", 90)
	v.SetDefault("webserver.shutdown_timeout", 30)
	v.SetDefault("webserver.allowed_origins", []string{"*"})
	v.SetDefault("webserver.trusted_proxies", []string{})

	// API defaults
	v.SetDefault("api.base_url", "")
	v.SetDefault("api.origin", "http://localhost")
	v.SetDefault("api.environment", "development")
	v.SetDefault("api.timeout_seconds", 60)

	// DataSource defaults
	v.SetDefault("datasource.mode", "")
	v.SetDefault("datasource.sticky", "per_call")
	v.SetDefault("datasource.probe_timeout_seconds", 2)

	// Snapshot defaults
	v.SetDefault("snapshot.source", "embedded")
	v.SetDefault("snapshot.path", "")
	v.SetDefault("snapshot.seed_redis", true)

	// Redis defaults
	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.min_idle_conns", 2)
	v.SetDefault("redis.operation_timeout", 5)

	// Cache defaults
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.max_size_mb", 16)
	v.SetDefault("cache.ttl_seconds", 300) // 5 minutes
	v.SetDefault("cache.counter_size", 1000)

	// RateLimit defaults
	v.SetDefault("ratelimit.requests_per_second", 20.0)
	v.SetDefault("ratelimit.burst", 40)

	// Log defaults
	v.SetDefault("log.level", "info")
}
