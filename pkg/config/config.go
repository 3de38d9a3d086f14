package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	domain "github.com/NeuralTrust/TrustGuard/pkg/domain/ratelimit"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const (
	StoreRedis    = "redis"
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Limiter  LimiterConfig  `mapstructure:"limiter"`
	Audit    AuditConfig    `mapstructure:"audit"`
}

type ServerConfig struct {
	GuardPort   int    `mapstructure:"guard_port"`
	AdminPort   int    `mapstructure:"admin_port"`
	MetricsPort int    `mapstructure:"metrics_port"`
	SecretKey   string `mapstructure:"secret_key"`
	// Forwarded client addresses are honoured only from these peers.
	TrustedProxies []string `mapstructure:"trusted_proxies"`
	ProxyHeader    string   `mapstructure:"proxy_header"`
}

type DatabaseConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	DBName       string `mapstructure:"name"`
	SSLMode      string `mapstructure:"sslmode"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TLS      bool   `mapstructure:"tls"`
}

type PolicyConfig struct {
	MaxRequests   uint `mapstructure:"max_requests"`
	WindowSeconds uint `mapstructure:"window_seconds"`
	BlockSeconds  uint `mapstructure:"block_seconds"`
	Progressive   bool `mapstructure:"progressive"`
}

type LimiterConfig struct {
	Store              string                  `mapstructure:"store"`
	StoreTimeout       time.Duration           `mapstructure:"store_timeout"`
	PenaltyCap         uint                    `mapstructure:"penalty_cap"`
	ViolationTTL       time.Duration           `mapstructure:"violation_ttl"`
	KeySecret          string                  `mapstructure:"key_secret"`
	IdentityScoped     []string                `mapstructure:"identity_scoped"`
	BreakerMaxFailures uint32                  `mapstructure:"breaker_max_failures"`
	BreakerTimeout     time.Duration           `mapstructure:"breaker_timeout"`
	JanitorInterval    time.Duration           `mapstructure:"janitor_interval"`
	Policies           map[string]PolicyConfig `mapstructure:"policies"`
}

// AuditConfig controls the Kafka export. Audit events are always written to
// the application log.
type AuditConfig struct {
	Enabled      bool     `mapstructure:"enabled"`
	KafkaBrokers []string `mapstructure:"kafka_brokers"`
	Topic        string   `mapstructure:"topic"`
}

var globalConfig Config

// Load reads config.yaml from configPath (or ./config, or .) and applies
// environment overrides such as LIMITER_STORE or REDIS_HOST. A missing file
// is not an error: defaults and the environment are enough to start.
func Load(configPath string) error {
	cfg, err := load(configPath, "config")
	if err != nil {
		return err
	}
	globalConfig = *cfg
	return nil
}

func load(configPath, fileName string) (*Config, error) {
	v := viper.New()
	setDefaultValues(v)

	v.SetConfigName(fileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file %s.yaml: %w", fileName, err)
		}
	}

	var out Config
	decodeHook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&out, decodeHook); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s config: %w", fileName, err)
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return &out, nil
}

func setDefaultValues(v *viper.Viper) {
	v.SetDefault("server.guard_port", 8080)
	v.SetDefault("server.admin_port", 8081)
	v.SetDefault("server.metrics_port", 9090)
	v.SetDefault("server.secret_key", "")
	v.SetDefault("server.trusted_proxies", []string{})
	v.SetDefault("server.proxy_header", "X-Forwarded-For")

	v.SetDefault("metrics.enabled", true)

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.tls", false)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "trustguard")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 50)

	v.SetDefault("limiter.store", StoreRedis)
	v.SetDefault("limiter.store_timeout", "150ms")
	v.SetDefault("limiter.penalty_cap", 10)
	v.SetDefault("limiter.violation_ttl", "24h")
	v.SetDefault("limiter.key_secret", "")
	v.SetDefault("limiter.identity_scoped", []string{
		string(domain.CategoryPasswordChange),
		string(domain.CategoryUpdate),
	})
	v.SetDefault("limiter.breaker_max_failures", 5)
	v.SetDefault("limiter.breaker_timeout", "10s")
	v.SetDefault("limiter.janitor_interval", "1m")

	v.SetDefault("audit.enabled", false)
	v.SetDefault("audit.topic", "trustguard.audit")
}

// Validate rejects values the service cannot start with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.SecretKey) == "" {
		return fmt.Errorf("server.secret_key is required")
	}
	if len(c.Server.TrustedProxies) > 0 && c.Server.ProxyHeader == "" {
		return fmt.Errorf("server.proxy_header is required when trusted proxies are set")
	}
	switch c.Limiter.Store {
	case StoreRedis, StoreMemory, StorePostgres:
	default:
		return fmt.Errorf("invalid limiter.store %q: expected redis, memory or postgres", c.Limiter.Store)
	}
	if c.Limiter.StoreTimeout <= 0 {
		return fmt.Errorf("limiter.store_timeout must be positive")
	}
	if c.Limiter.StoreTimeout > 200*time.Millisecond {
		return fmt.Errorf("limiter.store_timeout must not exceed 200ms, got %s", c.Limiter.StoreTimeout)
	}
	for _, name := range c.Limiter.IdentityScoped {
		if !domain.Category(name).IsKnown() {
			return fmt.Errorf("limiter.identity_scoped: unknown category %q", name)
		}
	}
	if c.Audit.Enabled && len(c.Audit.KafkaBrokers) > 0 && c.Audit.Topic == "" {
		return fmt.Errorf("audit.topic is required when kafka brokers are set")
	}
	return nil
}

// PolicyOverrides converts the configured policy table into domain policies.
// Categories absent from the file keep their built-in defaults.
func (c LimiterConfig) PolicyOverrides() map[domain.Category]domain.Policy {
	out := make(map[domain.Category]domain.Policy, len(c.Policies))
	for name, p := range c.Policies {
		category := domain.Category(strings.ToLower(name))
		out[category] = domain.Policy{
			Category:      category,
			MaxRequests:   p.MaxRequests,
			WindowSeconds: p.WindowSeconds,
			BlockSeconds:  p.BlockSeconds,
			Progressive:   p.Progressive,
		}
	}
	return out
}

func (c LimiterConfig) IdentityScopedCategories() []domain.Category {
	out := make([]domain.Category, 0, len(c.IdentityScoped))
	for _, name := range c.IdentityScoped {
		out = append(out, domain.Category(name))
	}
	return out
}

func GetConfig() *Config {
	return &globalConfig
}
