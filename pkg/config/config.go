package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Portal  PortalConfig
	Cache   CacheConfig
	Stub    StubConfig
	Logging LoggingConfig
}

type PortalConfig struct {
	BaseURL    string
	AuthToken  string
	UserID     string
	TimeoutSec int
}

type CacheConfig struct {
	Backend string
	SQLite  SQLiteConfig
	Redis   RedisConfig
}

type SQLiteConfig struct {
	Path string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type StubConfig struct {
	Host                 string
	Port                 int
	ReadTimeout          int
	WriteTimeout         int
	BodyLimit            int
	MaxRequestsPerMinute int
	AllowedOrigins       []string
	Development          bool
}

type LoggingConfig struct {
	Level      string
	Format     string
	OutputPath string
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/medai")

	viper.SetEnvPrefix("MEDAI")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func (p PortalConfig) Timeout() time.Duration {
	return time.Duration(p.TimeoutSec) * time.Second
}

func setDefaults() {
	viper.SetDefault("portal.baseURL", "http://localhost:5001/api")
	viper.SetDefault("portal.timeoutSec", 30)

	viper.SetDefault("cache.backend", "sqlite")
	viper.SetDefault("cache.sqlite.path", "./data/medai-cache.db")
	viper.SetDefault("cache.redis.host", "localhost")
	viper.SetDefault("cache.redis.port", 6379)
	viper.SetDefault("cache.redis.db", 0)

	viper.SetDefault("stub.host", "0.0.0.0")
	viper.SetDefault("stub.port", 5001)
	viper.SetDefault("stub.readTimeout", 30)
	viper.SetDefault("stub.writeTimeout", 30)
	viper.SetDefault("stub.bodyLimit", 1048576)
	viper.SetDefault("stub.maxRequestsPerMinute", 120)
	viper.SetDefault("stub.development", true)

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
	viper.SetDefault("logging.outputPath", "stdout")
}
