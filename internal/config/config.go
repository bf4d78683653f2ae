package config

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Cache     CacheConfig
	Archive   ArchiveConfig
	Normalize NormalizeConfig
	Analytics AnalyticsConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type CacheConfig struct {
	Enabled            bool
	RedisURL           string
	RedisHost          string
	RedisPort          string
	RedisPassword      string
	RedisDB            int
	SnapshotTTLSeconds int
}

// ArchiveConfig configures the optional object-storage archive of raw
// uploaded batches.
type ArchiveConfig struct {
	Enabled   bool
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// NormalizeConfig carries the business constants used when backfilling
// missing monetary fields. Their origin is undocumented in the source data
// contracts, so they are configuration rather than literals.
type NormalizeConfig struct {
	CostRatio    float64 // fraction of revenue assumed as cost when absent
	RevenueFloor float64 // minimum revenue substituted for zero-revenue rows
	VATRatio     float64 // fraction of revenue assumed as VAT when absent
}

// AnalyticsConfig carries the currency-specific revenue thresholds of the
// ABC-XYZ priority table.
type AnalyticsConfig struct {
	AXCriticalRevenue float64
	AYCriticalRevenue float64
	AZCriticalRevenue float64
	AZHighRevenue     float64
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		viper.SetDefault("SERVER_PORT", "8080")
		viper.SetDefault("SERVER_MODE", "debug")
		viper.SetDefault("SERVER_READ_TIMEOUT", 30)
		viper.SetDefault("SERVER_WRITE_TIMEOUT", 30)
		viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
		viper.SetDefault("DB_HOST", "localhost")
		viper.SetDefault("DB_PORT", "5432")
		viper.SetDefault("DB_USER", "postgres")
		viper.SetDefault("DB_PASSWORD", "postgres")
		viper.SetDefault("DB_NAME", "salesight")
		viper.SetDefault("DB_SSLMODE", "disable")
		viper.SetDefault("CACHE_ENABLED", false)
		viper.SetDefault("REDIS_URL", "")
		viper.SetDefault("REDIS_HOST", "127.0.0.1")
		viper.SetDefault("REDIS_PORT", "6379")
		viper.SetDefault("REDIS_PASSWORD", "")
		viper.SetDefault("REDIS_DB", 0)
		viper.SetDefault("CACHE_SNAPSHOT_TTL_SECONDS", 60)
		viper.SetDefault("ARCHIVE_ENABLED", false)
		viper.SetDefault("ARCHIVE_ENDPOINT", "")
		viper.SetDefault("ARCHIVE_ACCESS_KEY", "")
		viper.SetDefault("ARCHIVE_SECRET_KEY", "")
		viper.SetDefault("ARCHIVE_BUCKET", "salesight-uploads")
		viper.SetDefault("ARCHIVE_USE_SSL", true)
		viper.SetDefault("NORMALIZE_COST_RATIO", 0.6)
		viper.SetDefault("NORMALIZE_REVENUE_FLOOR", 1000.0)
		viper.SetDefault("NORMALIZE_VAT_RATIO", 0.2)
		viper.SetDefault("ANALYTICS_AX_CRITICAL_REVENUE", 50000.0)
		viper.SetDefault("ANALYTICS_AY_CRITICAL_REVENUE", 40000.0)
		viper.SetDefault("ANALYTICS_AZ_CRITICAL_REVENUE", 60000.0)
		viper.SetDefault("ANALYTICS_AZ_HIGH_REVENUE", 30000.0)

		viper.AutomaticEnv()

		instance = &Config{
			Server: ServerConfig{
				Port:           viper.GetString("SERVER_PORT"),
				Mode:           viper.GetString("SERVER_MODE"),
				ReadTimeout:    viper.GetInt("SERVER_READ_TIMEOUT"),
				WriteTimeout:   viper.GetInt("SERVER_WRITE_TIMEOUT"),
				AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
			},
			Database: DatabaseConfig{
				Host:     viper.GetString("DB_HOST"),
				Port:     viper.GetString("DB_PORT"),
				User:     viper.GetString("DB_USER"),
				Password: viper.GetString("DB_PASSWORD"),
				DBName:   viper.GetString("DB_NAME"),
				SSLMode:  viper.GetString("DB_SSLMODE"),
			},
			Cache: CacheConfig{
				Enabled:            viper.GetBool("CACHE_ENABLED"),
				RedisURL:           viper.GetString("REDIS_URL"),
				RedisHost:          viper.GetString("REDIS_HOST"),
				RedisPort:          viper.GetString("REDIS_PORT"),
				RedisPassword:      viper.GetString("REDIS_PASSWORD"),
				RedisDB:            viper.GetInt("REDIS_DB"),
				SnapshotTTLSeconds: viper.GetInt("CACHE_SNAPSHOT_TTL_SECONDS"),
			},
			Archive: ArchiveConfig{
				Enabled:   viper.GetBool("ARCHIVE_ENABLED"),
				Endpoint:  viper.GetString("ARCHIVE_ENDPOINT"),
				AccessKey: viper.GetString("ARCHIVE_ACCESS_KEY"),
				SecretKey: viper.GetString("ARCHIVE_SECRET_KEY"),
				Bucket:    viper.GetString("ARCHIVE_BUCKET"),
				UseSSL:    viper.GetBool("ARCHIVE_USE_SSL"),
			},
			Normalize: NormalizeConfig{
				CostRatio:    viper.GetFloat64("NORMALIZE_COST_RATIO"),
				RevenueFloor: viper.GetFloat64("NORMALIZE_REVENUE_FLOOR"),
				VATRatio:     viper.GetFloat64("NORMALIZE_VAT_RATIO"),
			},
			Analytics: AnalyticsConfig{
				AXCriticalRevenue: viper.GetFloat64("ANALYTICS_AX_CRITICAL_REVENUE"),
				AYCriticalRevenue: viper.GetFloat64("ANALYTICS_AY_CRITICAL_REVENUE"),
				AZCriticalRevenue: viper.GetFloat64("ANALYTICS_AZ_CRITICAL_REVENUE"),
				AZHighRevenue:     viper.GetFloat64("ANALYTICS_AZ_HIGH_REVENUE"),
			},
		}
	})

	return instance
}
