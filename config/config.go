package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort     string `mapstructure:"APP_PORT"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	Env         string `mapstructure:"ENV"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisWorkerDB int    `mapstructure:"REDIS_WORKER_DB"`

	// Google Calendar OAuth credentials (refresh-token flow only).
	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRefreshToken string `mapstructure:"GOOGLE_REFRESH_TOKEN"`

	// Google Maps API key for drive-time lookups.
	GoogleMapsAPIKey string `mapstructure:"GOOGLE_MAPS_API_KEY"`

	// Scheduling settings.
	Timezone            string `mapstructure:"TIMEZONE"`
	HomeAddress         string `mapstructure:"HOME_ADDRESS"`
	MinAdvanceHours     int    `mapstructure:"MIN_ADVANCE_HOURS"`
	DriveTimeCacheDays  int    `mapstructure:"DRIVE_TIME_CACHE_DAYS"`
	DriveTimeFailOpen   bool   `mapstructure:"DRIVE_TIME_FAIL_OPEN"`
	ConflictCalendarIDs string `mapstructure:"CONFLICT_CALENDAR_IDS"`
	ProviderTimeoutSecs int    `mapstructure:"PROVIDER_TIMEOUT_SECS"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_WORKER_DB", 1)
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_REFRESH_TOKEN", "")
	viper.SetDefault("GOOGLE_MAPS_API_KEY", "")
	viper.SetDefault("TIMEZONE", "America/New_York")
	viper.SetDefault("HOME_ADDRESS", "")
	viper.SetDefault("MIN_ADVANCE_HOURS", 24)
	viper.SetDefault("DRIVE_TIME_CACHE_DAYS", 30)
	viper.SetDefault("DRIVE_TIME_FAIL_OPEN", true)
	viper.SetDefault("CONFLICT_CALENDAR_IDS", "")
	viper.SetDefault("PROVIDER_TIMEOUT_SECS", 10)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

// ConflictCalendars returns the globally configured conflict calendar ids.
func ConflictCalendars() []string {
	raw := strings.TrimSpace(AppConfig.ConflictCalendarIDs)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			ids = append(ids, p)
		}
	}
	return ids
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
