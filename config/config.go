package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr         string `mapstructure:"REDIS_ADDR"`
	RedisPassword     string `mapstructure:"REDIS_PASSWORD"`
	RedisContextDB    int    `mapstructure:"REDIS_CONTEXT_DB"`
	RedisQueueDB      int    `mapstructure:"REDIS_QUEUE_DB"`
	ContextTTLMinutes int    `mapstructure:"CONTEXT_TTL_MINUTES"`
	ContextStoreOn    bool   `mapstructure:"CONTEXT_STORE_ENABLED"`

	// Venue catalogue.
	DatabaseURL    string `mapstructure:"DATABASE_URL"`
	DatabaseName   string `mapstructure:"DATABASE_NAME"`
	VenueSource    string `mapstructure:"VENUE_SOURCE"` // mock | mongo
	MockVenueCount int    `mapstructure:"MOCK_VENUE_COUNT"`
	MockSeed       int64  `mapstructure:"MOCK_SEED"`

	// Booking simulation.
	BatchPauseMs         int     `mapstructure:"BATCH_PAUSE_MS"`
	SimulatedLatencyMs   int     `mapstructure:"SIMULATED_LATENCY_MS"`
	SimulatedSuccessRate float64 `mapstructure:"SIMULATED_SUCCESS_RATE"`

	// Reminders.
	RemindersEnabled  bool `mapstructure:"REMINDERS_ENABLED"`
	ReminderLeadHours int  `mapstructure:"REMINDER_LEAD_HOURS"`
}

var AppConfig Config

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_CONTEXT_DB", 0)
	v.SetDefault("REDIS_QUEUE_DB", 1)
	v.SetDefault("CONTEXT_TTL_MINUTES", 30)
	v.SetDefault("CONTEXT_STORE_ENABLED", false)
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "concierge")
	v.SetDefault("VENUE_SOURCE", "mock")
	v.SetDefault("MOCK_VENUE_COUNT", 8)
	v.SetDefault("MOCK_SEED", 42)
	v.SetDefault("BATCH_PAUSE_MS", 100)
	v.SetDefault("SIMULATED_LATENCY_MS", 50)
	v.SetDefault("SIMULATED_SUCCESS_RATE", 0.95)
	v.SetDefault("REMINDERS_ENABLED", false)
	v.SetDefault("REMINDER_LEAD_HOURS", 2)
}

// Load reads configuration from v into a Config. Environment variables win
// over the config file, which wins over defaults.
func Load(v *viper.Viper) (Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	cfg.VenueSource = strings.ToLower(strings.TrimSpace(cfg.VenueSource))
	if cfg.SimulatedSuccessRate < 0 || cfg.SimulatedSuccessRate > 1 {
		cfg.SimulatedSuccessRate = 0.95
	}
	if cfg.MockVenueCount <= 0 {
		cfg.MockVenueCount = 8
	}
	return cfg, nil
}

func LoadConfig() {
	cfg, err := Load(viper.GetViper())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig = cfg
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
