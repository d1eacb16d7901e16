package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB   int    `mapstructure:"REDIS_CACHE_DB"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`

	AvailabilityCacheTTL time.Duration `mapstructure:"AVAILABILITY_CACHE_TTL"`
	ChatSessionTTL       time.Duration `mapstructure:"CHAT_SESSION_TTL"`
	SessionStore         string        `mapstructure:"SESSION_STORE"` // "memory" or "redis"

	// Google Calendar service account.
	GoogleServiceAccountEmail string `mapstructure:"GOOGLE_SERVICE_ACCOUNT_EMAIL"`
	GooglePrivateKey          string `mapstructure:"GOOGLE_PRIVATE_KEY"`
	GoogleCalendarID          string `mapstructure:"GOOGLE_CALENDAR_ID"`

	// Stripe.
	StripeKey            string `mapstructure:"STRIPE_SECRET_KEY"`
	StripeCurrency       string `mapstructure:"STRIPE_CURRENCY"`
	ConsultationFeeCents int64  `mapstructure:"CONSULTATION_FEE_CENTS"`
	BaseURL              string `mapstructure:"BASE_URL"`

	// Optional LLM intent classification.
	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel  string `mapstructure:"GEMINI_MODEL"`

	// Business profile shown by the scheduling assistant.
	BusinessName     string `mapstructure:"BUSINESS_NAME"`
	BusinessServices string `mapstructure:"BUSINESS_SERVICES"` // comma separated
	AvailableDays    string `mapstructure:"AVAILABLE_DAYS"`    // comma separated weekday names
	WorkStartHour    int    `mapstructure:"WORK_START_HOUR"`
	WorkEndHour      int    `mapstructure:"WORK_END_HOUR"`
	SlotMinutes      int    `mapstructure:"SLOT_MINUTES"`

	// Used by the terminal client to reach the HTTP endpoints.
	APIBaseURL string `mapstructure:"API_BASE_URL"`
}

var AppConfig Config

var defaults = map[string]interface{}{
	"APP_PORT":                     "8080",
	"ENV":                          "development",
	"LOG_LEVEL":                    "info",
	"MAX_REQUESTS_PER_MIN":         100,
	"REDIS_ADDR":                   "localhost:6379",
	"REDIS_PASSWORD":               "",
	"REDIS_CACHE_DB":               0,
	"REDIS_SESSION_DB":             1,
	"AVAILABILITY_CACHE_TTL":       "60s",
	"CHAT_SESSION_TTL":             "30m",
	"SESSION_STORE":                "memory",
	"GOOGLE_SERVICE_ACCOUNT_EMAIL": "",
	"GOOGLE_PRIVATE_KEY":           "",
	"GOOGLE_CALENDAR_ID":           "primary",
	"STRIPE_SECRET_KEY":            "",
	"STRIPE_CURRENCY":              "usd",
	"CONSULTATION_FEE_CENTS":       1500,
	"BASE_URL":                     "http://localhost:3000",
	"GEMINI_API_KEY":               "",
	"GEMINI_MODEL":                 "gemini-1.5-flash",
	"BUSINESS_NAME":                "Poppi",
	"BUSINESS_SERVICES":            "AI Automation,Custom Software,Process Optimization",
	"AVAILABLE_DAYS":               "Monday,Tuesday,Wednesday,Thursday,Friday",
	"WORK_START_HOUR":              9,
	"WORK_END_HOUR":                17,
	"SLOT_MINUTES":                 30,
	"API_BASE_URL":                 "http://localhost:8080",
}

// LoadConfig reads .env (when present), config.yaml (when present) and the
// environment into AppConfig.
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on the environment")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	cfg, err := decode(v)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig = cfg
}

func decode(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Defaults returns a Config populated only with default values.
func Defaults() Config {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	cfg, _ := decode(v)
	return cfg
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// Services returns the configured service names.
func (c Config) Services() []string {
	return splitList(c.BusinessServices)
}

// Days returns the configured weekday names.
func (c Config) Days() []string {
	return splitList(c.AvailableDays)
}

// CalendarConfigured reports whether both service-account credentials are set.
func (c Config) CalendarConfigured() bool {
	return c.GoogleServiceAccountEmail != "" && c.GooglePrivateKey != ""
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}
