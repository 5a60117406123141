package config

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort            string `mapstructure:"APP_PORT"`
	Env                string `mapstructure:"ENV"`
	LogLevel           string `mapstructure:"LOG_LEVEL"`
	StoreDriver        string `mapstructure:"STORE_DRIVER"`
	DatabaseURL        string `mapstructure:"DATABASE_URL"`
	DatabaseName       string `mapstructure:"DATABASE_NAME"`
	JWTSecret          string `mapstructure:"JWT_SECRET"`
	TokenTTLHours      int    `mapstructure:"TOKEN_TTL_HOURS"`
	MaxRequestsPerMin  int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	RateLimitBurst     int    `mapstructure:"RATE_LIMIT_BURST"`
	CORSAllowedOrigins string `mapstructure:"CORS_ALLOWED_ORIGINS"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisAuthDB   int    `mapstructure:"REDIS_AUTH_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Media host.
	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`
	CloudinaryFolder    string `mapstructure:"CLOUDINARY_FOLDER"`

	StripeSecretKey string `mapstructure:"STRIPE_SECRET_KEY"`
	PaymentCurrency string `mapstructure:"PAYMENT_CURRENCY"`

	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`
	ReminderLeadHours       int    `mapstructure:"REMINDER_LEAD_HOURS"`
}

var defaults = map[string]interface{}{
	"APP_PORT":                  "8080",
	"ENV":                       "development",
	"LOG_LEVEL":                 "info",
	"STORE_DRIVER":              "mongo",
	"DATABASE_URL":              "mongodb://localhost:27017",
	"DATABASE_NAME":             "taskhive",
	"JWT_SECRET":                "",
	"TOKEN_TTL_HOURS":           168,
	"MAX_REQUESTS_PER_MIN":      120,
	"RATE_LIMIT_BURST":          30,
	"CORS_ALLOWED_ORIGINS":      "http://localhost:3000,http://localhost:5173",
	"REDIS_ADDR":                "localhost:6379",
	"REDIS_PASSWORD":            "",
	"REDIS_AUTH_DB":             1,
	"REDIS_QUEUE_DB":            2,
	"CLOUDINARY_CLOUD_NAME":     "",
	"CLOUDINARY_API_KEY":        "",
	"CLOUDINARY_API_SECRET":     "",
	"CLOUDINARY_FOLDER":         "taskhive",
	"STRIPE_SECRET_KEY":         "",
	"PAYMENT_CURRENCY":          "usd",
	"FIREBASE_CREDENTIALS_FILE": "",
	"REMINDER_LEAD_HOURS":       24,
}

// Load reads .env (if present), config.yaml (if present) and the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables only")
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
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations that cannot run safely.
func (c *Config) Validate() error {
	if c.IsProduction() && c.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set in production")
	}
	if c.JWTSecret == "" {
		c.JWTSecret = "dev-only-secret"
	}
	if c.TokenTTLHours <= 0 {
		c.TokenTTLHours = 168
	}
	switch c.StoreDriver {
	case "":
		c.StoreDriver = "mongo"
	case "mongo", "memory":
	default:
		return errors.New("STORE_DRIVER must be mongo or memory")
	}
	if c.MaxRequestsPerMin <= 0 {
		return errors.New("MAX_REQUESTS_PER_MIN must be positive")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// DevMode controls whether error details reach clients.
func (c *Config) DevMode() bool {
	return c.Env == "development"
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLHours) * time.Hour
}

func (c *Config) ReminderLead() time.Duration {
	return time.Duration(c.ReminderLeadHours) * time.Hour
}

func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
