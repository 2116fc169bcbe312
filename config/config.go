package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Config is read once from the environment, after an optional .env file.
// Variable names are the envconfig tags joined with underscores, e.g. SERVER_PORT.
type Config struct {
	Server       Server       `envconfig:"SERVER"`
	App          App          `envconfig:"APP"`
	Cache        Cache        `envconfig:"CACHE"`
	JWT          JWT          `envconfig:"JWT"`
	DB           DB           `envconfig:"DB"`
	Kafka        Kafka        `envconfig:"KAFKA"`
	Notification Notification `envconfig:"NOTIFICATION"`
	Booking      Booking      `envconfig:"BOOKING"`
	External     External     `envconfig:"EXTERNAL"`
}

type Server struct {
	Env      string `envconfig:"ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Port     string `envconfig:"PORT" default:"8080"`
	Host     string `envconfig:"HOST"`
	Shutdown struct {
		CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS" default:"10"`
		GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS" default:"5"`
	} `envconfig:"SHUTDOWN"`
}

type App struct {
	Name        string      `envconfig:"APP_NAME" default:"hotel"`
	Timezone    string      `envconfig:"TIMEZONE" default:"UTC"`
	CORS        CORS        `envconfig:"CORS"`
	RateLimiter RateLimiter `envconfig:"RATE_LIMITER"`
	APIKey      string      `envconfig:"API_KEY"`
}

type CORS struct {
	AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
	AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"`
	AllowedMethods   []string `envconfig:"ALLOWED_METHODS"`
	AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
	Enable           bool     `envconfig:"ENABLE"`
	MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"`
}

type RateLimiter struct {
	Enable        bool `envconfig:"ENABLE"`
	MaxRequests   int  `envconfig:"MAX_REQUESTS" default:"60"`
	WindowSeconds int  `envconfig:"WINDOW_SECONDS" default:"60"`
}

type Cache struct {
	Redis struct {
		Primary struct {
			Host     string `envconfig:"HOST" default:"localhost"`
			Port     string `envconfig:"PORT" default:"6379"`
			Password string `envconfig:"PASSWORD"`
			DB       int    `envconfig:"DB"`
		} `envconfig:"PRIMARY"`
	} `envconfig:"REDIS"`
	// TTL is in seconds.
	TTL int `envconfig:"TTL" default:"300"`
}

type JWT struct {
	AccessSecret     string `envconfig:"ACCESS_SECRET"`
	RefreshSecret    string `envconfig:"REFRESH_SECRET"`
	AccessExpireMin  int    `envconfig:"ACCESS_EXPIRE_MIN" default:"15"`
	RefreshExpireMin int    `envconfig:"REFRESH_EXPIRE_MIN" default:"10080"`
}

type DB struct {
	Postgres struct {
		MaxRetry       int          `envconfig:"MAX_RETRY" default:"3"`
		RetryWaitTime  int          `envconfig:"RETRY_WAIT_TIME" default:"2"`
		MigrationTable string       `envconfig:"MIGRATION_TABLE" default:"schema_migrations"`
		AutoMigrate    bool         `envconfig:"AUTO_MIGRATE"`
		Prefix         string       `envconfig:"PREFIX"`
		Read           PostgresNode `envconfig:"READ"`
		Write          PostgresNode `envconfig:"WRITE"`
	} `envconfig:"POSTGRES"`
}

// PostgresNode is one side of the read/write split.
type PostgresNode struct {
	Host     string `envconfig:"HOST"`
	Port     string `envconfig:"PORT" default:"5432"`
	Username string `envconfig:"USER"`
	Password string `envconfig:"PASSWORD"`
	Name     string `envconfig:"NAME"`
	Timezone string `envconfig:"TIMEZONE" default:"UTC"`
	SSLMode  string `envconfig:"SSL_MODE" default:"disable"`
}

type Kafka struct {
	Brokers           []string `envconfig:"BROKERS"`
	NotificationTopic string   `envconfig:"NOTIFICATION_TOPIC" default:"hotel.notifications"`
	SASL              struct {
		Username string `envconfig:"USERNAME"`
		Password string `envconfig:"PASSWORD"`
	} `envconfig:"SASL"`
}

type Notification struct {
	// Driver is either "kafka" or "log".
	Driver     string `envconfig:"DRIVER" default:"log"`
	AdminEmail string `envconfig:"ADMIN_EMAIL"`
}

type Booking struct {
	VerificationCodeRetries int `envconfig:"VERIFICATION_CODE_RETRIES" default:"3"`
}

type External struct {
	Otel struct {
		Endpoint string `envconfig:"ENDPOINT"`
	} `envconfig:"OTEL"`
	S3 struct {
		APIEndpoint     string `envconfig:"API_ENDPOINT"`
		AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
		SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
		BucketName      string `envconfig:"BUCKET_NAME"`
		PublicDomain    string `envconfig:"PUBLIC_DOMAIN"`
	} `envconfig:"S3"`
}

var (
	conf    Config
	once    sync.Once
	loadErr error
)

// Warnings lists settings that leave a feature unusable. They are logged, not fatal,
// so tests and tooling can load an empty environment.
func (c *Config) Warnings() []error {
	var warnings []error

	if c.JWT.AccessSecret == "" || c.JWT.RefreshSecret == "" {
		warnings = append(warnings, errors.New("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must be set for staff login"))
	}

	if c.Notification.Driver == "kafka" && len(c.Kafka.Brokers) == 0 {
		warnings = append(warnings, errors.New("NOTIFICATION_DRIVER=kafka needs KAFKA_BROKERS"))
	}

	if c.Notification.AdminEmail == "" {
		warnings = append(warnings, errors.New("NOTIFICATION_ADMIN_EMAIL is empty, admin booking and contact alerts will not be sent"))
	}

	if c.Booking.VerificationCodeRetries < 1 {
		warnings = append(warnings, fmt.Errorf("BOOKING_VERIFICATION_CODE_RETRIES=%d retries nothing", c.Booking.VerificationCodeRetries))
	}

	return warnings
}

func Init() error {
	once.Do(func() {
		if err := godotenv.Load(".env"); err != nil {
			log.Warn().Err(err).Msg("Could not load .env file, continuing with existing environment variables")
		} else {
			log.Info().Msg("Successfully loaded variables from .env file into environment")
		}

		if err := envconfig.Process("", &conf); err != nil {
			loadErr = fmt.Errorf("processing environment: %w", err)

			return
		}

		for _, warning := range conf.Warnings() {
			log.Warn().Err(warning).Msg("Configuration incomplete")
		}

		log.Info().Msg("Service configuration initialized successfully")
	})

	return loadErr
}

// Get returns the process configuration, loading it on first use. Invalid values are fatal.
func Get() *Config {
	if err := Init(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize configuration")
	}

	return &conf
}
