package config

import (
	"fmt"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Server struct {
		Env      string `envconfig:"ENV"`
		LogLevel string `envconfig:"LOG_LEVEL"`
	} `envconfig:"SERVER"`

	App struct {
		Name        string `envconfig:"NAME"     default:"kampus"`
		Timezone    string `envconfig:"TIMEZONE" default:"Asia/Jakarta"`
		// PasswordCost is the bcrypt cost for stored credentials. Zero means bcrypt's default.
		PasswordCost int `envconfig:"PASSWORD_COST"`
		Reservation struct {
			// AllowRedecide keeps the legacy behavior where an approved or rejected
			// reservation can be decided again.
			AllowRedecide bool `envconfig:"ALLOW_REDECIDE"`
		} `envconfig:"RESERVATION"`
	} `envconfig:"APP"`

	CLI struct {
		// Token is the default access token for commands run without --token.
		Token string `envconfig:"TOKEN"`
	} `envconfig:"CLI"`

	Storage struct {
		Driver    string `envconfig:"DRIVER"     default:"sqlite"`
		KeyPrefix string `envconfig:"KEY_PREFIX"`
		SQLite    struct {
			Path string `envconfig:"PATH" default:"kampus.db"`
		} `envconfig:"SQLITE"`
		Redis struct {
			Host     string `envconfig:"HOST"`
			Port     string `envconfig:"PORT"`
			Password string `envconfig:"PASSWORD"`
			DB       int    `envconfig:"DB"`
		} `envconfig:"REDIS"`
		Postgres struct {
			MaxRetry       int    `envconfig:"MAX_RETRY"`
			RetryWaitTime  int    `envconfig:"RETRY_WAIT_TIME"`
			MigrationTable string `envconfig:"MIGRATION_TABLE"`
			AutoMigrate    bool   `envconfig:"AUTO_MIGRATE"`
			Host           string `envconfig:"HOST"`
			Port           string `envconfig:"PORT"`
			Username       string `envconfig:"USER"`
			Password       string `envconfig:"PASSWORD"`
			Name           string `envconfig:"NAME"`
			SSLMode        string `envconfig:"SSL_MODE"`
		} `envconfig:"POSTGRES"`
		S3 struct {
			BucketName  string `envconfig:"BUCKET_NAME"`
			Region      string `envconfig:"REGION"`
			APIEndpoint string `envconfig:"API_ENDPOINT"`
			AccessKey   string `envconfig:"ACCESS_KEY"`
			SecretKey   string `envconfig:"SECRET_KEY"`
		} `envconfig:"S3"`
	} `envconfig:"STORAGE"`

	Events struct {
		// Enabled publishes every store change to Kafka.
		Enabled bool   `envconfig:"ENABLED"`
		Topic   string `envconfig:"TOPIC"   default:"kampus.events"`
	} `envconfig:"EVENTS"`

	Kafka struct {
		Brokers []string `envconfig:"BROKERS"`
		SASL    struct {
			Username string `envconfig:"USERNAME"`
			Password string `envconfig:"PASSWORD"`
		} `envconfig:"SASL"`
	} `envconfig:"KAFKA"`

	JWT struct {
		AccessSecret     string `envconfig:"ACCESS_SECRET"      default:"kampus-local-access"`
		RefreshSecret    string `envconfig:"REFRESH_SECRET"     default:"kampus-local-refresh"`
		AccessExpireMin  int    `envconfig:"ACCESS_EXPIRE_MIN"  default:"60"`
		RefreshExpireMin int    `envconfig:"REFRESH_EXPIRE_MIN" default:"10080"`
	} `envconfig:"JWT"`

	External struct {
		Otel struct {
			Endpoint string `envconfig:"ENDPOINT"`
		} `envconfig:"OTEL"`
	}
}

var (
	conf        Config
	once        sync.Once
	initialized bool
)

func Init() error {
	var err error

	once.Do(func() {
		err = godotenv.Load(".env")
		if err != nil {
			log.Warn().Err(err).Msg("Could not load .env file, continuing with existing environment variables")
		} else {
			log.Info().Msg("Successfully loaded variables from .env file into environment")
		}

		err = envconfig.Process("", &conf)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to process environment variables")
		}

		initialized = true

		log.Info().Msg("Service configuration initialized successfully")
	})

	if err != nil {
		return fmt.Errorf("loading .env file: %w", err)
	}

	return nil
}

func Get() *Config {
	if !initialized {
		if err := Init(); err != nil {
			log.Warn().Err(err).Msg("Configuration initialized without .env file")
		}
	}

	return &conf
}
