package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"postboard/app/database"
)

const (
	defaultAddr            = ":8000"
	defaultDatabaseURL     = "sqlite://data/postboard.db"
	defaultShutdownTimeout = 10 * time.Second
	defaultLogLevel        = "info"
	defaultLogFormat       = "text"
)

// Config holds the settings of a running server.
type Config struct {
	Addr            string        `validate:"required"`
	DatabaseURL     string        `validate:"required"`
	AutoMigrate     bool
	ShutdownTimeout time.Duration `validate:"gt=0"`
	LogLevel        string        `validate:"oneof=trace debug info warn warning error fatal panic"`
	LogFormat       string        `validate:"oneof=text json"`
}

// Default returns the configuration used when no flag or variable is set.
func Default() Config {
	return Config{
		Addr:            defaultAddr,
		DatabaseURL:     defaultDatabaseURL,
		AutoMigrate:     true,
		ShutdownTimeout: defaultShutdownTimeout,
		LogLevel:        defaultLogLevel,
		LogFormat:       defaultLogFormat,
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field rules and that the database URL names a known driver.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if _, err := database.ParseURL(c.DatabaseURL); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// LoadDotEnv exports the variables of the given env files into the process
// environment, keeping values that are already set. Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		err := godotenv.Load(p)
		switch {
		case err == nil:
			log.WithField("file", p).Debug("Loaded environment file")
		case errors.Is(err, fs.ErrNotExist):
			continue
		default:
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}
