// Package config loads CLI configuration from environment variables, with an
// optional .env file for local development.
package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	// ErrNilPointer is returned when Load is called with a nil target.
	ErrNilPointer = errors.New("config: nil pointer provided")
	// ErrParsingConfig wraps env parsing failures.
	ErrParsingConfig = errors.New("config: failed to parse environment")
)

var defaultEnvLoaded sync.Once

// Load fills the configuration struct from environment variables based on
// `env` field tags. On first call it also loads a .env file from the working
// directory when one exists; a missing file is not an error.
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	defaultEnvLoaded.Do(func() {
		// The .env file is a development convenience; absence is fine.
		_ = godotenv.Load()
	})
	if err := env.Parse(v); err != nil {
		return fmt.Errorf("%w: %w", ErrParsingConfig, err)
	}
	return nil
}

// MustLoad works like Load but panics on failure; configuration a tool cannot
// start without should stop it at startup.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(err)
	}
}
