package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	ErrNilPointer    = errors.New("config: nil pointer passed to Load")
	ErrParsingConfig = errors.New("config: failed to parse environment")
)

var dotenvOnce sync.Once

// Load fills a configuration struct from environment variables using its
// env tags. A .env file in the working directory is loaded once per process
// before the first parse; a missing file is not an error.
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	dotenvOnce.Do(func() {
		_ = godotenv.Load()
	})
	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad is Load for configuration the process cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}
