// Package config loads the process configuration from the environment.
// Everything the CLI layer needs to locate and unlock the store is threaded
// through this struct explicitly; there are no hidden module-level
// settings.
package config

import (
	"sync"

	"github.com/caarlos0/env/v11"
	_ "github.com/joho/godotenv/autoload" // Load .env file automatically
)

var (
	cfg  Config
	once sync.Once
)

type Config struct {
	// StorePath is the location of the encrypted store file.
	StorePath string `env:"OTPVAULT_STORE_PATH" envDefault:"otpvault.db"`
	// MasterKey optionally carries the base64-encoded master key so the
	// CLI does not have to prompt for it. Key acquisition from an OS
	// keychain stays outside this module.
	MasterKey string `env:"OTPVAULT_MASTER_KEY"`
}

// Load parses the configuration once per process and returns the cached
// result on subsequent calls.
func Load() (Config, error) {
	var err error
	once.Do(func() {
		err = env.Parse(&cfg)
	})
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}
