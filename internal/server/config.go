package server

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/ironsheep/image-registration-mcp/internal/registration"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvLogLevel      = "REGISTER_MCP_LOG_LEVEL"
	EnvLogPolarTheta = "REGISTER_MCP_LOGPOLAR_THETA"
	EnvLogPolarRho   = "REGISTER_MCP_LOGPOLAR_RHO"
	EnvParallel      = "REGISTER_MCP_PARALLEL"
)

// Config holds the server settings.
type Config struct {
	// Debug enables per-tool timing logs on stderr.
	Debug bool

	// Registration configures the registrar shared by all tools.
	Registration registration.Options
}

// DefaultConfig returns the configuration used when no environment
// variables are set.
func DefaultConfig() Config {
	return Config{
		Registration: registration.DefaultOptions(),
	}
}

// ConfigFromEnv reads the configuration from the process environment.
// Invalid values are logged and replaced by their defaults.
func ConfigFromEnv() Config {
	return configFromLookup(os.Getenv)
}

func configFromLookup(getenv func(string) string) Config {
	cfg := DefaultConfig()

	cfg.Debug = strings.EqualFold(getenv(EnvLogLevel), "debug")

	cfg.Registration.SizeTheta = positiveInt(getenv, EnvLogPolarTheta, cfg.Registration.SizeTheta)
	cfg.Registration.SizeRho = positiveInt(getenv, EnvLogPolarRho, cfg.Registration.SizeRho)

	if v := getenv(EnvParallel); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("Ignoring %s=%q: %v", EnvParallel, v, err)
		} else {
			cfg.Registration.Parallel = b
		}
	}

	return cfg
}

func positiveInt(getenv func(string) string, name string, def int) int {
	v := getenv(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("Ignoring %s=%q: want a positive integer", name, v)
		return def
	}
	return n
}
