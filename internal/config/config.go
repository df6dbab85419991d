// Package config loads command-line settings from a .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/cybergodev/dlmeta"
	"github.com/cybergodev/dlmeta/internal/logger"
	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvFile          = "DLMETA_FILE"
	EnvPlatform      = "DLMETA_PLATFORM"
	EnvCharset       = "DLMETA_CHARSET"
	EnvFormat        = "DLMETA_FORMAT"
	EnvLogLevel      = "DLMETA_LOG_LEVEL"
	EnvSkipMalformed = "DLMETA_SKIP_MALFORMED"
	EnvMaxInputSize  = "DLMETA_MAX_INPUT_SIZE"
	EnvMaxDepth      = "DLMETA_MAX_DEPTH"
)

// Settings drive one run of the CLI. Flags override these values.
type Settings struct {
	File          string
	Platform      string
	Charset       string
	Format        string
	LogLevel      string
	SkipMalformed bool
	MaxInputSize  int
	MaxDepth      int
}

// Defaults returns the settings used when nothing is configured.
func Defaults() *Settings {
	return &Settings{
		File:         dlmeta.DefaultFile,
		Platform:     dlmeta.DefaultPlatform,
		Charset:      dlmeta.DefaultCharset,
		Format:       string(dlmeta.FormatJSON),
		LogLevel:     logger.DefaultLevel,
		MaxInputSize: dlmeta.DefaultMaxInputSize,
		MaxDepth:     dlmeta.DefaultMaxDepth,
	}
}

// Load reads the given .env files (".env" when none are named) and then the
// environment. Missing .env files are ignored.
func Load(envFiles ...string) (*Settings, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	d := Defaults()
	s := &Settings{
		File:     getEnv(EnvFile, d.File),
		Platform: getEnv(EnvPlatform, d.Platform),
		Charset:  getEnv(EnvCharset, d.Charset),
		Format:   getEnv(EnvFormat, d.Format),
		LogLevel: getEnv(EnvLogLevel, d.LogLevel),
	}

	var err error
	if s.MaxInputSize, err = getEnvInt(EnvMaxInputSize, d.MaxInputSize); err != nil {
		return nil, err
	}
	if s.MaxDepth, err = getEnvInt(EnvMaxDepth, d.MaxDepth); err != nil {
		return nil, err
	}

	if v := os.Getenv(EnvSkipMalformed); v != "" {
		skip, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvSkipMalformed, err)
		}
		s.SkipMalformed = skip
	}
	return s, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
