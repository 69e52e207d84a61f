package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/sidneyroberto/generator-lp-3/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Known configuration keys.
const (
	KeyPackageManager = "package_manager"
	KeyDefaultName    = "default_name"
	KeyPort           = "port"
	KeyGit            = "git"
	KeySkipInstall    = "skip_install"
)

// Default values applied when neither the config file nor the environment set a key.
const (
	DefaultPackageManager = "yarn"
	DefaultProjectName    = "meu-projeto-de-lp3"
	DefaultPort           = 3001
)

// Keys returns the configuration keys understood by the CLI.
func Keys() []string {
	return []string{KeyPackageManager, KeyDefaultName, KeyPort, KeyGit, KeySkipInstall}
}

// ErrUnknownKey is returned for keys outside Keys().
var ErrUnknownKey = errors.New("unknown config key")

// ValidateKey reports whether key is one of Keys().
func ValidateKey(key string) error {
	if !slices.Contains(Keys(), key) {
		return fmt.Errorf("%w %q (known: %s)", ErrUnknownKey, key, strings.Join(Keys(), ", "))
	}
	return nil
}

// ParseValue converts the command-line form of a value to the type stored
// for key: an int for port, a bool for git and skip_install, a trimmed
// string otherwise.
func ParseValue(key, value string) (any, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	switch key {
	case KeyPort:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n < 1 || n > 65535 {
			return nil, fmt.Errorf("invalid %s %q: want a number between 1 and 65535", key, value)
		}
		return n, nil
	case KeyGit, KeySkipInstall:
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: want true or false", key, value)
		}
		return b, nil
	default:
		v := strings.TrimSpace(value)
		if v == "" {
			return nil, fmt.Errorf("invalid %s: value must not be empty", key)
		}
		return v, nil
	}
}

// Dir returns the path to the config directory (~/.lp3/).
// LP3_HOME overrides the location.
func Dir() string {
	if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.lp3/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.Reset()
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	viper.SetDefault(KeyPackageManager, DefaultPackageManager)
	viper.SetDefault(KeyDefaultName, DefaultProjectName)
	viper.SetDefault(KeyPort, DefaultPort)
	viper.SetDefault(KeyGit, false)
	viper.SetDefault(KeySkipInstall, false)

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// GetInt returns a config value as an int.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a config value as a bool.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// Set validates value, stores it under key in the config file and updates
// the loaded configuration. Only keys already in the file plus key are
// written; defaults and environment overrides stay out of it.
func Set(key, value string) error {
	parsed, err := ParseValue(key, value)
	if err != nil {
		return err
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	configFile := FilePath()
	file := viper.New()
	file.SetConfigFile(configFile)
	file.SetConfigType(fileType)
	if _, err := os.Stat(configFile); err == nil {
		if err := file.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", configFile, err)
		}
	}

	file.Set(key, parsed)
	if err := file.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	viper.Set(key, parsed)
	return nil
}
