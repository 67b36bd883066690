package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"

	"github.com/spf13/viper"

	"github.com/shexspec/mfgen/internal/branding"
)

const fileType = "yaml"

// Keys.
const (
	KeyMode          = "mode"
	KeyBaseDir       = "base_dir"
	KeyOutput        = "output"
	KeyFormat        = "format"
	KeySuiteIRI      = "suite_iri"
	KeyWorkers       = "workers"
	KeyMaxListLength = "max_list_length"
	KeyContext       = "jsonld_context"
	KeyRequires      = "requires"
)

// DefaultSuiteIRI is the published root of the ShEx test suite.
const DefaultSuiteIRI = "https://raw.githubusercontent.com/shexSpec/shexTest/master/"

// ErrUnknownKey is returned by Set for keys outside Keys.
var ErrUnknownKey = errors.New("unknown config key")

// Keys lists the recognized keys in display order.
var Keys = []string{
	KeyMode,
	KeyBaseDir,
	KeyOutput,
	KeyFormat,
	KeySuiteIRI,
	KeyWorkers,
	KeyMaxListLength,
	KeyContext,
	KeyRequires,
}

// FilePath returns the default config file path (./.mfgen.yaml).
func FilePath() string {
	return branding.ConfigFile()
}

func setDefaults() {
	viper.SetDefault(KeyMode, "warn")
	viper.SetDefault(KeyOutput, "")
	viper.SetDefault(KeyFormat, "json")
	viper.SetDefault(KeySuiteIRI, DefaultSuiteIRI)
	viper.SetDefault(KeyWorkers, 4)
	viper.SetDefault(KeyMaxListLength, 0)
	viper.SetDefault(KeyContext, false)
}

// Load initializes Viper to read from the config file and environment. An
// empty path selects FilePath, which may be absent; an explicit path must
// exist.
func Load(path string) error {
	setDefaults()
	explicit := path != ""
	if !explicit {
		path = FilePath()
	}
	viper.SetConfigFile(path)
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	return nil
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if !slices.Contains(Keys, key) {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	v, err := typed(key, value)
	if err != nil {
		return err
	}

	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		configFile = FilePath()
	}

	// Write only what the file already holds plus the new key, so defaults
	// and environment values are not baked into it.
	file := viper.New()
	file.SetConfigFile(configFile)
	file.SetConfigType(fileType)
	if err := file.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("reading config file %s: %w", configFile, err)
	}
	file.Set(key, v)
	if err := file.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	viper.Set(key, v)
	return nil
}

// typed converts a command-line value to the type the key holds.
func typed(key, value string) (any, error) {
	switch key {
	case KeyWorkers, KeyMaxListLength:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%s must be a non-negative integer, got %q", key, value)
		}
		return n, nil
	case KeyContext:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("%s must be true or false, got %q", key, value)
		}
		return b, nil
	default:
		return value, nil
	}
}
