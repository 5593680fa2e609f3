// Package cliconfig provides configuration loading for the langbreakdown
// command, in the teacher's viper-backed, sentinel-validated style.
package cliconfig

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Sentinel validation errors.
var (
	ErrInvalidOutput = errors.New("invalid output mode")
)

// Output mode constants.
const (
	OutputBare    = "bare"
	OutputVerbose = "verbose"
)

// Config holds configuration for the langbreakdown command.
type Config struct {
	Corpus CorpusConfig `mapstructure:"corpus"`
	Output OutputConfig `mapstructure:"output"`
}

// CorpusConfig points langbreakdown at an alternate language corpus. When
// every field is empty, the package's embedded default corpus
// (pkg/langident.LoadEmbeddedCorpus) is used. When any field is set,
// LanguagesFile is required; an empty HeuristicsFile or VendorFile then
// contributes no rules or patterns, and an empty DocumentationFile uses
// pkg/langident's built-in documentation patterns.
type CorpusConfig struct {
	LanguagesFile     string `mapstructure:"languages_file"`
	HeuristicsFile    string `mapstructure:"heuristics_file"`
	VendorFile        string `mapstructure:"vendor_file"`
	DocumentationFile string `mapstructure:"documentation_file"`
}

// OutputConfig controls how langbreakdown renders its results.
type OutputConfig struct {
	Mode    string `mapstructure:"mode"`
	NoColor bool   `mapstructure:"no_color"`
}

// Load reads configuration from configPath if it is non-empty, otherwise
// from the working directory's langbreakdown.yaml (a missing file there is
// not an error). LANGBREAKDOWN_-prefixed environment variables override
// file values; explicit flags are applied by the caller on top.
func Load(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName("langbreakdown")
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
	}

	viperCfg.SetEnvPrefix("LANGBREAKDOWN")
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	var config Config

	if err := viperCfg.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("output.mode", OutputBare)
	viperCfg.SetDefault("output.no_color", false)
}

func validate(config *Config) error {
	switch config.Output.Mode {
	case OutputBare, OutputVerbose:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOutput, config.Output.Mode)
	}
}
