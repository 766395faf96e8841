// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package app holds the wiring shared by the convert-file and batch-convert
// commands: configuration, logging, and converter construction.
package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/doc2md/internal/container"
	"github.com/pdiddy/doc2md/internal/convert"
	"github.com/pdiddy/doc2md/pkg/types"
)

const (
	configName = "doc2md"
	envPrefix  = "DOC2MD"
)

// Config keys. Flag names use dashes; keys use underscores.
const (
	KeyBackend       = "backend"
	KeyImage         = "image"
	KeyRuntime       = "runtime"
	KeyPattern       = "pattern"
	KeyLogLevel      = "log_level"
	KeySummaryFormat = "summary_format"
)

// SetDefaults registers the default value of every config key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyBackend, string(types.BackendMarkitdown))
	v.SetDefault(KeyImage, convert.DefaultMarkitdownImage)
	v.SetDefault(KeyRuntime, container.Auto)
	v.SetDefault(KeyPattern, types.DefaultPattern)
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeySummaryFormat, string(types.SummaryText))
}

// AddFlags registers the flags shared by both commands.
func AddFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "config file (default: ./doc2md.yaml or ~/.config/doc2md/doc2md.yaml)")
	fs.String("backend", "", "conversion backend: markitdown or native")
	fs.String("image", "", "markitdown container image (default markitdown:latest)")
	fs.String("runtime", "", "container runtime: docker, podman, or auto")
	fs.String("log-level", "", "log level: debug, info, warn, or error")
}

// BindFlags binds every flag in fs that maps to a config key. Unknown flags
// are ignored.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var err error
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Name == "config" || err != nil {
			return
		}
		key := strings.ReplaceAll(f.Name, "-", "_")
		if bindErr := v.BindPFlag(key, f); bindErr != nil {
			err = fmt.Errorf("binding flag --%s: %w", f.Name, bindErr)
		}
	})
	return err
}

// ReadConfig loads cfgFile, or doc2md.yaml from the working directory or
// ~/.config/doc2md, and enables DOC2MD_* environment overrides. It returns
// the config file used, or "" when none was found. A missing default config
// file is not an error; an explicit cfgFile that cannot be read is.
func ReadConfig(v *viper.Viper, cfgFile string) (string, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", configName))
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("reading config: %w", err)
	}
	return v.ConfigFileUsed(), nil
}

// Load decodes the settings held by v into a Config.
func Load(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Backend = types.ConversionBackend(strings.ToLower(string(cfg.Backend)))
	cfg.SummaryFormat = types.SummaryFormat(strings.ToLower(string(cfg.SummaryFormat)))

	switch cfg.Backend {
	case types.BackendMarkitdown, types.BackendNative:
	default:
		return cfg, fmt.Errorf("unknown backend %q (want %s or %s)", cfg.Backend, types.BackendMarkitdown, types.BackendNative)
	}
	switch cfg.SummaryFormat {
	case types.SummaryText, types.SummaryYAML, types.SummaryJSON:
	default:
		return cfg, fmt.Errorf("unknown summary format %q (want text, yaml, or json)", cfg.SummaryFormat)
	}
	return cfg, nil
}
