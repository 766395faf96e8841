// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package app

import (
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/doc2md/pkg/types"
)

// Setup resolves the configuration for a command from its flags, the config
// file and the environment, and returns it with a logger writing to logOut.
func Setup(fs *pflag.FlagSet, logOut io.Writer) (types.Config, *logrus.Logger, error) {
	v := viper.New()
	SetDefaults(v)
	if err := BindFlags(v, fs); err != nil {
		return types.Config{}, nil, err
	}

	cfgFile, _ := fs.GetString("config")
	used, err := ReadConfig(v, cfgFile)
	if err != nil {
		return types.Config{}, nil, err
	}

	cfg, err := Load(v)
	if err != nil {
		return cfg, nil, err
	}

	logger := NewLogger(logOut, cfg.LogLevel)
	if used != "" {
		logger.WithField("file", used).Info("using config file")
	}
	logger.WithFields(logrus.Fields{
		"backend": cfg.Backend,
		"runtime": cfg.Runtime,
	}).Debug("configuration loaded")
	return cfg, logger, nil
}
