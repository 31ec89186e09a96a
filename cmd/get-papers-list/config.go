// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/get-papers-list/internal/fetch"
	"github.com/pdiddy/get-papers-list/pkg/types"
)

const (
	configName  = "get-papers-list"
	envPrefix   = "GET_PAPERS_LIST"
	defaultTool = "get-papers-list"

	defaultTimeout = 30 * time.Second
)

// loadConfig reads cfgFile, or get-papers-list.yaml from the working
// directory or ~/.config/get-papers-list/, and overlays GET_PAPERS_LIST_*
// environment variables. A missing default config file is not an error.
func loadConfig(cfgFile string, logger *zap.Logger) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault("timeout", defaultTimeout)
	v.SetDefault("user_agent", "get-papers-list/"+version)
	v.SetDefault("base_url", fetch.DefaultBaseURL)
	v.SetDefault("database", fetch.DefaultDatabase)
	v.SetDefault("tool", "")
	v.SetDefault("email", "")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", configName))
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	} else {
		logger.Debug("using config file", zap.String("path", v.ConfigFileUsed()))
	}
	return v, nil
}

// fetchConfig decodes the fetch settings from v.
func fetchConfig(v *viper.Viper) (types.FetchConfig, error) {
	var cfg types.FetchConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return types.FetchConfig{}, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}
