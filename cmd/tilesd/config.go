// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package main

import (
	"fmt"

	"github.com/troopdegen/vonage-video-react-app-sub000/service"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
)

const envPrefix = "tilesd"

// loadConfig returns a service.Config built from defaults, then the config
// file, then any environment variable matching a setting
// (e.g. TILESD_LOGGER_FILELEVEL).
func loadConfig(path string) (service.Config, error) {
	var cfg service.Config
	cfg.SetDefaults()

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return service.Config{}, fmt.Errorf("failed to decode config file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return service.Config{}, fmt.Errorf("unknown config keys: %v", undecoded)
	}

	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return service.Config{}, fmt.Errorf("failed to process env overrides: %w", err)
	}

	return cfg, nil
}
