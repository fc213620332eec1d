// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package main

import (
	"os"
	"testing"
	"time"

	"github.com/troopdegen/vonage-video-react-app-sub000/service"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, data string) string {
	t.Helper()

	file, err := os.CreateTemp(t.TempDir(), "config.toml")
	require.NoError(t, err)
	defer file.Close()

	_, err = file.WriteString(data)
	require.NoError(t, err)

	return file.Name()
}

func TestLoadConfig(t *testing.T) {
	t.Run("non existent file", func(t *testing.T) {
		cfg, err := loadConfig("")
		require.Error(t, err)
		require.Empty(t, cfg)
	})

	t.Run("empty file", func(t *testing.T) {
		cfg, err := loadConfig(writeConfig(t, ""))
		require.NoError(t, err)

		var expected service.Config
		expected.SetDefaults()
		require.Equal(t, expected, cfg)
		require.NoError(t, cfg.IsValid())
	})

	t.Run("unknown section", func(t *testing.T) {
		cfg, err := loadConfig(writeConfig(t, "[invalid]\nkey = 1\n"))
		require.Error(t, err)
		require.Empty(t, cfg)
	})

	t.Run("partial file", func(t *testing.T) {
		cfg, err := loadConfig(writeConfig(t, "[session]\nlevels_interval = \"250ms\"\n\n[layout]\nmax_pin_count_desktop = 4\n"))
		require.NoError(t, err)
		require.Equal(t, 250*time.Millisecond, cfg.Session.LevelsInterval)
		require.Equal(t, 4, cfg.Layout.MaxPinCountDesktop)
		require.Equal(t, ":8045", cfg.API.HTTP.ListenAddress)
	})

	t.Run("valid config", func(t *testing.T) {
		cfg, err := loadConfig("../../config/config.sample.toml")
		require.NoError(t, err)
		require.NotEmpty(t, cfg)
		require.NoError(t, cfg.IsValid())
	})

	t.Run("env override", func(t *testing.T) {
		cfg, err := loadConfig("../../config/config.sample.toml")
		require.NoError(t, err)
		require.Equal(t, "DEBUG", cfg.Logger.FileLevel)

		t.Setenv("TILESD_LOGGER_FILELEVEL", "ERROR")
		cfg, err = loadConfig("../../config/config.sample.toml")
		require.NoError(t, err)
		require.Equal(t, "ERROR", cfg.Logger.FileLevel)
	})
}
