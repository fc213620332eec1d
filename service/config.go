// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package service

import (
	"fmt"
	"time"

	"github.com/troopdegen/vonage-video-react-app-sub000/logger"
	"github.com/troopdegen/vonage-video-react-app-sub000/service/api"
	"github.com/troopdegen/vonage-video-react-app-sub000/service/tiles"
	"github.com/troopdegen/vonage-video-react-app-sub000/service/ws"
)

type SecurityConfig struct {
	// Whether or not to enable admin API access.
	EnableAdmin bool `toml:"enable_admin"`
	// The secret key used to authenticate admin requests.
	AdminSecretKey string `toml:"admin_secret_key"`
}

func (c SecurityConfig) IsValid() error {
	if !c.EnableAdmin {
		return nil
	}

	if c.AdminSecretKey == "" {
		return fmt.Errorf("invalid AdminSecretKey value: should not be empty")
	}

	return nil
}

type APIConfig struct {
	HTTP     api.Config     `toml:"http"`
	Security SecurityConfig `toml:"security"`
}

func (c APIConfig) IsValid() error {
	if err := c.Security.IsValid(); err != nil {
		return fmt.Errorf("failed to validate security config: %w", err)
	}

	if err := c.HTTP.IsValid(); err != nil {
		return fmt.Errorf("failed to validate http config: %w", err)
	}

	return nil
}

type SessionConfig struct {
	// AudioLevelRateLimit is the number of audio level messages per second a
	// single connection can send. Excess samples are dropped.
	AudioLevelRateLimit float64 `toml:"audio_level_rate_limit"`
	AudioLevelBurst     int     `toml:"audio_level_burst"`
	// LevelsInterval is the minimum interval between two audio meter updates
	// sent to a client.
	LevelsInterval time.Duration `toml:"levels_interval"`
}

func (c SessionConfig) IsValid() error {
	if c.AudioLevelRateLimit <= 0 {
		return fmt.Errorf("invalid AudioLevelRateLimit value: should be greater than zero")
	}

	if c.AudioLevelBurst <= 0 {
		return fmt.Errorf("invalid AudioLevelBurst value: should be greater than zero")
	}

	if c.LevelsInterval < 10*time.Millisecond {
		return fmt.Errorf("invalid LevelsInterval value: should be at least 10ms")
	}

	return nil
}

type StoreConfig struct {
	DataSource string `toml:"data_source"`
}

func (c StoreConfig) IsValid() error {
	if c.DataSource == "" {
		return fmt.Errorf("invalid DataSource value: should not be empty")
	}
	return nil
}

type Config struct {
	API     APIConfig
	WS      ws.ServerConfig
	Session SessionConfig
	Layout  tiles.Config
	Store   StoreConfig
	Logger  logger.Config
}

func (c Config) IsValid() error {
	if err := c.API.IsValid(); err != nil {
		return err
	}

	if err := c.WS.IsValid(); err != nil {
		return fmt.Errorf("failed to validate ws config: %w", err)
	}

	if err := c.Session.IsValid(); err != nil {
		return fmt.Errorf("failed to validate session config: %w", err)
	}

	if err := c.Layout.IsValid(); err != nil {
		return fmt.Errorf("failed to validate layout config: %w", err)
	}

	if err := c.Store.IsValid(); err != nil {
		return err
	}

	return c.Logger.IsValid()
}

func (c *Config) SetDefaults() {
	c.API.HTTP.ListenAddress = ":8045"
	c.API.HTTP.ShutdownTimeout = 10 * time.Second
	c.WS.ReadBufferSize = 1024
	c.WS.WriteBufferSize = 1024
	c.WS.PingInterval = 10 * time.Second
	c.WS.MaxMessageSizeBytes = 64 * 1024
	c.Session.AudioLevelRateLimit = 50
	c.Session.AudioLevelBurst = 20
	c.Session.LevelsInterval = 100 * time.Millisecond
	c.Layout = tiles.Config{}.SetDefaults()
	c.Store.DataSource = "/tmp/tilesd_db"
	c.Logger.EnableConsole = true
	c.Logger.ConsoleJSON = false
	c.Logger.ConsoleLevel = "INFO"
	c.Logger.EnableFile = true
	c.Logger.FileJSON = true
	c.Logger.FileLocation = "tilesd.log"
	c.Logger.FileLevel = "DEBUG"
	c.Logger.EnableColor = false
}
