// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package api

import (
	"fmt"
	"time"
)

type TLSConfig struct {
	Enable   bool   `toml:"enable"`
	CertFile string `toml:"cert_file"`
	CertKey  string `toml:"cert_key"`
}

func (c TLSConfig) IsValid() error {
	if !c.Enable {
		return nil
	}

	if c.CertFile == "" {
		return fmt.Errorf("invalid CertFile value: should not be empty")
	}

	if c.CertKey == "" {
		return fmt.Errorf("invalid CertKey value: should not be empty")
	}

	return nil
}

type Config struct {
	ListenAddress string `toml:"listen_address"`
	// ShutdownTimeout bounds the time given to in-flight requests on Stop.
	ShutdownTimeout time.Duration `toml:"shutdown_timeout"`
	TLS             TLSConfig     `toml:"tls"`
}

func (c Config) IsValid() error {
	if c.ListenAddress == "" {
		return fmt.Errorf("invalid ListenAddress value: should not be empty")
	}

	if c.ShutdownTimeout < 0 {
		return fmt.Errorf("invalid ShutdownTimeout value: should not be negative")
	}

	if err := c.TLS.IsValid(); err != nil {
		return fmt.Errorf("invalid TLS config: %w", err)
	}

	return nil
}
