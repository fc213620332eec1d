// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package client

import (
	"fmt"
	"net/url"
	"strings"
)

const wsAPIPath = "/ws"

type Config struct {
	// URL is the base URL of the tilesd instance to connect to.
	URL string
	// CallID is the id of the call the layout session belongs to.
	CallID string
	// UserID identifies the viewer. Layout preferences are saved per user.
	UserID string
	// AdminSecretKey is only needed for admin API requests.
	AdminSecretKey string

	wsURL string
}

func (c *Config) Parse() error {
	if c.URL == "" {
		return fmt.Errorf("invalid URL value: should not be empty")
	}
	c.URL = strings.TrimRight(strings.TrimSpace(c.URL), "/")
	u, err := url.Parse(c.URL)
	if err != nil {
		return fmt.Errorf("failed to parse URL: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	default:
		return fmt.Errorf("invalid URL scheme %q", u.Scheme)
	}
	u.Path += wsAPIPath
	c.wsURL = u.String()

	if c.CallID == "" {
		return fmt.Errorf("invalid CallID value: should not be empty")
	}

	if c.UserID == "" {
		return fmt.Errorf("invalid UserID value: should not be empty")
	}

	return nil
}
