// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/troopdegen/vonage-video-react-app-sub000/service"
)

const (
	httpRequestTimeout           = 10 * time.Second
	httpResponseBodyMaxSizeBytes = 1024 * 1024 // 1MB
)

type Stats struct {
	Sessions    float64 `json:"sessions"`
	Connections float64 `json:"connections"`
}

func (c *Client) doAPIRequest(ctx context.Context, method, path string, admin bool, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.cfg.URL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if admin {
		req.Header.Set("Authorization", "Bearer "+c.cfg.AdminSecretKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, httpResponseBodyMaxSizeBytes))
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

func (c *Client) GetVersion(ctx context.Context) (service.VersionInfo, error) {
	var info service.VersionInfo
	err := c.doAPIRequest(ctx, http.MethodGet, "/version", false, &info)
	return info, err
}

func (c *Client) GetSystemInfo(ctx context.Context) (service.SystemInfo, error) {
	var info service.SystemInfo
	err := c.doAPIRequest(ctx, http.MethodGet, "/system", false, &info)
	return info, err
}

func (c *Client) GetStats(ctx context.Context) (Stats, error) {
	var stats Stats
	err := c.doAPIRequest(ctx, http.MethodGet, "/stats", true, &stats)
	return stats, err
}

// DeleteCallPreferences drops the saved layout preferences of every user in
// the given call.
func (c *Client) DeleteCallPreferences(ctx context.Context, callID string) error {
	return c.doAPIRequest(ctx, http.MethodDelete, "/preferences/"+url.PathEscape(callID), true, nil)
}
