// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package service

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAdminAuthHandler(t *testing.T) {
	cfg := MakeDefaultCfg(t)
	s := &Service{cfg: *cfg}

	t.Run("missing header", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/stats", nil)
		code, err := s.adminAuthHandler(r)
		require.Equal(t, http.StatusUnauthorized, code)
		require.ErrorIs(t, err, errInvalidAuth)
	})

	t.Run("empty bearer", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/stats", nil)
		r.Header.Set("Authorization", "Bearer ")
		code, err := s.adminAuthHandler(r)
		require.Equal(t, http.StatusUnauthorized, code)
		require.ErrorIs(t, err, errInvalidAuth)
	})

	t.Run("wrong key", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/stats", nil)
		r.SetBasicAuth("", "wrong_key")
		code, err := s.adminAuthHandler(r)
		require.Equal(t, http.StatusUnauthorized, code)
		require.ErrorIs(t, err, errUnauthorized)
	})

	t.Run("basic auth", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/stats", nil)
		r.SetBasicAuth("", cfg.API.Security.AdminSecretKey)
		code, err := s.adminAuthHandler(r)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, code)
	})

	t.Run("bearer token", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/stats", nil)
		r.Header.Set("Authorization", "Bearer "+cfg.API.Security.AdminSecretKey)
		code, err := s.adminAuthHandler(r)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, code)
	})

	t.Run("admin disabled", func(t *testing.T) {
		disabled := &Service{cfg: *cfg}
		disabled.cfg.API.Security.EnableAdmin = false
		r := httptest.NewRequest(http.MethodGet, "/stats", nil)
		r.SetBasicAuth("", cfg.API.Security.AdminSecretKey)
		code, err := disabled.adminAuthHandler(r)
		require.Equal(t, http.StatusForbidden, code)
		require.ErrorIs(t, err, errAdminDisabled)
	})
}
