// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package service

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
)

var (
	errAdminDisabled  = errors.New("admin access is disabled")
	errInvalidAuth    = errors.New("authentication failed: invalid auth header")
	errUnauthorized   = errors.New("authentication failed: unauthorized")
	bearerTokenPrefix = "Bearer "
)

// adminAuthHandler checks the request carries the admin secret key, either
// as the password of a basic auth header or as a bearer token. On failure it
// returns the status code the caller should respond with.
func (s *Service) adminAuthHandler(r *http.Request) (int, error) {
	if !s.cfg.API.Security.EnableAdmin {
		return http.StatusForbidden, errAdminDisabled
	}

	authKey, ok := parseAuthKey(r)
	if !ok {
		return http.StatusUnauthorized, errInvalidAuth
	}

	if subtle.ConstantTimeCompare([]byte(authKey), []byte(s.cfg.API.Security.AdminSecretKey)) != 1 {
		return http.StatusUnauthorized, errUnauthorized
	}

	return http.StatusOK, nil
}

func parseAuthKey(r *http.Request) (string, bool) {
	if _, authKey, ok := r.BasicAuth(); ok {
		return authKey, authKey != ""
	}

	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), bearerTokenPrefix)
	if !ok || token == "" {
		return "", false
	}

	return token, true
}
