// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package client

import (
	"net"
	"testing"

	"github.com/troopdegen/vonage-video-react-app-sub000/service"

	"github.com/stretchr/testify/require"
)

const adminSecretKey = "admin_secret_key"

type TestHelper struct {
	tb     testing.TB
	srvc   *service.Service
	apiURL string
}

func SetupTestHelper(tb testing.TB) *TestHelper {
	tb.Helper()

	var cfg service.Config
	cfg.SetDefaults()
	cfg.API.HTTP.ListenAddress = ":0"
	cfg.API.Security.EnableAdmin = true
	cfg.API.Security.AdminSecretKey = adminSecretKey
	cfg.Store.DataSource = tb.TempDir()
	cfg.Logger.EnableFile = false
	cfg.Logger.ConsoleLevel = "ERROR"

	srvc, err := service.New(cfg)
	require.NoError(tb, err)
	require.NoError(tb, srvc.Start())

	_, port, err := net.SplitHostPort(srvc.Addr())
	require.NoError(tb, err)

	return &TestHelper{
		tb:     tb,
		srvc:   srvc,
		apiURL: "http://localhost:" + port,
	}
}

func (th *TestHelper) Teardown() {
	require.NoError(th.tb, th.srvc.Stop())
}

func (th *TestHelper) newClient(t *testing.T, callID, userID string) *Client {
	t.Helper()

	c, err := New(Config{
		URL:            th.apiURL,
		CallID:         callID,
		UserID:         userID,
		AdminSecretKey: adminSecretKey,
	})
	require.NoError(t, err)
	require.NotNil(t, c)

	return c
}
