// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package service

import (
	"net"
	"net/url"
	"testing"
	"time"

	"github.com/troopdegen/vonage-video-react-app-sub000/service/tiles"
	"github.com/troopdegen/vonage-video-react-app-sub000/service/tiles/wire"
	"github.com/troopdegen/vonage-video-react-app-sub000/service/ws"

	"github.com/stretchr/testify/require"
)

const waitTimeout = 5 * time.Second

type TestHelper struct {
	srvc   *Service
	cfg    Config
	tb     testing.TB
	apiURL string
	wsURL  string
}

func MakeDefaultCfg(tb testing.TB) *Config {
	tb.Helper()

	var cfg Config
	cfg.SetDefaults()
	cfg.API.HTTP.ListenAddress = ":0"
	cfg.API.Security.EnableAdmin = true
	cfg.API.Security.AdminSecretKey = "admin_secret_key"
	cfg.Session.LevelsInterval = 20 * time.Millisecond
	cfg.Store.DataSource = tb.TempDir()
	cfg.Logger.EnableFile = false
	cfg.Logger.ConsoleLevel = "ERROR"

	return &cfg
}

func SetupTestHelper(tb testing.TB, cfg *Config) *TestHelper {
	tb.Helper()

	if cfg == nil {
		cfg = MakeDefaultCfg(tb)
	}

	th := &TestHelper{
		cfg: *cfg,
		tb:  tb,
	}

	var err error
	th.srvc, err = New(th.cfg)
	require.NoError(tb, err)
	require.NotNil(tb, th.srvc)

	err = th.srvc.Start()
	require.NoError(tb, err)

	_, port, err := net.SplitHostPort(th.srvc.apiServer.Addr())
	require.NoError(tb, err)
	th.apiURL = "http://localhost:" + port
	th.wsURL = (&url.URL{Scheme: "ws", Host: "localhost:" + port, Path: "/ws"}).String()

	return th
}

func (th *TestHelper) Teardown() {
	err := th.srvc.Stop()
	require.NoError(th.tb, err)
}

func (th *TestHelper) connect(t *testing.T) *ws.Client {
	t.Helper()

	c, err := ws.NewClient(ws.ClientConfig{URL: th.wsURL})
	require.NoError(t, err)
	require.NotNil(t, c)

	return c
}

func sendMsg(t *testing.T, c *ws.Client, mt wire.MessageType, payload any) {
	t.Helper()

	data, err := wire.EncodeMessage(mt, payload)
	require.NoError(t, err)
	require.NoError(t, c.Send(ws.BinaryMessage, data))
}

// waitForMsg returns the payload of the first message of type mt accepted by
// match, skipping everything else.
func waitForMsg(t *testing.T, c *ws.Client, mt wire.MessageType, match func(payload any) bool) any {
	t.Helper()

	timer := time.NewTimer(waitTimeout)
	defer timer.Stop()

	for {
		select {
		case msg, ok := <-c.ReceiveCh():
			require.True(t, ok, "connection closed while waiting for %s", mt)
			msgType, payload, err := wire.DecodeMessage(msg.Data)
			require.NoError(t, err)
			if msgType == mt && (match == nil || match(payload)) {
				return payload
			}
		case <-timer.C:
			require.FailNow(t, "timed out waiting for message", mt.String())
			return nil
		}
	}
}

func waitForSnapshot(t *testing.T, c *ws.Client, match func(s tiles.Snapshot) bool) tiles.Snapshot {
	t.Helper()

	payload := waitForMsg(t, c, wire.MessageTypeSnapshot, func(payload any) bool {
		return match(payload.(tiles.Snapshot))
	})

	return payload.(tiles.Snapshot)
}

func waitForError(t *testing.T, c *ws.Client) string {
	t.Helper()
	return waitForMsg(t, c, wire.MessageTypeError, nil).(string)
}
