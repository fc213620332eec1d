// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package service

import (
	"encoding/json"
	"net/http"
	"runtime"

	"github.com/troopdegen/vonage-video-react-app-sub000/service/tiles/wire"

	"github.com/mattermost/mattermost/server/public/shared/mlog"
)

// Set at build time through -ldflags.
var (
	buildVersion string
	buildHash    string
	buildDate    string
)

type VersionInfo struct {
	BuildDate       string `json:"buildDate"`
	BuildVersion    string `json:"buildVersion"`
	BuildHash       string `json:"buildHash"`
	GoVersion       string `json:"goVersion"`
	ProtocolVersion int    `json:"protocolVersion"`
}

func getVersionInfo() VersionInfo {
	return VersionInfo{
		BuildDate:       buildDate,
		BuildVersion:    buildVersion,
		BuildHash:       buildHash,
		GoVersion:       runtime.Version(),
		ProtocolVersion: wire.ProtocolVersion,
	}
}

func (v VersionInfo) logFields() []mlog.Field {
	return []mlog.Field{
		mlog.String("buildDate", v.BuildDate),
		mlog.String("buildVersion", v.BuildVersion),
		mlog.String("buildHash", v.BuildHash),
		mlog.String("goVersion", v.GoVersion),
		mlog.Int("protocolVersion", v.ProtocolVersion),
	}
}

// getVersion lets clients check they speak the same wire protocol before
// opening a layout session.
func (s *Service) getVersion(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		http.NotFound(w, req)
		return
	}

	w.Header().Add("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(getVersionInfo()); err != nil {
		s.log.Error("failed to encode version info", mlog.Err(err))
	}
}
