// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package service

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mattermost/mattermost/server/public/shared/mlog"
)

// httpData collects what an admin handler did so that it can be logged
// and written back in a single place.
type httpData struct {
	err     error
	code    int
	callID  string
	resData map[string]any
}

func newHTTPData() *httpData {
	return &httpData{
		code:    http.StatusOK,
		resData: map[string]any{},
	}
}

func (d *httpData) fail(code int, err error) {
	d.code = code
	d.err = err
}

func (s *Service) httpAudit(handler string, data *httpData, w http.ResponseWriter, r *http.Request) {
	fields := append(reqAuditFields(r), mlog.Int("code", data.code))
	if data.callID != "" {
		fields = append(fields, mlog.String("callID", data.callID))
	}

	if data.err != nil {
		data.resData["error"] = data.err.Error()
		fields = append(fields, mlog.Err(data.err), mlog.String("status", "fail"))
	} else {
		fields = append(fields, mlog.String("status", "success"))
	}

	if errors.Is(data.err, errUnauthorized) || errors.Is(data.err, errInvalidAuth) {
		s.log.Warn(handler, fields...)
	} else {
		s.log.Debug(handler, fields...)
	}

	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(data.code)
	if err := json.NewEncoder(w).Encode(data.resData); err != nil {
		s.log.Error("failed to encode data", mlog.Err(err))
	}
}

func reqAuditFields(req *http.Request) []mlog.Field {
	header := req.Header.Clone()
	header.Del("Authorization")
	return []mlog.Field{
		mlog.String("remoteAddr", req.RemoteAddr),
		mlog.String("method", req.Method),
		mlog.String("url", req.URL.String()),
		mlog.Any("header", header),
	}
}
