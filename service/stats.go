// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package service

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	model "github.com/prometheus/client_model/go"
)

func gaugeValue(g prometheus.Gauge) (float64, error) {
	var m model.Metric
	if err := g.Write(&m); err != nil {
		return 0, fmt.Errorf("failed to read metric: %w", err)
	}
	return m.GetGauge().GetValue(), nil
}

func (s *Service) getStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	data := newHTTPData()
	defer s.httpAudit("getStats", data, w, r)

	if code, err := s.adminAuthHandler(r); err != nil {
		data.fail(code, err)
		return
	}

	sessions, err := gaugeValue(s.metrics.LayoutSessions)
	if err != nil {
		data.fail(http.StatusInternalServerError, err)
		return
	}

	conns, err := gaugeValue(s.metrics.WSConnections)
	if err != nil {
		data.fail(http.StatusInternalServerError, err)
		return
	}

	data.resData["sessions"] = sessions
	data.resData["connections"] = conns
}
