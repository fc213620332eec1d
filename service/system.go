// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/mattermost/mattermost/server/public/shared/mlog"
)

// cpuSampleInterval is the window over which the CPU load is measured.
var cpuSampleInterval = time.Second

type SystemInfo struct {
	CPULoad  float64 `json:"cpu_load"`
	NumCPU   int     `json:"num_cpu"`
	Sessions int     `json:"sessions"`
}

// cpuLoad returns the average number of busy CPUs over the sample interval.
func (s *Service) cpuLoad() (float64, int, error) {
	if s.proc == nil {
		return 0, 0, errors.New("procfs is not available")
	}

	st1, err := s.proc.Stat()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get cpu stat: %w", err)
	}
	t0 := time.Now()

	time.Sleep(cpuSampleInterval)

	st2, err := s.proc.Stat()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get cpu stat: %w", err)
	}
	elapsed := time.Since(t0).Seconds()

	numCPU := len(st2.CPU)
	idle := (st2.CPUTotal.Idle - st1.CPUTotal.Idle) / elapsed
	load := float64(numCPU) - idle
	if load < 0 {
		load = 0
	}

	return load, numCPU, nil
}

func (s *Service) getSystemInfo(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		http.NotFound(w, req)
		return
	}

	var info SystemInfo
	var err error
	info.CPULoad, info.NumCPU, err = s.cpuLoad()
	if err != nil {
		s.log.Error("failed to get cpu load", mlog.Err(err))
	}

	s.sessionsMu.Lock()
	info.Sessions = len(s.sessions)
	s.sessionsMu.Unlock()

	w.Header().Add("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(&info); err != nil {
		s.log.Error("failed to encode data", mlog.Err(err))
	}
}
