// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package service

import (
	"fmt"
	"sync"

	"github.com/troopdegen/vonage-video-react-app-sub000/logger"
	"github.com/troopdegen/vonage-video-react-app-sub000/service/api"
	"github.com/troopdegen/vonage-video-react-app-sub000/service/perf"
	"github.com/troopdegen/vonage-video-react-app-sub000/service/store"
	"github.com/troopdegen/vonage-video-react-app-sub000/service/ws"

	"github.com/mattermost/mattermost/server/public/shared/mlog"
	"github.com/prometheus/procfs"
)

const metricsNamespace = "tilesd"

type Service struct {
	cfg       Config
	apiServer *api.Server
	wsServer  *ws.Server
	store     store.Store
	metrics   *perf.Metrics
	log       *mlog.Logger
	proc      *procfs.FS

	sessions   map[string]*session
	sessionsMu sync.Mutex
	wg         sync.WaitGroup
}

func New(cfg Config) (*Service, error) {
	if err := cfg.IsValid(); err != nil {
		return nil, err
	}

	s := &Service{
		cfg:      cfg,
		sessions: make(map[string]*session),
		metrics:  perf.NewMetrics(metricsNamespace, nil),
	}

	var err error
	s.log, err = logger.New(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}

	if fs, err := procfs.NewDefaultFS(); err != nil {
		s.log.Warn("failed to open procfs, cpu load won't be available", mlog.Err(err))
	} else {
		s.proc = &fs
	}

	s.store, err = store.New(cfg.Store.DataSource)
	if err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}

	s.apiServer, err = api.NewServer(cfg.API.HTTP, s.log)
	if err != nil {
		return nil, fmt.Errorf("failed to create api server: %w", err)
	}

	s.wsServer, err = ws.NewServer(cfg.WS, s.log, ws.WithConnCb(func(open bool) {
		if open {
			s.metrics.IncWSConnections()
		} else {
			s.metrics.DecWSConnections()
		}
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to create ws server: %w", err)
	}

	s.apiServer.RegisterHandleFunc("/version", s.getVersion)
	s.apiServer.RegisterHandleFunc("/system", s.getSystemInfo)
	s.apiServer.RegisterHandleFunc("/stats", s.getStats)
	s.apiServer.RegisterHandleFunc("/preferences/{callID}", s.deleteCallPreferences)
	s.apiServer.RegisterHandler("/metrics", s.metrics.Handler())
	s.apiServer.RegisterHandler("/ws", s.wsServer)

	return s, nil
}

// Addr returns the address the API server is listening on.
func (s *Service) Addr() string {
	return s.apiServer.Addr()
}

func (s *Service) Start() error {
	s.log.Info("tilesd: starting", getVersionInfo().logFields()...)

	if err := s.apiServer.Start(); err != nil {
		return fmt.Errorf("failed to start API server: %w", err)
	}

	s.wg.Add(1)
	go s.wsReader()

	return nil
}

func (s *Service) Stop() error {
	s.log.Info("tilesd: stopping")

	if err := s.apiServer.Stop(); err != nil {
		return fmt.Errorf("failed to stop API server: %w", err)
	}

	s.wsServer.Close()
	s.wg.Wait()

	if err := s.store.Close(); err != nil {
		return fmt.Errorf("failed to close store: %w", err)
	}

	if err := s.log.Shutdown(); err != nil {
		return fmt.Errorf("failed to shutdown logger: %w", err)
	}

	return nil
}

// wsReader dispatches connection events and messages to layout sessions.
// It returns once the ws server has been closed and every session has ended.
func (s *Service) wsReader() {
	defer s.wg.Done()

	for msg := range s.wsServer.ReceiveCh() {
		switch msg.Type {
		case ws.OpenMessage:
			s.openSession(msg.ConnID)
		case ws.CloseMessage:
			s.closeSession(msg.ConnID)
		case ws.TextMessage, ws.BinaryMessage:
			s.sessionsMu.Lock()
			us := s.sessions[msg.ConnID]
			s.sessionsMu.Unlock()
			if us == nil {
				s.log.Debug("tilesd: message for unknown session", mlog.String("connID", msg.ConnID))
				continue
			}
			us.enqueue(msg.Data)
		}
	}

	s.sessionsMu.Lock()
	sessions := make([]*session, 0, len(s.sessions))
	for _, us := range s.sessions {
		sessions = append(sessions, us)
	}
	s.sessionsMu.Unlock()
	for _, us := range sessions {
		s.closeSession(us.connID)
	}
}

func (s *Service) openSession(connID string) {
	us, err := newSession(s, connID)
	if err != nil {
		s.log.Error("tilesd: failed to create session", mlog.String("connID", connID), mlog.Err(err))
		if err := s.wsServer.Send(ws.Message{ConnID: connID, Type: ws.CloseMessage}); err != nil {
			s.log.Error("tilesd: failed to close connection", mlog.String("connID", connID), mlog.Err(err))
		}
		return
	}

	s.sessionsMu.Lock()
	s.sessions[connID] = us
	s.sessionsMu.Unlock()

	s.metrics.IncLayoutSessions()
	s.log.Debug("tilesd: session opened", mlog.String("connID", connID))

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		us.run()
	}()
}

func (s *Service) closeSession(connID string) {
	s.sessionsMu.Lock()
	us := s.sessions[connID]
	delete(s.sessions, connID)
	s.sessionsMu.Unlock()

	if us == nil {
		return
	}

	us.close()
	s.metrics.DecLayoutSessions()
	s.log.Debug("tilesd: session closed", mlog.String("connID", connID))
}
