// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package api

import (
	"net/http"

	"github.com/mattermost/mattermost/server/public/shared/mlog"
)

type HandleFunc func(http.ResponseWriter, *http.Request)

func (s *Server) RegisterHandleFunc(path string, hf HandleFunc) {
	s.mux.Handle(path, s.recoverer(http.HandlerFunc(hf)))
}

func (s *Server) RegisterHandler(path string, handler http.Handler) {
	s.mux.Handle(path, s.recoverer(handler))
}

// recoverer turns a panicking handler into a 500 response.
func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				if err == http.ErrAbortHandler {
					panic(err)
				}
				s.log.Error("api: handler panicked",
					mlog.String("path", r.URL.Path),
					mlog.Any("err", err))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
