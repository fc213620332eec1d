// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package service

import (
	"net/http"

	"github.com/troopdegen/vonage-video-react-app-sub000/service/store"
)

// deleteCallPreferences drops the saved layout preferences of every user in
// a call, typically once the call has ended.
func (s *Service) deleteCallPreferences(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.NotFound(w, r)
		return
	}

	data := newHTTPData()
	data.callID = r.PathValue("callID")
	defer s.httpAudit("deleteCallPreferences", data, w, r)

	if code, err := s.adminAuthHandler(r); err != nil {
		data.fail(code, err)
		return
	}

	if err := store.DeleteCallPreferences(s.store, data.callID); err != nil {
		data.fail(http.StatusInternalServerError, err)
		return
	}

	data.resData["callID"] = data.callID
}
