// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package store

import (
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

const prefsKeyPrefix = "prefs:"

// Preferences are the layout choices of a user in a call, restored when
// the user rejoins.
type Preferences struct {
	LayoutMode string   `msgpack:"layout_mode,omitempty"`
	Pinned     []string `msgpack:"pinned,omitempty"`
}

func prefsKey(callID, userID string) (string, error) {
	if callID == "" {
		return "", fmt.Errorf("invalid callID value: should not be empty")
	}
	if userID == "" {
		return "", fmt.Errorf("invalid userID value: should not be empty")
	}
	return prefsKeyPrefix + callID + ":" + userID, nil
}

// LoadPreferences returns the saved preferences for the user in the call.
// Missing preferences are not an error: the zero value is returned.
func LoadPreferences(s Store, callID, userID string) (Preferences, error) {
	var prefs Preferences

	key, err := prefsKey(callID, userID)
	if err != nil {
		return prefs, err
	}

	data, err := s.Get(key)
	if errors.Is(err, ErrNotFound) {
		return prefs, nil
	} else if err != nil {
		return prefs, err
	}

	if err := msgpack.Unmarshal(data, &prefs); err != nil {
		return prefs, fmt.Errorf("failed to decode preferences: %w", err)
	}

	return prefs, nil
}

func SavePreferences(s Store, callID, userID string, prefs Preferences) error {
	key, err := prefsKey(callID, userID)
	if err != nil {
		return err
	}

	data, err := msgpack.Marshal(&prefs)
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}

	return s.Set(key, data)
}

// DeleteCallPreferences removes the preferences of every user in the call.
func DeleteCallPreferences(s Store, callID string) error {
	if callID == "" {
		return fmt.Errorf("invalid callID value: should not be empty")
	}

	keys, err := s.Keys(prefsKeyPrefix + callID + ":")
	if err != nil {
		return err
	}

	for _, key := range keys {
		if err := s.Delete(key); err != nil {
			return err
		}
	}

	return nil
}
