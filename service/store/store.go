// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package store

import (
	"errors"
)

var (
	ErrNotFound = errors.New("store: key not found")
	ErrEmptyKey = errors.New("store: key should not be empty")
)

// Store is the persistence layer backing user preferences. Keys are
// namespaced by prefix so that a whole call can be listed and wiped at once.
// Implementations must be safe for concurrent use.
type Store interface {
	Set(key string, value []byte) error
	// Get returns ErrNotFound when key has never been set or was deleted.
	Get(key string) ([]byte, error)
	Delete(key string) error
	// Keys lists every key starting with prefix, in no particular order.
	Keys(prefix string) ([]string, error)
	Close() error
}

// New opens the bitcask database rooted at dataSource, creating it if needed.
func New(dataSource string) (Store, error) {
	if dataSource == "" {
		return nil, errors.New("store: data source should not be empty")
	}
	return newBitcaskStore(dataSource)
}
