// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package random

import (
	"encoding/base32"
	"strings"

	"github.com/pborman/uuid"
)

const (
	charset  = "ybndrfg8ejkmcpqxot1uwisza345h769"
	idLength = 26
)

// A 16 bytes UUID encodes to exactly idLength characters once padding is
// dropped.
var encoding = base32.NewEncoding(charset).WithPadding(base32.NoPadding)

// NewID returns a random zbase32 encoded UUID. Used for connection ids.
func NewID() string {
	return encoding.EncodeToString(uuid.NewRandom())
}

// IsValidID reports whether id could have been generated by NewID.
func IsValidID(id string) bool {
	return len(id) == idLength && strings.Trim(id, charset) == ""
}
