// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package ws

type MessageType int

const (
	TextMessage MessageType = iota + 1
	BinaryMessage
	OpenMessage
	CloseMessage
)

func (mt MessageType) String() string {
	switch mt {
	case TextMessage:
		return "text"
	case BinaryMessage:
		return "binary"
	case OpenMessage:
		return "open"
	case CloseMessage:
		return "close"
	default:
		return "unknown"
	}
}

// Message is a frame exchanged with a connection. Open and Close messages
// carry no data and only flow from the server to its consumer, except for
// Close which can also be sent to drop a connection.
type Message struct {
	ConnID string
	Type   MessageType
	Data   []byte
}

func newOpenMessage(connID string) Message {
	return Message{
		ConnID: connID,
		Type:   OpenMessage,
	}
}

func newCloseMessage(connID string) Message {
	return Message{
		ConnID: connID,
		Type:   CloseMessage,
	}
}
