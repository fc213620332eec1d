// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package geometry

import (
	"fmt"
)

type Box struct {
	Top    int `msgpack:"top"`
	Left   int `msgpack:"left"`
	Width  int `msgpack:"width"`
	Height int `msgpack:"height"`
}

// Boxes is a packer result mapped back onto the tiles that requested it.
type Boxes struct {
	Publisher   Box   `msgpack:"publisher"`
	Subscribers []Box `msgpack:"subscribers"`
	Screenshare *Box  `msgpack:"screenshare,omitempty"`
	Hidden      *Box  `msgpack:"hidden,omitempty"`
}

// Destructure maps boxes back in the inverse order of Build: first box is the
// publisher, last one the hidden placeholder (if any), the one before it the
// local screenshare (if any), and the rest the subscribers in display order.
func Destructure(boxes []Box, numSubscribers int, hasScreenshare, hasHidden bool) (Boxes, error) {
	expected := 1 + numSubscribers
	if hasScreenshare {
		expected++
	}
	if hasHidden {
		expected++
	}
	if len(boxes) != expected {
		return Boxes{}, fmt.Errorf("unexpected number of boxes: expected %d, got %d", expected, len(boxes))
	}

	var res Boxes
	res.Publisher = boxes[0]
	rest := boxes[1:]

	if hasHidden {
		b := rest[len(rest)-1]
		res.Hidden = &b
		rest = rest[:len(rest)-1]
	}

	if hasScreenshare {
		b := rest[len(rest)-1]
		res.Screenshare = &b
		rest = rest[:len(rest)-1]
	}

	res.Subscribers = make([]Box, len(rest))
	copy(res.Subscribers, rest)

	return res, nil
}
