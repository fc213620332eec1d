// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package order

import (
	"fmt"
	"strings"
)

type DeviceClass string

const (
	Desktop DeviceClass = "desktop"
	Mobile  DeviceClass = "mobile"
)

func (d DeviceClass) IsValid() error {
	switch d {
	case Desktop, Mobile:
		return nil
	default:
		return fmt.Errorf("invalid device class %q", string(d))
	}
}

func ParseDeviceClass(s string) (DeviceClass, error) {
	d := DeviceClass(strings.ToLower(s))
	if err := d.IsValid(); err != nil {
		return "", err
	}
	return d, nil
}

const hiddenPreviewSize = 2

// MaxVisible returns how many tiles may be shown at once, the hidden
// participants placeholder included.
func MaxVisible(device DeviceClass, largeTile bool) int {
	if device == Mobile {
		if largeTile {
			return 2
		}
		return 3
	}
	if largeTile {
		return 5
	}
	return 9
}

// SplitOverflow splits priority-ordered ids into the ones shown on screen and
// the ones summarized by the placeholder tile. When anybody is hidden one slot
// is reserved for the placeholder itself.
func SplitOverflow(ids []string, device DeviceClass, largeTile bool) (visible, hidden []string) {
	limit := MaxVisible(device, largeTile)
	if len(ids) <= limit {
		return ids, nil
	}
	return ids[:limit-1], ids[limit-1:]
}

// HiddenPreview returns the hidden ids whose avatars the placeholder shows.
func HiddenPreview(hidden []string) []string {
	if len(hidden) > hiddenPreviewSize {
		return hidden[:hiddenPreviewSize]
	}
	return hidden
}
