// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package geometry

import (
	"math"
)

const (
	defaultElementWidth  = 640
	defaultElementHeight = 480
	// Share of the container given to small tiles when big ones are present.
	stripRatio   = 0.2
	targetAspect = 16.0 / 9.0
)

type Dimensions struct {
	Width  int `msgpack:"width"`
	Height int `msgpack:"height"`
}

// Packer turns abstract elements into pixel boxes. Implementations must
// return exactly one box per element, in the same order.
type Packer interface {
	Pack(container Dimensions, elements []Element, landscapeBias bool) []Box
}

type PackerFunc func(container Dimensions, elements []Element, landscapeBias bool) []Box

func (f PackerFunc) Pack(container Dimensions, elements []Element, landscapeBias bool) []Box {
	return f(container, elements, landscapeBias)
}

type rect struct {
	x, y, w, h float64
}

// GridPacker is a simple packer: big elements share a primary area laid out as
// a grid, small ones go to a strip on the right (landscape) or at the bottom.
type GridPacker struct{}

func (GridPacker) Pack(container Dimensions, elements []Element, landscapeBias bool) []Box {
	boxes := make([]Box, len(elements))
	if len(elements) == 0 {
		return boxes
	}

	full := rect{w: float64(container.Width), h: float64(container.Height)}
	if !HasBig(elements) {
		layoutGrid(boxes, elements, full, allIndexes(len(elements)))
		return boxes
	}

	var big, small []int
	for i, e := range elements {
		if e.Big {
			big = append(big, i)
		} else {
			small = append(small, i)
		}
	}
	if len(small) == 0 {
		layoutGrid(boxes, elements, full, big)
		return boxes
	}

	primary, strip := full, full
	if landscapeBias {
		strip.w = math.Round(full.w * stripRatio)
		strip.x = full.w - strip.w
		primary.w = full.w - strip.w
	} else {
		strip.h = math.Round(full.h * stripRatio)
		strip.y = full.h - strip.h
		primary.h = full.h - strip.h
	}

	layoutGrid(boxes, elements, primary, big)
	layoutGrid(boxes, elements, strip, small)

	return boxes
}

func allIndexes(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

func layoutGrid(boxes []Box, elements []Element, area rect, idx []int) {
	n := len(idx)
	if n == 0 || area.w <= 0 || area.h <= 0 {
		return
	}

	bestCols, bestWidth := 1, -1.0
	for cols := 1; cols <= n; cols++ {
		rows := (n + cols - 1) / cols
		cellW := area.w / float64(cols)
		cellH := area.h / float64(rows)
		tileW := math.Min(cellW, cellH*targetAspect)
		if tileW > bestWidth {
			bestCols, bestWidth = cols, tileW
		}
	}

	rows := (n + bestCols - 1) / bestCols
	cellW := area.w / float64(bestCols)
	cellH := area.h / float64(rows)
	for k, i := range idx {
		cell := rect{
			x: area.x + float64(k%bestCols)*cellW,
			y: area.y + float64(k/bestCols)*cellH,
			w: cellW,
			h: cellH,
		}
		if elements[i].FixedRatio {
			cell = letterbox(cell, elements[i])
		}
		boxes[i] = Box{
			Top:    int(math.Round(cell.y)),
			Left:   int(math.Round(cell.x)),
			Width:  int(math.Round(cell.w)),
			Height: int(math.Round(cell.h)),
		}
	}
}

func letterbox(cell rect, e Element) rect {
	w, h := defaultElementWidth, defaultElementHeight
	if e.Width != nil && e.Height != nil && *e.Width > 0 && *e.Height > 0 {
		w, h = *e.Width, *e.Height
	}
	ratio := float64(w) / float64(h)

	fit := cell
	if cell.w/cell.h > ratio {
		fit.w = cell.h * ratio
		fit.x = cell.x + (cell.w-fit.w)/2
	} else {
		fit.h = cell.w / ratio
		fit.y = cell.y + (cell.h-fit.h)/2
	}
	return fit
}
