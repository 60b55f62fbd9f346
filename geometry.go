package main

import "math"

// LineFor builds a straight connector between two anchors. The preview line
// uses an anchor with ID 0 for the free end.
func LineFor(a, b Anchor) Line {
	return Line{Start: a, End: b}
}

func anchorOf(b Block) Anchor {
	return Anchor{ID: b.ID, X: b.X, Y: b.Y}
}

func (l Line) Length() float64 {
	return math.Hypot(l.End.X-l.Start.X, l.End.Y-l.Start.Y)
}

type Layout struct {
	BlockWidth  float64
	BlockHeight float64
	HandleSize  float64
}

func DefaultLayout() Layout {
	return Layout{
		BlockWidth:  defaultBlockWidth,
		BlockHeight: defaultBlockHeight,
		HandleSize:  defaultHandleSize,
	}
}

func (l Layout) contains(b Block, x, y float64) bool {
	return x >= b.X && x < b.X+l.BlockWidth &&
		y >= b.Y && y < b.Y+l.BlockHeight
}

// onHandle reports whether the point lies on the output handle: the bottom
// strip of the middle half of the block.
func (l Layout) onHandle(b Block, x, y float64) bool {
	left := b.X + l.BlockWidth/4
	right := b.X + 3*l.BlockWidth/4
	top := b.Y + l.BlockHeight - l.HandleSize
	return x >= left && x < right && y >= top && y < b.Y+l.BlockHeight
}

// HitTest classifies a scene point. Blocks later in render order are drawn on
// top, so they are tested first.
func (l Layout) HitTest(blocks []Block, x, y float64) Hit {
	for i := len(blocks) - 1; i >= 0; i-- {
		b := blocks[i]
		if !l.contains(b, x, y) {
			continue
		}
		if l.onHandle(b, x, y) {
			return Hit{Target: TargetHandle, BlockID: b.ID}
		}
		return Hit{Target: TargetBlock, BlockID: b.ID}
	}
	return Hit{Target: TargetCanvas}
}

// OutputPort is where a connector leaves a parent block.
func (l Layout) OutputPort(a Anchor) (float64, float64) {
	return a.X + l.BlockWidth/2, a.Y + l.BlockHeight
}

// InputPort is where a connector enters a child block.
func (l Layout) InputPort(a Anchor) (float64, float64) {
	return a.X + l.BlockWidth/2, a.Y
}
