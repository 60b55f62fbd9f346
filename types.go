package main

import (
	"fmt"
	"time"
)

type Block struct {
	ID       int
	ParentID int
	Type     BlockType
	X        float64
	Y        float64
}

func (b Block) HasParent() bool {
	return b.ParentID != noParent
}

// Node is the anchor-graph view of a block: its input is the parent link and
// its outputs are the children.
type Node struct {
	ID        int
	InputID   int
	OutputIDs map[int]struct{}
	X         float64
	Y         float64
}

type Anchor struct {
	ID int
	X  float64
	Y  float64
}

type Line struct {
	Start Anchor
	End   Anchor
}

type LineKey struct {
	From int
	To   int
}

func (k LineKey) String() string {
	return fmt.Sprintf("%d:%d", k.From, k.To)
}

type Hit struct {
	Target  HitTarget
	BlockID int
}

type PointerEvent struct {
	X      float64
	Y      float64
	Target HitTarget
	// BlockID is the block under the pointer for TargetBlock and TargetHandle.
	BlockID int
	At      time.Time
}

type WheelEvent struct {
	X     float64
	Y     float64
	Ticks float64
}

type Change struct {
	Kind    ChangeKind
	BlockID int
	Line    LineKey
}

type Snapshot struct {
	Blocks []Block
	Lines  map[LineKey]Line
}

// Block returns the block with the given id from the snapshot.
func (s Snapshot) Block(id int) (Block, bool) {
	for _, b := range s.Blocks {
		if b.ID == id {
			return b, true
		}
	}
	return Block{}, false
}
