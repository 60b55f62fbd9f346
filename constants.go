package main

import "time"

type BlockType int

const (
	ConditionActionHandler BlockType = iota
	ConsoleResultHandler
	DoubleOptInEmailActionHandler
	EmailActionHandler
	EventActionHandler
	ExternalUrlActionHandler
	ForwardEmailActionHandler
	PointsActionHandler
	PointsExpireHandler
	PushActionHandler
	ReferralEmailActionHandler
	RemoveEventActionHandler
	SMSActionHandler
	SplitActionHandler
	StatusActionHandler
	WaitActionHandler

	numBlockTypes
)

type State int

const (
	StateIdle State = iota
	StateDraggingBlock
	StateDraggingConnection
	StatePanningScene
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDraggingBlock:
		return "dragging-block"
	case StateDraggingConnection:
		return "dragging-connection"
	case StatePanningScene:
		return "panning"
	}
	return "unknown"
}

type HitTarget int

const (
	TargetCanvas HitTarget = iota
	TargetBlock
	TargetHandle
)

type ChangeKind int

const (
	ChangeBlockAdded ChangeKind = iota
	ChangeBlockRemoved
	ChangeBlockMoved
	ChangeBlockRetyped
	ChangeConnected
	ChangeDisconnected
)

type Theme string

const (
	ThemeAuto Theme = "auto"
	ThemeDark Theme = "dark"
)

// 1000ms / 144fps = 6ms
// 1000ms / 60fps = 16ms
const (
	defaultMinScale      = 0.1
	defaultMaxScale      = 2.0
	defaultZoomIntensity = 0.2
	defaultBlockWidth    = 168.0
	defaultBlockHeight   = 98.0
	defaultHandleSize    = 20.0
	defaultThrottle      = 6 * time.Millisecond
	defaultNamespace     = "blockflow"
)

// Screen pixels per terminal cell.
const (
	cellWidth  = 8.0
	cellHeight = 16.0
)

const noParent = 0

func (k ChangeKind) String() string {
	switch k {
	case ChangeBlockAdded:
		return "added"
	case ChangeBlockRemoved:
		return "removed"
	case ChangeBlockMoved:
		return "moved"
	case ChangeBlockRetyped:
		return "retyped"
	case ChangeConnected:
		return "connected"
	case ChangeDisconnected:
		return "disconnected"
	}
	return "unknown"
}
