package main

import (
	"log/slog"
	"time"
)

type EditorOptions struct {
	Layout   Layout
	Zoom     ZoomConfig
	Throttle time.Duration
	Logger   *slog.Logger
}

func DefaultEditorOptions() EditorOptions {
	return EditorOptions{
		Layout:   DefaultLayout(),
		Zoom:     DefaultZoomConfig(),
		Throttle: defaultThrottle,
	}
}

// Editor is one editing session: the scene, the view transform and the
// pointer interaction state machine. All methods run on the caller's
// goroutine.
type Editor struct {
	store  *Store
	view   Transform
	zoom   ZoomConfig
	layout Layout
	gate   *Throttle
	log    *slog.Logger

	state    State
	blockID  int
	grabX    float64
	grabY    float64
	sourceID int
	cursorX  float64
	cursorY  float64
	lastX    float64
	lastY    float64
	pending  *PointerEvent
}

func NewEditor(store *Store, opts EditorOptions) *Editor {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	if opts.Zoom.MaxScale <= 0 {
		opts.Zoom = DefaultZoomConfig()
	}
	e := &Editor{
		store:  store,
		zoom:   opts.Zoom,
		layout: opts.Layout,
		gate:   NewThrottle(opts.Throttle),
		log:    log,
		state:  StateIdle,
	}
	e.SetView(NewTransform())
	return e
}

func (e *Editor) Store() *Store { return e.store }
func (e *Editor) View() Transform { return e.view }
func (e *Editor) Layout() Layout { return e.layout }
func (e *Editor) State() State { return e.state }
func (e *Editor) Zoom() ZoomConfig { return e.zoom }
func (e *Editor) HasPending() bool { return e.pending != nil }
func (e *Editor) DraggedBlock() int { return e.blockID }
func (e *Editor) SourceBlock() int { return e.sourceID }

// Hit classifies the screen point against the current scene.
func (e *Editor) Hit(px, py float64) Hit {
	sx, sy := e.view.ScreenToScene(px, py)
	return e.layout.HitTest(e.store.Blocks(), sx, sy)
}

// PointerAt builds a classified pointer event for a screen position.
func (e *Editor) PointerAt(px, py float64, at time.Time) PointerEvent {
	hit := e.Hit(px, py)
	return PointerEvent{X: px, Y: py, Target: hit.Target, BlockID: hit.BlockID, At: at}
}

func (e *Editor) PointerDown(ev PointerEvent) {
	if e.state != StateIdle {
		e.reset("pointer down while " + e.state.String())
	}
	sx, sy := e.view.ScreenToScene(ev.X, ev.Y)

	switch ev.Target {
	case TargetBlock:
		b, ok := e.store.Block(ev.BlockID)
		if !ok {
			return
		}
		e.state = StateDraggingBlock
		e.blockID = b.ID
		e.grabX = sx - b.X
		e.grabY = sy - b.Y
	case TargetHandle:
		if _, ok := e.store.Block(ev.BlockID); !ok {
			return
		}
		e.state = StateDraggingConnection
		e.sourceID = ev.BlockID
		e.cursorX = sx
		e.cursorY = sy
	default:
		e.state = StatePanningScene
		e.lastX = ev.X
		e.lastY = ev.Y
	}
	e.gate.Reset()
	e.gate.Mark(ev.At)
	e.log.Debug("pointer down", "state", e.state.String(), "block", ev.BlockID)
}

// PointerMove applies the event if the throttle allows it; otherwise the
// event replaces the pending sample and true is returned so the caller can
// schedule a Flush.
func (e *Editor) PointerMove(ev PointerEvent) bool {
	if e.state == StateIdle {
		return false
	}
	if !e.gate.Allow(ev.At) {
		e.pending = &ev
		return true
	}
	e.pending = nil
	e.apply(ev)
	return false
}

// Flush applies the pending pointer sample if the throttle window has
// passed. It reports whether anything was applied.
func (e *Editor) Flush(now time.Time) bool {
	if e.pending == nil {
		return false
	}
	if !e.gate.Allow(now) {
		return false
	}
	ev := *e.pending
	e.pending = nil
	e.apply(ev)
	return true
}

// PendingWait is how long until a pending sample can be flushed.
func (e *Editor) PendingWait(now time.Time) time.Duration {
	if e.pending == nil {
		return 0
	}
	return e.gate.Remaining(now)
}

// PointerUp always applies immediately; the pending sample is older than the
// release and is dropped.
func (e *Editor) PointerUp(ev PointerEvent) {
	if e.state == StateIdle {
		return
	}
	e.pending = nil
	e.apply(ev)
	e.gate.Mark(ev.At)

	if e.state == StateDraggingConnection {
		source := e.sourceID
		if (ev.Target == TargetBlock || ev.Target == TargetHandle) && ev.BlockID != source {
			if !e.store.Connect(source, ev.BlockID) {
				e.log.Debug("connection discarded", "source", source, "target", ev.BlockID)
			}
		}
	}
	e.reset("pointer up")
}

// PointerCancel also covers focus loss.
func (e *Editor) PointerCancel() {
	if e.state != StateIdle {
		e.reset("pointer cancel")
	}
}

func (e *Editor) Wheel(ev WheelEvent) {
	if e.state != StateIdle || ev.Ticks == 0 {
		return
	}
	e.view = e.view.ZoomAt(ev.X, ev.Y, ev.Ticks, e.zoom)
	e.log.Debug("zoom", "scale", e.view.Scale, "pan_x", e.view.PanX, "pan_y", e.view.PanY)
}

// PanBy pans from the keyboard; ignored while a pointer gesture is active.
func (e *Editor) PanBy(dx, dy float64) {
	if e.state != StateIdle {
		return
	}
	e.view = e.view.PanBy(dx, dy)
}

// ResetView returns to the identity view, with the scale clamped to the
// zoom bounds.
func (e *Editor) ResetView() {
	e.SetView(e.view.Reset())
}

// SetView replaces the transform, clamping its scale to the zoom bounds.
func (e *Editor) SetView(t Transform) {
	t.Scale = e.zoom.clamp(t.Scale)
	e.view = t
}

// Preview returns the in-progress connection line while dragging from a
// handle. Its end anchor has no id.
func (e *Editor) Preview() (Line, bool) {
	if e.state != StateDraggingConnection {
		return Line{}, false
	}
	source, ok := e.store.Block(e.sourceID)
	if !ok {
		return Line{}, false
	}
	return LineFor(anchorOf(source), Anchor{X: e.cursorX, Y: e.cursorY}), true
}

func (e *Editor) apply(ev PointerEvent) {
	switch e.state {
	case StateDraggingBlock:
		sx, sy := e.view.ScreenToScene(ev.X, ev.Y)
		if !e.store.MoveBlock(e.blockID, sx-e.grabX, sy-e.grabY) {
			e.reset("dragged block vanished")
		}
	case StateDraggingConnection:
		if _, ok := e.store.Block(e.sourceID); !ok {
			e.reset("connection source vanished")
			return
		}
		e.cursorX, e.cursorY = e.view.ScreenToScene(ev.X, ev.Y)
	case StatePanningScene:
		e.view = e.view.PanBy(ev.X-e.lastX, ev.Y-e.lastY)
		e.lastX = ev.X
		e.lastY = ev.Y
	}
}

func (e *Editor) reset(reason string) {
	e.log.Debug("interaction reset", "from", e.state.String(), "reason", reason)
	e.state = StateIdle
	e.blockID = 0
	e.sourceID = 0
	e.pending = nil
}
