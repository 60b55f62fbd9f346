package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTwoBlockEditor has block 1 at (0,0) and block 2 at (300,0) under the
// identity view.
func newTwoBlockEditor(t *testing.T) *Editor {
	t.Helper()
	e := newTestEditor()
	e.Store().AddBlock(EmailActionHandler, 0, 0)
	e.Store().AddBlock(SMSActionHandler, 300, 0)
	return e
}

func blockAt(t *testing.T, e *Editor, id int) Block {
	t.Helper()
	b, ok := e.Store().Block(id)
	require.True(t, ok, "block %d missing", id)
	return b
}

func TestEditor_StartsIdle(t *testing.T) {
	e := newTestEditor()
	assert.Equal(t, StateIdle, e.State())
	assert.Equal(t, NewTransform(), e.View())
	assert.False(t, e.HasPending())
}

func TestEditor_PointerAtClassifies(t *testing.T) {
	e := newTwoBlockEditor(t)

	ev := e.PointerAt(10, 10, ms(0))
	assert.Equal(t, TargetBlock, ev.Target)
	assert.Equal(t, 1, ev.BlockID)

	ev = e.PointerAt(384, 90, ms(0))
	assert.Equal(t, TargetHandle, ev.Target)
	assert.Equal(t, 2, ev.BlockID)

	ev = e.PointerAt(1000, 1000, ms(0))
	assert.Equal(t, TargetCanvas, ev.Target)
}

func TestEditor_DragBlock(t *testing.T) {
	e := newTwoBlockEditor(t)

	e.PointerDown(e.PointerAt(10, 10, ms(0)))
	require.Equal(t, StateDraggingBlock, e.State())
	assert.Equal(t, 1, e.DraggedBlock())

	assert.False(t, e.PointerMove(e.PointerAt(60, 40, ms(6))))
	b := blockAt(t, e, 1)
	assert.Equal(t, 50.0, b.X)
	assert.Equal(t, 30.0, b.Y)

	e.PointerUp(e.PointerAt(110, 20, ms(20)))
	assert.Equal(t, StateIdle, e.State())
	assert.Equal(t, 0, e.DraggedBlock())
	b = blockAt(t, e, 1)
	assert.Equal(t, 100.0, b.X)
	assert.Equal(t, 10.0, b.Y)
}

func TestEditor_DragBlockMovesConnectedLine(t *testing.T) {
	e := newTwoBlockEditor(t)
	require.True(t, e.Store().Connect(1, 2))

	e.PointerDown(e.PointerAt(10, 10, ms(0)))
	e.PointerUp(e.PointerAt(60, 60, ms(20)))

	line := e.Store().Snapshot().Lines[LineKey{From: 1, To: 2}]
	assert.Equal(t, Anchor{ID: 1, X: 50, Y: 50}, line.Start)
	assert.Equal(t, Anchor{ID: 2, X: 300, Y: 0}, line.End)
}

func TestEditor_DragBlockUnderZoom(t *testing.T) {
	e := newTwoBlockEditor(t)
	e.SetView(Transform{Scale: 2})

	e.PointerDown(e.PointerAt(20, 20, ms(0)))
	require.Equal(t, StateDraggingBlock, e.State())
	e.PointerUp(e.PointerAt(120, 20, ms(20)))

	b := blockAt(t, e, 1)
	assert.Equal(t, 50.0, b.X)
	assert.Equal(t, 0.0, b.Y)
}

func TestEditor_ThrottleDefersAndFlushes(t *testing.T) {
	e := newTwoBlockEditor(t)
	e.PointerDown(e.PointerAt(10, 10, ms(0)))

	assert.True(t, e.PointerMove(e.PointerAt(20, 10, ms(2))))
	assert.True(t, e.PointerMove(e.PointerAt(60, 40, ms(3))), "latest sample replaces the pending one")
	assert.True(t, e.HasPending())
	assert.Equal(t, 0.0, blockAt(t, e, 1).X, "deferred sample not applied yet")
	assert.Equal(t, 3*time.Millisecond, e.PendingWait(ms(3)))

	assert.False(t, e.Flush(ms(4)))
	assert.True(t, e.Flush(ms(6)))
	assert.False(t, e.HasPending())

	b := blockAt(t, e, 1)
	assert.Equal(t, 50.0, b.X)
	assert.Equal(t, 30.0, b.Y)

	assert.False(t, e.Flush(ms(30)), "nothing pending")
}

func TestEditor_PointerUpBypassesThrottle(t *testing.T) {
	e := newTwoBlockEditor(t)
	e.PointerDown(e.PointerAt(10, 10, ms(0)))

	assert.True(t, e.PointerMove(e.PointerAt(500, 500, ms(1))))
	e.PointerUp(e.PointerAt(30, 30, ms(2)))

	assert.False(t, e.HasPending(), "pending sample dropped on release")
	b := blockAt(t, e, 1)
	assert.Equal(t, 20.0, b.X)
	assert.Equal(t, 20.0, b.Y)
}

func TestEditor_ConnectByDraggingHandle(t *testing.T) {
	e := newTwoBlockEditor(t)

	e.PointerDown(e.PointerAt(84, 90, ms(0)))
	require.Equal(t, StateDraggingConnection, e.State())
	assert.Equal(t, 1, e.SourceBlock())

	e.PointerMove(e.PointerAt(250, 40, ms(10)))
	preview, ok := e.Preview()
	require.True(t, ok)
	assert.Equal(t, Anchor{ID: 1, X: 0, Y: 0}, preview.Start)
	assert.Equal(t, Anchor{X: 250, Y: 40}, preview.End)

	e.PointerUp(e.PointerAt(310, 10, ms(20)))
	assert.Equal(t, StateIdle, e.State())
	assert.Equal(t, 1, e.Store().Parent(2))
	assert.Contains(t, e.Store().Snapshot().Lines, LineKey{From: 1, To: 2})

	_, ok = e.Preview()
	assert.False(t, ok)
}

func TestEditor_ConnectDropOnHandle(t *testing.T) {
	e := newTwoBlockEditor(t)

	e.PointerDown(e.PointerAt(384, 90, ms(0)))
	e.PointerUp(e.PointerAt(84, 90, ms(20)))

	assert.Equal(t, 2, e.Store().Parent(1))
}

func TestEditor_ConnectDropOnEmptyCanvas(t *testing.T) {
	e := newTwoBlockEditor(t)

	e.PointerDown(e.PointerAt(84, 90, ms(0)))
	e.PointerUp(e.PointerAt(1000, 1000, ms(20)))

	assert.Equal(t, StateIdle, e.State())
	assert.Empty(t, e.Store().Snapshot().Lines)
}

func TestEditor_ConnectDropOnSource(t *testing.T) {
	e := newTwoBlockEditor(t)

	e.PointerDown(e.PointerAt(84, 90, ms(0)))
	e.PointerUp(e.PointerAt(10, 10, ms(20)))

	assert.Empty(t, e.Store().Snapshot().Lines)
}

func TestEditor_ConnectRejectsCycle(t *testing.T) {
	e := newTwoBlockEditor(t)
	require.True(t, e.Store().Connect(1, 2))

	e.PointerDown(e.PointerAt(384, 90, ms(0)))
	e.PointerUp(e.PointerAt(10, 10, ms(20)))

	assert.Equal(t, StateIdle, e.State())
	assert.Equal(t, noParent, e.Store().Parent(1))
	assert.Len(t, e.Store().Snapshot().Lines, 1)
}

func TestEditor_PanScene(t *testing.T) {
	e := newTwoBlockEditor(t)

	e.PointerDown(e.PointerAt(1000, 1000, ms(0)))
	require.Equal(t, StatePanningScene, e.State())

	e.PointerMove(e.PointerAt(1010, 995, ms(10)))
	assert.Equal(t, 10.0, e.View().PanX)
	assert.Equal(t, -5.0, e.View().PanY)

	e.PointerUp(e.PointerAt(1030, 1000, ms(20)))
	assert.Equal(t, StateIdle, e.State())
	assert.Equal(t, 30.0, e.View().PanX)
	assert.Equal(t, 0.0, e.View().PanY)

	b := blockAt(t, e, 1)
	assert.Equal(t, 0.0, b.X, "panning does not move blocks")
}

func TestEditor_WheelZoomsWhenIdle(t *testing.T) {
	e := newTestEditor()
	e.Wheel(WheelEvent{X: 400, Y: 300, Ticks: 1})

	assert.InDelta(t, 1.2, e.View().Scale, epsilon)
	assert.InDelta(t, -80, e.View().PanX, epsilon)
	assert.InDelta(t, -60, e.View().PanY, epsilon)
}

func TestEditor_WheelIgnoredWhileDragging(t *testing.T) {
	e := newTwoBlockEditor(t)
	e.PointerDown(e.PointerAt(10, 10, ms(0)))

	e.Wheel(WheelEvent{X: 400, Y: 300, Ticks: 1})
	assert.Equal(t, NewTransform(), e.View())

	e.PanBy(10, 10)
	assert.Equal(t, NewTransform(), e.View())
}

func TestEditor_WheelZeroTicks(t *testing.T) {
	e := newTestEditor()
	e.Wheel(WheelEvent{X: 400, Y: 300})
	assert.Equal(t, NewTransform(), e.View())
}

func TestEditor_CancelFromEveryState(t *testing.T) {
	downs := map[State][2]float64{
		StateDraggingBlock:      {10, 10},
		StateDraggingConnection: {84, 90},
		StatePanningScene:       {1000, 1000},
	}
	for state, at := range downs {
		t.Run(state.String(), func(t *testing.T) {
			e := newTwoBlockEditor(t)
			e.PointerDown(e.PointerAt(at[0], at[1], ms(0)))
			require.Equal(t, state, e.State())
			e.PointerMove(e.PointerAt(at[0]+1, at[1]+1, ms(1)))

			e.PointerCancel()
			assert.Equal(t, StateIdle, e.State())
			assert.False(t, e.HasPending())
			assert.Equal(t, 0, e.DraggedBlock())
			assert.Equal(t, 0, e.SourceBlock())
			assert.Empty(t, e.Store().Snapshot().Lines)
		})
	}
}

func TestEditor_CancelWhenIdle(t *testing.T) {
	e := newTestEditor()
	e.PointerCancel()
	assert.Equal(t, StateIdle, e.State())
}

func TestEditor_DraggedBlockRemoved(t *testing.T) {
	e := newTwoBlockEditor(t)
	e.PointerDown(e.PointerAt(10, 10, ms(0)))
	require.True(t, e.Store().RemoveBlock(1))

	e.PointerMove(e.PointerAt(50, 50, ms(10)))
	assert.Equal(t, StateIdle, e.State())
	assert.Equal(t, 1, e.Store().Len())
}

func TestEditor_ConnectionSourceRemoved(t *testing.T) {
	e := newTwoBlockEditor(t)
	e.PointerDown(e.PointerAt(84, 90, ms(0)))
	require.True(t, e.Store().RemoveBlock(1))

	_, ok := e.Preview()
	assert.False(t, ok)

	e.PointerUp(e.PointerAt(310, 10, ms(10)))
	assert.Equal(t, StateIdle, e.State())
	assert.Empty(t, e.Store().Snapshot().Lines)
}

func TestEditor_PointerDownWhileActiveRestarts(t *testing.T) {
	e := newTwoBlockEditor(t)
	e.PointerDown(e.PointerAt(84, 90, ms(0)))
	require.Equal(t, StateDraggingConnection, e.State())

	e.PointerDown(e.PointerAt(310, 10, ms(5)))
	assert.Equal(t, StateDraggingBlock, e.State())
	assert.Equal(t, 2, e.DraggedBlock())
	assert.Equal(t, 0, e.SourceBlock())
}

func TestEditor_MoveAndUpIgnoredWhenIdle(t *testing.T) {
	e := newTwoBlockEditor(t)
	assert.False(t, e.PointerMove(e.PointerAt(10, 10, ms(0))))
	e.PointerUp(e.PointerAt(10, 10, ms(1)))

	assert.Equal(t, StateIdle, e.State())
	assert.Equal(t, 0.0, blockAt(t, e, 1).X)
}

func TestEditor_SetViewClampsScale(t *testing.T) {
	e := newTestEditor()
	e.SetView(Transform{PanX: 3, Scale: 10})
	assert.Equal(t, Transform{PanX: 3, Scale: 2}, e.View())

	e.ResetView()
	assert.Equal(t, NewTransform(), e.View())
}

func TestEditor_ViewStartsInsideZoomBounds(t *testing.T) {
	opts := DefaultEditorOptions()
	opts.Logger = testLogger()
	opts.Zoom = ZoomConfig{MinScale: 1.5, MaxScale: 4, Intensity: 0.2}
	e := NewEditor(newTestStore(), opts)

	assert.Equal(t, 1.5, e.View().Scale)

	e.Wheel(WheelEvent{X: 100, Y: 100, Ticks: 3})
	require.Greater(t, e.View().Scale, 1.5)

	e.ResetView()
	assert.Equal(t, Transform{Scale: 1.5}, e.View())
}

func TestEditor_ZeroZoomConfigUsesDefaults(t *testing.T) {
	e := NewEditor(newTestStore(), EditorOptions{Logger: testLogger()})
	assert.Equal(t, DefaultZoomConfig(), e.Zoom())
	assert.Equal(t, NewTransform(), e.View())
}
