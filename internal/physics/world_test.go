package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/bopdrop/internal/core"
)

func zeroGravity() Options {
	opts := DefaultOptions()
	opts.Gravity = 0
	return opts
}

func TestGravityIntegration(t *testing.T) {
	w := NewWorld(DefaultOptions())
	id := w.AddCircle(core.V(100, 100), 10, false)
	frozen := w.AddCircle(core.V(300, 100), 10, true)

	w.Step()

	b, ok := w.Body(id)
	require.True(t, ok)
	assert.InDelta(t, 1.2, b.Vel.Y, 1e-9)
	assert.InDelta(t, 101.2, b.Pos.Y, 1e-9)

	s, ok := w.Body(frozen)
	require.True(t, ok)
	assert.Equal(t, core.V(300, 100), s.Pos)
}

func TestBallComesToRestOnFloor(t *testing.T) {
	w := NewWorld(DefaultOptions())
	w.AddWalls(768, 960, 64)
	id := w.AddCircle(core.V(384, 60), 25, false)

	for range 300 {
		w.Step()
	}

	b, ok := w.Body(id)
	require.True(t, ok)
	assert.InDelta(t, 935, b.Pos.Y, 2)
	assert.InDelta(t, 384, b.Pos.X, 1e-6)
	assert.LessOrEqual(t, b.Speed(), 0.8)

	contacts := 0
	w.OnContact(func(a, b ID) { contacts++ })
	for range 60 {
		w.Step()
	}
	assert.Zero(t, contacts, "a resting ball should not report new contacts")
}

func TestWallsKeepBallInside(t *testing.T) {
	w := NewWorld(DefaultOptions())
	w.AddWalls(768, 960, 64)
	id := w.AddCircle(core.V(700, 900), 25, false)
	w.SetVelocity(id, core.V(30, 0))

	for range 120 {
		w.Step()
	}

	b, _ := w.Body(id)
	assert.LessOrEqual(t, b.Pos.X+b.Radius, 768.0+1)
	assert.GreaterOrEqual(t, b.Pos.X-b.Radius, -1.0)
}

func TestContactStartReportedOnce(t *testing.T) {
	w := NewWorld(zeroGravity())
	a := w.AddCircle(core.V(0, 0), 25, false)
	b := w.AddCircle(core.V(100, 0), 25, false)
	w.SetVelocity(a, core.V(10, 0))
	w.SetVelocity(b, core.V(-10, 0))

	var pairs [][2]ID
	w.OnContact(func(x, y ID) { pairs = append(pairs, [2]ID{x, y}) })

	for range 20 {
		w.Step()
	}

	require.Len(t, pairs, 1)
	assert.Equal(t, [2]ID{a, b}, pairs[0])

	ba, _ := w.Body(a)
	bb, _ := w.Body(b)
	assert.Less(t, ba.Vel.X, 0.0, "bodies should bounce apart")
	assert.Greater(t, bb.Vel.X, 0.0)
}

func TestContactHookMayRemoveBodies(t *testing.T) {
	w := NewWorld(zeroGravity())
	a := w.AddCircle(core.V(0, 0), 25, false)
	b := w.AddCircle(core.V(40, 0), 25, false)

	calls := 0
	w.OnContact(func(x, y ID) {
		calls++
		w.Remove(x, y)
		w.AddCircle(core.V(20, 0), 35, false)
	})
	w.Step()

	assert.Equal(t, 1, calls)
	assert.False(t, w.Has(a))
	assert.False(t, w.Has(b))
	assert.Equal(t, 1, w.Len())
}

func TestStaticPairsNeverCollide(t *testing.T) {
	w := NewWorld(DefaultOptions())
	w.AddCircle(core.V(0, 0), 25, true)
	w.AddCircle(core.V(10, 0), 25, true)

	calls := 0
	w.OnContact(func(a, b ID) { calls++ })
	w.Step()

	assert.Zero(t, calls)
}

func TestStopResume(t *testing.T) {
	w := NewWorld(DefaultOptions())
	id := w.AddCircle(core.V(0, 0), 5, false)

	w.Stop()
	assert.False(t, w.Running())
	w.Step()
	b, _ := w.Body(id)
	assert.Equal(t, core.V(0, 0), b.Pos)

	w.Resume()
	w.Step()
	b, _ = w.Body(id)
	assert.Greater(t, b.Pos.Y, 0.0)
}

func TestHookCancel(t *testing.T) {
	w := NewWorld(DefaultOptions())
	steps := 0
	cancel := w.OnStep(func() { steps++ })

	w.Step()
	cancel()
	cancel()
	w.Step()

	assert.Equal(t, 1, steps)
}

func TestRemoveClearAndOrder(t *testing.T) {
	w := NewWorld(DefaultOptions())
	ids := []ID{
		w.AddCircle(core.V(0, 0), 1, false),
		w.AddCircle(core.V(10, 0), 2, false),
		w.AddCircle(core.V(20, 0), 3, false),
	}

	w.Remove(ids[1], 999)
	bodies := w.Bodies()
	require.Len(t, bodies, 2)
	assert.Equal(t, ids[0], bodies[0].ID)
	assert.Equal(t, ids[2], bodies[1].ID)

	_, ok := w.Body(ids[1])
	assert.False(t, ok)

	w.Clear()
	assert.Zero(t, w.Len())
	assert.Empty(t, w.Bodies())

	next := w.AddCircle(core.V(0, 0), 1, false)
	assert.Greater(t, next, ids[2], "IDs are never reused")
}

func TestSetters(t *testing.T) {
	w := NewWorld(DefaultOptions())
	id := w.AddCircle(core.V(0, 0), 5, false)

	w.SetPosition(id, core.V(3, 4))
	w.SetVelocity(id, core.V(1, 2))
	w.SetAngle(id, 0.5)
	w.SetAngularVelocity(id, 0.1)

	b, _ := w.Body(id)
	assert.Equal(t, core.V(3, 4), b.Pos)
	assert.Equal(t, core.V(1, 2), b.Vel)
	assert.Equal(t, 0.5, b.Angle)
	assert.Equal(t, 0.1, b.Spin)

	w.SetStatic(id, true)
	b, _ = w.Body(id)
	assert.True(t, b.Static)
	assert.Equal(t, core.Vec{}, b.Vel)
	assert.Zero(t, b.Spin)

	// Unknown IDs are ignored
	w.SetPosition(999, core.V(1, 1))
}

func TestBoxCircleInsideBox(t *testing.T) {
	box := &Body{Shape: ShapeBox, Pos: core.V(0, 0), HalfW: 100, HalfH: 10}
	c := &Body{Shape: ShapeCircle, Pos: core.V(0, -5), Radius: 5}

	m, ok := collide(box, c)
	require.True(t, ok)
	assert.Equal(t, core.V(0, -1), m.normal)
	assert.InDelta(t, 10, m.depth, 1e-9)

	m, ok = collide(c, box)
	require.True(t, ok)
	assert.Equal(t, core.V(0, 1), m.normal)
}
